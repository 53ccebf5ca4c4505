package http

import (
	"bytes"
	"io"
	"net/http"

	"mekina/internal/adapters/out/gateway"
	"mekina/internal/core/application/usecases/commands"
	"mekina/internal/core/application/usecases/queries"
	"mekina/internal/core/domain/model/cart"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/logging"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// PlaceOrder checks out a cart on behalf of the calling buyer.
func (s *Server) PlaceOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if actor.Role() != order.RoleBuyer {
		return echo.NewHTTPError(http.StatusForbidden, "only buyers place orders")
	}

	var req PlaceOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	items := make([]cart.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := cart.NewLineItem(it.ProductRef, it.Quantity, it.UnitPrice)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	method, err := payment.ParseMethod(req.PaymentMethod)
	if err != nil {
		return err
	}
	option, err := kernel.ParseDeliveryOption(req.DeliveryOption)
	if err != nil {
		return err
	}
	destination, err := req.DeliveryAddress.toDomain()
	if err != nil {
		return err
	}
	shopID, err := kernel.UUIDFromGoogle(req.ShopID)
	if err != nil {
		return err
	}
	sellerID, err := kernel.UUIDFromGoogle(req.SellerID)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(commands.PlaceOrderParams{
		OrderID:        orderID,
		BuyerID:        actor.ID(),
		SellerID:       sellerID,
		ShopID:         shopID,
		Items:          items,
		PaymentMethod:  method,
		ReceiptRef:     req.ReceiptRef,
		DeliveryOption: option,
		Destination:    destination,
	})
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := s.h.PlaceOrder.Handle(ctx, cmd); err != nil {
		return err
	}

	logging.FromContext(ctx, nil).InfoContext(ctx, "order placed",
		"order_id", orderID.String(), "payment_method", method.String())
	return s.respondOrder(c, http.StatusCreated, orderID)
}

func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

// ListActiveOrders serves GET /orders/active with optional filters.
func (s *Server) ListActiveOrders(c echo.Context) error {
	var criteria queries.ActiveOrdersCriteria

	for name, dst := range map[string]**kernel.UUID{
		"buyerId":   &criteria.BuyerID,
		"sellerId":  &criteria.SellerID,
		"courierId": &criteria.CourierID,
	} {
		id, err := queryUUID(c, name)
		if err != nil {
			return err
		}
		*dst = id
	}

	var rawStatus *string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &rawStatus); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter status: "+err.Error())
	}
	if rawStatus != nil {
		status, err := order.ParseStatus(*rawStatus)
		if err != nil {
			return err
		}
		criteria.Status = &status
	}

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter limit: "+err.Error())
	}
	if limit != nil {
		criteria.Limit = *limit
	}

	query, err := queries.NewGetActiveOrdersQuery(criteria)
	if err != nil {
		return err
	}
	views, err := s.h.GetActiveOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrders(views))
}

func (s *Server) PatchOrderStatus(c echo.Context) error {
	id, actor, err := s.orderAndActor(c)
	if err != nil {
		return err
	}

	var req ChangeStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, target, actor, req.ProofOfDeliveryRef)
	if err != nil {
		return err
	}
	if err := s.h.ChangeOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

func (s *Server) CancelOrder(c echo.Context) error {
	id, actor, err := s.orderAndActor(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(id, actor)
	if err != nil {
		return err
	}
	if err := s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

// AcceptOrder binds the calling courier to a Processing order. Of several
// couriers racing for one order exactly one wins; the rest get 409.
func (s *Server) AcceptOrder(c echo.Context) error {
	id, actor, err := s.orderAndActor(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptOrderCommand(id, actor)
	if err != nil {
		return err
	}
	if err := s.h.AcceptOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

func (s *Server) RejectOrder(c echo.Context) error {
	id, actor, err := s.orderAndActor(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRejectOrderCommand(id, actor)
	if err != nil {
		return err
	}
	if err := s.h.RejectOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

func (s *Server) UploadProofOfDelivery(c echo.Context) error {
	id, actor, err := s.orderAndActor(c)
	if err != nil {
		return err
	}

	var req ProofOfDeliveryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUploadProofOfDeliveryCommand(id, actor, req.ProofOfDeliveryRef)
	if err != nil {
		return err
	}
	if err := s.h.UploadProofOfDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

func (s *Server) ListCourierCandidates(c echo.Context) error {
	id, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetCourierCandidatesQuery(id)
	if err != nil {
		return err
	}
	views, err := s.h.GetCourierCandidates.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	out := make([]CourierCandidate, 0, len(views))
	for _, v := range views {
		out = append(out, CourierCandidate{Courier: toCourier(v.Courier), DistanceKm: v.DistanceKm})
	}
	return c.JSON(http.StatusOK, out)
}

// ApprovePayment records an admin's decision on a manual payment.
func (s *Server) ApprovePayment(c echo.Context) error {
	id, actor, err := s.orderAndActor(c)
	if err != nil {
		return err
	}

	var req PaymentApprovalRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewResolvePaymentCommand(id, actor, *req.Approve)
	if err != nil {
		return err
	}
	if err := s.h.ResolvePayment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

// SyncPaymentStatus polls the gateway until the transaction settles or the
// poll budget runs out (504).
func (s *Server) SyncPaymentStatus(c echo.Context) error {
	id, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewSyncPaymentStatusCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.SyncPaymentStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

// PaymentCallback applies a gateway notification. Redelivered events are
// acknowledged without being applied twice.
func (s *Server) PaymentCallback(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read body")
	}

	if s.callbackSecret != "" {
		sig := c.Request().Header.Get(gateway.SignatureHeader)
		if err := gateway.VerifySignature(body, sig, s.callbackSecret); err != nil {
			logging.FromContext(c.Request().Context(), nil).Warn("rejected payment callback", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
	}

	c.Request().Body = io.NopCloser(bytes.NewReader(body))
	var req PaymentCallback
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := payment.ParseGatewayResult(req.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewApplyPaymentResultCommand(req.EventID, req.TxRef, result)
	if err != nil {
		return err
	}
	if err := s.h.ApplyPaymentResult.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) GetDeliveryQuote(c echo.Context) error {
	var req QuoteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	option, err := kernel.ParseDeliveryOption(req.DeliveryOption)
	if err != nil {
		return err
	}
	query, err := queries.NewGetDeliveryQuoteQuery(
		formatCoordinate(req.From.Lat), formatCoordinate(req.From.Lng),
		formatCoordinate(req.To.Lat), formatCoordinate(req.To.Lng),
		option,
	)
	if err != nil {
		return err
	}

	quote, err := s.h.GetDeliveryQuote.Handle(c.Request().Context(), query)
	s.metrics.observeQuote(option.String(), err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuote(quote))
}

func (s *Server) ListCouriers(c echo.Context) error {
	views, err := s.h.GetAllCouriers.Handle(c.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return err
	}

	out := make([]Courier, 0, len(views))
	for _, v := range views {
		out = append(out, toCourier(v))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) CreateCourier(c echo.Context) error {
	var req NewCourier
	if err := bind(c, &req); err != nil {
		return err
	}

	vehicle, err := kernel.ParseDeliveryOption(req.Vehicle)
	if err != nil {
		return err
	}
	var location *kernel.Location
	if req.Location != nil {
		loc, err := req.Location.toDomain()
		if err != nil {
			return err
		}
		location = &loc
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(id, req.Name, vehicle, location)
	if err != nil {
		return err
	}
	if err := s.h.CreateCourier.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, Courier{
		ID:       id.Bytes(),
		Name:     cmd.Name(),
		Vehicle:  vehicle.String(),
		Location: toLocation(location),
	})
}

func (s *Server) UpdateCourierLocation(c echo.Context) error {
	id, err := pathUUID(c, "courierId")
	if err != nil {
		return err
	}

	var req Location
	if err := bind(c, &req); err != nil {
		return err
	}
	loc, err := req.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(id, loc)
	if err != nil {
		return err
	}
	if err := s.h.UpdateCourierLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateShop registers a shop owned by the calling seller.
func (s *Server) CreateShop(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if actor.Role() != order.RoleSeller {
		return echo.NewHTTPError(http.StatusForbidden, "only sellers register shops")
	}

	var req NewShop
	if err := bind(c, &req); err != nil {
		return err
	}
	address, err := req.Address.toDomain()
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateShopCommand(id, actor.ID(), req.Name, address)
	if err != nil {
		return err
	}
	if err := s.h.CreateShop.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, Shop{
		ID:       id.Bytes(),
		SellerID: actor.ID().Bytes(),
		Name:     cmd.Name(),
		Address:  toAddress(cmd.Address()),
	})
}

// respondOrder re-reads the order so the response reflects the committed state.
func (s *Server) respondOrder(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, toOrder(view))
}

func (s *Server) orderAndActor(c echo.Context) (kernel.UUID, order.Actor, error) {
	id, err := pathUUID(c, "orderId")
	if err != nil {
		return kernel.UUID{}, order.Actor{}, err
	}
	actor, err := actorFrom(c)
	if err != nil {
		return kernel.UUID{}, order.Actor{}, err
	}
	return id, actor, nil
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter "+name+": "+err.Error())
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter "+name+": "+err.Error())
	}
	return id, nil
}

func queryUUID(c echo.Context, name string) (*kernel.UUID, error) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter "+name+": "+err.Error())
	}
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter "+name+": "+err.Error())
	}
	return &id, nil
}
