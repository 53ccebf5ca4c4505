// Package http exposes the order service over REST with echo.
//
// Every documented request is validated against api/openapi.yaml before it
// reaches a handler; handlers then map the request onto one command or query
// and render the result. Errors from the application core are turned into
// status codes in one place (errors.go).
package http

import (
	"context"
	"log/slog"
	"net/http"

	"mekina/api"
	"mekina/internal/core/application/usecases/commands"
	"mekina/internal/core/application/usecases/queries"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the use cases the HTTP surface dispatches to.
type Handlers struct {
	PlaceOrder            commands.PlaceOrderCommandHandler
	CancelOrder           commands.CancelOrderCommandHandler
	AcceptOrder           commands.AcceptOrderCommandHandler
	RejectOrder           commands.RejectOrderCommandHandler
	ChangeOrderStatus     commands.ChangeOrderStatusCommandHandler
	UploadProofOfDelivery commands.UploadProofOfDeliveryCommandHandler
	ResolvePayment        commands.ResolvePaymentCommandHandler
	SyncPaymentStatus     commands.SyncPaymentStatusCommandHandler
	ApplyPaymentResult    commands.ApplyPaymentResultCommandHandler
	CreateCourier         commands.CreateCourierCommandHandler
	UpdateCourierLocation commands.UpdateCourierLocationCommandHandler
	CreateShop            commands.CreateShopCommandHandler

	GetOrder             queries.GetOrderQueryHandler
	GetActiveOrders      queries.GetActiveOrdersQueryHandler
	GetAllCouriers       queries.GetAllCouriersQueryHandler
	GetCourierCandidates queries.GetCourierCandidatesQueryHandler
	GetDeliveryQuote     queries.GetDeliveryQuoteQueryHandler
}

// Options configures the ambient parts of the server.
type Options struct {
	Logger *slog.Logger
	// Registry receives the HTTP metrics and is served at /metrics.
	Registry *prometheus.Registry
	// CallbackSecret enables signature checks on gateway callbacks when set.
	CallbackSecret string
}

// Server implements the REST handlers.
type Server struct {
	h              Handlers
	metrics        *Metrics
	callbackSecret string
}

// NewServer builds the echo instance with middleware, documented routes and
// the operational endpoints.
func NewServer(ctx context.Context, h Handlers, opts Options) (*echo.Echo, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	doc, err := loadContract(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	metrics, err := NewMetrics(opts.Registry)
	if err != nil {
		return nil, err
	}

	s := &Server{
		h:              h,
		metrics:        metrics,
		callbackSecret: opts.CallbackSecret,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.Validator = &requestBodyValidator{validate: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.Use(
		middleware.RequestID(),
		requestLogger(opts.Logger.With("component", "http")),
		recoverer(),
		metrics.Middleware(),
		validate,
	)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.OpenAPI)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	s.register(e.Group("/api/v1"))
	return e, nil
}

func (s *Server) register(g *echo.Group) {
	g.POST("/orders", s.PlaceOrder)
	g.GET("/orders/active", s.ListActiveOrders)
	g.GET("/orders/:orderId", s.GetOrder)
	g.PATCH("/orders/:orderId/status", s.PatchOrderStatus)
	g.POST("/orders/:orderId/cancel", s.CancelOrder)
	g.POST("/orders/:orderId/accept", s.AcceptOrder)
	g.POST("/orders/:orderId/reject", s.RejectOrder)
	g.POST("/orders/:orderId/proof-of-delivery", s.UploadProofOfDelivery)
	g.GET("/orders/:orderId/courier-candidates", s.ListCourierCandidates)
	g.POST("/orders/:orderId/payment/approval", s.ApprovePayment)
	g.POST("/orders/:orderId/payment/sync", s.SyncPaymentStatus)

	g.POST("/payments/callback", s.PaymentCallback)
	g.POST("/delivery/quote", s.GetDeliveryQuote)

	g.GET("/couriers", s.ListCouriers)
	g.POST("/couriers", s.CreateCourier)
	g.PUT("/couriers/:courierId/location", s.UpdateCourierLocation)

	g.POST("/shops", s.CreateShop)
}

type requestBodyValidator struct {
	validate *validator.Validate
}

func (v *requestBodyValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// bind decodes and validates a JSON body.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}
