package http

import (
	"net/http"

	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const (
	headerActorRole = "X-Actor-Role"
	headerActorID   = "X-Actor-ID"
)

// actorFrom reads the acting party from the request headers. Who may do what
// is decided by the order itself, not here.
func actorFrom(c echo.Context) (order.Actor, error) {
	role, err := order.ParseRole(c.Request().Header.Get(headerActorRole))
	if err != nil {
		return order.Actor{}, echo.NewHTTPError(http.StatusBadRequest, headerActorRole+": "+err.Error())
	}

	id, err := kernel.UUIDFromString(c.Request().Header.Get(headerActorID))
	if err != nil {
		return order.Actor{}, echo.NewHTTPError(http.StatusBadRequest, headerActorID+": "+err.Error())
	}

	return order.NewActor(role, id)
}
