package http

import (
	"errors"
	"net/http"
	"strings"

	"mekina/internal/core/application/usecases/commands"
	"mekina/internal/core/domain/model/order"
	"mekina/internal/core/domain/model/payment"
	"mekina/internal/core/domain/services"
	"mekina/internal/logging"
	"mekina/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// statusFor maps an error returned by the application core to an HTTP status.
// Conflicts are checked before validation: ErrAlreadyAssigned is both.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrencyConflict),
		errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, payment.ErrAlreadyResolved),
		errors.Is(err, payment.ErrNotGateway),
		errors.Is(err, payment.ErrNotManual):
		return http.StatusConflict
	case errors.Is(err, commands.ErrPaymentTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, services.ErrQuoteUnavailable),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders every error as an Error body. Unexpected failures are
// logged and their message hidden.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, message := classify(err)
	if code >= http.StatusInternalServerError && code != http.StatusGatewayTimeout {
		logging.FromContext(c.Request().Context(), nil).ErrorContext(c.Request().Context(),
			"request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		message = http.StatusText(code)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, Error{Code: code, Message: message})
	}
	if writeErr != nil {
		logging.FromContext(c.Request().Context(), nil).WarnContext(c.Request().Context(),
			"failed to write error response", "error", writeErr)
	}
}

func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		return http.StatusBadRequest, requestErrorMessage(requestErr)
	}

	var securityErr *openapi3filter.SecurityRequirementsError
	if errors.As(err, &securityErr) {
		return http.StatusUnauthorized, securityErr.Error()
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, validationErrs.Error()
	}

	return statusFor(err), err.Error()
}

// requestErrorMessage names the offending field and the broken rule. The
// schema and the submitted value stay out of the response.
func requestErrorMessage(requestErr *openapi3filter.RequestError) string {
	reason := requestErr.Reason
	field := ""

	var schemaErr *openapi3.SchemaError
	if errors.As(requestErr.Err, &schemaErr) {
		reason = schemaErr.Reason
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			field = "/" + strings.Join(pointer, "/")
		}
	}
	if requestErr.Parameter != nil {
		field = "parameter " + requestErr.Parameter.Name + field
	}

	if reason == "" {
		reason = http.StatusText(http.StatusBadRequest)
	}
	if field == "" {
		return reason
	}
	return field + ": " + reason
}
