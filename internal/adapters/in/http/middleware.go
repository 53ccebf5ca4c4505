package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mekina/internal/logging"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the HTTP and delivery quote collectors.
type Metrics struct {
	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
	quotes     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	summaryVec := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.005,
				0.99: 0.001,
			},
		},
		[]string{"method", "path", "status_code"},
	)

	counterVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	quotes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mekina_delivery_quotes_total",
			Help: "Delivery quotes requested, by delivery option and outcome",
		},
		[]string{"option", "outcome"},
	)

	for _, c := range []prometheus.Collector{summaryVec, counterVec, quotes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &Metrics{
		summaryVec: summaryVec,
		counterVec: counterVec,
		quotes:     quotes,
	}, nil
}

// Middleware records duration and count per route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			statusCode := strconv.Itoa(responseStatus(c, err))

			m.summaryVec.WithLabelValues(c.Request().Method, path, statusCode).Observe(duration)
			m.counterVec.WithLabelValues(c.Request().Method, path, statusCode).Inc()
			return err
		}
	}
}

func (m *Metrics) observeQuote(option string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "unavailable"
	}
	m.quotes.WithLabelValues(option, outcome).Inc()
}

// requestLogger puts a request-scoped logger into the context and logs one
// line per request once the error handler has produced the final status.
func requestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			logger := base.With(
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", req.Method,
				"path", req.URL.Path,
			)
			c.SetRequest(req.WithContext(logging.WithLogger(req.Context(), logger)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(c.Request().Context(), level, "request handled",
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return nil
		}
	}
}

func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	code, _ := classify(err)
	return code
}

func recoverer() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
	})
}
