package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New builds the public HTTP server with the products routes.
func New(log *slog.Logger, handler *Handler) (*echo.Echo, error) {
	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = errorHandler(log, e)

	e.Use(middleware.RequestID())
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.ErrorContext(c.Request().Context(), "Panic recovered", "error", err, "stack", string(stack))
			return err
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.DebugContext(c.Request().Context(), "HTTP request",
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "request_id", v.RequestID)
			return nil
		},
	}))

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/products")
	})
	e.GET("/products", handler.Products)
	e.GET("/api/products", handler.ProductsJSON)
	e.GET("/product/:id", handler.Product)
	e.GET("/go/product/:id", handler.OpenProduct)
	e.GET("/go/my-listings", handler.OpenMyListings)

	return e, nil
}

// errorHandler logs server-side failures and leaves the response to echo's default handler.
func errorHandler(log *slog.Logger, e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code >= http.StatusInternalServerError {
			log.ErrorContext(c.Request().Context(), "Request failed",
				"uri", c.Request().RequestURI, "error", err)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
