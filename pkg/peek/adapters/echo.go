// Package adapters plugs the peek inspector into Echo, Gin and Fiber.
package adapters

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toyz/peek/pkg/peek"
)

// EchoAdapter implements peek.WebServer for Echo v4
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates a new Echo adapter with default Echo instance
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return &EchoAdapter{engine: e}
}

// RegisterRoute registers a route with the Echo server
func (ea *EchoAdapter) RegisterRoute(method, path string, handler peek.HandlerFunc, middlewares ...peek.MiddlewareFunc) {
	echoMiddlewares := make([]echo.MiddlewareFunc, len(middlewares))
	for i, mw := range middlewares {
		echoMiddlewares[i] = ea.convertMiddleware(mw)
	}
	ea.engine.Add(method, path, ea.convertHandler(handler), echoMiddlewares...)
}

// Use adds global middleware
func (ea *EchoAdapter) Use(middleware peek.MiddlewareFunc) {
	ea.engine.Use(ea.convertMiddleware(middleware))
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Stop stops the server
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// GetEngine returns the underlying Echo instance
func (ea *EchoAdapter) GetEngine() *echo.Echo {
	return ea.engine
}

// convertHandler converts peek.HandlerFunc to echo.HandlerFunc
func (ea *EchoAdapter) convertHandler(handler peek.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := handler(&EchoRequestContext{context: c}); err != nil {
			return c.JSON(peek.StatusOf(err), errorBody(err))
		}
		return nil
	}
}

// convertMiddleware converts peek.MiddlewareFunc to echo.MiddlewareFunc
func (ea *EchoAdapter) convertMiddleware(middleware peek.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			peekNext := func(peek.RequestContext) error {
				return next(c)
			}
			return middleware(peekNext)(&EchoRequestContext{context: c})
		}
	}
}

// EchoRequestContext implements peek.RequestContext for Echo
type EchoRequestContext struct {
	context echo.Context
}

// Context returns the request context
func (erc *EchoRequestContext) Context() context.Context {
	return erc.context.Request().Context()
}

// Method returns the HTTP method
func (erc *EchoRequestContext) Method() string {
	return erc.context.Request().Method
}

// Path returns the request path
func (erc *EchoRequestContext) Path() string {
	return erc.context.Request().URL.Path
}

// QueryParam returns a query parameter
func (erc *EchoRequestContext) QueryParam(key string) string {
	return erc.context.QueryParam(key)
}

// Response returns the response writer
func (erc *EchoRequestContext) Response() peek.ResponseWriter {
	return &EchoResponse{context: erc.context}
}

// EchoResponse implements peek.ResponseWriter for Echo
type EchoResponse struct {
	context echo.Context
}

// SetHeader sets response header
func (er *EchoResponse) SetHeader(key, value string) {
	er.context.Response().Header().Set(key, value)
}

// String writes string response
func (er *EchoResponse) String(code int, s string) error {
	return er.context.String(code, s)
}

// HTML writes HTML response
func (er *EchoResponse) HTML(code int, html string) error {
	return er.context.HTML(code, html)
}

// JSON writes JSON response
func (er *EchoResponse) JSON(code int, v any) error {
	return er.context.JSON(code, v)
}

func errorBody(err error) map[string]string {
	if httpErr, ok := err.(*peek.HTTPError); ok {
		return map[string]string{"error": httpErr.Message}
	}
	return map[string]string{"error": http.StatusText(http.StatusInternalServerError) + ": " + err.Error()}
}
