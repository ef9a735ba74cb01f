package peek

import (
	"context"
	"fmt"
	"net/http"
)

// WebServer defines the contract for the web framework adapters in
// pkg/peek/adapters
type WebServer interface {
	// Route registration
	RegisterRoute(method, path string, handler HandlerFunc, middlewares ...MiddlewareFunc)

	// Global middleware
	Use(middleware MiddlewareFunc)

	// Server lifecycle
	Start(addr string) error
	Stop(ctx context.Context) error

	// Server information
	Name() string
}

// RequestContext is the framework-agnostic view of a request
type RequestContext interface {
	Context() context.Context
	Method() string
	Path() string
	QueryParam(key string) string
	Response() ResponseWriter
}

// ResponseWriter provides response writing capabilities
type ResponseWriter interface {
	SetHeader(key, value string)
	String(code int, s string) error
	HTML(code int, html string) error
	JSON(code int, v any) error
}

// HandlerFunc handles a request
type HandlerFunc func(RequestContext) error

// MiddlewareFunc wraps a handler
type MiddlewareFunc func(next HandlerFunc) HandlerFunc

// HTTPError is returned by handlers to answer with a specific status code.
// Adapters render it as {"error": message}.
type HTTPError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"error"`
	Cause      error  `json:"-"`
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// NewHTTPError creates a new HTTPError with the given status code and message
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// ErrNotFound creates a 404 Not Found error
func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// StatusOf returns the status code an adapter should answer err with.
func StatusOf(err error) int {
	if httpErr, ok := err.(*HTTPError); ok {
		return httpErr.StatusCode
	}
	return http.StatusInternalServerError
}
