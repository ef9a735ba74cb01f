package adapters

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/toyz/peek/pkg/peek"
)

// FiberAdapter wraps a Fiber app to implement peek.WebServer
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a new Fiber adapter instance
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a new Fiber adapter with panic recovery
func NewDefaultFiberAdapter() *FiberAdapter {
	adapter := NewFiberAdapter()
	adapter.app.Use(recover.New())
	return adapter
}

// RegisterRoute registers a route with the Fiber app
func (fa *FiberAdapter) RegisterRoute(method, path string, handler peek.HandlerFunc, middlewares ...peek.MiddlewareFunc) {
	handlers := make([]fiber.Handler, 0, len(middlewares)+1)
	for _, mw := range middlewares {
		handlers = append(handlers, convertMiddlewareToFiber(mw))
	}
	handlers = append(handlers, convertHandlerToFiber(handler))
	fa.app.Add(method, path, handlers...)
}

// Use adds global middleware
func (fa *FiberAdapter) Use(middleware peek.MiddlewareFunc) {
	fa.app.Use(convertMiddlewareToFiber(middleware))
}

// Start starts the Fiber server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// GetApp returns the underlying Fiber app
func (fa *FiberAdapter) GetApp() *fiber.App {
	return fa.app
}

func convertHandlerToFiber(handler peek.HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := handler(&FiberRequestContext{ctx: c}); err != nil {
			return c.Status(peek.StatusOf(err)).JSON(errorBody(err))
		}
		return nil
	}
}

func convertMiddlewareToFiber(middleware peek.MiddlewareFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		next := func(peek.RequestContext) error {
			return c.Next()
		}
		if err := middleware(next)(&FiberRequestContext{ctx: c}); err != nil {
			return c.Status(peek.StatusOf(err)).JSON(errorBody(err))
		}
		return nil
	}
}

// FiberRequestContext wraps fiber.Ctx to implement peek.RequestContext
type FiberRequestContext struct {
	ctx *fiber.Ctx
}

// Context returns the request context
func (frc *FiberRequestContext) Context() context.Context {
	return frc.ctx.UserContext()
}

// Method returns the HTTP method
func (frc *FiberRequestContext) Method() string {
	return frc.ctx.Method()
}

// Path returns the request path
func (frc *FiberRequestContext) Path() string {
	return frc.ctx.Path()
}

// QueryParam returns a query parameter
func (frc *FiberRequestContext) QueryParam(key string) string {
	return frc.ctx.Query(key)
}

// Response returns the response writer
func (frc *FiberRequestContext) Response() peek.ResponseWriter {
	return &FiberResponse{ctx: frc.ctx}
}

// FiberResponse implements peek.ResponseWriter for Fiber
type FiberResponse struct {
	ctx *fiber.Ctx
}

// SetHeader sets a response header
func (fr *FiberResponse) SetHeader(key, value string) {
	fr.ctx.Set(key, value)
}

// String writes a string response
func (fr *FiberResponse) String(code int, s string) error {
	fr.ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return fr.ctx.Status(code).SendString(s)
}

// HTML writes an HTML response
func (fr *FiberResponse) HTML(code int, html string) error {
	fr.ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return fr.ctx.Status(code).SendString(html)
}

// JSON writes a JSON response
func (fr *FiberResponse) JSON(code int, v any) error {
	return fr.ctx.Status(code).JSON(v)
}
