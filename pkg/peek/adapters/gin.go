package adapters

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/toyz/peek/pkg/peek"
)

// GinAdapter implements peek.WebServer for the Gin framework
type GinAdapter struct {
	engine *gin.Engine

	mu     sync.Mutex
	server *http.Server
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a new Gin adapter with a recovering Gin instance
func NewDefaultGinAdapter() *GinAdapter {
	g := gin.New()
	g.Use(gin.Recovery())
	return &GinAdapter{engine: g}
}

// RegisterRoute registers a route with the Gin engine
func (ga *GinAdapter) RegisterRoute(method, path string, handler peek.HandlerFunc, middlewares ...peek.MiddlewareFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(middlewares)+1)
	for _, mw := range middlewares {
		handlers = append(handlers, ga.convertMiddleware(mw))
	}
	handlers = append(handlers, ga.convertHandler(handler))
	ga.engine.Handle(method, path, handlers...)
}

// Use adds global middleware
func (ga *GinAdapter) Use(middleware peek.MiddlewareFunc) {
	ga.engine.Use(ga.convertMiddleware(middleware))
}

// Start starts the Gin server behind an http.Server so Stop can shut it down
func (ga *GinAdapter) Start(addr string) error {
	ga.mu.Lock()
	ga.server = &http.Server{Addr: addr, Handler: ga.engine}
	server := ga.server
	ga.mu.Unlock()

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down
func (ga *GinAdapter) Stop(ctx context.Context) error {
	ga.mu.Lock()
	server := ga.server
	ga.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

func (ga *GinAdapter) convertHandler(handler peek.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler(&GinRequestContext{ctx: c}); err != nil {
			c.JSON(peek.StatusOf(err), errorBody(err))
		}
	}
}

// convertMiddleware converts peek.MiddlewareFunc to gin.HandlerFunc
func (ga *GinAdapter) convertMiddleware(middleware peek.MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := func(peek.RequestContext) error {
			c.Next()
			if len(c.Errors) > 0 {
				return c.Errors.Last().Err
			}
			return nil
		}

		if err := middleware(next)(&GinRequestContext{ctx: c}); err != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(peek.StatusOf(err), errorBody(err))
		}
	}
}

// GinRequestContext implements peek.RequestContext for Gin
type GinRequestContext struct {
	ctx *gin.Context
}

// Context returns the request context
func (grc *GinRequestContext) Context() context.Context {
	return grc.ctx.Request.Context()
}

// Method returns the HTTP method
func (grc *GinRequestContext) Method() string {
	return grc.ctx.Request.Method
}

// Path returns the request path
func (grc *GinRequestContext) Path() string {
	return grc.ctx.Request.URL.Path
}

// QueryParam returns a query parameter
func (grc *GinRequestContext) QueryParam(key string) string {
	return grc.ctx.Query(key)
}

// Response returns the response writer
func (grc *GinRequestContext) Response() peek.ResponseWriter {
	return &GinResponse{ctx: grc.ctx}
}

// GinResponse implements peek.ResponseWriter for Gin
type GinResponse struct {
	ctx *gin.Context
}

// SetHeader sets a response header
func (gr *GinResponse) SetHeader(key, value string) {
	gr.ctx.Header(key, value)
}

// String writes a string response
func (gr *GinResponse) String(code int, s string) error {
	gr.ctx.Data(code, "text/plain; charset=utf-8", []byte(s))
	return nil
}

// HTML writes an HTML response
func (gr *GinResponse) HTML(code int, html string) error {
	gr.ctx.Data(code, "text/html; charset=utf-8", []byte(html))
	return nil
}

// JSON writes a JSON response
func (gr *GinResponse) JSON(code int, v any) error {
	gr.ctx.JSON(code, v)
	return nil
}
