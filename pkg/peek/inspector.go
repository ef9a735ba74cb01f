package peek

import (
	"net/http"
	"strconv"
	"time"

	"github.com/toyz/peek/internal/errors"
	"github.com/toyz/peek/internal/introspect"
	"github.com/toyz/peek/internal/render"
	"github.com/toyz/peek/internal/selector"
	"github.com/toyz/peek/internal/utils"
)

// Inspector serves method listings for types found in source, resolving
// packages relative to a directory. Loaded packages are cached for the life
// of the Inspector.
type Inspector struct {
	loader *introspect.Loader
	opts   []Option
	diag   *utils.DiagnosticSystem
}

// NewInspector creates an inspector for packages under dir.
func NewInspector(dir string, opts ...Option) *Inspector {
	return &Inspector{
		loader: introspect.NewLoader(dir),
		opts:   opts,
		diag:   utils.NewDiagnosticSystem(utils.DiagnosticSilent),
	}
}

// SetDiagnostics routes request logs to d.
func (in *Inspector) SetDiagnostics(d *utils.DiagnosticSystem) {
	in.diag = d
}

// Register mounts GET /methods and GET /method on ws.
func (in *Inspector) Register(ws WebServer) {
	ws.Use(in.logRequests)
	ws.RegisterRoute(http.MethodGet, "/methods", in.MethodsHandler)
	ws.RegisterRoute(http.MethodGet, "/method", in.MethodHandler)
}

// MethodsHandler answers GET /methods?q=pkg.Type with the type's method
// list. private=1 lists unexported methods only, all=1 lists both.
func (in *Inspector) MethodsHandler(c RequestContext) error {
	sel, err := in.selector(c)
	if err != nil {
		return err
	}
	if sel.HasMethod() {
		return ErrBadRequest("selector names a method, use /method")
	}

	vis := introspect.Exported
	switch {
	case flag(c, "all"):
		vis = introspect.AllVisibility
	case flag(c, "private"):
		vis = introspect.Unexported
	}

	set, err := in.loader.TypeMethods(c.Context(), sel.Package, sel.Type, vis)
	if err != nil {
		return httpError(err)
	}
	return in.respond(c, set)
}

// MethodHandler answers GET /method?q=pkg.Type#Method with one signature.
func (in *Inspector) MethodHandler(c RequestContext) error {
	sel, err := in.selector(c)
	if err != nil {
		return err
	}
	if !sel.HasMethod() {
		return ErrBadRequest("selector must name a method: pkg.Type#Method")
	}

	m, err := in.loader.TypeMethod(c.Context(), sel.Package, sel.Type, sel.Method)
	if err != nil {
		return httpError(err)
	}
	return in.respond(c, m)
}

func (in *Inspector) selector(c RequestContext) (selector.Selector, error) {
	q := c.QueryParam("q")
	if q == "" {
		return selector.Selector{}, ErrBadRequest("missing query parameter q")
	}
	sel, err := selector.Parse(q)
	if err != nil {
		return selector.Selector{}, httpError(err)
	}
	return sel, nil
}

func (in *Inspector) respond(c RequestContext, v any) error {
	opts := resolve(in.opts)
	if flag(c, "plain") {
		opts.Plain = true
		opts.HTML = false
		return c.Response().String(http.StatusOK, render.Sprint(v, opts))
	}
	opts.HTML = true
	return c.Response().HTML(http.StatusOK, render.Sprint(v, opts))
}

func (in *Inspector) logRequests(next HandlerFunc) HandlerFunc {
	return func(c RequestContext) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			in.diag.Warn("%s %s?q=%s: %v", c.Method(), c.Path(), c.QueryParam("q"), err)
		} else {
			in.diag.Verbose("%s %s?q=%s (%s)", c.Method(), c.Path(), c.QueryParam("q"), time.Since(start))
		}
		return err
	}
}

func flag(c RequestContext, key string) bool {
	v := c.QueryParam(key)
	if v == "" {
		return false
	}
	on, err := strconv.ParseBool(v)
	return err != nil || on
}

func httpError(err error) *HTTPError {
	status := http.StatusInternalServerError
	switch errors.Code(err) {
	case errors.SyntaxErrorCode:
		status = http.StatusBadRequest
	case errors.NotFoundErrorCode:
		status = http.StatusNotFound
	}
	return &HTTPError{StatusCode: status, Message: err.Error(), Cause: err}
}
