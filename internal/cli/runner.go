package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/toyz/peek/internal/errors"
	"github.com/toyz/peek/internal/introspect"
	"github.com/toyz/peek/internal/render"
	"github.com/toyz/peek/internal/selector"
	"github.com/toyz/peek/internal/utils"
	"github.com/toyz/peek/pkg/peek"
)

// shutdownTimeout bounds how long "serve" waits for in-flight requests
const shutdownTimeout = 5 * time.Second

// Runner executes the peek subcommands
type Runner struct {
	cfg     Config
	diag    *utils.DiagnosticSystem
	out     io.Writer
	loader  *introspect.Loader
	modules *ModuleResolver
}

// NewRunner creates a runner writing results to out and progress to diag
func NewRunner(cfg Config, diag *utils.DiagnosticSystem, out io.Writer) *Runner {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	return &Runner{
		cfg:     cfg,
		diag:    diag,
		out:     out,
		loader:  introspect.NewLoader(cfg.Dir),
		modules: NewModuleResolver(),
	}
}

// Method prints the signature of the method named by a pkg.Type#Method selector
func (r *Runner) Method(ctx context.Context, input string) error {
	sel, err := r.parse(input)
	if err != nil {
		return err
	}
	if !sel.HasMethod() {
		return errors.NewSelectorError(input, len(input), errors.New(errors.SyntaxErrorCode, "selector must name a method")).
			WithSuggestion("use pkg.Type#Method, or the methods command to list them all")
	}

	r.diag.StartProgress("Loading " + sel.Package)
	m, err := r.loader.TypeMethod(ctx, sel.Package, sel.Type, sel.Method)
	r.diag.EndProgress(err == nil, "")
	if err != nil {
		return err
	}
	return render.Fprint(r.out, m, r.cfg.Options)
}

// Methods prints the method list of the type named by a pkg.Type selector
func (r *Runner) Methods(ctx context.Context, input string) error {
	sel, err := r.parse(input)
	if err != nil {
		return err
	}
	if sel.HasMethod() {
		return r.Method(ctx, input)
	}

	r.diag.StartProgress("Loading " + sel.Package)
	set, err := r.loader.TypeMethods(ctx, sel.Package, sel.Type, r.cfg.Visibility)
	r.diag.EndProgress(err == nil, "")
	if err != nil {
		return err
	}
	r.diag.Verbose("%d methods on %s", set.Len(), set.Origin)
	stats := r.loader.CacheStats()
	r.diag.Summary("Package cache", map[string]interface{}{
		"packages": stats.Size,
		"hits":     stats.Hits,
		"misses":   stats.Misses,
	})
	return render.Fprint(r.out, set, r.cfg.Options)
}

// File decodes a JSON or YAML document and prints it
func (r *Runner) File(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapFileSystemError("read", path, err)
	}

	var doc any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		return errors.Newf(errors.SyntaxErrorCode, "unsupported document type %q", ext).
			WithContext("path", path).
			WithSuggestion("use a .json, .yaml or .yml file")
	}
	if err != nil {
		return errors.WrapParseError(path, err)
	}

	r.diag.Verbose("decoded %s (%d bytes)", path, len(data))
	return render.Fprint(r.out, doc, r.cfg.Options)
}

// Serve runs the HTTP inspector on addr until ctx is cancelled
func (r *Runner) Serve(ctx context.Context, addr, framework string) error {
	factory, err := Frameworks.GetOrError(strings.ToLower(framework))
	if err != nil {
		return errors.ConfigurationError("framework", err.Error()).
			WithSuggestion("available frameworks: " + strings.Join(FrameworkNames(), ", "))
	}

	ws := factory()
	inspector := peek.NewInspector(r.cfg.Dir, peek.WithOptions(r.cfg.Options))
	inspector.SetDiagnostics(r.diag)
	inspector.Register(ws)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.Start(addr)
	}()
	r.diag.Info("%s inspector listening on %s", ws.Name(), addr)
	r.diag.Section("Routes")
	r.diag.Indent()
	r.diag.List("GET /methods?q=pkg.Type[&all=1|&private=1][&plain=1]")
	r.diag.List("GET /method?q=pkg.Type%%23Method[&plain=1]")
	r.diag.Unindent()

	select {
	case err := <-errCh:
		if err == nil {
			return nil
		}
		return errors.Wrap(errors.UnknownErrorCode, ws.Name()+" server stopped", err)
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	r.diag.Info("shutting down %s inspector", ws.Name())
	if err := ws.Stop(stopCtx); err != nil {
		return errors.Wrap(errors.UnknownErrorCode, "failed to stop "+ws.Name()+" server", err)
	}
	r.diag.Success("%s inspector stopped", ws.Name())
	return nil
}

func (r *Runner) parse(input string) (selector.Selector, error) {
	sel, err := selector.Parse(input)
	if err != nil {
		return sel, err
	}
	info := r.modules.Resolve(r.cfg.Dir)
	if info == nil {
		r.diag.Debug("%s is not inside a module", r.cfg.Dir)
		return sel, nil
	}

	// relative patterns become import paths so both spellings share one
	// loaded package
	path, err := r.modules.ImportPath(info, r.cfg.Dir, sel.Package)
	if err != nil {
		return sel, errors.NewSelectorError(input, 0, err).
			WithSuggestion("use a package inside module " + info.Path + " or a full import path")
	}
	r.diag.Verbose("resolved %s to %s in module %s", sel, path, info.Path)
	sel.Package = path
	return sel, nil
}
