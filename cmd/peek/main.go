package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toyz/peek/internal/cli"
	"github.com/toyz/peek/internal/config"
	"github.com/toyz/peek/internal/errors"
	"github.com/toyz/peek/internal/introspect"
	"github.com/toyz/peek/internal/render"
	"github.com/toyz/peek/internal/utils"
)

// flags holds the global command-line flags
type flags struct {
	plain    bool
	noIndex  bool
	indent   int
	natural  bool
	html     bool
	color    string
	theme    string
	maxDepth int
	verbose  bool
	quiet    bool
	dir      string

	private bool
	all     bool

	addr      string
	framework string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// run executes the CLI and reports failures to stderr
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f flags
	root := newRootCmd(&f, stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		reporter := cli.NewDiagnosticReporter(f.verbose)
		reporter.SetOutput(stderr)
		reporter.ReportError(err)
	}
	return err
}

func newRootCmd(f *flags, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "peek",
		Short: "Pretty-print Go method sets, method signatures and data documents",
		Long: `peek renders Go types and values as indented, colorized text.

Selectors name a type, and optionally a method, inside a package:

  Reader                         type in the package of --dir
  ./internal/store.Cache         type in a package relative to --dir
  net/http.Client#Do             method of a type in any importable package

Defaults are read from $PEEK_CONFIG or the XDG config file peek/config.yaml,
then from NO_COLOR, FORCE_COLOR, PEEK_INDENT and PEEK_INDEX. Flags win.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.BoolVar(&f.plain, "plain", false, "disable colors")
	pf.BoolVar(&f.noIndex, "no-index", false, "omit [i] prefixes in lists")
	pf.IntVar(&f.indent, "indent", 4, "indentation width; negative left-aligns map keys")
	pf.BoolVar(&f.natural, "natural", false, "natural sort order (m2 before m10)")
	pf.BoolVar(&f.html, "html", false, "emit HTML with <kbd> color tags")
	pf.StringVar(&f.color, "color", "auto", "color mode: auto, always or never")
	pf.StringVar(&f.theme, "theme", "", "color theme: "+strings.Join(themeNames(), ", "))
	pf.IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting depth, 0 for unlimited")
	pf.BoolVar(&f.verbose, "verbose", false, "enable verbose output")
	pf.BoolVar(&f.quiet, "quiet", false, "only show errors")
	pf.StringVar(&f.dir, "dir", ".", "directory package patterns are resolved against")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(
		newMethodCmd(f, stdout, stderr),
		newMethodsCmd(f, stdout, stderr),
		newFileCmd(f, stdout, stderr),
		newServeCmd(f, stdout, stderr),
	)
	return root
}

func newMethodCmd(f *flags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "method <pkg.Type#Method>",
		Short:   "Print the signature of one method",
		Example: "  peek method net/http.Client#Do",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, f, stdout, stderr)
			if err != nil {
				return err
			}
			return runner.Method(cmd.Context(), args[0])
		},
	}
}

func newMethodsCmd(f *flags, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "methods <pkg.Type>",
		Short: "List the methods of a type",
		Long: `List the methods callable on an addressable value of the type,
including those promoted from embedded fields, sorted by name.`,
		Example: "  peek methods --natural ./internal/store.Cache\n  peek methods --private bytes.Buffer",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, f, stdout, stderr)
			if err != nil {
				return err
			}
			return runner.Methods(cmd.Context(), args[0])
		},
	}
	cmd.Flags().BoolVar(&f.private, "private", false, "list unexported methods only")
	cmd.Flags().BoolVar(&f.all, "all", false, "list exported and unexported methods")
	cmd.MarkFlagsMutuallyExclusive("private", "all")
	return cmd
}

func newFileCmd(f *flags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "file <path.json|path.yaml>",
		Short: "Pretty-print a JSON or YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, f, stdout, stderr)
			if err != nil {
				return err
			}
			return runner.File(args[0])
		},
	}
}

func newServeCmd(f *flags, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve method listings over HTTP",
		Long: `Serve GET /methods?q=<pkg.Type> and GET /method?q=<pkg.Type#Method>.

Responses are HTML unless plain=1 is given. /methods also accepts
private=1 and all=1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cmd, f, stdout, stderr)
			if err != nil {
				return err
			}
			return runner.Serve(cmd.Context(), f.addr, f.framework)
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", "127.0.0.1:7070", "listen address")
	cmd.Flags().StringVar(&f.framework, "framework", "echo", "web framework: "+strings.Join(cli.FrameworkNames(), ", "))
	return cmd
}

func newRunner(cmd *cobra.Command, f *flags, stdout, stderr io.Writer) (*cli.Runner, error) {
	diag := diagnostics(f, stderr)

	opts, err := config.Load()
	if err != nil {
		return nil, err
	}
	opts, err = applyFlags(cmd, f, opts)
	if err != nil {
		return nil, err
	}
	diag.Debug("options: color=%s plain=%t html=%t index=%t indent=%d max-depth=%d", opts.Color, opts.Plain, opts.HTML, opts.Index, opts.Indent, opts.MaxDepth)

	vis := introspect.Exported
	switch {
	case f.all:
		vis = introspect.AllVisibility
	case f.private:
		vis = introspect.Unexported
	}

	cfg := cli.Config{
		Dir:        f.dir,
		Visibility: vis,
		Options:    opts,
		Verbose:    f.verbose,
	}
	return cli.NewRunner(cfg, diag, stdout), nil
}

func diagnostics(f *flags, stderr io.Writer) *utils.DiagnosticSystem {
	level := utils.DiagnosticInfo
	switch {
	case f.quiet:
		level = utils.DiagnosticError
	case f.verbose:
		level = utils.DiagnosticVerbose
	}
	diag := utils.NewDiagnosticSystem(level)
	if stderr != os.Stderr {
		diag.SetOutput(stderr)
	}
	return diag
}

// applyFlags overlays the flags the user set on top of the loaded options
func applyFlags(cmd *cobra.Command, f *flags, opts render.Options) (render.Options, error) {
	changed := cmd.Flags().Changed

	if changed("color") {
		mode, ok := render.ParseColorMode(f.color)
		if !ok {
			return opts, errors.ConfigurationError("color", fmt.Sprintf("unknown mode %q", f.color)).
				WithSuggestion("use one of: auto, always, never")
		}
		opts.Color = mode
	}
	if changed("plain") {
		opts.Plain = f.plain
	}
	if changed("no-index") {
		opts.Index = !f.noIndex
	}
	if changed("indent") {
		opts.Indent = f.indent
	}
	if changed("natural") && f.natural {
		opts.Sort = introspect.SortNatural
	}
	if changed("html") {
		opts.HTML = f.html
	}
	if changed("max-depth") {
		if f.maxDepth < 0 {
			return opts, errors.ConfigurationError("max-depth", "must not be negative")
		}
		opts.MaxDepth = f.maxDepth
	}
	if changed("theme") {
		theme, err := render.LookupTheme(f.theme)
		if err != nil {
			return opts, errors.ConfigurationError("theme", err.Error()).
				WithSuggestion("available themes: " + strings.Join(themeNames(), ", "))
		}
		opts.Theme = theme
	}
	return opts, nil
}

func themeNames() []string {
	names := render.Themes.List()
	sort.Strings(names)
	return names
}
