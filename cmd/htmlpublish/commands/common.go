package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/htmlpublish/internal/config"
	"git.home.luguber.info/inful/htmlpublish/internal/filelock"
	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlpublish/internal/logfields"
	"git.home.luguber.info/inful/htmlpublish/internal/metrics"
	"git.home.luguber.info/inful/htmlpublish/internal/publish"
)

// logLevel is shared by every handler so a loaded config can lower or raise
// the level after flag parsing.
var logLevel = new(slog.LevelVar)

// Global carries state shared by all subcommands.
type Global struct {
	Ctx      context.Context
	Out      io.Writer
	Recorder metrics.Recorder
	Registry *prom.Registry
}

// NewGlobal builds the shared state for one invocation. A Prometheus
// registry is only created when a metrics file was requested.
func NewGlobal(ctx context.Context, cli *CLI) *Global {
	g := &Global{Ctx: ctx, Out: os.Stdout, Recorder: metrics.NoopRecorder{}}
	if cli.MetricsFile != "" {
		g.Registry = prom.NewRegistry()
		g.Recorder = metrics.NewPrometheusRecorder(g.Registry)
	}
	return g
}

// FlushMetrics writes the gathered metrics to path, if metrics are enabled.
func (g *Global) FlushMetrics(path string) error {
	if g.Registry == nil || path == "" {
		return nil
	}
	if err := metrics.WriteTextfile(path, g.Registry); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write metrics file").
			WithContext("path", path).
			Build()
	}
	return nil
}

func (g *Global) publisher() *publish.Publisher {
	return publish.New(nil).WithLogger(slog.Default()).WithRecorder(g.Recorder)
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"htmlpublish.yaml" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `name:"log-format" help:"Log output format (text|json); defaults to logging.format from the config"`
	NoColor     bool             `name:"no-color" help:"Disable coloured output"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this file on exit (textfile collector format)" type:"path"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run        RunCmd        `cmd:"" help:"Run every step configured in the configuration file"`
	AccessFile AccessFileCmd `cmd:"" name:"access-file" help:"Copy an access file into every directory"`
	Stylesheet StylesheetCmd `cmd:"" help:"Copy a stylesheet into css/ next to every entry point"`
	Doctype    DoctypeCmd    `cmd:"" help:"Insert a doctype declaration in place of <html>"`
	Script     ScriptCmd     `cmd:"" help:"Insert a script before </head>"`
	Favicon    FaviconCmd    `cmd:"" help:"Insert a favicon link before </head>"`
	Analytics  AnalyticsCmd  `cmd:"" help:"Insert an analytics snippet before </body>"`
	Update     UpdateCmd     `cmd:"" help:"Replace the first occurrence of a tag in every .html file"`
	Init       InitCmd       `cmd:"" help:"Write an example configuration file"`
	Watch      WatchCmd      `cmd:"" help:"Run all steps, then re-run whenever the tree changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	if c.NoColor {
		color.NoColor = true
	}
	logLevel.Set(slog.LevelInfo)
	if c.Verbose {
		logLevel.Set(slog.LevelDebug)
	}
	configureLogger(config.NormalizeLogFormat(c.LogFormat))
	return nil
}

func configureLogger(format config.LogFormat) {
	slog.SetDefault(slog.New(format.Handler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

// applyLogging lets the config file choose level and format unless the
// corresponding flags were given.
func (c *CLI) applyLogging(cfg *config.Config) {
	if !c.Verbose {
		logLevel.Set(cfg.Logging.Level.Slog())
	}
	if c.LogFormat == "" {
		configureLogger(cfg.Logging.Format)
	}
}

// loadConfig loads the configuration file and applies a --base-dir override.
func (c *CLI) loadConfig(baseDir string) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if baseDir != "" {
		abs, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, ferrors.ConfigError("cannot resolve base directory").
				WithCause(err).
				WithContext("path", baseDir).
				Build()
		}
		cfg.BaseDir = abs
	}
	c.applyLogging(cfg)
	return cfg, nil
}

// withLock runs fn while holding the tree lock for root. A missing root is
// reported before a lock file is created next to it.
func withLock(root string, fn func() error) error {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return ferrors.ConfigError("base directory does not exist or is not a directory").
			WithContext("path", root).
			Build()
	}
	lock, err := filelock.Acquire(root)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("Failed to release lock", logfields.Path(lock.Path()), logfields.Error(err))
		}
	}()
	return fn()
}

// TemplateFlags selects replacement markup inline or from a file.
type TemplateFlags struct {
	Template     string `help:"Replacement markup" xor:"template"`
	TemplateFile string `name:"template-file" help:"File holding the replacement markup" type:"existingfile" xor:"template"`
}

// Content returns the selected template.
func (t TemplateFlags) Content() (string, error) {
	if t.Template == "" && t.TemplateFile == "" {
		return "", ferrors.ValidationError("one of --template or --template-file is required").Build()
	}
	return (&config.TemplateConfig{Template: t.Template, TemplateFile: t.TemplateFile}).Content()
}
