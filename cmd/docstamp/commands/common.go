package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docstamp/internal/build"
	"git.home.luguber.info/inful/docstamp/internal/config"
	"git.home.luguber.info/inful/docstamp/internal/logfields"
	"git.home.luguber.info/inful/docstamp/internal/metrics"
)

// Global is shared state handed to every command.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer

	// newService builds the service used by render and watch; tests swap it.
	newService func() *build.DefaultBuildService
}

// NewGlobal creates the default command state writing results to stdout.
func NewGlobal(stdout io.Writer) *Global {
	return &Global{
		Logger:     slog.Default(),
		Stdout:     stdout,
		newService: build.NewBuildService,
	}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docstamp.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Resolve ResolveCmd `cmd:"" help:"Resolve revision metadata and print the substitutions"`
	Render  RenderCmd  `cmd:"" help:"Render all configured outputs"`
	Watch   WatchCmd   `cmd:"" help:"Re-render whenever HEAD moves or an input changes"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	Hash    HashCmd    `cmd:"" help:"Print the short hash of the latest commit"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig loads the configuration file, falling back to defaults when it
// does not exist, and reconfigures logging from it.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, found, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = newLogger(cfg.Logging, root.Verbose)
	slog.SetDefault(g.Logger)
	if !found {
		g.Logger.Debug("No configuration file, using defaults", logfields.Path(root.Config))
	}
	return cfg, nil
}

func newLogger(lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := lc.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newRecorder returns the metrics recorder for cfg plus a flush function that
// writes the textfile when metrics are enabled.
func newRecorder(cfg *config.Config, logger *slog.Logger) (metrics.Recorder, func()) {
	if !cfg.Metrics.Enabled {
		return metrics.NoopRecorder{}, func() {}
	}
	rec := metrics.NewPrometheusRecorder(nil)
	return rec, func() {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, rec.Registry()); err != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
			return
		}
		logger.Debug("Wrote metrics textfile", logfields.Path(cfg.Metrics.Textfile))
	}
}
