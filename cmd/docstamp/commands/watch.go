package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docstamp/internal/build"
	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/docstamp/internal/git"
	"git.home.luguber.info/inful/docstamp/internal/logfields"
	"git.home.luguber.info/inful/docstamp/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output string `short:"o" help:"Output directory (overrides output.directory)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}

	gitDir, err := git.FindGitDir(cfg.Repository.Path)
	if err != nil {
		return errors.NewError(errors.CategoryVCS, "cannot watch a directory outside a git repository").
			WithCause(err).
			WithContext("path", cfg.Repository.Path).
			Build()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher, err := watch.New(func(ctx context.Context) error {
		_, err := runBuild(ctx, g, cfg, build.BuildRequest{Config: cfg, OutputDir: w.Output})
		return err
	}, watch.WithLogger(g.Logger))
	if err != nil {
		return errors.NewError(errors.CategoryRuntime, "failed to start watcher").WithCause(err).Build()
	}

	if err := watcher.AddGitDir(gitDir); err != nil {
		_ = watcher.Close()
		return errors.NewError(errors.CategoryRuntime, "failed to watch git directory").WithCause(err).Build()
	}
	for _, path := range cfg.Output.Templates {
		if err := watcher.AddFile(path); err != nil {
			_ = watcher.Close()
			return errors.NewError(errors.CategoryRuntime, "failed to watch template").WithCause(err).Build()
		}
	}

	g.Logger.Info("Watching for changes", logfields.Path(gitDir))
	return watcher.Run(ctx)
}
