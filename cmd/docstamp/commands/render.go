package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docstamp/internal/build"
	"git.home.luguber.info/inful/docstamp/internal/config"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Output string `short:"o" help:"Output directory (overrides output.directory)"`
	DryRun bool   `name:"dry-run" help:"Render without writing files"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	result, err := runBuild(context.Background(), g, cfg, build.BuildRequest{
		Config:    cfg,
		OutputDir: r.Output,
		Options:   build.BuildOptions{DryRun: r.DryRun},
	})
	if err != nil {
		return err
	}
	for _, f := range result.Files {
		_, _ = fmt.Fprintln(g.Stdout, f)
	}
	return nil
}

// runBuild executes one build with the configured recorder and flushes metrics afterwards.
func runBuild(ctx context.Context, g *Global, cfg *config.Config, req build.BuildRequest) (*build.BuildResult, error) {
	rec, flush := newRecorder(cfg, g.Logger)
	defer flush()
	svc := g.newService().WithRecorder(rec).WithLogger(g.Logger)
	return svc.Run(ctx, req)
}
