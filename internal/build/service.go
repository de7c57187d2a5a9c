package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docstamp/internal/config"
	"git.home.luguber.info/inful/docstamp/internal/revision"
)

// BuildService is the canonical interface for executing a stamping build.
type BuildService interface {
	// Run resolves revision metadata and renders every configured output.
	// Resolution failures never fail the build; they show up as warnings on
	// the result's Info and as fallback substitutions.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// OutputDir overrides Config.Output.Directory when non-empty.
	OutputDir string

	Options BuildOptions
}

// BuildOptions provides optional build behavior modifiers.
type BuildOptions struct {
	// DryRun renders everything but writes nothing.
	DryRun bool
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// BuildID is attached to every log line of the build.
	BuildID string

	Status BuildStatus

	// Info is the resolved revision metadata.
	Info revision.Info

	// Substitutions is the name→value map handed to the renderers.
	Substitutions map[string]string

	// Fallbacks lists substitution keys that could not be resolved.
	Fallbacks revision.Fallbacks

	// OutputPath is the directory files were written to.
	OutputPath string

	// Files holds the written paths (rendered names under DryRun).
	Files []string

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates every output was rendered and all metadata resolved.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusDegraded indicates every output was rendered with at least one fallback value.
	BuildStatusDegraded BuildStatus = "degraded"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the build was cancelled.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if every output was rendered.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusDegraded
}
