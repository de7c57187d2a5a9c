package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docstamp/internal/config"
	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
	"git.home.luguber.info/inful/docstamp/internal/git"
	"git.home.luguber.info/inful/docstamp/internal/logfields"
	"git.home.luguber.info/inful/docstamp/internal/metrics"
	"git.home.luguber.info/inful/docstamp/internal/revision"
	"git.home.luguber.info/inful/docstamp/internal/templates"
)

// QuerierFactory creates the version-control collaborator for a configuration.
type QuerierFactory func(cfg *config.Config) (git.Querier, error)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	querierFactory QuerierFactory
	recorder       metrics.Recorder
	clock          revision.Clock
	logger         *slog.Logger
	newID          func() string
}

// NewBuildService creates a new DefaultBuildService with default factories.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		querierFactory: QuerierFromConfig,
		recorder:       metrics.NoopRecorder{},
		clock:          time.Now,
		logger:         slog.Default(),
		newID:          uuid.NewString,
	}
}

// WithQuerierFactory allows injecting a custom querier factory (for testing).
func (s *DefaultBuildService) WithQuerierFactory(factory QuerierFactory) *DefaultBuildService {
	s.querierFactory = factory
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(rec metrics.Recorder) *DefaultBuildService {
	if rec != nil {
		s.recorder = rec
	}
	return s
}

// WithClock sets the clock read for the build date.
func (s *DefaultBuildService) WithClock(c revision.Clock) *DefaultBuildService {
	s.clock = c
	return s
}

// WithLogger sets the base logger; every build derives a child carrying its build id.
func (s *DefaultBuildService) WithLogger(l *slog.Logger) *DefaultBuildService {
	if l != nil {
		s.logger = l
	}
	return s
}

// QuerierFromConfig builds the configured git backend.
func QuerierFromConfig(cfg *config.Config) (git.Querier, error) {
	backend, err := git.ParseBackend(cfg.Repository.Backend)
	if err != nil {
		return nil, errors.ValidationError("invalid repository backend").WithCause(err).Build()
	}
	return git.New(backend, git.Options{
		Dir:     cfg.Repository.Path,
		Binary:  cfg.Repository.GitBinary,
		Timeout: cfg.QueryTimeout(),
	})
}

// Run executes one build.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := time.Now()
	result := &BuildResult{
		BuildID:   s.newID(),
		StartTime: startTime,
	}
	logger := s.logger.With(logfields.BuildID(result.BuildID))

	finish := func(status BuildStatus) {
		result.Status = status
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(startTime)
		s.recorder.ObserveBuildDuration(result.Duration)
	}

	if req.Config == nil {
		finish(BuildStatusFailed)
		return result, errors.ConfigError("config required").Build()
	}
	cfg := req.Config

	result.OutputPath = cfg.Output.Directory
	if req.OutputDir != "" {
		result.OutputPath = req.OutputDir
	}

	querier, err := s.querierFactory(cfg)
	if err != nil {
		finish(BuildStatusFailed)
		return result, err
	}

	logger.Info("Resolving revision metadata",
		logfields.Repository(cfg.Repository.Path),
		logfields.Backend(querier.Name()))

	resolver := revision.NewResolver(querier, cfg.Project.StartYear,
		revision.WithClock(s.clock),
		revision.WithLogger(logger),
		revision.WithRecorder(s.recorder))
	result.Info = resolver.Resolve(ctx)

	link := revision.LinkPattern{Prefix: cfg.Links.PDFPrefix, Suffix: cfg.Links.PDFSuffix}
	result.Substitutions, result.Fallbacks = revision.Substitutions(result.Info, link)
	for _, key := range result.Fallbacks {
		s.recorder.IncFallback(key)
		logger.Warn("Using fallback substitution", logfields.Key(key), slog.String("value", result.Substitutions[key]))
	}

	if err := ctx.Err(); err != nil {
		finish(BuildStatusCancelled)
		return result, err
	}

	data := templates.NewData(result.Substitutions, templates.Project{
		Name:        cfg.Project.Name,
		Title:       cfg.Project.Title,
		Author:      cfg.Project.Author,
		Affiliation: cfg.Project.Affiliation,
	})

	files, err := s.render(cfg, result.OutputPath, data, req.Options.DryRun, logger)
	result.Files = files
	if err != nil {
		finish(BuildStatusFailed)
		return result, err
	}

	status := BuildStatusSuccess
	if len(result.Fallbacks) > 0 {
		status = BuildStatusDegraded
	}
	finish(status)
	logger.Info("Build completed",
		slog.String("status", string(status)),
		slog.Int("files", len(result.Files)),
		logfields.Since(startTime))
	return result, nil
}

type output struct {
	format string // metrics label
	name   string
	render func() (name, content string, err error)
}

func (s *DefaultBuildService) render(cfg *config.Config, outDir string, data map[string]any, dryRun bool, logger *slog.Logger) ([]string, error) {
	var outputs []output
	for _, raw := range cfg.Output.Formats {
		f, err := templates.ParseFormat(raw)
		if err != nil {
			return nil, errors.ValidationError("unknown output format").WithCause(err).WithContext("format", raw).Build()
		}
		outputs = append(outputs, output{
			format: string(f),
			name:   f.FileName(),
			render: func() (string, string, error) {
				content, err := templates.Render(f, data)
				return f.FileName(), content, err
			},
		})
	}
	for _, path := range cfg.Output.Templates {
		outputs = append(outputs, output{
			format: "template",
			name:   filepath.Base(path),
			render: func() (string, string, error) { return templates.RenderFile(path, data) },
		})
	}

	files := make([]string, 0, len(outputs))
	for _, out := range outputs {
		name, content, err := out.render()
		if name == "" {
			name = out.name
		}
		s.recorder.IncRender(out.format, err == nil)
		if err != nil {
			return files, errors.RenderError("failed to render output").
				WithCause(err).
				WithContext("format", out.format).
				WithContext("name", name).
				Build()
		}
		if dryRun {
			logger.Debug("Rendered output (dry run)", logfields.Format(out.format), logfields.Path(name))
			files = append(files, name)
			continue
		}
		written, err := templates.WriteGeneratedFile(outDir, name, content)
		if err != nil {
			return files, errors.FileSystemError("failed to write output").
				WithCause(err).
				WithContext("path", filepath.Join(outDir, name)).
				Build()
		}
		logger.Debug("Wrote output", logfields.Format(out.format), logfields.Path(written))
		files = append(files, written)
	}
	return files, nil
}
