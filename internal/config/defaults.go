package config

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/docstamp/internal/git"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// CompositeDefaultApplier applies defaults across all configuration domains.
type CompositeDefaultApplier struct {
	appliers []DefaultApplier
	now      func() time.Time
}

// NewDefaultApplier creates a composite default applier with all domain appliers.
func NewDefaultApplier() *CompositeDefaultApplier {
	return newDefaultApplierAt(time.Now)
}

func newDefaultApplierAt(now func() time.Time) *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []DefaultApplier{
			&ProjectDefaultApplier{now: now},
			&RepositoryDefaultApplier{},
			&LinksDefaultApplier{},
			&OutputDefaultApplier{},
			&LoggingDefaultApplier{},
			&MetricsDefaultApplier{},
		},
		now: now,
	}
}

// ApplyDefaults applies defaults for all configuration domains, in order.
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

// ProjectDefaultApplier handles project defaults.
type ProjectDefaultApplier struct {
	now func() time.Time
}

func (p *ProjectDefaultApplier) Domain() string { return "project" }

func (p *ProjectDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Project.Name == "" {
		cfg.Project.Name = "docs"
	}
	if cfg.Project.DocName == "" {
		cfg.Project.DocName = cfg.Project.Name
	}
	if cfg.Project.StartYear == 0 {
		cfg.Project.StartYear = p.now().Year()
	}
	return nil
}

// RepositoryDefaultApplier handles repository defaults.
type RepositoryDefaultApplier struct{}

func (r *RepositoryDefaultApplier) Domain() string { return "repository" }

func (r *RepositoryDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Repository.Path == "" {
		cfg.Repository.Path = "."
	}
	if strings.TrimSpace(cfg.Repository.Backend) == "" {
		cfg.Repository.Backend = string(git.BackendExec)
	}
	if cfg.Repository.GitBinary == "" {
		cfg.Repository.GitBinary = "git"
	}
	if cfg.Repository.Timeout == "" {
		cfg.Repository.Timeout = git.DefaultTimeout.String()
	}
	return nil
}

// LinksDefaultApplier derives the PDF link pattern from the document name.
type LinksDefaultApplier struct{}

func (l *LinksDefaultApplier) Domain() string { return "links" }

func (l *LinksDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Links.PDFPrefix == "" {
		cfg.Links.PDFPrefix = "pdf/" + cfg.Project.DocName + "-rev"
	}
	if cfg.Links.PDFSuffix == "" {
		cfg.Links.PDFSuffix = ".pdf"
	}
	return nil
}

// OutputDefaultApplier handles output defaults.
type OutputDefaultApplier struct{}

func (o *OutputDefaultApplier) Domain() string { return "output" }

func (o *OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "_stamp"
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{"rst", "latex-preamble", "latex-title", "markdown", "html"}
	}
	return nil
}

// LoggingDefaultApplier normalizes logging enums.
type LoggingDefaultApplier struct{}

func (l *LoggingDefaultApplier) Domain() string { return "logging" }

func (l *LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}

// MetricsDefaultApplier handles metrics defaults.
type MetricsDefaultApplier struct{}

func (m *MetricsDefaultApplier) Domain() string { return "metrics" }

func (m *MetricsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Metrics.Enabled && cfg.Metrics.Textfile == "" {
		cfg.Metrics.Textfile = "docstamp.prom"
	}
	return nil
}
