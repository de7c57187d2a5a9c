// Package config loads the docstamp YAML configuration.
package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
)

// CurrentVersion is the only configuration version understood.
const CurrentVersion = "1.0"

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "docstamp.yaml"

// Config represents a docstamp configuration file.
type Config struct {
	Version    string           `yaml:"version"`
	Project    ProjectConfig    `yaml:"project"`
	Repository RepositoryConfig `yaml:"repository"`
	Links      LinksConfig      `yaml:"links"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ProjectConfig describes the document being stamped.
type ProjectConfig struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title,omitempty"`
	Author      string `yaml:"author"`
	Affiliation string `yaml:"affiliation,omitempty"`
	StartYear   int    `yaml:"start_year"` // first year of the copyright range
	DocName     string `yaml:"doc_name"`   // base name of the PDF build output
}

// RepositoryConfig selects where and how revision metadata is queried.
type RepositoryConfig struct {
	Path      string `yaml:"path"`                 // any directory inside the work tree
	Backend   string `yaml:"backend"`              // exec|gogit
	GitBinary string `yaml:"git_binary,omitempty"` // exec backend only
	Timeout   string `yaml:"timeout"`              // per query, Go duration
}

// LinksConfig shapes the hash-embedding PDF link "<pdf_prefix><hash><pdf_suffix>".
type LinksConfig struct {
	PDFPrefix string `yaml:"pdf_prefix,omitempty"`
	PDFSuffix string `yaml:"pdf_suffix,omitempty"`
}

// OutputConfig controls rendered files.
type OutputConfig struct {
	Directory string   `yaml:"directory"`
	Formats   []string `yaml:"formats"`
	Templates []string `yaml:"templates,omitempty"` // extra user template files
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables the Prometheus textfile dump.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile,omitempty"`
}

// QueryTimeout returns the parsed repository timeout. Call after Load, which validates it.
func (c *Config) QueryTimeout() time.Duration {
	d, err := time.ParseDuration(c.Repository.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Load loads and validates a configuration file. A .env or .env.local file next
// to it is loaded first so ${VAR} references can be expanded.
func Load(configPath string) (*Config, error) {
	if envFile, err := loadEnvFile(filepath.Dir(configPath)); err == nil {
		slog.Debug("Loaded environment variables", "path", envFile)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				WithCause(err).
				WithContext("file", configPath).
				Build()
		}
		return nil, errors.ConfigError("failed to read config file").WithCause(err).WithContext("file", configPath).Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.ConfigError("failed to parse config file").WithCause(err).WithContext("file", configPath).Build()
	}

	if cfg.Version != CurrentVersion {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration version: %q (expected %s)", cfg.Version, CurrentVersion)).
			WithContext("file", configPath).
			Build()
	}

	if err := finalize(&cfg); err != nil {
		return nil, errors.ValidationError("configuration validation failed").
			WithCause(err).
			WithContext("file", configPath).
			Build()
	}
	return &cfg, nil
}

// LoadOrDefault loads configPath, or returns Default() when the file does not
// exist. The boolean reports whether a file was read.
func LoadOrDefault(configPath string) (*Config, bool, error) {
	cfg, err := Load(configPath)
	if err == nil {
		return cfg, true, nil
	}
	if errors.HasCategory(err, errors.CategoryNotFound) {
		return Default(), false, nil
	}
	return nil, false, err
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	// Defaults always validate; a failure here is a programming error.
	if err := finalize(cfg); err != nil {
		panic(fmt.Sprintf("default configuration invalid: %v", err))
	}
	return cfg
}

func finalize(cfg *Config) error {
	if err := NewDefaultApplier().ApplyDefaults(cfg); err != nil {
		return fmt.Errorf("failed to apply defaults: %w", err)
	}
	return ValidateConfig(cfg)
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Config{
		Version: CurrentVersion,
		Project: ProjectConfig{
			Name:        "code-packaging-minicourse",
			Title:       "Python code packaging for scientific software",
			Author:      "${DOCSTAMP_AUTHOR}",
			Affiliation: "University of Toronto",
			StartYear:   2020,
			DocName:     "code-packaging",
		},
		Repository: RepositoryConfig{
			Path:    ".",
			Backend: "exec",
			Timeout: "10s",
		},
		Output: OutputConfig{
			Directory: "_stamp",
			Formats:   []string{"rst", "latex-preamble", "latex-title", "markdown", "html"},
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Metrics: MetricsConfig{Enabled: false, Textfile: "docstamp.prom"},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.InternalError("failed to marshal example config").WithCause(err).Build()
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.FileSystemError("failed to create config directory").WithCause(err).Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.FileSystemError("failed to write config file").WithCause(err).WithContext("file", configPath).Build()
	}
	return nil
}
