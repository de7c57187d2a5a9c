package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/docstamp/internal/git"
	"git.home.luguber.info/inful/docstamp/internal/templates"
)

// ValidateConfig validates a configuration after defaults were applied.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateProject(); err != nil {
		return err
	}
	if err := cv.validateRepository(); err != nil {
		return err
	}
	if err := cv.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (cv *configurationValidator) validateProject() error {
	p := cv.config.Project
	if p.StartYear < 1970 || p.StartYear > 9999 {
		return fmt.Errorf("project.start_year %d out of range", p.StartYear)
	}
	if strings.TrimSpace(p.DocName) == "" {
		return errors.New("project.doc_name must not be empty")
	}
	if strings.ContainsAny(p.DocName, `/\`) {
		return fmt.Errorf("project.doc_name %q must not contain path separators", p.DocName)
	}
	return nil
}

func (cv *configurationValidator) validateRepository() error {
	r := &cv.config.Repository
	backend, err := git.ParseBackend(r.Backend)
	if err != nil {
		return fmt.Errorf("repository.backend %q is not one of %v", r.Backend, git.ValidBackends())
	}
	r.Backend = string(backend)

	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return fmt.Errorf("repository.timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("repository.timeout must be positive, got %s", r.Timeout)
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	o := &cv.config.Output
	if strings.TrimSpace(o.Directory) == "" {
		return errors.New("output.directory must not be empty")
	}
	seen := make(map[templates.Format]bool, len(o.Formats))
	canonical := make([]string, 0, len(o.Formats))
	for _, raw := range o.Formats {
		f, err := templates.ParseFormat(raw)
		if err != nil {
			return fmt.Errorf("output.formats entry %q is not one of %v", raw, templates.ValidFormats())
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		canonical = append(canonical, string(f))
	}
	o.Formats = canonical
	return nil
}
