package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/quantmind-br/autoload-priority/internal/autoload"
	"github.com/quantmind-br/autoload-priority/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Project     ProjectConfig     `mapstructure:"project" yaml:"project"`
	Promote     PromoteConfig     `mapstructure:"promote" yaml:"promote"`
	Targets     []TargetConfig    `mapstructure:"targets" yaml:"targets"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Write       WriteConfig       `mapstructure:"write" yaml:"write"`
	Watch       WatchConfig       `mapstructure:"watch" yaml:"watch"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// ProjectConfig locates the Composer project
type ProjectConfig struct {
	Dir       string `mapstructure:"dir" yaml:"dir"`
	VendorDir string `mapstructure:"vendor_dir" yaml:"vendor_dir,omitempty"`
}

// PromoteConfig selects what gets promoted
type PromoteConfig struct {
	Packages []string `mapstructure:"packages" yaml:"packages"`
	Files    []string `mapstructure:"files" yaml:"files"`
	Root     bool     `mapstructure:"root" yaml:"root"`
}

// TargetConfig is one generated manifest, relative to vendor/composer.
// Format is "static", "files", or empty when Start and End are given.
type TargetConfig struct {
	Path     string `mapstructure:"path" yaml:"path"`
	Format   string `mapstructure:"format" yaml:"format,omitempty"`
	Start    string `mapstructure:"start" yaml:"start,omitempty"`
	End      string `mapstructure:"end" yaml:"end,omitempty"`
	Optional bool   `mapstructure:"optional" yaml:"optional,omitempty"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// WriteConfig controls how rewritten manifests are persisted
type WriteConfig struct {
	MaxRetries   int           `mapstructure:"max_retries" yaml:"max_retries"`
	InitialDelay time.Duration `mapstructure:"initial_delay" yaml:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay" yaml:"max_delay"`
}

// WatchConfig contains watch mode settings
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format,omitempty"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = DefaultWorkers
	}
	if c.Write.MaxRetries < 0 {
		c.Write.MaxRetries = DefaultWriteRetries
	}
	if c.Write.InitialDelay <= 0 {
		c.Write.InitialDelay = DefaultWriteInitialDelay
	}
	if c.Write.MaxDelay < c.Write.InitialDelay {
		c.Write.MaxDelay = DefaultWriteMaxDelay
	}
	if c.Watch.Debounce < MinWatchDebounce {
		c.Watch.Debounce = DefaultWatchDebounce
	}
	if c.Project.Dir == "" {
		c.Project.Dir = DefaultProjectDir
	}
	if len(c.Targets) == 0 {
		c.Targets = DefaultTargets()
	}
	for i, t := range c.Targets {
		if t.Path == "" {
			return domain.NewValidationError(fmt.Sprintf("targets[%d].path", i), "path is required")
		}
		if _, err := t.AutoloadFormat(); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return domain.NewValidationError(fmt.Sprintf("targets[%d].%s", i, ve.Field), ve.Message)
			}
			return err
		}
	}
	return nil
}

// AutoloadFormat resolves the block markers of the target
func (t TargetConfig) AutoloadFormat() (autoload.Format, error) {
	switch t.Format {
	case autoload.StaticFormat.Name:
		return autoload.StaticFormat, nil
	case autoload.FilesFormat.Name:
		return autoload.FilesFormat, nil
	case "":
		if t.Start == "" || t.End == "" {
			return autoload.Format{}, domain.NewValidationError("format",
				fmt.Sprintf("target %s needs a format or both start and end markers", t.Path))
		}
		return autoload.Format{Name: t.Path, Start: t.Start, End: t.End}, nil
	default:
		return autoload.Format{}, domain.NewValidationError("format",
			fmt.Sprintf("unknown format %q for target %s", t.Format, t.Path))
	}
}
