package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/autoload-priority/internal/config"
)

// InitValues holds form values that map to the Config struct.
// Numeric and duration fields are stored as strings for form editing.
type InitValues struct {
	ProjectDir string
	VendorDir  string

	Packages []string
	Root     bool
	Files    string

	Workers  string
	Debounce string

	LogLevel  string
	LogFormat string
}

// FromConfig creates InitValues from a Config
func FromConfig(cfg *config.Config) *InitValues {
	return &InitValues{
		ProjectDir: cfg.Project.Dir,
		VendorDir:  cfg.Project.VendorDir,
		Packages:   append([]string(nil), cfg.Promote.Packages...),
		Root:       cfg.Promote.Root,
		Files:      strings.Join(cfg.Promote.Files, "\n"),
		Workers:    strconv.Itoa(cfg.Concurrency.Workers),
		Debounce:   cfg.Watch.Debounce.String(),
		LogLevel:   cfg.Logging.Level,
		LogFormat:  cfg.Logging.Format,
	}
}

// ToConfig applies the values on top of base, which is left unmodified.
// Blank numeric and duration fields keep the base value.
func (v *InitValues) ToConfig(base *config.Config) (*config.Config, error) {
	cfg := *base
	cfg.Targets = append([]config.TargetConfig(nil), base.Targets...)

	cfg.Project.Dir = strings.TrimSpace(v.ProjectDir)
	cfg.Project.VendorDir = strings.TrimSpace(v.VendorDir)

	cfg.Promote = config.PromoteConfig{
		Packages: append([]string(nil), v.Packages...),
		Files:    SplitList(v.Files),
		Root:     v.Root,
	}

	if s := strings.TrimSpace(v.Workers); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid workers: %w", err)
		}
		cfg.Concurrency.Workers = n
	}

	if s := strings.TrimSpace(v.Debounce); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid debounce: %w", err)
		}
		cfg.Watch.Debounce = d
	}

	if v.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(v.LogLevel)
	}
	if v.LogFormat != "" {
		cfg.Logging.Format = strings.ToLower(v.LogFormat)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
