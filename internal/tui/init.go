package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/autoload-priority/internal/composer"
	"github.com/quantmind-br/autoload-priority/internal/config"
)

// ErrAborted is returned when the user quits the form
var ErrAborted = errors.New("setup aborted")

// Options configures the setup form
type Options struct {
	// Config seeds the form, usually the currently loaded configuration
	Config     *config.Config
	Accessible bool
	SaveFunc   func(*config.Config) error
}

// Setup holds a prepared form and the values it edits
type Setup struct {
	Values *InitValues
	Form   *huh.Form

	base     *config.Config
	saveFunc func(*config.Config) error
}

// NewSetup prepares the form, offering the installed packages of the
// configured project. A project whose metadata cannot be read still gets a
// form without the package step.
func NewSetup(opts Options) (*Setup, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.SaveFunc == nil {
		return nil, fmt.Errorf("save function is required")
	}

	values := FromConfig(opts.Config)

	var choices []huh.Option[string]
	if proj, err := composer.LoadProject(opts.Config.Project.Dir, opts.Config.Project.VendorDir); err == nil {
		choices = PackageChoices(proj, values.Packages)
	}

	form := CreateInitForm(values, choices)
	if opts.Accessible {
		form = form.WithAccessible(true).WithTheme(GetAccessibleTheme())
	}

	return &Setup{
		Values:   values,
		Form:     form,
		base:     opts.Config,
		saveFunc: opts.SaveFunc,
	}, nil
}

// Save converts the edited values and hands them to the save function
func (s *Setup) Save() (*config.Config, error) {
	cfg, err := s.Values.ToConfig(s.base)
	if err != nil {
		return nil, err
	}
	if err := s.saveFunc(cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return cfg, nil
}

// Run shows the form and saves the result
func Run(opts Options) (*config.Config, error) {
	setup, err := NewSetup(opts)
	if err != nil {
		return nil, err
	}

	if err := setup.Form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, err
	}

	return setup.Save()
}
