package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/autoload-priority/internal/composer"
	"github.com/quantmind-br/autoload-priority/internal/priority"
	"github.com/quantmind-br/autoload-priority/internal/watch"
)

// Watch promotes p once, then again every time Composer rewrites one of
// its manifests. Only targets inside vendor/composer are watched.
// Our own writes trigger one extra run, which finds nothing to move.
func (o *Orchestrator) Watch(ctx context.Context, p priority.Project) error {
	proj, err := composer.LoadProject(p.Dir, p.VendorDir)
	if err != nil {
		return fmt.Errorf("failed to load project %s: %w", p.Dir, err)
	}

	targets, err := ResolveTargets(proj.ComposerDir(), o.config.Targets)
	if err != nil {
		return err
	}

	var files []string
	for _, t := range targets {
		if filepath.Dir(t.Path) == proj.ComposerDir() {
			files = append(files, filepath.Base(t.Path))
		}
	}

	if _, err := o.Run(ctx, p); err != nil {
		o.logger.Error().Err(err).Msg("Initial promotion failed, watching anyway")
	}

	w, err := watch.New(watch.Config{
		Dir:      proj.ComposerDir(),
		Files:    files,
		Debounce: o.config.Watch.Debounce,
		Logger:   o.logger,
		OnChange: func(ctx context.Context, changed []string) error {
			o.logger.Info().Strs("changed", changed).Msg("Manifests regenerated, promoting again")
			_, err := o.Run(ctx, p)
			return err
		},
	})
	if err != nil {
		return err
	}

	return w.Run(ctx)
}
