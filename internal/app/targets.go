package app

import (
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/autoload-priority/internal/autoload"
	"github.com/quantmind-br/autoload-priority/internal/config"
)

// Target is one manifest file of a project and the block format inside it
type Target struct {
	Path     string
	Format   autoload.Format
	Optional bool
}

// ResolveTargets turns configured targets into absolute paths. Relative
// paths are taken from composerDir (vendor/composer).
func ResolveTargets(composerDir string, targets []config.TargetConfig) ([]Target, error) {
	out := make([]Target, 0, len(targets))
	for i, t := range targets {
		format, err := t.AutoloadFormat()
		if err != nil {
			return nil, fmt.Errorf("invalid targets[%d]: %w", i, err)
		}

		path := t.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(composerDir, path)
		}

		out = append(out, Target{
			Path:     path,
			Format:   format,
			Optional: t.Optional,
		})
	}
	return out, nil
}
