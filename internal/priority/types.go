package priority

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/quantmind-br/autoload-priority/internal/composer"
)

// Batch represents a complete batch file
type Batch struct {
	Projects []Project `yaml:"projects" json:"projects"`
	Options  Options   `yaml:"options" json:"options"`
}

// Project is one Composer project and its promotion settings
type Project struct {
	Dir       string   `yaml:"dir" json:"dir"`
	VendorDir string   `yaml:"vendor_dir,omitempty" json:"vendor_dir,omitempty"`
	Packages  []string `yaml:"packages,omitempty" json:"packages,omitempty"`
	Files     []string `yaml:"files,omitempty" json:"files,omitempty"`
	Root      bool     `yaml:"root,omitempty" json:"root,omitempty"`
}

// Request converts the project's promotion settings into a composer request
func (p Project) Request() composer.Request {
	return composer.Request{
		Packages: p.Packages,
		Root:     p.Root,
		Files:    p.Files,
	}
}

// Options represents batch-wide options
type Options struct {
	ContinueOnError bool `yaml:"continue_on_error" json:"continue_on_error"`
	Concurrency     int  `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
}

// Validate validates the batch
func (b *Batch) Validate() error {
	if len(b.Projects) == 0 {
		return ErrNoProjects
	}
	for i, p := range b.Projects {
		if p.Dir == "" {
			return fmt.Errorf("project %d: %w", i, ErrEmptyDir)
		}
	}
	return nil
}

// ResolveDirs makes relative project dirs relative to base, usually the
// directory holding the batch file.
func (b *Batch) ResolveDirs(base string) {
	for i := range b.Projects {
		if !filepath.IsAbs(b.Projects[i].Dir) {
			b.Projects[i].Dir = filepath.Join(base, b.Projects[i].Dir)
		}
	}
}

// IsPattern reports whether the project dir is a glob such as "apps/*"
func (p Project) IsPattern() bool {
	return strings.ContainsAny(p.Dir, "*?[{")
}

// Expand replaces every pattern project with one project per matching
// directory that holds a composer.json, in lexical order. The expanded
// projects share the pattern's settings. Dirs must already be resolved.
// Installed packages are not projects: matches inside a vendor directory or
// below an already matched project are dropped.
func (b *Batch) Expand() error {
	var out []Project
	for i, p := range b.Projects {
		if !p.IsPattern() {
			out = append(out, p)
			continue
		}

		matches, err := doublestar.FilepathGlob(filepath.Join(p.Dir, "composer.json"))
		if err != nil {
			return fmt.Errorf("project %d: invalid pattern %q: %w", i, p.Dir, err)
		}
		sort.Strings(matches)

		base := staticBase(p.Dir)
		var roots []string
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			dir := filepath.Dir(m)
			if inVendorDir(base, dir) || belowAny(roots, dir) {
				continue
			}
			roots = append(roots, dir)

			expanded := p
			expanded.Dir = dir
			out = append(out, expanded)
		}

		if len(roots) == 0 {
			return fmt.Errorf("project %d: %w: %s", i, ErrNoMatch, p.Dir)
		}
	}
	b.Projects = out
	return nil
}

// staticBase is the leading part of a pattern that holds no glob syntax
func staticBase(pattern string) string {
	base := pattern
	for strings.ContainsAny(base, "*?[{") {
		base = filepath.Dir(base)
	}
	return base
}

// inVendorDir reports whether dir sits in a vendor directory below base
func inVendorDir(base, dir string) bool {
	rel, err := filepath.Rel(base, dir)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == composer.DefaultVendorDir {
			return true
		}
	}
	return false
}

func belowAny(roots []string, dir string) bool {
	for _, r := range roots {
		if strings.HasPrefix(dir, r+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() Options {
	return Options{
		ContinueOnError: false,
		Concurrency:     4,
	}
}
