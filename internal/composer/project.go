package composer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/quantmind-br/autoload-priority/internal/autoload"
)

// Project is a Composer project on disk
type Project struct {
	Dir       string
	VendorDir string
	Root      *RootPackage
	Installed []Package
}

// LoadProject reads composer.json and installed.json under dir.
// vendorDir overrides config.vendor-dir when non-empty; relative values are
// resolved against dir. A missing composer.json is not an error.
func LoadProject(dir, vendorDir string) (*Project, error) {
	p := &Project{Dir: dir}

	root, err := readRoot(filepath.Join(dir, "composer.json"))
	if err != nil {
		return nil, err
	}
	p.Root = root

	switch {
	case vendorDir != "":
	case root != nil && root.Config.VendorDir != "":
		vendorDir = root.Config.VendorDir
	default:
		vendorDir = DefaultVendorDir
	}
	if !filepath.IsAbs(vendorDir) {
		vendorDir = filepath.Join(dir, vendorDir)
	}
	p.VendorDir = vendorDir

	installed, err := readInstalled(filepath.Join(p.ComposerDir(), "installed.json"))
	if err != nil {
		return nil, err
	}
	p.Installed = installed

	return p, nil
}

// ComposerDir is the directory holding the generated autoload manifests
func (p *Project) ComposerDir() string {
	return filepath.Join(p.VendorDir, "composer")
}

// Package looks up an installed package by name
func (p *Project) Package(name string) (*Package, bool) {
	for i := range p.Installed {
		if strings.EqualFold(p.Installed[i].Name, name) {
			return &p.Installed[i], true
		}
	}
	return nil, false
}

// IsRoot reports whether name is the project's own package
func (p *Project) IsRoot(name string) bool {
	return p.Root != nil && p.Root.Name != "" && strings.EqualFold(p.Root.Name, name)
}

// WithExtra appends the settings of composer.json extra.autoload-priority
// after those already in req.
func (p *Project) WithExtra(req Request) (Request, error) {
	if p.Root == nil {
		return req, nil
	}
	extra, err := p.Root.Priority()
	if err != nil {
		return req, fmt.Errorf("%w: extra.%s: %v", ErrInvalidMetadata, ExtraKey, err)
	}
	return Request{
		Packages: append(slices.Clone(req.Packages), extra.Packages...),
		Root:     req.Root || extra.Root,
		Files:    append(slices.Clone(req.Files), extra.Files...),
	}, nil
}

// Fragments builds the promotion set for req. Packages that declare no
// always-load files contribute nothing; unknown packages are an error.
func (p *Project) Fragments(req Request) (autoload.PromotionSet, error) {
	var set autoload.PromotionSet
	seen := make(map[string]bool)
	add := func(f string) {
		if f == "" || seen[f] {
			return
		}
		seen[f] = true
		set = append(set, f)
	}

	rootAdded := false
	for _, name := range req.Packages {
		if p.IsRoot(name) {
			for _, f := range rootFragments(p.Root) {
				add(f)
			}
			rootAdded = true
			continue
		}

		pkg, ok := p.Package(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
		}
		for _, f := range PackageFragments(pkg) {
			add(f)
		}
	}

	if req.Root && !rootAdded && p.Root != nil {
		for _, f := range rootFragments(p.Root) {
			add(f)
		}
	}

	for _, f := range req.Files {
		add(f)
	}

	return set, nil
}

// PackageFragments returns one fragment per always-load file of pkg, in
// declaration order. The fragment is the file path relative to the vendor
// directory with a leading slash, as Composer writes it into the manifest.
func PackageFragments(pkg *Package) []string {
	base := installDir(pkg)
	out := make([]string, 0, len(pkg.Autoload.Files))
	for _, f := range pkg.Autoload.Files {
		out = append(out, "/"+path.Join(base, filepath.ToSlash(f)))
	}
	return out
}

// rootFragments quotes each root file the way Composer emits it after the
// base dir ($baseDir . '/src/x.php'), so a vendor file with the same
// relative path ('/other/lib/src/x.php') never matches.
func rootFragments(root *RootPackage) []string {
	out := make([]string, 0, len(root.Autoload.Files))
	for _, f := range root.Autoload.Files {
		out = append(out, "'/"+path.Clean(filepath.ToSlash(f))+"'")
	}
	return out
}

// installDir resolves a package's directory relative to the vendor dir.
// install-path is relative to vendor/composer; packages installed outside the
// vendor dir (path repositories) keep their path below the project root.
func installDir(pkg *Package) string {
	if pkg.InstallPath == "" {
		return pkg.Name
	}
	rel := path.Clean(path.Join("composer", filepath.ToSlash(pkg.InstallPath)))
	for strings.HasPrefix(rel, "../") {
		rel = strings.TrimPrefix(rel, "../")
	}
	return rel
}

func readRoot(file string) (*RootPackage, error) {
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read composer.json: %w", err)
	}

	var root RootPackage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMetadata, file, err)
	}
	return &root, nil
}

func readInstalled(file string) ([]Package, error) {
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInstalledNotFound, file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read installed.json: %w", err)
	}

	return ParseInstalled(data)
}

// ParseInstalled decodes both installed.json layouts
func ParseInstalled(data []byte) ([]Package, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var pkgs []Package
		if err := json.Unmarshal(data, &pkgs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
		}
		return pkgs, nil
	}

	var v2 installedV2
	if err := json.Unmarshal(data, &v2); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	return v2.Packages, nil
}
