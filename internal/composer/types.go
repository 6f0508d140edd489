package composer

import (
	"encoding/json"
)

// DefaultVendorDir is Composer's vendor directory when config.vendor-dir is unset
const DefaultVendorDir = "vendor"

// ExtraKey is the composer.json "extra" section read by this tool
const ExtraKey = "autoload-priority"

// Autoload holds the autoload section of a package
type Autoload struct {
	Files []string `json:"files,omitempty"`
}

// Package is one entry of installed.json
type Package struct {
	Name        string   `json:"name"`
	InstallPath string   `json:"install-path,omitempty"`
	Autoload    Autoload `json:"autoload"`
}

// PriorityExtra is the extra.autoload-priority section of composer.json
type PriorityExtra struct {
	Packages []string `json:"packages,omitempty"`
	Files    []string `json:"files,omitempty"`
	Root     bool     `json:"root,omitempty"`
}

// RootPackage is the subset of the project's composer.json this tool reads
type RootPackage struct {
	Name     string   `json:"name"`
	Autoload Autoload `json:"autoload"`
	Config   struct {
		VendorDir string `json:"vendor-dir,omitempty"`
	} `json:"config"`
	Extra map[string]json.RawMessage `json:"extra,omitempty"`
}

// Priority decodes extra.autoload-priority, returning a zero value when absent
func (r *RootPackage) Priority() (PriorityExtra, error) {
	var p PriorityExtra
	raw, ok := r.Extra[ExtraKey]
	if !ok {
		return p, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, err
	}
	return p, nil
}

// installedV2 is the Composer 2 installed.json layout
type installedV2 struct {
	Packages []Package `json:"packages"`
}

// Request selects what to promote. Packages come first in the given order,
// then the root package files, then raw fragments.
type Request struct {
	Packages []string
	Root     bool
	Files    []string
}
