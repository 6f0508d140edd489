package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/autoload-priority/internal/composer"
	"github.com/quantmind-br/autoload-priority/internal/config"
)

// PackageChoices lists the installed packages that declare always-load files,
// sorted by name. Packages already in selected come first, in their order,
// so a re-run of init keeps the configured priority.
func PackageChoices(proj *composer.Project, selected []string) []huh.Option[string] {
	var names []string
	counts := make(map[string]int)
	for _, pkg := range proj.Installed {
		if len(pkg.Autoload.Files) == 0 {
			continue
		}
		names = append(names, pkg.Name)
		counts[pkg.Name] = len(pkg.Autoload.Files)
	}
	sort.Strings(names)

	opts := make([]huh.Option[string], 0, len(names))
	seen := make(map[string]bool)
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		label := fmt.Sprintf("%s (%d files)", name, counts[name])
		if counts[name] == 1 {
			label = fmt.Sprintf("%s (1 file)", name)
		}
		opts = append(opts, huh.NewOption(label, name).Selected(containsName(selected, name)))
	}

	for _, name := range selected {
		if _, ok := counts[name]; ok {
			add(name)
		}
	}
	for _, name := range names {
		add(name)
	}
	return opts
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// CreateInitForm builds the setup form. The package step is left out when
// the project has no installed package declaring always-load files.
func CreateInitForm(values *InitValues, packages []huh.Option[string]) *huh.Form {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Key("project_dir").
				Title("Project Directory").
				Description("Directory holding composer.json").
				Value(&values.ProjectDir).
				Placeholder(config.DefaultProjectDir).
				Validate(ValidateRequired),

			huh.NewInput().
				Key("vendor_dir").
				Title("Vendor Directory").
				Description("Leave empty to use composer.json config.vendor-dir or \"vendor\"").
				Value(&values.VendorDir),
		).Title("Project"),
	}

	if len(packages) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("packages").
				Title("Packages to Promote").
				Description("Their always-load files are moved to the top, in this order").
				Options(packages...).
				Value(&values.Packages),
		).Title("Packages"))
	}

	groups = append(groups,
		huh.NewGroup(
			huh.NewConfirm().
				Key("root").
				Title("Promote Root Files").
				Description("Also load the project's own autoload.files early").
				Value(&values.Root),

			huh.NewText().
				Key("files").
				Title("Extra Fragments").
				Description("Path fragments to promote, one per line (e.g. /src/bootstrap.php)").
				Value(&values.Files).
				Validate(ValidateFragments),
		).Title("Files"),

		huh.NewGroup(
			huh.NewInput().
				Key("workers").
				Title("Workers").
				Description("Projects processed in parallel in batch mode (1-64)").
				Value(&values.Workers).
				Placeholder(fmt.Sprint(config.DefaultWorkers)).
				Validate(ValidateIntRange(1, 64)),

			huh.NewInput().
				Key("debounce").
				Title("Watch Debounce").
				Description("Quiet period before watch mode promotes again (e.g., 300ms)").
				Value(&values.Debounce).
				Placeholder(config.DefaultWatchDebounce.String()).
				Validate(ValidateDurationAtLeast(config.MinWatchDebounce)),

			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(huh.NewOptions("trace", "debug", "info", "warn", "error")...).
				Value(&values.LogLevel).
				Validate(ValidateLogLevel),

			huh.NewSelect[string]().
				Key("log_format").
				Title("Log Format").
				Options(huh.NewOptions("pretty", "json")...).
				Value(&values.LogFormat).
				Validate(ValidateLogFormat),
		).Title("Runtime"),
	)

	return huh.NewForm(groups...).WithTheme(GetTheme())
}
