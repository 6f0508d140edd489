package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/autoload-priority/internal/app"
	"github.com/quantmind-br/autoload-priority/internal/autoload"
	"github.com/quantmind-br/autoload-priority/internal/composer"
	"github.com/quantmind-br/autoload-priority/internal/config"
	"github.com/quantmind-br/autoload-priority/internal/tui"
	"github.com/quantmind-br/autoload-priority/internal/utils"
)

func (c *cli) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [project-dir]",
		Short: "Diagnose a project's Composer setup",
		Long: `Checks the configuration, the Composer metadata, and every always-load
manifest of a project, and reports whether promotion would change anything.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Checking project setup...")

			cfg, err := c.loadConfig(args)
			fmt.Fprint(out, "  Config file: ")
			switch {
			case err != nil:
				printWarn(out, err.Error())
				cfg = config.Default()
				if len(args) > 0 {
					cfg.Project.Dir = args[0]
				}
			case c.v.ConfigFileUsed() != "":
				printOK(out, c.v.ConfigFileUsed())
			default:
				printOK(out, "defaults")
			}

			fmt.Fprintf(out, "  Project: %s\n", cfg.Project.Dir)
			if runDoctor(out, cfg) {
				fmt.Fprintln(out, tui.SuccessStyle.Render("\nAll critical checks passed!"))
			} else {
				fmt.Fprintln(out, tui.ErrorStyle.Render("\nSome checks failed. Please resolve the issues above."))
			}
			return nil
		},
	}
}

// runDoctor prints one line per check and reports whether all critical checks passed
func runDoctor(out io.Writer, cfg *config.Config) bool {
	allPassed := true
	dir := cfg.Project.Dir

	fmt.Fprint(out, "  composer.json: ")
	if utils.FileExists(filepath.Join(dir, "composer.json")) {
		printOK(out, "")
	} else {
		printWarn(out, "not found (root package files cannot be promoted)")
	}

	fmt.Fprint(out, "  Composer metadata: ")
	proj, err := composer.LoadProject(dir, cfg.Project.VendorDir)
	if err != nil {
		printFail(out, err.Error())
		return false
	}
	printOK(out, fmt.Sprintf("%d installed packages in %s", len(proj.Installed), proj.VendorDir))

	fmt.Fprint(out, "  Promotions: ")
	var promotions autoload.PromotionSet
	req, err := proj.WithExtra(app.ProjectFromConfig(cfg).Request())
	if err == nil {
		promotions, err = proj.Fragments(req)
	}
	switch {
	case err != nil:
		printFail(out, err.Error())
		allPassed = false
	case len(promotions) == 0:
		printWarn(out, "nothing configured")
	default:
		printOK(out, fmt.Sprintf("%d fragments", len(promotions)))
	}

	targets, err := app.ResolveTargets(proj.ComposerDir(), cfg.Targets)
	if err != nil {
		fmt.Fprint(out, "  Targets: ")
		printFail(out, err.Error())
		return false
	}

	for _, t := range targets {
		fmt.Fprintf(out, "  %s: ", filepath.Base(t.Path))
		if !checkTarget(out, t, promotions) && !t.Optional {
			allPassed = false
		}
	}

	return allPassed
}

func checkTarget(out io.Writer, t app.Target, promotions autoload.PromotionSet) bool {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		if os.IsNotExist(err) && t.Optional {
			printWarn(out, "not found (optional)")
		} else {
			printFail(out, err.Error())
		}
		return false
	}

	b, err := autoload.Parse(string(data), t.Format)
	if err != nil {
		printFail(out, err.Error())
		return false
	}

	switch {
	case b.IsEmpty():
		printOK(out, "no always-load entries")
	case autoload.IsPromoted(b.Entries, promotions):
		printOK(out, fmt.Sprintf("%d entries, in promoted order", len(b.Entries)))
	default:
		printWarn(out, fmt.Sprintf("%d entries, needs promotion", len(b.Entries)))
	}
	return true
}

func printOK(out io.Writer, detail string) {
	if detail == "" {
		fmt.Fprintln(out, tui.SuccessStyle.Render("OK"))
		return
	}
	fmt.Fprintf(out, "%s %s\n", tui.SuccessStyle.Render("OK"), tui.MutedStyle.Render("("+detail+")"))
}

func printWarn(out io.Writer, detail string) {
	fmt.Fprintf(out, "%s %s\n", tui.WarnStyle.Render("WARN"), tui.MutedStyle.Render("("+detail+")"))
}

func printFail(out io.Writer, detail string) {
	fmt.Fprintf(out, "%s %s\n", tui.ErrorStyle.Render("FAILED"), tui.MutedStyle.Render("("+detail+")"))
}
