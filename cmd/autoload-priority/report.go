package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quantmind-br/autoload-priority/internal/domain"
	"github.com/quantmind-br/autoload-priority/internal/tui"
)

// nameStyle pads manifest names so the status column lines up
var nameStyle = lipgloss.NewStyle().Width(22)

// printReport writes one block per project with a line per manifest
func printReport(w io.Writer, results []*domain.ProjectResult, opts domain.CommonOptions) {
	for _, r := range results {
		if r == nil {
			continue
		}

		fmt.Fprintf(w, "%s %s\n",
			tui.TitleStyle.Render(r.Dir),
			tui.MutedStyle.Render(fmt.Sprintf("(%d fragments, %s)", len(r.Promotions), r.Duration.Round(time.Millisecond))))

		if len(r.Targets) == 0 && r.Err != nil {
			fmt.Fprintf(w, "  %s %s\n", tui.ErrorStyle.Render("✗"), r.Err)
			continue
		}

		for _, t := range r.Targets {
			fmt.Fprintf(w, "  %s\n", targetLine(t, opts))
		}
	}
}

func targetLine(t domain.TargetResult, opts domain.CommonOptions) string {
	name := nameStyle.Render(filepath.Base(t.Path))
	moved := len(t.Moves)

	switch t.Status {
	case domain.StatusPromoted:
		verb := "promoted"
		if opts.DryRun {
			verb = "would promote"
		}
		return fmt.Sprintf("%s %s %s", tui.SuccessStyle.Render("✓"), name,
			fmt.Sprintf("%s, %d of %d entries moved", verb, moved, t.Entries))
	case domain.StatusUnchanged:
		return fmt.Sprintf("%s %s %s", tui.SuccessStyle.Render("✓"), name,
			tui.MutedStyle.Render(fmt.Sprintf("already in order (%d entries)", t.Entries)))
	case domain.StatusEmpty:
		return fmt.Sprintf("%s %s %s", tui.MutedStyle.Render("•"), name, tui.MutedStyle.Render("nothing to reorder"))
	case domain.StatusSkipped:
		return fmt.Sprintf("%s %s %s", tui.MutedStyle.Render("•"), name, tui.MutedStyle.Render("skipped (not found)"))
	case domain.StatusDrift:
		return fmt.Sprintf("%s %s %s", tui.WarnStyle.Render("!"), name,
			tui.WarnStyle.Render(fmt.Sprintf("not promoted, %d entries out of place", moved)))
	default:
		return fmt.Sprintf("%s %s %s", tui.ErrorStyle.Render("✗"), name, tui.ErrorStyle.Render(fmt.Sprint(t.Err)))
	}
}
