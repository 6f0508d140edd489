package domain

import (
	"time"

	"github.com/quantmind-br/autoload-priority/internal/autoload"
)

// TargetStatus summarises what happened to one manifest file
type TargetStatus string

const (
	StatusPromoted  TargetStatus = "promoted"
	StatusUnchanged TargetStatus = "unchanged"
	StatusEmpty     TargetStatus = "empty"
	StatusSkipped   TargetStatus = "skipped"
	StatusDrift     TargetStatus = "drift"
	StatusFailed    TargetStatus = "failed"
)

// TargetResult is the outcome for one manifest file
type TargetResult struct {
	Path    string          `json:"path"`
	Format  string          `json:"format"`
	Status  TargetStatus    `json:"status"`
	Entries int             `json:"entries"`
	Moves   []autoload.Move `json:"moves,omitempty"`
	Err     error           `json:"-"`
}

// ProjectResult is the outcome for one Composer project
type ProjectResult struct {
	Dir        string                `json:"dir"`
	Promotions autoload.PromotionSet `json:"promotions"`
	Targets    []TargetResult        `json:"targets"`
	Duration   time.Duration         `json:"duration"`
	Err        error                 `json:"-"`
}

// Changed reports whether any target was rewritten or would be
func (r *ProjectResult) Changed() bool {
	for _, t := range r.Targets {
		if t.Status == StatusPromoted || t.Status == StatusDrift {
			return true
		}
	}
	return false
}
