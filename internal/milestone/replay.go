// Package milestone reconstructs effective deadlines from the appeal ledger and applies
// deadline extensions.
package milestone

import (
	"slices"
	"time"

	"github.com/shrimpsizemoose/pacekeeper/internal/models"
)

// Sorted returns a copy of appeals in ledger order: timestamp, student, milestone number
// and then milestone type, with FE immediately before F1.
func Sorted(appeals []models.MilestoneAppeal) []models.MilestoneAppeal {
	out := slices.Clone(appeals)
	slices.SortStableFunc(out, func(a, b models.MilestoneAppeal) int {
		return a.Compare(&b)
	})
	return out
}

// Replay walks the ledger in order and returns the last new date it sets, or base when no
// appeal sets one. appeals is not modified.
func Replay(base *time.Time, appeals []models.MilestoneAppeal) *time.Time {
	effective := base
	for _, a := range Sorted(appeals) {
		if a.NewMsDt != nil {
			effective = a.NewMsDt
		}
	}
	if effective == nil {
		return nil
	}
	d := models.DateOf(*effective)
	return &d
}

// attempts returns the last attempts-allowed override in the ledger, or base.
func attempts(base *int, appeals []models.MilestoneAppeal) *int {
	n := base
	for _, a := range Sorted(appeals) {
		if a.AttemptsAllowed != nil {
			n = a.AttemptsAllowed
		}
	}
	return n
}
