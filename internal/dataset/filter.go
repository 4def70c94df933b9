package dataset

import (
	"time"

	"edge-analysis/internal/models"
)

// Filter selects a subset of a canonical table. Zero values match
// everything; "All" is accepted as a wildcard to mirror the dashboard
// filter controls.
type Filter struct {
	From         *time.Time // inclusive, compared by calendar day
	To           *time.Time // inclusive
	Instrument   string
	Session      string
	EntryModel   string
	Account      string
	OnlyComplete bool
}

// Apply returns the trades matching the filter, preserving order. The
// input is never mutated.
func Apply(trades []models.CanonicalTrade, f Filter) []models.CanonicalTrade {
	out := make([]models.CanonicalTrade, 0, len(trades))
	for _, t := range trades {
		if f.matches(&t) {
			out = append(out, t)
		}
	}
	return out
}

func (f Filter) matches(t *models.CanonicalTrade) bool {
	if !matchLabel(f.Instrument, t.Instrument) {
		return false
	}
	if !matchLabel(f.Session, t.Session) {
		return false
	}
	if !matchLabel(f.Account, t.AccountGroup) {
		return false
	}
	if f.OnlyComplete && !t.IsComplete {
		return false
	}
	if f.EntryModel != "" && f.EntryModel != "All" {
		found := false
		for _, m := range t.EntryModels {
			if m == f.EntryModel {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.From != nil || f.To != nil {
		if t.Date == nil {
			return false
		}
		day := floorDay(*t.Date)
		if f.From != nil && day.Before(floorDay(*f.From)) {
			return false
		}
		if f.To != nil && day.After(floorDay(*f.To)) {
			return false
		}
	}
	return true
}

func matchLabel(want, got string) bool {
	return want == "" || want == "All" || want == got
}

func floorDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
