// Package cli provides the command-line interface for the analytics
// application.
package cli

import (
	"fmt"
	"strings"
	"time"

	"edge-analysis/pkg/utils"
)

// FormatDate formats a date for display.
func FormatDate(t time.Time) string {
	return t.Format("02-Jan-2006")
}

// FormatOptionalR formats a nullable R multiple; nil renders as a dash.
func FormatOptionalR(r *float64) string {
	if r == nil {
		return "–"
	}
	return utils.FormatR(*r)
}

// FormatList joins a multi-valued field for display.
func FormatList(values []string) string {
	if len(values) == 0 {
		return "–"
	}
	return strings.Join(values, ", ")
}

// parseDateFlag parses a --from/--to style date flag. Empty input means
// no bound.
func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "02-Jan-2006", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD)", s)
}
