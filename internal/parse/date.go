package parse

import (
	"strings"
	"time"
)

// dateLayouts covers the encodings seen in hand-edited journals and in
// document-database exports, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// Date parses a calendar timestamp from a raw cell. Unparsable input
// returns ok=false, never an error.
func Date(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
