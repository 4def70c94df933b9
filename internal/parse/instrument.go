// Package parse provides pure single-value field parsers for raw trade
// cells. Parsers never fail; unparsable input resolves to a documented
// sentinel (empty string, Unknown, or a false ok flag).
package parse

import (
	"regexp"
	"strings"
)

var instrumentPatterns = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`(?i)xau|gold`), "Gold"},
	{regexp.MustCompile(`(?i)nas|ndx|nasdaq|us100`), "NASDAQ"},
	{regexp.MustCompile(`(?i)audusd|aud/?usd|\bau\b|\baud\b`), "AUDUSD"},
}

// Instrument canonicalizes an asset tag. Unmatched non-empty input passes
// through trimmed; empty input reads as "Unknown".
func Instrument(raw string) string {
	for _, p := range instrumentPatterns {
		if p.re.MatchString(raw) {
			return p.name
		}
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return "Unknown"
	}
	return s
}

var (
	newYorkRe = regexp.MustCompile(`\bny\b|nyc|new ?york|us session|us open|new-?york`)
	londonRe  = regexp.MustCompile(`london|ldn|uk session|eu session|euro`)
	asiaRe    = regexp.MustCompile(`asia|asian|tokyo|sydney`)
)

// Session canonicalizes a trading-session label to one of the fixed set
// (Asia, London, New York) or title-cases the input as a free-text
// fallback. Empty and "nan" read as "".
func Session(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" || t == "nan" {
		return ""
	}
	switch {
	case newYorkRe.MatchString(t):
		return "New York"
	case londonRe.MatchString(t):
		return "London"
	case asiaRe.MatchString(t):
		return "Asia"
	}
	return TitleCase(t)
}

var accountGroups = map[string]string{
	"late ft":                             "Forward Test",
	"ft on demo challenge":                "Forward Test",
	"live on challenge":                   "Challenge Accounts",
	"live on funded":                      "Funded Account",
	"live on personal":                    "Personal Accounts",
	"live on track record & trade copier": "Personal Accounts",
	"track record account":                "Track Record Account",
	"live on track record":                "Track Record Account",
	"trade copier":                        "Track Record Account",
}

// AccountGroup maps known account-type phrases onto a small canonical
// set. Unknown non-empty input is title-cased and passed through; empty
// input reads as "".
func AccountGroup(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if g, ok := accountGroups[strings.ToLower(s)]; ok {
		return g
	}
	return TitleCase(s)
}

// TitleCase capitalizes the first letter of every word, lowercasing the
// rest, matching the free-text fallback used across the parsers.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startWord := true
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '-' || r == '/':
			startWord = true
			b.WriteRune(r)
		case startWord:
			b.WriteString(strings.ToUpper(string(r)))
			startWord = false
		default:
			b.WriteString(strings.ToLower(string(r)))
		}
	}
	return b.String()
}
