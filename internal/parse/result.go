package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Result label sentinels returned by ResultLabel.
const (
	LabelWin  = "WIN"
	LabelBE   = "BE"
	LabelLoss = "LOSS"
)

// resultVariants maps known literal result phrases to a label. The set
// is deliberately narrow: a bare "win" stays unmapped so classification
// falls through to the RR and PnL signs. "early close (ended up being a
// be)" maps to WIN per product rule, rewarding the early exit rather
// than the final break-even.
var resultVariants = map[string]string{
	"full tp":                            LabelWin,
	"early close (ended up being a win)": LabelWin,
	"early close (ended up being a be)":  LabelWin,
	"breakeven":                          LabelBE,
	"break even":                         LabelBE,
	"b/e":                                LabelBE,
	"loss":                               LabelLoss,
}

// ResultLabel maps a raw textual result onto WIN, BE or LOSS by exact
// lookup after trim and lower-casing. Anything unrecognized reads as "".
func ResultLabel(raw string) string {
	return resultVariants[strings.ToLower(strings.TrimSpace(raw))]
}

// modelAliases normalizes known strategy phrases by substring match, in
// order. Longer, more specific phrases come first.
var modelAliases = []struct {
	contains string
	label    string
}{
	{"internal fbos", "Internal FBoS Protected Structure"},
	{"external fbos", "External FBOS Protected Structure"},
	{"internal protected structure", "Internal Protected Structure"},
	{"external protected structure", "External Protected Structure"},
	{"internal no close", "Internal No Close"},
	{"external no close", "External No Close"},
}

// knownModels is the canonical strategy set, in preference order.
var knownModels = map[string]bool{
	"Internal FBoS Protected Structure": true,
	"Internal No Close":                 true,
	"Internal Protected Structure":      true,
	"External FBOS Protected Structure": true,
	"External No Close":                 true,
	"External Protected Structure":      true,
}

// NormalizeEntryModel canonicalizes one strategy token. Placeholder
// answers (yes/no/n-a) read as ""; unknown tokens are title-cased.
func NormalizeEntryModel(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return ""
	}
	for _, a := range modelAliases {
		if strings.Contains(t, a.contains) {
			return a.label
		}
	}
	switch t {
	case "yes", "no", "n/a", "na":
		return ""
	}
	return TitleCase(t)
}

// ModelsList combines the entry-model and multi-entry cells into an
// ordered, deduplicated list of canonical strategy labels. Tokens that
// hit the known canonical set win over title-cased fallbacks; when none
// do, the fallbacks are returned sorted and unique.
func ModelsList(entryModel, multiEntry string) []string {
	var models []string
	for _, tok := range append(SplitList(entryModel), SplitList(multiEntry)...) {
		if m := NormalizeEntryModel(tok); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil
	}

	var keep []string
	seen := make(map[string]bool)
	for _, m := range models {
		if knownModels[m] && !seen[m] {
			seen[m] = true
			keep = append(keep, m)
		}
	}
	if len(keep) > 0 {
		return keep
	}

	uniq := make(map[string]bool)
	var out []string
	for _, m := range models {
		if !uniq[m] {
			uniq[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// DurationBin buckets a trade duration in minutes into a display label.
func DurationBin(minutes float64) string {
	switch {
	case minutes <= 30:
		return "≤30m"
	case minutes <= 120:
		return "30m–2h"
	case minutes <= 360:
		return "2–6h"
	default:
		return ">6h"
	}
}

// Stars counts the star glyphs in a rating cell.
func Stars(raw string) int {
	return strings.Count(raw, "⭐")
}

var riskPercentRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// RiskPercent extracts the first numeric-percent substring from a
// risk-management cell.
func RiskPercent(raw string) (float64, bool) {
	m := riskPercentRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
