package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rrRangeRe   = regexp.MustCompile(`([+-]?\d+(?:\.\d+)?)\s*(?:-|–|to)\s*([+-]?\d+(?:\.\d+)?)`)
	numberRe    = regexp.MustCompile(`[+-]?\d+(?:\.\d+)?`)
	listSplitRe = regexp.MustCompile(`[;,]`)
)

// ClosedRR parses a realized risk-to-reward value. A range such as
// "+2-3", "9–10" or "-1 to -2" yields the arithmetic mean of its
// endpoints; a plain number parses directly with any leading "+"
// stripped. Unparsable input returns ok=false.
func ClosedRR(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if m := rrRangeRe.FindStringSubmatch(s); m != nil {
		a, errA := strconv.ParseFloat(m[1], 64)
		b, errB := strconv.ParseFloat(m[2], 64)
		if errA == nil && errB == nil {
			return (a + b) / 2.0, true
		}
	}
	s = strings.ReplaceAll(s, "+", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CoerceClosedRR is the robust variant for multi-select cells. It tries a
// direct parse, then the right-most parsable comma/semicolon token, then
// the last numeric substring found anywhere in the text.
func CoerceClosedRR(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if v, ok := ClosedRR(s); ok {
		return v, true
	}
	parts := SplitList(s)
	for i := len(parts) - 1; i >= 0; i-- {
		if v, ok := ClosedRR(parts[i]); ok {
			return v, true
		}
	}
	if nums := numberRe.FindAllString(s, -1); len(nums) > 0 {
		if v, err := strconv.ParseFloat(nums[len(nums)-1], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// SplitList splits a multi-select style cell on commas and semicolons,
// dropping empty tokens.
func SplitList(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range listSplitRe.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
