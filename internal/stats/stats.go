// Package stats computes aggregate performance statistics over canonical
// trade tables. Every function is pure and returns a zero-safe result
// for empty input.
package stats

import (
	"fmt"
	"math"
	"sort"

	"edge-analysis/internal/models"
)

// Counts holds exact-match outcome counts.
type Counts struct {
	Win  int
	BE   int
	Loss int
}

// Total returns the number of counted trades.
func (c Counts) Total() int {
	return c.Win + c.BE + c.Loss
}

// CountOutcomes counts Win/BE/Loss outcomes. Unknown outcomes are not
// counted.
func CountOutcomes(trades []models.CanonicalTrade) Counts {
	var c Counts
	for _, t := range trades {
		switch t.Outcome {
		case models.OutcomeWin:
			c.Win++
		case models.OutcomeBE:
			c.BE++
		case models.OutcomeLoss:
			c.Loss++
		}
	}
	return c
}

// Percentages holds Win/BE/Loss rates in percent, rounded to two
// decimals and guaranteed to sum to exactly 100.00 (or all zero).
type Percentages struct {
	Win  float64
	BE   float64
	Loss float64
}

// SplitPercentages converts counts into percentages. Rounding drift is
// added to the currently largest component so the three always sum to
// 100.00; a zero total yields all zeros.
func SplitPercentages(c Counts) Percentages {
	total := c.Total()
	if total <= 0 {
		return Percentages{}
	}

	w := round2(float64(c.Win) / float64(total) * 100)
	b := round2(float64(c.BE) / float64(total) * 100)
	l := round2(float64(c.Loss) / float64(total) * 100)

	drift := round2(100.00 - (w + b + l))
	if drift != 0 {
		switch {
		case w >= b && w >= l:
			w = round2(w + drift)
		case b >= w && b >= l:
			b = round2(b + drift)
		default:
			l = round2(l + drift)
		}
	}
	return Percentages{Win: w, BE: b, Loss: l}
}

// Overview is the headline statistics block.
type Overview struct {
	Counts      Counts
	Percentages Percentages

	// PnLWinsOnlyR sums closed RR over winning trades only; losses and
	// break-evens are excluded from this aggregate by product rule.
	PnLWinsOnlyR float64
}

// ComputeOverview computes the headline block for a canonical table.
func ComputeOverview(trades []models.CanonicalTrade) Overview {
	counts := CountOutcomes(trades)
	var winsRR float64
	for _, t := range trades {
		if t.Outcome == models.OutcomeWin && t.HasRR() {
			winsRR += t.RR()
		}
	}
	return Overview{
		Counts:       counts,
		Percentages:  SplitPercentages(counts),
		PnLWinsOnlyR: winsRR,
	}
}

// NetR sums closed RR over trades with a resolved value.
func NetR(trades []models.CanonicalTrade) float64 {
	var sum float64
	for _, t := range trades {
		if t.HasRR() {
			sum += t.RR()
		}
	}
	return sum
}

// ExpectancyR returns the mean closed RR over trades with a resolved
// value, or ok=false when none have one.
func ExpectancyR(trades []models.CanonicalTrade) (float64, bool) {
	var sum float64
	n := 0
	for _, t := range trades {
		if t.HasRR() {
			sum += t.RR()
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Dimension selects a grouping axis for GroupWinRates.
type Dimension string

const (
	DimInstrument Dimension = "instrument"
	DimSession    Dimension = "session"
	DimEntryModel Dimension = "model"
	DimDay        Dimension = "day"
	DimAccount    Dimension = "account"
	DimDuration   Dimension = "duration"
	DimRRBucket   Dimension = "rr"
	DimMonth      Dimension = "month"
	DimConfluence Dimension = "confluence"
)

// GroupRow is one row of a grouped breakdown.
type GroupRow struct {
	Key         string
	Trades      int
	WinPct      float64
	BEPct       float64
	LossPct     float64
	NetR        float64
	ExpectancyR *float64
}

// GroupWinRates groups trades along a dimension and computes per-group
// counts, percentage splits and R statistics. Trades with no value on
// the dimension are skipped; multi-valued dimensions (entry model,
// confluence) count a trade once per value.
func GroupWinRates(trades []models.CanonicalTrade, dim Dimension) []GroupRow {
	groups := make(map[string][]models.CanonicalTrade)
	for _, t := range trades {
		for _, key := range groupKeys(&t, dim) {
			groups[key] = append(groups[key], t)
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sortKeys(keys, dim)

	out := make([]GroupRow, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		perc := SplitPercentages(CountOutcomes(g))
		row := GroupRow{
			Key:     k,
			Trades:  len(g),
			WinPct:  perc.Win,
			BEPct:   perc.BE,
			LossPct: perc.Loss,
			NetR:    NetR(g),
		}
		if e, ok := ExpectancyR(g); ok {
			row.ExpectancyR = &e
		}
		out = append(out, row)
	}
	return out
}

func groupKeys(t *models.CanonicalTrade, dim Dimension) []string {
	switch dim {
	case DimInstrument:
		return nonEmpty(t.Instrument)
	case DimSession:
		return nonEmpty(t.Session)
	case DimEntryModel:
		return t.EntryModels
	case DimDay:
		return nonEmpty(t.DayName)
	case DimAccount:
		return nonEmpty(t.AccountGroup)
	case DimDuration:
		return nonEmpty(t.DurationBin)
	case DimRRBucket:
		if !t.HasRR() {
			return nil
		}
		return []string{rrBucket(t.RR())}
	case DimMonth:
		return nonEmpty(t.Month)
	case DimConfluence:
		return t.Confluence
	}
	return nil
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// rrBucket bins a closed RR into a display bucket.
func rrBucket(rr float64) string {
	switch {
	case rr < 0:
		return "Negative"
	case rr == 0:
		return "0R"
	case rr <= 1:
		return "0–1R"
	case rr <= 2:
		return "1–2R"
	case rr <= 3:
		return "2–3R"
	case rr <= 5:
		return "3–5R"
	default:
		return "5R+"
	}
}

var weekdayOrder = map[string]int{
	"Monday": 0, "Tuesday": 1, "Wednesday": 2, "Thursday": 3,
	"Friday": 4, "Saturday": 5, "Sunday": 6,
}

var rrBucketOrder = map[string]int{
	"Negative": 0, "0R": 1, "0–1R": 2, "1–2R": 3, "2–3R": 4, "3–5R": 5, "5R+": 6,
}

// sortKeys orders group keys deterministically: weekdays and RR buckets
// by their natural order, everything else lexically.
func sortKeys(keys []string, dim Dimension) {
	switch dim {
	case DimDay:
		sort.Slice(keys, func(i, j int) bool {
			return weekdayOrder[keys[i]] < weekdayOrder[keys[j]]
		})
	case DimRRBucket:
		sort.Slice(keys, func(i, j int) bool {
			return rrBucketOrder[keys[i]] < rrBucketOrder[keys[j]]
		})
	default:
		sort.Strings(keys)
	}
}

// ParseDimension converts a user-facing dimension name.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case DimInstrument, DimSession, DimEntryModel, DimDay, DimAccount,
		DimDuration, DimRRBucket, DimMonth, DimConfluence:
		return Dimension(s), nil
	}
	return "", fmt.Errorf("unknown dimension: %q", s)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
