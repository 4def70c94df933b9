package stats

import (
	"sort"
	"time"

	"edge-analysis/internal/models"
)

// Granularity selects the bucket size for cumulative series.
type Granularity string

const (
	Daily   Granularity = "day"
	Weekly  Granularity = "week" // buckets start on the ISO week's Monday
	Monthly Granularity = "month"
)

// EquityPoint is one bucket of the cumulative R curve.
type EquityPoint struct {
	Bucket      time.Time
	NetR        float64
	CumulativeR float64
}

// CumulativeRR floors trade dates to the granularity's bucket start,
// sums closed RR per bucket and accumulates in date order. Trades
// without a date are excluded; trades without a resolved RR contribute
// nothing to their bucket.
func CumulativeRR(trades []models.CanonicalTrade, g Granularity) []EquityPoint {
	sums := make(map[time.Time]float64)
	for _, t := range trades {
		if t.Date == nil {
			continue
		}
		b := bucketStart(*t.Date, g)
		if _, ok := sums[b]; !ok {
			sums[b] = 0
		}
		if t.HasRR() {
			sums[b] += t.RR()
		}
	}

	buckets := sortedBuckets(sums)
	out := make([]EquityPoint, 0, len(buckets))
	running := 0.0
	for _, b := range buckets {
		running += sums[b]
		out = append(out, EquityPoint{Bucket: b, NetR: sums[b], CumulativeR: running})
	}
	return out
}

// WinRatePoint is one bucket of the cumulative win-rate curve.
type WinRatePoint struct {
	Bucket           time.Time
	Trades           int
	CumulativeTrades int
	CumulativeWinPct float64
}

// CumulativeWinRate computes the win rate over all trades up to and
// including each bucket. The series is cumulative, not rolling.
func CumulativeWinRate(trades []models.CanonicalTrade, g Granularity) []WinRatePoint {
	type tally struct{ trades, wins int }
	perBucket := make(map[time.Time]tally)
	for _, t := range trades {
		if t.Date == nil || !t.Outcome.Resolved() {
			continue
		}
		b := bucketStart(*t.Date, g)
		cur := perBucket[b]
		cur.trades++
		if t.Outcome == models.OutcomeWin {
			cur.wins++
		}
		perBucket[b] = cur
	}

	buckets := make([]time.Time, 0, len(perBucket))
	for b := range perBucket {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })

	out := make([]WinRatePoint, 0, len(buckets))
	cumTrades, cumWins := 0, 0
	for _, b := range buckets {
		cumTrades += perBucket[b].trades
		cumWins += perBucket[b].wins
		out = append(out, WinRatePoint{
			Bucket:           b,
			Trades:           perBucket[b].trades,
			CumulativeTrades: cumTrades,
			CumulativeWinPct: round2(float64(cumWins) / float64(cumTrades) * 100),
		})
	}
	return out
}

// bucketStart floors a timestamp to its bucket boundary: midnight for
// days, the ISO week's Monday for weeks, the first of the month for
// months.
func bucketStart(t time.Time, g Granularity) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch g {
	case Weekly:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func sortedBuckets(m map[time.Time]float64) []time.Time {
	out := make([]time.Time, 0, len(m))
	for b := range m {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// ParseGranularity converts a user-facing granularity name.
func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(s) {
	case Daily, Weekly, Monthly:
		return Granularity(s), true
	}
	return "", false
}
