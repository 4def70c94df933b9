package stats

import (
	"math"
	"testing"
	"time"

	"edge-analysis/internal/models"
)

func f64(v float64) *float64 { return &v }

func win(rr float64) models.CanonicalTrade {
	return models.CanonicalTrade{Outcome: models.OutcomeWin, ClosedRR: f64(rr)}
}

func loss(rr float64) models.CanonicalTrade {
	return models.CanonicalTrade{Outcome: models.OutcomeLoss, ClosedRR: f64(rr)}
}

func TestCountOutcomes(t *testing.T) {
	trades := []models.CanonicalTrade{
		win(2), win(1), loss(-1),
		{Outcome: models.OutcomeBE},
		{Outcome: models.OutcomeUnknown},
	}
	c := CountOutcomes(trades)
	if c.Win != 2 || c.BE != 1 || c.Loss != 1 {
		t.Errorf("Counts = %+v", c)
	}
	if c.Total() != 4 {
		t.Errorf("Total = %d, want 4 (unknown excluded)", c.Total())
	}
}

func TestSplitPercentages(t *testing.T) {
	// 1/3 splits round to 33.33 each; drift lands on the largest.
	p := SplitPercentages(Counts{Win: 1, BE: 1, Loss: 1})
	if sum := p.Win + p.BE + p.Loss; math.Abs(sum-100.00) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100.00", sum)
	}
	if p.Win != 33.34 || p.BE != 33.33 || p.Loss != 33.33 {
		t.Errorf("drift should land on the win component, got %+v", p)
	}

	p = SplitPercentages(Counts{Win: 2, BE: 0, Loss: 2})
	if p.Win != 50.00 || p.Loss != 50.00 || p.BE != 0 {
		t.Errorf("even split = %+v", p)
	}

	if p = SplitPercentages(Counts{}); p.Win != 0 || p.BE != 0 || p.Loss != 0 {
		t.Errorf("zero counts should yield zero percentages, got %+v", p)
	}
}

func TestComputeOverview(t *testing.T) {
	trades := []models.CanonicalTrade{
		win(2.5),
		win(1.0),
		loss(-1.0),
		{Outcome: models.OutcomeWin}, // win without RR adds nothing
		{Outcome: models.OutcomeBE, ClosedRR: f64(0)},
	}
	ov := ComputeOverview(trades)
	if ov.Counts.Win != 3 || ov.Counts.Loss != 1 || ov.Counts.BE != 1 {
		t.Errorf("Counts = %+v", ov.Counts)
	}
	// Wins-only aggregate excludes the loss and the break-even.
	if ov.PnLWinsOnlyR != 3.5 {
		t.Errorf("PnLWinsOnlyR = %v, want 3.5", ov.PnLWinsOnlyR)
	}
}

func TestNetRAndExpectancy(t *testing.T) {
	trades := []models.CanonicalTrade{win(2), loss(-1), {Outcome: models.OutcomeWin}}
	if got := NetR(trades); got != 1.0 {
		t.Errorf("NetR = %v, want 1.0", got)
	}
	e, ok := ExpectancyR(trades)
	if !ok || e != 0.5 {
		t.Errorf("ExpectancyR = %v, %v; want 0.5 over 2 resolved trades", e, ok)
	}

	if _, ok := ExpectancyR([]models.CanonicalTrade{{Outcome: models.OutcomeWin}}); ok {
		t.Error("no resolved RR should report ok=false")
	}
}

func TestGroupWinRates(t *testing.T) {
	trades := []models.CanonicalTrade{
		{Outcome: models.OutcomeWin, Instrument: "Gold", ClosedRR: f64(2)},
		{Outcome: models.OutcomeLoss, Instrument: "Gold", ClosedRR: f64(-1)},
		{Outcome: models.OutcomeWin, Instrument: "NASDAQ", ClosedRR: f64(3)},
		{Outcome: models.OutcomeWin}, // no instrument set, skipped
	}
	rows := GroupWinRates(trades, DimInstrument)
	if len(rows) != 2 {
		t.Fatalf("groups = %d, want 2", len(rows))
	}
	// Lexical order: Gold before NASDAQ.
	if rows[0].Key != "Gold" || rows[1].Key != "NASDAQ" {
		t.Errorf("keys = %q, %q", rows[0].Key, rows[1].Key)
	}
	if rows[0].Trades != 2 || rows[0].WinPct != 50.00 || rows[0].NetR != 1.0 {
		t.Errorf("Gold row = %+v", rows[0])
	}
	if rows[1].ExpectancyR == nil || *rows[1].ExpectancyR != 3.0 {
		t.Errorf("NASDAQ expectancy = %v", rows[1].ExpectancyR)
	}
}

func TestGroupWinRatesMultiValued(t *testing.T) {
	trades := []models.CanonicalTrade{
		{Outcome: models.OutcomeWin, EntryModels: []string{"A", "B"}},
		{Outcome: models.OutcomeLoss, EntryModels: []string{"A"}},
	}
	rows := GroupWinRates(trades, DimEntryModel)
	if len(rows) != 2 {
		t.Fatalf("groups = %d, want 2", len(rows))
	}
	if rows[0].Key != "A" || rows[0].Trades != 2 {
		t.Errorf("A row = %+v", rows[0])
	}
	if rows[1].Key != "B" || rows[1].Trades != 1 {
		t.Errorf("B row = %+v", rows[1])
	}
}

func TestGroupWinRatesDayOrder(t *testing.T) {
	trades := []models.CanonicalTrade{
		{Outcome: models.OutcomeWin, DayName: "Friday"},
		{Outcome: models.OutcomeWin, DayName: "Monday"},
		{Outcome: models.OutcomeWin, DayName: "Wednesday"},
	}
	rows := GroupWinRates(trades, DimDay)
	want := []string{"Monday", "Wednesday", "Friday"}
	for i, w := range want {
		if rows[i].Key != w {
			t.Errorf("day order[%d] = %q, want %q", i, rows[i].Key, w)
		}
	}
}

func TestGroupWinRatesRRBuckets(t *testing.T) {
	trades := []models.CanonicalTrade{
		{Outcome: models.OutcomeLoss, ClosedRR: f64(-1)},
		{Outcome: models.OutcomeWin, ClosedRR: f64(0.5)},
		{Outcome: models.OutcomeWin, ClosedRR: f64(6)},
		{Outcome: models.OutcomeWin}, // no RR, skipped
	}
	rows := GroupWinRates(trades, DimRRBucket)
	want := []string{"Negative", "0–1R", "5R+"}
	if len(rows) != len(want) {
		t.Fatalf("groups = %d, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Key != w {
			t.Errorf("bucket[%d] = %q, want %q", i, rows[i].Key, w)
		}
	}
}

func TestParseDimension(t *testing.T) {
	if _, err := ParseDimension("session"); err != nil {
		t.Errorf("session should parse: %v", err)
	}
	if _, err := ParseDimension("bogus"); err == nil {
		t.Error("bogus dimension should error")
	}
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
	return &t
}

func TestCumulativeRR(t *testing.T) {
	trades := []models.CanonicalTrade{
		{Date: day(2025, 3, 10), ClosedRR: f64(2)},
		{Date: day(2025, 3, 10), ClosedRR: f64(-1)},
		{Date: day(2025, 3, 12), ClosedRR: f64(3)},
		{Date: day(2025, 3, 11)}, // dated but no RR: bucket still appears
		{ClosedRR: f64(5)},       // dateless: excluded
	}
	points := CumulativeRR(trades, Daily)
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3", len(points))
	}
	if points[0].NetR != 1.0 || points[0].CumulativeR != 1.0 {
		t.Errorf("first point = %+v", points[0])
	}
	if points[1].NetR != 0.0 || points[1].CumulativeR != 1.0 {
		t.Errorf("empty bucket = %+v", points[1])
	}
	if points[2].CumulativeR != 4.0 {
		t.Errorf("final cumulative = %v, want 4.0", points[2].CumulativeR)
	}
}

func TestCumulativeRRWeekly(t *testing.T) {
	trades := []models.CanonicalTrade{
		{Date: day(2025, 3, 12), ClosedRR: f64(1)}, // Wednesday
		{Date: day(2025, 3, 14), ClosedRR: f64(2)}, // Friday, same ISO week
		{Date: day(2025, 3, 17), ClosedRR: f64(3)}, // next Monday
	}
	points := CumulativeRR(trades, Weekly)
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	// Week buckets start on Monday.
	if !points[0].Bucket.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first bucket = %v", points[0].Bucket)
	}
	if points[0].NetR != 3.0 || points[1].CumulativeR != 6.0 {
		t.Errorf("weekly sums = %+v", points)
	}
}

func TestCumulativeWinRate(t *testing.T) {
	trades := []models.CanonicalTrade{
		{Date: day(2025, 3, 10), Outcome: models.OutcomeWin},
		{Date: day(2025, 3, 10), Outcome: models.OutcomeLoss},
		{Date: day(2025, 3, 11), Outcome: models.OutcomeWin},
		{Date: day(2025, 3, 11), Outcome: models.OutcomeUnknown}, // unresolved, excluded
	}
	points := CumulativeWinRate(trades, Daily)
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if points[0].CumulativeWinPct != 50.00 {
		t.Errorf("day 1 win rate = %v", points[0].CumulativeWinPct)
	}
	// Cumulative over both days: 2 wins of 3 resolved trades.
	if points[1].CumulativeTrades != 3 || points[1].CumulativeWinPct != 66.67 {
		t.Errorf("day 2 = %+v", points[1])
	}
}
