package dataset

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"edge-analysis/internal/models"
)

func opts() Options {
	return Options{Strict: true, Logger: zerolog.Nop()}
}

func table(headers []string, rows ...models.RawRecord) *models.RawTable {
	return &models.RawTable{Headers: headers, Rows: rows}
}

func TestBuildBasic(t *testing.T) {
	in := table(
		[]string{"Date", "Pair", "Session", "Entry Model", "Result", "Closed RR", "PnL"},
		models.RawRecord{
			"Date": "2025-03-14", "Pair": "XAUUSD", "Session": "ny",
			"Entry Model": "internal fbos", "Result": "Full TP", "Closed RR": "+2-3",
		},
		models.RawRecord{
			"Date": "2025-03-15", "Pair": "EURUSD", "Session": "london",
			"Entry Model": "external no close", "Result": "Loss", "Closed RR": "-1", "PnL": -150.0,
		},
	)

	trades, profile := Build(in, opts())
	if profile != "" {
		t.Errorf("no normalizer configured, profile = %q", profile)
	}
	if len(trades) != 2 {
		t.Fatalf("trades = %d, want 2", len(trades))
	}

	first := trades[0]
	if first.Instrument != "Gold" {
		t.Errorf("Instrument = %q, want Gold", first.Instrument)
	}
	if first.Session != "New York" {
		t.Errorf("Session = %q", first.Session)
	}
	if first.Outcome != models.OutcomeWin {
		t.Errorf("Outcome = %v, want Win", first.Outcome)
	}
	if first.ClosedRR == nil || *first.ClosedRR != 2.5 {
		t.Errorf("ClosedRR = %v, want 2.5", first.ClosedRR)
	}
	if !first.IsComplete {
		t.Errorf("first trade should be complete: %s", first.IncompleteReason)
	}
	if first.DayName != "Friday" || first.Month != "2025-03" {
		t.Errorf("calendar fields = %q %q", first.DayName, first.Month)
	}
	if first.ID == "" || first.ID == trades[1].ID {
		t.Error("trade IDs must be unique and non-empty")
	}

	second := trades[1]
	if second.Instrument != "EURUSD" {
		t.Errorf("unmatched pair should pass through, got %q", second.Instrument)
	}
	if second.Outcome != models.OutcomeLoss {
		t.Errorf("Outcome = %v, want Loss", second.Outcome)
	}
	if second.PnL == nil || *second.PnL != -150.0 {
		t.Errorf("PnL = %v", second.PnL)
	}
}

func TestBuildDropsRowsWithoutSignal(t *testing.T) {
	in := table(
		[]string{"Date", "Pair", "Result", "Closed RR", "PnL", "Entry Model"},
		// No date: dropped no matter what else is present.
		models.RawRecord{"Pair": "XAUUSD", "Result": "Win", "Closed RR": "2"},
		// Date but nothing else: a note row, not a trade.
		models.RawRecord{"Date": "2025-03-14", "Pair": "XAUUSD"},
		// Date plus an entry model counts as a signal.
		models.RawRecord{"Date": "2025-03-14", "Entry Model": "internal fbos"},
		// Date plus PnL counts as a signal.
		models.RawRecord{"Date": "2025-03-14", "PnL": 50.0},
	)

	trades, _ := Build(in, opts())
	if len(trades) != 2 {
		t.Fatalf("trades = %d, want 2 retained", len(trades))
	}
}

func TestBuildStrictVsLenient(t *testing.T) {
	in := table(
		[]string{"Date", "Result"},
		models.RawRecord{"Date": "2025-03-14", "Result": "Full TP"},
	)

	strict, _ := Build(in.Clone(), Options{Strict: true, Logger: zerolog.Nop()})
	if strict[0].IsComplete {
		t.Error("outcome without RR must be incomplete under strict completion")
	}

	lenient, _ := Build(in.Clone(), Options{Strict: false, Logger: zerolog.Nop()})
	if !lenient[0].IsComplete {
		t.Error("outcome alone should satisfy lenient completion")
	}
}

func TestBuildUnmappedResultUsesRRSign(t *testing.T) {
	// "Win" is not a journal result phrase, so the label does not decide;
	// the negative closed RR does.
	in := table(
		[]string{"Date", "Result", "Closed RR"},
		models.RawRecord{"Date": "2025-03-14", "Result": "Win", "Closed RR": "-1"},
	)

	trades, _ := Build(in, opts())
	if trades[0].Outcome != models.OutcomeLoss {
		t.Errorf("Outcome = %v, want Loss from the RR sign", trades[0].Outcome)
	}
}

func TestBuildSessionInference(t *testing.T) {
	in := table(
		[]string{"Date", "Result"},
		models.RawRecord{"Date": "2025-03-14T14:00:00Z", "Result": "Full TP"},
	)

	o := opts()
	o.InferSessionFromHour = true
	trades, _ := Build(in, o)
	if trades[0].Session != "New York" {
		t.Errorf("Session = %q, want New York inferred from 14:00", trades[0].Session)
	}

	// Inference off: session stays unresolved.
	trades, _ = Build(in.Clone(), opts())
	if trades[0].Session != "" {
		t.Errorf("Session = %q, want empty without inference", trades[0].Session)
	}
}

func TestBuildAnnotationFields(t *testing.T) {
	in := table(
		[]string{"Date", "Result", "Rating", "Risk Management", "Trade Duration", "Account"},
		models.RawRecord{
			"Date": "2025-03-14", "Result": "Full TP", "Rating": "⭐⭐⭐",
			"Risk Management": "risked 0.5%", "Trade Duration": 45.0,
			"Account": "Live on Funded",
		},
	)

	trades, _ := Build(in, opts())
	tr := trades[0]
	if tr.Stars == nil || *tr.Stars != 3 {
		t.Errorf("Stars = %v", tr.Stars)
	}
	if tr.RiskPercent == nil || *tr.RiskPercent != 0.5 {
		t.Errorf("RiskPercent = %v", tr.RiskPercent)
	}
	if tr.DurationBin != "30m–2h" {
		t.Errorf("DurationBin = %q", tr.DurationBin)
	}
	if tr.AccountGroup != "Funded Account" {
		t.Errorf("AccountGroup = %q", tr.AccountGroup)
	}
}

func TestBuildEmptyTable(t *testing.T) {
	if trades, _ := Build(&models.RawTable{}, opts()); trades != nil {
		t.Errorf("empty table should yield nil, got %v", trades)
	}
}

func TestFilterApply(t *testing.T) {
	d1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	trades := []models.CanonicalTrade{
		{Date: &d1, Instrument: "Gold", Session: "London", EntryModels: []string{"Internal No Close"}, IsComplete: true},
		{Date: &d2, Instrument: "NASDAQ", Session: "New York", IsComplete: false},
		{Instrument: "Gold"},
	}

	if got := Apply(trades, Filter{}); len(got) != 3 {
		t.Errorf("empty filter should match all, got %d", len(got))
	}
	if got := Apply(trades, Filter{Instrument: "Gold"}); len(got) != 2 {
		t.Errorf("instrument filter = %d, want 2", len(got))
	}
	if got := Apply(trades, Filter{Instrument: "All"}); len(got) != 3 {
		t.Errorf("wildcard should match all, got %d", len(got))
	}
	if got := Apply(trades, Filter{OnlyComplete: true}); len(got) != 1 {
		t.Errorf("complete filter = %d, want 1", len(got))
	}
	if got := Apply(trades, Filter{EntryModel: "Internal No Close"}); len(got) != 1 {
		t.Errorf("model filter = %d, want 1", len(got))
	}

	mid := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	// Dateless trades never match a date-bounded filter.
	if got := Apply(trades, Filter{From: &mid}); len(got) != 1 {
		t.Errorf("from filter = %d, want 1", len(got))
	}
	if got := Apply(trades, Filter{To: &mid}); len(got) != 1 {
		t.Errorf("to filter = %d, want 1", len(got))
	}
}
