package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"edge-analysis/internal/models"
)

// Property: For any normalized trade, saving it and reading it back
// should produce an equivalent trade (round-trip consistency).
func TestProperty_TradeRoundTripConsistency(t *testing.T) {
	dbPath := "test_trades_property.db"
	defer os.Remove(dbPath)

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	instruments := []string{"Gold", "NASDAQ", "AUDUSD", "EURUSD", "GBPJPY"}
	sessions := []string{"New York", "London", "Asia", ""}
	outcomes := []models.Outcome{models.OutcomeWin, models.OutcomeBE, models.OutcomeLoss, models.OutcomeUnknown}

	properties.Property("Trade round-trip: save then retrieve produces equivalent data", prop.ForAll(
		func(instrumentIdx, sessionIdx, outcomeIdx, dayOffset int, rr float64, hasRR bool, complete bool) bool {
			ctx := context.Background()

			date := time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC).AddDate(0, 0, dayOffset)
			trade := models.CanonicalTrade{
				ID:          fmt.Sprintf("trade_%d", time.Now().UnixNano()),
				Date:        &date,
				Instrument:  instruments[instrumentIdx%len(instruments)],
				Session:     sessions[sessionIdx%len(sessions)],
				EntryModels: []string{"Internal FBoS"},
				Confluence:  []string{"FVG", "OB"},
				ResultRaw:   "some label",
				Outcome:     outcomes[outcomeIdx%len(outcomes)],
				IsComplete:  complete,
			}
			if hasRR {
				v := rr
				trade.ClosedRR = &v
			}

			collection := fmt.Sprintf("col_%s", trade.ID)
			if err := store.ReplaceTrades(ctx, collection, []models.CanonicalTrade{trade}); err != nil {
				t.Logf("Failed to save trade: %v", err)
				return false
			}

			retrieved, err := store.GetTrades(ctx, TradeFilter{Collection: collection})
			if err != nil {
				t.Logf("Failed to get trades: %v", err)
				return false
			}
			if len(retrieved) != 1 {
				t.Logf("Count mismatch: expected 1, got %d", len(retrieved))
				return false
			}

			return tradesEqual(trade, retrieved[0], t)
		},
		gen.IntRange(0, len(instruments)-1),
		gen.IntRange(0, len(sessions)-1),
		gen.IntRange(0, len(outcomes)-1),
		gen.IntRange(0, 365),
		gen.Float64Range(-10.0, 10.0),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("Empty dataset: replacing with no trades should succeed", prop.ForAll(
		func(n int) bool {
			ctx := context.Background()
			collection := fmt.Sprintf("empty_%d_%d", n, time.Now().UnixNano()%10000)
			return store.ReplaceTrades(ctx, collection, nil) == nil
		},
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// tradesEqual compares two trades for equality with floating point tolerance.
func tradesEqual(a, b models.CanonicalTrade, t *testing.T) bool {
	if a.ID != b.ID || a.Instrument != b.Instrument || a.Session != b.Session {
		t.Logf("Identity mismatch: %+v vs %+v", a, b)
		return false
	}
	if a.Outcome != b.Outcome || a.IsComplete != b.IsComplete {
		t.Logf("Classification mismatch: %+v vs %+v", a, b)
		return false
	}
	if (a.Date == nil) != (b.Date == nil) {
		return false
	}
	if a.Date != nil && !a.Date.Equal(*b.Date) {
		t.Logf("Date mismatch: %v vs %v", a.Date, b.Date)
		return false
	}
	if (a.ClosedRR == nil) != (b.ClosedRR == nil) {
		return false
	}
	if a.ClosedRR != nil && !floatEqual(*a.ClosedRR, *b.ClosedRR, 1e-9) {
		t.Logf("RR mismatch: %v vs %v", *a.ClosedRR, *b.ClosedRR)
		return false
	}
	if len(a.EntryModels) != len(b.EntryModels) || len(a.Confluence) != len(b.Confluence) {
		return false
	}
	for i := range a.EntryModels {
		if a.EntryModels[i] != b.EntryModels[i] {
			return false
		}
	}
	return true
}

// floatEqual compares two floats with a tolerance.
func floatEqual(a, b, tolerance float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
