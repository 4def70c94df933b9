package template

import (
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"edge-analysis/internal/models"
)

// Property: adapting an already-adapted table with the same profile is a
// no-op. Coerced cells pass through typed, normalized values stay on
// their canonical spelling and derived calendar columns recompute to the
// same values.
func TestProperty_AdaptIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	profile := models.MappingProfile{
		Name: "journal",
		Columns: map[string]string{
			"Trade Date": "Date",
			"Symbol":     "Pair",
			"R":          "Closed RR",
		},
		Normalizers: map[string]map[string][]string{
			"Pair": {"Gold": {"xau", "xauusd", "gold"}},
		},
		Coercions: map[string]string{
			"Date":      "date",
			"Closed RR": "float",
		},
	}

	pairs := []string{"xauusd", "XAU", "Gold", "EURUSD", ""}

	properties.Property("second pass changes nothing", prop.ForAll(
		func(dayOffset int, pairIdx int, rr float64) bool {
			date := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, dayOffset)
			in := &models.RawTable{
				Headers: []string{"Trade Date", "Symbol", "R", "Notes"},
				Rows: []models.RawRecord{{
					"Trade Date": date.Format("2006-01-02"),
					"Symbol":     pairs[pairIdx],
					"R":          rr,
					"Notes":      "n",
				}},
			}

			once := Adapt(in, profile)
			twice := Adapt(once, profile)

			if !reflect.DeepEqual(once.Headers, twice.Headers) {
				return false
			}
			for i := range once.Rows {
				if !reflect.DeepEqual(once.Rows[i], twice.Rows[i]) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 364),
		gen.IntRange(0, len(pairs)-1),
		gen.Float64Range(-10, 10),
	))

	properties.TestingRun(t)
}
