package parse

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: a range cell always parses to the arithmetic mean of its
// endpoints, and a plain signed number parses to itself.
func TestProperty_ClosedRRRangeMean(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	round2 := func(v float64) float64 {
		return math.Round(v*100) / 100
	}

	properties.Property("range parses to endpoint mean", prop.ForAll(
		func(a, b float64) bool {
			a, b = round2(a), round2(b)
			cell := fmt.Sprintf("%.2f to %.2f", a, b)
			got, ok := ClosedRR(cell)
			if !ok {
				return false
			}
			return math.Abs(got-(a+b)/2) < 1e-9
		},
		gen.Float64Range(-50, 50),
		gen.Float64Range(-50, 50),
	))

	properties.Property("plain number parses to itself, plus stripped", prop.ForAll(
		func(v float64) bool {
			v = round2(v)
			cell := fmt.Sprintf("%.2f", v)
			if v > 0 {
				cell = "+" + cell
			}
			got, ok := ClosedRR(cell)
			return ok && math.Abs(got-v) < 1e-9
		},
		gen.Float64Range(-50, 50),
	))

	properties.Property("coercion never loses a directly parsable cell", prop.ForAll(
		func(v float64) bool {
			v = round2(v)
			direct, okDirect := ClosedRR(fmt.Sprintf("%.2f", v))
			coerced, okCoerced := CoerceClosedRR(fmt.Sprintf("%.2f", v))
			return okDirect && okCoerced && direct == coerced
		},
		gen.Float64Range(-50, 50),
	))

	properties.TestingRun(t)
}
