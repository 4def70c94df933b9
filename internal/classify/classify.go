// Package classify derives a trade's canonical outcome and completeness
// status from its parsed fields.
package classify

import (
	"strings"

	"edge-analysis/internal/models"
	"edge-analysis/internal/parse"
)

// Fields carries the raw signals an outcome can be derived from.
type Fields struct {
	ResultRaw string
	ClosedRR  *float64
	PnL       *float64
}

// resolver attempts one derivation of an outcome. The chain stops at the
// first resolver that succeeds.
type resolver func(Fields) (models.Outcome, bool)

var resolvers = []resolver{
	fromResultLabel,
	fromClosedRR,
	fromPnL,
}

// Outcome resolves the canonical outcome for the given fields, trying
// the explicit result label first, then the sign of the closed RR, then
// the sign of the PnL. Nothing resolvable yields Unknown.
func Outcome(f Fields) models.Outcome {
	for _, r := range resolvers {
		if o, ok := r(f); ok {
			return o
		}
	}
	return models.OutcomeUnknown
}

func fromResultLabel(f Fields) (models.Outcome, bool) {
	switch parse.ResultLabel(f.ResultRaw) {
	case parse.LabelWin:
		return models.OutcomeWin, true
	case parse.LabelBE:
		return models.OutcomeBE, true
	case parse.LabelLoss:
		return models.OutcomeLoss, true
	}
	return models.OutcomeUnknown, false
}

func fromClosedRR(f Fields) (models.Outcome, bool) {
	if f.ClosedRR == nil {
		return models.OutcomeUnknown, false
	}
	return signOutcome(*f.ClosedRR), true
}

func fromPnL(f Fields) (models.Outcome, bool) {
	if f.PnL == nil {
		return models.OutcomeUnknown, false
	}
	return signOutcome(*f.PnL), true
}

func signOutcome(v float64) models.Outcome {
	switch {
	case v > 0:
		return models.OutcomeWin
	case v < 0:
		return models.OutcomeLoss
	default:
		return models.OutcomeBE
	}
}

// OutcomeFromResult reduces a multi-select result cell to a single
// canonical outcome. Among the mapped tokens WIN has priority, then BE,
// then LOSS. An undecidable cell returns ok=false.
func OutcomeFromResult(resultRaw string) (models.Outcome, bool) {
	toks := parse.SplitList(resultRaw)
	if len(toks) == 0 {
		return models.OutcomeUnknown, false
	}
	var sawBE, sawLoss bool
	for _, t := range toks {
		switch parse.ResultLabel(t) {
		case parse.LabelWin:
			return models.OutcomeWin, true
		case parse.LabelBE:
			sawBE = true
		case parse.LabelLoss:
			sawLoss = true
		}
	}
	if sawBE {
		return models.OutcomeBE, true
	}
	if sawLoss {
		return models.OutcomeLoss, true
	}
	return models.OutcomeUnknown, false
}

// Completion is the result of the per-row completeness check.
type Completion struct {
	IsComplete bool
	Reason     string
	Outcome    models.Outcome
	ClosedRR   *float64
}

// CompleteRow decides whether a row carries enough resolved fields to be
// analyzed. Strict mode requires both a canonical outcome and a numeric
// closed RR; lenient mode accepts either. The strictness is a single
// configuration value, not a per-call choice.
func CompleteRow(f Fields, rrRaw string, strict bool) Completion {
	var c Completion

	if f.ClosedRR != nil {
		v := *f.ClosedRR
		c.ClosedRR = &v
	} else if v, ok := parse.CoerceClosedRR(rrRaw); ok {
		c.ClosedRR = &v
	}

	if o, ok := OutcomeFromResult(f.ResultRaw); ok {
		c.Outcome = o
	} else {
		c.Outcome = Outcome(Fields{ResultRaw: f.ResultRaw, ClosedRR: c.ClosedRR, PnL: f.PnL})
	}

	hasOutcome := c.Outcome.Resolved()
	hasRR := c.ClosedRR != nil

	if strict {
		if hasOutcome && hasRR {
			c.IsComplete = true
			return c
		}
		var missing []string
		if !hasOutcome {
			missing = append(missing, "Outcome")
		}
		if !hasRR {
			missing = append(missing, "Closed RR")
		}
		c.Reason = "Missing: " + strings.Join(missing, ", ")
		return c
	}

	if hasOutcome || hasRR {
		c.IsComplete = true
		return c
	}
	c.Reason = "Missing: Outcome or Closed RR"
	return c
}
