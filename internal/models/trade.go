package models

import "time"

// Outcome is the classified result of a trade.
type Outcome string

const (
	OutcomeWin     Outcome = "Win"
	OutcomeBE      Outcome = "BE"
	OutcomeLoss    Outcome = "Loss"
	OutcomeUnknown Outcome = "Unknown"
)

// Resolved reports whether the outcome carries a usable signal.
func (o Outcome) Resolved() bool {
	return o == OutcomeWin || o == OutcomeBE || o == OutcomeLoss
}

// Canonical column labels. Raw tables are renamed onto these by the
// template normalizer; the dataset builder reads them directly.
const (
	ColDate          = "Date"
	ColPair          = "Pair"
	ColSession       = "Session"
	ColEntryModel    = "Entry Model"
	ColMultiEntry    = "Multi Entry Model Entry"
	ColConfluence    = "Entry Confluence"
	ColResult        = "Result"
	ColOutcome       = "Outcome"
	ColClosedRR      = "Closed RR"
	ColPnL           = "PnL"
	ColIsComplete    = "Is Complete"
	ColStarRating    = "Star Rating"
	ColRating        = "Rating"
	ColRiskMgmt      = "Risk Management"
	ColTradeDuration = "Trade Duration"
	ColAccount       = "Account"
	ColNotes         = "Notes"
)

// Derived column labels added by the normalizer from the Date column.
const (
	ColDayName = "DayName"
	ColMonth   = "Month"
	ColWeek    = "Week"
	ColHour    = "Hour"
)

// CanonicalOrder is the column order guaranteed by the template
// normalizer. Extra columns are preserved after these.
var CanonicalOrder = []string{
	ColDate, ColPair, ColSession, ColEntryModel, ColConfluence,
	ColOutcome, ColClosedRR, ColPnL, ColIsComplete, ColStarRating, ColNotes,
}

// CanonicalTrade is the normalized representation of one trade. Instances
// are produced once per normalization pass and are read-only downstream.
type CanonicalTrade struct {
	ID           string
	Date         *time.Time
	Instrument   string
	Session      string // "" when unresolved
	EntryModels  []string
	Confluence   []string
	ResultRaw    string
	Outcome      Outcome
	ClosedRR     *float64
	PnL          *float64
	Stars        *int
	RiskPercent  *float64
	DurationBin  string
	AccountGroup string

	// Calendar fields derived from Date.
	DayName string
	Hour    int // -1 when Date is nil
	Month   string
	ISOWeek int

	// Completion status under the configured strictness.
	IsComplete       bool
	IncompleteReason string
}

// HasRR reports whether a risk-to-reward ratio was resolved.
func (t *CanonicalTrade) HasRR() bool {
	return t.ClosedRR != nil
}

// RR returns the resolved risk-to-reward ratio, or 0 when absent.
func (t *CanonicalTrade) RR() float64 {
	if t.ClosedRR == nil {
		return 0
	}
	return *t.ClosedRR
}

// UserPrefs is the minimal per-user association persisted by the store:
// which mapping template and source collection a user last used.
type UserPrefs struct {
	UserID       string
	Template     string
	CollectionID string
	UpdatedAt    time.Time
}
