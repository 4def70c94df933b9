// Package dataset builds canonical trade tables from raw input tables.
package dataset

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"edge-analysis/internal/classify"
	"edge-analysis/internal/models"
	"edge-analysis/internal/parse"
	"edge-analysis/internal/template"
	"edge-analysis/pkg/utils"
)

// Options configures one normalization pass. Strictness applies to the
// whole pass; call sites never choose their own mode.
type Options struct {
	// Strict requires both a resolved outcome and a numeric closed RR
	// for a row to count as complete.
	Strict bool

	// Normalizer, when set, applies a template pass before column
	// parsing. ForcedProfile pins a profile by name.
	Normalizer    *template.Normalizer
	ForcedProfile string

	// InferSessionFromHour fills a missing session from the entry hour.
	InferSessionFromHour bool

	Logger zerolog.Logger
}

// Build runs the full normalization pipeline over a raw table and
// returns the canonical trades plus the mapping profile applied ("" for
// pass-through). Rows without a date or without any trade signal are
// dropped entirely; a row with no signal is not a trade.
func Build(t *models.RawTable, opts Options) ([]models.CanonicalTrade, string) {
	if t.IsEmpty() {
		return nil, ""
	}

	t.StripHeaderSpace()

	profileName := ""
	if opts.Normalizer != nil {
		t, profileName = opts.Normalizer.AdaptTable(t, opts.ForcedProfile)
	}

	cols := resolveColumns(t)
	trades := make([]models.CanonicalTrade, 0, len(t.Rows))
	dropped := 0

	for _, row := range t.Rows {
		trade, ok := buildRow(row, cols, opts)
		if !ok {
			dropped++
			continue
		}
		trades = append(trades, trade)
	}

	opts.Logger.Info().
		Int("rows", len(t.Rows)).
		Int("trades", len(trades)).
		Int("dropped", dropped).
		Str("profile", profileName).
		Bool("strict", opts.Strict).
		Msg("Normalization pass complete")

	return trades, profileName
}

// columns caches the resolved header name for each field of interest.
type columns struct {
	date, pair, session, entryModel, multiEntry string
	confluence, result, closedRR, pnl           string
	rating, riskMgmt, duration, account         string
}

func resolveColumns(t *models.RawTable) columns {
	find := func(name string) string {
		h, _ := t.FindHeader(name)
		return h
	}
	return columns{
		date:       find(models.ColDate),
		pair:       find(models.ColPair),
		session:    find(models.ColSession),
		entryModel: find(models.ColEntryModel),
		multiEntry: find(models.ColMultiEntry),
		confluence: find(models.ColConfluence),
		result:     find(models.ColResult),
		closedRR:   find(models.ColClosedRR),
		pnl:        find(models.ColPnL),
		rating:     find(models.ColRating),
		riskMgmt:   find(models.ColRiskMgmt),
		duration:   find(models.ColTradeDuration),
		account:    find(models.ColAccount),
	}
}

func buildRow(row models.RawRecord, cols columns, opts Options) (models.CanonicalTrade, bool) {
	trade := models.CanonicalTrade{
		ID:   uuid.New().String(),
		Hour: -1,
	}

	if cols.date != "" {
		if d, ok := rowDate(row, cols.date); ok {
			trade.Date = &d
			trade.DayName = d.Weekday().String()
			trade.Hour = d.Hour()
			trade.Month = d.Format("2006-01")
			_, trade.ISOWeek = d.ISOWeek()
		}
	}

	rrRaw := row.Text(cols.closedRR)
	if cols.closedRR != "" {
		if v, ok := row.Number(cols.closedRR); ok {
			trade.ClosedRR = &v
		} else if v, ok := parse.ClosedRR(rrRaw); ok {
			trade.ClosedRR = &v
		}
	}
	if cols.pnl != "" {
		if v, ok := row.Number(cols.pnl); ok {
			trade.PnL = &v
		}
	}

	trade.Instrument = "Unknown"
	if cols.pair != "" {
		trade.Instrument = parse.Instrument(row.Text(cols.pair))
	}

	trade.Session = parse.Session(row.Text(cols.session))
	if trade.Session == "" && opts.InferSessionFromHour && trade.Date != nil {
		trade.Session = utils.SessionForHour(trade.Hour)
	}

	entryModelText := row.Text(cols.entryModel)
	trade.EntryModels = parse.ModelsList(entryModelText, row.Text(cols.multiEntry))
	trade.Confluence = parse.SplitList(row.Text(cols.confluence))
	trade.ResultRaw = row.Text(cols.result)

	fields := classify.Fields{
		ResultRaw: trade.ResultRaw,
		ClosedRR:  trade.ClosedRR,
		PnL:       trade.PnL,
	}
	trade.Outcome = classify.Outcome(fields)

	if cols.rating != "" && row.Text(cols.rating) != "" {
		n := parse.Stars(row.Text(cols.rating))
		trade.Stars = &n
	}
	if cols.riskMgmt != "" {
		if v, ok := parse.RiskPercent(row.Text(cols.riskMgmt)); ok {
			trade.RiskPercent = &v
		}
	}
	if cols.duration != "" {
		if mins, ok := row.Number(cols.duration); ok {
			trade.DurationBin = parse.DurationBin(mins)
		}
	}
	if cols.account != "" {
		trade.AccountGroup = parse.AccountGroup(row.Text(cols.account))
	}

	completion := classify.CompleteRow(fields, rrRaw, opts.Strict)
	trade.IsComplete = completion.IsComplete
	trade.IncompleteReason = completion.Reason

	// Retained-signal test: a row with no date or no signal of any kind
	// is not a trade.
	hasSignal := trade.PnL != nil || trade.ClosedRR != nil ||
		trade.ResultRaw != "" || entryModelText != ""
	if trade.Date == nil || !hasSignal {
		return models.CanonicalTrade{}, false
	}

	return trade, true
}

func rowDate(row models.RawRecord, col string) (time.Time, bool) {
	if v, ok := row[col].(time.Time); ok {
		return v, true
	}
	return parse.Date(row.Text(col))
}
