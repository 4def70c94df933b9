package source

import "edge-analysis/internal/models"

// Journal property names vary across database revisions; each canonical
// column reads the first non-empty alias.
var (
	dateAliases    = []string{"Day/Time/Date of Trade", "Date"}
	pairAliases    = []string{"Pair", "Instrument"}
	sessionAliases = []string{"Session"}
	entryAliases   = []string{"Entry Model"}
	resultAliases  = []string{"Result"}
	rrAliases      = []string{"Closed RR"}
	pnlAliases     = []string{"PnL"}
)

var aliasColumns = []struct {
	canonical string
	aliases   []string
}{
	{models.ColDate, dateAliases},
	{models.ColPair, pairAliases},
	{models.ColSession, sessionAliases},
	{models.ColEntryModel, entryAliases},
	{models.ColResult, resultAliases},
	{models.ColClosedRR, rrAliases},
	{models.ColPnL, pnlAliases},
}

// CollapseAliases maps fetched property names onto the canonical column
// set. Properties that are not an alias of any canonical column survive
// unchanged after the canonical block, so annotation fields like notes
// or star ratings stay available downstream.
func CollapseAliases(t *models.RawTable) *models.RawTable {
	if t.IsEmpty() {
		return &models.RawTable{Headers: canonicalHeaders()}
	}

	aliased := make(map[string]bool)
	for _, col := range aliasColumns {
		for _, a := range col.aliases {
			aliased[a] = true
		}
	}

	out := &models.RawTable{Headers: canonicalHeaders()}
	for _, h := range t.Headers {
		if !aliased[h] {
			out.Headers = append(out.Headers, h)
		}
	}

	for _, row := range t.Rows {
		dst := make(models.RawRecord, len(row))
		for _, col := range aliasColumns {
			if v, ok := row.First(col.aliases...); ok {
				dst[col.canonical] = v
			}
		}
		for k, v := range row {
			if !aliased[k] {
				dst[k] = v
			}
		}
		out.Rows = append(out.Rows, dst)
	}
	return out
}

func canonicalHeaders() []string {
	headers := make([]string, 0, len(aliasColumns))
	for _, col := range aliasColumns {
		headers = append(headers, col.canonical)
	}
	return headers
}
