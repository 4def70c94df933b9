package template

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"edge-analysis/internal/models"
	"edge-analysis/internal/parse"
)

var (
	nonFloatRe = regexp.MustCompile(`[^\d.\-]`)
	nonIntRe   = regexp.MustCompile(`[^\d\-]`)
)

var boolTruthy = map[string]bool{
	"true": true, "1": true, "yes": true, "y": true, "✅": true,
}

// Adapt applies a mapping profile to a table: case-insensitive column
// renames, canonical-column presence, value normalizers, type coercions
// and calendar fields derived from the date column. The input table is
// not mutated.
func Adapt(t *models.RawTable, p models.MappingProfile) *models.RawTable {
	out := t.Clone()

	renameColumns(out, p.Columns)
	ensureCanonical(out)
	applyNormalizers(out, p.Normalizers)
	applyCoercions(out, p.Coercions)
	deriveCalendar(out)
	reorderCanonicalFirst(out)

	return out
}

func renameColumns(t *models.RawTable, columns map[string]string) {
	for src, dst := range columns {
		actual, ok := t.FindHeader(src)
		if !ok || actual == dst {
			continue
		}
		for i, h := range t.Headers {
			if h == actual {
				t.Headers[i] = dst
			}
		}
		for _, row := range t.Rows {
			if v, exists := row[actual]; exists {
				delete(row, actual)
				row[dst] = v
			}
		}
	}
}

// ensureCanonical guarantees the presence of every canonical column,
// filling absent ones with empty values. Extra columns are preserved.
func ensureCanonical(t *models.RawTable) {
	for _, col := range models.CanonicalOrder {
		if t.HasHeader(col) {
			continue
		}
		t.Headers = append(t.Headers, col)
		for _, row := range t.Rows {
			row[col] = ""
		}
	}
}

func applyNormalizers(t *models.RawTable, normalizers map[string]map[string][]string) {
	for key, rules := range normalizers {
		actual, ok := t.FindHeader(key)
		if !ok {
			continue
		}
		for _, row := range t.Rows {
			cell := strings.ToLower(row.Text(actual))
			if cell == "" {
				continue
			}
			for target, variants := range rules {
				for _, v := range variants {
					if cell == strings.ToLower(strings.TrimSpace(v)) {
						row[actual] = target
					}
				}
			}
		}
	}
}

func applyCoercions(t *models.RawTable, coercions map[string]string) {
	for key, kind := range coercions {
		actual, ok := t.FindHeader(key)
		if !ok {
			continue
		}
		for _, row := range t.Rows {
			row[actual] = coerceValue(row, actual, kind)
		}
	}
}

// coerceValue converts one cell per a coercion directive. Unparsable
// cells become nil, never an error.
func coerceValue(row models.RawRecord, col, kind string) any {
	switch kind {
	case "date":
		if v, ok := row[col].(time.Time); ok {
			return v
		}
		if d, ok := parse.Date(row.Text(col)); ok {
			return d
		}
		return nil
	case "float":
		if n, ok := row.Number(col); ok {
			return n
		}
		s := nonFloatRe.ReplaceAllString(row.Text(col), "")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return nil
	case "int":
		s := nonIntRe.ReplaceAllString(row.Text(col), "")
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		return nil
	case "bool":
		return boolTruthy[strings.ToLower(row.Text(col))]
	}
	return row[col]
}

// deriveCalendar adds DayName, Month and ISO-week columns when a date
// column is present and parsable.
func deriveCalendar(t *models.RawTable) {
	dateCol, ok := t.FindHeader(models.ColDate)
	if !ok {
		return
	}
	for _, derived := range []string{models.ColDayName, models.ColMonth, models.ColWeek} {
		if !t.HasHeader(derived) {
			t.Headers = append(t.Headers, derived)
		}
	}
	for _, row := range t.Rows {
		d, ok := cellDate(row, dateCol)
		if !ok {
			row[models.ColDayName] = nil
			row[models.ColMonth] = nil
			row[models.ColWeek] = nil
			continue
		}
		_, week := d.ISOWeek()
		row[models.ColDayName] = d.Weekday().String()
		row[models.ColMonth] = d.Format("2006-01")
		row[models.ColWeek] = int64(week)
	}
}

func cellDate(row models.RawRecord, col string) (time.Time, bool) {
	if v, ok := row[col].(time.Time); ok {
		return v, true
	}
	return parse.Date(row.Text(col))
}

func reorderCanonicalFirst(t *models.RawTable) {
	seen := make(map[string]bool, len(t.Headers))
	ordered := make([]string, 0, len(t.Headers))
	for _, col := range models.CanonicalOrder {
		if actual, ok := t.FindHeader(col); ok && !seen[actual] {
			seen[actual] = true
			ordered = append(ordered, actual)
		}
	}
	for _, h := range t.Headers {
		if !seen[h] {
			seen[h] = true
			ordered = append(ordered, h)
		}
	}
	t.Headers = ordered
}
