// Package models defines the data types shared across the analytics pipeline.
package models

import (
	"strconv"
	"strings"
)

// RawRecord represents one trade row as ingested: arbitrary field names
// mapped to untyped values (string, float64, bool, []string or nil).
// Lookups are defensive; a missing or null field reads as absent, never
// as a panic.
type RawRecord map[string]any

// Has reports whether the field exists and is non-nil.
func (r RawRecord) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// Text returns the field rendered as a trimmed string. Absent and null
// fields read as "".
func (r RawRecord) Text(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(renderValue(v))
}

// Number returns the field as a float64 if it is numeric or a plain
// numeric string.
func (r RawRecord) Number(field string) (float64, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// First returns the value of the first listed field that is present and
// renders to non-empty text.
func (r RawRecord) First(fields ...string) (any, bool) {
	for _, f := range fields {
		if r.Text(f) != "" {
			return r[f], true
		}
	}
	return nil, false
}

func renderValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ", ")
	}
	return ""
}

// RawTable is a rectangular table of raw records with a remembered header
// order. Column names carry no contract; consumers must tolerate any set
// of headers.
type RawTable struct {
	Headers []string
	Rows    []RawRecord
}

// IsEmpty reports whether the table has no rows.
func (t *RawTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// FindHeader resolves a column name case-insensitively, ignoring
// surrounding whitespace. Returns the actual header name.
func (t *RawTable) FindHeader(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, h := range t.Headers {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return h, true
		}
	}
	return "", false
}

// HasHeader reports whether the column exists, case-insensitively.
func (t *RawTable) HasHeader(name string) bool {
	_, ok := t.FindHeader(name)
	return ok
}

// StripHeaderSpace trims surrounding whitespace from every column name,
// rewriting row keys to match.
func (t *RawTable) StripHeaderSpace() {
	if t == nil {
		return
	}
	renames := make(map[string]string)
	for i, h := range t.Headers {
		trimmed := strings.TrimSpace(h)
		if trimmed != h {
			renames[h] = trimmed
			t.Headers[i] = trimmed
		}
	}
	if len(renames) == 0 {
		return
	}
	for _, row := range t.Rows {
		for old, now := range renames {
			if v, ok := row[old]; ok {
				delete(row, old)
				row[now] = v
			}
		}
	}
}

// Clone returns a deep copy of the table. Adaptation never mutates its
// input.
func (t *RawTable) Clone() *RawTable {
	if t == nil {
		return nil
	}
	out := &RawTable{Headers: append([]string(nil), t.Headers...)}
	out.Rows = make([]RawRecord, len(t.Rows))
	for i, row := range t.Rows {
		dup := make(RawRecord, len(row))
		for k, v := range row {
			dup[k] = v
		}
		out.Rows[i] = dup
	}
	return out
}
