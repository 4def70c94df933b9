package source

import (
	"sort"
	"strings"

	"edge-analysis/internal/models"
)

// property is the tagged-union shape the document database uses for a
// single cell. Only the field named by Type carries the value.
type property struct {
	Type        string       `json:"type"`
	Title       []textSpan   `json:"title"`
	RichText    []textSpan   `json:"rich_text"`
	Select      *namedValue  `json:"select"`
	MultiSelect []namedValue `json:"multi_select"`
	Number      *float64     `json:"number"`
	Date        *dateValue   `json:"date"`
	Checkbox    bool         `json:"checkbox"`
	People      []namedValue `json:"people"`
	Status      *namedValue  `json:"status"`
	URL         *string      `json:"url"`
}

type textSpan struct {
	PlainText string `json:"plain_text"`
}

type namedValue struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

// flattenProperties reduces the tagged property values to plain cells.
// Unknown property types flatten to nil.
func flattenProperties(props map[string]property) models.RawRecord {
	row := make(models.RawRecord, len(props))
	for name, p := range props {
		row[name] = flattenValue(p)
	}
	return row
}

func flattenValue(p property) any {
	switch p.Type {
	case "title":
		return joinSpans(p.Title)
	case "rich_text":
		return joinSpans(p.RichText)
	case "select":
		if p.Select == nil {
			return nil
		}
		return p.Select.Name
	case "multi_select":
		return joinNames(p.MultiSelect)
	case "number":
		if p.Number == nil {
			return nil
		}
		return *p.Number
	case "date":
		if p.Date == nil {
			return nil
		}
		return p.Date.Start
	case "checkbox":
		return p.Checkbox
	case "people":
		return joinNames(p.People)
	case "status":
		if p.Status == nil {
			return nil
		}
		return p.Status.Name
	case "url":
		if p.URL == nil {
			return nil
		}
		return *p.URL
	default:
		return nil
	}
}

func joinSpans(spans []textSpan) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		parts = append(parts, s.PlainText)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func joinNames(values []namedValue) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v.Name != "" {
			parts = append(parts, v.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// propertyOrder returns the property names sorted so the header union
// is deterministic across fetches.
func propertyOrder(props map[string]property) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
