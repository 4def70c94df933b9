package template

import (
	"strings"

	"edge-analysis/internal/models"
)

// Score computes the case-insensitive Jaccard similarity between a
// table's headers and a profile's declared source columns. A profile
// with no columns scores 0.
func Score(headers []string, p models.MappingProfile) float64 {
	src := make(map[string]bool, len(p.Columns))
	for k := range p.Columns {
		src[foldHeader(k)] = true
	}
	if len(src) == 0 {
		return 0
	}

	raw := make(map[string]bool, len(headers))
	for _, h := range headers {
		raw[foldHeader(h)] = true
	}

	inter := 0
	for h := range raw {
		if src[h] {
			inter++
		}
	}
	union := len(raw) + len(src) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Choose selects the mapping profile for a table. A forced name wins if
// it exists; otherwise the best-scoring profile is chosen when its score
// reaches minScore. Nil means pass the table through unmapped.
func Choose(headers []string, profiles []models.MappingProfile, minScore float64, forced string) *models.MappingProfile {
	if forced != "" {
		for i := range profiles {
			if profiles[i].Name == forced {
				return &profiles[i]
			}
		}
		// Forced name not found: fall through to auto-choose.
	}

	best := -1
	bestScore := 0.0
	for i := range profiles {
		if s := Score(headers, profiles[i]); s > bestScore {
			bestScore = s
			best = i
		}
	}
	if best < 0 || bestScore < minScore {
		return nil
	}
	return &profiles[best]
}

func foldHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
