package template

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"edge-analysis/internal/models"
)

// DefaultMinScore is the header-overlap score a profile must reach to be
// auto-selected.
const DefaultMinScore = 0.15

// Normalizer chooses and applies mapping profiles from a profile
// directory. Adaptation is best-effort: a table with no matching profile
// passes through unchanged with an empty profile name.
type Normalizer struct {
	dir      string
	minScore float64
	logger   zerolog.Logger
}

// New creates a Normalizer reading profiles from dir. A minScore of 0
// falls back to DefaultMinScore.
func New(dir string, minScore float64, logger zerolog.Logger) *Normalizer {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &Normalizer{dir: dir, minScore: minScore, logger: logger}
}

// Profiles returns the currently loadable mapping profiles.
func (n *Normalizer) Profiles() []models.MappingProfile {
	return LoadProfiles(n.dir, n.logger)
}

// AdaptTable adapts an in-memory table, auto-choosing a profile unless
// one is forced by name. Returns the adapted table and the profile name,
// or the original table and "" when no profile qualifies.
func (n *Normalizer) AdaptTable(t *models.RawTable, forced string) (*models.RawTable, string) {
	if t.IsEmpty() {
		return t, ""
	}
	chosen := Choose(t.Headers, n.Profiles(), n.minScore, forced)
	if chosen == nil {
		n.logger.Debug().Msg("No mapping profile qualified, passing table through")
		return t, ""
	}
	n.logger.Info().
		Str("profile", chosen.Name).
		Float64("score", Score(t.Headers, *chosen)).
		Msg("Mapping profile selected")
	return Adapt(t, *chosen), chosen.Name
}

// AdaptAuto reads a CSV, TSV or XLSX file from disk and adapts it the
// same way. Unlike cell-level parsing, an unreadable file is a boundary
// error and is reported as such.
func (n *Normalizer) AdaptAuto(path, forced string) (*models.RawTable, string, error) {
	var (
		t   *models.RawTable
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		t, err = ReadCSV(path, ',')
	case ".tsv":
		t, err = ReadCSV(path, '\t')
	case ".xlsx", ".xls":
		t, err = ReadXLSX(path)
	default:
		return nil, "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, "", err
	}
	adapted, name := n.AdaptTable(t, forced)
	return adapted, name, nil
}
