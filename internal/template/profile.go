// Package template maps arbitrary input tables onto the canonical trade
// schema using a library of named mapping profiles.
package template

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"edge-analysis/internal/models"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// LoadProfiles scans a directory for *.json mapping profiles. Unreadable
// or malformed files are skipped with a warning; the load itself never
// fails. Profile identity is the file name minus its extension.
func LoadProfiles(dir string, logger zerolog.Logger) []models.MappingProfile {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug().Err(err).Str("dir", dir).Msg("Template directory not readable")
		return nil
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []models.MappingProfile
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("profile", name).Msg("Skipping unreadable mapping profile")
			continue
		}
		data = bytes.TrimPrefix(data, utf8BOM)

		var p models.MappingProfile
		if err := json.Unmarshal(data, &p); err != nil {
			logger.Warn().Err(err).Str("profile", name).Msg("Skipping malformed mapping profile")
			continue
		}
		p.Name = strings.TrimSuffix(name, filepath.Ext(name))
		out = append(out, p)
	}
	return out
}

// ListProfiles returns the available profile names in a directory.
func ListProfiles(dir string, logger zerolog.Logger) []string {
	profiles := LoadProfiles(dir, logger)
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names
}
