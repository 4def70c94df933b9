package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Edge Analysis Configuration

[analysis]
# Completeness mode for the whole session: strict requires both a
# resolved outcome and a numeric closed RR per trade.
strict_completion = true
# Minimum header-overlap score for auto-selecting a mapping profile
min_profile_score = 0.15
# Mapping-profile directory (defaults to <config dir>/templates)
templates_dir = ""
# Fill a missing session label from the entry hour
infer_session = false

[source]
# Document-database API base URL
base_url = "https://api.notion.com/v1"
# Records per page when paginating a collection
page_size = 100
# Requests per second against the source API
rate_limit = 3.0
# How long a fetched and normalized dataset stays cached
cache_ttl = "5m"

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
`

const credentialsTemplate = `# Edge Analysis Credentials
# Keep this file private; it carries your source bearer token.

[source]
# Integration token for the document database
token = ""
# Collection (database) holding your trade journal
collection_id = ""
# Your user id with the source, used to key saved preferences
user_id = ""
`

// defaultJournalProfile matches the canonical journal export layout so
// a fresh install can score and adapt a CSV without any setup.
const defaultJournalProfile = `{
  "columns": {
    "Day/Time/Date of Trade": "Date",
    "Trade Date": "Date",
    "Symbol": "Pair",
    "Instrument": "Pair",
    "R": "Closed RR",
    "RR": "Closed RR",
    "Profit/Loss": "PnL"
  },
  "normalizers": {
    "Pair": {
      "Gold": ["xau", "xauusd", "gold"],
      "NASDAQ": ["nas100", "us100", "nasdaq"]
    }
  },
  "coercions": {
    "Date": "date",
    "PnL": "float"
  }
}
`

func createDefaultProfiles(templatesDir string) error {
	if err := os.MkdirAll(templatesDir, 0755); err != nil {
		return fmt.Errorf("creating templates directory: %w", err)
	}
	path := filepath.Join(templatesDir, "journal.json")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(defaultJournalProfile), 0644)
}

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(configDir, "credentials.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(credentialsTemplate), 0600)
}
