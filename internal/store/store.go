// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"edge-analysis/internal/models"
)

// DataStore defines the interface for data persistence.
type DataStore interface {
	// Trades
	SaveTrades(ctx context.Context, trades []models.CanonicalTrade) error
	ReplaceTrades(ctx context.Context, collectionID string, trades []models.CanonicalTrade) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.CanonicalTrade, error)

	// User preferences
	SaveUserPrefs(ctx context.Context, prefs *models.UserPrefs) error
	GetUserPrefs(ctx context.Context, userID string) (*models.UserPrefs, error)

	// Sync
	GetLastSync(collectionID string) time.Time
	SetLastSync(collectionID string, t time.Time) error

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying persisted trades. Zero
// values mean no constraint.
type TradeFilter struct {
	Collection   string
	From         *time.Time
	To           *time.Time
	Instrument   string
	Session      string
	Outcome      models.Outcome
	OnlyComplete bool
	Limit        int
}
