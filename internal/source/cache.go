package source

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"edge-analysis/internal/logging"
	"edge-analysis/internal/models"
)

// Loader wraps the client with a TTL cache so repeated analysis runs
// against the same collection do not refetch every page.
type Loader struct {
	client *Client
	cache  *gocache.Cache
	logger zerolog.Logger
}

// NewLoader creates a caching loader. A zero ttl disables caching.
func NewLoader(client *Client, ttl time.Duration, logger zerolog.Logger) *Loader {
	var c *gocache.Cache
	if ttl > 0 {
		c = gocache.New(ttl, 2*ttl)
	}
	return &Loader{client: client, cache: c, logger: logger}
}

// Load fetches and alias-collapses the collection, serving a cached
// copy when one is fresh. The returned table is cloned so callers may
// mutate it.
func (l *Loader) Load(ctx context.Context, collectionID string) (*models.RawTable, error) {
	if l.cache != nil {
		if v, ok := l.cache.Get(collectionID); ok {
			logging.LogCacheHit(l.logger, collectionID)
			return v.(*models.RawTable).Clone(), nil
		}
	}

	raw, err := l.client.FetchCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	table := CollapseAliases(raw)

	if l.cache != nil {
		l.cache.Set(collectionID, table, gocache.DefaultExpiration)
	}
	return table.Clone(), nil
}

// Invalidate drops any cached copy of the collection.
func (l *Loader) Invalidate(collectionID string) {
	if l.cache != nil {
		l.cache.Delete(collectionID)
	}
}
