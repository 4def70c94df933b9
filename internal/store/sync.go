// Package store provides data persistence implementations.
package store

import "time"

// SyncStatus describes how fresh the persisted copy of a collection is.
type SyncStatus struct {
	Collection string
	LastSync   time.Time
	Age        time.Duration
	IsStale    bool
}

// DefaultStaleAfter is how old a synced journal may be before analysis
// commands suggest a refetch.
const DefaultStaleAfter = 24 * time.Hour

// CheckFreshness reports the sync status of a collection. A collection
// that was never synced is stale with a zero LastSync.
func CheckFreshness(s DataStore, collectionID string, staleAfter time.Duration) SyncStatus {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	last := s.GetLastSync(collectionID)
	status := SyncStatus{Collection: collectionID, LastSync: last}
	if last.IsZero() {
		status.IsStale = true
		return status
	}
	status.Age = time.Since(last)
	status.IsStale = status.Age > staleAfter
	return status
}
