// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"edge-analysis/internal/models"
	"edge-analysis/internal/performance"
)

const insertBatchSize = 200

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db        *sql.DB
	mu        sync.RWMutex
	syncTimes map[string]time.Time
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{
		db:        db,
		syncTimes: make(map[string]time.Time),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Normalized trades, one row per journal record
	CREATE TABLE IF NOT EXISTS canonical_trades (
		id TEXT PRIMARY KEY,
		collection_id TEXT NOT NULL DEFAULT '',
		date DATETIME,
		instrument TEXT NOT NULL,
		session TEXT,
		entry_models TEXT,
		confluence TEXT,
		result_raw TEXT,
		outcome TEXT NOT NULL,
		closed_rr REAL,
		pnl REAL,
		stars INTEGER,
		risk_percent REAL,
		duration_bin TEXT,
		account_group TEXT,
		is_complete INTEGER NOT NULL DEFAULT 0,
		incomplete_reason TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Per-user template and collection association
	CREATE TABLE IF NOT EXISTS user_prefs (
		user_id TEXT PRIMARY KEY,
		template TEXT,
		collection_id TEXT,
		updated_at DATETIME NOT NULL
	);

	-- Sync status table
	CREATE TABLE IF NOT EXISTS sync_status (
		collection_id TEXT PRIMARY KEY,
		last_sync DATETIME NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_trades_collection ON canonical_trades(collection_id);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON canonical_trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_instrument ON canonical_trades(instrument);
	CREATE INDEX IF NOT EXISTS idx_trades_outcome ON canonical_trades(outcome);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTrades upserts trades without touching a collection association.
func (s *SQLiteStore) SaveTrades(ctx context.Context, trades []models.CanonicalTrade) error {
	return s.insertTrades(ctx, "", trades)
}

// ReplaceTrades swaps the persisted dataset for a collection in one
// transaction, so readers never observe a half-synced journal.
func (s *SQLiteStore) ReplaceTrades(ctx context.Context, collectionID string, trades []models.CanonicalTrade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM canonical_trades WHERE collection_id = ?`, collectionID); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	if err := insertTradesTx(ctx, tx, collectionID, trades); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) insertTrades(ctx context.Context, collectionID string, trades []models.CanonicalTrade) error {
	if len(trades) == 0 {
		return nil
	}

	batcher := performance.NewBatchProcessor(insertBatchSize, func(batch []models.CanonicalTrade) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		if err := insertTradesTx(ctx, tx, collectionID, batch); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})

	for _, t := range trades {
		if err := batcher.Add(t); err != nil {
			return err
		}
	}
	return batcher.Flush()
}

func insertTradesTx(ctx context.Context, tx *sql.Tx, collectionID string, trades []models.CanonicalTrade) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO canonical_trades (
			id, collection_id, date, instrument, session, entry_models, confluence,
			result_raw, outcome, closed_rr, pnl, stars, risk_percent,
			duration_bin, account_group, is_complete, incomplete_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		entryModels, err := json.Marshal(t.EntryModels)
		if err != nil {
			return fmt.Errorf("failed to marshal entry models: %w", err)
		}
		confluence, err := json.Marshal(t.Confluence)
		if err != nil {
			return fmt.Errorf("failed to marshal confluence: %w", err)
		}

		_, err = stmt.ExecContext(ctx,
			t.ID, collectionID, nullableTime(t.Date), t.Instrument, t.Session,
			string(entryModels), string(confluence), t.ResultRaw, string(t.Outcome),
			nullableFloat(t.ClosedRR), nullableFloat(t.PnL), nullableInt(t.Stars),
			nullableFloat(t.RiskPercent), t.DurationBin, t.AccountGroup,
			boolToInt(t.IsComplete), t.IncompleteReason,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trade: %w", err)
		}
	}
	return nil
}

// GetTrades retrieves trades matching the filter, ordered by date.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.CanonicalTrade, error) {
	query := `
		SELECT id, date, instrument, session, entry_models, confluence,
			result_raw, outcome, closed_rr, pnl, stars, risk_percent,
			duration_bin, account_group, is_complete, incomplete_reason
		FROM canonical_trades
		WHERE 1=1
	`
	var args []interface{}

	if filter.Collection != "" {
		query += " AND collection_id = ?"
		args = append(args, filter.Collection)
	}
	if filter.From != nil {
		query += " AND date >= ?"
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += " AND date <= ?"
		args = append(args, *filter.To)
	}
	if filter.Instrument != "" {
		query += " AND instrument = ?"
		args = append(args, filter.Instrument)
	}
	if filter.Session != "" {
		query += " AND session = ?"
		args = append(args, filter.Session)
	}
	if filter.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, string(filter.Outcome))
	}
	if filter.OnlyComplete {
		query += " AND is_complete = 1"
	}

	query += " ORDER BY date ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.CanonicalTrade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func scanTrade(rows *sql.Rows) (models.CanonicalTrade, error) {
	var t models.CanonicalTrade
	var date sql.NullTime
	var session, entryModels, confluence, resultRaw sql.NullString
	var durationBin, accountGroup, incompleteReason sql.NullString
	var outcome string
	var closedRR, pnl, riskPercent sql.NullFloat64
	var stars sql.NullInt64
	var isComplete int

	err := rows.Scan(
		&t.ID, &date, &t.Instrument, &session, &entryModels, &confluence,
		&resultRaw, &outcome, &closedRR, &pnl, &stars, &riskPercent,
		&durationBin, &accountGroup, &isComplete, &incompleteReason,
	)
	if err != nil {
		return t, fmt.Errorf("failed to scan trade: %w", err)
	}

	if date.Valid {
		d := date.Time
		t.Date = &d
	}
	t.Session = session.String
	t.ResultRaw = resultRaw.String
	t.Outcome = models.Outcome(outcome)
	t.DurationBin = durationBin.String
	t.AccountGroup = accountGroup.String
	t.IncompleteReason = incompleteReason.String
	t.IsComplete = isComplete != 0

	if entryModels.Valid && entryModels.String != "" {
		if err := json.Unmarshal([]byte(entryModels.String), &t.EntryModels); err != nil {
			return t, fmt.Errorf("failed to unmarshal entry models: %w", err)
		}
	}
	if confluence.Valid && confluence.String != "" {
		if err := json.Unmarshal([]byte(confluence.String), &t.Confluence); err != nil {
			return t, fmt.Errorf("failed to unmarshal confluence: %w", err)
		}
	}
	if closedRR.Valid {
		v := closedRR.Float64
		t.ClosedRR = &v
	}
	if pnl.Valid {
		v := pnl.Float64
		t.PnL = &v
	}
	if riskPercent.Valid {
		v := riskPercent.Float64
		t.RiskPercent = &v
	}
	if stars.Valid {
		v := int(stars.Int64)
		t.Stars = &v
	}

	fillCalendar(&t)
	return t, nil
}

// fillCalendar rebuilds the derived calendar fields after a load; they
// are not persisted.
func fillCalendar(t *models.CanonicalTrade) {
	t.Hour = -1
	if t.Date == nil {
		return
	}
	d := *t.Date
	t.DayName = d.Weekday().String()
	t.Hour = d.Hour()
	t.Month = d.Format("2006-01")
	_, t.ISOWeek = d.ISOWeek()
}

// SaveUserPrefs upserts a user's template and collection association.
func (s *SQLiteStore) SaveUserPrefs(ctx context.Context, prefs *models.UserPrefs) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_prefs (user_id, template, collection_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			template = excluded.template,
			collection_id = excluded.collection_id,
			updated_at = excluded.updated_at
	`, prefs.UserID, prefs.Template, prefs.CollectionID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save user prefs: %w", err)
	}
	return nil
}

// GetUserPrefs retrieves a user's preferences, or nil when none exist.
func (s *SQLiteStore) GetUserPrefs(ctx context.Context, userID string) (*models.UserPrefs, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, template, collection_id, updated_at
		FROM user_prefs WHERE user_id = ?
	`, userID)

	var prefs models.UserPrefs
	var template, collection sql.NullString
	err := row.Scan(&prefs.UserID, &template, &collection, &prefs.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user prefs: %w", err)
	}
	prefs.Template = template.String
	prefs.CollectionID = collection.String
	return &prefs, nil
}

// GetLastSync returns the last sync time for a collection.
func (s *SQLiteStore) GetLastSync(collectionID string) time.Time {
	s.mu.RLock()
	if t, ok := s.syncTimes[collectionID]; ok {
		s.mu.RUnlock()
		return t
	}
	s.mu.RUnlock()

	var t time.Time
	err := s.db.QueryRow(`SELECT last_sync FROM sync_status WHERE collection_id = ?`, collectionID).Scan(&t)
	if err != nil {
		return time.Time{}
	}

	s.mu.Lock()
	s.syncTimes[collectionID] = t
	s.mu.Unlock()
	return t
}

// SetLastSync records the last sync time for a collection.
func (s *SQLiteStore) SetLastSync(collectionID string, t time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO sync_status (collection_id, last_sync)
		VALUES (?, ?)
		ON CONFLICT(collection_id) DO UPDATE SET
			last_sync = excluded.last_sync,
			updated_at = CURRENT_TIMESTAMP
	`, collectionID, t)
	if err != nil {
		return fmt.Errorf("failed to set last sync: %w", err)
	}

	s.mu.Lock()
	s.syncTimes[collectionID] = t
	s.mu.Unlock()
	return nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func nullableFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func nullableInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ DataStore = (*SQLiteStore)(nil)
