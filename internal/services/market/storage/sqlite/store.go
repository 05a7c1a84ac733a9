// Package sqlite provides a SQLite-backed market journal store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/deedshare/deedshare/internal/platform/storage/sqlitemigrate"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
	"github.com/deedshare/deedshare/internal/services/market/storage/sqlite/migrations"
)

const heightKey = "block_height"

// Store persists the market journal in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite journal store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendEvents writes a decision's events in one transaction.
func (s *Store) AppendEvents(ctx context.Context, events []event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(events) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, evt := range events {
		if evt.ID == "" {
			return fmt.Errorf("event id is required")
		}
		if evt.Type == "" {
			return fmt.Errorf("event type is required")
		}
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO journal_events (id, type, height, actor, created_at, payload)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			evt.ID,
			string(evt.Type),
			int64(evt.Height),
			string(evt.Actor),
			toMillis(evt.Timestamp),
			[]byte(evt.PayloadJSON),
		)
		if err != nil {
			return fmt.Errorf("append journal event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journal append: %w", err)
	}
	return nil
}

// ListEvents returns up to limit events after afterSeq, in sequence order.
func (s *Store) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	query := `SELECT seq, id, type, height, actor, created_at, payload
	          FROM journal_events WHERE seq > ? ORDER BY seq ASC`
	args := []any{int64(afterSeq)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []event.Event
	for rows.Next() {
		var (
			seq       int64
			evtType   string
			height    int64
			actor     string
			createdAt int64
			payload   []byte
			evt       event.Event
		)
		if err := rows.Scan(&seq, &evt.ID, &evtType, &height, &actor, &createdAt, &payload); err != nil {
			return nil, fmt.Errorf("scan journal event: %w", err)
		}
		evt.Seq = uint64(seq)
		evt.Type = event.Type(evtType)
		evt.Height = chain.BlockNumber(height)
		evt.Actor = chain.AccountID(actor)
		evt.Timestamp = fromMillis(createdAt)
		evt.PayloadJSON = payload
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal events: %w", err)
	}
	return events, nil
}

// Height returns the persisted block height, zero when never set.
func (s *Store) Height(ctx context.Context) (chain.BlockNumber, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var value int64
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT value FROM chain_meta WHERE key = ?`,
		heightKey,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read block height: %w", err)
	}
	return chain.BlockNumber(value), nil
}

// SetHeight persists the block height.
func (s *Store) SetHeight(ctx context.Context, height chain.BlockNumber) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO chain_meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		heightKey,
		int64(height),
	)
	if err != nil {
		return fmt.Errorf("write block height: %w", err)
	}
	return nil
}
