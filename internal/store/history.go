package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stickynote/internal/model"

	_ "modernc.org/sqlite"
)

// History is an append-only log of mutations kept in Dir/history.sqlite.
// It is informational only; todos.json remains the source of truth.
type History struct {
	Path string
}

func (s Store) History() History {
	return History{Path: s.HistoryPath()}
}

func (h History) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(h.Path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", h.Path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateHistory(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateHistory(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			item_id TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_item ON events(item_id);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// AppendEvents writes evs in one transaction.
func (h History) AppendEvents(ctx context.Context, evs []model.Event) error {
	if len(evs) == 0 {
		return nil
	}
	db, err := h.open(ctx)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO events(ts_unixms, type, item_id, payload_json) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range evs {
		ts := ev.TS
		if ts.IsZero() {
			ts = time.Now()
		}
		payload := string(ev.Payload)
		if payload == "" {
			payload = "{}"
		}
		if _, err := stmt.ExecContext(ctx, ts.UTC().UnixMilli(), ev.Type, ev.ItemID, payload); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return tx.Commit()
}

// ReadEvents returns the most recent limit events, oldest first. limit <= 0 means all.
func (h History) ReadEvents(ctx context.Context, limit int) ([]model.Event, error) {
	db, err := h.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer db.Close()

	q := `SELECT id, ts_unixms, type, item_id, payload_json FROM events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var (
			ev      model.Event
			tsMS    int64
			payload string
		)
		if err := rows.Scan(&ev.ID, &tsMS, &ev.Type, &ev.ItemID, &payload); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(tsMS).UTC()
		if payload != "" {
			ev.Payload = json.RawMessage(payload)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
