// Package store is the durable record store: a SQLite-backed mapping of
// fingerprint to animation record, readable by the presentation layer at
// any time.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jawish/lottiegrab/dbopen"
	"github.com/jawish/lottiegrab/internal/lottie"
)

// Store wraps the animations table.
type Store struct {
	DB *sql.DB
}

// Open opens (or creates) the store at path with the schema applied.
// The caller must blank-import a SQLite driver.
func Open(path string) (*Store, error) {
	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(Schema))
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	return &Store{DB: db}, nil
}

// New wraps an already-opened database. The schema must have been applied.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Put upserts a record by fingerprint. A later successful validation for
// the same fingerprint replaces the previous record wholesale.
func (s *Store) Put(ctx context.Context, rec *lottie.Record) error {
	meta := ""
	if rec.Meta != nil {
		raw, err := json.Marshal(rec.Meta)
		if err != nil {
			return fmt.Errorf("store: marshal meta: %w", err)
		}
		meta = string(raw)
	}

	_, err := dbopen.Exec(ctx, s.DB, `
		INSERT INTO animations (
			fingerprint, id, session_id, bm_version, num_layers,
			width, height, frame_rate, num_frames, meta_json,
			lottie_url, tab_url, from_archive, discovered_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			id = excluded.id,
			session_id = excluded.session_id,
			bm_version = excluded.bm_version,
			num_layers = excluded.num_layers,
			width = excluded.width,
			height = excluded.height,
			frame_rate = excluded.frame_rate,
			num_frames = excluded.num_frames,
			meta_json = excluded.meta_json,
			lottie_url = excluded.lottie_url,
			tab_url = excluded.tab_url,
			from_archive = excluded.from_archive,
			discovered_at = excluded.discovered_at`,
		rec.Fingerprint, rec.ID, rec.SessionID, rec.BMVersion, rec.NumLayers,
		rec.Width, rec.Height, rec.FrameRate, rec.NumFrames, meta,
		rec.LottieURL, rec.TabURL, boolToInt(rec.FromArchive), rec.DiscoveredAt)
	if err != nil {
		return fmt.Errorf("store: put: %w", err)
	}
	return nil
}

// Get returns the record for a fingerprint, or (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, fingerprint string) (*lottie.Record, error) {
	row := s.DB.QueryRowContext(ctx, selectCols+` WHERE fingerprint = ?`, fingerprint)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get: %w", err)
	}
	return rec, nil
}

// Has reports whether a record exists for the fingerprint.
func (s *Store) Has(ctx context.Context, fingerprint string) (bool, error) {
	var one int
	err := s.DB.QueryRowContext(ctx,
		`SELECT 1 FROM animations WHERE fingerprint = ?`, fingerprint).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: has: %w", err)
	}
	return true, nil
}

// AllForSession returns a session's records, newest first.
func (s *Store) AllForSession(ctx context.Context, sessionID string) ([]lottie.Record, error) {
	rows, err := s.DB.QueryContext(ctx,
		selectCols+` WHERE session_id = ? ORDER BY discovered_at DESC, id DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("store: all for session: %w", err)
	}
	return collect(rows)
}

// All returns every record, newest first.
func (s *Store) All(ctx context.Context) ([]lottie.Record, error) {
	rows, err := s.DB.QueryContext(ctx,
		selectCols+` ORDER BY discovered_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: all: %w", err)
	}
	return collect(rows)
}

// CountForSession counts a session's records.
func (s *Store) CountForSession(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM animations WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// ClearSession deletes every record owned by a session. The single DELETE
// keeps the clear atomic with respect to concurrent commits for other
// sessions.
func (s *Store) ClearSession(ctx context.Context, sessionID string) error {
	if _, err := dbopen.Exec(ctx, s.DB,
		`DELETE FROM animations WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("store: clear session: %w", err)
	}
	return nil
}

// ClearAll deletes every record.
func (s *Store) ClearAll(ctx context.Context) error {
	if _, err := dbopen.Exec(ctx, s.DB, `DELETE FROM animations`); err != nil {
		return fmt.Errorf("store: clear all: %w", err)
	}
	return nil
}

const selectCols = `SELECT fingerprint, id, session_id, bm_version, num_layers,
	width, height, frame_rate, num_frames, meta_json,
	lottie_url, tab_url, from_archive, discovered_at FROM animations`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*lottie.Record, error) {
	var rec lottie.Record
	var meta string
	var fromArchive int
	err := row.Scan(&rec.Fingerprint, &rec.ID, &rec.SessionID, &rec.BMVersion,
		&rec.NumLayers, &rec.Width, &rec.Height, &rec.FrameRate, &rec.NumFrames,
		&meta, &rec.LottieURL, &rec.TabURL, &fromArchive, &rec.DiscoveredAt)
	if err != nil {
		return nil, err
	}
	rec.FromArchive = fromArchive != 0
	if meta != "" {
		if err := json.Unmarshal([]byte(meta), &rec.Meta); err != nil {
			return nil, fmt.Errorf("unmarshal meta: %w", err)
		}
	}
	return &rec, nil
}

func collect(rows *sql.Rows) ([]lottie.Record, error) {
	defer rows.Close()
	var recs []lottie.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
