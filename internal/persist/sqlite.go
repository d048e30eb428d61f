package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

func unixTime(v int64) time.Time { return time.Unix(v, 0).UTC() }

// SQLiteStore is the file-backed local save store. One file per world, one
// row per slot.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create save dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open save db %s: %w", path, err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS saves (
			slot         TEXT PRIMARY KEY,
			payload      BLOB NOT NULL,
			entity_count INTEGER NOT NULL,
			checksum     BLOB NOT NULL,
			created_at   INTEGER NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init save schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, meta SlotMeta, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (slot, payload, entity_count, checksum, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			payload = excluded.payload,
			entity_count = excluded.entity_count,
			checksum = excluded.checksum,
			created_at = excluded.created_at`,
		meta.Slot, payload, meta.EntityCount, meta.Checksum, meta.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("save slot %s: %w", meta.Slot, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, slot string) (SlotMeta, []byte, error) {
	var (
		payload   []byte
		meta      = SlotMeta{Slot: slot}
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, entity_count, checksum, created_at FROM saves WHERE slot = ?`, slot,
	).Scan(&payload, &meta.EntityCount, &meta.Checksum, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SlotMeta{}, nil, ErrSlotNotFound
	}
	if err != nil {
		return SlotMeta{}, nil, fmt.Errorf("load slot %s: %w", slot, err)
	}
	meta.CreatedAt = unixTime(createdAt)
	return meta, payload, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]SlotMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, entity_count, checksum, created_at FROM saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []SlotMeta
	for rows.Next() {
		var (
			m         SlotMeta
			createdAt int64
		)
		if err := rows.Scan(&m.Slot, &m.EntityCount, &m.Checksum, &createdAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		m.CreatedAt = unixTime(createdAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, slot string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
