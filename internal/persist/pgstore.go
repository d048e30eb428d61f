package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// PGStore is the server-backed save store on a pgx pool. Schema comes from
// the goose migrations.
type PGStore struct {
	db *DB
}

func NewPGStore(db *DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Save(ctx context.Context, meta SlotMeta, payload []byte) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO saves (slot, payload, entity_count, checksum, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slot) DO UPDATE SET
			payload = EXCLUDED.payload,
			entity_count = EXCLUDED.entity_count,
			checksum = EXCLUDED.checksum,
			created_at = EXCLUDED.created_at`,
		meta.Slot, payload, meta.EntityCount, meta.Checksum, meta.CreatedAt,
	); err != nil {
		return fmt.Errorf("save slot %s: %w", meta.Slot, err)
	}
	return tx.Commit(ctx)
}

func (s *PGStore) Load(ctx context.Context, slot string) (SlotMeta, []byte, error) {
	var (
		payload []byte
		meta    = SlotMeta{Slot: slot}
		created time.Time
	)
	err := s.db.Pool.QueryRow(ctx,
		`SELECT payload, entity_count, checksum, created_at FROM saves WHERE slot = $1`, slot,
	).Scan(&payload, &meta.EntityCount, &meta.Checksum, &created)
	if errors.Is(err, pgx.ErrNoRows) {
		return SlotMeta{}, nil, ErrSlotNotFound
	}
	if err != nil {
		return SlotMeta{}, nil, fmt.Errorf("load slot %s: %w", slot, err)
	}
	meta.CreatedAt = created
	return meta, payload, nil
}

func (s *PGStore) List(ctx context.Context) ([]SlotMeta, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT slot, entity_count, checksum, created_at FROM saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []SlotMeta
	for rows.Next() {
		var m SlotMeta
		if err := rows.Scan(&m.Slot, &m.EntityCount, &m.Checksum, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PGStore) Delete(ctx context.Context, slot string) error {
	res, err := s.db.Pool.Exec(ctx, `DELETE FROM saves WHERE slot = $1`, slot)
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	if res.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (s *PGStore) Close() error {
	s.db.Close()
	return nil
}
