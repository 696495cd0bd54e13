package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/pokesim/internal/storage"
)

// BattleRepository stores finished battles in the battles table.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a BattleRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// Save inserts rec. The seed is stored as its int64 bit pattern.
//
// Postcondition: Returns rec with ID and CreatedAt set, or an error.
func (r *BattleRepository) Save(ctx context.Context, rec storage.BattleRecord) (storage.BattleRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cfgJSON, err := json.Marshal(rec.Config)
	if err != nil {
		return storage.BattleRecord{}, fmt.Errorf("encoding battle config: %w", err)
	}
	resJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return storage.BattleRecord{}, fmt.Errorf("encoding battle result: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO battles (id, seed, pokemon1, pokemon2, winner, reason, total_turns, config, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		rec.ID, int64(rec.Seed),
		rec.Config.Pokemon1.Name, rec.Config.Pokemon2.Name,
		rec.Result.Winner, string(rec.Result.Reason), rec.Result.TotalTurns,
		cfgJSON, resJSON,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return storage.BattleRecord{}, fmt.Errorf("inserting battle: %w", err)
	}
	return rec, nil
}

// Get retrieves one battle by ID.
//
// Postcondition: Returns the record or storage.ErrBattleNotFound.
func (r *BattleRepository) Get(ctx context.Context, id uuid.UUID) (storage.BattleRecord, error) {
	var (
		rec              storage.BattleRecord
		seed             int64
		cfgJSON, resJSON []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, seed, config, result, created_at FROM battles WHERE id = $1`,
		id,
	).Scan(&rec.ID, &seed, &cfgJSON, &resJSON, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.BattleRecord{}, storage.ErrBattleNotFound
		}
		return storage.BattleRecord{}, fmt.Errorf("querying battle: %w", err)
	}
	rec.Seed = uint64(seed)
	if err := json.Unmarshal(cfgJSON, &rec.Config); err != nil {
		return storage.BattleRecord{}, fmt.Errorf("decoding battle config: %w", err)
	}
	if err := json.Unmarshal(resJSON, &rec.Result); err != nil {
		return storage.BattleRecord{}, fmt.Errorf("decoding battle result: %w", err)
	}
	return rec, nil
}

// List returns battle summaries newest first.
//
// Precondition: limit <= 0 uses storage.DefaultListLimit; offset < 0 is treated as 0.
func (r *BattleRepository) List(ctx context.Context, limit, offset int) ([]storage.Listing, error) {
	if limit <= 0 {
		limit = storage.DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, pokemon1, pokemon2, winner, reason, total_turns, created_at
		 FROM battles ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing battles: %w", err)
	}
	defer rows.Close()

	out := []storage.Listing{}
	for rows.Next() {
		var l storage.Listing
		if err := rows.Scan(&l.ID, &l.Pokemon1, &l.Pokemon2, &l.Winner, &l.Reason, &l.TotalTurns, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning battle row: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle rows: %w", err)
	}
	return out, nil
}
