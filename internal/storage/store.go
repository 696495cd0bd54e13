// Package storage defines the persisted form of finished battles and the
// Store interface implemented by the postgres and memory backends.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/pokesim/internal/game/battle"
)

// ErrBattleNotFound is returned when a battle lookup yields no results.
var ErrBattleNotFound = errors.New("battle not found")

// DefaultListLimit caps List when the caller passes limit <= 0.
const DefaultListLimit = 50

// BattleRecord is one finished battle with everything needed to replay it.
type BattleRecord struct {
	ID        uuid.UUID     `json:"id"`
	Seed      uint64        `json:"seed"`
	Config    battle.Config `json:"config"`
	Result    battle.Result `json:"result"`
	CreatedAt time.Time     `json:"created_at"`
}

// Listing is the summary row returned by List.
type Listing struct {
	ID         uuid.UUID     `json:"id"`
	Pokemon1   string        `json:"pokemon1"`
	Pokemon2   string        `json:"pokemon2"`
	Winner     string        `json:"winner"`
	Reason     battle.Reason `json:"reason"`
	TotalTurns int           `json:"total_turns"`
	CreatedAt  time.Time     `json:"created_at"`
}

// NewRecord builds a record with a fresh ID for a finished battle.
func NewRecord(seed uint64, cfg battle.Config, res battle.Result) BattleRecord {
	return BattleRecord{ID: uuid.New(), Seed: seed, Config: cfg, Result: res}
}

// Listing returns the summary row for r.
func (r BattleRecord) Listing() Listing {
	return Listing{
		ID:         r.ID,
		Pokemon1:   r.Config.Pokemon1.Name,
		Pokemon2:   r.Config.Pokemon2.Name,
		Winner:     r.Result.Winner,
		Reason:     r.Result.Reason,
		TotalTurns: r.Result.TotalTurns,
		CreatedAt:  r.CreatedAt,
	}
}

// Store persists finished battles.
type Store interface {
	// Save inserts rec and returns it with CreatedAt set. A zero ID is replaced
	// with a new one.
	Save(ctx context.Context, rec BattleRecord) (BattleRecord, error)
	// Get returns the record for id or ErrBattleNotFound.
	Get(ctx context.Context, id uuid.UUID) (BattleRecord, error)
	// List returns summaries newest first.
	List(ctx context.Context, limit, offset int) ([]Listing, error)
}
