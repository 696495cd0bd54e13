// Package memory is an in-process storage.Store used when no database is
// configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/pokesim/internal/storage"
)

// Store keeps records in a map. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[uuid.UUID]storage.BattleRecord
	now     func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{records: make(map[uuid.UUID]storage.BattleRecord), now: time.Now}
}

// Save implements storage.Store.
func (s *Store) Save(_ context.Context, rec storage.BattleRecord) (storage.BattleRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = s.now().UTC()
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	return rec, nil
}

// Get implements storage.Store.
func (s *Store) Get(_ context.Context, id uuid.UUID) (storage.BattleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return storage.BattleRecord{}, storage.ErrBattleNotFound
	}
	return rec, nil
}

// List implements storage.Store.
func (s *Store) List(_ context.Context, limit, offset int) ([]storage.Listing, error) {
	if limit <= 0 {
		limit = storage.DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	s.mu.RLock()
	out := make([]storage.Listing, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Listing())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if offset >= len(out) {
		return []storage.Listing{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
