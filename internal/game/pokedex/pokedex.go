// Package pokedex holds species and move reference data and loads it from
// YAML content files.
package pokedex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/pokesim/internal/game/move"
	"github.com/cory-johannsen/pokesim/internal/game/stats"
	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

// Species is the immutable reference data for one species.
type Species struct {
	Name  string           `json:"name"`
	Types []typechart.Type `json:"types"`
	Base  stats.Base       `json:"base_stats"`
}

// Validate checks that the species has a name, one or two known types and
// positive base stats.
func (s Species) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("species name must not be empty")
	}
	if len(s.Types) < 1 || len(s.Types) > 2 {
		return fmt.Errorf("species %q: must have one or two types, got %d", s.Name, len(s.Types))
	}
	for _, t := range s.Types {
		if !typechart.Valid(t) {
			return fmt.Errorf("species %q: unknown type %q", s.Name, t)
		}
	}
	if len(s.Types) == 2 && s.Types[0] == s.Types[1] {
		return fmt.Errorf("species %q: duplicate type %q", s.Name, s.Types[0])
	}
	if err := s.Base.Validate(); err != nil {
		return fmt.Errorf("species %q: %w", s.Name, err)
	}
	return nil
}

// Normalize canonicalises a species or move name: lower case, spaces to hyphens.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Registry is an immutable lookup of species and moves keyed by normalised
// name. It is safe for concurrent use once built.
type Registry struct {
	species map[string]Species
	moves   map[string]move.Definition
}

// NewRegistry builds a Registry, validating every entry.
//
// Postcondition: Returns a Registry or the first validation/duplicate error.
func NewRegistry(species []Species, moves []move.Definition) (*Registry, error) {
	r := &Registry{
		species: make(map[string]Species, len(species)),
		moves:   make(map[string]move.Definition, len(moves)),
	}
	for _, s := range species {
		s.Name = Normalize(s.Name)
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.species[s.Name]; dup {
			return nil, fmt.Errorf("duplicate species %q", s.Name)
		}
		r.species[s.Name] = s
	}
	for _, m := range moves {
		m.Name = Normalize(m.Name)
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.moves[m.Name]; dup {
			return nil, fmt.Errorf("duplicate move %q", m.Name)
		}
		r.moves[m.Name] = m
	}
	return r, nil
}

// Species returns the species named name.
func (r *Registry) Species(name string) (Species, bool) {
	s, ok := r.species[Normalize(name)]
	return s, ok
}

// Move returns the move named name.
func (r *Registry) Move(name string) (move.Definition, bool) {
	m, ok := r.moves[Normalize(name)]
	return m, ok
}

// SpeciesNames returns all species names in sorted order.
func (r *Registry) SpeciesNames() []string {
	out := make([]string, 0, len(r.species))
	for n := range r.species {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// MoveNames returns all move names in sorted order.
func (r *Registry) MoveNames() []string {
	out := make([]string, 0, len(r.moves))
	for n := range r.moves {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
