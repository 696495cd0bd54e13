package pokedex

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/pokesim/internal/game/move"
	"github.com/cory-johannsen/pokesim/internal/game/stats"
	"github.com/cory-johannsen/pokesim/internal/game/status"
	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

type fileYAML struct {
	Species []speciesYAML `yaml:"species"`
	Moves   []moveYAML    `yaml:"moves"`
}

type speciesYAML struct {
	Name  string     `yaml:"name"`
	Types []string   `yaml:"types"`
	Base  stats.Base `yaml:"base_stats"`
}

type effectYAML struct {
	Condition string `yaml:"condition"`
	Chance    int    `yaml:"chance"`
}

type moveYAML struct {
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type"`
	Power    int          `yaml:"power"`
	Accuracy *int         `yaml:"accuracy"`
	PP       int          `yaml:"pp"`
	Category string       `yaml:"category"`
	Effect   *effectYAML  `yaml:"effect"`
	Recoil   *move.Recoil `yaml:"recoil"`
}

func (s speciesYAML) toSpecies() (Species, error) {
	out := Species{Name: s.Name, Base: s.Base}
	for _, raw := range s.Types {
		t, err := typechart.Parse(raw)
		if err != nil {
			return Species{}, fmt.Errorf("species %q: %w", s.Name, err)
		}
		out.Types = append(out.Types, t)
	}
	return out, nil
}

func (m moveYAML) toMove() (move.Definition, error) {
	t, err := typechart.Parse(m.Type)
	if err != nil {
		return move.Definition{}, fmt.Errorf("move %q: %w", m.Name, err)
	}
	cat, err := move.ParseCategory(m.Category)
	if err != nil {
		return move.Definition{}, fmt.Errorf("move %q: %w", m.Name, err)
	}
	out := move.Definition{
		Name:     m.Name,
		Type:     t,
		Power:    m.Power,
		Accuracy: m.Accuracy,
		MaxPP:    m.PP,
		Category: cat,
		Recoil:   m.Recoil,
	}
	if m.Effect != nil {
		c, err := status.Parse(m.Effect.Condition)
		if err != nil {
			return move.Definition{}, fmt.Errorf("move %q: %w", m.Name, err)
		}
		chance := m.Effect.Chance
		if chance == 0 {
			chance = 100
		}
		out.Effect = &move.Effect{Condition: c, Chance: chance}
	}
	return out, nil
}

// LoadBytes parses one YAML document holding species and/or moves lists.
//
// Postcondition: Returns the parsed entries or an error naming the bad entry.
func LoadBytes(data []byte) ([]Species, []move.Definition, error) {
	var f fileYAML
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, nil, fmt.Errorf("decoding dex yaml: %w", err)
	}
	species := make([]Species, 0, len(f.Species))
	for _, s := range f.Species {
		sp, err := s.toSpecies()
		if err != nil {
			return nil, nil, err
		}
		species = append(species, sp)
	}
	moves := make([]move.Definition, 0, len(f.Moves))
	for _, m := range f.Moves {
		mv, err := m.toMove()
		if err != nil {
			return nil, nil, err
		}
		moves = append(moves, mv)
	}
	return species, moves, nil
}

// LoadDirectory reads every *.yaml file in dir in lexicographic order and
// returns a validated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading dex dir %q: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	var species []Species
	var moves []move.Definition
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		s, m, err := LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		species = append(species, s...)
		moves = append(moves, m...)
	}
	return NewRegistry(species, moves)
}
