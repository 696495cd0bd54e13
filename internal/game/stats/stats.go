// Package stats derives level-scaled battle stats from species base stats.
package stats

import "fmt"

// MinLevel and MaxLevel bound the level accepted by Compute.
const (
	MinLevel = 1
	MaxLevel = 100
)

// Base holds a species' immutable base stats.
type Base struct {
	HP      int `yaml:"hp" json:"hp"`
	Attack  int `yaml:"attack" json:"attack"`
	Defense int `yaml:"defense" json:"defense"`
	SpAtk   int `yaml:"special_attack" json:"special_attack"`
	SpDef   int `yaml:"special_defense" json:"special_defense"`
	Speed   int `yaml:"speed" json:"speed"`
}

// Validate reports the first non-positive base stat.
func (b Base) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"hp", b.HP}, {"attack", b.Attack}, {"defense", b.Defense},
		{"special_attack", b.SpAtk}, {"special_defense", b.SpDef}, {"speed", b.Speed},
	} {
		if f.v < 1 {
			return fmt.Errorf("base %s must be >= 1, got %d", f.name, f.v)
		}
	}
	return nil
}

// Stats are the computed battle stats, frozen for the duration of a battle.
type Stats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	SpAtk   int `json:"special_attack"`
	SpDef   int `json:"special_defense"`
	Speed   int `json:"speed"`
}

// Compute derives battle stats for level.
//
//	hp    = floor(2*base*level/100 + level + 10)
//	other = floor(2*base*level/100 + 5)
//
// Precondition: level in [MinLevel, MaxLevel]; panics otherwise.
// Postcondition: every returned stat is >= its level-1 value.
func Compute(base Base, level int) Stats {
	if level < MinLevel || level > MaxLevel {
		panic(fmt.Sprintf("stats: Compute called with level %d outside [%d, %d]", level, MinLevel, MaxLevel))
	}
	return Stats{
		HP:      2*base.HP*level/100 + level + 10,
		Attack:  other(base.Attack, level),
		Defense: other(base.Defense, level),
		SpAtk:   other(base.SpAtk, level),
		SpDef:   other(base.SpDef, level),
		Speed:   other(base.Speed, level),
	}
}

func other(base, level int) int {
	return 2*base*level/100 + 5
}
