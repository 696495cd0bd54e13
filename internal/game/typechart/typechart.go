// Package typechart provides the static 18-type effectiveness matrix.
package typechart

import (
	"fmt"
	"strings"
)

// Type is one of the 18 elemental types. The zero value is Typeless.
type Type string

// Typeless is reserved for moves that ignore the chart entirely (Struggle).
const Typeless Type = ""

const (
	Normal   Type = "normal"
	Fire     Type = "fire"
	Water    Type = "water"
	Electric Type = "electric"
	Grass    Type = "grass"
	Ice      Type = "ice"
	Fighting Type = "fighting"
	Poison   Type = "poison"
	Ground   Type = "ground"
	Flying   Type = "flying"
	Psychic  Type = "psychic"
	Bug      Type = "bug"
	Rock     Type = "rock"
	Ghost    Type = "ghost"
	Dragon   Type = "dragon"
	Dark     Type = "dark"
	Steel    Type = "steel"
	Fairy    Type = "fairy"
)

// All lists the 18 types in canonical order.
var All = []Type{
	Normal, Fire, Water, Electric, Grass, Ice,
	Fighting, Poison, Ground, Flying, Psychic, Bug,
	Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

// chart holds only the non-neutral single-type matchups; absent pairs are 1x.
var chart = map[Type]map[Type]float64{
	Normal:   {Rock: 0.5, Ghost: 0, Steel: 0.5},
	Fire:     {Fire: 0.5, Water: 0.5, Grass: 2, Ice: 2, Bug: 2, Rock: 0.5, Dragon: 0.5, Steel: 2},
	Water:    {Fire: 2, Water: 0.5, Grass: 0.5, Ground: 2, Rock: 2, Dragon: 0.5},
	Electric: {Water: 2, Electric: 0.5, Grass: 0.5, Ground: 0, Flying: 2, Dragon: 0.5},
	Grass:    {Fire: 0.5, Water: 2, Grass: 0.5, Poison: 0.5, Ground: 2, Flying: 0.5, Bug: 0.5, Rock: 2, Dragon: 0.5, Steel: 0.5},
	Ice:      {Fire: 0.5, Water: 0.5, Grass: 2, Ice: 0.5, Ground: 2, Flying: 2, Dragon: 2, Steel: 0.5},
	Fighting: {Normal: 2, Ice: 2, Poison: 0.5, Flying: 0.5, Psychic: 0.5, Bug: 0.5, Rock: 2, Ghost: 0, Dark: 2, Steel: 2, Fairy: 0.5},
	Poison:   {Grass: 2, Poison: 0.5, Ground: 0.5, Rock: 0.5, Ghost: 0.5, Steel: 0, Fairy: 2},
	Ground:   {Fire: 2, Electric: 2, Grass: 0.5, Poison: 2, Flying: 0, Bug: 0.5, Rock: 2, Steel: 2},
	Flying:   {Electric: 0.5, Grass: 2, Fighting: 2, Bug: 2, Rock: 0.5, Steel: 0.5},
	Psychic:  {Fighting: 2, Poison: 2, Psychic: 0.5, Dark: 0, Steel: 0.5},
	Bug:      {Fire: 0.5, Grass: 2, Fighting: 0.5, Poison: 0.5, Flying: 0.5, Psychic: 2, Ghost: 0.5, Dark: 2, Steel: 0.5, Fairy: 0.5},
	Rock:     {Fire: 2, Ice: 2, Fighting: 0.5, Ground: 0.5, Flying: 2, Bug: 2, Steel: 0.5},
	Ghost:    {Normal: 0, Psychic: 2, Ghost: 2, Dark: 0.5},
	Dragon:   {Dragon: 2, Steel: 0.5, Fairy: 0},
	Dark:     {Fighting: 0.5, Psychic: 2, Ghost: 2, Dark: 0.5, Fairy: 0.5},
	Steel:    {Fire: 0.5, Water: 0.5, Electric: 0.5, Ice: 2, Rock: 2, Steel: 0.5, Fairy: 2},
	Fairy:    {Fire: 0.5, Fighting: 2, Poison: 0.5, Dragon: 2, Dark: 2, Steel: 0.5},
}

// Valid reports whether t is one of the 18 chart types.
func Valid(t Type) bool {
	_, ok := chart[t]
	return ok
}

// Parse converts a case-insensitive type name into a Type.
//
// Postcondition: Returns a Valid type or a non-nil error.
func Parse(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !Valid(t) {
		return Typeless, fmt.Errorf("unknown type %q", s)
	}
	return t, nil
}

// Effectiveness returns the damage multiplier of an attack of type attack
// against a defender with the given types. Dual types multiply.
//
// Precondition: attack is Valid or Typeless; every defend type is Valid.
// Postcondition: Returns one of 0, 0.25, 0.5, 1, 2, 4 for one or two defend types.
func Effectiveness(attack Type, defend ...Type) float64 {
	if attack == Typeless {
		return 1
	}
	m := 1.0
	row := chart[attack]
	for _, d := range defend {
		if v, ok := row[d]; ok {
			m *= v
		}
	}
	return m
}

// Describe returns the battle message for a multiplier.
func Describe(m float64) string {
	switch {
	case m == 0:
		return "It had no effect"
	case m < 1:
		return "It's not very effective..."
	case m > 1:
		return "It's super effective!"
	default:
		return ""
	}
}

// Matchup groups every attacking type by its effect against a defender.
type Matchup struct {
	Immunities  []Type `json:"immunities"`
	Resistances []Type `json:"resistances"`
	Weaknesses  []Type `json:"weaknesses"`
	Neutral     []Type `json:"neutral"`
}

// Matchups classifies all 18 attack types against defend.
func Matchups(defend ...Type) Matchup {
	var out Matchup
	for _, a := range All {
		switch m := Effectiveness(a, defend...); {
		case m == 0:
			out.Immunities = append(out.Immunities, a)
		case m < 1:
			out.Resistances = append(out.Resistances, a)
		case m > 1:
			out.Weaknesses = append(out.Weaknesses, a)
		default:
			out.Neutral = append(out.Neutral, a)
		}
	}
	return out
}
