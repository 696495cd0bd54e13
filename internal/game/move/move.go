// Package move defines move reference data and the Struggle fallback.
package move

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cory-johannsen/pokesim/internal/game/status"
	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

// Category decides which stat pair a move uses, or that it deals no damage.
type Category string

const (
	Physical       Category = "physical"
	Special        Category = "special"
	StatusCategory Category = "status"
)

// ParseCategory converts a case-insensitive category name.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Physical, Special, StatusCategory:
		return c, nil
	default:
		return "", fmt.Errorf("unknown move category %q", s)
	}
}

// Damaging reports whether the category deals direct damage.
func (c Category) Damaging() bool { return c == Physical || c == Special }

// Effect is a status condition a move may inflict on its target.
type Effect struct {
	Condition status.Condition `yaml:"condition" json:"condition"`
	// Chance is the percent chance [1,100] the effect lands once the move hits.
	Chance int `yaml:"chance" json:"chance"`
}

// RecoilBasis selects what a recoil fraction is taken from.
type RecoilBasis string

const (
	// RecoilDamage takes the fraction from the damage dealt to the target.
	RecoilDamage RecoilBasis = "damage"
	// RecoilMaxHP takes the fraction from the user's own max hp.
	RecoilMaxHP RecoilBasis = "max_hp"
)

// Recoil describes self-damage the user takes after a connecting move.
type Recoil struct {
	Basis       RecoilBasis `yaml:"basis" json:"basis"`
	Numerator   int         `yaml:"numerator" json:"numerator"`
	Denominator int         `yaml:"denominator" json:"denominator"`
}

// Amount returns the recoil for the given damage dealt and user max hp.
//
// Postcondition: Returns >= 1 whenever the basis value is > 0.
func (r Recoil) Amount(dealt, maxHP int) int {
	basis := dealt
	if r.Basis == RecoilMaxHP {
		basis = maxHP
	}
	if basis <= 0 || r.Denominator <= 0 {
		return 0
	}
	amt := basis * r.Numerator / r.Denominator
	if amt < 1 {
		amt = 1
	}
	return amt
}

// Definition is the immutable reference data for one move.
type Definition struct {
	Name     string         `json:"name"`
	Type     typechart.Type `json:"type"`
	Power    int            `json:"power,omitempty"`
	Accuracy *int           `json:"accuracy,omitempty"`
	MaxPP    int            `json:"max_pp"`
	Category Category       `json:"category"`
	Effect   *Effect        `json:"effect,omitempty"`
	Recoil   *Recoil        `json:"recoil,omitempty"`
}

// Validate checks the definition is usable in battle.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("move name must not be empty")
	}
	if !typechart.Valid(d.Type) {
		return fmt.Errorf("move %q: unknown type %q", d.Name, d.Type)
	}
	switch d.Category {
	case Physical, Special:
		if d.Power < 1 {
			return fmt.Errorf("move %q: damaging move must have power >= 1", d.Name)
		}
	case StatusCategory:
		if d.Power != 0 {
			return fmt.Errorf("move %q: status move must not have power", d.Name)
		}
	default:
		return fmt.Errorf("move %q: unknown category %q", d.Name, d.Category)
	}
	if d.Accuracy != nil && (*d.Accuracy < 1 || *d.Accuracy > 100) {
		return fmt.Errorf("move %q: accuracy must be 1-100, got %d", d.Name, *d.Accuracy)
	}
	if d.MaxPP < 1 {
		return fmt.Errorf("move %q: max pp must be >= 1, got %d", d.Name, d.MaxPP)
	}
	if d.Effect != nil {
		if d.Effect.Condition == status.None {
			return fmt.Errorf("move %q: effect must name a condition", d.Name)
		}
		if d.Effect.Chance < 1 || d.Effect.Chance > 100 {
			return fmt.Errorf("move %q: effect chance must be 1-100, got %d", d.Name, d.Effect.Chance)
		}
	}
	if d.Recoil != nil {
		if d.Recoil.Basis != RecoilDamage && d.Recoil.Basis != RecoilMaxHP {
			return fmt.Errorf("move %q: unknown recoil basis %q", d.Name, d.Recoil.Basis)
		}
		if d.Recoil.Numerator < 1 || d.Recoil.Denominator < d.Recoil.Numerator {
			return fmt.Errorf("move %q: recoil fraction %d/%d out of range", d.Name, d.Recoil.Numerator, d.Recoil.Denominator)
		}
	}
	return nil
}

// StrugglePower is the fixed power of the Struggle fallback.
const StrugglePower = 50

// Struggle is used when every configured move is out of PP. It is typeless,
// never misses, costs no PP, and costs the user a quarter of its max hp.
var Struggle = Definition{
	Name:     "struggle",
	Type:     typechart.Typeless,
	Power:    StrugglePower,
	Category: Physical,
	Recoil:   &Recoil{Basis: RecoilMaxHP, Numerator: 1, Denominator: 4},
}

// DisplayName title-cases a hyphenated move name: "thunder-wave" -> "Thunder Wave".
func DisplayName(name string) string {
	// A Caser is stateful and must not be shared across battles.
	return cases.Title(language.English).String(strings.Join(strings.Fields(strings.ReplaceAll(name, "-", " ")), " "))
}
