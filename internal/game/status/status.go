// Package status implements the non-volatile status conditions: burn,
// poison and paralysis.
package status

import (
	"fmt"
	"strings"
)

// Condition is a non-volatile status. The zero value is None.
type Condition uint8

const (
	None Condition = iota
	Burn
	Poison
	Paralysis
)

var names = [...]string{None: "none", Burn: "burn", Poison: "poison", Paralysis: "paralysis"}

// String returns the lower-case condition name.
func (c Condition) String() string {
	if int(c) < len(names) {
		return names[c]
	}
	return "unknown"
}

// Parse converts a condition name into a Condition. The empty string parses as None.
func Parse(s string) (Condition, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	for i, n := range names {
		if n == s {
			return Condition(i), nil
		}
	}
	return None, fmt.Errorf("unknown status condition %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Condition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Condition) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Slot holds the single status a combatant carries.
//
// Invariant: once a Slot holds a condition other than None it never changes.
// There is deliberately no way to clear or replace it.
type Slot struct {
	c Condition
}

// Condition returns the current condition.
func (s Slot) Condition() Condition { return s.c }

// Inflict sets c if the slot is empty.
//
// Precondition: c != None.
// Postcondition: Returns true iff the slot was None and now holds c.
func (s *Slot) Inflict(c Condition) bool {
	if c == None || s.c != None {
		return false
	}
	s.c = c
	return true
}

// Verb returns the past-tense infliction verb, e.g. "burned".
func (c Condition) Verb() string {
	switch c {
	case Burn:
		return "burned"
	case Poison:
		return "poisoned"
	case Paralysis:
		return "paralyzed"
	default:
		return ""
	}
}
