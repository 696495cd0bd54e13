package battle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is wrapped by every Setup failure caused by malformed
	// input: wrong move count, level out of range, empty names.
	ErrInvalidConfig = errors.New("invalid battle config")
	// ErrMissingData is wrapped by every Setup failure caused by reference
	// data that is absent from the Dex or unusable.
	ErrMissingData = errors.New("missing reference data")
	// ErrBattleOver is returned when stepping a battle that reached Terminal.
	ErrBattleOver = errors.New("battle is over")
	// ErrBattleRunning is returned when asking for the result of a battle
	// that has not reached Terminal.
	ErrBattleRunning = errors.New("battle has not finished")
	// ErrInvalidMoveSlot is returned by StepWith for a slot outside [0, MovesPerPokemon).
	ErrInvalidMoveSlot = errors.New("invalid move slot")
)

// InvariantError reports an impossible engine state. It is only ever
// panicked, never returned: it marks an engine bug, not bad input.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "battle: invariant violated: " + e.Msg
}

func invariant(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}
