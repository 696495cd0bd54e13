package battle

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/pokesim/internal/game/dice"
	"github.com/cory-johannsen/pokesim/internal/game/status"
	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

// State is the battle lifecycle state. Setup happens inside Engine.Setup, so
// a Battle value is only ever Running or Terminal.
type State int

const (
	StateSetup State = iota
	StateRunning
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateRunning:
		return "running"
	case StateTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Reason explains how a battle ended.
type Reason string

const (
	ReasonKnockout       Reason = "knockout"
	ReasonDoubleKnockout Reason = "double_knockout"
	ReasonTurnCap        Reason = "turn_cap"
)

// Draw is the Winner value of a battle with no winner.
const Draw = "Draw"

// HPStatus is a final hp reading.
type HPStatus struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Participant is the final state of one combatant.
type Participant struct {
	Side    Side             `json:"side"`
	Name    string           `json:"name"`
	Level   int              `json:"level"`
	Types   []typechart.Type `json:"types"`
	Moves   []string         `json:"moves"`
	FinalHP HPStatus         `json:"final_hp"`
	Status  status.Condition `json:"status"`
}

// Result is the outcome of a Terminal battle. Winner is the winning species
// name or Draw; WinnerSide is NoSide on a draw.
type Result struct {
	Winner       string         `json:"winner"`
	WinnerSide   Side           `json:"winner_side"`
	Reason       Reason         `json:"reason"`
	TotalTurns   int            `json:"total_turns"`
	Log          []TurnRecord   `json:"battle_log"`
	Participants [2]Participant `json:"participants"`
}

// Battle is one running battle. It is not safe for concurrent use.
//
// Invariant: turn <= maxTurns; state is StateTerminal once any combatant faints.
type Battle struct {
	mons      [2]*Pokemon
	src       dice.Source
	selectors [2]MoveSelector
	maxTurns  int
	turn      int
	state     State
	reason    Reason
	winner    Side
	log       []TurnRecord
	events    []Event
	fainted   [2]bool
	logger    *zap.Logger
}

// SetSelector replaces the move selector for side.
//
// Precondition: side is Side1 or Side2; sel must be non-nil.
func (b *Battle) SetSelector(side Side, sel MoveSelector) {
	b.selectors[side-1] = sel
}

// Pokemon returns the combatant on side.
func (b *Battle) Pokemon(side Side) *Pokemon { return b.mons[side-1] }

// State returns the lifecycle state.
func (b *Battle) State() State { return b.state }

// Turn returns the number of completed turns.
func (b *Battle) Turn() int { return b.turn }

// MaxTurns returns the turn cap.
func (b *Battle) MaxTurns() int { return b.maxTurns }

// Log returns the turn records so far.
func (b *Battle) Log() []TurnRecord { return b.log }

// Step plays one turn using each side's selector.
//
// Postcondition: Returns ErrBattleOver without side effects once Terminal.
func (b *Battle) Step() (TurnRecord, error) {
	return b.play(func(p *Pokemon) int {
		return b.selectors[p.side-1].SelectMove(b.view(p), b.src)
	})
}

// StepWith plays one turn with externally chosen slots. A chosen slot with
// no PP left resolves as Struggle.
//
// Postcondition: Returns ErrInvalidMoveSlot for a slot outside
// [0, MovesPerPokemon) and ErrBattleOver once Terminal, both without side effects.
func (b *Battle) StepWith(slot1, slot2 int) (TurnRecord, error) {
	for _, s := range []int{slot1, slot2} {
		if s < 0 || s >= MovesPerPokemon {
			return TurnRecord{}, fmt.Errorf("%w: %d", ErrInvalidMoveSlot, s)
		}
	}
	slots := [2]int{slot1, slot2}
	return b.play(func(p *Pokemon) int { return slots[p.side-1] })
}

// Run steps until Terminal and returns the Result. ctx is checked only
// between turns.
func (b *Battle) Run(ctx context.Context) (Result, error) {
	for b.state == StateRunning {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if _, err := b.Step(); err != nil {
			return Result{}, err
		}
	}
	return b.Result()
}

// Result returns the outcome.
//
// Postcondition: Returns ErrBattleRunning until the battle is Terminal.
func (b *Battle) Result() (Result, error) {
	if b.state != StateTerminal {
		return Result{}, ErrBattleRunning
	}
	r := Result{
		Winner:     Draw,
		WinnerSide: b.winner,
		Reason:     b.reason,
		TotalTurns: b.turn,
		Log:        b.log,
	}
	if b.winner != NoSide {
		r.Winner = b.mons[b.winner-1].Name()
	}
	for i, p := range b.mons {
		moves := make([]string, 0, MovesPerPokemon)
		for _, m := range p.moves {
			moves = append(moves, m.Name)
		}
		r.Participants[i] = Participant{
			Side:    p.side,
			Name:    p.Name(),
			Level:   p.level,
			Types:   p.Types(),
			Moves:   moves,
			FinalHP: HPStatus{Current: p.hp, Max: p.MaxHP()},
			Status:  p.Status(),
		}
	}
	return r, nil
}

// play runs one turn: order, pre-move checks, selection and resolution for
// each side, end-of-turn status damage, then termination checks.
func (b *Battle) play(choose func(p *Pokemon) int) (TurnRecord, error) {
	if b.state != StateRunning {
		return TurnRecord{}, ErrBattleOver
	}
	b.turn++
	b.events = nil

	order := TurnOrder(b.mons[0], b.mons[1], b.src)
	for _, actor := range order {
		target := b.opponent(actor)
		if actor.Fainted() || target.Fainted() {
			continue
		}
		if check := status.PreMoveCheck(actor, b.src); !check.Allowed {
			b.emit(Event{
				Kind:      EventCantMove,
				Side:      actor.side,
				Pokemon:   actor.Name(),
				Condition: actor.Status(),
				Message:   check.Message,
			})
			continue
		}
		b.resolveMove(actor, target, choose(actor))
		if b.settle() {
			break
		}
	}

	if b.state == StateRunning {
		for _, p := range order {
			b.endOfTurn(p)
		}
		b.settle()
	}
	if b.state == StateRunning && b.turn >= b.maxTurns {
		b.finish(NoSide, ReasonTurnCap)
	}

	rec := TurnRecord{
		Turn:      b.turn,
		Events:    b.events,
		Snapshots: [2]Snapshot{b.mons[0].snapshot(), b.mons[1].snapshot()},
	}
	b.log = append(b.log, rec)
	b.events = nil
	b.logger.Debug("turn complete",
		zap.Int("turn", rec.Turn),
		zap.Int("events", len(rec.Events)),
		zap.Int("hp1", rec.Snapshots[0].HP),
		zap.Int("hp2", rec.Snapshots[1].HP),
	)
	return rec, nil
}

func (b *Battle) endOfTurn(p *Pokemon) {
	if p.Fainted() {
		return
	}
	tick := status.EndOfTurnDamage(p)
	if !tick.Applied {
		return
	}
	lost := p.applyDamage(tick.Damage)
	b.emit(Event{
		Kind:      EventStatusDamage,
		Side:      p.side,
		Pokemon:   p.Name(),
		Condition: p.Status(),
		Amount:    lost,
		HPAfter:   p.hp,
		Message:   tick.Message,
	})
	b.checkFaint(p)
}

// settle moves the battle to Terminal if anyone has fainted and reports
// whether it did.
func (b *Battle) settle() bool {
	f1, f2 := b.mons[0].Fainted(), b.mons[1].Fainted()
	switch {
	case f1 && f2:
		b.finish(NoSide, ReasonDoubleKnockout)
	case f1:
		b.finish(Side2, ReasonKnockout)
	case f2:
		b.finish(Side1, ReasonKnockout)
	default:
		return false
	}
	return true
}

func (b *Battle) finish(winner Side, reason Reason) {
	b.state = StateTerminal
	b.winner = winner
	b.reason = reason
	name := Draw
	if winner != NoSide {
		name = b.mons[winner-1].Name()
	}
	b.logger.Info("battle finished",
		zap.String("winner", name),
		zap.String("reason", string(reason)),
		zap.Int("turns", b.turn),
	)
}

func (b *Battle) opponent(p *Pokemon) *Pokemon {
	if p.side == Side1 {
		return b.mons[1]
	}
	return b.mons[0]
}

func (b *Battle) view(p *Pokemon) View {
	return View{
		Turn: b.turn,
		Self: p.view(true),
		Foe:  b.opponent(p).view(false),
	}
}

func (b *Battle) emit(e Event) {
	b.events = append(b.events, e)
}
