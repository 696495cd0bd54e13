package battle

import (
	"fmt"

	"github.com/cory-johannsen/pokesim/internal/game/status"
)

// SideSummary aggregates one side's activity over a battle.
type SideSummary struct {
	Name        string             `json:"name"`
	DamageDealt int                `json:"damage_dealt"`
	DamageTaken int                `json:"damage_taken"`
	MovesUsed   map[string]int     `json:"moves_used"`
	Inflicted   []status.Condition `json:"statuses_inflicted"`
	Criticals   int                `json:"critical_hits"`
	Misses      int                `json:"misses"`
}

// Summary is a condensed account of a finished battle.
type Summary struct {
	Winner     string         `json:"winner"`
	Reason     Reason         `json:"reason"`
	Duration   int            `json:"duration"`
	Sides      [2]SideSummary `json:"sides"`
	KeyMoments []string       `json:"key_moments"`
}

// Summarize walks the battle log of r. Damage counts direct move damage
// only; recoil and status damage count toward DamageTaken.
func Summarize(r Result) Summary {
	s := Summary{
		Winner:   r.Winner,
		Reason:   r.Reason,
		Duration: r.TotalTurns,
	}
	for i, p := range r.Participants {
		s.Sides[i] = SideSummary{Name: p.Name, MovesUsed: map[string]int{}}
	}
	idx := func(side Side) int { return int(side) - 1 }
	other := func(side Side) int { return 2 - int(side) }

	for _, turn := range r.Log {
		for _, e := range turn.Events {
			if e.Side != Side1 && e.Side != Side2 {
				continue
			}
			switch e.Kind {
			case EventMoveUse:
				s.Sides[idx(e.Side)].MovesUsed[e.Move]++
			case EventMiss:
				s.Sides[idx(e.Side)].Misses++
			case EventCritical:
				s.Sides[idx(e.Side)].Criticals++
				s.KeyMoments = append(s.KeyMoments, fmt.Sprintf("Turn %d: %s landed a critical hit!", turn.Turn, e.Pokemon))
			case EventDamage:
				s.Sides[idx(e.Side)].DamageTaken += e.Amount
				s.Sides[other(e.Side)].DamageDealt += e.Amount
			case EventRecoil, EventStatusDamage:
				s.Sides[idx(e.Side)].DamageTaken += e.Amount
			case EventEffectiveness:
				if e.Multiplier != nil && *e.Multiplier > 1 {
					s.KeyMoments = append(s.KeyMoments, fmt.Sprintf("Turn %d: %s hit %s super effectively!", turn.Turn, e.By, e.Pokemon))
				}
			case EventStatusInflicted:
				s.Sides[other(e.Side)].Inflicted = append(s.Sides[other(e.Side)].Inflicted, e.Condition)
				s.KeyMoments = append(s.KeyMoments, fmt.Sprintf("Turn %d: %s", turn.Turn, e.Message))
			case EventFaint:
				s.KeyMoments = append(s.KeyMoments, fmt.Sprintf("Turn %d: %s", turn.Turn, e.Message))
			}
		}
	}
	return s
}
