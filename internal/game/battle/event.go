package battle

import "github.com/cory-johannsen/pokesim/internal/game/status"

// EventKind classifies a battle log entry.
type EventKind string

const (
	EventMoveUse         EventKind = "move_use"
	EventHit             EventKind = "hit"
	EventMiss            EventKind = "miss"
	EventEffectiveness   EventKind = "effectiveness"
	EventCritical        EventKind = "critical"
	EventDamage          EventKind = "damage"
	EventStatusInflicted EventKind = "status_inflicted"
	EventStatusFailed    EventKind = "status_failed"
	EventStatusDamage    EventKind = "status_damage"
	EventCantMove        EventKind = "cant_move"
	EventRecoil          EventKind = "recoil"
	EventFaint           EventKind = "faint"
)

// Event is one ordered, human-readable entry in a turn's log.
//
// Side and Pokemon name the subject: the mover for move_use, hit, miss,
// critical, cant_move and recoil; the affected combatant otherwise.
// By names the combatant that caused damage, effectiveness or a status.
type Event struct {
	Kind       EventKind        `json:"type"`
	Side       Side             `json:"side"`
	Pokemon    string           `json:"pokemon"`
	By         string           `json:"by,omitempty"`
	Move       string           `json:"move,omitempty"`
	Amount     int              `json:"amount,omitempty"`
	HPAfter    int              `json:"hp_after,omitempty"`
	Condition  status.Condition `json:"condition,omitempty"`
	// Multiplier is set only on effectiveness events.
	Multiplier *float64 `json:"multiplier,omitempty"`
	Message    string   `json:"message"`
}

// Snapshot is a combatant's visible state at the end of a turn.
type Snapshot struct {
	Side    Side             `json:"side"`
	Name    string           `json:"name"`
	HP      int              `json:"hp"`
	MaxHP   int              `json:"max_hp"`
	Status  status.Condition `json:"status"`
	Fainted bool             `json:"fainted"`
}

// TurnRecord is the complete log of one turn.
type TurnRecord struct {
	Turn      int         `json:"turn"`
	Events    []Event     `json:"events"`
	Snapshots [2]Snapshot `json:"pokemon_states"`
}

// Filter returns the events of kind k in order.
func (r TurnRecord) Filter(k EventKind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
