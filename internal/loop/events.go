package loop

import (
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventScoreChanged
	EventPowerUpChanged
	EventHit
	EventGameOver
	EventSessionEnded
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state changed"
	case EventScoreChanged:
		return "score changed"
	case EventPowerUpChanged:
		return "power-up changed"
	case EventHit:
		return "hit"
	case EventGameOver:
		return "game over"
	case EventSessionEnded:
		return "session ended"
	default:
		return "unknown"
	}
}

// HitCause tells how an invader was destroyed.
type HitCause int

const (
	HitProjectile HitCause = iota
	HitBomb
)

// Event is emitted synchronously from inside a step or command. Listeners
// must not call back into the engine.
type Event struct {
	Kind      EventKind
	SessionID string
	State     State
	Score     int
	PowerUp   object.PowerUpKind

	// Set for EventHit and EventGameOver. Position is the entity's top-left
	// corner and Center the middle of its box.
	Position physics.Vec2
	Center   physics.Vec2
	Points   int
	Cause    HitCause
}

// Listener observes engine events.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event)

// OnEvent calls f(ev).
func (f ListenerFunc) OnEvent(ev Event) { f(ev) }
