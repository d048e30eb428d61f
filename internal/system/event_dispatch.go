package system

import (
	"time"

	"github.com/driftcity/engine/internal/core/event"
	coresys "github.com/driftcity/engine/internal/core/system"
)

// EventDispatchSystem swaps the event bus double-buffer and dispatches all
// events from the previous tick. Registered first in PreUpdate so every
// other system sees last tick's events before doing this tick's work.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
