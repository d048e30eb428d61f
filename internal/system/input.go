package system

import (
	"time"

	"github.com/driftcity/engine/internal/component"
	coresys "github.com/driftcity/engine/internal/core/system"
	"go.uber.org/zap"
)

// InputSource feeds raw control frames into the pipeline. The host loop
// backs it with its real device layer; tests and demo mode push scripted
// frames through a QueueInput.
type InputSource interface {
	// Poll returns the newest control frame, or false when no frame
	// arrived since the last poll.
	Poll() (component.ControlState, bool)
}

// QueueInput is a scripted InputSource. Push frames in order; each Poll
// consumes one.
type QueueInput struct {
	frames []component.ControlState
}

func (q *QueueInput) Push(c component.ControlState) {
	q.frames = append(q.frames, c)
}

func (q *QueueInput) Poll() (component.ControlState, bool) {
	if len(q.frames) == 0 {
		return component.ControlState{}, false
	}
	c := q.frames[0]
	q.frames = q.frames[1:]
	return c, true
}

// inputWarnInterval rate-limits the malformed-frame warning.
const inputWarnInterval = 5.0

// InputSystem applies the newest control frame to the active entity,
// sanitized and masked down to the axes its vehicle kind understands.
// Without an active entity or a frame, the previous ControlState persists.
type InputSystem struct {
	deps *Deps
	src  InputSource

	lastWarn float64
	log      *zap.Logger
}

func NewInputSystem(deps *Deps, src InputSource) *InputSystem {
	return &InputSystem{deps: deps, src: src, lastWarn: -inputWarnInterval, log: deps.Log.Named("input")}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *InputSystem) Update(_ time.Duration) {
	d := s.deps
	active, ok := d.Active.Get()
	if !ok || !d.World.Alive(active) {
		return
	}
	frame, ok := s.src.Poll()
	if !ok {
		return
	}
	if corrected := frame.Sanitize(); corrected {
		now := d.Clock.Now()
		if now-s.lastWarn >= inputWarnInterval {
			s.log.Warn("malformed control frame corrected")
			s.lastWarn = now
		}
	}
	if v, vok := d.Stores.Vehicles.Get(active); vok {
		maskAxes(&frame, v.Kind)
	}

	ctrl, ok := d.Stores.Controls.Get(active)
	if !ok {
		ctrl = &component.ControlState{}
		d.Stores.Controls.Set(active, ctrl)
	}
	*ctrl = frame
}

// maskAxes zeroes the axes a vehicle kind does not respond to, so stale
// device state cannot leak between modes.
func maskAxes(c *component.ControlState, kind component.VehicleKind) {
	switch kind {
	case component.VehicleCar:
		c.Pitch, c.Roll, c.Yaw, c.Vertical = 0, 0, 0, 0
	case component.VehicleYacht:
		c.Pitch, c.Roll = 0, 0
	case component.VehicleJet:
		c.Vertical = 0
	}
}
