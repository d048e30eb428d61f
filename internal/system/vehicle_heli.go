package system

import (
	"time"

	"github.com/driftcity/engine/internal/component"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/physics"
)

// HeliSystem simulates helicopters: with a running engine the rotor holds
// hover, the collective drives climb, and cyclic tilt translates into
// horizontal thrust. A dead engine is a falling brick with autorotation
// drag.
type HeliSystem struct {
	deps *Deps
}

func NewHeliSystem(deps *Deps) *HeliSystem {
	return &HeliSystem{deps: deps}
}

func (s *HeliSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *HeliSystem) Update(dt time.Duration) {
	d := s.deps
	step := float32(dt.Seconds())
	if step <= 0 {
		return
	}
	g := d.Cfg.Physics.Gravity
	eachVehicle(d, component.VehicleHelicopter, func(f vehicleFrame) {
		load := f.ctrl.Throttle
		if f.ctrl.Vertical > load {
			load = f.ctrl.Vertical
		}
		engine := burnFuel(f.state, load, step)

		f.v.Angular.Y = f.ctrl.Yaw * f.spec.YawRate
		f.t.Pitch = approach(f.t.Pitch, f.ctrl.Pitch*0.4, f.spec.PitchRate*step)
		f.t.Roll = approach(f.t.Roll, f.ctrl.Roll*0.4, f.spec.RollRate*step)

		if engine {
			out := damageFactor(f.state)
			// rotor lift cancels gravity exactly; the collective adds
			// climb or descent on top of the hover
			f.v.Linear.Y += f.ctrl.Vertical * f.spec.VerticalRate * out * step

			tilt := mathx.V3(f.t.Roll, 0, -f.t.Pitch).RotateY(f.t.Yaw)
			f.v.Linear = f.v.Linear.Add(tilt.Scale(f.spec.Acceleration * out * step))
			f.v.Linear = f.v.Linear.Add(f.t.Forward().Scale(f.spec.Acceleration * out * f.ctrl.Throttle * step))
		} else {
			f.v.Linear.Y -= g * step * 0.6 // autorotation
		}

		f.v.Linear = physics.ApplyDamping(f.v.Linear, f.spec.LinearDamping, step)
		f.v.Linear = physics.ClampSpeed(f.v.Linear, f.spec.MaxSpeed)
	})
}

// approach moves cur toward want by at most rate, without overshoot.
func approach(cur, want, rate float32) float32 {
	if cur < want {
		cur += rate
		if cur > want {
			cur = want
		}
		return cur
	}
	cur -= rate
	if cur < want {
		cur = want
	}
	return cur
}
