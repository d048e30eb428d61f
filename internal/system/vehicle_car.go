package system

import (
	"time"

	"github.com/driftcity/engine/internal/component"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/physics"
)

// CarSystem turns car ControlStates into velocity changes: engine thrust
// along the facing, speed-sensitive steering, lateral grip, braking, and
// exponential drag. Vertical motion is gravity only; the integrator snaps
// cars to the terrain.
type CarSystem struct {
	deps *Deps
}

func NewCarSystem(deps *Deps) *CarSystem {
	return &CarSystem{deps: deps}
}

func (s *CarSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *CarSystem) Update(dt time.Duration) {
	d := s.deps
	step := float32(dt.Seconds())
	if step <= 0 {
		return
	}
	eachVehicle(d, component.VehicleCar, func(f vehicleFrame) {
		fwd := f.t.Forward()
		speed := f.v.Linear.Len()

		if burnFuel(f.state, f.ctrl.Throttle, step) {
			accel := f.spec.Acceleration * f.ctrl.Throttle * damageFactor(f.state)
			if f.ctrl.Pressed(component.BtnBoost) {
				accel *= f.spec.BoostMult
			}
			f.v.Linear = f.v.Linear.Add(fwd.Scale(accel * step))
		}

		if f.ctrl.Brake > 0 && speed > 0.01 {
			dec := f.spec.BrakePow * f.ctrl.Brake * step
			if dec > speed {
				dec = speed
			}
			f.v.Linear = f.v.Linear.Sub(f.v.Linear.Scale(dec / speed))
		}

		// Steering authority fades with speed so highway lane changes
		// stay stable. The integrator clamps and applies the yaw rate.
		steerFade := float32(1)
		if f.spec.MaxSpeed > 0 {
			steerFade = 1 - 0.6*clamp01(speed/f.spec.MaxSpeed)
		}
		f.v.Angular.Y = f.ctrl.Steering * f.spec.SteerRate * steerFade

		// Grip bleeds the lateral velocity component; the handbrake
		// releases it for slides.
		grip := f.spec.Grip
		if f.ctrl.Pressed(component.BtnHandbrake) {
			grip *= 0.15
		}
		lat := f.v.Linear.Sub(fwd.Scale(f.v.Linear.Dot(fwd)))
		lat.Y = 0
		kill := clamp01(grip * step)
		f.v.Linear = f.v.Linear.Sub(lat.Scale(kill))

		f.v.Linear.Y -= d.Cfg.Physics.Gravity * step
		y := f.v.Linear.Y
		f.v.Linear.Y = 0
		f.v.Linear = physics.ApplyDamping(f.v.Linear, f.spec.LinearDamping, step)
		f.v.Linear = physics.ClampSpeed(f.v.Linear, f.spec.MaxSpeed)
		f.v.Linear.Y = y
	})
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
