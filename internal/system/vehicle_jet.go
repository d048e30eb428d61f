package system

import (
	"math"
	"time"

	"github.com/driftcity/engine/internal/component"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/physics"
)

// stallFraction of max speed below which the wings stop carrying the
// airframe.
const stallFraction float32 = 0.25

// JetSystem simulates fixed-wing jets. Thrust acts along the nose
// (yaw+pitch), bank angle feeds the turn rate, and lift scales with
// airspeed: above the stall threshold the wings carry the full weight,
// below it the jet drops.
type JetSystem struct {
	deps *Deps
}

func NewJetSystem(deps *Deps) *JetSystem {
	return &JetSystem{deps: deps}
}

func (s *JetSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *JetSystem) Update(dt time.Duration) {
	d := s.deps
	step := float32(dt.Seconds())
	if step <= 0 {
		return
	}
	g := d.Cfg.Physics.Gravity
	eachVehicle(d, component.VehicleJet, func(f vehicleFrame) {
		engine := burnFuel(f.state, f.ctrl.Throttle, step)

		f.t.Pitch += f.ctrl.Pitch * f.spec.PitchRate * step
		f.t.Pitch = mathx.Clamp(f.t.Pitch, -1.2, 1.2)
		f.t.Roll = approach(f.t.Roll, f.ctrl.Roll*1.0, f.spec.RollRate*step)
		// banked turn: roll steers, rudder trims
		f.v.Angular.Y = f.t.Roll*f.spec.YawRate + f.ctrl.Yaw*f.spec.YawRate*0.3

		nose := noseDirection(f.t.Yaw, f.t.Pitch)
		if engine {
			thrust := f.spec.Acceleration * f.ctrl.Throttle * damageFactor(f.state)
			if f.ctrl.Pressed(component.BtnAfterburner) {
				thrust *= f.spec.BoostMult
			}
			f.v.Linear = f.v.Linear.Add(nose.Scale(thrust * step))
		}

		speed := f.v.Linear.Len()
		lift := float32(0)
		if f.spec.MaxSpeed > 0 {
			lift = clamp01(speed / (f.spec.MaxSpeed * stallFraction))
		}
		f.v.Linear.Y -= g * (1 - lift) * step

		// the airframe sheds velocity not aligned with the nose
		aligned := nose.Scale(f.v.Linear.Dot(nose))
		slip := f.v.Linear.Sub(aligned)
		f.v.Linear = f.v.Linear.Sub(slip.Scale(clamp01(f.spec.Grip * step)))

		f.v.Linear = physics.ApplyDamping(f.v.Linear, f.spec.LinearDamping, step)
		f.v.Linear = physics.ClampSpeed(f.v.Linear, f.spec.MaxSpeed)
	})
}

// noseDirection is the unit vector for a yaw/pitch pair.
func noseDirection(yaw, pitch float32) mathx.Vec3 {
	cp := float32(math.Cos(float64(pitch)))
	sp := float32(math.Sin(float64(pitch)))
	return mathx.V3(0, sp, cp).RotateY(yaw)
}
