package system

import (
	"time"

	"github.com/driftcity/engine/internal/component"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/physics"
)

// YachtSystem simulates watercraft. Buoyancy against gravity settles the
// hull to its waterline, hull drag falls as the boat planes, and the
// propeller only bites while the hull is in the water. The anchor button
// kills thrust and triples drag.
type YachtSystem struct {
	deps *Deps
}

func NewYachtSystem(deps *Deps) *YachtSystem {
	return &YachtSystem{deps: deps}
}

func (s *YachtSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *YachtSystem) Update(dt time.Duration) {
	d := s.deps
	step := float32(dt.Seconds())
	if step <= 0 {
		return
	}
	g := d.Cfg.Physics.Gravity
	rho := d.Cfg.Physics.WaterDensity
	waterLevel := d.Terrain.WaterLevel()
	eachVehicle(d, component.VehicleYacht, func(f vehicleFrame) {
		sub := physics.Submersion(f.t.Pos.Y, f.spec.HalfExtentY, waterLevel)
		f.state.Submersion = sub

		f.v.Linear.Y -= g * step
		if f.spec.Mass > 0 {
			f.v.Linear.Y += physics.Buoyancy(rho, g, f.spec.HullVolume, sub) / f.spec.Mass * step
		}

		anchored := f.ctrl.Pressed(component.BtnAnchor)
		if sub > 0 && !anchored && burnFuel(f.state, f.ctrl.Throttle, step) {
			thrust := f.spec.Acceleration * f.ctrl.Throttle * damageFactor(f.state) * sub
			f.v.Linear = f.v.Linear.Add(f.t.Forward().Scale(thrust * step))
		}

		if sub > 0 {
			// rudder authority grows with way on
			speed := f.v.Linear.Len()
			way := clamp01(speed / 5)
			f.v.Angular.Y = f.ctrl.Steering * f.spec.SteerRate * way

			drag := physics.WaterDragCoeff(f.spec.WaterDrag, sub)
			if anchored {
				drag *= 3
			}
			decay := clamp01(drag * step)
			f.v.Linear = f.v.Linear.Sub(f.v.Linear.Scale(decay))
		}

		f.v.Linear = physics.ApplyDamping(f.v.Linear, f.spec.LinearDamping, step)
		f.v.Linear = physics.ClampSpeed(f.v.Linear, f.spec.MaxSpeed)
	})
}
