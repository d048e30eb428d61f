package system

import (
	"time"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/core/ecs"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/data"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/physics"
)

// IntegrateSystem advances every moving entity by its linear and angular
// velocity and enforces the world's hard limits: the speed and turn-rate
// ceilings, the playable bounds, and the terrain floor. Runs first in
// PostUpdate so the dirty batcher sees the final positions of the frame.
type IntegrateSystem struct {
	deps *Deps
}

func NewIntegrateSystem(deps *Deps) *IntegrateSystem {
	return &IntegrateSystem{deps: deps}
}

func (s *IntegrateSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *IntegrateSystem) Update(dt time.Duration) {
	d := s.deps
	step := float32(dt.Seconds())
	if step <= 0 {
		return
	}
	clampFactor := d.Cfg.Physics.VelocityClampFactor
	d.Stores.Velocities.Each(func(id ecs.EntityID, v *component.Velocity) {
		if d.World.PendingDestruction(id) {
			return
		}
		if b, ok := d.Stores.Bodies.Get(id); ok && b.Sleeping {
			return
		}
		t, ok := d.Stores.Transforms.Get(id)
		if !ok {
			return
		}

		// hard ceilings over whatever the force systems produced
		var spec *data.VehicleSpecs
		vs, isVehicle := d.Stores.Vehicles.Get(id)
		if isVehicle {
			if sp, sok := d.Vehicles.Get(vs.SpecName); sok {
				spec = sp
			}
		}
		if spec != nil && spec.MaxSpeed > 0 {
			v.Linear = physics.ClampSpeed(v.Linear, spec.MaxSpeed*clampFactor)
		}
		if !v.Linear.IsFinite() {
			v.Linear = mathx.Vec3{}
		}
		if !v.Angular.IsFinite() {
			v.Angular = mathx.Vec3{}
		}
		if spec != nil {
			maxTurn := spec.SteerRate
			if spec.YawRate > maxTurn {
				maxTurn = spec.YawRate
			}
			if maxTurn > 0 {
				v.Angular.Y = mathx.Clamp(v.Angular.Y, -maxTurn*clampFactor, maxTurn*clampFactor)
			}
		}

		moved := false
		if v.Angular.Y != 0 {
			t.Yaw += v.Angular.Y * step
			moved = true
		}
		if v.Angular.LenSq() != 0 {
			if b, ok := d.Stores.Bodies.Get(id); ok && b.AngularDamping > 0 {
				v.Angular = physics.ApplyDamping(v.Angular, b.AngularDamping, step)
			}
		}

		if v.Linear.LenSq() != 0 {
			next := t.Pos.Add(v.Linear.Scale(step))
			if !next.IsFinite() {
				v.Linear = mathx.Vec3{}
				return
			}
			next = d.Bounds.ClampPoint(next)

			// ground vehicles and pedestrians ride the terrain
			grounded := false
			if isVehicle {
				grounded = vs.Kind == component.VehicleCar
			} else if d.Stores.AIDrivers.Has(id) {
				grounded = true
			}
			if grounded {
				floor := d.Terrain.Height(next.X, next.Z)
				if next.Y <= floor {
					next.Y = floor
					if v.Linear.Y < 0 {
						v.Linear.Y = 0
					}
				}
			} else if floor := d.Terrain.Height(next.X, next.Z); next.Y < floor {
				// flying and floating craft crash-stop at the surface
				next.Y = floor
				v.Linear.Y = 0
			}
			t.Pos = next
			moved = true
		}

		if !moved {
			return
		}
		prio := component.PriorityMedium
		if d.Active.Is(id) {
			prio = component.PriorityCritical
		}
		d.MarkTransformDirty(id, prio)
		d.Dist.MarkMoved(id)
	})
}
