package system

import (
	"math"
	"time"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/core/ecs"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/world"
)

// lookAhead is how far along the spline an AI driver aims, in world units.
const lookAhead float32 = 12

// AISystem produces ControlState for every entity with an AIDriver the
// player is not controlling. Vehicle drivers follow road splines by arc
// distance; pedestrians wander on seeded headings. Per-entity timers
// throttle the expensive decisions; the produced controls persist between
// decisions so motion stays continuous.
type AISystem struct {
	deps *Deps
}

func NewAISystem(deps *Deps) *AISystem {
	return &AISystem{deps: deps}
}

func (s *AISystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AISystem) Update(_ time.Duration) {
	d := s.deps
	d.Stores.AIDrivers.Each(func(id ecs.EntityID, ai *component.AIDriver) {
		if d.Active.Is(id) || d.World.PendingDestruction(id) {
			return
		}
		// Sleeping content keeps its last controls and coasts to a stop
		// under damping.
		if c, ok := d.Stores.Cullables.Get(id); ok && (c.Culled || c.Level == component.LodSleep) {
			return
		}
		if !d.Clock.ShouldUpdateEntity(id) {
			return
		}
		if d.Stores.Vehicles.Has(id) {
			s.driveVehicle(id, ai)
		} else {
			s.walkNPC(id, ai)
		}
	})
}

func (s *AISystem) driveVehicle(id ecs.EntityID, ai *component.AIDriver) {
	d := s.deps
	t, ok := d.Stores.Transforms.Get(id)
	if !ok {
		return
	}
	ctrl, ok := d.Stores.Controls.Get(id)
	if !ok {
		return
	}
	now := d.Clock.Now()
	elapsed := float32(now - ai.LastDecision)
	if ai.LastDecision == 0 || elapsed < 0 {
		elapsed = 0
	}
	ai.LastDecision = now

	if ai.Mode == component.AIIdle {
		// Parked cars wake onto the nearest road once one is loaded.
		if rid, rdist, found := d.Network.Nearest(t.Pos, world.ChunkSize); found {
			ai.Mode = component.AIFollowRoad
			ai.RoadID = rid
			ai.RoadDist = rdist
			ai.Forward = mathx.Hash32(ai.Seed)&1 == 0
		} else {
			ctrl.Reset()
			return
		}
	}

	spline := d.Network.Get(ai.RoadID)
	if spline == nil {
		// Road unloaded under the driver; reacquire next decision.
		ai.Mode = component.AIIdle
		ctrl.Reset()
		ctrl.Brake = 1
		return
	}

	ahead := ai.RoadDist + lookAhead
	if !ai.Forward {
		ahead = ai.RoadDist - lookAhead
	}
	if ahead >= spline.Length() || ahead <= 0 {
		ai.Forward = !ai.Forward
		ahead = ai.RoadDist
	}
	target := spline.Eval(spline.AtDistance(ahead))

	to := target.Sub(t.Pos)
	desiredYaw := float32(math.Atan2(float64(to.X), float64(to.Z)))
	diff := wrapAngle(desiredYaw - t.Yaw)

	ctrl.Steering = mathx.Clamp(diff*2, -1, 1)
	limit := spline.Type.SpeedLimit()
	speed := float32(0)
	if v, ok := d.Stores.Velocities.Get(id); ok {
		speed = v.Linear.Len()
	}
	switch {
	case speed < limit*0.9:
		ctrl.Throttle = 0.8
		ctrl.Brake = 0
	case speed > limit:
		ctrl.Throttle = 0
		ctrl.Brake = 0.5
	default:
		ctrl.Throttle = 0.3
		ctrl.Brake = 0
	}

	// Advance progress by the distance actually covered since the last
	// decision rather than replanning from scratch.
	if ai.Forward {
		ai.RoadDist += speed * elapsed
	} else {
		ai.RoadDist -= speed * elapsed
	}
	ai.RoadDist = mathx.Clamp(ai.RoadDist, 0, spline.Length())
}

func (s *AISystem) walkNPC(id ecs.EntityID, ai *component.AIDriver) {
	d := s.deps
	v, ok := d.Stores.Velocities.Get(id)
	if !ok {
		return
	}
	// Heading is a pure function of seed and coarse time, so identical
	// worlds replay identical crowds.
	step := uint32(d.Clock.Now() / 3)
	h := mathx.Hash32(ai.Seed ^ step*0x85ebca6b)
	heading := mathx.UnitRange(h, 0, 2*math.Pi)
	speed := mathx.UnitRange(mathx.Hash32(h), 0.8, 1.6)
	if ai.Mode == component.AIIdle {
		speed = 0
	}
	v.Linear = mathx.V3(0, 0, speed).RotateY(heading)
	if t, ok := d.Stores.Transforms.Get(id); ok {
		t.Yaw = heading
	}
	d.MarkTransformDirty(id, component.PriorityLow)
	d.Dist.MarkMoved(id)
}

// wrapAngle folds an angle difference into (-π, π].
func wrapAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
