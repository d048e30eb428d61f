package system

import (
	"math"
	"time"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/config"
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/core/event"
	"github.com/driftcity/engine/internal/data"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/physics"
	"github.com/driftcity/engine/internal/world"
)

// maxValidationsPerFrame bounds how many placement checks one tick absorbs.
// Excess requests are answered rate_limited and the generator retries the
// candidate on a later frame.
const maxValidationsPerFrame = 64

// SpawnSystem is the single writer of the placement grid and the only
// creator of content entities. It validates candidate positions against the
// grid and world bounds, then materializes accepted spawns with the
// component set their kind calls for.
type SpawnSystem struct {
	deps *Deps

	validationsThisFrame int
}

func NewSpawnSystem(deps *Deps) *SpawnSystem {
	s := &SpawnSystem{deps: deps}
	event.Subscribe(deps.Bus, s.onValidate)
	event.Subscribe(deps.Bus, s.onSpawn)
	event.Subscribe(deps.Bus, s.onDespawn)
	return s
}

// minSpacing is the extra clearance required between a new record and
// existing records, beyond the sum of their radii.
func minSpacing(kind component.ContentKind) float32 {
	switch kind {
	case component.KindBuilding, component.KindLandmark:
		return 8
	case component.KindTree:
		return 2
	case component.KindVehicle:
		return 3
	case component.KindNPC:
		return 1
	}
	return 0
}

func (s *SpawnSystem) onValidate(ev event.RequestSpawnValidation) {
	d := s.deps
	res := event.SpawnValidationResult{
		ID: ev.ID, Pos: ev.Pos, Kind: ev.Kind, Radius: ev.Radius,
	}
	switch {
	case s.validationsThisFrame >= maxValidationsPerFrame:
		res.Reason = event.ReasonRateLimited
	case !d.Bounds.Contains(ev.Pos):
		res.Reason = event.ReasonOutOfBounds
	case !d.Grid.CanPlace(ev.Pos, ev.Kind, ev.Radius, minSpacing(ev.Kind)):
		res.Reason = event.ReasonCollision
	default:
		res.Valid = true
		res.Reason = event.ReasonValid
	}
	s.validationsThisFrame++
	event.Emit(d.Bus, res)
}

func (s *SpawnSystem) onSpawn(ev event.RequestDynamicSpawn) {
	d := s.deps
	// Spawns arrive one tick after their validation verdict; the chunk may
	// have unloaded in between.
	if d.Tracker.State(ev.Coord) != world.ChunkLoading &&
		d.Tracker.State(ev.Coord) != world.ChunkLoadedState {
		return
	}

	id := d.World.CreateEntity()
	yaw := mathx.UnitRange(mathx.Hash32(ev.Seed), 0, 2*math.Pi)
	d.Stores.Transforms.Set(id, &component.Transform{Pos: ev.Pos, Yaw: yaw})
	d.Stores.ChunkRefs.Set(id, &component.ChunkRef{
		Coord: ev.Coord, Kind: ev.Kind,
		GridPos: ev.Pos, GridRadius: ev.Radius,
	})

	th := kindThresholds(&d.Cfg.Lod, ev.Kind)
	d.Stores.Cullables.Set(id, &component.UnifiedCullable{
		Kind:             ev.Kind,
		CullDistance:     th.H3,
		HysteresisMargin: d.Cfg.Lod.HysteresisPct,
		Visible:          true,
		Level:            component.LodHigh,
	})

	switch ev.Kind {
	case component.KindVehicle:
		s.attachVehicle(id, ev)
	case component.KindNPC:
		s.attachNPC(id, ev)
	case component.KindBuilding, component.KindLandmark:
		arch := d.Catalogs.PickBuilding(ev.Seed)
		d.Stores.Bodies.Set(id, &physics.RigidBody{
			Kind: physics.BodyFixed,
			Collider: physics.Collider{
				Shape:       physics.ColliderCuboid,
				HalfExtents: mathx.V3(arch.Radius, arch.Height/2, arch.Radius),
			},
			Groups: physics.StaticGroups(),
		})
		if arch.Landmark {
			s.attachRooftopBeacon(id, ev, arch)
		}
	case component.KindTree:
		arch := d.Catalogs.PickTree(ev.Seed)
		d.Stores.Bodies.Set(id, &physics.RigidBody{
			Kind: physics.BodyFixed,
			Collider: physics.Collider{
				Shape:      physics.ColliderCylinder,
				Radius:     arch.Radius,
				HalfHeight: arch.Height / 2,
			},
			Groups: physics.StaticGroups(),
		})
	}

	d.Grid.Insert(ev.Pos, ev.Kind, ev.Radius)
	d.Tracker.AddEntity(ev.Coord, id)
	event.Emit(d.Bus, event.DynamicContentSpawned{Entity: id, Pos: ev.Pos, Kind: ev.Kind})
}

// attachRooftopBeacon puts a beacon entity on top of a landmark building. The
// beacon has no ground footprint of its own; it lives and dies with its
// parent through the destroy cascade.
func (s *SpawnSystem) attachRooftopBeacon(parent ecs.EntityID, ev event.RequestDynamicSpawn, arch *data.BuildingArchetype) {
	d := s.deps
	id := d.World.CreateEntity()
	pos := ev.Pos
	pos.Y += arch.Height
	d.Stores.Transforms.Set(id, &component.Transform{Pos: pos})
	d.Stores.Parents.Set(id, &component.Parent{Entity: parent})
	d.Stores.ChunkRefs.Set(id, &component.ChunkRef{
		Coord: ev.Coord, Kind: component.KindLandmark, GridPos: pos,
	})
	d.Stores.Cullables.Set(id, &component.UnifiedCullable{
		Kind:             component.KindLandmark,
		CullDistance:     d.Cfg.Lod.Buildings.H3,
		HysteresisMargin: d.Cfg.Lod.HysteresisPct,
		Visible:          true,
		Level:            component.LodHigh,
	})
	d.Tracker.AddEntity(ev.Coord, id)
}

func (s *SpawnSystem) attachVehicle(id ecs.EntityID, ev event.RequestDynamicSpawn) {
	d := s.deps
	spec := d.Vehicles.Pick("car", ev.Seed)
	if spec == nil {
		d.Log.Warn("no car specs loaded, spawning bare vehicle")
		return
	}
	d.Stores.Vehicles.Set(id, &component.VehicleState{
		Kind:       component.VehicleCar,
		SpecName:   spec.Name,
		Fuel:       mathx.UnitRange(mathx.Hash32(ev.Seed^0x9e3779b9), 0.3, 1),
		ColorIndex: uint8(ev.Seed % 8),
	})
	d.Stores.Velocities.Set(id, &component.Velocity{})
	d.Stores.Controls.Set(id, &component.ControlState{})
	d.Stores.AIDrivers.Set(id, &component.AIDriver{
		Mode: component.AIIdle, Seed: ev.Seed, Forward: true,
	})
	d.Stores.Bodies.Set(id, &physics.RigidBody{
		Kind: physics.BodyDynamic,
		Collider: physics.Collider{
			Shape:       physics.ColliderCuboid,
			HalfExtents: mathx.V3(spec.HalfExtentX, spec.HalfExtentY, spec.HalfExtentZ),
		},
		Mass:           spec.Mass,
		LinearDamping:  spec.LinearDamping,
		AngularDamping: spec.AngularDamping,
		Groups:         physics.VehicleGroups(),
	})
	d.Clock.RegisterEntity(id, "vehicle", 0.5)
	d.Dist.MarkMoved(id)
}

func (s *SpawnSystem) attachNPC(id ecs.EntityID, ev event.RequestDynamicSpawn) {
	d := s.deps
	arch := d.Catalogs.PickNPC(ev.Seed)
	d.Stores.Velocities.Set(id, &component.Velocity{})
	d.Stores.AIDrivers.Set(id, &component.AIDriver{
		Mode: component.AIWander, Seed: ev.Seed, Forward: true,
	})
	d.Stores.Bodies.Set(id, &physics.RigidBody{
		Kind: physics.BodyKinematic,
		Collider: physics.Collider{
			Shape:      physics.ColliderCapsule,
			Radius:     0.4,
			HalfHeight: 0.9,
		},
		Mass:   70,
		Groups: physics.CharacterGroups(),
	})
	interval := float32(1.0)
	if arch != nil && arch.WalkSpeed > 2 {
		interval = 0.5
	}
	d.Clock.RegisterEntity(id, "npc", interval)
	d.Dist.MarkMoved(id)
}

func (s *SpawnSystem) onDespawn(ev event.RequestDynamicDespawn) {
	d := s.deps
	id := ev.Entity
	if !d.World.Alive(id) || d.World.PendingDestruction(id) {
		return
	}
	kind := component.KindTerrain
	if ref, ok := d.Stores.ChunkRefs.Get(id); ok {
		kind = ref.Kind
		d.Grid.Remove(ref.GridPos, ref.Kind)
		d.Tracker.RemoveEntity(ref.Coord, id)
	}
	d.Dist.Forget(id)
	d.Clock.UnregisterEntity(id)
	d.World.MarkForDestruction(id)
	event.Emit(d.Bus, event.DynamicContentDespawned{Entity: id, Kind: kind})
}

// kindThresholds maps a content kind to its configured LOD band edges.
// Roads and intersections reuse the building bands.
func kindThresholds(cfg *config.LodConfig, kind component.ContentKind) config.LodThresholds {
	switch kind {
	case component.KindVehicle:
		return cfg.Vehicles
	case component.KindNPC:
		return cfg.NPCs
	case component.KindTree:
		return cfg.Vegetation
	}
	return cfg.Buildings
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SpawnSystem) Update(_ time.Duration) {
	s.validationsThisFrame = 0
}
