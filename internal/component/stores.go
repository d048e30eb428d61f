package component

import (
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/physics"
)

// Stores bundles every component store in the game. Systems receive the
// bundle and join the stores they declare; the registry wires bulk removal
// on entity destroy.
type Stores struct {
	Transforms *ecs.PtrComponentStore[Transform]
	Velocities *ecs.PtrComponentStore[Velocity]
	Parents    *ecs.PtrComponentStore[Parent]
	ChunkRefs  *ecs.PtrComponentStore[ChunkRef]
	Cullables  *ecs.PtrComponentStore[UnifiedCullable]
	Controls   *ecs.PtrComponentStore[ControlState]
	Vehicles   *ecs.PtrComponentStore[VehicleState]
	AIDrivers  *ecs.PtrComponentStore[AIDriver]
	Bodies     *ecs.PtrComponentStore[physics.RigidBody]

	DirtyTransforms   *ecs.PtrComponentStore[DirtyTransform]
	DirtyVisibilities *ecs.PtrComponentStore[DirtyVisibility]
	DirtyPhysicsSet   *ecs.PtrComponentStore[DirtyPhysics]
	DirtyLODs         *ecs.PtrComponentStore[DirtyLOD]
}

// NewStores builds the bundle and registers every store for destroy cleanup.
func NewStores(reg *ecs.Registry) *Stores {
	s := &Stores{
		Transforms:        ecs.NewPtrComponentStore[Transform](),
		Velocities:        ecs.NewPtrComponentStore[Velocity](),
		Parents:           ecs.NewPtrComponentStore[Parent](),
		ChunkRefs:         ecs.NewPtrComponentStore[ChunkRef](),
		Cullables:         ecs.NewPtrComponentStore[UnifiedCullable](),
		Controls:          ecs.NewPtrComponentStore[ControlState](),
		Vehicles:          ecs.NewPtrComponentStore[VehicleState](),
		AIDrivers:         ecs.NewPtrComponentStore[AIDriver](),
		Bodies:            ecs.NewPtrComponentStore[physics.RigidBody](),
		DirtyTransforms:   ecs.NewPtrComponentStore[DirtyTransform](),
		DirtyVisibilities: ecs.NewPtrComponentStore[DirtyVisibility](),
		DirtyPhysicsSet:   ecs.NewPtrComponentStore[DirtyPhysics](),
		DirtyLODs:         ecs.NewPtrComponentStore[DirtyLOD](),
	}
	reg.Register(s.Transforms)
	reg.Register(s.Velocities)
	reg.Register(s.Parents)
	reg.Register(s.ChunkRefs)
	reg.Register(s.Cullables)
	reg.Register(s.Controls)
	reg.Register(s.Vehicles)
	reg.Register(s.AIDrivers)
	reg.Register(s.Bodies)
	reg.Register(s.DirtyTransforms)
	reg.Register(s.DirtyVisibilities)
	reg.Register(s.DirtyPhysicsSet)
	reg.Register(s.DirtyLODs)
	return s
}
