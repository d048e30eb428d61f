package component

import (
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/mathx"
)

// Transform is the entity's world-space pose. Rotation is Euler radians;
// yaw around Y, pitch around X, roll around Z.
type Transform struct {
	Pos   mathx.Vec3
	Yaw   float32
	Pitch float32
	Roll  float32
}

// Forward returns the horizontal facing direction (unit XZ).
func (t *Transform) Forward() mathx.Vec3 {
	return mathx.V3(0, 0, 1).RotateY(t.Yaw)
}

// Velocity carries linear and angular velocity in world space.
type Velocity struct {
	Linear  mathx.Vec3
	Angular mathx.Vec3
}

// Parent links a child entity to its parent (vehicle body and its parts,
// building and its landmarks). A child is destroyed iff its parent is.
type Parent struct {
	Entity ecs.EntityID
}

// ChunkRef records which chunk owns the entity. Despawn on chunk unload is
// routed through this. GridPos/GridRadius track the entity's current
// placement-grid record so removal and re-homing always hit the record that
// was actually inserted, not wherever the transform has drifted to.
type ChunkRef struct {
	Coord      mathx.ChunkCoord
	Kind       ContentKind
	GridPos    mathx.Vec3
	GridRadius float32
}
