package physics

import "github.com/driftcity/engine/internal/mathx"

// BodyKind mirrors the host physics contract.
type BodyKind uint8

const (
	BodyDynamic BodyKind = iota
	BodyKinematic
	BodyFixed
)

// ColliderShape selects the collider primitive.
type ColliderShape uint8

const (
	ColliderCuboid ColliderShape = iota
	ColliderSphere
	ColliderCapsule
	ColliderCylinder
)

// Collider is a shape plus its dimensions. HalfExtents is used by cuboids;
// Radius/HalfHeight by the round shapes.
type Collider struct {
	Shape       ColliderShape
	HalfExtents mathx.Vec3
	Radius      float32
	HalfHeight  float32
	Sensor      bool
}

// RigidBody is the physics component attached to simulated entities.
type RigidBody struct {
	Kind           BodyKind
	Collider       Collider
	Mass           float32
	LinearDamping  float32
	AngularDamping float32
	Groups         CollisionGroups
	Sleeping       bool
}
