package world

import "github.com/driftcity/engine/internal/core/ecs"

// Active holds the single entity whose position drives streaming and LOD.
// Exactly zero or one entity is active; with none set, streaming and LOD
// no-op for the tick.
type Active struct {
	id  ecs.EntityID
	set bool
}

func NewActive() *Active { return &Active{} }

func (a *Active) Set(id ecs.EntityID) {
	a.id = id
	a.set = true
}

func (a *Active) Clear() {
	a.id = 0
	a.set = false
}

// Get returns the active entity and whether one is set.
func (a *Active) Get() (ecs.EntityID, bool) {
	return a.id, a.set
}

// Is reports whether the given entity is the active one.
func (a *Active) Is(id ecs.EntityID) bool {
	return a.set && a.id == id
}
