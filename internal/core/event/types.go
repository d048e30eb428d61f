package event

import (
	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/mathx"
)

// Chunk and content protocol events. All are plain value types; consumers
// must be idempotent against duplicates within one tick, and no producer may
// assume same-tick delivery (the bus is double-buffered).

// RequestChunkLoad asks the tracker and generator to load a chunk. Exactly
// one ChunkLoaded is produced per accepted request; requests for coords
// already Loading or Loaded are ignored.
type RequestChunkLoad struct {
	Coord mathx.ChunkCoord
}

// ChunkLoaded acknowledges an accepted load request.
type ChunkLoaded struct {
	Coord        mathx.ChunkCoord
	ContentCount int
}

// RequestChunkUnload cancels pending generation work and destroys every
// entity the chunk owns.
type RequestChunkUnload struct {
	Coord mathx.ChunkCoord
}

// ChunkUnloaded acknowledges a completed unload: all owned entities are
// destroyed and their placement records removed.
type ChunkUnloaded struct {
	Coord mathx.ChunkCoord
}

// ChunkFinishedLoading fires once when every content layer of a chunk has
// completed generation.
type ChunkFinishedLoading struct {
	Coord    mathx.ChunkCoord
	LodLevel component.LodLevel
}

// ValidationReason explains a spawn validation verdict.
type ValidationReason uint8

const (
	ReasonValid ValidationReason = iota
	ReasonCollision
	ReasonOutOfBounds
	ReasonRateLimited
)

func (r ValidationReason) String() string {
	switch r {
	case ReasonValid:
		return "valid"
	case ReasonCollision:
		return "collision"
	case ReasonOutOfBounds:
		return "out_of_bounds"
	case ReasonRateLimited:
		return "rate_limited"
	}
	return "unknown"
}

// RequestSpawnValidation asks the placement grid whether a candidate
// position can hold new content. ID correlates the response to the
// generator's pending candidate.
type RequestSpawnValidation struct {
	ID     uint64
	Pos    mathx.Vec3
	Kind   component.ContentKind
	Radius float32
}

// SpawnValidationResult is the grid's verdict on a validation request.
type SpawnValidationResult struct {
	ID     uint64
	Pos    mathx.Vec3
	Kind   component.ContentKind
	Radius float32
	Valid  bool
	Reason ValidationReason
}

// RequestDynamicSpawn creates an entity of the given kind at the position.
// The spawner inserts the placement-grid record.
type RequestDynamicSpawn struct {
	Pos    mathx.Vec3
	Kind   component.ContentKind
	Radius float32
	Coord  mathx.ChunkCoord // owning chunk
	Seed   uint32           // deterministic variant selection
}

// DynamicContentSpawned reports a created entity.
type DynamicContentSpawned struct {
	Entity ecs.EntityID
	Pos    mathx.Vec3
	Kind   component.ContentKind
}

// RequestDynamicDespawn removes an entity and its placement-grid record.
type RequestDynamicDespawn struct {
	Entity ecs.EntityID
}

// DynamicContentDespawned reports a removed entity.
type DynamicContentDespawned struct {
	Entity ecs.EntityID
	Kind   component.ContentKind
}

// RequestSaveSnapshot asks the persistence system to capture the world into
// the named save slot at the next Persist phase.
type RequestSaveSnapshot struct {
	Slot string
}

// SnapshotSaved reports a completed snapshot write.
type SnapshotSaved struct {
	Slot        string
	EntityCount int
}
