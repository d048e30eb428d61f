package world

import (
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/mathx"
)

// ChunkState is the lifecycle of one chunk coordinate. A coord is in exactly
// one state at a time; Unloaded coords have no map entry.
type ChunkState uint8

const (
	ChunkUnloaded ChunkState = iota
	ChunkLoading
	ChunkLoadedState
	ChunkUnloading
)

func (s ChunkState) String() string {
	switch s {
	case ChunkUnloaded:
		return "unloaded"
	case ChunkLoading:
		return "loading"
	case ChunkLoadedState:
		return "loaded"
	case ChunkUnloading:
		return "unloading"
	}
	return "unknown"
}

// ChunkData is the tracker's record for a non-unloaded chunk. Layer flags are
// monotonic within one load cycle and reset when the chunk unloads.
type ChunkData struct {
	Coord      mathx.ChunkCoord
	State      ChunkState
	LastUpdate float64

	RoadsGenerated      bool
	BuildingsGenerated  bool
	VegetationGenerated bool
	VehiclesGenerated   bool

	Entities []ecs.EntityID
}

// ChunkTracker is the source of truth for which coords are loaded. Written
// only by the streaming and generation systems; everyone else reads.
type ChunkTracker struct {
	chunks map[mathx.ChunkCoord]*ChunkData
}

func NewChunkTracker() *ChunkTracker {
	return &ChunkTracker{
		chunks: make(map[mathx.ChunkCoord]*ChunkData, 256),
	}
}

// State returns the chunk's lifecycle state; missing coords are Unloaded.
func (t *ChunkTracker) State(c mathx.ChunkCoord) ChunkState {
	if d, ok := t.chunks[c]; ok {
		return d.State
	}
	return ChunkUnloaded
}

// Get returns the chunk record, or nil when unloaded.
func (t *ChunkTracker) Get(c mathx.ChunkCoord) *ChunkData {
	return t.chunks[c]
}

// BeginLoading transitions Unloaded → Loading. Returns false (no-op) if the
// coord is already tracked, which is how duplicate load requests are dropped.
func (t *ChunkTracker) BeginLoading(c mathx.ChunkCoord, now float64) bool {
	if _, ok := t.chunks[c]; ok {
		return false
	}
	t.chunks[c] = &ChunkData{Coord: c, State: ChunkLoading, LastUpdate: now}
	return true
}

// MarkLoaded transitions Loading → Loaded once generation completes.
func (t *ChunkTracker) MarkLoaded(c mathx.ChunkCoord, now float64) {
	if d, ok := t.chunks[c]; ok {
		d.State = ChunkLoadedState
		d.LastUpdate = now
	}
}

// BeginUnloading transitions Loading|Loaded → Unloading. Returns false when
// the coord is not tracked.
func (t *ChunkTracker) BeginUnloading(c mathx.ChunkCoord, now float64) bool {
	d, ok := t.chunks[c]
	if !ok || d.State == ChunkUnloading {
		return false
	}
	d.State = ChunkUnloading
	d.LastUpdate = now
	return true
}

// Release removes the record entirely, returning the coord to Unloaded and
// resetting every layer flag with it.
func (t *ChunkTracker) Release(c mathx.ChunkCoord) {
	delete(t.chunks, c)
}

// AddEntity records chunk ownership of a spawned entity.
func (t *ChunkTracker) AddEntity(c mathx.ChunkCoord, id ecs.EntityID) {
	if d, ok := t.chunks[c]; ok {
		d.Entities = append(d.Entities, id)
	}
}

// RemoveEntity drops one entity from the chunk's owned list (individual
// despawn, not unload).
func (t *ChunkTracker) RemoveEntity(c mathx.ChunkCoord, id ecs.EntityID) {
	d, ok := t.chunks[c]
	if !ok {
		return
	}
	for i, e := range d.Entities {
		if e == id {
			d.Entities[i] = d.Entities[len(d.Entities)-1]
			d.Entities = d.Entities[:len(d.Entities)-1]
			return
		}
	}
}

// Each visits every tracked chunk.
func (t *ChunkTracker) Each(fn func(*ChunkData)) {
	for _, d := range t.chunks {
		fn(d)
	}
}

// LoadedCount returns how many chunks are fully loaded.
func (t *ChunkTracker) LoadedCount() int {
	n := 0
	for _, d := range t.chunks {
		if d.State == ChunkLoadedState {
			n++
		}
	}
	return n
}

// TrackedCount returns how many coords have any non-unloaded state.
func (t *ChunkTracker) TrackedCount() int { return len(t.chunks) }
