package stream

import (
	"github.com/driftcity/engine/internal/core/event"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/world"
)

// Provider is the region-streaming capability record. The streaming system
// drives one of these each throttle tick; the in-memory implementation below
// is both the production path and the test seam.
type Provider interface {
	// Load requests a chunk load; returns false when already tracked.
	Load(c mathx.ChunkCoord) bool
	// Unload requests a chunk unload; returns false when not loaded.
	Unload(c mathx.ChunkCoord) bool
	// IsLoaded reports whether the chunk finished loading.
	IsLoaded(c mathx.ChunkCoord) bool
	// PrefetchAround requests loads for every chunk within radius of pos
	// without unloading anything.
	PrefetchAround(pos mathx.Vec3, radius float32)
	// UpdateStreaming runs one full streaming pass around pos: loads inside
	// the load radius, unloads beyond the unload radius.
	UpdateStreaming(pos mathx.Vec3)
}

// Requester decouples the provider from the bus; the streaming system backs
// it with event.Emit.
type Requester interface {
	RequestLoad(event.RequestChunkLoad)
	RequestUnload(event.RequestChunkUnload)
}

// MemoryProvider plans against the in-memory chunk tracker and publishes
// load/unload requests. It never touches chunk state directly; the tracker
// transitions when the requests are consumed, which keeps cancellation
// correct when a load and unload race within one tick.
type MemoryProvider struct {
	tracker  *world.ChunkTracker
	streamer *Streamer
	req      Requester
}

func NewMemoryProvider(tracker *world.ChunkTracker, streamer *Streamer, req Requester) *MemoryProvider {
	return &MemoryProvider{tracker: tracker, streamer: streamer, req: req}
}

func (p *MemoryProvider) Load(c mathx.ChunkCoord) bool {
	if p.tracker.State(c) != world.ChunkUnloaded {
		return false
	}
	p.req.RequestLoad(event.RequestChunkLoad{Coord: c})
	return true
}

func (p *MemoryProvider) Unload(c mathx.ChunkCoord) bool {
	if p.tracker.State(c) == world.ChunkUnloaded {
		return false
	}
	p.req.RequestUnload(event.RequestChunkUnload{Coord: c})
	return true
}

func (p *MemoryProvider) IsLoaded(c mathx.ChunkCoord) bool {
	return p.tracker.State(c) == world.ChunkLoadedState
}

func (p *MemoryProvider) PrefetchAround(pos mathx.Vec3, radius float32) {
	saved := p.streamer.loadRadius
	if radius > saved {
		p.streamer.loadRadius = radius
	}
	loads, _ := p.streamer.Plan(pos)
	p.streamer.loadRadius = saved
	for _, c := range loads {
		p.req.RequestLoad(event.RequestChunkLoad{Coord: c})
	}
}

func (p *MemoryProvider) UpdateStreaming(pos mathx.Vec3) {
	loads, unloads := p.streamer.Plan(pos)
	for _, c := range loads {
		p.req.RequestLoad(event.RequestChunkLoad{Coord: c})
	}
	for _, c := range unloads {
		p.req.RequestUnload(event.RequestChunkUnload{Coord: c})
	}
}
