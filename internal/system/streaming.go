package system

import (
	"time"

	"github.com/driftcity/engine/internal/core/event"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/stream"
)

const streamClockID = "streaming"

// StreamingSystem drives the region provider from the active entity's
// position: chunks inside the load radius get load requests, chunks beyond
// the unload radius get unload requests. Runs at 2 Hz through the timing
// service; without an active entity the tick is a no-op.
type StreamingSystem struct {
	deps     *Deps
	provider stream.Provider
}

// busRequester backs the provider's request surface with the event bus.
type busRequester struct {
	deps *Deps
}

func (r busRequester) RequestLoad(ev event.RequestChunkLoad) {
	event.Emit(r.deps.Bus, ev)
}

func (r busRequester) RequestUnload(ev event.RequestChunkUnload) {
	event.Emit(r.deps.Bus, ev)
}

func NewStreamingSystem(deps *Deps) *StreamingSystem {
	streamer := stream.NewStreamer(deps.Tracker, deps.Cfg.World.LoadRadius, deps.Cfg.World.UnloadRadius)
	deps.Clock.RegisterSystem(streamClockID, 0.5)
	return &StreamingSystem{
		deps:     deps,
		provider: stream.NewMemoryProvider(deps.Tracker, streamer, busRequester{deps: deps}),
	}
}

// Provider exposes the region capability record (prefetch, explicit loads).
func (s *StreamingSystem) Provider() stream.Provider { return s.provider }

func (s *StreamingSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *StreamingSystem) Update(_ time.Duration) {
	if !s.deps.Clock.ShouldRunSystem(streamClockID) {
		return
	}
	active, ok := s.deps.Active.Get()
	if !ok {
		return
	}
	t, ok := s.deps.Stores.Transforms.Get(active)
	if !ok {
		return
	}
	s.provider.UpdateStreaming(t.Pos)
}
