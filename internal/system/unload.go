package system

import (
	"time"

	"github.com/driftcity/engine/internal/core/event"
	coresys "github.com/driftcity/engine/internal/core/system"
	"go.uber.org/zap"
)

// UnloadSystem tears chunks down: every entity the chunk owns is destroyed,
// its placement record removed, and its timers and cached distances dropped.
// Road splines belonging to the chunk leave the network at the same time.
type UnloadSystem struct {
	deps *Deps
}

func NewUnloadSystem(deps *Deps) *UnloadSystem {
	s := &UnloadSystem{deps: deps}
	event.Subscribe(deps.Bus, s.onChunkUnload)
	return s
}

func (s *UnloadSystem) onChunkUnload(ev event.RequestChunkUnload) {
	d := s.deps
	if !d.Tracker.BeginUnloading(ev.Coord, d.Clock.Now()) {
		return
	}
	data := d.Tracker.Get(ev.Coord)
	destroyed := 0
	if data != nil {
		for _, id := range data.Entities {
			if !d.World.Alive(id) {
				continue
			}
			if ref, ok := d.Stores.ChunkRefs.Get(id); ok {
				d.Grid.Remove(ref.GridPos, ref.Kind)
			}
			d.Dist.Forget(id)
			d.Clock.UnregisterEntity(id)
			d.World.MarkForDestruction(id)
			destroyed++
		}
	}
	d.Network.DropChunk(ev.Coord)
	d.Tracker.Release(ev.Coord)
	event.Emit(d.Bus, event.ChunkUnloaded{Coord: ev.Coord})
	d.Log.Debug("chunk unloaded",
		zap.Int32("cx", ev.Coord.X), zap.Int32("cz", ev.Coord.Z),
		zap.Int("entities", destroyed))
}

func (s *UnloadSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *UnloadSystem) Update(_ time.Duration) {}
