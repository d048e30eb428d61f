package system

import (
	"time"

	"github.com/driftcity/engine/internal/core/event"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/gen"
	"github.com/driftcity/engine/internal/stream"
	"github.com/driftcity/engine/internal/world"
)

// ChunkGenSystem owns the budgeted async chunk generator. It accepts load
// requests, feeds validation verdicts back into the layer pipeline, and each
// tick works the queue until the frame budget elapses.
type ChunkGenSystem struct {
	deps *Deps
	gen  *stream.Generator
	em   stream.Emitter
}

// busEmitter publishes generator output onto the event bus.
type busEmitter struct {
	deps *Deps
}

func (e busEmitter) Validation(ev event.RequestSpawnValidation) { event.Emit(e.deps.Bus, ev) }
func (e busEmitter) Spawn(ev event.RequestDynamicSpawn)         { event.Emit(e.deps.Bus, ev) }
func (e busEmitter) Finished(ev event.ChunkFinishedLoading)     { event.Emit(e.deps.Bus, ev) }
func (e busEmitter) Loaded(ev event.ChunkLoaded)                { event.Emit(e.deps.Bus, ev) }

func NewChunkGenSystem(deps *Deps) *ChunkGenSystem {
	cg := gen.NewChunkGen(deps.Cfg.World.Seed, world.ChunkSize, deps.Terrain, deps.Catalogs)
	budget := time.Duration(deps.Cfg.Budget.GeneratorFrameMs * float64(time.Millisecond))
	s := &ChunkGenSystem{
		deps: deps,
		gen:  stream.NewGenerator(cg, deps.Tracker, deps.Network, budget, deps.Log.Named("chunkgen")),
	}
	s.em = busEmitter{deps: deps}

	event.Subscribe(deps.Bus, s.onChunkLoad)
	event.Subscribe(deps.Bus, s.onChunkUnload)
	event.Subscribe(deps.Bus, s.onValidationResult)
	return s
}

// onChunkLoad accepts a load request. Coords already Loading or Loaded are
// dropped here, which is the no-duplicate-request guarantee.
func (s *ChunkGenSystem) onChunkLoad(ev event.RequestChunkLoad) {
	if !s.deps.Tracker.BeginLoading(ev.Coord, s.deps.Clock.Now()) {
		return
	}
	s.gen.Enqueue(ev.Coord)
}

// onChunkUnload abandons any queued or in-flight generation work for the
// coord. Verdicts that arrive afterwards for its candidates are ignored.
func (s *ChunkGenSystem) onChunkUnload(ev event.RequestChunkUnload) {
	s.gen.Cancel(ev.Coord)
}

func (s *ChunkGenSystem) onValidationResult(ev event.SpawnValidationResult) {
	s.gen.Resolve(ev, s.em)
}

func (s *ChunkGenSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ChunkGenSystem) Update(_ time.Duration) {
	s.gen.Step(s.deps.Clock.Now(), s.em)
}

// QueueLen reports pending chunk generation work.
func (s *ChunkGenSystem) QueueLen() int { return s.gen.QueueLen() }
