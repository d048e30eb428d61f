package stream

import (
	"time"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/core/event"
	"github.com/driftcity/engine/internal/gen"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/roads"
	"github.com/driftcity/engine/internal/world"
	"go.uber.org/zap"
)

// Emitter is how the generator publishes protocol events without owning the
// bus. The chunk generation system provides a bus-backed implementation;
// tests provide a recording one.
type Emitter interface {
	Validation(event.RequestSpawnValidation)
	Spawn(event.RequestDynamicSpawn)
	Finished(event.ChunkFinishedLoading)
	Loaded(event.ChunkLoaded)
}

// pendingChunk is one chunk moving through the layer pipeline. Layers run in
// fixed order; a layer is complete only when every candidate it emitted has
// a validation verdict.
type pendingChunk struct {
	coord       mathx.ChunkCoord
	layer       gen.Layer
	candidates  []gen.Candidate
	cursor      int  // next candidate to emit for validation
	outstanding int  // emitted, verdict not yet received
	fetched     bool // candidates for the current layer are computed
	spawned     int  // accepted content across all layers
}

// Generator converts RequestChunkLoad into completed chunks without
// exceeding a per-tick wall-time budget. It holds a FIFO of pending chunks;
// each Step works the head of the queue until the budget elapses, yielding
// the remainder to the next tick.
type Generator struct {
	cg      *gen.ChunkGen
	tracker *world.ChunkTracker
	network *roads.Network
	budget  time.Duration

	queue   []*pendingChunk
	index   map[mathx.ChunkCoord]*pendingChunk
	byReqID map[uint64]*pendingChunk
	nextID  uint64

	log *zap.Logger
}

func NewGenerator(cg *gen.ChunkGen, tracker *world.ChunkTracker, network *roads.Network, budget time.Duration, log *zap.Logger) *Generator {
	return &Generator{
		cg:      cg,
		tracker: tracker,
		network: network,
		budget:  budget,
		index:   make(map[mathx.ChunkCoord]*pendingChunk, 64),
		byReqID: make(map[uint64]*pendingChunk, 256),
		log:     log,
	}
}

// Enqueue accepts a chunk for generation. Duplicate coords are dropped.
func (g *Generator) Enqueue(c mathx.ChunkCoord) {
	if _, dup := g.index[c]; dup {
		return
	}
	p := &pendingChunk{coord: c, layer: gen.LayerTerrain}
	g.queue = append(g.queue, p)
	g.index[c] = p
}

// Cancel discards pending work for a chunk. Outstanding validation verdicts
// for it are ignored when they arrive.
func (g *Generator) Cancel(c mathx.ChunkCoord) {
	p, ok := g.index[c]
	if !ok {
		return
	}
	delete(g.index, c)
	for i, q := range g.queue {
		if q == p {
			g.queue = append(g.queue[:i], g.queue[i+1:]...)
			break
		}
	}
	g.network.DropChunk(c)
	g.log.Debug("generator: canceled chunk",
		zap.Int32("x", c.X), zap.Int32("z", c.Z), zap.String("layer", p.layer.String()))
}

// QueueLen returns the number of chunks still generating.
func (g *Generator) QueueLen() int { return len(g.queue) }

// Resolve feeds a spawn validation verdict back into the pipeline. Valid
// candidates become dynamic spawn requests; collision and out-of-bounds
// rejections are simply dropped (the placement grid said no, which is normal,
// not an error). Rate-limited verdicts mean the validator ran out of frame
// budget, so the candidate goes back out for another attempt.
func (g *Generator) Resolve(res event.SpawnValidationResult, em Emitter) {
	p, ok := g.byReqID[res.ID]
	delete(g.byReqID, res.ID)
	if !ok || g.index[p.coord] != p {
		return // chunk canceled while the verdict was in flight
	}
	p.outstanding--
	if !res.Valid {
		if res.Reason == event.ReasonRateLimited {
			g.emitCandidate(p, gen.Candidate{
				Pos: res.Pos, Kind: res.Kind, Radius: res.Radius,
			}, em)
		}
		return
	}
	p.spawned++
	em.Spawn(event.RequestDynamicSpawn{
		Pos:    res.Pos,
		Kind:   res.Kind,
		Radius: res.Radius,
		Coord:  p.coord,
		Seed:   mathx.Hash2(uint32(res.ID), p.coord.X, p.coord.Z),
	})
}

// Step runs generation until the budget elapses, the queue drains, or every
// remaining chunk is blocked on validation verdicts that arrive next tick.
// now is the timing-service time used for tracker bookkeeping.
func (g *Generator) Step(now float64, em Emitter) {
	deadline := time.Now().Add(g.budget)
	progress := true
	for progress && len(g.queue) > 0 {
		progress = false
		for i := 0; i < len(g.queue); {
			if time.Now().After(deadline) {
				return // BudgetExceeded: yield, resume next tick
			}
			p := g.queue[i]

			// Unload superseded the load: drop partial work.
			if g.tracker.State(p.coord) != world.ChunkLoading {
				g.Cancel(p.coord) // removes p from the queue
				continue
			}

			if g.advance(p, em) {
				progress = true
			}
			if p.layer >= gen.LayerCount {
				g.complete(p, now, em) // removes p from the queue
				continue
			}
			i++
		}
	}
}

// advance works the chunk's current layer. Returns false when the layer is
// blocked on outstanding verdicts.
func (g *Generator) advance(p *pendingChunk, em Emitter) bool {
	switch {
	case p.layer == gen.LayerTerrain:
		// Terrain is sampled lazily from the seed; nothing to materialize.
		p.layer++
		return true

	case p.layer == gen.LayerRoads:
		for i, path := range g.cg.RoadPaths(p.coord) {
			g.network.Add(p.coord, path.Type, path.Control)
			// One marker entity per road for LOD and unload bookkeeping.
			mid := path.Control[len(path.Control)/2]
			g.emitCandidate(p, gen.Candidate{
				Pos:    mid,
				Kind:   component.KindRoad,
				Radius: path.Type.Width(),
				Seed:   mathx.Hash3(0, p.coord.X, p.coord.Z, int32(i)),
			}, em)
		}
		g.markLayerFlag(p.coord, gen.LayerRoads)
		p.layer++
		return true

	default:
		if !p.fetched {
			p.candidates = g.cg.Candidates(p.coord, p.layer)
			p.cursor = 0
			p.fetched = true
		}
		for p.cursor < len(p.candidates) {
			g.emitCandidate(p, p.candidates[p.cursor], em)
			p.cursor++
		}
		if p.outstanding > 0 {
			return false // wait for verdicts before starting the next layer
		}
		g.markLayerFlag(p.coord, p.layer)
		p.layer++
		p.fetched = false
		p.candidates = nil
		return true
	}
}

func (g *Generator) emitCandidate(p *pendingChunk, c gen.Candidate, em Emitter) {
	g.nextID++
	g.byReqID[g.nextID] = p
	p.outstanding++
	em.Validation(event.RequestSpawnValidation{
		ID:     g.nextID,
		Pos:    c.Pos,
		Kind:   c.Kind,
		Radius: c.Radius,
	})
}

func (g *Generator) complete(p *pendingChunk, now float64, em Emitter) {
	delete(g.index, p.coord)
	for i, q := range g.queue {
		if q == p {
			g.queue = append(g.queue[:i], g.queue[i+1:]...)
			break
		}
	}
	g.tracker.MarkLoaded(p.coord, now)
	em.Finished(event.ChunkFinishedLoading{Coord: p.coord, LodLevel: component.LodHigh})
	em.Loaded(event.ChunkLoaded{Coord: p.coord, ContentCount: p.spawned})
	g.log.Debug("generator: chunk complete",
		zap.Int32("x", p.coord.X), zap.Int32("z", p.coord.Z), zap.Int("content", p.spawned))
}

func (g *Generator) markLayerFlag(c mathx.ChunkCoord, l gen.Layer) {
	d := g.tracker.Get(c)
	if d == nil {
		return
	}
	switch l {
	case gen.LayerRoads, gen.LayerIntersections:
		d.RoadsGenerated = true
	case gen.LayerBuildings:
		d.BuildingsGenerated = true
	case gen.LayerVegetation:
		d.VegetationGenerated = true
	case gen.LayerVehicles:
		d.VehiclesGenerated = true
	}
}
