package system

import (
	"time"

	coresys "github.com/driftcity/engine/internal/core/system"
	"go.uber.org/zap"
)

const metricsClockID = "metrics"

// MetricsSystem logs a runtime health line at a fixed cadence: entity and
// chunk population, generator backlog, distance-cache hit rate, and the
// batcher's counters.
type MetricsSystem struct {
	deps  *Deps
	dirty *DirtySystem
	gen   *ChunkGenSystem
	log   *zap.Logger
}

func NewMetricsSystem(deps *Deps, dirty *DirtySystem, gen *ChunkGenSystem) *MetricsSystem {
	deps.Clock.RegisterSystem(metricsClockID, 10)
	return &MetricsSystem{deps: deps, dirty: dirty, gen: gen, log: deps.Log.Named("metrics")}
}

func (s *MetricsSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *MetricsSystem) Update(_ time.Duration) {
	d := s.deps
	if !d.Clock.ShouldRunSystem(metricsClockID) {
		return
	}
	hits, misses := d.Dist.Stats()
	m := s.dirty.Metrics()
	s.log.Info("runtime",
		zap.Int("entities", d.World.EntityCount()),
		zap.Int("chunks_loaded", d.Tracker.LoadedCount()),
		zap.Int("chunks_tracked", d.Tracker.TrackedCount()),
		zap.Int("gen_queue", s.gen.QueueLen()),
		zap.Int("roads", d.Network.Len()),
		zap.Int("placements", d.Grid.Len()),
		zap.Uint64("dist_hits", hits),
		zap.Uint64("dist_misses", misses),
		zap.Uint64("dirty_marked", m.MarkedTransform+m.MarkedVisibility+m.MarkedPhysics+m.MarkedLOD),
		zap.Uint64("dirty_deferred", m.Deferred),
		zap.Float64("batch_scale", m.BatchScale),
		zap.Float64("batch_avg_ms", m.AvgBatchMs),
		zap.Float64("batch_peak_ms", m.PeakBatchMs),
	)
}
