package system

import (
	"sort"
	"time"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/core/ecs"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/world"
)

// adaptWindow is how often the batcher re-tunes its batch sizes.
const adaptWindow = 5 * time.Second

// batchScale bounds for the adaptive controller.
const (
	minBatchScale = 0.25
	maxBatchScale = 2.0
)

// DirtyMetrics is a snapshot of the batcher's counters for the metrics dump.
// Marked counts come from the Deps mark helpers; Avg/PeakBatchMs cover the
// last completed adapt window.
type DirtyMetrics struct {
	MarkedTransform  uint64
	MarkedVisibility uint64
	MarkedPhysics    uint64
	MarkedLOD        uint64

	ProcessedTransform  uint64
	ProcessedVisibility uint64
	ProcessedPhysics    uint64
	ProcessedLOD        uint64

	Deferred    uint64
	BatchScale  float64
	AvgBatchMs  float64
	PeakBatchMs float64
}

// dirtyEntry is one flagged entity pulled out of a marker store for sorting.
type dirtyEntry struct {
	id    ecs.EntityID
	prio  component.Priority
	frame uint64
}

// DirtySystem drains the four dirty-marker stores each tick: highest
// priority first, oldest first within a priority, at most one batch per
// store, all under a single wall-clock budget. Entities that miss the cut
// keep their markers and age into higher effective priority.
type DirtySystem struct {
	deps *Deps

	scale      float64
	sinceAdapt time.Duration
	frames     int
	processed  uint64
	busy       time.Duration // batcher wall time this adapt window
	peakBusy   time.Duration

	metrics DirtyMetrics

	// reused scratch to keep steady-state allocation flat
	ids     []ecs.EntityID
	entries []dirtyEntry
}

func NewDirtySystem(deps *Deps) *DirtySystem {
	return &DirtySystem{deps: deps, scale: 1}
}

func (s *DirtySystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DirtySystem) Metrics() DirtyMetrics {
	m := s.metrics
	m.MarkedTransform = s.deps.Marks.Transform
	m.MarkedVisibility = s.deps.Marks.Visibility
	m.MarkedPhysics = s.deps.Marks.Physics
	m.MarkedLOD = s.deps.Marks.LOD
	m.BatchScale = s.scale
	return m
}

func (s *DirtySystem) Update(dt time.Duration) {
	d := s.deps
	start := time.Now()
	deadline := start.Add(time.Duration(d.Cfg.Budget.MaxProcessingTimeMs * float64(time.Millisecond)))

	n := s.drainTransforms(s.batch(d.Cfg.Budget.TransformBatchSize), deadline)
	s.metrics.ProcessedTransform += uint64(n)
	s.processed += uint64(n)

	n = s.drainVisibility(s.batch(d.Cfg.Budget.VisibilityBatchSize), deadline)
	s.metrics.ProcessedVisibility += uint64(n)
	s.processed += uint64(n)

	n = s.drainPhysics(s.batch(d.Cfg.Budget.PhysicsBatchSize), deadline)
	s.metrics.ProcessedPhysics += uint64(n)
	s.processed += uint64(n)

	n = s.drainLOD(s.batch(d.Cfg.Budget.LodBatchSize), deadline)
	s.metrics.ProcessedLOD += uint64(n)
	s.processed += uint64(n)

	s.metrics.Deferred = uint64(d.Stores.DirtyTransforms.Len() +
		d.Stores.DirtyVisibilities.Len() +
		d.Stores.DirtyPhysicsSet.Len() +
		d.Stores.DirtyLODs.Len())

	elapsed := time.Since(start)
	s.busy += elapsed
	if elapsed > s.peakBusy {
		s.peakBusy = elapsed
	}

	s.adapt(dt)
}

func (s *DirtySystem) batch(base int) int {
	n := int(float64(base) * s.scale)
	if n < 1 {
		n = 1
	}
	return n
}

// adapt re-tunes the batch scale once per window: shrink when the frame rate
// sags below target, grow when there is headroom, and nudge by throughput
// measured as entities per millisecond of batcher wall time.
func (s *DirtySystem) adapt(dt time.Duration) {
	s.sinceAdapt += dt
	s.frames++
	if s.sinceAdapt < adaptWindow {
		return
	}
	fps := float64(s.frames) / s.sinceAdapt.Seconds()
	target := s.deps.Cfg.Budget.TargetFPS
	switch {
	case fps < target*0.9:
		s.scale *= 0.85
	case fps > target*1.1:
		s.scale *= 1.15
	}
	busyMs := s.busy.Seconds() * 1000
	if busyMs > 0 && s.processed > 0 {
		perMs := float64(s.processed) / busyMs
		switch {
		case perMs < 10:
			s.scale *= 0.9
		case perMs > 50:
			s.scale *= 1.1
		}
	}
	if s.scale < minBatchScale {
		s.scale = minBatchScale
	}
	if s.scale > maxBatchScale {
		s.scale = maxBatchScale
	}
	s.metrics.AvgBatchMs = busyMs / float64(s.frames)
	s.metrics.PeakBatchMs = s.peakBusy.Seconds() * 1000
	s.sinceAdapt = 0
	s.frames = 0
	s.processed = 0
	s.busy = 0
	s.peakBusy = 0
}

// collect snapshots a marker store into the sorted scratch slice. Markers
// older than PriorityBoostFrames count one priority higher so starvation
// resolves itself.
func collect[T any](s *DirtySystem, store *ecs.PtrComponentStore[T], prio func(*T) component.Priority, frame func(*T) uint64) []dirtyEntry {
	boost := s.deps.Cfg.Budget.PriorityBoostFrames
	now := s.deps.Clock.Frame()
	s.ids = store.IDs(s.ids[:0])
	s.entries = s.entries[:0]
	for _, id := range s.ids {
		m, ok := store.Get(id)
		if !ok {
			continue
		}
		p := prio(m)
		f := frame(m)
		if boost > 0 && now-f >= boost && p < component.PriorityCritical {
			p++
		}
		s.entries = append(s.entries, dirtyEntry{id: id, prio: p, frame: f})
	}
	sort.Slice(s.entries, func(i, j int) bool {
		if s.entries[i].prio != s.entries[j].prio {
			return s.entries[i].prio > s.entries[j].prio
		}
		return s.entries[i].frame < s.entries[j].frame
	})
	return s.entries
}

func (s *DirtySystem) drainTransforms(limit int, deadline time.Time) int {
	d := s.deps
	entries := collect(s, d.Stores.DirtyTransforms,
		func(m *component.DirtyTransform) component.Priority { return m.Priority },
		func(m *component.DirtyTransform) uint64 { return m.FrameMarked })
	n := 0
	for _, e := range entries {
		if n >= limit || time.Now().After(deadline) {
			break
		}
		s.commitTransform(e.id)
		d.Stores.DirtyTransforms.Remove(e.id)
		n++
	}
	return n
}

// commitTransform re-homes a moved entity: distance cache epoch, placement
// record, and chunk ownership when it crossed a chunk boundary.
func (s *DirtySystem) commitTransform(id ecs.EntityID) {
	d := s.deps
	t, ok := d.Stores.Transforms.Get(id)
	if !ok {
		return
	}
	d.Dist.MarkMoved(id)
	ref, ok := d.Stores.ChunkRefs.Get(id)
	if !ok {
		return
	}
	if t.Pos != ref.GridPos {
		d.Grid.Move(ref.GridPos, t.Pos, ref.Kind, ref.GridRadius)
		ref.GridPos = t.Pos
	}
	c := world.ChunkAt(t.Pos)
	if c == ref.Coord {
		return
	}
	d.Tracker.RemoveEntity(ref.Coord, id)
	d.Tracker.AddEntity(c, id)
	ref.Coord = c
}

func (s *DirtySystem) drainVisibility(limit int, deadline time.Time) int {
	d := s.deps
	entries := collect(s, d.Stores.DirtyVisibilities,
		func(m *component.DirtyVisibility) component.Priority { return m.Priority },
		func(m *component.DirtyVisibility) uint64 { return m.FrameMarked })
	n := 0
	for _, e := range entries {
		if n >= limit || time.Now().After(deadline) {
			break
		}
		if m, ok := d.Stores.DirtyVisibilities.Get(e.id); ok {
			if c, cok := d.Stores.Cullables.Get(e.id); cok {
				c.Visible = m.Visible
				c.Culled = !m.Visible
			}
		}
		d.Stores.DirtyVisibilities.Remove(e.id)
		n++
	}
	return n
}

func (s *DirtySystem) drainPhysics(limit int, deadline time.Time) int {
	d := s.deps
	entries := collect(s, d.Stores.DirtyPhysicsSet,
		func(m *component.DirtyPhysics) component.Priority { return m.Priority },
		func(m *component.DirtyPhysics) uint64 { return m.FrameMarked })
	n := 0
	for _, e := range entries {
		if n >= limit || time.Now().After(deadline) {
			break
		}
		if b, ok := d.Stores.Bodies.Get(e.id); ok {
			if c, cok := d.Stores.Cullables.Get(e.id); cok {
				b.Sleeping = c.Culled || c.Level == component.LodSleep
			}
		}
		d.Stores.DirtyPhysicsSet.Remove(e.id)
		n++
	}
	return n
}

func (s *DirtySystem) drainLOD(limit int, deadline time.Time) int {
	d := s.deps
	entries := collect(s, d.Stores.DirtyLODs,
		func(m *component.DirtyLOD) component.Priority { return m.Priority },
		func(m *component.DirtyLOD) uint64 { return m.FrameMarked })
	n := 0
	for _, e := range entries {
		if n >= limit || time.Now().After(deadline) {
			break
		}
		if m, ok := d.Stores.DirtyLODs.Get(e.id); ok {
			if c, cok := d.Stores.Cullables.Get(e.id); cok {
				c.Level = m.Level
				c.VegDetail = m.VegDetail
			}
			// entering or leaving Sleep changes what the physics
			// step should simulate
			d.MarkPhysicsDirty(e.id, m.Priority)
		}
		d.Stores.DirtyLODs.Remove(e.id)
		n++
	}
	return n
}
