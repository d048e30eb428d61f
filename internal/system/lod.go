package system

import (
	"time"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/config"
	"github.com/driftcity/engine/internal/core/ecs"
	coresys "github.com/driftcity/engine/internal/core/system"
)

const lodClockID = "lod"

// LodSystem recomputes the LOD band and cull state of every cullable from
// its distance to the active entity. It never writes the cullable itself;
// band and visibility changes become dirty flags the batch processor commits
// under its own budget.
type LodSystem struct {
	deps *Deps
}

func NewLodSystem(deps *Deps) *LodSystem {
	deps.Clock.RegisterSystem(lodClockID, deps.Cfg.Lod.UpdateInterval)
	return &LodSystem{deps: deps}
}

func (s *LodSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *LodSystem) Update(_ time.Duration) {
	d := s.deps
	if !d.Clock.ShouldRunSystem(lodClockID) {
		return
	}
	active, ok := d.Active.Get()
	if !ok {
		return
	}
	ref, ok := d.Stores.Transforms.Get(active)
	if !ok {
		return
	}
	d.Dist.SetReference(ref.Pos)
	now := d.Clock.Now()

	d.Stores.Cullables.Each(func(id ecs.EntityID, c *component.UnifiedCullable) {
		if id == active || d.World.PendingDestruction(id) {
			return
		}
		t, ok := d.Stores.Transforms.Get(id)
		if !ok {
			return
		}
		dist := d.Dist.DistanceTo(id, t.Pos)
		th := kindThresholds(&d.Cfg.Lod, c.Kind)

		cur := int(c.Level)
		if c.Culled {
			cur = 4
		}
		tgt := targetBand(dist, th)
		tgt = applyHysteresis(cur, tgt, dist, th, c.HysteresisMargin)

		visible := tgt < 4
		level := component.LodLevel(tgt)
		if !visible {
			level = component.LodSleep
		}

		if visible != c.Visible || c.Culled == visible {
			prio := component.PriorityMedium
			if visible {
				// Popping in is the visually urgent direction.
				prio = component.PriorityCritical
			}
			d.MarkVisibilityDirty(id, prio, visible)
		}
		if level != c.Level {
			veg := component.VegetationDetail(tgt)
			if !visible {
				veg = component.VegCulled
			}
			d.MarkLODDirty(id, bandPriority(dist, th), level, veg)
		}
		if v, ok := d.Stores.Vehicles.Get(id); ok {
			v.LastLodCheck = now
		}
	})
}

// targetBand maps a raw distance to band 0..3, or 4 for fully culled.
func targetBand(dist float32, th config.LodThresholds) int {
	switch {
	case dist < th.H0:
		return 0
	case dist < th.H1:
		return 1
	case dist < th.H2:
		return 2
	case dist < th.H3:
		return 3
	}
	return 4
}

// applyHysteresis suppresses a single-band change until the distance clears
// the shared edge by the margin. Multi-band jumps (teleports, reference
// swaps) pass through unmodified.
func applyHysteresis(cur, tgt int, dist float32, th config.LodThresholds, margin float32) int {
	if tgt == cur || tgt < cur-1 || tgt > cur+1 {
		return tgt
	}
	edges := [4]float32{th.H0, th.H1, th.H2, th.H3}
	if tgt == cur+1 {
		// coarser: must exceed the upper edge of the current band
		if dist <= edges[cur]*(1+margin) {
			return cur
		}
		return tgt
	}
	// finer: must drop below the upper edge of the target band
	if dist >= edges[tgt]*(1-margin) {
		return cur
	}
	return tgt
}

// bandPriority makes nearby LOD corrections jump the batch queue.
func bandPriority(dist float32, th config.LodThresholds) component.Priority {
	switch {
	case dist < th.H0:
		return component.PriorityHigh
	case dist < th.H1:
		return component.PriorityMedium
	}
	return component.PriorityLow
}
