package system

import (
	"time"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/core/ecs"
	coresys "github.com/driftcity/engine/internal/core/system"
	"go.uber.org/zap"
)

const timerCleanupClockID = "timer_cleanup"

// timerMaxAge is how long an entity timer may go untouched before the
// periodic sweep drops it.
const timerMaxAge float32 = 120

// CleanupSystem runs last: it cascades destruction down parent links, flushes
// the deferred entity destroy queue, and periodically sweeps stale per-entity
// timers out of the clock.
type CleanupSystem struct {
	deps *Deps
	log  *zap.Logger
}

func NewCleanupSystem(deps *Deps) *CleanupSystem {
	deps.Clock.RegisterSystem(timerCleanupClockID, 30)
	return &CleanupSystem{deps: deps, log: deps.Log.Named("cleanup")}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	d := s.deps
	s.cascadeDestruction()
	d.World.FlushDestroyQueue()
	if d.Clock.ShouldRunSystem(timerCleanupClockID) {
		if n := d.Clock.CleanupOldTimers(timerMaxAge); n > 0 {
			s.log.Debug("stale entity timers dropped", zap.Int("count", n))
		}
	}
}

// cascadeDestruction queues every child whose parent is dying, with the same
// bookkeeping a despawn gets. Loops until no new child joins the queue so a
// chain of links collapses in one flush.
func (s *CleanupSystem) cascadeDestruction() {
	d := s.deps
	for {
		added := 0
		d.Stores.Parents.Each(func(id ecs.EntityID, p *component.Parent) {
			if !d.World.Alive(id) || d.World.PendingDestruction(id) {
				return
			}
			if d.World.Alive(p.Entity) && !d.World.PendingDestruction(p.Entity) {
				return
			}
			if ref, ok := d.Stores.ChunkRefs.Get(id); ok {
				d.Grid.Remove(ref.GridPos, ref.Kind)
				d.Tracker.RemoveEntity(ref.Coord, id)
			}
			d.Dist.Forget(id)
			d.Clock.UnregisterEntity(id)
			d.World.MarkForDestruction(id)
			added++
		})
		if added == 0 {
			return
		}
	}
}
