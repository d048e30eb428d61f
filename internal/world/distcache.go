package world

import (
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/mathx"
)

// DistanceCache answers "how far is this entity from the active entity" in
// O(1) per query. Distances are cached against a (reference epoch, entity
// epoch) pair: moving the reference beyond RefreshRadius bumps the reference
// epoch and invalidates everything; an entity transform change bumps only
// that entity's epoch.
type DistanceCache struct {
	ref      mathx.Vec3
	anchor   mathx.Vec3 // reference position at the last epoch bump
	hasRef   bool
	refEpoch uint32

	refreshRadius float32

	entries map[ecs.EntityID]distEntry
	epochs  map[ecs.EntityID]uint32

	hits   uint64
	misses uint64
}

type distEntry struct {
	dist     float32
	refEpoch uint32
	entEpoch uint32
}

func NewDistanceCache(refreshRadius float32) *DistanceCache {
	return &DistanceCache{
		refreshRadius: refreshRadius,
		entries:       make(map[ecs.EntityID]distEntry, 4096),
		epochs:        make(map[ecs.EntityID]uint32, 1024),
	}
}

// SetReference updates the reference position. The cache survives small
// reference moves; once the cumulative drift from the last anchor exceeds
// refreshRadius every entry goes stale at once. Drift is measured against
// the anchor, not the previous position, so a slow steady crawl still
// invalidates instead of dragging the baseline along.
func (d *DistanceCache) SetReference(pos mathx.Vec3) {
	d.ref = pos
	if d.hasRef && d.anchor.DistXZ(pos) <= d.refreshRadius {
		return
	}
	d.anchor = pos
	d.hasRef = true
	d.refEpoch++
}

// HasReference reports whether a reference position has been set this
// session. Without one, LOD and streaming are no-ops.
func (d *DistanceCache) HasReference() bool { return d.hasRef }

// Reference returns the current reference position.
func (d *DistanceCache) Reference() mathx.Vec3 { return d.ref }

// MarkMoved invalidates one entity's cached distance.
func (d *DistanceCache) MarkMoved(id ecs.EntityID) {
	d.epochs[id]++
}

// DistanceTo returns the horizontal distance from the reference to the
// entity, cached when neither end has moved since the last query.
func (d *DistanceCache) DistanceTo(id ecs.EntityID, pos mathx.Vec3) float32 {
	entEpoch := d.epochs[id]
	if e, ok := d.entries[id]; ok && e.refEpoch == d.refEpoch && e.entEpoch == entEpoch {
		d.hits++
		return e.dist
	}
	dist := d.ref.DistXZ(pos)
	d.entries[id] = distEntry{dist: dist, refEpoch: d.refEpoch, entEpoch: entEpoch}
	d.misses++
	return dist
}

// Forget drops all state for an entity. Called on despawn.
func (d *DistanceCache) Forget(id ecs.EntityID) {
	delete(d.entries, id)
	delete(d.epochs, id)
}

// Stats returns cache hit/miss counters for the metrics dump.
func (d *DistanceCache) Stats() (hits, misses uint64) {
	return d.hits, d.misses
}

// Len returns the number of cached entries.
func (d *DistanceCache) Len() int { return len(d.entries) }
