package world

import (
	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/mathx"
)

// PlacementGrid is a cell-based spatial index used to reject overlapping
// spawns and to answer "what content is near here". Cell size is a quarter
// chunk so a 3×3 neighbourhood scan covers every realistic exclusion radius.
// Accessed only from the game loop goroutine — no locks.

type placementCellKey struct {
	cx, cz int32
}

// PlacementRecord is one occupied spot in the grid.
type PlacementRecord struct {
	Pos    mathx.Vec3
	Kind   component.ContentKind
	Radius float32
}

type PlacementGrid struct {
	cells map[placementCellKey][]PlacementRecord
	count int
}

func NewPlacementGrid() *PlacementGrid {
	return &PlacementGrid{
		cells: make(map[placementCellKey][]PlacementRecord, 1024),
	}
}

func placementKey(pos mathx.Vec3) placementCellKey {
	return placementCellKey{
		cx: mathx.FloorDiv(pos.X, PlacementCellSize),
		cz: mathx.FloorDiv(pos.Z, PlacementCellSize),
	}
}

// CanPlace reports whether new content of the given radius fits at pos while
// keeping at least minDistance clear of every existing record's radius. Scans
// the 3×3 cell neighbourhood around pos.
func (g *PlacementGrid) CanPlace(pos mathx.Vec3, kind component.ContentKind, radius, minDistance float32) bool {
	k := placementKey(pos)
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			for _, r := range g.cells[placementCellKey{cx: k.cx + dx, cz: k.cz + dz}] {
				limit := minDistance + radius + r.Radius
				if pos.DistXZ(r.Pos) < limit {
					return false
				}
			}
		}
	}
	return true
}

// Insert records occupied space at pos.
func (g *PlacementGrid) Insert(pos mathx.Vec3, kind component.ContentKind, radius float32) {
	k := placementKey(pos)
	g.cells[k] = append(g.cells[k], PlacementRecord{Pos: pos, Kind: kind, Radius: radius})
	g.count++
}

// Remove deletes the record of the given kind whose position matches pos
// within one unit. Returns true if a record was removed.
func (g *PlacementGrid) Remove(pos mathx.Vec3, kind component.ContentKind) bool {
	k := placementKey(pos)
	recs := g.cells[k]
	for i, r := range recs {
		if r.Kind == kind && r.Pos.DistXZ(pos) <= 1.0 {
			recs[i] = recs[len(recs)-1]
			recs = recs[:len(recs)-1]
			if len(recs) == 0 {
				delete(g.cells, k)
			} else {
				g.cells[k] = recs
			}
			g.count--
			return true
		}
	}
	return false
}

// Move relocates the record of the given kind at oldPos to newPos, keeping
// its footprint. When no record matches oldPos a fresh one is inserted so the
// grid still reflects the entity's current position.
func (g *PlacementGrid) Move(oldPos, newPos mathx.Vec3, kind component.ContentKind, radius float32) {
	g.Remove(oldPos, kind)
	g.Insert(newPos, kind, radius)
}

// Nearby calls fn for every record within radius of pos. Scans only the
// cells the query circle can touch.
func (g *PlacementGrid) Nearby(pos mathx.Vec3, radius float32, fn func(PlacementRecord) bool) {
	span := mathx.FloorDiv(radius, PlacementCellSize) + 1
	k := placementKey(pos)
	for dx := -span; dx <= span; dx++ {
		for dz := -span; dz <= span; dz++ {
			for _, r := range g.cells[placementCellKey{cx: k.cx + dx, cz: k.cz + dz}] {
				if pos.DistXZ(r.Pos) <= radius {
					if !fn(r) {
						return
					}
				}
			}
		}
	}
}

// CountInBounds returns how many records fall inside the box footprint.
// Unload verification uses this to assert a chunk left nothing behind.
func (g *PlacementGrid) CountInBounds(b mathx.AABB) int {
	n := 0
	for _, recs := range g.cells {
		for _, r := range recs {
			if r.Pos.X >= b.Min.X && r.Pos.X < b.Max.X &&
				r.Pos.Z >= b.Min.Z && r.Pos.Z < b.Max.Z {
				n++
			}
		}
	}
	return n
}

// Len returns the total record count.
func (g *PlacementGrid) Len() int { return g.count }
