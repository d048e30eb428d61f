package gen

import (
	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/data"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/roads"
)

// Layer is one content category of a chunk. Generation is strictly ordered;
// a later layer starts only after every earlier layer in the same chunk
// completed.
type Layer uint8

const (
	LayerTerrain Layer = iota
	LayerRoads
	LayerIntersections
	LayerBuildings
	LayerVegetation
	LayerVehicles
	LayerNPCs

	LayerCount
)

func (l Layer) String() string {
	switch l {
	case LayerTerrain:
		return "terrain"
	case LayerRoads:
		return "roads"
	case LayerIntersections:
		return "intersections"
	case LayerBuildings:
		return "buildings"
	case LayerVegetation:
		return "vegetation"
	case LayerVehicles:
		return "vehicles"
	case LayerNPCs:
		return "npcs"
	}
	return "unknown"
}

// Hash lanes per layer keep the random streams independent.
const (
	laneRoads = int32(iota + 1)
	laneIntersections
	laneBuildings
	laneVegetation
	laneVehicles
	laneNPCs
)

// Candidate is one proposed spawn. The generator emits these for validation
// against the placement grid before anything is created.
type Candidate struct {
	Pos    mathx.Vec3
	Kind   component.ContentKind
	Radius float32
	Seed   uint32
}

// RoadPath is a proposed road centerline through a chunk.
type RoadPath struct {
	Type    roads.RoadType
	Control []mathx.Vec3
}

// ChunkGen produces deterministic per-layer candidates for chunks. All
// methods are pure functions of (seed, coord); the same chunk always
// regenerates the same content.
type ChunkGen struct {
	seed      uint32
	chunkSize float32
	terrain   *Terrain
	catalogs  *data.Catalogs
}

func NewChunkGen(seed uint32, chunkSize float32, terrain *Terrain, catalogs *data.Catalogs) *ChunkGen {
	return &ChunkGen{seed: seed, chunkSize: chunkSize, terrain: terrain, catalogs: catalogs}
}

// Terrain exposes the sampler for height lookups during spawning.
func (g *ChunkGen) Terrain() *Terrain { return g.terrain }

// RoadPaths proposes the road centerlines crossing a chunk. A chunk gets a
// north-south and/or east-west road depending on its seeded grid draw, with
// control points jittered so roads curve. Chunks mostly under water get none.
func (g *ChunkGen) RoadPaths(c mathx.ChunkCoord) []RoadPath {
	center := c.Center(g.chunkSize)
	if g.terrain.IsWater(center.X, center.Z) {
		return nil
	}

	var paths []RoadPath
	h := mathx.Hash3(g.seed, c.X, c.Z, laneRoads)

	// Highways follow every 4th grid line; side roads fill in between.
	if c.Z%4 == 0 {
		paths = append(paths, g.roadAcross(c, roads.RoadHighway, true, h))
	} else if h%3 == 0 {
		paths = append(paths, g.roadAcross(c, roads.RoadSide, true, h))
	}
	h2 := mathx.Hash32(h)
	if c.X%4 == 0 {
		paths = append(paths, g.roadAcross(c, roads.RoadMain, false, h2))
	} else if h2%3 == 0 {
		paths = append(paths, g.roadAcross(c, roads.RoadSide, false, h2))
	}
	return paths
}

// roadAcross builds a 5-point control polyline spanning the chunk either
// west→east (alongX) or south→north, with perpendicular jitter.
func (g *ChunkGen) roadAcross(c mathx.ChunkCoord, t roads.RoadType, alongX bool, h uint32) RoadPath {
	minX := float32(c.X) * g.chunkSize
	minZ := float32(c.Z) * g.chunkSize
	mid := g.chunkSize / 2

	control := make([]mathx.Vec3, 0, 5)
	for i := 0; i < 5; i++ {
		f := float32(i) / 4
		jitter := mathx.UnitRange(mathx.Hash3(h, int32(i), 0, 7), -0.15, 0.15) * g.chunkSize
		var x, z float32
		if alongX {
			x = minX + f*g.chunkSize
			z = minZ + mid + jitter
		} else {
			x = minX + mid + jitter
			z = minZ + f*g.chunkSize
		}
		control = append(control, mathx.V3(x, g.terrain.Height(x, z), z))
	}
	return RoadPath{Type: t, Control: control}
}

// Intersections proposes a crossing marker where both axis roads exist.
func (g *ChunkGen) Intersections(c mathx.ChunkCoord) []Candidate {
	paths := g.RoadPaths(c)
	if len(paths) < 2 {
		return nil
	}
	center := c.Center(g.chunkSize)
	center.Y = g.terrain.Height(center.X, center.Z)
	return []Candidate{{
		Pos:    center,
		Kind:   component.KindIntersection,
		Radius: 10,
		Seed:   mathx.Hash3(g.seed, c.X, c.Z, laneIntersections),
	}}
}

// Buildings proposes building lots on flat dry ground, denser near roads.
func (g *ChunkGen) Buildings(c mathx.ChunkCoord) []Candidate {
	base := mathx.Hash3(g.seed, c.X, c.Z, laneBuildings)
	hasRoads := len(g.RoadPaths(c)) > 0
	count := int(base % 4)
	if hasRoads {
		count += 3
	}

	var out []Candidate
	for i := 0; i < count; i++ {
		h := mathx.Hash3(base, int32(i), 0, 1)
		pos := g.scatter(c, h)
		if g.terrain.IsWater(pos.X, pos.Z) || g.terrain.Slope(pos.X, pos.Z) > 0.5 {
			continue
		}
		arch := g.catalogs.PickBuilding(h)
		kind := component.KindBuilding
		if arch.Landmark {
			kind = component.KindLandmark
		}
		pos.Y = g.terrain.Height(pos.X, pos.Z)
		out = append(out, Candidate{Pos: pos, Kind: kind, Radius: arch.Radius, Seed: h})
	}
	return out
}

// Vegetation scatters trees on dry ground away from the chunk's road strip.
func (g *ChunkGen) Vegetation(c mathx.ChunkCoord) []Candidate {
	base := mathx.Hash3(g.seed, c.X, c.Z, laneVegetation)
	count := 6 + int(base%10)

	var out []Candidate
	for i := 0; i < count; i++ {
		h := mathx.Hash3(base, int32(i), 0, 2)
		pos := g.scatter(c, h)
		if g.terrain.IsWater(pos.X, pos.Z) {
			continue
		}
		arch := g.catalogs.PickTree(h)
		pos.Y = g.terrain.Height(pos.X, pos.Z)
		out = append(out, Candidate{Pos: pos, Kind: component.KindTree, Radius: arch.Radius, Seed: h})
	}
	return out
}

// Vehicles proposes parked cars along the chunk's roads.
func (g *ChunkGen) Vehicles(c mathx.ChunkCoord) []Candidate {
	paths := g.RoadPaths(c)
	if len(paths) == 0 {
		return nil
	}
	base := mathx.Hash3(g.seed, c.X, c.Z, laneVehicles)
	count := 1 + int(base%3)

	var out []Candidate
	for i := 0; i < count; i++ {
		h := mathx.Hash3(base, int32(i), 0, 3)
		path := paths[int(h)%len(paths)]
		sp := roads.NewRoadSpline(0, path.Type, path.Control)
		t := mathx.Unit01(mathx.Hash32(h))
		pos := sp.Eval(t)
		// Offset to the curb.
		side := sp.Tangent(t).Cross(mathx.V3(0, 1, 0)).Scale(path.Type.Width() * 0.7)
		pos = pos.Add(side)
		out = append(out, Candidate{Pos: pos, Kind: component.KindVehicle, Radius: 2.5, Seed: h})
	}
	return out
}

// NPCs proposes pedestrians near the chunk center on dry land.
func (g *ChunkGen) NPCs(c mathx.ChunkCoord) []Candidate {
	base := mathx.Hash3(g.seed, c.X, c.Z, laneNPCs)
	count := int(base % 4)

	var out []Candidate
	for i := 0; i < count; i++ {
		h := mathx.Hash3(base, int32(i), 0, 4)
		pos := g.scatter(c, h)
		if g.terrain.IsWater(pos.X, pos.Z) {
			continue
		}
		pos.Y = g.terrain.Height(pos.X, pos.Z)
		out = append(out, Candidate{Pos: pos, Kind: component.KindNPC, Radius: 0.5, Seed: h})
	}
	return out
}

// Candidates returns the layer's proposals. Terrain is sampled lazily and
// has no spawned content, so it returns nil.
func (g *ChunkGen) Candidates(c mathx.ChunkCoord, l Layer) []Candidate {
	switch l {
	case LayerIntersections:
		return g.Intersections(c)
	case LayerBuildings:
		return g.Buildings(c)
	case LayerVegetation:
		return g.Vegetation(c)
	case LayerVehicles:
		return g.Vehicles(c)
	case LayerNPCs:
		return g.NPCs(c)
	}
	return nil
}

// scatter places a point uniformly inside the chunk from a hash.
func (g *ChunkGen) scatter(c mathx.ChunkCoord, h uint32) mathx.Vec3 {
	x := float32(c.X)*g.chunkSize + mathx.Unit01(h)*g.chunkSize
	z := float32(c.Z)*g.chunkSize + mathx.Unit01(mathx.Hash32(h^0xabcd))*g.chunkSize
	return mathx.V3(x, 0, z)
}
