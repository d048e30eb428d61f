package roads

import "github.com/driftcity/engine/internal/mathx"

// Network is the global registry of road splines, bucketed by chunk so
// unloads can drop a chunk's roads in one call. AI drivers hold spline IDs
// and look them up here each decision.
type Network struct {
	splines map[uint32]*RoadSpline
	byChunk map[mathx.ChunkCoord][]uint32
	nextID  uint32
}

func NewNetwork() *Network {
	return &Network{
		splines: make(map[uint32]*RoadSpline, 256),
		byChunk: make(map[mathx.ChunkCoord][]uint32, 64),
	}
}

// Add registers a spline under the owning chunk and returns its ID.
func (n *Network) Add(c mathx.ChunkCoord, t RoadType, control []mathx.Vec3) uint32 {
	n.nextID++
	id := n.nextID
	n.splines[id] = NewRoadSpline(id, t, control)
	n.byChunk[c] = append(n.byChunk[c], id)
	return id
}

// Get returns the spline, or nil if its chunk has unloaded.
func (n *Network) Get(id uint32) *RoadSpline {
	return n.splines[id]
}

// InChunk returns the spline IDs owned by a chunk.
func (n *Network) InChunk(c mathx.ChunkCoord) []uint32 {
	return n.byChunk[c]
}

// DropChunk removes every spline the chunk owns.
func (n *Network) DropChunk(c mathx.ChunkCoord) {
	for _, id := range n.byChunk[c] {
		delete(n.splines, id)
	}
	delete(n.byChunk, c)
}

// Nearest returns the spline whose sampled centerline comes closest to pos,
// along with the arc distance of the closest sample. Scans only splines in
// the 3×3 chunk neighbourhood; ok is false when none are loaded nearby.
func (n *Network) Nearest(pos mathx.Vec3, chunkSize float32) (id uint32, dist float32, ok bool) {
	c := mathx.ChunkAt(pos, chunkSize)
	best := float32(0)
	bestD := float32(0)
	var bestID uint32
	found := false
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			for _, sid := range n.byChunk[mathx.ChunkCoord{X: c.X + dx, Z: c.Z + dz}] {
				s := n.splines[sid]
				for i := 0; i <= arcSamples; i++ {
					t := float32(i) / arcSamples
					d := s.Eval(t).DistXZ(pos)
					if !found || d < best {
						found = true
						best = d
						bestID = sid
						bestD = s.samples[i]
					}
				}
			}
		}
	}
	return bestID, bestD, found
}

// Len returns the number of live splines.
func (n *Network) Len() int { return len(n.splines) }
