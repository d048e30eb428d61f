package stream

import (
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/world"
)

// Streamer decides which chunks should be loaded around a center position.
// Load and unload radii differ (unload > load) so a chunk near the boundary
// does not thrash between states as the active entity wanders.
type Streamer struct {
	tracker      *world.ChunkTracker
	loadRadius   float32
	unloadRadius float32
}

func NewStreamer(tracker *world.ChunkTracker, loadRadius, unloadRadius float32) *Streamer {
	return &Streamer{
		tracker:      tracker,
		loadRadius:   loadRadius,
		unloadRadius: unloadRadius,
	}
}

// Plan computes the chunks to request loaded and unloaded for the given
// center. Loads are coords whose chunk center lies within loadRadius and
// which are currently untracked; unloads are tracked coords whose center
// drifted beyond unloadRadius.
func (s *Streamer) Plan(center mathx.Vec3) (loads, unloads []mathx.ChunkCoord) {
	cc := world.ChunkAt(center)
	span := int32(s.loadRadius/world.ChunkSize) + 1

	for dx := -span; dx <= span; dx++ {
		for dz := -span; dz <= span; dz++ {
			c := mathx.ChunkCoord{X: cc.X + dx, Z: cc.Z + dz}
			if world.ChunkCenter(c).DistXZ(center) > s.loadRadius {
				continue
			}
			if s.tracker.State(c) == world.ChunkUnloaded {
				loads = append(loads, c)
			}
		}
	}

	s.tracker.Each(func(d *world.ChunkData) {
		if d.State == world.ChunkUnloading {
			return
		}
		if world.ChunkCenter(d.Coord).DistXZ(center) > s.unloadRadius {
			unloads = append(unloads, d.Coord)
		}
	})
	return loads, unloads
}

// TargetSet returns the coords that should be loaded for a center position,
// regardless of current state. Tests pin streaming geometry through this.
func (s *Streamer) TargetSet(center mathx.Vec3) []mathx.ChunkCoord {
	cc := world.ChunkAt(center)
	span := int32(s.loadRadius/world.ChunkSize) + 1
	var out []mathx.ChunkCoord
	for dx := -span; dx <= span; dx++ {
		for dz := -span; dz <= span; dz++ {
			c := mathx.ChunkCoord{X: cc.X + dx, Z: cc.Z + dz}
			if world.ChunkCenter(c).DistXZ(center) <= s.loadRadius {
				out = append(out, c)
			}
		}
	}
	return out
}
