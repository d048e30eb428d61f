package world

import "github.com/driftcity/engine/internal/mathx"

// ChunkSize is frozen at 200 world units. Chunk coords, placement cells, save
// payloads, and every streaming test pin this value; changing it invalidates
// existing saves.
const ChunkSize float32 = 200.0

// PlacementCellSize subdivides a chunk 4×4 so a 3×3 cell neighbourhood scan
// covers the largest spawn exclusion radius.
const PlacementCellSize float32 = ChunkSize / 4

// ChunkAt converts a world position to its chunk coordinate.
func ChunkAt(pos mathx.Vec3) mathx.ChunkCoord {
	return mathx.ChunkAt(pos, ChunkSize)
}

// ChunkCenter returns the ground-level center of a chunk.
func ChunkCenter(c mathx.ChunkCoord) mathx.Vec3 {
	return c.Center(ChunkSize)
}

// ChunkBounds returns the chunk footprint spanning the world's vertical range.
func ChunkBounds(c mathx.ChunkCoord) mathx.AABB {
	return c.Bounds(ChunkSize, -1000, 4000)
}
