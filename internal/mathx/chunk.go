package mathx

// ChunkCoord identifies a square world region on the integer grid.
type ChunkCoord struct {
	X, Z int32
}

// ChunkAt converts a world position to its chunk coordinate for the given
// chunk size.
func ChunkAt(pos Vec3, size float32) ChunkCoord {
	return ChunkCoord{
		X: FloorDiv(pos.X, size),
		Z: FloorDiv(pos.Z, size),
	}
}

// Center returns the world-space center of the chunk at ground level.
func (c ChunkCoord) Center(size float32) Vec3 {
	return Vec3{
		X: float32(c.X)*size + size/2,
		Z: float32(c.Z)*size + size/2,
	}
}

// Bounds returns the chunk's footprint as an AABB spanning the full
// vertical range [minY, maxY].
func (c ChunkCoord) Bounds(size, minY, maxY float32) AABB {
	return AABB{
		Min: Vec3{X: float32(c.X) * size, Y: minY, Z: float32(c.Z) * size},
		Max: Vec3{X: float32(c.X+1) * size, Y: maxY, Z: float32(c.Z+1) * size},
	}
}
