package gen

import "github.com/driftcity/engine/internal/mathx"

// Terrain is sampled, never stored: height is a pure function of (seed, x, z)
// so chunks regenerate identically and seams never appear. Hash-based value
// noise with three octaves.
type Terrain struct {
	seed       uint32
	waterLevel float32
}

func NewTerrain(seed uint32, waterLevel float32) *Terrain {
	return &Terrain{seed: seed, waterLevel: waterLevel}
}

// Height returns the terrain height at a world position.
func (t *Terrain) Height(x, z float32) float32 {
	h := t.valueNoise(x/800, z/800) * 60
	h += t.valueNoise(x/200+37, z/200-11) * 18
	h += t.valueNoise(x/50-91, z/50+53) * 4
	return h - 20 // bias so lowlands sit below water level
}

// IsWater reports whether the terrain surface at (x, z) is below water.
func (t *Terrain) IsWater(x, z float32) bool {
	return t.Height(x, z) < t.waterLevel
}

// WaterLevel returns the global water plane height.
func (t *Terrain) WaterLevel() float32 { return t.waterLevel }

// Slope returns an approximate gradient magnitude, used to keep buildings
// off hillsides.
func (t *Terrain) Slope(x, z float32) float32 {
	const e = 2.0
	dx := t.Height(x+e, z) - t.Height(x-e, z)
	dz := t.Height(x, z+e) - t.Height(x, z-e)
	return mathx.V3(dx, 0, dz).Len() / (2 * e)
}

// valueNoise is bilinear-interpolated lattice noise in [-1, 1].
func (t *Terrain) valueNoise(x, z float32) float32 {
	ix := mathx.FloorDiv(x, 1)
	iz := mathx.FloorDiv(z, 1)
	fx := x - float32(ix)
	fz := z - float32(iz)
	// Smoothstep fade.
	fx = fx * fx * (3 - 2*fx)
	fz = fz * fz * (3 - 2*fz)

	c00 := t.lattice(ix, iz)
	c10 := t.lattice(ix+1, iz)
	c01 := t.lattice(ix, iz+1)
	c11 := t.lattice(ix+1, iz+1)

	top := c00 + (c10-c00)*fx
	bot := c01 + (c11-c01)*fx
	return top + (bot-top)*fz
}

func (t *Terrain) lattice(ix, iz int32) float32 {
	return mathx.Unit01(mathx.Hash2(t.seed, ix, iz))*2 - 1
}
