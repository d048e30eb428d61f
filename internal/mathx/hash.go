package mathx

// Stable integer hashing for seeded world generation. Content layers must
// regenerate identically for the same (seed, coord), so no use of math/rand
// state that walks between calls.

// Hash32 mixes a 32-bit input into a well-distributed 32-bit output
// (Murmur-finalizer style avalanching).
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// Hash2 returns a stable hash for 2D integer coordinates plus a seed.
func Hash2(seed uint32, x, z int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(z) * 0x85ebca6b
	return Hash32(h)
}

// Hash3 adds a third lane, used to derive independent streams per layer.
func Hash3(seed uint32, x, z, lane int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(z) * 0x85ebca6b
	h ^= uint32(lane) * 0xc2b2ae35
	return Hash32(h)
}

// Unit01 maps a hash to [0, 1).
func Unit01(h uint32) float32 {
	return float32(h>>8) / float32(1<<24)
}

// UnitRange maps a hash to [lo, hi).
func UnitRange(h uint32, lo, hi float32) float32 {
	return lo + Unit01(h)*(hi-lo)
}
