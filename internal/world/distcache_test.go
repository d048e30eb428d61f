package world

import (
	"testing"

	"github.com/driftcity/engine/internal/mathx"
)

func TestDistanceCacheHitsUntilInvalidated(t *testing.T) {
	c := NewDistanceCache(10)
	c.SetReference(mathx.V3(0, 0, 0))

	pos := mathx.V3(30, 0, 40)
	if got := c.DistanceTo(1, pos); got != 50 {
		t.Fatalf("DistanceTo = %v, want 50", got)
	}
	c.DistanceTo(1, pos)
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Fatalf("hits=%d misses=%d, want 1/1", hits, misses)
	}
}

func TestDistanceCacheInvalidatesOnEntityMove(t *testing.T) {
	c := NewDistanceCache(10)
	c.SetReference(mathx.V3(0, 0, 0))
	c.DistanceTo(1, mathx.V3(10, 0, 0))

	c.MarkMoved(1)
	if got := c.DistanceTo(1, mathx.V3(20, 0, 0)); got != 20 {
		t.Fatalf("stale distance after MarkMoved: %v", got)
	}
}

func TestDistanceCacheInvalidatesOnReferenceJump(t *testing.T) {
	c := NewDistanceCache(10)
	c.SetReference(mathx.V3(0, 0, 0))
	c.DistanceTo(1, mathx.V3(100, 0, 0))

	// far beyond the refresh radius: every cached distance is stale
	c.SetReference(mathx.V3(500, 0, 0))
	if got := c.DistanceTo(1, mathx.V3(100, 0, 0)); got != 400 {
		t.Fatalf("stale distance after reference jump: %v", got)
	}
}

func TestDistanceCacheIgnoresSmallReferenceJitter(t *testing.T) {
	c := NewDistanceCache(10)
	c.SetReference(mathx.V3(0, 0, 0))
	c.DistanceTo(1, mathx.V3(100, 0, 0))

	// within the refresh radius: cached values stay valid
	c.SetReference(mathx.V3(1, 0, 0))
	c.DistanceTo(1, mathx.V3(100, 0, 0))
	hits, _ := c.Stats()
	if hits != 1 {
		t.Fatalf("jitter within refresh radius invalidated the cache (hits=%d)", hits)
	}
}

func TestDistanceCacheInvalidatesUnderSlowCreep(t *testing.T) {
	c := NewDistanceCache(10)
	c.SetReference(mathx.V3(0, 0, 0))
	c.DistanceTo(1, mathx.V3(1000, 0, 0))

	// each step stays under the refresh radius, but the cumulative drift
	// must still invalidate once it clears the anchor
	for x := float32(9); x <= 900; x += 9 {
		c.SetReference(mathx.V3(x, 0, 0))
	}
	if got := c.DistanceTo(1, mathx.V3(1000, 0, 0)); got != 100 {
		t.Fatalf("stale distance after creeping reference: %v, want 100", got)
	}
}

func TestDistanceCacheForget(t *testing.T) {
	c := NewDistanceCache(10)
	c.SetReference(mathx.V3(0, 0, 0))
	c.DistanceTo(7, mathx.V3(10, 0, 0))
	c.Forget(7)
	if c.Len() != 0 {
		t.Fatalf("Len = %d after Forget, want 0", c.Len())
	}
}
