package stream

import (
	"testing"

	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/world"
)

func chunkSet(coords []mathx.ChunkCoord) map[mathx.ChunkCoord]bool {
	m := make(map[mathx.ChunkCoord]bool, len(coords))
	for _, c := range coords {
		m[c] = true
	}
	return m
}

func TestTargetSetAroundOrigin(t *testing.T) {
	s := NewStreamer(world.NewChunkTracker(), 300, 500)
	got := chunkSet(s.TargetSet(mathx.V3(0, 0, 0)))

	want := []mathx.ChunkCoord{
		{X: -1, Z: -1}, {X: -1, Z: 0}, {X: 0, Z: -1}, {X: 0, Z: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("target set has %d chunks, want %d: %v", len(got), len(want), got)
	}
	for _, c := range want {
		if !got[c] {
			t.Fatalf("target set missing %+v", c)
		}
	}
}

func TestPlanSkipsTrackedChunks(t *testing.T) {
	tr := world.NewChunkTracker()
	s := NewStreamer(tr, 300, 500)

	loads, _ := s.Plan(mathx.V3(0, 0, 0))
	if len(loads) != 4 {
		t.Fatalf("initial plan has %d loads, want 4", len(loads))
	}
	for _, c := range loads {
		tr.BeginLoading(c, 0)
	}
	loads, _ = s.Plan(mathx.V3(0, 0, 0))
	if len(loads) != 0 {
		t.Fatalf("second plan re-requested %d tracked chunks", len(loads))
	}
}

func TestPlanUnloadsBeyondUnloadRadiusOnly(t *testing.T) {
	tr := world.NewChunkTracker()
	s := NewStreamer(tr, 300, 500)

	near := mathx.ChunkCoord{X: 0, Z: 0}    // center (100,100), dist ~141
	mid := mathx.ChunkCoord{X: 2, Z: 0}     // center (500,100), dist ~510
	tr.BeginLoading(near, 0)
	tr.MarkLoaded(near, 0)
	tr.BeginLoading(mid, 0)
	tr.MarkLoaded(mid, 0)

	_, unloads := s.Plan(mathx.V3(0, 0, 0))
	got := chunkSet(unloads)
	if got[near] {
		t.Fatalf("chunk inside the unload radius was planned for unload")
	}
	if !got[mid] {
		t.Fatalf("chunk beyond the unload radius was not planned for unload")
	}
}

// A chunk between the load and unload radii must be neither loaded nor
// unloaded: that dead band is what stops boundary thrash.
func TestPlanHysteresisBand(t *testing.T) {
	tr := world.NewChunkTracker()
	s := NewStreamer(tr, 300, 500)

	band := mathx.ChunkCoord{X: 2, Z: 0} // center (500,100) from (100,100)
	center := mathx.V3(100, 0, 100)      // dist to band center = 400

	loads, _ := s.Plan(center)
	if chunkSet(loads)[band] {
		t.Fatalf("chunk at 400 units was loaded (load radius 300)")
	}

	tr.BeginLoading(band, 0)
	tr.MarkLoaded(band, 0)
	_, unloads := s.Plan(center)
	if chunkSet(unloads)[band] {
		t.Fatalf("chunk at 400 units was unloaded (unload radius 500)")
	}
}

func TestPlanSkipsUnloadingChunks(t *testing.T) {
	tr := world.NewChunkTracker()
	s := NewStreamer(tr, 300, 500)

	far := mathx.ChunkCoord{X: 10, Z: 10}
	tr.BeginLoading(far, 0)
	tr.MarkLoaded(far, 0)
	tr.BeginUnloading(far, 0)

	_, unloads := s.Plan(mathx.V3(0, 0, 0))
	if chunkSet(unloads)[far] {
		t.Fatalf("chunk already Unloading was planned for unload again")
	}
}
