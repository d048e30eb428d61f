package world

import (
	"testing"

	"github.com/driftcity/engine/internal/mathx"
)

func TestTrackerLifecycle(t *testing.T) {
	tr := NewChunkTracker()
	c := mathx.ChunkCoord{X: 1, Z: -2}

	if tr.State(c) != ChunkUnloaded {
		t.Fatalf("untracked coord should be Unloaded")
	}
	if !tr.BeginLoading(c, 1.0) {
		t.Fatalf("BeginLoading on fresh coord failed")
	}
	if tr.State(c) != ChunkLoading {
		t.Fatalf("state = %v, want Loading", tr.State(c))
	}
	tr.MarkLoaded(c, 2.0)
	if tr.State(c) != ChunkLoadedState {
		t.Fatalf("state = %v, want Loaded", tr.State(c))
	}
	if !tr.BeginUnloading(c, 3.0) {
		t.Fatalf("BeginUnloading on loaded coord failed")
	}
	tr.Release(c)
	if tr.State(c) != ChunkUnloaded {
		t.Fatalf("released coord should be Unloaded")
	}
}

func TestBeginLoadingDropsDuplicates(t *testing.T) {
	tr := NewChunkTracker()
	c := mathx.ChunkCoord{X: 0, Z: 0}
	if !tr.BeginLoading(c, 0) {
		t.Fatalf("first BeginLoading failed")
	}
	if tr.BeginLoading(c, 0) {
		t.Fatalf("duplicate load request accepted while Loading")
	}
	tr.MarkLoaded(c, 0)
	if tr.BeginLoading(c, 0) {
		t.Fatalf("duplicate load request accepted while Loaded")
	}
}

func TestBeginUnloadingRequiresTracked(t *testing.T) {
	tr := NewChunkTracker()
	if tr.BeginUnloading(mathx.ChunkCoord{X: 5, Z: 5}, 0) {
		t.Fatalf("BeginUnloading succeeded on untracked coord")
	}
}

func TestEntityOwnership(t *testing.T) {
	tr := NewChunkTracker()
	c := mathx.ChunkCoord{X: 0, Z: 0}
	tr.BeginLoading(c, 0)
	tr.AddEntity(c, 10)
	tr.AddEntity(c, 11)
	tr.RemoveEntity(c, 10)

	d := tr.Get(c)
	if len(d.Entities) != 1 || d.Entities[0] != 11 {
		t.Fatalf("entities = %v, want [11]", d.Entities)
	}
}

func TestLayerFlagsResetOnReload(t *testing.T) {
	tr := NewChunkTracker()
	c := mathx.ChunkCoord{X: 3, Z: 3}
	tr.BeginLoading(c, 0)
	tr.Get(c).RoadsGenerated = true
	tr.MarkLoaded(c, 0)
	tr.BeginUnloading(c, 0)
	tr.Release(c)

	tr.BeginLoading(c, 1)
	if tr.Get(c).RoadsGenerated {
		t.Fatalf("layer flag survived a reload cycle")
	}
}

func TestLoadedCount(t *testing.T) {
	tr := NewChunkTracker()
	a := mathx.ChunkCoord{X: 0, Z: 0}
	b := mathx.ChunkCoord{X: 1, Z: 0}
	tr.BeginLoading(a, 0)
	tr.BeginLoading(b, 0)
	tr.MarkLoaded(a, 0)
	if tr.LoadedCount() != 1 {
		t.Fatalf("LoadedCount = %d, want 1", tr.LoadedCount())
	}
	if tr.TrackedCount() != 2 {
		t.Fatalf("TrackedCount = %d, want 2", tr.TrackedCount())
	}
}
