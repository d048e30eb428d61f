package system

import (
	"testing"
	"time"

	"github.com/driftcity/engine/internal/core/event"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/world"
)

func TestSameFrameLoadUnloadEndsUnloaded(t *testing.T) {
	deps, _ := spawnHarness(t)
	cg := NewChunkGenSystem(deps)
	NewUnloadSystem(deps)

	c := mathx.ChunkCoord{X: 2, Z: 2}
	event.Emit(deps.Bus, event.RequestChunkLoad{Coord: c})
	event.Emit(deps.Bus, event.RequestChunkUnload{Coord: c})

	// two full frames: dispatch, then generator step
	for i := 0; i < 2; i++ {
		deliver(deps)
		deps.Clock.Tick(1.0 / 60)
		cg.Update(16 * time.Millisecond)
	}

	if st := deps.Tracker.State(c); st != world.ChunkUnloaded {
		t.Fatalf("chunk state = %v after same-frame load+unload, want unloaded", st)
	}
	if cg.QueueLen() != 0 {
		t.Fatalf("generator kept %d chunk(s) queued after cancel", cg.QueueLen())
	}
	if deps.World.EntityCount() != 0 {
		t.Fatalf("%d entities leaked from a canceled load", deps.World.EntityCount())
	}
}
