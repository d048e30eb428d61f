package system

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/config"
	"github.com/driftcity/engine/internal/data"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/roads"
)

func TestAIDriverAdvancesByElapsedTime(t *testing.T) {
	d := NewDeps(config.Defaults(), data.DefaultVehicleTable(), data.DefaultCatalogs(), zap.NewNop())
	d.Network.Add(mathx.ChunkCoord{X: 0, Z: 0}, roads.RoadMain, []mathx.Vec3{
		mathx.V3(0, 0, 0), mathx.V3(0, 0, 130), mathx.V3(0, 0, 260), mathx.V3(0, 0, 390),
	})

	id := d.World.CreateEntity()
	d.Stores.Transforms.Set(id, &component.Transform{Pos: mathx.V3(2, 0, 100)})
	d.Stores.Velocities.Set(id, &component.Velocity{})
	d.Stores.Vehicles.Set(id, &component.VehicleState{
		Kind: component.VehicleCar, SpecName: "default_car", Fuel: 1,
	})
	d.Stores.Controls.Set(id, &component.ControlState{})
	ai := &component.AIDriver{Mode: component.AIIdle, Seed: 7, Forward: true}
	d.Stores.AIDrivers.Set(id, ai)
	d.Clock.RegisterEntity(id, "vehicle", 0.5)

	sys := NewAISystem(d)

	// first decision acquires the road
	d.Clock.Tick(0.5)
	sys.Update(16 * time.Millisecond)
	if ai.Mode != component.AIFollowRoad {
		t.Fatalf("driver did not acquire the road (mode %v)", ai.Mode)
	}
	start := ai.RoadDist

	// half a second at 10 u/s is 5 units of arc progress, not 10
	v, _ := d.Stores.Velocities.Get(id)
	v.Linear = mathx.V3(0, 0, 10)
	d.Clock.Tick(0.5)
	sys.Update(16 * time.Millisecond)

	got := ai.RoadDist - start
	if got < 0 {
		got = -got
	}
	if got < 4.9 || got > 5.1 {
		t.Fatalf("progress delta = %.2f over 0.5s at speed 10, want 5", got)
	}
}
