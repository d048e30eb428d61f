package system

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/config"
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/data"
	"github.com/driftcity/engine/internal/mathx"
)

const tick = time.Second / 60

func vehicleHarness(t *testing.T) *Deps {
	t.Helper()
	return NewDeps(config.Defaults(), data.DefaultVehicleTable(), data.DefaultCatalogs(), zap.NewNop())
}

func spawnTestVehicle(d *Deps, kind component.VehicleKind, spec string, pos mathx.Vec3) ecs.EntityID {
	id := d.World.CreateEntity()
	d.Stores.Transforms.Set(id, &component.Transform{Pos: pos})
	d.Stores.Velocities.Set(id, &component.Velocity{})
	d.Stores.Vehicles.Set(id, &component.VehicleState{Kind: kind, SpecName: spec, Fuel: 1})
	d.Stores.Controls.Set(id, &component.ControlState{})
	return id
}

func spawnTestCar(d *Deps) ecs.EntityID {
	floor := d.Terrain.Height(0, 0)
	return spawnTestVehicle(d, component.VehicleCar, "default_car", mathx.V3(0, floor, 0))
}

func runCar(d *Deps, ticks int, drive func(*component.ControlState, int)) {
	car := NewCarSystem(d)
	integ := NewIntegrateSystem(d)
	ids := []ecs.EntityID{}
	d.Stores.Controls.Each(func(id ecs.EntityID, _ *component.ControlState) {
		ids = append(ids, id)
	})
	for i := 0; i < ticks; i++ {
		for _, id := range ids {
			c, _ := d.Stores.Controls.Get(id)
			drive(c, i)
		}
		d.Clock.Tick(float32(tick.Seconds()))
		car.Update(tick)
		integ.Update(tick)
	}
}

func horizontalSpeed(d *Deps, id ecs.EntityID) float32 {
	v, _ := d.Stores.Velocities.Get(id)
	h := v.Linear
	h.Y = 0
	return h.Len()
}

func TestCarAcceleratesUnderSpeedCap(t *testing.T) {
	d := vehicleHarness(t)
	id := spawnTestCar(d)
	spec, _ := d.Vehicles.Get("default_car")

	maxSeen := float32(0)
	car := NewCarSystem(d)
	integ := NewIntegrateSystem(d)
	c, _ := d.Stores.Controls.Get(id)
	c.Throttle = 1
	for i := 0; i < 600; i++ {
		d.Clock.Tick(float32(tick.Seconds()))
		car.Update(tick)
		integ.Update(tick)
		if s := horizontalSpeed(d, id); s > maxSeen {
			maxSeen = s
		}
	}

	if maxSeen < 10 {
		t.Fatalf("car barely moved: top speed %.2f", maxSeen)
	}
	if maxSeen > spec.MaxSpeed*1.001 {
		t.Fatalf("speed cap violated: %.2f > %.2f", maxSeen, spec.MaxSpeed)
	}
	tr, _ := d.Stores.Transforms.Get(id)
	if tr.Pos.Z <= 1 {
		t.Fatalf("car did not advance along its facing: z=%.2f", tr.Pos.Z)
	}
}

func TestCarRunsAreDeterministic(t *testing.T) {
	run := func() (mathx.Vec3, mathx.Vec3) {
		d := vehicleHarness(t)
		id := spawnTestCar(d)
		runCar(d, 300, func(c *component.ControlState, i int) {
			c.Throttle = 1
			c.Steering = float32(math.Sin(float64(i) * 0.05))
		})
		tr, _ := d.Stores.Transforms.Get(id)
		v, _ := d.Stores.Velocities.Get(id)
		return tr.Pos, v.Linear
	}

	p1, v1 := run()
	p2, v2 := run()
	if p1 != p2 || v1 != v2 {
		t.Fatalf("identical runs diverged: pos %v vs %v, vel %v vs %v", p1, p2, v1, v2)
	}
}

func TestCarBrakesToStop(t *testing.T) {
	d := vehicleHarness(t)
	id := spawnTestCar(d)
	runCar(d, 300, func(c *component.ControlState, _ int) { c.Throttle = 1 })
	if horizontalSpeed(d, id) < 5 {
		t.Fatal("car never got up to speed")
	}
	runCar(d, 300, func(c *component.ControlState, _ int) {
		c.Throttle = 0
		c.Brake = 1
	})
	if s := horizontalSpeed(d, id); s > 0.5 {
		t.Fatalf("car still moving at %.2f after 5s of full brake", s)
	}
}

func TestCarSteeringTurnsHeading(t *testing.T) {
	d := vehicleHarness(t)
	id := spawnTestCar(d)
	runCar(d, 120, func(c *component.ControlState, _ int) {
		c.Throttle = 0.5
		c.Steering = 1
	})
	tr, _ := d.Stores.Transforms.Get(id)
	if tr.Yaw <= 0.1 {
		t.Fatalf("steering had no effect on heading: yaw=%.3f", tr.Yaw)
	}
}

func TestIntegratorClampsTurnRate(t *testing.T) {
	d := vehicleHarness(t)
	id := spawnTestCar(d)
	v, _ := d.Stores.Velocities.Get(id)
	v.Angular.Y = 100 // far past any legal steering output

	integ := NewIntegrateSystem(d)
	integ.Update(tick)

	spec, _ := d.Vehicles.Get("default_car")
	limit := spec.SteerRate * d.Cfg.Physics.VelocityClampFactor
	if v.Angular.Y > limit*1.0001 {
		t.Fatalf("turn rate %.2f survived the %.2f ceiling", v.Angular.Y, limit)
	}
	tr, _ := d.Stores.Transforms.Get(id)
	if tr.Yaw <= 0 {
		t.Fatal("angular velocity did not integrate into heading")
	}
}

func TestHandbrakeSlidesWhereGripHolds(t *testing.T) {
	lateral := func(handbrake bool) float32 {
		d := vehicleHarness(t)
		id := spawnTestCar(d)
		runCar(d, 300, func(c *component.ControlState, _ int) { c.Throttle = 1 })
		runCar(d, 30, func(c *component.ControlState, _ int) {
			c.Throttle = 1
			c.Steering = 1
			if handbrake {
				c.Buttons = component.BtnHandbrake
			}
		})
		tr, _ := d.Stores.Transforms.Get(id)
		v, _ := d.Stores.Velocities.Get(id)
		fwd := tr.Forward()
		lat := v.Linear.Sub(fwd.Scale(v.Linear.Dot(fwd)))
		lat.Y = 0
		return lat.Len()
	}

	gripped := lateral(false)
	sliding := lateral(true)
	if sliding <= gripped {
		t.Fatalf("handbrake should shed grip: lateral %.3f (handbrake) vs %.3f (gripped)", sliding, gripped)
	}
}

func TestDryTankKillsThrust(t *testing.T) {
	d := vehicleHarness(t)
	id := spawnTestCar(d)
	vs, _ := d.Stores.Vehicles.Get(id)
	vs.Fuel = 0
	runCar(d, 120, func(c *component.ControlState, _ int) { c.Throttle = 1 })
	if s := horizontalSpeed(d, id); s > 0.01 {
		t.Fatalf("dry tank still produced thrust: speed %.3f", s)
	}
}

func TestDamageDegradesAcceleration(t *testing.T) {
	speedAfter := func(damage float32) float32 {
		d := vehicleHarness(t)
		id := spawnTestCar(d)
		vs, _ := d.Stores.Vehicles.Get(id)
		vs.Damage = damage
		runCar(d, 60, func(c *component.ControlState, _ int) { c.Throttle = 1 })
		return horizontalSpeed(d, id)
	}

	healthy := speedAfter(0)
	wrecked := speedAfter(1)
	if wrecked >= healthy {
		t.Fatalf("damage did not slow the car: %.2f (wrecked) vs %.2f (healthy)", wrecked, healthy)
	}
	if wrecked < healthy*0.2 {
		t.Fatalf("a wreck should still limp: %.2f vs %.2f", wrecked, healthy)
	}
}

func TestHelicopterHoversWithEngineOn(t *testing.T) {
	d := vehicleHarness(t)
	floor := d.Terrain.Height(0, 0)
	id := spawnTestVehicle(d, component.VehicleHelicopter, "default_helicopter", mathx.V3(0, floor+100, 0))

	heli := NewHeliSystem(d)
	integ := NewIntegrateSystem(d)
	for i := 0; i < 120; i++ {
		d.Clock.Tick(float32(tick.Seconds()))
		heli.Update(tick)
		integ.Update(tick)
	}

	tr, _ := d.Stores.Transforms.Get(id)
	if diff := math.Abs(float64(tr.Pos.Y - (floor + 100))); diff > 0.5 {
		t.Fatalf("hover drifted %.2f units vertically", diff)
	}
}

func TestHelicopterCollectiveClimbsAndSinks(t *testing.T) {
	d := vehicleHarness(t)
	floor := d.Terrain.Height(0, 0)
	id := spawnTestVehicle(d, component.VehicleHelicopter, "default_helicopter", mathx.V3(0, floor+100, 0))
	c, _ := d.Stores.Controls.Get(id)

	heli := NewHeliSystem(d)
	integ := NewIntegrateSystem(d)
	fly := func(vertical float32, ticks int) float32 {
		c.Vertical = vertical
		for i := 0; i < ticks; i++ {
			d.Clock.Tick(float32(tick.Seconds()))
			heli.Update(tick)
			integ.Update(tick)
		}
		tr, _ := d.Stores.Transforms.Get(id)
		return tr.Pos.Y
	}

	up := fly(1, 60)
	if up <= floor+100 {
		t.Fatalf("full collective did not climb: y=%.2f", up)
	}
	down := fly(-1, 120)
	if down >= up {
		t.Fatalf("negative collective did not descend: %.2f -> %.2f", up, down)
	}
}

func TestHelicopterDeadEngineSinks(t *testing.T) {
	d := vehicleHarness(t)
	floor := d.Terrain.Height(0, 0)
	id := spawnTestVehicle(d, component.VehicleHelicopter, "default_helicopter", mathx.V3(0, floor+100, 0))
	vs, _ := d.Stores.Vehicles.Get(id)
	vs.Fuel = 0

	heli := NewHeliSystem(d)
	integ := NewIntegrateSystem(d)
	for i := 0; i < 120; i++ {
		d.Clock.Tick(float32(tick.Seconds()))
		heli.Update(tick)
		integ.Update(tick)
	}

	tr, _ := d.Stores.Transforms.Get(id)
	if tr.Pos.Y >= floor+100 {
		t.Fatalf("dead engine should autorotate down: y=%.2f", tr.Pos.Y)
	}
	if tr.Pos.Y < floor {
		t.Fatalf("sank through the terrain: y=%.2f floor=%.2f", tr.Pos.Y, floor)
	}
}
