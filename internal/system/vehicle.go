package system

import (
	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/data"
)

// fuelPerSecond is the full-throttle burn rate as a fraction of the tank.
const fuelPerSecond float32 = 1.0 / 600

// vehicleFrame is the joined row a force system works on.
type vehicleFrame struct {
	id    ecs.EntityID
	state *component.VehicleState
	spec  *data.VehicleSpecs
	t     *component.Transform
	v     *component.Velocity
	ctrl  *component.ControlState
}

// eachVehicle joins the component sets a force system needs, skipping
// sleeping and dying vehicles and vehicles whose specs are missing.
func eachVehicle(d *Deps, kind component.VehicleKind, fn func(vehicleFrame)) {
	d.Stores.Vehicles.Each(func(id ecs.EntityID, vs *component.VehicleState) {
		if vs.Kind != kind || d.World.PendingDestruction(id) {
			return
		}
		if b, ok := d.Stores.Bodies.Get(id); ok && b.Sleeping {
			return
		}
		spec, ok := d.Vehicles.Get(vs.SpecName)
		if !ok {
			return
		}
		t, ok := d.Stores.Transforms.Get(id)
		if !ok {
			return
		}
		v, ok := d.Stores.Velocities.Get(id)
		if !ok {
			return
		}
		ctrl, ok := d.Stores.Controls.Get(id)
		if !ok {
			return
		}
		fn(vehicleFrame{id: id, state: vs, spec: spec, t: t, v: v, ctrl: ctrl})
	})
}

// burnFuel drains the tank with throttle and reports whether the engine
// still runs. A dry tank zeroes thrust but leaves steering authority.
func burnFuel(vs *component.VehicleState, throttle, dt float32) bool {
	if vs.Fuel <= 0 {
		vs.Fuel = 0
		return false
	}
	vs.Fuel -= fuelPerSecond * (0.2 + 0.8*throttle) * dt
	if vs.Fuel < 0 {
		vs.Fuel = 0
	}
	return true
}

// damageFactor degrades engine output as damage accumulates. A wreck at
// full damage still limps at 30%.
func damageFactor(vs *component.VehicleState) float32 {
	return 1 - 0.7*vs.Damage
}
