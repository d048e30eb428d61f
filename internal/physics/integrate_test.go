package physics

import (
	"math"
	"testing"

	"github.com/driftcity/engine/internal/mathx"
)

func TestApplyDampingRetention(t *testing.T) {
	v := mathx.V3(10, 0, 0)
	// drag 0.5 over a full second halves the velocity
	got := ApplyDamping(v, 0.5, 1)
	if math.Abs(float64(got.X-5)) > 1e-4 {
		t.Fatalf("damped x = %v, want 5", got.X)
	}
	// sixty sub-steps compose to the same full-second retention
	step := v
	for i := 0; i < 60; i++ {
		step = ApplyDamping(step, 0.5, 1.0/60)
	}
	if math.Abs(float64(step.X-5)) > 1e-2 {
		t.Fatalf("composed damping x = %v, want ~5", step.X)
	}
	if ApplyDamping(v, 0, 1) != (mathx.Vec3{}) {
		t.Fatal("non-positive drag must kill the velocity")
	}
}

func TestClampSpeed(t *testing.T) {
	v := mathx.V3(3, 4, 0) // length 5
	if got := ClampSpeed(v, 10); got != v {
		t.Fatalf("under-limit vector changed: %v", got)
	}
	got := ClampSpeed(v, 2.5)
	if math.Abs(float64(got.Len()-2.5)) > 1e-4 {
		t.Fatalf("clamped length = %v, want 2.5", got.Len())
	}
	// direction preserved
	if got.X <= 0 || got.Y <= 0 || math.Abs(float64(got.X/got.Y-0.75)) > 1e-4 {
		t.Fatalf("clamp changed direction: %v", got)
	}
	if ClampSpeed(v, 0) != (mathx.Vec3{}) {
		t.Fatal("zero limit should zero the vector")
	}
}

func TestSubmersionFractions(t *testing.T) {
	cases := []struct {
		centerY, half, water, want float32
	}{
		{10, 2, 0, 0},  // clear of the water
		{0, 2, 0, 0.5}, // floating on the line
		{-10, 2, 0, 1}, // fully under
		{1, 2, 0, 0.25},
		{0, 0, 0, 0}, // degenerate hull
	}
	for _, c := range cases {
		if got := Submersion(c.centerY, c.half, c.water); got != c.want {
			t.Errorf("Submersion(%v, %v, %v) = %v, want %v", c.centerY, c.half, c.water, got, c.want)
		}
	}
}

func TestBuoyancyScalesWithSubmersion(t *testing.T) {
	full := Buoyancy(1000, 9.81, 60, 1)
	half := Buoyancy(1000, 9.81, 60, 0.5)
	if math.Abs(float64(full-2*half)) > 1e-2 {
		t.Fatalf("buoyancy not linear in submersion: full=%v half=%v", full, half)
	}
	if Buoyancy(1000, 9.81, 60, -1) != 0 {
		t.Fatal("negative submersion must clamp to zero force")
	}
}

func TestWaterDragDecreasesWithSubmersion(t *testing.T) {
	base := float32(2.5)
	if WaterDragCoeff(base, 0) != base {
		t.Fatal("zero submersion should keep the base coefficient")
	}
	if got := WaterDragCoeff(base, 1); got != base*0.5 {
		t.Fatalf("full submersion coefficient = %v, want %v", got, base*0.5)
	}
	if WaterDragCoeff(base, 0.25) <= WaterDragCoeff(base, 0.75) {
		t.Fatal("coefficient must fall as the hull settles")
	}
}

func TestCollisionGroupInteractions(t *testing.T) {
	v, c, s := VehicleGroups(), CharacterGroups(), StaticGroups()
	if !v.Interacts(s) || !c.Interacts(s) {
		t.Fatal("everything collides with static geometry")
	}
	if !v.Interacts(c) {
		t.Fatal("vehicles collide with characters")
	}
}
