package physics

import (
	"math"

	"github.com/driftcity/engine/internal/mathx"
)

// ApplyDamping applies exponential drag: v *= drag^dt. Drag is the
// per-second retention base, so smaller means more damping.
func ApplyDamping(v mathx.Vec3, drag, dt float32) mathx.Vec3 {
	if drag <= 0 {
		return mathx.Vec3{}
	}
	f := float32(math.Pow(float64(drag), float64(dt)))
	return v.Scale(f)
}

// ClampSpeed limits the vector's magnitude to maxLen, preserving direction.
func ClampSpeed(v mathx.Vec3, maxLen float32) mathx.Vec3 {
	if maxLen <= 0 {
		return mathx.Vec3{}
	}
	l := v.Len()
	if l <= maxLen {
		return v
	}
	return v.Scale(maxLen / l)
}

// Buoyancy returns the upward buoyant force for the submerged fraction of a
// hull: rho * g * submerged volume.
func Buoyancy(waterDensity, gravity, hullVolume, submersion float32) float32 {
	submersion = mathx.Clamp(submersion, 0, 1)
	return waterDensity * gravity * hullVolume * submersion
}

// WaterDragCoeff returns the drag coefficient at a given submersion ratio.
// Monotonically decreasing in submersion: a planing hull (low submersion)
// sees more drag coefficient than a fully displacing one.
func WaterDragCoeff(base, submersion float32) float32 {
	submersion = mathx.Clamp(submersion, 0, 1)
	return base * (1 - 0.5*submersion)
}

// Submersion returns the fraction of a hull of the given half-height under
// the water plane, for a hull centered at centerY.
func Submersion(centerY, halfHeight, waterLevel float32) float32 {
	if halfHeight <= 0 {
		return 0
	}
	depth := waterLevel - (centerY - halfHeight)
	return mathx.Clamp(depth/(2*halfHeight), 0, 1)
}
