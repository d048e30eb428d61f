package mathx

import "math"

// Vec3 is a float32 3-vector. Y is up.
type Vec3 struct {
	X, Y, Z float32
}

func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

func (v Vec3) LenSq() float32 { return v.Dot(v) }

// DistXZ is the horizontal distance, ignoring height. Streaming and LOD
// both measure in the ground plane.
func (v Vec3) DistXZ(o Vec3) float32 {
	dx := float64(v.X - o.X)
	dz := float64(v.Z - o.Z)
	return float32(math.Sqrt(dx*dx + dz*dz))
}

func (v Vec3) Dist(o Vec3) float32 {
	return v.Sub(o).Len()
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-6 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// IsFinite reports whether all three components are finite.
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

func IsFinite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}

// Clamp limits f to [lo, hi].
func Clamp(f, lo, hi float32) float32 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

// ClampFinite zeroes non-finite values before clamping. Control inputs and
// force outputs pass through this so NaNs never reach the integrator.
func ClampFinite(f, lo, hi float32) float32 {
	if !IsFinite(f) {
		return 0
	}
	return Clamp(f, lo, hi)
}

// RotateY rotates v around the Y axis by yaw radians.
func (v Vec3) RotateY(yaw float32) Vec3 {
	s := float32(math.Sin(float64(yaw)))
	c := float32(math.Cos(float64(yaw)))
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}
