package mathx

// AABB is an axis-aligned box given by its min and max corners.
type AABB struct {
	Min, Max Vec3
}

func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b AABB) Intersects(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// ClampPoint returns p moved to the nearest point inside the box.
func (b AABB) ClampPoint(p Vec3) Vec3 {
	return Vec3{
		X: Clamp(p.X, b.Min.X, b.Max.X),
		Y: Clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: Clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

// Sphere is a center plus radius.
type Sphere struct {
	Center Vec3
	Radius float32
}

func (s Sphere) Contains(p Vec3) bool {
	return s.Center.Sub(p).LenSq() <= s.Radius*s.Radius
}

func (s Sphere) Intersects(o Sphere) bool {
	r := s.Radius + o.Radius
	return s.Center.Sub(o.Center).LenSq() <= r*r
}

func (s Sphere) IntersectsAABB(b AABB) bool {
	return b.ClampPoint(s.Center).Sub(s.Center).LenSq() <= s.Radius*s.Radius
}
