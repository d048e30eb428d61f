package roads

import "github.com/driftcity/engine/internal/mathx"

const arcSamples = 50

// RoadSpline is a road centerline. With four or more control points it is
// evaluated as piecewise Catmull-Rom; with fewer, as a linear polyline.
// Arc length is precomputed by 50-sample trapezoid integration so AI drivers
// can advance by distance rather than parameter.
type RoadSpline struct {
	ID      uint32
	Type    RoadType
	Control []mathx.Vec3

	length  float32
	samples [arcSamples + 1]float32 // cumulative length at t = i/arcSamples
}

// NewRoadSpline builds a spline and precomputes its arc-length table.
func NewRoadSpline(id uint32, t RoadType, control []mathx.Vec3) *RoadSpline {
	s := &RoadSpline{ID: id, Type: t, Control: control}
	s.buildArcTable()
	return s
}

// Length returns the total arc length.
func (s *RoadSpline) Length() float32 { return s.length }

// Eval returns the centerline position at parameter t in [0,1].
func (s *RoadSpline) Eval(t float32) mathx.Vec3 {
	n := len(s.Control)
	switch {
	case n == 0:
		return mathx.Vec3{}
	case n == 1:
		return s.Control[0]
	case n < 4:
		return s.evalLinear(t)
	default:
		return s.evalCatmullRom(t)
	}
}

// Tangent returns the normalized direction of travel at parameter t,
// computed by central difference.
func (s *RoadSpline) Tangent(t float32) mathx.Vec3 {
	const h = 1.0 / arcSamples
	a := s.Eval(mathx.Clamp(t-h, 0, 1))
	b := s.Eval(mathx.Clamp(t+h, 0, 1))
	return b.Sub(a).Normalize()
}

// AtDistance maps an arc-length distance to a parameter t, clamped to the
// spline's extent. Inverse lookup through the precomputed table.
func (s *RoadSpline) AtDistance(dist float32) float32 {
	if s.length <= 0 {
		return 0
	}
	dist = mathx.Clamp(dist, 0, s.length)
	// Binary search over the cumulative table.
	lo, hi := 0, arcSamples
	for lo < hi {
		mid := (lo + hi) / 2
		if s.samples[mid] < dist {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0
	}
	// Linear interpolation inside the bracket.
	prev, cur := s.samples[lo-1], s.samples[lo]
	frac := float32(0)
	if cur > prev {
		frac = (dist - prev) / (cur - prev)
	}
	return (float32(lo-1) + frac) / arcSamples
}

func (s *RoadSpline) evalLinear(t float32) mathx.Vec3 {
	t = mathx.Clamp(t, 0, 1)
	segs := len(s.Control) - 1
	f := t * float32(segs)
	i := int(f)
	if i >= segs {
		i = segs - 1
	}
	return s.Control[i].Lerp(s.Control[i+1], f-float32(i))
}

func (s *RoadSpline) evalCatmullRom(t float32) mathx.Vec3 {
	t = mathx.Clamp(t, 0, 1)
	segs := len(s.Control) - 1
	f := t * float32(segs)
	i := int(f)
	if i >= segs {
		i = segs - 1
	}
	u := f - float32(i)

	p1 := s.Control[i]
	p2 := s.Control[i+1]
	p0 := p1
	if i > 0 {
		p0 = s.Control[i-1]
	}
	p3 := p2
	if i+2 < len(s.Control) {
		p3 = s.Control[i+2]
	}
	return catmullRom(p0, p1, p2, p3, u)
}

// catmullRom evaluates the uniform Catmull-Rom basis at u in [0,1].
func catmullRom(p0, p1, p2, p3 mathx.Vec3, u float32) mathx.Vec3 {
	u2 := u * u
	u3 := u2 * u
	r := p1.Scale(2)
	r = r.Add(p2.Sub(p0).Scale(u))
	r = r.Add(p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(u2))
	r = r.Add(p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(u3))
	return r.Scale(0.5)
}

func (s *RoadSpline) buildArcTable() {
	if len(s.Control) < 2 {
		return
	}
	prev := s.Eval(0)
	total := float32(0)
	s.samples[0] = 0
	for i := 1; i <= arcSamples; i++ {
		p := s.Eval(float32(i) / arcSamples)
		total += p.Dist(prev)
		s.samples[i] = total
		prev = p
	}
	s.length = total
}
