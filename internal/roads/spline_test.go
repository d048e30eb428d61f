package roads

import (
	"math"
	"testing"

	"github.com/driftcity/engine/internal/mathx"
)

func TestLinearFallbackWithTwoPoints(t *testing.T) {
	s := NewRoadSpline(1, RoadSide, []mathx.Vec3{
		mathx.V3(0, 0, 0),
		mathx.V3(100, 0, 0),
	})
	if got := s.Length(); math.Abs(float64(got-100)) > 0.5 {
		t.Fatalf("straight 100-unit road length = %v", got)
	}
	mid := s.Eval(0.5)
	if math.Abs(float64(mid.X-50)) > 0.5 || math.Abs(float64(mid.Z)) > 0.5 {
		t.Fatalf("Eval(0.5) = %+v, want ~(50,0,0)", mid)
	}
}

func TestCatmullRomPassesThroughInteriorPoints(t *testing.T) {
	s := NewRoadSpline(1, RoadMain, []mathx.Vec3{
		mathx.V3(0, 0, 0),
		mathx.V3(50, 0, 10),
		mathx.V3(100, 0, -10),
		mathx.V3(150, 0, 0),
	})
	// endpoints are always interpolated
	start := s.Eval(0)
	end := s.Eval(1)
	if start.DistXZ(mathx.V3(0, 0, 0)) > 0.01 {
		t.Fatalf("Eval(0) = %+v, want first control point", start)
	}
	if end.DistXZ(mathx.V3(150, 0, 0)) > 0.01 {
		t.Fatalf("Eval(1) = %+v, want last control point", end)
	}
}

func TestArcLengthMonotonic(t *testing.T) {
	s := NewRoadSpline(1, RoadHighway, []mathx.Vec3{
		mathx.V3(0, 0, 0),
		mathx.V3(60, 0, 40),
		mathx.V3(120, 0, -20),
		mathx.V3(200, 0, 0),
	})
	prev := float32(-1)
	for d := float32(0); d <= s.Length(); d += s.Length() / 20 {
		u := s.AtDistance(d)
		if u < prev {
			t.Fatalf("AtDistance not monotonic: t(%v)=%v after %v", d, u, prev)
		}
		prev = u
	}
	if got := s.AtDistance(0); got != 0 {
		t.Fatalf("AtDistance(0) = %v, want 0", got)
	}
	if got := s.AtDistance(s.Length() * 2); got != 1 {
		t.Fatalf("AtDistance past the end = %v, want 1", got)
	}
}

func TestAtDistanceCoversCurve(t *testing.T) {
	s := NewRoadSpline(1, RoadMain, []mathx.Vec3{
		mathx.V3(0, 0, 0),
		mathx.V3(100, 0, 0),
	})
	// walking 25% of the arc should land near 25% of the straight line
	p := s.Eval(s.AtDistance(25))
	if math.Abs(float64(p.X-25)) > 2 {
		t.Fatalf("position at arc 25 = %+v, want x~25", p)
	}
}

func TestTangentPointsAlongTravel(t *testing.T) {
	s := NewRoadSpline(1, RoadSide, []mathx.Vec3{
		mathx.V3(0, 0, 0),
		mathx.V3(100, 0, 0),
	})
	tan := s.Tangent(0.5)
	if tan.X <= 0.9 {
		t.Fatalf("tangent of +X road = %+v, want ~(1,0,0)", tan)
	}
}

func TestNetworkNearestAndDropChunk(t *testing.T) {
	n := NewNetwork()
	c := mathx.ChunkCoord{X: 0, Z: 0}
	id := n.Add(c, RoadMain, []mathx.Vec3{
		mathx.V3(0, 0, 100),
		mathx.V3(200, 0, 100),
	})

	got, _, ok := n.Nearest(mathx.V3(50, 0, 90), 200)
	if !ok || got != id {
		t.Fatalf("Nearest = (%d, %v), want id %d", got, ok, id)
	}

	n.DropChunk(c)
	if _, _, ok := n.Nearest(mathx.V3(50, 0, 90), 200); ok {
		t.Fatalf("Nearest found a spline after DropChunk")
	}
	if n.Len() != 0 {
		t.Fatalf("Len = %d after DropChunk, want 0", n.Len())
	}
}

func TestRoadTypeAttributes(t *testing.T) {
	if RoadHighway.Width() <= RoadAlley.Width() {
		t.Fatalf("highway should be wider than alley")
	}
	if RoadHighway.SpeedLimit() <= RoadAlley.SpeedLimit() {
		t.Fatalf("highway should be faster than alley")
	}
}
