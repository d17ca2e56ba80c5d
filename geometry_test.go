package edgegraph

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestGreatCircleDistanceZero(t *testing.T) {
	p := orb.Point{37.6173, 55.7558}
	if d := greatCircleDistance(p, p); d != 0 {
		t.Errorf("greatCircleDistance(p, p) = %v, want 0", d)
	}
}

func TestGreatCircleDistanceKnownSpan(t *testing.T) {
	// One degree of longitude at the equator is close to 111.195 km on a
	// sphere of the mean earth radius.
	a := orb.Point{0, 0}
	b := orb.Point{1, 0}
	d := greatCircleDistance(a, b)
	if !almostEqual(d, 111195, 500) {
		t.Errorf("greatCircleDistance(0,0 -> 1,0) = %v, want ~111195m", d)
	}
}

func TestComputeAngleStraight(t *testing.T) {
	a := orb.Point{0, 0}
	b := orb.Point{0, 1}
	c := orb.Point{0, 2}
	angle := computeAngle(a, b, c)
	if !almostEqual(angle, 180, 0.5) {
		t.Errorf("computeAngle straight-through = %v, want ~180", angle)
	}
}

func TestComputeAngleUturn(t *testing.T) {
	a := orb.Point{0, 0}
	b := orb.Point{0, 1}
	c := orb.Point{0, 0}
	angle := computeAngle(a, b, c)
	if !almostEqual(angle, 0, 0.5) {
		t.Errorf("computeAngle doubling back = %v, want ~0", angle)
	}
}

func TestAngularDeviationWrapsAround(t *testing.T) {
	if got := angularDeviation(350, 10); !almostEqual(got, 20, 0.001) {
		t.Errorf("angularDeviation(350, 10) = %v, want 20", got)
	}
	if got := angularDeviation(10, 350); !almostEqual(got, 20, 0.001) {
		t.Errorf("angularDeviation(10, 350) = %v, want 20", got)
	}
}

func TestRepresentativeCoordinateFallsBackWithoutGeometry(t *testing.T) {
	nodes := []QueryNode{
		{Coordinate: orb.Point{0, 0}},
		{Coordinate: orb.Point{1, 1}},
	}
	geom := NewCompressedGeometryContainer()

	got := representativeCoordinate(0, 1, EdgeID(0), false, geom, nodes)
	if got != nodes[1].Point() {
		t.Errorf("representativeCoordinate(invert=false, no geometry) = %v, want %v", got, nodes[1].Point())
	}

	got = representativeCoordinate(0, 1, EdgeID(0), true, geom, nodes)
	if got != nodes[0].Point() {
		t.Errorf("representativeCoordinate(invert=true, no geometry) = %v, want %v", got, nodes[0].Point())
	}
}

func TestRepresentativeCoordinateUsesBucketEnds(t *testing.T) {
	nodes := []QueryNode{
		{Coordinate: orb.Point{0, 0}},
		{Coordinate: orb.Point{1, 0}},
		{Coordinate: orb.Point{2, 0}},
		{Coordinate: orb.Point{3, 0}},
	}
	geom := NewCompressedGeometryContainer()
	geom.AddBucket(EdgeID(0), []GeometryPoint{{NodeID: 1}, {NodeID: 2}})

	got := representativeCoordinate(0, 3, EdgeID(0), false, geom, nodes)
	if got != nodes[1].Point() {
		t.Errorf("representativeCoordinate(invert=false) = %v, want first bucket point", got)
	}

	got = representativeCoordinate(0, 3, EdgeID(0), true, geom, nodes)
	if got != nodes[2].Point() {
		t.Errorf("representativeCoordinate(invert=true) = %v, want last bucket point", got)
	}
}
