package edgegraph

import (
	"math"

	"github.com/paulmach/orb"
)

// earthRadius is the mean radius of the WGS-84 reference sphere, in meters.
const earthRadius = 6371008.8

const (
	pi180    = math.Pi / 180.0
	pi180Rev = 180.0 / math.Pi
)

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// radiansToDegrees r = deg * 180 / pi
func radiansToDegrees(r float64) float64 {
	return r * pi180Rev
}

// greatCircleDistance returns the distance between two points in meters.
func greatCircleDistance(p, q orb.Point) float64 {
	lat1 := degreesToRadians(p.Lat())
	lon1 := degreesToRadians(p.Lon())
	lat2 := degreesToRadians(q.Lat())
	lon2 := degreesToRadians(q.Lon())
	diffLat := lat2 - lat1
	diffLon := lon2 - lon1
	a := math.Pow(math.Sin(diffLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(diffLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return c * earthRadius
}

// initialBearing returns the initial bearing from p to q, in degrees [0,360).
func initialBearing(p, q orb.Point) float64 {
	lat1 := degreesToRadians(p.Lat())
	lat2 := degreesToRadians(q.Lat())
	diffLon := degreesToRadians(q.Lon() - p.Lon())
	y := math.Sin(diffLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(diffLon)
	theta := math.Atan2(y, x)
	return math.Mod(radiansToDegrees(theta)+360.0, 360.0)
}

// computeAngle returns the turn angle at b for the path a->b->c, in degrees
// [0,360). 180 means the path continues straight through b; 0 means it
// doubles back on itself.
func computeAngle(a, b, c orb.Point) float64 {
	bearingIn := initialBearing(b, a)
	bearingOut := initialBearing(b, c)
	return math.Mod(bearingIn-bearingOut+360.0, 360.0)
}

// angularDeviation returns the absolute difference between two angles,
// folded into [0,180].
func angularDeviation(angle, from float64) float64 {
	deviation := math.Abs(angle - from)
	if deviation > 180.0 {
		return 360.0 - deviation
	}
	return deviation
}

// representativeCoordinate picks a coordinate along edge (which runs from
// edgeFrom to edgeTo) close enough to the junction node to be numerically
// stable for angle computation, but not the junction's own coordinate.
//
// When invert is true, the junction is edgeTo, and the coordinate nearest
// to it is the last point of the compressed geometry bucket (or, lacking
// any intermediate points, edgeFrom's own coordinate). When invert is
// false, the junction is edgeFrom, and the coordinate is the first bucket
// point (or, lacking intermediate points, edgeTo's own coordinate).
func representativeCoordinate(edgeFrom, edgeTo NodeID, edge EdgeID, invert bool, geom *CompressedGeometryContainer, nodes []QueryNode) orb.Point {
	if bucket := geom.Bucket(edge); len(bucket) > 0 {
		if invert {
			return nodes[bucket[len(bucket)-1].NodeID].Point()
		}
		return nodes[bucket[0].NodeID].Point()
	}
	if invert {
		return nodes[edgeFrom].Point()
	}
	return nodes[edgeTo].Point()
}
