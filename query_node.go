package edgegraph

import (
	"github.com/paulmach/osm"
	"github.com/paulmach/orb"
)

// QueryNode is the coordinate lookup table for a source graph: one entry
// per NodeID, carrying just enough to compute distances and turn angles
// and to trace a node back to its OSM origin.
type QueryNode struct {
	Coordinate  orb.Point
	OSMNodeID   osm.NodeID
	TrafficLight bool
}

// Point returns the node's coordinate as an orb.Point.
func (q QueryNode) Point() orb.Point {
	return q.Coordinate
}
