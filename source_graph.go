package edgegraph

import (
	"github.com/paulmach/osm"
)

// EdgeData is the per-directed-edge payload carried by the node-based
// source graph. Two EdgeData values back every compressed way: one for
// each direction of travel. Reversed marks a direction that cannot be
// travelled (the back half of a one-way road): it exists only to let the
// graph be walked symmetrically and is skipped when generating
// edge-expanded nodes and edges.
type EdgeData struct {
	// EdgeID is filled in by RenumberEdges; SpecialEdgeID until then.
	EdgeID EdgeID

	Distance   float64
	NameID     uint32
	RoadClass  RoadClass
	TravelMode TravelMode
	Roundabout bool
	Reversed   bool
	// StartPoint marks that this side of the pair may be used as a
	// departure point for a route (false for edges internal to a
	// compressed intersection cluster).
	StartPoint bool

	// Traceability back to the OSM way this edge was compressed from.
	WayID        osm.WayID
	SourceNodeID osm.NodeID
	TargetNodeID osm.NodeID
}

// Graph is the read interface the factory needs from a node-based road
// graph. It intentionally says nothing about how the graph was built: a
// caller can hand in a graph parsed from OSM, loaded from a cache, or (as
// in tests) built by hand with MemoryGraph.
type Graph interface {
	GetNumberOfNodes() int
	GetNumberOfEdges() int
	// GetTarget returns the node an edge points at.
	GetTarget(edge EdgeID) NodeID
	// GetEdgeData returns a pointer to the mutable payload of an edge, so
	// RenumberEdges can assign EdgeID in place.
	GetEdgeData(edge EdgeID) *EdgeData
	// FindEdge returns the edge from->to, or SpecialEdgeID if none exists.
	FindEdge(from, to NodeID) EdgeID
	// GetAdjacentEdgeRange returns every edge leaving node, in a stable
	// order that callers may rely on across calls.
	GetAdjacentEdgeRange(node NodeID) []EdgeID
	// GetOutDegree counts every adjacency list entry for node, including
	// edges marked Reversed.
	GetOutDegree(node NodeID) int
	// GetDirectedOutDegree counts only the non-Reversed entries, i.e. the
	// number of roads a traveler could actually leave node on.
	GetDirectedOutDegree(node NodeID) int
}

// MemoryGraph is a plain adjacency-list Graph, built up edge pair by edge
// pair. It exists for tests and for callers that already hold their road
// network in memory rather than behind a parser or a cache.
type MemoryGraph struct {
	edgeData []EdgeData
	target   []NodeID
	adjacent [][]EdgeID
}

// NewMemoryGraph allocates a graph with nodeCount nodes and no edges.
func NewMemoryGraph(nodeCount int) *MemoryGraph {
	return &MemoryGraph{
		adjacent: make([][]EdgeID, nodeCount),
	}
}

// AddEdgePair appends the two directed edges backing a single compressed
// way between u and v, returning their assigned EdgeIDs (forward first).
// Reversed is stored as given in forward and reverse; it is not set on
// either half, so a pair built from two plain EdgeData values is a
// two-way road.
func (g *MemoryGraph) AddEdgePair(u, v NodeID, forward, reverse EdgeData) (EdgeID, EdgeID) {
	forward.EdgeID = SpecialEdgeID
	reverse.EdgeID = SpecialEdgeID

	forwardID := EdgeID(len(g.edgeData))
	g.edgeData = append(g.edgeData, forward)
	g.target = append(g.target, v)
	g.adjacent[u] = append(g.adjacent[u], forwardID)

	reverseID := EdgeID(len(g.edgeData))
	g.edgeData = append(g.edgeData, reverse)
	g.target = append(g.target, u)
	g.adjacent[v] = append(g.adjacent[v], reverseID)

	return forwardID, reverseID
}

func (g *MemoryGraph) GetNumberOfNodes() int {
	return len(g.adjacent)
}

func (g *MemoryGraph) GetNumberOfEdges() int {
	return len(g.edgeData)
}

func (g *MemoryGraph) GetTarget(edge EdgeID) NodeID {
	return g.target[edge]
}

func (g *MemoryGraph) GetEdgeData(edge EdgeID) *EdgeData {
	return &g.edgeData[edge]
}

func (g *MemoryGraph) FindEdge(from, to NodeID) EdgeID {
	for _, e := range g.adjacent[from] {
		if g.target[e] == to {
			return e
		}
	}
	return SpecialEdgeID
}

func (g *MemoryGraph) GetAdjacentEdgeRange(node NodeID) []EdgeID {
	return g.adjacent[node]
}

func (g *MemoryGraph) GetOutDegree(node NodeID) int {
	return len(g.adjacent[node])
}

func (g *MemoryGraph) GetDirectedOutDegree(node NodeID) int {
	count := 0
	for _, e := range g.adjacent[node] {
		if !g.edgeData[e].Reversed {
			count++
		}
	}
	return count
}
