package edgegraph

// invalidWeight marks the reverse (or forward) side of an ExpandedNode
// that has no traversable edge behind it, e.g. the missing direction of a
// one-way segment. It is the float64 form of InvalidEdgeWeight. The
// weight vector from RenumberEdges has no slot for an unnumbered
// direction, so this sentinel appears only on the ExpandedNode.
var invalidWeight = float64(InvalidEdgeWeight)

// ExpandedNode is one row of the edge-expanded graph's node table: the
// promotion of a single position along a compressed source-graph edge
// into a first-class routing node. A compressed way absorbing several
// degree-2 intermediate nodes yields one ExpandedNode per absorbed
// position, all sharing the same forward/reverse edge pair.
type ExpandedNode struct {
	// ForwardEdge/ReverseEdge are the renumbered EdgeIDs (see
	// RenumberEdges) of the two directions of the source-graph edge this
	// node was promoted from. SpecialEdgeID on whichever side doesn't
	// exist for a one-way segment.
	ForwardEdge EdgeID
	ReverseEdge EdgeID

	// U is the running source-graph coordinate this segment starts from
	// (the previous segment's V, or the undirected edge's own u on the
	// first row); V is the source-graph node this segment ends at, i.e.
	// the position this row promotes.
	U, V   NodeID
	NameID uint32

	ForwardWeight float64
	ReverseWeight float64

	ComponentID     uint32
	SegmentPosition int

	ForwardTravelMode TravelMode
	ReverseTravelMode TravelMode

	// IsStartpoint is false for positions buried inside a compressed
	// intersection cluster that a route could never actually depart
	// from.
	IsStartpoint bool
}

// GenerateEdgeExpandedNodes builds the edge-expanded node table for every
// compressed way in graph. weights is the array produced by
// RenumberEdges, indexed by the renumbered EdgeID.
func GenerateEdgeExpandedNodes(graph Graph, geom *CompressedGeometryContainer, weights []float64) []ExpandedNode {
	var nodes []ExpandedNode
	for u := 0; u < graph.GetNumberOfNodes(); u++ {
		for _, e := range graph.GetAdjacentEdgeRange(NodeID(u)) {
			v := graph.GetTarget(e)
			if v <= NodeID(u) {
				continue
			}
			nodes = insertEdgeBasedNode(graph, geom, weights, NodeID(u), v, nodes)
		}
	}
	return nodes
}

// insertEdgeBasedNode appends the ExpandedNode row(s) for the compressed
// way between u and v to nodes, and returns the extended slice.
func insertEdgeBasedNode(graph Graph, geom *CompressedGeometryContainer, weights []float64, u, v NodeID, nodes []ExpandedNode) []ExpandedNode {
	forwardEdge := graph.FindEdge(u, v)
	reverseEdge := graph.FindEdge(v, u)
	if forwardEdge == SpecialEdgeID && reverseEdge == SpecialEdgeID {
		return nodes
	}

	var forwardData, reverseData *EdgeData
	if forwardEdge != SpecialEdgeID {
		forwardData = graph.GetEdgeData(forwardEdge)
	}
	if reverseEdge != SpecialEdgeID {
		reverseData = graph.GetEdgeData(reverseEdge)
	}

	forwardNumbered := forwardData != nil && forwardData.EdgeID != SpecialEdgeID
	reverseNumbered := reverseData != nil && reverseData.EdgeID != SpecialEdgeID
	if !forwardNumbered && !reverseNumbered {
		return nodes
	}

	forwardEdgeID, reverseEdgeID := SpecialEdgeID, SpecialEdgeID
	forwardWeight, reverseWeight := invalidWeight, invalidWeight
	var nameID uint32
	var forwardMode, reverseMode TravelMode
	startpoint := false

	if forwardNumbered {
		forwardEdgeID = forwardData.EdgeID
		forwardWeight = weights[forwardData.EdgeID]
		nameID = forwardData.NameID
		forwardMode = forwardData.TravelMode
		startpoint = startpoint || forwardData.StartPoint
	}
	if reverseNumbered {
		reverseEdgeID = reverseData.EdgeID
		reverseWeight = weights[reverseData.EdgeID]
		nameID = reverseData.NameID
		reverseMode = reverseData.TravelMode
		startpoint = startpoint || reverseData.StartPoint
	}

	bucket := geom.Bucket(forwardEdge)
	if len(bucket) == 0 {
		bucket = geom.Bucket(reverseEdge)
	}
	if len(bucket) == 0 {
		// No intermediate nodes were compressed into this way: it is a
		// single direct hop, so it becomes exactly one ExpandedNode.
		bucket = []GeometryPoint{{NodeID: v}}
	}

	running := u
	for i, pt := range bucket {
		nodes = append(nodes, ExpandedNode{
			ForwardEdge:       forwardEdgeID,
			ReverseEdge:       reverseEdgeID,
			U:                 running,
			V:                 pt.NodeID,
			NameID:            nameID,
			ForwardWeight:     forwardWeight,
			ReverseWeight:     reverseWeight,
			ComponentID:       InvalidComponentID,
			SegmentPosition:   i,
			ForwardTravelMode: forwardMode,
			ReverseTravelMode: reverseMode,
			IsStartpoint:      startpoint,
		})
		running = pt.NodeID
	}
	debugAssert(running == v, "running source id must end at v after expanding a compressed edge's geometry")
	return nodes
}
