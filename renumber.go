package edgegraph

// RenumberEdges walks graph in node order and assigns a dense, zero-based
// EdgeID to every non-reversed edge, in the order it is first seen. Edges
// marked Reversed (the direction of a one-way road that cannot be
// travelled) never receive an EdgeID: they stay in the graph only so it
// can be walked symmetrically during turn-candidate generation.
//
// It also produces the base weight for each numbered edge, indexed by its
// new EdgeID: the edge's travel distance plus a fixed u-turn penalty.
// GenerateEdgeExpandedEdges does not read these weights; it computes each
// expanded edge's weight from the via edge's distance and adds the u-turn
// penalty only to u-turn candidates.
//
// The returned count is the number of edges numbered; the highest EdgeID
// assigned is count-1.
func RenumberEdges(graph Graph, uTurnPenalty float64) (weights []float64, count EdgeID) {
	var counter EdgeID
	for u := 0; u < graph.GetNumberOfNodes(); u++ {
		for _, e := range graph.GetAdjacentEdgeRange(NodeID(u)) {
			data := graph.GetEdgeData(e)
			if data.Reversed {
				continue
			}
			weights = append(weights, data.Distance+uTurnPenalty)
			data.EdgeID = counter
			counter++
		}
	}
	return weights, counter
}
