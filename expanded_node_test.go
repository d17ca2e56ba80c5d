package edgegraph

import "testing"

func TestGenerateEdgeExpandedNodesOneRowPerUndirectedEdge(t *testing.T) {
	g := buildLineGraph()
	weights, _ := RenumberEdges(g, 2.0)
	geom := NewCompressedGeometryContainer()

	nodes := GenerateEdgeExpandedNodes(g, geom, weights)
	if len(nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want 2 (one per undirected edge, no compressed geometry)", len(nodes))
	}
	for _, n := range nodes {
		if n.ForwardEdge == SpecialEdgeID || n.ReverseEdge == SpecialEdgeID {
			t.Errorf("expected both directions of a two-way edge to be numbered, got forward=%v reverse=%v", n.ForwardEdge, n.ReverseEdge)
		}
		if n.ComponentID != InvalidComponentID {
			t.Errorf("ComponentID = %v, want InvalidComponentID before any component analysis", n.ComponentID)
		}
	}
}

func TestGenerateEdgeExpandedNodesExpandsCompressedGeometry(t *testing.T) {
	g := NewMemoryGraph(2)
	fwd, _ := g.AddEdgePair(0, 1, EdgeData{Distance: 300}, EdgeData{Distance: 300})
	weights, _ := RenumberEdges(g, 2.0)

	geom := NewCompressedGeometryContainer()
	geom.AddBucket(fwd, []GeometryPoint{{NodeID: 5}, {NodeID: 6}, {NodeID: 1}})

	nodes := GenerateEdgeExpandedNodes(g, geom, weights)
	if len(nodes) != 3 {
		t.Fatalf("len(nodes) = %d, want 3 (one per compressed geometry point)", len(nodes))
	}
	for i, n := range nodes {
		if n.SegmentPosition != i {
			t.Errorf("nodes[%d].SegmentPosition = %d, want %d", i, n.SegmentPosition, i)
		}
	}
}

func TestGenerateEdgeExpandedNodesMarksUnroutableSideInvalid(t *testing.T) {
	g := NewMemoryGraph(2)
	fwd, rev := g.AddEdgePair(0, 1, EdgeData{Distance: 100}, EdgeData{Distance: 100})
	// Only the reverse direction is reversed out of numbering, so the
	// forward side is routable but the reverse side is not.
	g.GetEdgeData(rev).Reversed = true
	_ = fwd

	weights, _ := RenumberEdges(g, 2.0)
	geom := NewCompressedGeometryContainer()
	nodes := GenerateEdgeExpandedNodes(g, geom, weights)
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	if nodes[0].ReverseWeight != float64(InvalidEdgeWeight) {
		t.Errorf("ReverseWeight = %v, want InvalidEdgeWeight sentinel %v", nodes[0].ReverseWeight, float64(InvalidEdgeWeight))
	}
	if nodes[0].ForwardEdge == SpecialEdgeID {
		t.Errorf("expected the forward side to still be numbered")
	}
}

func TestGenerateEdgeExpandedNodesSkipsFullyUnroutable(t *testing.T) {
	g := NewMemoryGraph(2)
	// Both directions reversed manually after construction: nothing left to number.
	fwd, rev := g.AddEdgePair(0, 1, EdgeData{Distance: 100}, EdgeData{Distance: 100})
	g.GetEdgeData(fwd).Reversed = true
	g.GetEdgeData(rev).Reversed = true

	weights, _ := RenumberEdges(g, 2.0)
	geom := NewCompressedGeometryContainer()
	nodes := GenerateEdgeExpandedNodes(g, geom, weights)
	if len(nodes) != 0 {
		t.Errorf("len(nodes) = %d, want 0 when neither direction is numbered", len(nodes))
	}
}
