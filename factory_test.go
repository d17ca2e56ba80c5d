package edgegraph

import (
	"bytes"
	"testing"

	"github.com/paulmach/orb"
)

func TestFactoryRunFourWayJunction(t *testing.T) {
	g, nodes := buildFourWayJunction()
	geom := NewCompressedGeometryContainer()
	restrictions := NewMapRestrictionMap()

	factory := NewFactory(WithUTurnPenalty(2.0))
	result, err := factory.Run(g, geom, nodes, restrictions)
	if err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}

	if len(result.Weights) != int(EdgeID(g.GetNumberOfEdges())) {
		// every edge in this synthetic graph is two-way and non-reversed,
		// so every one of them gets numbered.
		t.Fatalf("len(Weights) = %d, want %d", len(result.Weights), g.GetNumberOfEdges())
	}
	if len(result.Edges) == 0 {
		t.Fatalf("expected at least one expanded edge out of a real junction")
	}
	if result.Counters.EdgeExpandedEdgeSeen != len(result.Edges) {
		t.Errorf("Counters.EdgeExpandedEdgeSeen = %d, want %d", result.Counters.EdgeExpandedEdgeSeen, len(result.Edges))
	}

	for _, e := range result.Edges {
		if e.Source == e.Target {
			t.Errorf("expanded edge %+v refers to the same forward id on both ends", e)
		}
	}
}

func TestFactoryRunDeadEndKeepsUturn(t *testing.T) {
	nodes := []QueryNode{
		{Coordinate: orb.Point{0, 0}},
		{Coordinate: orb.Point{1, 0}},
	}
	g := NewMemoryGraph(len(nodes))
	g.AddEdgePair(0, 1, EdgeData{Distance: 100}, EdgeData{Distance: 100})
	geom := NewCompressedGeometryContainer()
	restrictions := NewMapRestrictionMap()

	factory := NewFactory()
	result, err := factory.Run(g, geom, nodes, restrictions)
	if err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	if len(result.Edges) != 2 {
		t.Fatalf("len(Edges) = %d, want 2 (one u-turn edge per direction of travel)", len(result.Edges))
	}
}

func TestFactoryRunWritesOriginalEdgeData(t *testing.T) {
	g, nodes := buildFourWayJunction()
	geom := NewCompressedGeometryContainer()
	restrictions := NewMapRestrictionMap()

	var buf bytes.Buffer
	writer, err := NewOriginalEdgeDataWriter(&nopSeeker{Buffer: &buf})
	if err != nil {
		t.Fatalf("NewOriginalEdgeDataWriter failed: %v", err)
	}

	factory := NewFactory(WithEdgeDataWriter(writer))
	result, err := factory.Run(g, geom, nodes, restrictions)
	if err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	// header (4 bytes) + one record (4+4+1+1+1=11 bytes) per expanded edge.
	want := 4 + len(result.Edges)*11
	if buf.Len() != want {
		t.Errorf("original edge data stream length = %d, want %d", buf.Len(), want)
	}
}

func TestFactoryRunWritesEdgeLookupStreams(t *testing.T) {
	g, nodes := buildFourWayJunction()
	geom := NewCompressedGeometryContainer()
	restrictions := NewMapRestrictionMap()

	var lookupBuf, penaltyBuf bytes.Buffer
	factory := NewFactory(WithEdgeLookup(&lookupBuf, &penaltyBuf))
	result, err := factory.Run(g, geom, nodes, restrictions)
	if err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	if len(result.Edges) == 0 {
		t.Fatalf("expected at least one expanded edge")
	}
	// penalty stream: one uint32 per expanded edge.
	if penaltyBuf.Len() != len(result.Edges)*4 {
		t.Errorf("edge penalty stream length = %d, want %d", penaltyBuf.Len(), len(result.Edges)*4)
	}
	// lookup stream: at least a count + first-node header per edge, since
	// none of these edges carry compressed geometry.
	if lookupBuf.Len() == 0 {
		t.Errorf("expected a non-empty segment lookup stream")
	}
}
