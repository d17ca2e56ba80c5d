package edgegraph

import (
	"testing"

	"github.com/paulmach/orb"
)

// buildFourWayJunction lays out a plus-shaped junction centered at node 1,
// with arms at west(0), east(2), north(3), south(4), all two-way.
func buildFourWayJunction() (*MemoryGraph, []QueryNode) {
	nodes := []QueryNode{
		{Coordinate: orb.Point{-1, 0}},
		{Coordinate: orb.Point{0, 0}},
		{Coordinate: orb.Point{1, 0}},
		{Coordinate: orb.Point{0, 1}},
		{Coordinate: orb.Point{0, -1}},
	}
	g := NewMemoryGraph(len(nodes))
	g.AddEdgePair(0, 1, EdgeData{Distance: 100}, EdgeData{Distance: 100})
	g.AddEdgePair(1, 2, EdgeData{Distance: 100}, EdgeData{Distance: 100})
	g.AddEdgePair(1, 3, EdgeData{Distance: 100}, EdgeData{Distance: 100})
	g.AddEdgePair(1, 4, EdgeData{Distance: 100}, EdgeData{Distance: 100})
	return g, nodes
}

func TestGetTurnCandidatesStraightThrough(t *testing.T) {
	g, nodes := buildFourWayJunction()
	geom := NewCompressedGeometryContainer()
	restrictions := NewMapRestrictionMap()

	viaEdge := g.FindEdge(0, 1)
	candidates, _ := getTurnCandidates(g, geom, nodes, restrictions, 0, viaEdge)

	var validCount int
	var sawStraight bool
	for _, c := range candidates {
		to := g.GetTarget(c.Edge)
		if to == 0 {
			continue
		}
		if !c.Valid {
			t.Errorf("candidate onto edge %v (target %v) unexpectedly invalid", c.Edge, to)
		}
		validCount++
		if to == 2 && c.Instruction.Modifier == ModifierStraight {
			sawStraight = true
		}
	}
	if validCount != 3 {
		t.Fatalf("valid candidate count = %d, want 3 (east/north/south)", validCount)
	}
	if !sawStraight {
		t.Errorf("expected the east-bound continuation to be classified straight")
	}
}

func TestGetTurnCandidatesUturnPrunedAtMultiRoadJunction(t *testing.T) {
	g, nodes := buildFourWayJunction()
	geom := NewCompressedGeometryContainer()
	restrictions := NewMapRestrictionMap()

	viaEdge := g.FindEdge(0, 1)
	candidates, stats := getTurnCandidates(g, geom, nodes, restrictions, 0, viaEdge)

	for _, c := range candidates {
		if g.GetTarget(c.Edge) == 0 && c.Valid {
			t.Errorf("did not expect the u-turn back onto the arriving arm to stay valid at a 4-way junction")
		}
	}
	if stats.UTurn == 0 {
		t.Errorf("expected the pruned u-turn to be counted in stats")
	}
}

func TestGetTurnCandidatesUturnKeptAtDeadEnd(t *testing.T) {
	nodes := []QueryNode{
		{Coordinate: orb.Point{0, 0}},
		{Coordinate: orb.Point{1, 0}},
	}
	g := NewMemoryGraph(len(nodes))
	g.AddEdgePair(0, 1, EdgeData{Distance: 100}, EdgeData{Distance: 100})
	geom := NewCompressedGeometryContainer()
	restrictions := NewMapRestrictionMap()

	viaEdge := g.FindEdge(0, 1)
	candidates, _ := getTurnCandidates(g, geom, nodes, restrictions, 0, viaEdge)

	if len(candidates) != 1 {
		t.Fatalf("len(candidates) = %d, want 1 (the only legal move is the u-turn back)", len(candidates))
	}
	if !candidates[0].Valid {
		t.Errorf("expected the sole u-turn out of a dead end to remain valid")
	}
}

func TestGetTurnCandidatesOnlyTurnRestriction(t *testing.T) {
	g, nodes := buildFourWayJunction()
	geom := NewCompressedGeometryContainer()
	restrictions := NewMapRestrictionMap()
	restrictions.AddOnlyTurn(0, 1, 3)

	viaEdge := g.FindEdge(0, 1)
	candidates, stats := getTurnCandidates(g, geom, nodes, restrictions, 0, viaEdge)

	for _, c := range candidates {
		to := g.GetTarget(c.Edge)
		if to == 3 && !c.Valid {
			t.Errorf("expected the only-turn target to remain valid")
		}
		if to != 3 && c.Valid {
			t.Errorf("expected every candidate other than the only-turn target to be invalid")
		}
	}
	if stats.Restricted == 0 {
		t.Errorf("expected restricted candidates to be counted")
	}
}

func TestGetTurnCandidatesBarrierAllowsOnlyUturn(t *testing.T) {
	g, nodes := buildFourWayJunction()
	geom := NewCompressedGeometryContainer()
	restrictions := NewMapRestrictionMap()
	restrictions.AddBarrier(1)

	viaEdge := g.FindEdge(0, 1)
	candidates, stats := getTurnCandidates(g, geom, nodes, restrictions, 0, viaEdge)

	for _, c := range candidates {
		to := g.GetTarget(c.Edge)
		if to != 0 && c.Valid {
			t.Errorf("expected every non-uturn candidate through a barrier node to be invalid")
		}
	}
	if stats.Barrier == 0 {
		t.Errorf("expected barrier-blocked candidates to be counted")
	}
}
