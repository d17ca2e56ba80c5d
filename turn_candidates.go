package edgegraph

import "sort"

// TurnCandidate is one possible continuation out of a junction, discovered
// by getTurnCandidates and mutated in place by the post-processing passes
// before it becomes an ExpandedEdge.
type TurnCandidate struct {
	// Edge is the source-graph edge this candidate turns onto.
	Edge EdgeID
	// Valid is false for candidates pruned by a restriction, a barrier
	// or a redundant u-turn; invalid candidates are dropped from the
	// final edge list but still occupy a slot during angle-based
	// reasoning until pruneInvalidEquivalents removes them.
	Valid       bool
	Angle       float64
	Instruction TurnInstruction
	Confidence  float64
}

// TurnCandidateStats counts why candidates were rejected, for the
// factory's summary counters.
type TurnCandidateStats struct {
	Restricted int
	Barrier    int
	UTurn      int
}

// getTurnCandidates enumerates every edge leaving the target of viaEdge,
// classifying and scoring each one as a possible continuation for a
// traveler arriving at from->viaEdge.
func getTurnCandidates(graph Graph, geom *CompressedGeometryContainer, nodes []QueryNode, restrictions RestrictionMap, from NodeID, viaEdge EdgeID) ([]TurnCandidate, TurnCandidateStats) {
	turnNode := graph.GetTarget(viaEdge)
	onlyTarget := restrictions.OnlyTurnFrom(from, turnNode)
	isBarrierNode := restrictions.IsBarrier(turnNode)

	var stats TurnCandidateStats
	var candidates []TurnCandidate

	// Must start false: an uninitialized read here would let a junction
	// spuriously inherit "roundabout entry" state from whatever happened
	// to be on the stack, silently corrupting roundabout-exit
	// classification at unrelated junctions.
	hasNonRoundabout := false
	hasRoundaboutEntry := false

	for _, onto := range graph.GetAdjacentEdgeRange(turnNode) {
		ontoData := graph.GetEdgeData(onto)
		valid := true
		if ontoData.Reversed {
			valid = false
		}
		to := graph.GetTarget(onto)

		if valid && onlyTarget != SpecialNodeID && to != onlyTarget {
			valid = false
			stats.Restricted++
		}

		if valid {
			switch {
			case isBarrierNode && from != to:
				valid = false
				stats.Barrier++
			case !isBarrierNode && from == to && graph.GetOutDegree(turnNode) > 1:
				if countBidirectionalEdges(graph, turnNode) > 1 {
					valid = false
					stats.UTurn++
				}
			}
		}

		// Only consult the generic restriction oracle when no only-turn
		// restriction is active for this approach: an active only-turn
		// allowance already fully decided validity above, so checking
		// IsRestricted on top would be redundant at best and would
		// double-count an already-rejected target at worst.
		if valid && onlyTarget == SpecialNodeID && restrictions.IsRestricted(from, turnNode, to) {
			valid = false
			stats.Restricted++
		}

		fromPoint := representativeCoordinate(from, turnNode, viaEdge, true, geom, nodes)
		viaPoint := nodes[turnNode].Point()
		toPoint := representativeCoordinate(turnNode, to, onto, false, geom, nodes)
		angle := computeAngle(fromPoint, viaPoint, toPoint)

		instruction := analyzeTurn(graph, from, viaEdge, turnNode, onto, to, angle)

		if valid && !entersRoundabout(instruction) {
			hasNonRoundabout = true
		} else if valid {
			hasRoundaboutEntry = true
		}

		candidates = append(candidates, TurnCandidate{
			Edge:        onto,
			Valid:       valid,
			Angle:       angle,
			Instruction: instruction,
			Confidence:  turnConfidence(angle, instruction, valid),
		})
	}

	if hasNonRoundabout && hasRoundaboutEntry {
		for i := range candidates {
			switch candidates[i].Instruction.Type {
			case TurnTypeEnterRotary:
				candidates[i].Instruction.Type = TurnTypeEnterRotaryAtExit
			case TurnTypeEnterRoundabout:
				candidates[i].Instruction.Type = TurnTypeEnterRoundaboutAtExit
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Angle < candidates[j].Angle })

	candidates = pruneInvalidEquivalents(candidates)

	return candidates, stats
}

// countBidirectionalEdges counts the outgoing edges of node whose target
// also has a return edge back to node, i.e. genuinely two-way connections
// as opposed to one-way stubs. Used to tell a real, multi-road
// intersection from a simple pass-through of a divided carriageway when
// deciding whether from==to represents a discretionary u-turn.
func countBidirectionalEdges(graph Graph, node NodeID) int {
	count := 0
	for _, e := range graph.GetAdjacentEdgeRange(node) {
		if graph.GetEdgeData(e).Reversed {
			continue
		}
		target := graph.GetTarget(e)
		back := graph.FindEdge(target, node)
		if back != SpecialEdgeID && !graph.GetEdgeData(back).Reversed {
			count++
		}
	}
	return count
}

// pruneInvalidEquivalents drops invalid candidates whose angle is within
// narrowTurnAngle of a valid neighbor: such a candidate contributes
// nothing a driver could distinguish from the road that superseded it.
// candidates must already be sorted by angle.
func pruneInvalidEquivalents(candidates []TurnCandidate) []TurnCandidate {
	i := 0
	for i < len(candidates) {
		n := len(candidates)
		if n <= 1 || candidates[i].Valid {
			i++
			continue
		}
		left := (i - 1 + n) % n
		right := (i + 1) % n
		closeToLeft := candidates[left].Valid && angularDeviation(candidates[i].Angle, candidates[left].Angle) < narrowTurnAngle
		closeToRight := candidates[right].Valid && angularDeviation(candidates[i].Angle, candidates[right].Angle) < narrowTurnAngle
		if closeToLeft || closeToRight {
			candidates = append(candidates[:i], candidates[i+1:]...)
			continue
		}
		i++
	}
	return candidates
}

// analyzeTurn classifies the maneuver a traveler makes going from edge1
// (arriving at viaNode) onto edge2 (leaving towards toNode).
func analyzeTurn(graph Graph, fromNode NodeID, edge1 EdgeID, viaNode NodeID, edge2 EdgeID, toNode NodeID, angle float64) TurnInstruction {
	if fromNode == toNode {
		return TurnInstruction{Type: TurnTypeTurn, Modifier: ModifierUTurn}
	}

	e1 := graph.GetEdgeData(edge1)
	e2 := graph.GetEdgeData(edge2)

	switch {
	case e1.Roundabout && e2.Roundabout:
		if graph.GetDirectedOutDegree(viaNode) == 1 {
			return noTurnInstruction()
		}
		return TurnInstruction{Type: TurnTypeRemainRoundabout, Modifier: getTurnDirection(angle)}
	case e2.Roundabout:
		return TurnInstruction{Type: TurnTypeEnterRoundabout, Modifier: getTurnDirection(angle)}
	case e1.Roundabout:
		return TurnInstruction{Type: TurnTypeExitRoundabout, Modifier: getTurnDirection(angle)}
	case !isRampClass(e1.RoadClass) && isRampClass(e2.RoadClass):
		return TurnInstruction{Type: TurnTypeRamp, Modifier: getTurnDirection(angle)}
	default:
		return TurnInstruction{Type: TurnTypeTurn, Modifier: getTurnDirection(angle)}
	}
}
