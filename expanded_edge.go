package edgegraph

import (
	"io"

	"github.com/paulmach/osm"
)

// ExpandedEdge is one directed edge of the edge-expanded graph: the
// promotion of a turn, from Source (the edge-based node a traveler is
// leaving) to Target (the edge-based node they arrive at), into a
// first-class routing edge with its own weight.
type ExpandedEdge struct {
	Source EdgeID
	Target EdgeID
	// OriginalEdgeIndex points at the OriginalEdgeData record carrying
	// this edge's turn instruction and name, written out alongside it by
	// GenerateEdgeExpandedEdges.
	OriginalEdgeIndex uint32
	Weight            uint32
	Forward           bool
	Backward          bool
}

// OriginalEdgeData is the guidance metadata for one ExpandedEdge: the
// position of the via edge's own name and travel mode (not the edge it
// turns onto), the instruction a traveler should be given at the turn,
// and which travel modes may use it.
type OriginalEdgeData struct {
	// ViaGeometryPosition is the via edge's own position within its
	// compressed geometry bucket, i.e. where along that edge the turn
	// is taken, not the source-graph node id of the junction.
	ViaGeometryPosition uint32
	NameID              uint32
	Instruction         TurnInstruction
	TravelMode          TravelMode
}

// FactoryCounters tallies why candidates were dropped across an entire
// GenerateEdgeExpandedEdges run, for a factory's summary log line.
type FactoryCounters struct {
	RestrictedTurns      int
	SkippedUturns        int
	SkippedBarrierTurns  int
	EdgeExpandedEdgeSeen int
}

// trafficSignalPenalty is the flat cost added when a turn crosses a node
// carrying a traffic signal, in the same unit as EdgeData.Distance.
const trafficSignalPenalty = 2.0

// GenerateEdgeExpandedEdges walks every non-reversed source-graph edge,
// classifies and post-processes the turns available at its far end, and
// emits one ExpandedEdge per surviving candidate. When edgeDataWriter is
// non-nil, a matching OriginalEdgeData record is appended for each edge,
// in the same order, so ExpandedEdge.OriginalEdgeIndex lines up with the
// record stream on disk.
//
// turnPenaltyFn is an optional hook (typically backed by a routing
// profile's own turn-cost function) that receives the deviation from
// straight-ahead in degrees and returns an additional cost; a failing
// hook is logged and treated as a zero penalty rather than aborting the
// run.
func GenerateEdgeExpandedEdges(
	graph Graph,
	geom *CompressedGeometryContainer,
	nodes []QueryNode,
	restrictions RestrictionMap,
	weights []float64,
	uTurnPenalty float64,
	trafficSignals map[NodeID]struct{},
	turnPenaltyFn func(deviationFromStraight float64) (float64, error),
	edgeDataWriter *OriginalEdgeDataWriter,
	segmentLookupWriter io.Writer,
	edgePenaltyWriter io.Writer,
) ([]ExpandedEdge, FactoryCounters, error) {
	var edges []ExpandedEdge
	var counters FactoryCounters
	var recordIndex uint32

	for u := 0; u < graph.GetNumberOfNodes(); u++ {
		for _, viaEdge := range graph.GetAdjacentEdgeRange(NodeID(u)) {
			edge1 := graph.GetEdgeData(viaEdge)
			if edge1.Reversed {
				continue
			}

			candidates, stats := getTurnCandidates(graph, geom, nodes, restrictions, NodeID(u), viaEdge)
			candidates = optimizeCandidates(graph, viaEdge, candidates)
			candidates = suppressTurns(graph, viaEdge, candidates)

			counters.RestrictedTurns += stats.Restricted
			counters.SkippedBarrierTurns += stats.Barrier
			counters.SkippedUturns += stats.UTurn

			turnNode := graph.GetTarget(viaEdge)
			for _, cand := range candidates {
				if !cand.Valid {
					continue
				}
				edge2 := graph.GetEdgeData(cand.Edge)

				distance := edge1.Distance
				if _, ok := trafficSignals[turnNode]; ok {
					distance += trafficSignalPenalty
				}

				if turnPenaltyFn != nil {
					penalty, err := turnPenaltyFn(straightAngle - cand.Angle)
					if err != nil {
						logDebugWarning("turn penalty hook failed at node %d: %v", turnNode, err)
					} else {
						distance += penalty
					}
				}
				if isUturn(cand.Instruction) {
					distance += uTurnPenalty
				}

				if edgeDataWriter != nil {
					viaPosition, _ := geom.GetPositionForID(viaEdge, turnNode)
					if err := edgeDataWriter.Append(OriginalEdgeData{
						ViaGeometryPosition: uint32(viaPosition),
						NameID:              edge1.NameID,
						Instruction:         cand.Instruction,
						TravelMode:          edge1.TravelMode,
					}); err != nil {
						return nil, counters, err
					}
				}

				if segmentLookupWriter != nil || edgePenaltyWriter != nil {
					fixedPenalty := distance - edge1.Distance
					if edgePenaltyWriter != nil {
						if err := WriteEdgePenalty(edgePenaltyWriter, weightToFixedPoint(fixedPenalty)); err != nil {
							return nil, counters, err
						}
					}
					if segmentLookupWriter != nil {
						firstOSMNode, segments := viaEdgeSegments(geom, nodes, NodeID(u), viaEdge)
						if err := WriteSegmentLookup(segmentLookupWriter, firstOSMNode, segments); err != nil {
							return nil, counters, err
						}
					}
				}

				edges = append(edges, ExpandedEdge{
					Source:            edge1.EdgeID,
					Target:            edge2.EdgeID,
					OriginalEdgeIndex: recordIndex,
					Weight:            weightToFixedPoint(distance),
					Forward:           true,
					Backward:          false,
				})
				recordIndex++
				counters.EdgeExpandedEdgeSeen++
			}
		}
	}
	return edges, counters, nil
}

// weightToFixedPoint clamps and rounds a floating point cost into the
// fixed-point representation used on the wire, keeping InvalidEdgeWeight
// itself free as a sentinel.
func weightToFixedPoint(w float64) uint32 {
	if w < 0 {
		w = 0
	}
	max := float64(InvalidEdgeWeight - 1)
	if w > max {
		return InvalidEdgeWeight - 1
	}
	return uint32(w + 0.5)
}

// viaEdgeSegments walks viaEdge's compressed geometry bucket and returns
// the first OSM node the edge departs from plus one SegmentRecord per
// absorbed node, in travel order, for the optional edge-segment-lookup
// stream.
func viaEdgeSegments(geom *CompressedGeometryContainer, nodes []QueryNode, from NodeID, viaEdge EdgeID) (osm.NodeID, []SegmentRecord) {
	firstOSMNode := nodes[from].OSMNodeID
	bucket := geom.Bucket(viaEdge)
	segments := make([]SegmentRecord, 0, len(bucket))
	prev := nodes[from].Point()
	for _, pt := range bucket {
		next := nodes[pt.NodeID].Point()
		segments = append(segments, SegmentRecord{
			ToOSMNode: nodes[pt.NodeID].OSMNodeID,
			Distance:  greatCircleDistance(prev, next),
			Weight:    pt.Weight,
		})
		prev = next
	}
	return firstOSMNode, segments
}
