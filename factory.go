package edgegraph

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Factory drives the whole node-based-to-edge-based transformation: it
// renumbers the source graph's edges, expands them into edge-based nodes,
// then classifies and post-processes every turn into edge-based edges.
type Factory struct {
	uTurnPenalty        float64
	trafficSignals      map[NodeID]struct{}
	turnPenaltyFn       func(deviationFromStraight float64) (float64, error)
	verbose             bool
	edgeDataWriter      *OriginalEdgeDataWriter
	segmentLookupWriter io.Writer
	edgePenaltyWriter   io.Writer
}

// FactoryOption configures a Factory at construction time.
type FactoryOption func(*Factory)

// NewFactory builds a Factory with defaults: a u-turn penalty of 2.0 (in
// the same unit as EdgeData.Distance) and silent logging.
func NewFactory(options ...FactoryOption) *Factory {
	f := &Factory{
		uTurnPenalty:   2.0,
		trafficSignals: make(map[NodeID]struct{}),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// WithUTurnPenalty overrides the flat cost added to any u-turn candidate.
func WithUTurnPenalty(penalty float64) FactoryOption {
	return func(f *Factory) {
		f.uTurnPenalty = penalty
	}
}

// WithTrafficSignals marks which source-graph nodes carry a traffic
// signal, so crossing them costs an extra trafficSignalPenalty.
func WithTrafficSignals(signals map[NodeID]struct{}) FactoryOption {
	return func(f *Factory) {
		f.trafficSignals = signals
	}
}

// WithTurnPenaltyFn installs a routing-profile turn-cost hook, called
// with the angular deviation from straight-ahead for every candidate.
func WithTurnPenaltyFn(fn func(deviationFromStraight float64) (float64, error)) FactoryOption {
	return func(f *Factory) {
		f.turnPenaltyFn = fn
	}
}

// WithVerbose toggles progress logging to stdout.
func WithVerbose(verbose bool) FactoryOption {
	return func(f *Factory) {
		f.verbose = verbose
	}
}

// WithEdgeDataWriter installs the sink that OriginalEdgeData records are
// streamed to as edges are discovered. Passing nil (the default) skips
// writing that stream entirely.
func WithEdgeDataWriter(w *OriginalEdgeDataWriter) FactoryOption {
	return func(f *Factory) {
		f.edgeDataWriter = w
	}
}

// WithEdgeLookup enables the optional edge-segment-lookup output: a
// per-turn-by-turn-geometry stream (segmentLookupWriter) plus a matching
// fixed-penalty stream (edgePenaltyWriter), written for every surviving
// candidate alongside the original-edge-data stream. Either writer may be
// nil to skip that half of the pair.
func WithEdgeLookup(segmentLookupWriter, edgePenaltyWriter io.Writer) FactoryOption {
	return func(f *Factory) {
		f.segmentLookupWriter = segmentLookupWriter
		f.edgePenaltyWriter = edgePenaltyWriter
	}
}

// Result bundles everything Run produces: the edge-based node and edge
// sets, the weight vector from RenumberEdges, and a tally of why
// candidates were dropped along the way.
type Result struct {
	Nodes    []ExpandedNode
	Edges    []ExpandedEdge
	Weights  []float64
	Counters FactoryCounters
}

// Run executes the full node-based-graph-to-edge-based-graph pipeline:
// renumber edges, generate edge-expanded nodes, then classify and
// post-process every turn into edge-expanded edges.
func (f *Factory) Run(graph Graph, geom *CompressedGeometryContainer, nodes []QueryNode, restrictions RestrictionMap) (*Result, error) {
	logProgress(f.verbose, "renumbering %d source edges\n", graph.GetNumberOfEdges())
	weights, edgeCount := RenumberEdges(graph, f.uTurnPenalty)
	logProgress(f.verbose, "assigned %d edge ids\n", edgeCount)

	logProgress(f.verbose, "generating edge-expanded nodes\n")
	expandedNodes := GenerateEdgeExpandedNodes(graph, geom, weights)
	logProgress(f.verbose, "generated %d edge-expanded nodes\n", len(expandedNodes))

	logProgress(f.verbose, "classifying and expanding turns\n")
	expandedEdges, counters, err := GenerateEdgeExpandedEdges(
		graph,
		geom,
		nodes,
		restrictions,
		weights,
		f.uTurnPenalty,
		f.trafficSignals,
		f.turnPenaltyFn,
		f.edgeDataWriter,
		f.segmentLookupWriter,
		f.edgePenaltyWriter,
	)
	if err != nil {
		return nil, errors.Wrap(err, "can't generate edge-expanded edges")
	}

	if f.edgeDataWriter != nil {
		if err := f.edgeDataWriter.Close(); err != nil {
			return nil, errors.Wrap(err, "can't close original edge data writer")
		}
	}

	logProgress(f.verbose, "done: %d edge-expanded edges, %d restricted, %d barrier, %d u-turn skipped\n",
		counters.EdgeExpandedEdgeSeen, counters.RestrictedTurns, counters.SkippedBarrierTurns, counters.SkippedUturns)

	return &Result{
		Nodes:    expandedNodes,
		Edges:    expandedEdges,
		Weights:  weights,
		Counters: counters,
	}, nil
}

// WriteEdges dumps the Result's edge-expanded edges to w using the wire
// format implemented by WriteExpandedEdges.
func (r *Result) WriteEdges(w io.Writer) error {
	if err := WriteExpandedEdges(w, r.Edges); err != nil {
		return errors.Wrap(err, "can't write expanded edges")
	}
	return nil
}

// Summary renders a one-line human-readable recap of a Result's counters.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"nodes=%d edges=%d restricted=%d barrier=%d uturn=%d",
		len(r.Nodes), len(r.Edges), r.Counters.RestrictedTurns, r.Counters.SkippedBarrierTurns, r.Counters.SkippedUturns,
	)
}
