package main

import (
	"flag"
	"fmt"
	"os"

	edgegraph "github.com/dlorentz-maps/edgegraph"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

var (
	out          = flag.String("out", "edges.bin", "Filename for the serialized edge-expanded edges")
	edgeDataOut  = flag.String("original-edges-out", "original_edges.bin", "Filename for the serialized original-edge-data stream")
	lookupOut    = flag.String("segment-lookup-out", "segment_lookup.bin", "Filename for the optional edge-segment-lookup stream")
	penaltyOut   = flag.String("edge-penalties-out", "edge_penalties.bin", "Filename for the optional edge-penalty stream")
	enableLookup = flag.Bool("enable-lookup", false, "Write the segment-lookup and edge-penalty streams alongside the edge streams")
	uTurnPenalty = flag.Float64("uturn-penalty", 2.0, "Flat cost added to a u-turn candidate, same unit as edge distance")
	verbose      = flag.Bool("verbose", true, "Print progress while running the factory")
)

// buildDemoGraph constructs a minimal three-way (T) intersection so the CLI has
// something to transform without depending on an OSM parsing pipeline,
// which this module treats as an external collaborator.
func buildDemoGraph() (edgegraph.Graph, []edgegraph.QueryNode, *edgegraph.CompressedGeometryContainer) {
	nodes := []edgegraph.QueryNode{
		{Coordinate: orb.Point{37.6150, 55.7500}}, // 0: west arm
		{Coordinate: orb.Point{37.6173, 55.7500}}, // 1: center
		{Coordinate: orb.Point{37.6196, 55.7500}}, // 2: east arm
		{Coordinate: orb.Point{37.6173, 55.7523}}, // 3: north arm
	}

	graph := edgegraph.NewMemoryGraph(len(nodes))
	mkEdge := func(nameID uint32) (edgegraph.EdgeData, edgegraph.EdgeData) {
		return edgegraph.EdgeData{
				Distance:   230,
				NameID:     nameID,
				RoadClass:  edgegraph.ROAD_PRIMARY,
				TravelMode: edgegraph.TravelModeDriving,
			}, edgegraph.EdgeData{
				Distance:   230,
				NameID:     nameID,
				RoadClass:  edgegraph.ROAD_PRIMARY,
				TravelMode: edgegraph.TravelModeDriving,
			}
	}

	westFwd, westRev := mkEdge(1)
	graph.AddEdgePair(0, 1, westFwd, westRev)
	eastFwd, eastRev := mkEdge(1)
	graph.AddEdgePair(1, 2, eastFwd, eastRev)
	northFwd, northRev := mkEdge(2)
	graph.AddEdgePair(1, 3, northFwd, northRev)

	geom := edgegraph.NewCompressedGeometryContainer()
	return graph, nodes, geom
}

func main() {
	flag.Parse()

	graph, nodes, geom := buildDemoGraph()
	restrictions := edgegraph.NewMapRestrictionMap()

	edgeFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "can't create edges output file"))
		os.Exit(1)
	}
	defer edgeFile.Close()

	recordFile, err := os.Create(*edgeDataOut)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "can't create original edge data output file"))
		os.Exit(1)
	}
	defer recordFile.Close()

	edgeDataWriter, err := edgegraph.NewOriginalEdgeDataWriter(recordFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "can't start original edge data writer"))
		os.Exit(1)
	}

	options := []edgegraph.FactoryOption{
		edgegraph.WithUTurnPenalty(*uTurnPenalty),
		edgegraph.WithVerbose(*verbose),
		edgegraph.WithEdgeDataWriter(edgeDataWriter),
	}

	if *enableLookup {
		lookupFile, err := os.Create(*lookupOut)
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "can't create segment lookup output file"))
			os.Exit(1)
		}
		defer lookupFile.Close()

		penaltyFile, err := os.Create(*penaltyOut)
		if err != nil {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, "can't create edge penalty output file"))
			os.Exit(1)
		}
		defer penaltyFile.Close()

		options = append(options, edgegraph.WithEdgeLookup(lookupFile, penaltyFile))
	}

	factory := edgegraph.NewFactory(options...)

	result, err := factory.Run(graph, geom, nodes, restrictions)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "factory run failed"))
		os.Exit(1)
	}

	if err := result.WriteEdges(edgeFile); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "can't write edges"))
		os.Exit(1)
	}

	fmt.Println(result.Summary())
}
