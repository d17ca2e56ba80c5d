package edgegraph

import (
	"fmt"
	"strings"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
)

// DumpTurnCandidatesGeoJSON renders the candidates considered at one
// junction as a GeoJSON FeatureCollection of points, one per candidate,
// carrying its angle, instruction and validity as properties. It mirrors
// the OSM converters' GeoJSON marshaling idiom but serves turn debugging
// instead of raw way export.
func DumpTurnCandidatesGeoJSON(via orb.Point, candidates []TurnCandidate, graph Graph, nodes []QueryNode) string {
	fc := geojson.NewFeatureCollection()
	viaFeature := geojson.NewPointFeature([]float64{via.Lon(), via.Lat()})
	viaFeature.SetProperty("role", "via")
	fc.AddFeature(viaFeature)

	for _, cand := range candidates {
		edgeData := graph.GetEdgeData(cand.Edge)
		target := graph.GetTarget(cand.Edge)
		if int(target) >= len(nodes) {
			continue
		}
		coord := nodes[target].Point()
		feature := geojson.NewPointFeature([]float64{coord.Lon(), coord.Lat()})
		feature.SetProperty("angle", cand.Angle)
		feature.SetProperty("valid", cand.Valid)
		feature.SetProperty("confidence", cand.Confidence)
		feature.SetProperty("turn_type", cand.Instruction.Type.String())
		feature.SetProperty("modifier", cand.Instruction.Modifier.String())
		if edgeData != nil {
			feature.SetProperty("road_class", edgeData.RoadClass.String())
		}
		fc.AddFeature(feature)
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert turn candidates to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// DumpExpandedNodesWKT renders every edge-expanded node's originating
// coordinate as a WKT MULTIPOINT, letting a reviewer load the whole
// edge-expanded node set into a GIS tool in one paste.
func DumpExpandedNodesWKT(nodes []ExpandedNode, queryNodes []QueryNode) string {
	ptsStr := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if int(n.V) >= len(queryNodes) {
			continue
		}
		coord := queryNodes[n.V].Point()
		ptsStr = append(ptsStr, fmt.Sprintf("%f %f", coord.Lon(), coord.Lat()))
	}
	return fmt.Sprintf("MULTIPOINT(%s)", strings.Join(ptsStr, ","))
}
