package edgegraph

// GeometryPoint is one node swallowed into a compressed edge, together
// with the weight of the sub-segment leading up to it. A straight run of
// degree-2 nodes between two intersections collapses into a single Graph
// edge whose bucket lists every node it absorbed, in travel order.
type GeometryPoint struct {
	NodeID NodeID
	Weight uint32
}

// CompressedGeometryContainer maps an EdgeID to the chain of nodes and
// per-node weights it was compressed from, mirroring OSRM's
// CompressedEdgeContainer. Edges with an empty bucket are direct
// intersection-to-intersection edges with nothing compressed into them.
type CompressedGeometryContainer struct {
	buckets map[EdgeID][]GeometryPoint
}

// NewCompressedGeometryContainer returns an empty container.
func NewCompressedGeometryContainer() *CompressedGeometryContainer {
	return &CompressedGeometryContainer{buckets: make(map[EdgeID][]GeometryPoint)}
}

// AddBucket records the compressed chain for edge, in travel order from
// source to target.
func (c *CompressedGeometryContainer) AddBucket(edge EdgeID, points []GeometryPoint) {
	c.buckets[edge] = points
}

// Bucket returns the compressed chain for edge, or nil if edge carries no
// compressed geometry.
func (c *CompressedGeometryContainer) Bucket(edge EdgeID) []GeometryPoint {
	return c.buckets[edge]
}

// HasEntryForID reports whether edge has a non-empty compressed chain.
func (c *CompressedGeometryContainer) HasEntryForID(edge EdgeID) bool {
	return len(c.buckets[edge]) > 0
}

// GetPositionForID returns the index of node within edge's bucket, and
// false if node was never compressed into edge.
func (c *CompressedGeometryContainer) GetPositionForID(edge EdgeID, node NodeID) (int, bool) {
	bucket := c.buckets[edge]
	for i := range bucket {
		if bucket[i].NodeID == node {
			return i, true
		}
	}
	return 0, false
}
