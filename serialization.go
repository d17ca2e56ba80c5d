package edgegraph

import (
	"encoding/binary"
	"io"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// flushThreshold bounds how many OriginalEdgeData records are buffered in
// memory before being flushed to disk, keeping peak memory bounded on
// very large graphs regardless of how many turns the factory discovers.
const flushThreshold = 10 * 1024 * 1024

// OriginalEdgeDataWriter streams OriginalEdgeData records to a seekable
// sink using a length-prefix-then-seek-back header: a placeholder record
// count is written first, records are appended and periodically flushed,
// and Close() seeks back to patch in the real count once every record has
// been written.
type OriginalEdgeDataWriter struct {
	w     io.WriteSeeker
	buf   []OriginalEdgeData
	total uint32
}

// NewOriginalEdgeDataWriter reserves the header and returns a writer
// ready to accept records.
func NewOriginalEdgeDataWriter(w io.WriteSeeker) (*OriginalEdgeDataWriter, error) {
	if err := binary.Write(w, binary.LittleEndian, uint32(0)); err != nil {
		return nil, errors.Wrap(err, "can't reserve original edge data header")
	}
	return &OriginalEdgeDataWriter{w: w}, nil
}

// Append buffers one record, flushing automatically once flushThreshold
// records have accumulated.
func (o *OriginalEdgeDataWriter) Append(rec OriginalEdgeData) error {
	o.buf = append(o.buf, rec)
	o.total++
	if len(o.buf) >= flushThreshold {
		return o.flush()
	}
	return nil
}

func (o *OriginalEdgeDataWriter) flush() error {
	for _, rec := range o.buf {
		if err := binary.Write(o.w, binary.LittleEndian, rec.ViaGeometryPosition); err != nil {
			return errors.Wrap(err, "can't write via geometry position")
		}
		if err := binary.Write(o.w, binary.LittleEndian, rec.NameID); err != nil {
			return errors.Wrap(err, "can't write name id")
		}
		if err := binary.Write(o.w, binary.LittleEndian, uint8(rec.Instruction.Type)); err != nil {
			return errors.Wrap(err, "can't write turn type")
		}
		if err := binary.Write(o.w, binary.LittleEndian, uint8(rec.Instruction.Modifier)); err != nil {
			return errors.Wrap(err, "can't write turn modifier")
		}
		if err := binary.Write(o.w, binary.LittleEndian, uint8(rec.TravelMode)); err != nil {
			return errors.Wrap(err, "can't write travel mode")
		}
	}
	o.buf = o.buf[:0]
	return nil
}

// Close flushes any remaining buffered records and patches the header
// with the final record count.
func (o *OriginalEdgeDataWriter) Close() error {
	if err := o.flush(); err != nil {
		return err
	}
	if _, err := o.w.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "can't seek to original edge data header")
	}
	if err := binary.Write(o.w, binary.LittleEndian, o.total); err != nil {
		return errors.Wrap(err, "can't rewrite original edge data header")
	}
	if _, err := o.w.Seek(0, io.SeekEnd); err != nil {
		return errors.Wrap(err, "can't seek back past original edge data")
	}
	return nil
}

// WriteExpandedEdges writes a flat little-endian dump of edges, prefixed
// by their count, matching the same length-prefix convention as
// OriginalEdgeDataWriter.
func WriteExpandedEdges(w io.Writer, edges []ExpandedEdge) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(edges))); err != nil {
		return errors.Wrap(err, "can't write expanded edge count")
	}
	for _, e := range edges {
		if err := binary.Write(w, binary.LittleEndian, uint32(e.Source)); err != nil {
			return errors.Wrap(err, "can't write edge source")
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(e.Target)); err != nil {
			return errors.Wrap(err, "can't write edge target")
		}
		if err := binary.Write(w, binary.LittleEndian, e.OriginalEdgeIndex); err != nil {
			return errors.Wrap(err, "can't write original edge index")
		}
		if err := binary.Write(w, binary.LittleEndian, e.Weight); err != nil {
			return errors.Wrap(err, "can't write edge weight")
		}
		if err := binary.Write(w, binary.LittleEndian, e.Forward); err != nil {
			return errors.Wrap(err, "can't write edge forward flag")
		}
		if err := binary.Write(w, binary.LittleEndian, e.Backward); err != nil {
			return errors.Wrap(err, "can't write edge backward flag")
		}
	}
	return nil
}

// SegmentRecord is one hop of a compressed way's original geometry, used
// by the optional edge-segment-lookup stream to let a caller reconstruct
// turn-by-turn geometry without re-parsing the source data.
type SegmentRecord struct {
	ToOSMNode osm.NodeID
	Distance  float64
	Weight    uint32
}

// WriteSegmentLookup writes one variable-length record for one expanded
// edge: a node count, the first OSM node, then each absorbed segment's
// target node, distance and weight. An edge without compressed geometry
// still gets a record holding just the count and the first node. It is
// an optional companion stream — callers that don't need turn-by-turn
// geometry can skip it entirely.
func WriteSegmentLookup(w io.Writer, firstOSMNode osm.NodeID, segments []SegmentRecord) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(segments)+1)); err != nil {
		return errors.Wrap(err, "can't write segment count")
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(firstOSMNode)); err != nil {
		return errors.Wrap(err, "can't write first osm node")
	}
	for _, seg := range segments {
		if err := binary.Write(w, binary.LittleEndian, uint64(seg.ToOSMNode)); err != nil {
			return errors.Wrap(err, "can't write segment target node")
		}
		if err := binary.Write(w, binary.LittleEndian, seg.Distance); err != nil {
			return errors.Wrap(err, "can't write segment distance")
		}
		if err := binary.Write(w, binary.LittleEndian, seg.Weight); err != nil {
			return errors.Wrap(err, "can't write segment weight")
		}
	}
	return nil
}

// WriteEdgePenalty writes the fixed penalty baked into one expanded
// edge's weight beyond its plain travel distance (turn penalties, traffic
// signal delays, ...). Paired positionally with the segment-lookup stream
// so a caller can subtract it back out when reconstructing per-segment
// weights.
func WriteEdgePenalty(w io.Writer, fixedPenalty uint32) error {
	if err := binary.Write(w, binary.LittleEndian, fixedPenalty); err != nil {
		return errors.Wrap(err, "can't write edge penalty")
	}
	return nil
}
