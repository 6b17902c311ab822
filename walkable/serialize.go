package walkable

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/corridormap/ecm/mem"
)

// magic and version tag a serialized Space the same way go-detour's
// reader.go/writer.go tag a DtNavMesh binary: a fixed magic number
// catches wrong-file mistakes, a version catches format drift.
const (
	magic   uint32 = 0x45434d31 // "ECM1"
	version uint32 = 1
)

// header is the fixed-size record written before the three arenas.
// Grounded on go-detour's NavMeshSetHeader (reader.go/writer.go):
// magic+version+counts, read with encoding/binary before any
// variable-length payload.
type header struct {
	Magic        uint32
	Version      uint32
	NumVerts     int32
	NumHalfEdges int32
	NumEvents    int32
	MaxVerts     int32
	MaxHalfEdges int32
	MaxEvents    int32
}

// Save writes every allocated vertex, half-edge and event to w, in
// index order, preceded by a header (spec.md §8: "build (footprint ->
// serialized WalkableSpace + stats)").
//
// The only slot ever freed during a build is CreateEdge's release of the
// half-edge it has just allocated when its twin cannot be, so the freed
// slot is always the last one and indices 0..Len()-1 are exactly the
// live records, written and later restored in the same order — no
// freelist needs saving.
func (s *Space) Save(w io.Writer) error {
	hdr := header{
		Magic:        magic,
		Version:      version,
		NumVerts:     s.Verts.Len(),
		NumHalfEdges: s.HalfEdges.Len(),
		NumEvents:    s.Events.Len(),
		MaxVerts:     s.Verts.Cap(),
		MaxHalfEdges: s.HalfEdges.Cap(),
		MaxEvents:    s.Events.Cap(),
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("walkable: write header: %w", err)
	}
	for i := int32(0); i < hdr.NumVerts; i++ {
		if err := writeVertex(w, s.Verts.At(i)); err != nil {
			return fmt.Errorf("walkable: write vertex %d: %w", i, err)
		}
	}
	for i := int32(0); i < hdr.NumHalfEdges; i++ {
		if err := binary.Write(w, binary.LittleEndian, *s.HalfEdges.At(i)); err != nil {
			return fmt.Errorf("walkable: write half-edge %d: %w", i, err)
		}
	}
	for i := int32(0); i < hdr.NumEvents; i++ {
		if err := writeEvent(w, s.Events.At(i)); err != nil {
			return fmt.Errorf("walkable: write event %d: %w", i, err)
		}
	}
	return nil
}

// Load reads a Space previously written by Save.
func Load(r io.Reader) (*Space, error) {
	var hdr header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("walkable: read header: %w", err)
	}
	if hdr.Magic != magic {
		return nil, fmt.Errorf("walkable: wrong magic number 0x%x", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("walkable: unsupported version %d", hdr.Version)
	}

	s := NewSpace(hdr.MaxVerts, hdr.MaxHalfEdges, hdr.MaxEvents)
	for i := int32(0); i < hdr.NumVerts; i++ {
		idx, v, ok := s.Verts.Alloc()
		if !ok || idx != i {
			return nil, fmt.Errorf("walkable: vertex pool layout mismatch at %d", i)
		}
		if err := readVertex(r, v); err != nil {
			return nil, fmt.Errorf("walkable: read vertex %d: %w", i, err)
		}
	}
	for i := int32(0); i < hdr.NumHalfEdges; i++ {
		idx, h, ok := s.HalfEdges.Alloc()
		if !ok || idx != i {
			return nil, fmt.Errorf("walkable: half-edge pool layout mismatch at %d", i)
		}
		if err := binary.Read(r, binary.LittleEndian, h); err != nil {
			return nil, fmt.Errorf("walkable: read half-edge %d: %w", i, err)
		}
	}
	// edgeTail0 only matters while building (CreateEvent's O(1) append);
	// a loaded Space is read-only from the query side, so every entry is
	// set to mem.NullIndex rather than reconstructed.
	s.edgeTail0 = make([]int32, hdr.NumHalfEdges/2)
	for i := range s.edgeTail0 {
		s.edgeTail0[i] = mem.NullIndex
	}
	for i := int32(0); i < hdr.NumEvents; i++ {
		idx, e, ok := s.Events.Alloc()
		if !ok || idx != i {
			return nil, fmt.Errorf("walkable: event pool layout mismatch at %d", i)
		}
		if err := readEvent(r, e); err != nil {
			return nil, fmt.Errorf("walkable: read event %d: %w", i, err)
		}
	}
	return s, nil
}

// writeVertex/readVertex/writeEvent/readEvent handle the Vertex/Event
// kinds arrays explicitly: siteKind is unexported, so binary.Write's
// reflection can see it (same package), but it's written as a plain
// byte array rather than relying on struct layout assumptions.
func writeVertex(w io.Writer, v *Vertex) error {
	if err := binary.Write(w, binary.LittleEndian, v.Pos); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, v.HalfEdge); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, v.Sides); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, v.kinds); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, v.NumSides)
}

func readVertex(r io.Reader, v *Vertex) error {
	if err := binary.Read(r, binary.LittleEndian, &v.Pos); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &v.HalfEdge); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &v.Sides); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &v.kinds); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &v.NumSides)
}

func writeEvent(w io.Writer, e *Event) error {
	if err := binary.Write(w, binary.LittleEndian, e.Pos); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, e.Sides); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, e.kinds); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, e.Next)
}

func readEvent(r io.Reader, e *Event) error {
	if err := binary.Read(r, binary.LittleEndian, &e.Pos); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.Sides); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.kinds); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &e.Next)
}
