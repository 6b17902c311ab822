// Package walkable implements the WalkableSpace annotated half-edge
// mesh spec.md §3 and §9 describe — the Explicit Corridor Map itself —
// plus the edge tracer (spec.md §4.5) that builds one from classified
// Voronoi feature pixels.
//
// Grounded on original_source/include/corridormap/runtime_types.h for
// the exact record shapes (vertex/half_edge/event, even/odd half-edge
// pairing, two-direction event threading) ported into go-detour's own
// arena-with-stable-index idiom: detour/node.go's NodePool (parallel
// slice + explicit free index bookkeeping) and recast/heightfield.go's
// rcSpanPool (freelist-backed fixed pool) are the Go-idiom templates
// package mem's generic Arena[T] follows, and this package is its first
// concrete user.
package walkable

import (
	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/internal/dbg"
	"github.com/corridormap/ecm/mem"
)

// MaxVertexSides is the maximum number of closest-obstacle contact
// points ("sides") a single vertex can carry (spec.md §3,
// "max_vertex_sides=4").
const MaxVertexSides = 4

// siteKind tags whether a contact point sits on an obstacle edge (and so
// anchors a straight border) or at an obstacle/Voronoi vertex (and so
// anchors an arc). Used by package corridor to classify curve types
// (spec.md §4.6); not part of spec.md's literal three-field record
// tables but the bookkeeping those tables' derived behaviour requires,
// the same way go-detour's Poly packs Area/Type into AreaAndType beyond
// its prose description.
type siteKind uint8

const (
	siteOnEdge siteKind = iota
	siteAtVertex
)

// Vertex is a Voronoi vertex of the ECM (spec.md §3).
type Vertex struct {
	Pos      geom2.Vec2
	HalfEdge int32 // one outgoing half-edge, or mem.NullIndex if isolated
	Sides    [MaxVertexSides]geom2.Vec2
	kinds    [MaxVertexSides]siteKind
	NumSides int32
}

// HalfEdge is one direction of a Voronoi edge (spec.md §3). Half-edges
// are stored as opposite pairs at even/odd indices:
// half_edge(2k)/half_edge(2k+1) are opposites, so Opposite(h) = h XOR 1.
type HalfEdge struct {
	Target int32 // target vertex
	Next   int32 // next outgoing half-edge, CCW, around Source(h)
	Event  int32 // first event along this half-edge's direction
}

// Event is a point along a Voronoi edge where the closest obstacle pair
// changes (spec.md §3).
type Event struct {
	Pos   geom2.Vec2
	Sides [2]geom2.Vec2 // left, right contact points
	kinds [2]siteKind
	Next  [2]int32 // one linked-list slot per half-edge direction (parity)
}

// Space is the WalkableSpace: an arena-allocated, free-list-backed
// half-edge mesh (spec.md §3, §5, §9).
type Space struct {
	Verts     *mem.Arena[Vertex]
	HalfEdges *mem.Arena[HalfEdge]
	Events    *mem.Arena[Event]

	// edgeTail0 tracks, per edge (half-edge pair, indexed by h/2), the
	// tail of that edge's direction-0 event list so CreateEvent can
	// append in O(1) (spec.md §4.5, "Event threading": "direction-0 list
	// is append").
	edgeTail0 []int32
}

// NewSpace allocates a Space with room for the given maximum vertex,
// half-edge and event counts (spec.md §3, "Lifecycle"): three
// fixed-capacity mem.Arena pools allocated up front.
func NewSpace(maxVerts, maxHalfEdges, maxEvents int32) *Space {
	return &Space{
		Verts:     mem.NewArena[Vertex](maxVerts),
		HalfEdges: mem.NewArena[HalfEdge](maxHalfEdges),
		Events:    mem.NewArena[Event](maxEvents),
		edgeTail0: make([]int32, 0, maxHalfEdges/2),
	}
}

// CreateVertex allocates a new vertex at pos. ok is false on pool
// exhaustion (spec.md §7).
func (s *Space) CreateVertex(pos geom2.Vec2) (idx int32, ok bool) {
	idx, v, ok := s.Verts.Alloc()
	if !ok {
		return mem.NullIndex, false
	}
	v.Pos = pos
	v.HalfEdge = mem.NullIndex
	return idx, true
}

// FirstHalfEdgeOf returns one of v's outgoing half-edges (an arbitrary
// entry point into its CCW ring), or mem.NullIndex if v has no edges.
func (s *Space) FirstHalfEdgeOf(v int32) int32 { return s.Verts.At(v).HalfEdge }

// Opposite returns the opposite-direction half-edge of h.
func (s *Space) Opposite(h int32) int32 { return h ^ 1 }

// Target returns h's target vertex.
func (s *Space) Target(h int32) int32 { return s.HalfEdges.At(h).Target }

// Source returns h's source vertex, derived as the target of its
// opposite (spec.md §9, "Even/odd indexing gives opposite in constant
// time without a stored pointer"; Source follows the same trick).
func (s *Space) Source(h int32) int32 { return s.Target(s.Opposite(h)) }

// Next returns the next outgoing half-edge, CCW, around Source(h).
func (s *Space) Next(h int32) int32 { return s.HalfEdges.At(h).Next }

// Degree returns the number of edges incident to vertex v.
func (s *Space) Degree(v int32) int32 {
	first := s.Verts.At(v).HalfEdge
	if first == mem.NullIndex {
		return 0
	}
	n := int32(1)
	for h := s.Next(first); h != first; h = s.Next(h) {
		n++
	}
	return n
}

// CreateEdge allocates a half-edge pair between vertices u and v and
// splices both directions into their source vertex's CCW ring (spec.md
// §4.5, "Half-edge creation"). Returns the direction-0 (u->v) half-edge
// index; its opposite (v->u) is idx^1.
func (s *Space) CreateEdge(u, v int32) (idx int32, ok bool) {
	i0, he0, ok0 := s.HalfEdges.Alloc()
	if !ok0 {
		return mem.NullIndex, false
	}
	i1, he1, ok1 := s.HalfEdges.Alloc()
	if !ok1 {
		s.HalfEdges.Free(i0)
		return mem.NullIndex, false
	}
	// CreateEdge relies on the pair landing at consecutive (even, odd)
	// slots; true as long as half-edges are only ever allocated in pairs
	// through this function and never individually freed mid-build,
	// which holds for the one-shot build described in spec.md §5.
	dbg.Assert(i1 == i0^1, "walkable: half-edge pair %d/%d is not an (even, odd) pair", i0, i1)

	he0.Target, he0.Event = v, mem.NullIndex
	he1.Target, he1.Event = u, mem.NullIndex
	he0.Next, he1.Next = i0, i1

	s.edgeTail0 = append(s.edgeTail0, mem.NullIndex)

	s.insertOutgoing(u, i0)
	s.insertOutgoing(v, i1)
	return i0, true
}

// insertOutgoing splices half-edge h (source vertex v) into v's circular
// CCW-sorted outgoing ring (spec.md §4.5: "Sort key is the 2-D angle of
// (target.pos - source.pos). Tie-break: insertion order.").
//
// The ring is kept sorted by angle normalized relative to the head
// element's own angle, so the only wraparound to handle is the final
// segment back to head, represented by the sentinel normalizedFullTurn.
func (s *Space) insertOutgoing(v, h int32) {
	vert := s.Verts.At(v)
	if vert.HalfEdge == mem.NullIndex {
		vert.HalfEdge = h
		s.HalfEdges.At(h).Next = h
		return
	}

	angle := func(he int32) float32 {
		return s.Verts.At(s.Target(he)).Pos.Sub(vert.Pos).Angle()
	}

	head := vert.HalfEdge
	headAngle := angle(head)
	target := normalizeAngle(angle(h) - headAngle)

	cur := head
	curNorm := float32(0)
	for {
		next := s.HalfEdges.At(cur).Next
		nextNorm := normalizedFullTurn
		if next != head {
			nextNorm = normalizeAngle(angle(next) - headAngle)
		}
		if target >= curNorm && target < nextNorm {
			s.spliceAfter(cur, h)
			return
		}
		if next == head {
			// Unreachable given target < normalizedFullTurn always, but
			// keeps the loop provably terminating.
			s.spliceAfter(cur, h)
			return
		}
		cur, curNorm = next, nextNorm
	}
}

const normalizedFullTurn = float32(2 * 3.14159265358979323846)

// normalizeAngle reduces a to [0, 2*pi).
func normalizeAngle(a float32) float32 {
	for a < 0 {
		a += normalizedFullTurn
	}
	for a >= normalizedFullTurn {
		a -= normalizedFullTurn
	}
	return a
}

func (s *Space) spliceAfter(after, h int32) {
	afterHE := s.HalfEdges.At(after)
	s.HalfEdges.At(h).Next = afterHE.Next
	afterHE.Next = h
}

// CreateEvent allocates a new event at pos along half-edge h's direction
// and threads it into both of its edge's event lists: appended to
// direction 0's list, prepended to direction 1's (spec.md §4.5, "Event
// threading").
func (s *Space) CreateEvent(h int32, pos geom2.Vec2) (idx int32, ok bool) {
	idx, ev, ok := s.Events.Alloc()
	if !ok {
		return mem.NullIndex, false
	}
	ev.Pos = pos
	ev.Next[0], ev.Next[1] = mem.NullIndex, mem.NullIndex

	edgeIdx := h / 2
	dir0, dir1 := edgeIdx*2, edgeIdx*2+1

	// append to direction-0 list
	if tail := s.edgeTail0[edgeIdx]; tail == mem.NullIndex {
		s.HalfEdges.At(dir0).Event = idx
	} else {
		s.Events.At(tail).Next[0] = idx
	}
	s.edgeTail0[edgeIdx] = idx

	// prepend to direction-1 list
	ev.Next[1] = s.HalfEdges.At(dir1).Event
	s.HalfEdges.At(dir1).Event = idx

	return idx, true
}

// FirstEvent returns the first event along half-edge h's direction, or
// mem.NullIndex if there are none.
func (s *Space) FirstEvent(h int32) int32 { return s.HalfEdges.At(h).Event }

// NextEvent returns the event following e when traversing half-edge h's
// direction.
func (s *Space) NextEvent(h, e int32) int32 {
	return s.Events.At(e).Next[h&1]
}

// LeftSide returns the left-side contact point at event e, relative to
// half-edge h's direction. Direction-1 traversal sees sides mirrored
// since travelling the opposite way along the same line swaps which
// side is "left".
func (s *Space) LeftSide(h, e int32) geom2.Vec2 {
	if h&1 == 0 {
		return s.Events.At(e).Sides[0]
	}
	return s.Events.At(e).Sides[1]
}

// RightSide is the mirror of LeftSide.
func (s *Space) RightSide(h, e int32) geom2.Vec2 {
	if h&1 == 0 {
		return s.Events.At(e).Sides[1]
	}
	return s.Events.At(e).Sides[0]
}

// SetEventSides records event e's left/right contact points and site
// kinds in the half-edge-0 (canonical) frame: Sides[0] is left when
// travelling direction 0, Sides[1] is right.
func (s *Space) SetEventSides(e int32, left, right geom2.Vec2, leftAtVertex, rightAtVertex bool) {
	ev := s.Events.At(e)
	ev.Sides[0], ev.Sides[1] = left, right
	ev.kinds[0] = kindOf(leftAtVertex)
	ev.kinds[1] = kindOf(rightAtVertex)
}

// LeftSideIsArc reports whether the left-side contact at event e (in
// half-edge h's direction) anchors an arc (an obstacle corner) rather
// than a straight edge.
func (s *Space) LeftSideIsArc(h, e int32) bool {
	if h&1 == 0 {
		return s.Events.At(e).kinds[0] == siteAtVertex
	}
	return s.Events.At(e).kinds[1] == siteAtVertex
}

// RightSideIsArc is the mirror of LeftSideIsArc.
func (s *Space) RightSideIsArc(h, e int32) bool {
	if h&1 == 0 {
		return s.Events.At(e).kinds[1] == siteAtVertex
	}
	return s.Events.At(e).kinds[0] == siteAtVertex
}

// AddVertexSide records a closest-obstacle contact point at vertex v.
// Vertices can carry up to MaxVertexSides distinct sides (spec.md §3);
// additional calls beyond that are ignored (degenerate geometry
// guard, spec.md §7).
func (s *Space) AddVertexSide(v int32, p geom2.Vec2, atVertex bool) {
	vert := s.Verts.At(v)
	if vert.NumSides >= MaxVertexSides {
		return
	}
	vert.Sides[vert.NumSides] = p
	vert.kinds[vert.NumSides] = kindOf(atVertex)
	vert.NumSides++
}

// VertexSides returns the sides recorded at vertex v.
func (s *Space) VertexSides(v int32) []geom2.Vec2 {
	vert := s.Verts.At(v)
	return vert.Sides[:vert.NumSides]
}

// VertexSideIsArc reports whether the i-th recorded side at vertex v
// anchors an arc.
func (s *Space) VertexSideIsArc(v, i int32) bool {
	return s.Verts.At(v).kinds[i] == siteAtVertex
}

// VertexPos returns vertex v's position.
func (s *Space) VertexPos(v int32) geom2.Vec2 { return s.Verts.At(v).Pos }

// EventPos returns event e's position.
func (s *Space) EventPos(e int32) geom2.Vec2 { return s.Events.At(e).Pos }

// MinClearance returns the narrowest clearance (distance from the spine
// to the nearest obstacle) anywhere along half-edge h: the minimum over
// its source vertex, every event along it, and its target vertex. A
// route search rejects an edge whose MinClearance is below the querying
// agent's radius (spec.md §4.6's per-disk radius invariant, applied
// per-edge for route feasibility).
func (s *Space) MinClearance(h int32) float32 {
	clear := s.vertexClearance(s.Source(h))
	for e := s.FirstEvent(h); e != mem.NullIndex; e = s.NextEvent(h, e) {
		if d := s.EventPos(e).Dist(s.LeftSide(h, e)); d < clear {
			clear = d
		}
	}
	if c := s.vertexClearance(s.Target(h)); c < clear {
		clear = c
	}
	return clear
}

func (s *Space) vertexClearance(v int32) float32 {
	sides := s.VertexSides(v)
	if len(sides) == 0 {
		return 0
	}
	pos := s.VertexPos(v)
	min := pos.Dist(sides[0])
	for _, p := range sides[1:] {
		if d := pos.Dist(p); d < min {
			min = d
		}
	}
	return min
}

func kindOf(atVertex bool) siteKind {
	if atVertex {
		return siteAtVertex
	}
	return siteOnEdge
}
