package walkable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/mem"
)

func TestCreateEdgeOpposesAndLinksTargets(t *testing.T) {
	s := NewSpace(4, 4, 4)
	u, _ := s.CreateVertex(geom2.New(0, 0))
	v, _ := s.CreateVertex(geom2.New(1, 0))

	h, ok := s.CreateEdge(u, v)
	assert.True(t, ok)
	assert.Equal(t, v, s.Target(h))
	assert.Equal(t, u, s.Target(s.Opposite(h)))
	assert.Equal(t, u, s.Source(h))
	assert.Equal(t, h, s.Opposite(s.Opposite(h)))
}

func TestDegreeCountsRingSize(t *testing.T) {
	s := NewSpace(8, 8, 8)
	center, _ := s.CreateVertex(geom2.New(0, 0))
	a, _ := s.CreateVertex(geom2.New(1, 0))
	b, _ := s.CreateVertex(geom2.New(0, 1))
	c, _ := s.CreateVertex(geom2.New(-1, 0))

	assert.Equal(t, int32(0), s.Degree(center))

	s.CreateEdge(center, a)
	assert.Equal(t, int32(1), s.Degree(center))
	s.CreateEdge(center, b)
	assert.Equal(t, int32(2), s.Degree(center))
	s.CreateEdge(center, c)
	assert.Equal(t, int32(3), s.Degree(center))
}

func TestOutgoingRingIsSortedCCWByAngle(t *testing.T) {
	s := NewSpace(8, 8, 8)
	center, _ := s.CreateVertex(geom2.New(0, 0))
	east, _ := s.CreateVertex(geom2.New(1, 0))   // angle 0
	north, _ := s.CreateVertex(geom2.New(0, 1))  // angle pi/2
	west, _ := s.CreateVertex(geom2.New(-1, 0))  // angle pi
	south, _ := s.CreateVertex(geom2.New(0, -1)) // angle -pi/2

	// Insert out of angular order to exercise splicing.
	hNorth, _ := s.CreateEdge(center, north)
	hSouth, _ := s.CreateEdge(center, south)
	hEast, _ := s.CreateEdge(center, east)
	hWest, _ := s.CreateEdge(center, west)

	var order []int32
	first := s.Verts.At(center).HalfEdge
	h := first
	for {
		order = append(order, s.Target(h))
		h = s.Next(h)
		if h == first {
			break
		}
	}

	assert.Equal(t, []int32{north, west, south, east}, order)
	_ = hNorth
	_ = hSouth
	_ = hEast
	_ = hWest
}

func TestEventThreadingAppendsDir0PrependsDir1(t *testing.T) {
	s := NewSpace(4, 4, 8)
	u, _ := s.CreateVertex(geom2.New(0, 0))
	v, _ := s.CreateVertex(geom2.New(10, 0))
	h, _ := s.CreateEdge(u, v)
	opp := s.Opposite(h)

	e1, _ := s.CreateEvent(h, geom2.New(2, 0))
	e2, _ := s.CreateEvent(h, geom2.New(5, 0))
	e3, _ := s.CreateEvent(h, geom2.New(8, 0))

	// direction 0 traversal: append order e1, e2, e3
	var dir0 []int32
	for e := s.FirstEvent(h); e != mem.NullIndex; e = s.NextEvent(h, e) {
		dir0 = append(dir0, e)
	}
	assert.Equal(t, []int32{e1, e2, e3}, dir0)

	// direction 1 (opposite) traversal: reverse order e3, e2, e1
	var dir1 []int32
	for e := s.FirstEvent(opp, ); e != mem.NullIndex; e = s.NextEvent(opp, e) {
		dir1 = append(dir1, e)
	}
	assert.Equal(t, []int32{e3, e2, e1}, dir1)
}

func TestLeftRightSideMirrorsAcrossDirection(t *testing.T) {
	s := NewSpace(4, 4, 8)
	u, _ := s.CreateVertex(geom2.New(0, 0))
	v, _ := s.CreateVertex(geom2.New(10, 0))
	h, _ := s.CreateEdge(u, v)
	opp := s.Opposite(h)

	e, _ := s.CreateEvent(h, geom2.New(5, 0))
	left := geom2.New(5, 1)
	right := geom2.New(5, -1)
	s.SetEventSides(e, left, right, false, true)

	assert.Equal(t, left, s.LeftSide(h, e))
	assert.Equal(t, right, s.RightSide(h, e))
	assert.Equal(t, right, s.LeftSide(opp, e))
	assert.Equal(t, left, s.RightSide(opp, e))
	assert.False(t, s.LeftSideIsArc(h, e))
	assert.True(t, s.RightSideIsArc(h, e))
	assert.True(t, s.LeftSideIsArc(opp, e))
	assert.False(t, s.RightSideIsArc(opp, e))
}

func TestVertexSidesCapAtMax(t *testing.T) {
	s := NewSpace(4, 4, 4)
	v, _ := s.CreateVertex(geom2.New(0, 0))
	for i := 0; i < MaxVertexSides+2; i++ {
		s.AddVertexSide(v, geom2.New(float32(i), 0), false)
	}
	assert.Len(t, s.VertexSides(v), MaxVertexSides)
}
