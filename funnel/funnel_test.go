package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corridormap/ecm/corridor"
	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/walkable"
)

func TestSolveSingleDiscReturnsItself(t *testing.T) {
	c := &corridor.Corridor{
		Centers:   []geom2.Vec2{geom2.New(1, 1)},
		Radii:     []float32{5},
		ObstacleL: []geom2.Vec2{geom2.New(1, 6)},
		ObstacleR: []geom2.Vec2{geom2.New(1, -4)},
	}
	s := NewSolver(0)
	path, err := s.Solve(c)
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Equal(t, geom2.New(1, 1), path[0].P0)
	assert.Equal(t, geom2.New(1, 1), path[0].P1)
}

func TestSolveRejectsCorridorNarrowerThanClearance(t *testing.T) {
	c := &corridor.Corridor{
		Centers:   []geom2.Vec2{geom2.New(0, 0), geom2.New(10, 0)},
		Radii:     []float32{1, 5},
		ObstacleL: []geom2.Vec2{geom2.New(0, 1), geom2.New(10, 5)},
		ObstacleR: []geom2.Vec2{geom2.New(0, -1), geom2.New(10, -5)},
	}
	s := NewSolver(2)
	_, err := s.Solve(c)
	assert.Error(t, err)
}

func TestSolveStraightCorridorProducesStartAndEnd(t *testing.T) {
	space := walkable.NewSpace(8, 8, 8)
	u, _ := space.CreateVertex(geom2.New(0, 0))
	v, _ := space.CreateVertex(geom2.New(10, 0))
	space.AddVertexSide(u, geom2.New(0, 3), false)
	space.AddVertexSide(u, geom2.New(0, -3), false)
	space.AddVertexSide(v, geom2.New(10, 3), false)
	space.AddVertexSide(v, geom2.New(10, -3), false)
	h, _ := space.CreateEdge(u, v)

	c, err := corridor.Extract(space, []int32{h}, 1)
	require.NoError(t, err)

	s := NewSolver(1)
	path, err := s.Solve(c)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(path), 1)
	assert.Equal(t, geom2.New(0, 0), path[0].P0)
	assert.Equal(t, geom2.New(10, 0), path[len(path)-1].P1)
	for _, el := range path {
		assert.Equal(t, ElementLine, el.Type)
	}
}

// TestBuildElementsMergesConsecutiveArcWaypointsAroundSameOrigin directly
// exercises the spec.md §4.7 merge rule ("consecutive convex arcs around
// the same origin combine"): two adjacent waypoints anchored at the same
// obstacle corner must collapse into one ElementConvexArc spanning both,
// rather than two bare points, giving Testable Property #7 (§8) an
// actual arc to check radius against.
func TestBuildElementsMergesConsecutiveArcWaypointsAroundSameOrigin(t *testing.T) {
	origin := geom2.New(0, 0)
	points := []waypoint{
		{Pos: geom2.New(-10, 0), Curve: corridor.CurveLine},
		{Pos: geom2.New(0, 1), Curve: corridor.CurveConvexArc, Origin: origin},
		{Pos: geom2.New(1, 0), Curve: corridor.CurveConvexArc, Origin: origin},
		{Pos: geom2.New(10, 0), Curve: corridor.CurveLine},
	}

	elems := buildElements(points, 1e-6)
	require.Len(t, elems, 3)

	assert.Equal(t, ElementLine, elems[0].Type)
	assert.Equal(t, geom2.New(-10, 0), elems[0].P0)
	assert.Equal(t, geom2.New(0, 1), elems[0].P1)

	arc := elems[1]
	assert.Equal(t, ElementConvexArc, arc.Type)
	assert.Equal(t, origin, arc.Origin)
	assert.Equal(t, geom2.New(0, 1), arc.P0)
	assert.Equal(t, geom2.New(1, 0), arc.P1)
	assert.InDelta(t, float32(1), arc.Origin.Dist(arc.P0), 1e-6)
	assert.InDelta(t, float32(1), arc.Origin.Dist(arc.P1), 1e-6)
	// orient(origin, P0, P1) < 0 here: this sweep turns clockwise.
	assert.False(t, arc.Winding)

	assert.Equal(t, ElementLine, elems[2].Type)
	assert.Equal(t, geom2.New(1, 0), elems[2].P0)
	assert.Equal(t, geom2.New(10, 0), elems[2].P1)
}

// TestBuildElementsKeepsDistinctOriginsSeparate ensures two arc-type
// waypoints anchored at different corners are NOT merged into one arc,
// even though both carry the same CurveType.
func TestBuildElementsKeepsDistinctOriginsSeparate(t *testing.T) {
	points := []waypoint{
		{Pos: geom2.New(0, 1), Curve: corridor.CurveConvexArc, Origin: geom2.New(0, 0)},
		{Pos: geom2.New(5, 1), Curve: corridor.CurveConvexArc, Origin: geom2.New(5, 0)},
	}
	elems := buildElements(points, 1e-6)
	require.Len(t, elems, 1)
	assert.Equal(t, ElementLine, elems[0].Type)
}

// TestBuildElementsCollapsesCoincidentWaypoints exercises spec.md §4.7's
// "tiny closed arcs (endpoints coincide within epsilon) collapse".
func TestBuildElementsCollapsesCoincidentWaypoints(t *testing.T) {
	points := []waypoint{
		{Pos: geom2.New(0, 0), Curve: corridor.CurveLine},
		{Pos: geom2.New(1e-9, 0), Curve: corridor.CurveConvexArc, Origin: geom2.New(0, 5)},
		{Pos: geom2.New(10, 0), Curve: corridor.CurveLine},
	}
	elems := buildElements(points, 1e-6)
	require.Len(t, elems, 1)
	assert.Equal(t, geom2.New(0, 0), elems[0].P0)
	assert.Equal(t, geom2.New(10, 0), elems[0].P1)
}

// TestSolveArcWaypointsSatisfyClearanceRadiusInvariant exercises Testable
// Property #7 (spec.md §8) end to end: every non-line element Solve
// emits for a corridor with an arc-anchored disk lies on a radius-
// clearance circle around its recorded obstacle site.
func TestSolveArcWaypointsSatisfyClearanceRadiusInvariant(t *testing.T) {
	space := walkable.NewSpace(16, 16, 16)
	start, _ := space.CreateVertex(geom2.New(-10, 0))
	corner, _ := space.CreateVertex(geom2.New(0, 5))
	end, _ := space.CreateVertex(geom2.New(10, 0))

	space.AddVertexSide(start, geom2.New(-10, 6), false)
	space.AddVertexSide(start, geom2.New(-10, -6), false)
	// corner's left side is anchored at a fixed obstacle vertex below it
	// (a real convex-arc anchor, distinct from corner's own position).
	space.AddVertexSide(corner, geom2.New(0, 0), true)
	space.AddVertexSide(corner, geom2.New(6, 11), false)
	space.AddVertexSide(end, geom2.New(10, 6), false)
	space.AddVertexSide(end, geom2.New(10, -6), false)

	h0, _ := space.CreateEdge(start, corner)
	h1, _ := space.CreateEdge(corner, end)

	c, err := corridor.Extract(space, []int32{h0, h1}, 1)
	require.NoError(t, err)

	s := NewSolver(1)
	path, err := s.Solve(c)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	assert.Equal(t, geom2.New(-10, 0), path[0].P0)
	assert.Equal(t, geom2.New(10, 0), path[len(path)-1].P1)
	for _, el := range path {
		if el.Type != ElementLine {
			assert.InDelta(t, s.Clearance, el.Origin.Dist(el.P0), 1e-3)
			assert.InDelta(t, s.Clearance, el.Origin.Dist(el.P1), 1e-3)
		}
	}
}

func TestTangentPointLiesOnCircleAtRadius(t *testing.T) {
	apex := geom2.New(0, 0)
	center := geom2.New(10, 0)
	radius := float32(3)

	lp := tangentPoint(apex, center, radius, left)
	rp := tangentPoint(apex, center, radius, right)

	assert.InDelta(t, radius, lp.Dist(center), 1e-4)
	assert.InDelta(t, radius, rp.Dist(center), 1e-4)
	assert.NotEqual(t, lp, rp)
}

func TestTangentPointFallsBackWhenApexInsideCircle(t *testing.T) {
	p := tangentPoint(geom2.New(0, 0), geom2.New(1, 0), 5, left)
	assert.Equal(t, geom2.New(1, 0), p)
}
