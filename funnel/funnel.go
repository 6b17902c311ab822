// Package funnel implements the arc-aware funnel / string-pulling
// algorithm spec.md §4.7 describes: given a Corridor (package corridor)
// and an agent disk radius ("clearance"), thread the tautest path that
// stays at least clearance away from every obstacle.
//
// Grounded on two sources: the teacher's detour/query.go FindStraightPath
// for the overall funnel control flow (portalApex/portalLeft/portalRight,
// orientation tests, restart-on-crossing) — ported here 1:1 in spirit
// from 3-D navmesh portals to 2-D corridor disks — and
// original_source/source/shortest_path_continuous.cpp for the arc
// extension: where a corridor side is anchored at a fixed obstacle
// corner (CurveConvexArc/CurveReflexArc) rather than sliding along an
// edge (CurveLine), the portal for that side is recomputed on the fly as
// the tangent line from the current funnel apex to the offset circle
// around that corner, instead of read from a precomputed point, and
// consecutive waypoints anchored at the same corner are merged into one
// arc element (spec.md §4.7's "consecutive convex arcs around the same
// origin combine").
package funnel

import (
	"fmt"
	"math"

	"github.com/arl/math32"

	"github.com/corridormap/ecm/corridor"
	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/mem"
)

// side identifies one of the funnel's two bounding rays.
type side int

const (
	left side = iota
	right
)

// epsilon bounds the apex/portal coincidence tests (spec.md §9 Open
// Question 3: kept as a fixed documented default rather than rescaled
// per corridor).
const epsilon = 1e-6

// ElementType classifies a PathElement's geometry (spec.md §3's "Path
// element" type byte: line, convex_arc, reflex_arc).
type ElementType uint8

const (
	// ElementLine: a straight segment from P0 to P1.
	ElementLine ElementType = iota
	// ElementConvexArc: an arc of radius Clearance around Origin, wrapping
	// a fixed obstacle corner.
	ElementConvexArc
	// ElementReflexArc: an arc of radius Clearance around Origin, wrapping
	// a Voronoi pinch vertex (opposite winding to a convex arc).
	ElementReflexArc
)

// PathElement is one line segment or arc of a solved path (spec.md §3):
// P0/P1 are its endpoints; P1 of element i equals P0 of element i+1.
// Origin is the arc centre (zero and unused for ElementLine). Winding is
// true for a CCW sweep from P0 to P1 around Origin (spec.md §3's 0x80
// bit), computed from the actual geometry via geom2.Orient rather than
// inferred from which funnel side produced the element.
type PathElement struct {
	Type    ElementType
	Winding bool
	Origin  geom2.Vec2
	P0, P1  geom2.Vec2
}

// Solver threads clearance-feasible shortest paths through corridors
// (spec.md §4.7).
type Solver struct {
	// Clearance is the agent's disk radius. Every disk along a solved
	// corridor must have Radii >= Clearance (spec.md §4.6 invariant).
	Clearance float32
}

// NewSolver returns a Solver for the given agent clearance.
func NewSolver(clearance float32) *Solver {
	return &Solver{Clearance: clearance}
}

// waypoint is one vertex of the raw funnel trace before arc-merging:
// Pos is the emitted point; Curve/Origin describe the corridor border
// that anchored it (Origin is only meaningful when Curve != CurveLine).
type waypoint struct {
	Pos    geom2.Vec2
	Curve  corridor.CurveType
	Origin geom2.Vec2
}

// Solve returns the shortest path through c respecting s.Clearance
// (spec.md §4.7). Returns an error if any disk along c is narrower than
// the agent.
func (s *Solver) Solve(c *corridor.Corridor) ([]PathElement, error) {
	n := c.NumDiscs()
	if n == 0 {
		return nil, fmt.Errorf("funnel: empty corridor")
	}
	for i := 0; i < n; i++ {
		if c.Radii[i] < s.Clearance {
			return nil, fmt.Errorf("funnel: disk %d clearance %.6f below agent radius %.6f", i, c.Radii[i], s.Clearance)
		}
	}

	eps := c.Epsilon
	if eps == 0 {
		eps = epsilon
	}

	start := c.Centers[0]
	// waypoints accumulates via PushBack only: every apex restart can only
	// add one waypoint before advancing i, so n discs bound the output at
	// n+1 points (the start, one per restart, the end).
	waypoints := mem.NewRing[waypoint](n + 1)
	waypoints.PushBack(waypoint{Pos: start, Curve: corridor.CurveLine})
	if n == 1 {
		return []PathElement{{Type: ElementLine, P0: start, P1: start}}, nil
	}

	portal := func(sd side, i int, apex geom2.Vec2) (geom2.Vec2, geom2.Vec2, bool) {
		if i == n-1 {
			return c.Centers[n-1], geom2.Vec2{}, false
		}
		var sitePt geom2.Vec2
		var isArc bool
		if sd == left {
			sitePt, isArc = c.ObstacleL[i], c.LeftIsArc(i)
		} else {
			sitePt, isArc = c.ObstacleR[i], c.RightIsArc(i)
		}
		if s.Clearance == 0 {
			return sitePt, sitePt, isArc
		}
		if !isArc {
			normal := c.Centers[i].Sub(sitePt)
			if normal.LenSqr() == 0 {
				return sitePt, sitePt, false
			}
			return sitePt.Add(normal.Normalized().Scale(s.Clearance)), sitePt, false
		}
		return tangentPoint(apex, sitePt, s.Clearance, sd), sitePt, true
	}

	curveAt := func(i int) corridor.CurveType {
		if i >= len(c.CurveL) {
			return corridor.CurveLine
		}
		return c.CurveL[i]
	}
	curveAtR := func(i int) corridor.CurveType {
		if i >= len(c.CurveR) {
			return corridor.CurveLine
		}
		return c.CurveR[i]
	}

	apex := start
	apexIndex := 0
	portalLeft := start
	portalRight := start
	leftIndex, rightIndex := 0, 0
	var leftCurve, rightCurve corridor.CurveType
	var leftOrigin, rightOrigin geom2.Vec2

	for i := 0; i < n; i++ {
		l, lOrigin, _ := portal(left, i, apex)
		r, rOrigin, _ := portal(right, i, apex)
		lc, rc := curveAt(i), curveAtR(i)

		// Right vertex (mirrors detour's FindStraightPath; Orient is the
		// standard CCW-positive cross product, so detour's TriArea2D signs
		// are inverted here).
		if geom2.Orient(apex, portalRight, r) >= 0 {
			if apex.Equal(portalRight, eps) || geom2.Orient(apex, portalLeft, r) < 0 {
				portalRight = r
				rightIndex = i
				rightCurve = rc
				rightOrigin = rOrigin
			} else {
				apex = portalLeft
				apexIndex = leftIndex
				waypoints.PushBack(waypoint{Pos: apex, Curve: leftCurve, Origin: leftOrigin})

				portalLeft, portalRight = apex, apex
				leftIndex, rightIndex = apexIndex, apexIndex
				i = apexIndex
				continue
			}
		}

		// Left vertex.
		if geom2.Orient(apex, portalLeft, l) <= 0 {
			if apex.Equal(portalLeft, eps) || geom2.Orient(apex, portalRight, l) > 0 {
				portalLeft = l
				leftIndex = i
				leftCurve = lc
				leftOrigin = lOrigin
			} else {
				apex = portalRight
				apexIndex = rightIndex
				waypoints.PushBack(waypoint{Pos: apex, Curve: rightCurve, Origin: rightOrigin})

				portalLeft, portalRight = apex, apex
				leftIndex, rightIndex = apexIndex, apexIndex
				i = apexIndex
				continue
			}
		}
	}

	waypoints.PushBack(waypoint{Pos: c.Centers[n-1], Curve: corridor.CurveLine})
	return buildElements(ringToSlice(waypoints), eps), nil
}

// buildElements converts a raw waypoint trace into PathElements, applying
// spec.md §4.7's merge operations: adjacent waypoints closer than eps
// collapse (tiny closed arcs), and adjacent waypoints anchored at the
// same arc origin combine into a single arc element instead of the
// straight chord between them.
func buildElements(points []waypoint, eps float32) []PathElement {
	filtered := points[:0:0]
	for i, p := range points {
		if i > 0 && p.Pos.Dist(filtered[len(filtered)-1].Pos) < eps {
			continue
		}
		filtered = append(filtered, p)
	}
	if len(filtered) < 2 {
		return nil
	}

	elems := make([]PathElement, 0, len(filtered)-1)
	for i := 0; i < len(filtered)-1; i++ {
		a, b := filtered[i], filtered[i+1]
		if isArcCurve(b.Curve) && b.Curve == a.Curve && a.Origin.Dist(b.Origin) < eps {
			elems = append(elems, PathElement{
				Type:    arcElementType(b.Curve),
				Winding: geom2.Orient(b.Origin, a.Pos, b.Pos) > 0,
				Origin:  b.Origin,
				P0:      a.Pos,
				P1:      b.Pos,
			})
			continue
		}
		elems = append(elems, PathElement{Type: ElementLine, P0: a.Pos, P1: b.Pos})
	}
	return elems
}

func isArcCurve(t corridor.CurveType) bool {
	return t == corridor.CurveConvexArc || t == corridor.CurveReflexArc
}

func arcElementType(t corridor.CurveType) ElementType {
	if t == corridor.CurveReflexArc {
		return ElementReflexArc
	}
	return ElementConvexArc
}

// ringToSlice drains r front-to-back into a freshly allocated slice. Ring
// has no non-destructive iterator, so this is only safe to call once a
// ring's contents are no longer needed in place.
func ringToSlice(r *mem.Ring[waypoint]) []waypoint {
	out := make([]waypoint, 0, r.Len())
	for r.Len() > 0 {
		out = append(out, r.PopFront())
	}
	return out
}

// tangentPoint returns the point on the circle of the given radius
// centered at center where a line from apex is tangent to it, choosing
// whichever of the two tangent points lies on the requested side of the
// apex->center ray. Falls back to center itself if apex is inside or on
// the circle (a degenerate corridor too narrow to separate apex from the
// corner at this clearance).
func tangentPoint(apex, center geom2.Vec2, radius float32, sd side) geom2.Vec2 {
	toCenter := center.Sub(apex)
	d := toCenter.Len()
	if d <= radius {
		return center
	}
	theta := float32(math.Asin(float64(radius / d)))
	if sd == right {
		theta = -theta
	}
	dist := math32.Sqrt(d*d - radius*radius)
	dir := toCenter.Normalized().Rotate(theta)
	return apex.Add(dir.Scale(dist))
}
