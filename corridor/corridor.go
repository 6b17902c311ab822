// Package corridor implements the corridor extractor spec.md §4.6
// describes: turning a route (a sequence of WalkableSpace half-edges)
// into a Corridor — an ordered list of maximal free-space disks with
// left/right obstacle contact points, ready for the funnel solver
// (package funnel) to thread a clearance-feasible path through.
//
// Grounded on original_source/include/corridormap/runtime.h's
// extract/num_path_discs contract for the disk-sequence shape, and on
// the teacher's crowd/path_corridor.go (PathCorridor, FindCorners) for
// the general "sequence of boundary crossings a mover threads through"
// idiom — adapted here from polygon-corner corners to disk/arc borders.
package corridor

import (
	"fmt"

	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/mem"
	"github.com/corridormap/ecm/walkable"
)

// CurveType classifies how the free-space border moves between two
// consecutive disks on one side of the corridor (spec.md §4.6).
type CurveType uint8

const (
	// CurveLine: the border runs straight along an obstacle edge.
	CurveLine CurveType = iota
	// CurveConvexArc: the border sweeps around a fixed obstacle corner.
	CurveConvexArc
	// CurveReflexArc: the border sweeps around a pinch point — a
	// degree-1 WalkableSpace vertex the corridor threads through.
	CurveReflexArc
)

// DefaultEpsilon is the geometric tolerance Extract stamps onto a
// Corridor's Epsilon field when the caller doesn't need a scene-scale
// override (spec.md §4.7's "corridor.epsilon" for corridor-scale
// tolerances, as distinct from the funnel's fixed 1e-6 orientation
// epsilon).
const DefaultEpsilon = 1e-6

// Corridor is an ordered sequence of disks describing the free space
// along a route through the WalkableSpace (spec.md §3, §4.6). Centers[i]
// is the i-th disk's center with clearance radius Radii[i].
//
// ObstacleL[i]/ObstacleR[i] are the left/right nearest-obstacle (or
// Voronoi-vertex) contact points the disk was built from — spec.md §3's
// "obstacle_l, obstacle_r". BorderL[i]/BorderR[i] are the corresponding
// border points: for straight-edge borders the obstacle point moved
// Clearance toward the disk center, so they differ from the obstacle
// point whenever Clearance > 0; for arc borders a plain copy of the
// obstacle point, with no clearance offset applied, since an arc's true
// border point moves with the funnel apex (package funnel recomputes it
// per portal via tangentPoint, using ObstacleL/ObstacleR and Clearance
// directly).
//
// CurveL[i]/CurveR[i] (length len(Centers)-1) describe how the left/right
// border moves between disk i and disk i+1.
type Corridor struct {
	Centers              []geom2.Vec2
	Radii                []float32
	ObstacleL, ObstacleR []geom2.Vec2
	BorderL, BorderR     []geom2.Vec2
	CurveL               []CurveType
	CurveR               []CurveType

	// Clearance is the agent disk radius BorderL/BorderR were offset by.
	// Epsilon is the geometric tolerance for corridor-scale comparisons
	// (spec.md §4.7's "corridor.epsilon").
	Clearance float32
	Epsilon   float32

	arcL, arcR []bool
	reflex     []bool
}

// NumDiscs returns the number of disks in c.
func (c *Corridor) NumDiscs() int { return len(c.Centers) }

// LeftIsArc reports whether disk i's left contact point is anchored at a
// fixed obstacle corner (rather than sliding along an edge) — the signal
// package funnel needs to know when a portal must be recomputed as a
// tangent to a circle instead of read from a fixed offset point.
func (c *Corridor) LeftIsArc(i int) bool { return c.arcL[i] }

// RightIsArc is the mirror of LeftIsArc.
func (c *Corridor) RightIsArc(i int) bool { return c.arcR[i] }

// Extract builds a Corridor by walking route, a sequence of WalkableSpace
// half-edge indices forming one connected path (Target of route[i] must
// equal Source of route[i+1]), emitting one disk per vertex crossed and
// one per event along each half-edge (spec.md §4.6). route must be
// non-empty. clearance is the agent disk radius BorderL/BorderR are
// offset by; Extract stamps DefaultEpsilon onto the result (spec.md
// §4.7's "corridor.epsilon").
//
// Each interior vertex's left/right contact points are taken from its
// first two recorded VertexSides; at a branching (degree > 2) vertex
// this picks an arbitrary pair rather than the specific pair bordering
// the incoming/outgoing half-edges. The sides are recorded in the
// tracer's fixed 2x2 colour order, so at such a vertex the pair used is
// not necessarily the one bordering the route.
func Extract(space *walkable.Space, route []int32, clearance float32) (*Corridor, error) {
	if len(route) == 0 {
		return nil, fmt.Errorf("corridor: empty route")
	}

	c := &Corridor{Clearance: clearance, Epsilon: DefaultEpsilon}
	c.appendVertex(space, space.Source(route[0]))
	for _, h := range route {
		for e := space.FirstEvent(h); e != mem.NullIndex; e = space.NextEvent(h, e) {
			c.appendEvent(space, h, e)
		}
		c.appendVertex(space, space.Target(h))
	}

	c.buildBorders()
	c.buildCurves()
	return c, nil
}

func (c *Corridor) appendVertex(space *walkable.Space, v int32) {
	pos := space.VertexPos(v)
	sides := space.VertexSides(v)

	var left, right geom2.Vec2
	var leftArc, rightArc bool
	switch len(sides) {
	case 0:
		left, right = pos, pos
	case 1:
		left, right = sides[0], sides[0]
		leftArc = space.VertexSideIsArc(v, 0)
		rightArc = leftArc
	default:
		left, right = sides[0], sides[1]
		leftArc = space.VertexSideIsArc(v, 0)
		rightArc = space.VertexSideIsArc(v, 1)
	}

	c.push(pos, left, right, leftArc, rightArc, space.Degree(v) == 1)
}

func (c *Corridor) appendEvent(space *walkable.Space, h, e int32) {
	pos := space.EventPos(e)
	left := space.LeftSide(h, e)
	right := space.RightSide(h, e)
	c.push(pos, left, right, space.LeftSideIsArc(h, e), space.RightSideIsArc(h, e), false)
}

func (c *Corridor) push(pos, left, right geom2.Vec2, leftArc, rightArc, reflex bool) {
	radius := pos.Dist(left)
	c.Centers = append(c.Centers, pos)
	c.Radii = append(c.Radii, radius)
	c.ObstacleL = append(c.ObstacleL, left)
	c.ObstacleR = append(c.ObstacleR, right)
	c.arcL = append(c.arcL, leftArc)
	c.arcR = append(c.arcR, rightArc)
	c.reflex = append(c.reflex, reflex)
}

// buildBorders offsets every straight-edge (non-arc) obstacle contact
// point Clearance toward its disk center, producing BorderL/BorderR.
// Arc-anchored entries copy the obstacle point through unchanged — their
// true border point depends on the funnel apex and is computed on demand
// by package funnel.
func (c *Corridor) buildBorders() {
	n := len(c.Centers)
	c.BorderL = make([]geom2.Vec2, n)
	c.BorderR = make([]geom2.Vec2, n)
	for i := 0; i < n; i++ {
		c.BorderL[i] = offsetBorder(c.Centers[i], c.ObstacleL[i], c.Clearance, c.arcL[i])
		c.BorderR[i] = offsetBorder(c.Centers[i], c.ObstacleR[i], c.Clearance, c.arcR[i])
	}
}

func offsetBorder(center, site geom2.Vec2, clearance float32, isArc bool) geom2.Vec2 {
	if isArc || clearance == 0 {
		return site
	}
	normal := center.Sub(site)
	if normal.LenSqr() == 0 {
		return site
	}
	return site.Add(normal.Normalized().Scale(clearance))
}

func (c *Corridor) buildCurves() {
	n := len(c.Centers)
	if n < 2 {
		return
	}
	c.CurveL = make([]CurveType, n-1)
	c.CurveR = make([]CurveType, n-1)
	for i := 0; i < n-1; i++ {
		c.CurveL[i] = curveBetween(c.arcL[i] || c.arcL[i+1], c.reflex[i] || c.reflex[i+1])
		c.CurveR[i] = curveBetween(c.arcR[i] || c.arcR[i+1], c.reflex[i] || c.reflex[i+1])
	}
}

func curveBetween(isArc, isReflex bool) CurveType {
	switch {
	case isArc && isReflex:
		return CurveReflexArc
	case isArc:
		return CurveConvexArc
	default:
		return CurveLine
	}
}
