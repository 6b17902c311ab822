package distmesh

import (
	"fmt"
	"math"

	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/internal/dbg"
)

const twoPi = float32(2 * math.Pi)
const pi = float32(math.Pi)

// MaxDistance returns sqrt(2)*max(width,height) of bounds, guaranteeing
// distance mesh cones cover the render target entirely (spec.md §3).
func MaxDistance(bounds geom2.BBox2) float32 {
	w, h := bounds.Width(), bounds.Height()
	m := w
	if h > m {
		m = h
	}
	return float32(math.Sqrt2) * m
}

// TrisForPoint returns the number of triangles needed to approximate a
// full-circle cone of the given radius within maxError chord tolerance
// (spec.md §4.1): half-angle alpha = acos((maxDist-maxError)/maxDist),
// K = ceil(pi/alpha).
func TrisForPoint(maxDist, maxError float32) int32 {
	alpha := float32(math.Acos(float64((maxDist - maxError) / maxDist)))
	return int32(math.Ceil(float64(pi / alpha)))
}

// Segment is one colour-tagged partition of a DistanceMesh: one obstacle
// polygon's cones+tents, or one of the four border tents (spec.md §3).
type Segment struct {
	// Verts holds the segment's triangles as a flat CCW vertex list
	// (len(Verts) is a multiple of 3).
	Verts []Vertex3
	// Color is the packed obstacle id this segment renders as.
	Color uint32
}

// Mesh is a partitioned triangle list, one segment per obstacle plus four
// border segments (spec.md §3, "DistanceMesh").
type Mesh struct {
	Segments []Segment
}

// NumVerts returns the total vertex count across all segments.
func (m *Mesh) NumVerts() int {
	n := 0
	for _, s := range m.Segments {
		n += len(s.Verts)
	}
	return n
}

// MaxMeshVerts computes an upper bound on the number of vertices required
// for a distance mesh of f (spec.md §4.1): every polygon vertex
// contributes a cone fan, every polygon edge contributes two tents, and
// four border tents bound the scene.
func MaxMeshVerts(f *Footprint, maxDist, maxError float32) int32 {
	trisPerCone := TrisForPoint(maxDist, maxError)
	var total int32
	for i := int32(0); i < f.NumPolys(); i++ {
		n := f.NumPolyVerts[i]
		total += n * (trisPerCone + 1) * 3 // cone fans (+1 margin for partial sector rounding)
		total += n * 2 * 2 * 3             // 2 tents/edge, both normal orientations, 2 tris/tent
	}
	total += 4 * 2 * 2 * 3 // border tents
	return total
}

// Build constructs the distance mesh for footprint f (spec.md §4.1): one
// segment per obstacle polygon (cone sectors at vertices, tent prisms at
// edges) plus four border segments bounding the scene bbox from outside.
//
// Returns an error if maxDist <= maxError (spec.md §4.1, "Error
// conditions").
func Build(f *Footprint, bounds geom2.BBox2, maxDist, maxError float32) (*Mesh, error) {
	if maxDist <= maxError {
		return nil, fmt.Errorf("distmesh: max_dist (%v) <= max_error (%v)", maxDist, maxError)
	}

	mesh := &Mesh{Segments: make([]Segment, 0, f.NumPolys()+4)}

	for p := int32(0); p < f.NumPolys(); p++ {
		n := f.NumPolyVerts[p]
		dbg.Assert(n >= 3, "distmesh: polygon %d has %d verts, need >= 3", p, n)
		var verts []Vertex3
		for j := int32(0); j < n; j++ {
			vert := f.Vertex(p, j)
			prev := f.Vertex(p, j-1)
			next := f.Vertex(p, j+1)
			verts = append(verts, coneTris(vert, prev, next, maxDist, maxError)...)

			a := vert
			b := next
			normal := edgeNormal(a, b)
			verts = append(verts, tentTris(a, b, normal, maxDist)...)
			verts = append(verts, tentTris(a, b, normal.Scale(-1), maxDist)...)
		}
		dbg.Assert(len(verts)%3 == 0, "distmesh: polygon %d produced a non-triangle vertex list (%d verts)", p, len(verts))
		mesh.Segments = append(mesh.Segments, Segment{Verts: verts, Color: uint32(p)})
	}

	borderIDs := f.BorderSegmentIDs()
	for i, seg := range borderTents(bounds, maxDist) {
		mesh.Segments = append(mesh.Segments, Segment{Verts: seg, Color: uint32(borderIDs[i])})
	}

	return mesh, nil
}

// coneTris builds the cone-sector fan at polygon vertex v, whose
// incident neighbours are prev and next (spec.md §4.1): half-angle
// alpha, angular step delta = 2*pi/K where K = ceil(pi/alpha), spanning
// the vertex's outward angular range [atan2(e0), atan2(e0)+(2*pi -
// theta_inner)] with theta_inner = acos(e0 . e1).
func coneTris(v, prev, next geom2.Vec2, maxDist, maxError float32) []Vertex3 {
	e0 := prev.Sub(v).Normalized()
	e1 := next.Sub(v).Normalized()

	thetaInner := float32(math.Acos(clampUnit(float64(e0.Dot(e1)))))
	alpha := float32(math.Acos(float64((maxDist - maxError) / maxDist)))
	k := int32(math.Ceil(float64(pi / alpha)))
	delta := twoPi / float32(k)

	start := e0.Angle()
	span := twoPi - thetaInner
	numTris := int32(math.Ceil(float64(span / delta)))
	if numTris < 1 {
		numTris = 1
	}
	step := span / float32(numTris)

	apex := NewVertex3(v.X, v.Y, 0)
	tris := make([]Vertex3, 0, numTris*3)
	for i := int32(0); i < numTris; i++ {
		a0 := start + step*float32(i)
		a1 := start + step*float32(i+1)
		r0 := v.Add(geom2.New(float32(math.Cos(float64(a0))), float32(math.Sin(float64(a0)))).Scale(maxDist))
		r1 := v.Add(geom2.New(float32(math.Cos(float64(a1))), float32(math.Sin(float64(a1)))).Scale(maxDist))
		tris = append(tris,
			apex,
			NewVertex3(r0.X, r0.Y, maxDist),
			NewVertex3(r1.X, r1.Y, maxDist),
		)
	}
	return tris
}

// tentTris builds the two tent triangles for edge (a,b) with outward
// normal n (spec.md §4.1): quad a, b, a+maxDist*n, b+maxDist*n, z ramping
// from 0 at a,b to maxDist at the far side.
func tentTris(a, b geom2.Vec2, n geom2.Vec2, maxDist float32) []Vertex3 {
	far := n.Scale(maxDist)
	a0 := NewVertex3(a.X, a.Y, 0)
	b0 := NewVertex3(b.X, b.Y, 0)
	aFar := a.Add(far)
	bFar := b.Add(far)
	a1 := NewVertex3(aFar.X, aFar.Y, maxDist)
	b1 := NewVertex3(bFar.X, bFar.Y, maxDist)
	if geom2.Orient(a, b, bFar) < 0 {
		// n points to the right of a->b: reverse both triangles so the
		// list stays CCW for the renderer's back-face culling.
		return []Vertex3{
			a0, b1, b0,
			a0, a1, b1,
		}
	}
	return []Vertex3{
		a0, b0, b1,
		a0, b1, a1,
	}
}

// edgeNormal returns the outward unit normal of CCW-wound edge (a,b):
// the edge direction rotated -90 degrees.
func edgeNormal(a, b geom2.Vec2) geom2.Vec2 {
	d := b.Sub(a).Normalized()
	return geom2.New(d.Y, -d.X)
}

// borderTents builds four large tents along the sides of bounds, each
// bounding maxDist from outside (spec.md §4.1, "Border segments").
func borderTents(bounds geom2.BBox2, maxDist float32) [4][]Vertex3 {
	min, max := bounds.Min, bounds.Max
	corners := [4]geom2.Vec2{min, geom2.New(max.X, min.Y), max, geom2.New(min.X, max.Y)}
	var out [4][]Vertex3
	for i := 0; i < 4; i++ {
		a := corners[i]
		b := corners[(i+1)%4]
		n := edgeNormal(a, b)
		out[i] = tentTris(a, b, n, maxDist)
	}
	return out
}

// SetSegmentColors reassigns mesh's segment colours cyclically from
// colors, for debug/test use (spec.md §4.1, "set_segment_colors").
func SetSegmentColors(mesh *Mesh, colors []uint32) {
	if len(colors) == 0 {
		return
	}
	for i := range mesh.Segments {
		mesh.Segments[i].Color = colors[i%len(colors)]
	}
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
