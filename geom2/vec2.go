// Package geom2 provides the 2-D vector and orientation primitives shared
// by every stage of the ECM pipeline (distance mesh, classifier, edge
// tracer, corridor extractor and funnel solver). It plays the role the
// teacher's own gogeo/f32/d3.Vec3 plays for go-detour's 3-D navmesh code,
// but as a small value type rather than a float32 slice: every ECM site
// lives on a plane, and a fixed-size struct avoids an allocation per
// vector the way a []float32 slice would not.
package geom2

import (
	"math"

	"github.com/arl/math32"
)

// Vec2 is a point or direction in the plane.
type Vec2 struct {
	X, Y float32
}

// New returns Vec2{x, y}.
func New(x, y float32) Vec2 { return Vec2{x, y} }

// Add returns a+b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Sub returns a-b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale returns a*f.
func (a Vec2) Scale(f float32) Vec2 { return Vec2{a.X * f, a.Y * f} }

// Mul returns the component-wise product of a and b.
func (a Vec2) Mul(b Vec2) Vec2 { return Vec2{a.X * b.X, a.Y * b.Y} }

// Dot returns the dot product of a and b.
func (a Vec2) Dot(b Vec2) float32 { return a.X*b.X + a.Y*b.Y }

// Det returns the 2x2 determinant of [a;b] (the z component of the 3-D
// cross product a x b).
func (a Vec2) Det(b Vec2) float32 { return a.X*b.Y - a.Y*b.X }

// Len returns the magnitude of a.
func (a Vec2) Len() float32 { return math32.Sqrt(a.Dot(a)) }

// LenSqr returns the squared magnitude of a.
func (a Vec2) LenSqr() float32 { return a.Dot(a) }

// Dist returns the distance between a and b.
func (a Vec2) Dist(b Vec2) float32 { return a.Sub(b).Len() }

// DistSqr returns the squared distance between a and b.
func (a Vec2) DistSqr(b Vec2) float32 { return a.Sub(b).LenSqr() }

// Normalized returns a scaled to unit length. Undefined if a is the zero
// vector.
func (a Vec2) Normalized() Vec2 {
	l := a.Len()
	return Vec2{a.X / l, a.Y / l}
}

// Perp returns a rotated 90 degrees counter-clockwise.
func (a Vec2) Perp() Vec2 { return Vec2{-a.Y, a.X} }

// Lerp returns the point a fraction t of the way from a to b.
func (a Vec2) Lerp(b Vec2, t float32) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Angle returns the angle of a in radians, in [-pi, pi], as returned by
// atan2(y, x). Uses math.Atan2 directly: math32 (used elsewhere in this
// package for Sqrt/Sin/Cos, matching the teacher's own call sites) has
// no atan2 in the version the teacher itself imports.
func (a Vec2) Angle() float32 { return float32(math.Atan2(float64(a.Y), float64(a.X))) }

// Rotate returns a rotated counter-clockwise by theta radians.
func (a Vec2) Rotate(theta float32) Vec2 {
	s, c := math32.Sin(theta), math32.Cos(theta)
	return Vec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}

// Equal reports whether a and b are within epsilon of each other.
func (a Vec2) Equal(b Vec2, epsilon float32) bool {
	return a.DistSqr(b) < epsilon*epsilon
}

// Orient returns twice the signed area of the triangle (o, a, b): positive
// if o->a->b turns counter-clockwise, negative if clockwise, zero if
// collinear. This is the single orientation primitive spec.md §4.7
// prescribes for every funnel winding test.
func Orient(o, a, b Vec2) float32 {
	return a.Sub(o).Det(b.Sub(o))
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BBox2 is an axis-aligned bounding box in the plane (spec.md §3).
type BBox2 struct {
	Min, Max Vec2
}

// Width returns the extent of b along X.
func (b BBox2) Width() float32 { return b.Max.X - b.Min.X }

// Height returns the extent of b along Y.
func (b BBox2) Height() float32 { return b.Max.Y - b.Min.Y }

// Expand returns b grown by margin on every side.
func (b BBox2) Expand(margin float32) BBox2 {
	return BBox2{
		Min: Vec2{b.Min.X - margin, b.Min.Y - margin},
		Max: Vec2{b.Max.X + margin, b.Max.Y + margin},
	}
}

// Contains reports whether p lies within b (inclusive).
func (b BBox2) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
