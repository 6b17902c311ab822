// Package distmesh builds the distance-mesh rasterisation input spec.md
// §4.1 describes: given a footprint of convex obstacle polygons, emit a
// 3-D triangle mesh whose z value, once rendered through an ortho
// z-buffer (package raster), equals distance to the nearest obstacle.
//
// Grounded on go-detour's recast.Config/Heightfield.Create for how the
// teacher derives render-target bounds from scene bounds, and on
// original_source/include/corridormap/build.h and build.cpp for the
// exact cone/tent construction this package ports.
package distmesh

import (
	"github.com/arl/gogeo/f32/d3"

	"github.com/corridormap/ecm/geom2"
)

// Footprint is an ordered set of convex obstacle polygons in CCW vertex
// order (spec.md §3). Polygon i occupies indices
// [VertOffset(i), VertOffset(i+1)) of X/Y.
type Footprint struct {
	// X, Y hold every polygon's vertices concatenated, CCW per polygon
	// (spec.md §6, "Footprint input format").
	X, Y []float32
	// NumPolyVerts holds the vertex count of each polygon.
	NumPolyVerts []int32
}

// NumPolys returns the number of polygons in f.
func (f *Footprint) NumPolys() int32 { return int32(len(f.NumPolyVerts)) }

// NumVerts returns the total vertex count across all polygons.
func (f *Footprint) NumVerts() int32 { return int32(len(f.X)) }

// VertOffset returns the index into X/Y where polygon i's vertices
// begin. VertOffset(NumPolys()) is NumVerts().
func (f *Footprint) VertOffset(poly int32) int32 {
	off := int32(0)
	for i := int32(0); i < poly; i++ {
		off += f.NumPolyVerts[i]
	}
	return off
}

// Vertex returns the j-th vertex (0-indexed, modulo the polygon's vertex
// count) of polygon poly.
func (f *Footprint) Vertex(poly, j int32) geom2.Vec2 {
	off := f.VertOffset(poly)
	n := f.NumPolyVerts[poly]
	j = ((j % n) + n) % n
	return geom2.New(f.X[off+j], f.Y[off+j])
}

// BorderSegmentIDs returns the four synthetic obstacle ids spec.md §3
// assigns to the scene border (ids P..P+3, where P = NumPolys()).
func (f *Footprint) BorderSegmentIDs() [4]int32 {
	p := f.NumPolys()
	return [4]int32{p, p + 1, p + 2, p + 3}
}

// Bounds computes the 2-D bounding box of f expanded by border (spec.md
// §3: "Scene bbox is the footprint bbox expanded by a border margin").
func Bounds(f *Footprint, border float32) geom2.BBox2 {
	if f.NumVerts() == 0 {
		return geom2.BBox2{}
	}
	min := geom2.New(f.X[0], f.Y[0])
	max := min
	for i := 1; i < len(f.X); i++ {
		p := geom2.New(f.X[i], f.Y[i])
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return geom2.BBox2{Min: min, Max: max}.Expand(border)
}

// Vertex3 is a (x, y, z) distance-mesh vertex, z encoding the distance
// function value (spec.md §3). It is go-detour's own gogeo/f32/d3.Vec3
// repurposed for the ECM's triangulated distance field: d3.Vec3 is a
// 3-element float32 slice, exactly what a render-ready vertex buffer
// needs, and avoids redefining another 3-tuple type alongside it.
type Vertex3 = d3.Vec3

// NewVertex3 returns a Vertex3{x, y, z}.
func NewVertex3(x, y, z float32) Vertex3 {
	return d3.NewVec3XYZ(x, y, z)
}
