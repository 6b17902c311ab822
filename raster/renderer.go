// Package raster defines the external rendering and compaction
// capabilities spec.md §6 specifies as out-of-scope collaborators ("the
// raster renderer ... must expose a 'draw coloured triangles with depth
// test under ortho projection' primitive"), plus one concrete CPU-backed
// implementation of each so the ECM pipeline runs without a GPU.
//
// The Renderer interface mirrors go-detour's own "RasterizeTriangle(s)"
// family (recast/rasterization.go) in spirit — a triangle-in,
// heightfield/colour-buffer-out contract — generalised from "walkable
// area coverage" to "nearest-obstacle colour via z-buffer minimum".
package raster

import "github.com/corridormap/ecm/distmesh"

// InitParams configures a Renderer's render target and projection
// (spec.md §6): "params = {render_target_width, render_target_height,
// min[3], max[3], far_plane}". The projection is left-handed ortho from
// (min[0..1], 0) to (max[0..1], far_plane).
type InitParams struct {
	Width, Height int32
	Min, Max      [3]float32
	FarPlane      float32
}

// Renderer is the abstract rendering capability spec.md §6 requires.
// Implementations render coloured triangle lists with back-face culling
// (CCW front) and depth test LESS into an RGBA8 colour buffer, then
// yield that buffer as an opaque CPU-visible image via ReadPixels.
type Renderer interface {
	Initialize(params InitParams) error
	Begin() error
	// Draw submits triCount triangles (9 float32 per triangle: 3 verts *
	// (x,y,z)) all sharing colorRGBA, an obstacle id packed into RGBA8.
	Draw(vertices []float32, triCount int32, colorRGBA uint32) error
	End() error
	// ReadPixels copies the colour buffer out as RGBA8, one uint32 per
	// pixel, row-major, into dst (len(dst) must be Width*Height).
	ReadPixels(dst []uint32) error
}

// PackColor packs an obstacle id into the RGBA8 colour spec.md §6
// describes ("Colour write converts an RGBA8 id to 4 floats in [0,1]").
// Here the id is carried directly as a uint32 colour value (the lossless
// software-rasterizer equivalent of the float round-trip): PackColor and
// UnpackColor are the identity on uint32, kept as named conversions so
// callers read intent rather than depend on the representation.
func PackColor(id uint32) uint32 { return id }

// UnpackColor is the inverse of PackColor.
func UnpackColor(c uint32) uint32 { return c }

// RenderMesh renders every segment of mesh into r: one Draw call per
// segment, each coloured by the segment's obstacle id (spec.md §4.1,
// "render_distance_mesh").
func RenderMesh(r Renderer, mesh *distmesh.Mesh) error {
	if err := r.Begin(); err != nil {
		return err
	}
	for _, seg := range mesh.Segments {
		flat := make([]float32, 0, len(seg.Verts)*3)
		for _, v := range seg.Verts {
			flat = append(flat, v.X(), v.Y(), v.Z())
		}
		triCount := int32(len(seg.Verts) / 3)
		if err := r.Draw(flat, triCount, PackColor(seg.Color)); err != nil {
			return err
		}
	}
	return r.End()
}
