package raster

import "fmt"

// Image is the opaque VoronoiImage spec.md §3 describes: a raster
// produced by rendering a DistanceMesh under ortho projection with
// z-buffering, colour = obstacle id. It is "opaque" only to the rest of
// the pipeline's contract (spec.md §6); CPURenderer is free to expose
// its fields directly since, per spec.md §4.2, "the system is agnostic
// to whether classification runs on GPU or CPU" and the classifier
// (package raster, classify.go) is itself CPU code reading this struct.
type Image struct {
	Width, Height int32
	// Color holds one packed obstacle-id colour per pixel, row-major.
	// NoObstacle marks a pixel no triangle ever covered.
	Color []uint32
	depth []float32
}

// NoObstacle marks an Image pixel no rasterized triangle covered.
const NoObstacle uint32 = 0xFFFFFFFF

// At returns the colour at (x, y).
func (img *Image) At(x, y int32) uint32 { return img.Color[y*img.Width+x] }

// CPURenderer is a software reference implementation of Renderer: a
// scanline z-buffer rasterizer. It fulfils spec.md §6's renderer
// contract entirely on the CPU, the fallback the spec explicitly
// sanctions ("GPU compaction may be replaced by a CPU scan"; by
// extension, so may GPU rendering, since the core only consumes the
// resulting colour buffer).
//
// Grounded on go-detour's RasterizeTriangle (recast/rasterization.go)
// for the "triangle in, buffer out, depth-tested" shape, generalised
// from a single walkable/non-walkable area id to an arbitrary packed
// obstacle-id colour with a true z-buffer minimum rather than a
// heightfield span merge.
type CPURenderer struct {
	params InitParams
	img    *Image
}

// NewCPURenderer returns an uninitialized CPURenderer; call Initialize
// before use.
func NewCPURenderer() *CPURenderer { return &CPURenderer{} }

// Initialize implements Renderer.
func (r *CPURenderer) Initialize(params InitParams) error {
	if params.Width <= 0 || params.Height <= 0 {
		return fmt.Errorf("raster: invalid render target %dx%d", params.Width, params.Height)
	}
	r.params = params
	n := int(params.Width) * int(params.Height)
	r.img = &Image{
		Width:  params.Width,
		Height: params.Height,
		Color:  make([]uint32, n),
		depth:  make([]float32, n),
	}
	for i := range r.img.Color {
		r.img.Color[i] = NoObstacle
		r.img.depth[i] = params.FarPlane
	}
	return nil
}

// Begin implements Renderer. The CPU rasterizer needs no batching state.
func (r *CPURenderer) Begin() error { return nil }

// End implements Renderer.
func (r *CPURenderer) End() error { return nil }

// ReadPixels implements Renderer.
func (r *CPURenderer) ReadPixels(dst []uint32) error {
	if len(dst) != len(r.img.Color) {
		return fmt.Errorf("raster: ReadPixels dst size %d != %d", len(dst), len(r.img.Color))
	}
	copy(dst, r.img.Color)
	return nil
}

// Image returns the renderer's backing Image directly, for the CPU path
// where the classifier (raster.Classify) wants to skip the ReadPixels
// round-trip.
func (r *CPURenderer) Image() *Image { return r.img }

// Draw implements Renderer: rasterizes triCount CCW triangles from
// vertices (9 float32 per triangle) with back-face culling and depth
// test LESS, writing colorRGBA to every covered pixel whose depth beats
// what's stored.
func (r *CPURenderer) Draw(vertices []float32, triCount int32, colorRGBA uint32) error {
	sx := float32(r.params.Width) / (r.params.Max[0] - r.params.Min[0])
	sy := float32(r.params.Height) / (r.params.Max[1] - r.params.Min[1])

	toScreen := func(x, y float32) (float32, float32) {
		return (x - r.params.Min[0]) * sx, (y - r.params.Min[1]) * sy
	}

	for t := int32(0); t < triCount; t++ {
		base := t * 9
		x0, y0, z0 := vertices[base+0], vertices[base+1], vertices[base+2]
		x1, y1, z1 := vertices[base+3], vertices[base+4], vertices[base+5]
		x2, y2, z2 := vertices[base+6], vertices[base+7], vertices[base+8]

		sx0, sy0 := toScreen(x0, y0)
		sx1, sy1 := toScreen(x1, y1)
		sx2, sy2 := toScreen(x2, y2)

		// back-face cull: CCW front, screen space.
		area := (sx1-sx0)*(sy2-sy0) - (sx2-sx0)*(sy1-sy0)
		if area <= 0 {
			continue
		}

		minX, maxX := minMax3(sx0, sx1, sx2)
		minY, maxY := minMax3(sy0, sy1, sy2)
		x0i, x1i := clampi(int32(minX), r.params.Width), clampi(int32(maxX)+1, r.params.Width)
		y0i, y1i := clampi(int32(minY), r.params.Height), clampi(int32(maxY)+1, r.params.Height)

		for py := y0i; py < y1i; py++ {
			for px := x0i; px < x1i; px++ {
				px0 := float32(px) + 0.5
				py0 := float32(py) + 0.5

				w0 := edgeFn(sx1, sy1, sx2, sy2, px0, py0)
				w1 := edgeFn(sx2, sy2, sx0, sy0, px0, py0)
				w2 := edgeFn(sx0, sy0, sx1, sy1, px0, py0)
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}

				z := (w0*z0 + w1*z1 + w2*z2) / area
				idx := py*r.params.Width + px
				if z < r.img.depth[idx] {
					r.img.depth[idx] = z
					r.img.Color[idx] = colorRGBA
				}
			}
		}
	}
	return nil
}

func edgeFn(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func minMax3(a, b, c float32) (float32, float32) {
	min, max := a, a
	for _, v := range [2]float32{b, c} {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func clampi(v, hi int32) int32 {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
