// Package ecm is the Explicit Corridor Map library's root package: it
// ties together distmesh, raster, csr and walkable into one Build entry
// point, and corridor/funnel into one Query entry point (spec.md §2's
// pipeline, §5's "library is a pure compute core").
package ecm

import (
	"github.com/corridormap/ecm/csr"
	"github.com/corridormap/ecm/distmesh"
	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/raster"
	"github.com/corridormap/ecm/walkable"
)

// Build runs the full pipeline (spec.md §2: Footprint -> DistanceMesh ->
// Raster -> FeatureClassifier -> CSR -> EdgeTracer -> WalkableSpace) and
// returns the resulting half-edge mesh. Logs and timer accounting go
// through ctx (spec.md §5).
//
// Grounded on the teacher's own multi-stage build orchestration
// (recast/recast.go's rcBuildRegions-style sequential pipeline, each
// stage wrapped in ctx.StartTimer/StopTimer) generalised from a
// heightfield/region/contour/polymesh pipeline to this one.
func Build(ctx *Context, settings Settings, foot *distmesh.Footprint, renderer raster.Renderer) (*walkable.Space, Status) {
	bounds := distmesh.Bounds(foot, settings.Border)

	ctx.StartTimer(TimerDistanceMesh)
	maxDist := distmesh.MaxDistance(bounds)
	mesh, err := distmesh.Build(foot, bounds, maxDist, settings.MaxError)
	ctx.StopTimer(TimerDistanceMesh)
	if err != nil {
		ctx.Errorf("distmesh: %v", err)
		return nil, StatusFailure | StatusInvalidParam
	}

	width := int32(bounds.Width()/settings.CellSize) + 1
	height := int32(bounds.Height()/settings.CellSize) + 1

	ctx.StartTimer(TimerRasterize)
	if err := renderer.Initialize(raster.InitParams{
		Width: width, Height: height,
		Min:      [3]float32{bounds.Min.X, bounds.Min.Y, 0},
		Max:      [3]float32{bounds.Max.X, bounds.Max.Y, 0},
		FarPlane: settings.FarPlane,
	}); err != nil {
		ctx.StopTimer(TimerRasterize)
		ctx.Errorf("raster: initialize: %v", err)
		return nil, StatusFailure | StatusExternalStageFailed
	}
	if err := renderer.Begin(); err != nil {
		ctx.StopTimer(TimerRasterize)
		return nil, StatusFailure | StatusExternalStageFailed
	}
	if err := raster.RenderMesh(renderer, mesh); err != nil {
		ctx.StopTimer(TimerRasterize)
		ctx.Errorf("raster: draw: %v", err)
		return nil, StatusFailure | StatusExternalStageFailed
	}
	if err := renderer.End(); err != nil {
		ctx.StopTimer(TimerRasterize)
		return nil, StatusFailure | StatusExternalStageFailed
	}
	pixels := make([]uint32, width*height)
	if err := renderer.ReadPixels(pixels); err != nil {
		ctx.StopTimer(TimerRasterize)
		return nil, StatusFailure | StatusExternalStageFailed
	}
	ctx.StopTimer(TimerRasterize)

	img := &raster.Image{Width: width, Height: height, Color: pixels}

	ctx.StartTimer(TimerClassify)
	feats := raster.Classify(img)
	ctx.StopTimer(TimerClassify)
	ctx.Progressf("classified %d vertex pixels, %d edge pixels", len(feats.Verts), len(feats.Edges))

	ctx.StartTimer(TimerBuildCSR)
	nz := make([]int32, 0, len(feats.Verts)+len(feats.Edges))
	nz = append(nz, feats.Verts...)
	nz = append(nz, feats.Edges...)
	grid := csr.Build(width, height, nz)
	ctx.StopTimer(TimerBuildCSR)

	sx := float32(bounds.Width()) / float32(width)
	sy := float32(bounds.Height()) / float32(height)
	toWorld := func(row, col int32) geom2.Vec2 {
		return geom2.New(bounds.Min.X+(float32(col)+0.5)*sx, bounds.Min.Y+(float32(row)+0.5)*sy)
	}

	ctx.StartTimer(TimerTraceEdges)
	space := walkable.TraceEdges(feats, grid, toWorld, foot, ctx)
	ctx.StopTimer(TimerTraceEdges)
	ctx.Progressf("traced %d vertices, %d half-edges", space.Verts.Len(), space.HalfEdges.Len())

	return space, StatusSuccess
}
