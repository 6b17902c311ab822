package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPURendererDrawsNearestColorWins(t *testing.T) {
	r := NewCPURenderer()
	err := r.Initialize(InitParams{
		Width: 8, Height: 8,
		Min: [3]float32{0, 0, 0}, Max: [3]float32{8, 8, 0},
		FarPlane: 100,
	})
	assert.NoError(t, err)

	// a far (high z) triangle covering the whole render target...
	far := []float32{
		0, 0, 50, 8, 0, 50, 8, 8, 50,
		0, 0, 50, 8, 8, 50, 0, 8, 50,
	}
	assert.NoError(t, r.Draw(far, 2, 1))

	// ...then a near (low z) triangle covering half of it should win there.
	near := []float32{
		0, 0, 5, 4, 0, 5, 4, 8, 5,
		0, 0, 5, 4, 8, 5, 0, 8, 5,
	}
	assert.NoError(t, r.Draw(near, 2, 2))

	img := r.Image()
	assert.Equal(t, uint32(2), img.At(1, 1), "nearer triangle should win the depth test")
	assert.Equal(t, uint32(1), img.At(6, 1), "farther triangle still owns uncovered area")
}

func TestCPURendererCullsBackFaces(t *testing.T) {
	r := NewCPURenderer()
	assert.NoError(t, r.Initialize(InitParams{Width: 4, Height: 4, Max: [3]float32{4, 4, 0}, FarPlane: 10}))

	// CW winding (reversed) should be culled, leaving pixels untouched.
	cw := []float32{0, 0, 1, 0, 4, 1, 4, 0, 1}
	assert.NoError(t, r.Draw(cw, 1, 7))

	img := r.Image()
	for _, c := range img.Color {
		assert.Equal(t, NoObstacle, c)
	}
}

func TestClassifySingleObstacleHasNoInteriorVertices(t *testing.T) {
	// A 4x4 image split into two colours by a vertical seam: one Voronoi
	// edge, no Voronoi vertex (spec.md §8 property 6: "For a solitary
	// convex polygon there are no Voronoi vertices with id count > 2").
	w, h := int32(4), int32(4)
	img := &Image{Width: w, Height: h, Color: make([]uint32, w*h)}
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			if x < 2 {
				img.Color[y*w+x] = 0
			} else {
				img.Color[y*w+x] = 1
			}
		}
	}
	feats := Classify(img)
	assert.Empty(t, feats.Verts)
	assert.NotEmpty(t, feats.Edges)
}

func TestClassifyThreeObstaclesProduceVertex(t *testing.T) {
	// Four quadrants, three distinct colours meeting at the center pixel:
	// should be classified as a Voronoi vertex (d>=3).
	w, h := int32(2), int32(2)
	img := &Image{Width: w, Height: h, Color: []uint32{0, 1, 2, 2}}
	feats := Classify(img)
	assert.Equal(t, []int32{3}, feats.Verts)
	assert.Equal(t, [][4]uint32{{0, 1, 2, 2}}, feats.VertObstacleIDs)
}

func TestPartitionLRStableAlongChain(t *testing.T) {
	// Simulate sliding a 2x2 window along a horizontal Voronoi edge: top
	// row colour 0, bottom row colour 1, for several consecutive windows.
	var lefts, rights []uint32
	for i := 0; i < 5; i++ {
		l, r := partitionLR(0, 0, 1, 1)
		lefts = append(lefts, l)
		rights = append(rights, r)
	}
	for i := 1; i < len(lefts); i++ {
		assert.Equal(t, lefts[0], lefts[i])
		assert.Equal(t, rights[0], rights[i])
	}
}

func TestSerialCompactor(t *testing.T) {
	mask := []bool{false, true, false, true, true}
	out := SerialCompactor{}.Compact(mask)
	assert.Equal(t, []int32{1, 3, 4}, out)
}
