package distmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corridormap/ecm/geom2"
)

func triangleFootprint() *Footprint {
	return &Footprint{
		X:            []float32{10, 50, 30},
		Y:            []float32{20, 20, 50},
		NumPolyVerts: []int32{3},
	}
}

func TestBoundsExpandsByBorder(t *testing.T) {
	f := triangleFootprint()
	b := Bounds(f, 10)
	assert.Equal(t, geom2.New(0, 10), b.Min)
	assert.Equal(t, geom2.New(60, 60), b.Max)
}

func TestMaxDistanceCoversRenderTarget(t *testing.T) {
	b := geom2.BBox2{Min: geom2.New(0, 0), Max: geom2.New(10, 20)}
	d := MaxDistance(b)
	assert.InDelta(t, 28.284, float64(d), 0.01)
}

func TestBuildFailsWhenMaxDistTooSmall(t *testing.T) {
	f := triangleFootprint()
	b := Bounds(f, 10)
	_, err := Build(f, b, 1.0, 1.0)
	assert.Error(t, err)
}

func TestBuildProducesOneSegmentPerPolyPlusFourBorders(t *testing.T) {
	f := triangleFootprint()
	b := Bounds(f, 10)
	maxDist := MaxDistance(b)
	mesh, err := Build(f, b, maxDist, 0.5)
	assert.NoError(t, err)
	assert.Len(t, mesh.Segments, 1+4)
	for _, seg := range mesh.Segments {
		assert.Zero(t, len(seg.Verts)%3, "segment triangle list must be a multiple of 3")
		for _, v := range seg.Verts {
			assert.GreaterOrEqual(t, v.Z(), float32(0), "z must be >= 0 (spec invariant)")
		}
	}
}

func TestSetSegmentColorsCyclesThroughPalette(t *testing.T) {
	f := &Footprint{
		X:            []float32{0, 1, 0, 2, 3, 2},
		Y:            []float32{0, 0, 1, 0, 0, 1},
		NumPolyVerts: []int32{3, 3},
	}
	b := Bounds(f, 5)
	mesh, err := Build(f, b, MaxDistance(b), 0.5)
	assert.NoError(t, err)
	colors := []uint32{0xAA, 0xBB}
	SetSegmentColors(mesh, colors)
	for i, seg := range mesh.Segments {
		assert.Equal(t, colors[i%len(colors)], seg.Color)
	}
}

func TestNormalsBuildOneNormalPerEdge(t *testing.T) {
	f := triangleFootprint()
	n := BuildNormals(f)
	assert.Len(t, n.N[0], 3)
	assert.Len(t, n.Mid[0], 3)
}
