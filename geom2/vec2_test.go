package geom2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrient(t *testing.T) {
	o := New(0, 0)
	a := New(1, 0)
	b := New(0, 1)
	assert.True(t, Orient(o, a, b) > 0, "ccw turn should be positive")
	assert.True(t, Orient(o, b, a) < 0, "cw turn should be negative")
	assert.Equal(t, float32(0), Orient(o, a, a.Scale(2)), "collinear points orient to zero")
}

func TestDistAndEqual(t *testing.T) {
	a := New(0, 0)
	b := New(3, 4)
	assert.Equal(t, float32(5), a.Dist(b))
	assert.True(t, a.Equal(New(1e-7, 0), 1e-3))
	assert.False(t, a.Equal(b, 1e-3))
}

func TestBBoxExpand(t *testing.T) {
	b := BBox2{Min: New(0, 0), Max: New(10, 20)}
	e := b.Expand(5)
	assert.Equal(t, New(-5, -5), e.Min)
	assert.Equal(t, New(15, 25), e.Max)
	assert.Equal(t, float32(20), e.Width())
	assert.Equal(t, float32(30), e.Height())
}

func TestNormalizedAndPerp(t *testing.T) {
	v := New(3, 4).Normalized()
	assert.InDelta(t, 1.0, float64(v.Len()), 1e-5)
	p := New(1, 0).Perp()
	assert.Equal(t, New(0, 1), p)
}
