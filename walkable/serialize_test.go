package walkable

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corridormap/ecm/geom2"
)

func buildSampleSpace(t *testing.T) *Space {
	t.Helper()
	s := NewSpace(8, 8, 8)
	u, _ := s.CreateVertex(geom2.New(0, 0))
	v, _ := s.CreateVertex(geom2.New(10, 0))
	s.AddVertexSide(u, geom2.New(0, 2), false)
	s.AddVertexSide(v, geom2.New(10, 2), true)
	h, _ := s.CreateEdge(u, v)
	e, _ := s.CreateEvent(h, geom2.New(5, 0))
	s.SetEventSides(e, geom2.New(5, 2), geom2.New(5, -2), false, true)
	return s
}

func TestSaveLoadRoundTrips(t *testing.T) {
	s := buildSampleSpace(t)

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))

	got, err := Load(&buf)
	require.NoError(t, err)

	require.Equal(t, s.Verts.Len(), got.Verts.Len())
	require.Equal(t, s.HalfEdges.Len(), got.HalfEdges.Len())
	require.Equal(t, s.Events.Len(), got.Events.Len())

	assert.Equal(t, s.VertexPos(0), got.VertexPos(0))
	assert.Equal(t, s.VertexPos(1), got.VertexPos(1))
	assert.Equal(t, s.VertexSides(1), got.VertexSides(1))
	assert.True(t, got.VertexSideIsArc(1, 0))
	assert.Equal(t, s.Target(0), got.Target(0))
	assert.Equal(t, s.EventPos(0), got.EventPos(0))
}

func TestLoadRejectsWrongMagic(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not an ecm file at all")))
	assert.Error(t, err)
}
