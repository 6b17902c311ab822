package ecm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/walkable"
)

// straightCorridorSpace builds u --h-- v, a 10-unit-long, 4-unit-wide
// straight corridor, for FindRoute/Query tests below.
func straightCorridorSpace(t *testing.T) (*walkable.Space, int32, int32) {
	t.Helper()
	space := walkable.NewSpace(8, 8, 8)
	u, _ := space.CreateVertex(geom2.New(0, 0))
	v, _ := space.CreateVertex(geom2.New(10, 0))
	space.AddVertexSide(u, geom2.New(0, 2), false)
	space.AddVertexSide(u, geom2.New(0, -2), false)
	space.AddVertexSide(v, geom2.New(10, 2), false)
	space.AddVertexSide(v, geom2.New(10, -2), false)
	h, _ := space.CreateEdge(u, v)
	e, _ := space.CreateEvent(h, geom2.New(5, 0))
	space.SetEventSides(e, geom2.New(5, 2), geom2.New(5, -2), false, false)
	return space, u, v
}

func TestNearestVertexPicksClosest(t *testing.T) {
	space, u, v := straightCorridorSpace(t)
	got, ok := NearestVertex(space, geom2.New(9, 0.1), 0)
	require.True(t, ok)
	assert.Equal(t, v, got)

	got, ok = NearestVertex(space, geom2.New(0.2, 0), 0)
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestNearestVertexRejectsWhenClearanceTooTight(t *testing.T) {
	space, _, _ := straightCorridorSpace(t)
	_, ok := NearestVertex(space, geom2.New(0, 0), 10)
	assert.False(t, ok)
}

func TestFindRouteReturnsSingleEdge(t *testing.T) {
	space, u, v := straightCorridorSpace(t)
	route, err := FindRoute(space, u, v, 1)
	require.NoError(t, err)
	require.Len(t, route, 1)
	assert.Equal(t, v, space.Target(route[0]))
}

func TestFindRouteSameVertexIsEmpty(t *testing.T) {
	space, u, _ := straightCorridorSpace(t)
	route, err := FindRoute(space, u, u, 1)
	require.NoError(t, err)
	assert.Empty(t, route)
}

func TestFindRouteRejectsWhenTooNarrow(t *testing.T) {
	space, u, v := straightCorridorSpace(t)
	_, err := FindRoute(space, u, v, 5)
	assert.Error(t, err)
}

func TestQueryProducesEndpoints(t *testing.T) {
	space, _, _ := straightCorridorSpace(t)
	ctx := NewBuildContext(false)
	path, status := Query(ctx, space, geom2.New(0, 0), geom2.New(10, 0), 1)
	require.True(t, StatusSucceeded(status))
	require.NotEmpty(t, path)
	assert.Equal(t, geom2.New(0, 0), path[0].P0)
	assert.Equal(t, geom2.New(10, 0), path[len(path)-1].P1)
}
