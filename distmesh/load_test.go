package distmesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeObj(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.obj")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFootprintReadsFaces(t *testing.T) {
	path := writeObj(t, `
v 0 0 0
v 2 0 0
v 2 2 0
v 0 2 0
f 1 2 3 4
`)
	f, err := LoadFootprint(path)
	require.NoError(t, err)
	require.EqualValues(t, 1, f.NumPolys())
	assert.EqualValues(t, 4, f.NumPolyVerts[0])
	assert.Equal(t, float32(0), f.X[0])
	assert.Equal(t, float32(2), f.Y[2])
}

func TestLoadFootprintRejectsDegenerateFace(t *testing.T) {
	path := writeObj(t, `
v 0 0 0
v 1 0 0
f 1 2
`)
	_, err := LoadFootprint(path)
	assert.Error(t, err)
}

func TestLoadFootprintRejectsMissingFile(t *testing.T) {
	_, err := LoadFootprint(filepath.Join(t.TempDir(), "nope.obj"))
	assert.Error(t, err)
}
