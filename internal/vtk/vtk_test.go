package vtk_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/eepeterson/godagmc/internal/fsutil"
	"github.com/eepeterson/godagmc/internal/vtk"
)

func TestWrite(t *testing.T) {
	t.Parallel()
	fsys := fsutil.NewMemoryFileSystem()

	mesh := vtk.Mesh{
		Points: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
	require.NoError(t, vtk.Write(fsys, "square.vtk", "Surface 1", mesh))

	data, err := fsys.ReadFile("square.vtk")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	require.GreaterOrEqual(t, len(lines), 14)
	assert.Equal(t, "# vtk DataFile Version 3.0", lines[0])
	assert.Equal(t, "Surface 1", lines[1])
	assert.Equal(t, "ASCII", lines[2])
	assert.Equal(t, "DATASET UNSTRUCTURED_GRID", lines[3])
	assert.Equal(t, "POINTS 4 double", lines[4])
	assert.Equal(t, "0 0 0", lines[5])
	assert.Equal(t, "1 0 0", lines[6])
	assert.Equal(t, "CELLS 2 8", lines[9])
	assert.Equal(t, "3 0 1 2", lines[10])
	assert.Equal(t, "3 0 2 3", lines[11])
	assert.Equal(t, "CELL_TYPES 2", lines[12])
	assert.Equal(t, "5", lines[13])
}

func TestWriteRejectsBadConnectivity(t *testing.T) {
	t.Parallel()
	fsys := fsutil.NewMemoryFileSystem()

	mesh := vtk.Mesh{
		Points:    []r3.Vec{{X: 0, Y: 0, Z: 0}},
		Triangles: [][3]int{{0, 0, 7}},
	}
	err := vtk.Write(fsys, "bad.vtk", "bad", mesh)
	require.Error(t, err)
	assert.ErrorContains(t, err, "references point 7")
	assert.False(t, fsys.Exists("bad.vtk"), "validation happens before the file is created")
}

func TestWriteEmptyMesh(t *testing.T) {
	t.Parallel()
	fsys := fsutil.NewMemoryFileSystem()

	require.NoError(t, vtk.Write(fsys, "empty.vtk", "empty", vtk.Mesh{}))
	data, err := fsys.ReadFile("empty.vtk")
	require.NoError(t, err)
	assert.Contains(t, string(data), "POINTS 0 double")
	assert.Contains(t, string(data), "CELLS 0 0")
}
