package meshdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/eepeterson/godagmc/internal/meshdb"
	"github.com/eepeterson/godagmc/internal/testutil"
)

func TestArea(t *testing.T) {
	t.Parallel()
	db := meshdb.New()
	surf := db.CreateMeshSet()

	a := db.CreateVertex(r3.Vec{X: 0, Y: 0, Z: 0})
	b := db.CreateVertex(r3.Vec{X: 3, Y: 0, Z: 0})
	c := db.CreateVertex(r3.Vec{X: 0, Y: 4, Z: 0})
	tri, err := db.CreateTriangle(a, b, c)
	require.NoError(t, err)
	require.NoError(t, db.AddToSet(surf, tri))

	area, err := db.Area(surf)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, area, 1e-12)

	t.Run("empty surface has zero area", func(t *testing.T) {
		empty := db.CreateMeshSet()
		area, err := db.Area(empty)
		require.NoError(t, err)
		assert.Zero(t, area)
	})

	t.Run("unknown set", func(t *testing.T) {
		_, err := db.Area(meshdb.Handle(9999))
		assert.Error(t, err)
	})
}

func TestEnclosedVolume(t *testing.T) {
	t.Parallel()
	db := testutil.UnitCube()

	vols := db.SetsWithTagValue(meshdb.TagCategory, "Volume")
	require.Len(t, vols, 1)

	enclosed, err := db.EnclosedVolume(vols[0])
	require.NoError(t, err)
	assert.InDelta(t, 1.0, enclosed, 1e-12)
}

func TestEnclosedVolumeRequiresSenses(t *testing.T) {
	t.Parallel()
	db := meshdb.New()
	vol := db.CreateMeshSet()
	surf := db.CreateMeshSet()
	require.NoError(t, db.AddParentChild(vol, surf))

	_, err := db.EnclosedVolume(vol)
	require.Error(t, err)
	assert.ErrorContains(t, err, "has no sense")
}
