package dagmc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eepeterson/godagmc/dagmc"
)

func TestGroupMembership(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)
	groups := model.GroupsByName()
	v1 := model.VolumesByID()[1]

	fuel := groups["mat:fuel"]
	require.NotNil(t, fuel)
	ok, err := fuel.Contains(v1)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, fuel.RemoveSet(v1))
	ok, err = fuel.Contains(v1)
	require.NoError(t, err)
	assert.False(t, ok)

	other := groups["mat:41"]
	require.NoError(t, other.AddSet(v1))
	ids, err := other.VolumeIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids)

	n, err := other.NumVolumes()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = other.NumSurfaces()
	require.NoError(t, err)
	assert.Zero(t, n)

	// Adding twice leaves a single membership.
	require.NoError(t, other.AddSet(v1))
	ids, err = other.VolumeIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids)
}

func TestGroupRename(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)
	fuel := model.GroupsByName()["mat:fuel"]
	require.NotNil(t, fuel)

	require.NoError(t, fuel.SetName("kalamazoo"))

	name, err := fuel.Name()
	require.NoError(t, err)
	assert.Equal(t, "kalamazoo", name)

	byName := model.GroupsByName()
	assert.Contains(t, byName, "kalamazoo")
	assert.NotContains(t, byName, "mat:fuel")
	assert.True(t, fuel.Equal(byName["kalamazoo"]))
}

func TestCreateGroupIdempotent(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)

	existing := model.GroupsByName()["mat:fuel"]
	again, err := dagmc.CreateGroup(model, "mat:fuel")
	require.NoError(t, err)
	assert.True(t, existing.Equal(again))
	assert.Len(t, model.Groups(), 5)

	fresh, err := model.CreateGroup("tally:heating")
	require.NoError(t, err)
	assert.Equal(t, 6, fresh.ID())
	assert.Len(t, model.Groups(), 6)

	// Membership added through either handle is visible through the other.
	require.NoError(t, again.AddSet(model.VolumesByID()[2]))
	ids, err := existing.VolumeIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids)
}

func TestGroupMerge(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)
	groups := model.GroupsByName()

	fuel := groups["mat:fuel"]
	other := groups["mat:41"]
	require.NotNil(t, fuel)
	require.NotNil(t, other)
	otherID := other.ID()

	require.NoError(t, fuel.Merge(other))

	t.Run("membership is unioned", func(t *testing.T) {
		ids, err := fuel.VolumeIDs()
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, ids)
	})

	t.Run("merged wrapper aliases the survivor", func(t *testing.T) {
		assert.True(t, other.Equal(fuel))
		assert.Equal(t, fuel.Key(), other.Key())
		ids, err := other.VolumeIDs()
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, ids)

		name, err := other.Name()
		require.NoError(t, err)
		assert.Equal(t, "mat:fuel", name)
	})

	t.Run("merged group is gone from the model", func(t *testing.T) {
		byName := model.GroupsByName()
		assert.NotContains(t, byName, "mat:41")
		assert.Len(t, model.Groups(), 4)
		assert.NotContains(t, model.GroupsByID(), otherID)
	})

	t.Run("self merge is a no-op", func(t *testing.T) {
		require.NoError(t, fuel.Merge(fuel))
		ids, err := fuel.VolumeIDs()
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, ids)
	})
}

func TestGroupMergeKeepsStateOnFailure(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)
	groups := model.GroupsByName()
	fuel := groups["mat:fuel"]
	other := groups["mat:41"]
	otherID := other.ID()

	// Drop other's underlying set so the merge's database delete fails.
	require.NoError(t, model.Database().DeleteSet(other.Handle()))
	require.Error(t, fuel.Merge(other))

	// The failed merge must not have released other's ID or aliased it.
	assert.Contains(t, model.GroupsByID(), otherID)
	assert.False(t, other.Equal(fuel))
	assert.NotEqual(t, fuel.Key(), other.Key())

	fuelVols, err := fuel.VolumeIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, fuelVols)
}

func TestGroupMergeViaCreate(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)

	orig := model.GroupsByName()["mat:fuel"]
	origVols, err := orig.Volumes()
	require.NoError(t, err)

	newGroup, err := dagmc.CreateGroup(model, "mat:fuel")
	require.NoError(t, err)
	assert.True(t, orig.Equal(newGroup))

	require.NoError(t, newGroup.SetID(100))
	assert.Equal(t, 100, newGroup.ID())
	assert.Equal(t, 100, orig.ID())

	require.NoError(t, orig.Merge(newGroup))
	assert.True(t, orig.Equal(newGroup))

	vols, err := newGroup.Volumes()
	require.NoError(t, err)
	assert.Len(t, vols, len(origVols))

	for _, v := range model.Volumes() {
		require.NoError(t, newGroup.AddSet(v))
	}
	final, err := model.CreateGroup("mat:fuel")
	require.NoError(t, err)
	assert.True(t, final.Equal(newGroup))
	ids, err := final.VolumeIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 6}, ids)
}

func TestGroupTriangles(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)

	// Surface 1 carries the only triangle patch, so the group holding volume 1
	// sees it through the volume's bounding surfaces.
	fuel := model.GroupsByName()["mat:fuel"]
	tris, err := fuel.TriangleHandles()
	require.NoError(t, err)
	assert.Len(t, tris, 2)

	conn, coords, err := fuel.TriangleConnAndCoords(true)
	require.NoError(t, err)
	assert.Len(t, conn, 2)
	assert.Len(t, coords, 4, "the two triangles share two vertices")
}
