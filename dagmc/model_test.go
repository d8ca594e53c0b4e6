package dagmc_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eepeterson/godagmc/dagmc"
	"github.com/eepeterson/godagmc/internal/testutil"
)

func fuelPinModel(t *testing.T) *dagmc.Model {
	t.Helper()
	model, err := dagmc.NewModel(testutil.FuelPin())
	require.NoError(t, err)
	return model
}

func TestModelRepr(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)
	assert.Equal(t, "Model: 4 Volumes, 21 Surfaces, 5 Groups", model.String())
}

func TestModelAccessors(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)

	vols := model.Volumes()
	require.Len(t, vols, 4)
	assert.Equal(t, []int{1, 2, 3, 6}, entityIDs(vols))

	surfs := model.Surfaces()
	require.Len(t, surfs, 21)
	assert.Equal(t, 1, surfs[0].ID())
	assert.Equal(t, 29, surfs[len(surfs)-1].ID())

	groups := model.Groups()
	require.Len(t, groups, 5)

	byName := model.GroupsByName()
	for _, name := range []string{"mat:fuel", "mat:water", "mat:41", "mat:Graveyard", "boundary:Vacuum"} {
		assert.Contains(t, byName, name)
	}

	byID := model.VolumesByID()
	require.Contains(t, byID, 6)
	assert.Equal(t, "Volume 6", byID[6].String())
}

func entityIDs[E dagmc.Entity](entities []E) []int {
	out := make([]int, len(entities))
	for i, e := range entities {
		out[i] = e.ID()
	}
	return out
}

func TestModelCreateEntities(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)

	v, err := model.CreateVolume(100)
	require.NoError(t, err)
	assert.Equal(t, 100, v.ID())
	assert.True(t, v.Equal(model.VolumesByID()[100]))

	s, err := model.CreateSurface(200)
	require.NoError(t, err)
	assert.Equal(t, 200, s.ID())
	assert.True(t, s.Equal(model.SurfacesByID()[200]))

	t.Run("duplicate explicit ID", func(t *testing.T) {
		_, err := model.CreateVolume(100)
		require.Error(t, err)
		assert.ErrorContains(t, err, "already")
		// The failed create must not have registered a new volume.
		assert.Len(t, model.Volumes(), 5)
	})

	t.Run("unset ID takes max plus one", func(t *testing.T) {
		v2, err := model.CreateVolume(dagmc.UnsetID)
		require.NoError(t, err)
		assert.Equal(t, 101, v2.ID())
	})
}

func TestModelWriteRoundTrip(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)

	require.NoError(t, model.VolumesByID()[1].SetID(12345))

	path := filepath.Join(t.TempDir(), "fuel_pin.db")
	require.NoError(t, model.WriteFile(path))

	reopened, err := dagmc.OpenModel(path)
	require.NoError(t, err)

	assert.Equal(t, model.String(), reopened.String())

	byID := reopened.VolumesByID()
	assert.Contains(t, byID, 12345)
	assert.NotContains(t, byID, 1)
	assert.Equal(t, []int{2, 3, 6, 12345}, entityIDs(reopened.Volumes()))

	names := reopened.GroupsByName()
	require.Contains(t, names, "mat:fuel")
	fuelVols, err := names["mat:fuel"].VolumeIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{12345}, fuelVols)
}

func TestEntityEqualityAcrossModels(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "fuel_pin.db")
	require.NoError(t, testutil.FuelPin().WriteFile(path))

	m1, err := dagmc.OpenModel(path)
	require.NoError(t, err)
	m2, err := dagmc.OpenModel(path)
	require.NoError(t, err)

	v1 := m1.VolumesByID()[1]
	v2 := m2.VolumesByID()[1]
	require.NotNil(t, v1)
	require.NotNil(t, v2)

	// Same file, same handle, but distinct model instances.
	assert.Equal(t, v1.Handle(), v2.Handle())
	assert.False(t, v1.Equal(v2))
	assert.True(t, v1.Equal(m1.VolumesByID()[1]))

	t.Run("keys work as map keys", func(t *testing.T) {
		seen := make(map[dagmc.EntityKey]string)
		for _, g := range m1.Groups() {
			seen[g.Key()] = g.String()
		}
		for _, g := range m2.Groups() {
			seen[g.Key()] = g.String()
		}
		assert.Len(t, seen, 10)
	})
}

func TestAddGroups(t *testing.T) {
	t.Parallel()
	model := fuelPinModel(t)
	for _, g := range model.Groups() {
		require.NoError(t, g.Delete())
	}
	require.Empty(t, model.Groups())

	volumes := model.VolumesByID()
	surfaces := model.SurfacesByID()

	err := model.AddGroups(map[dagmc.GroupKey][]any{
		{Name: "mat:fuel", ID: 10}:            {1, 2},
		{Name: "mat:Graveyard", ID: 50}:       {volumes[6]},
		{Name: "mat:41", ID: 20}:              {3},
		{Name: "boundary:Reflecting", ID: 30}: {27, 28, 29},
		{Name: "boundary:Vacuum", ID: 40}:     {surfaces[24], surfaces[25]},
	})
	require.NoError(t, err)

	groups := model.GroupsByName()
	require.Len(t, groups, 5)

	fuelVols, err := groups["mat:fuel"].VolumeIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, fuelVols)
	assert.Equal(t, 10, groups["mat:fuel"].ID())

	// IDs 27-29 match no volume, so they resolve against the surface table.
	reflSurfs, err := groups["boundary:Reflecting"].SurfaceIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{27, 28, 29}, reflSurfs)
	reflVols, err := groups["boundary:Reflecting"].VolumeIDs()
	require.NoError(t, err)
	assert.Empty(t, reflVols)

	graveVols, err := groups["mat:Graveyard"].VolumeIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{6}, graveVols)

	t.Run("unknown member ID", func(t *testing.T) {
		err := model.AddGroups(map[dagmc.GroupKey][]any{
			{Name: "mat:void", ID: 60}: {999},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "no volume or surface with ID 999")
	})
}
