package dagmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eepeterson/godagmc/internal/meshdb"
)

func TestRegistryAllocate(t *testing.T) {
	t.Parallel()
	r := newRegistry()

	t.Run("ascending from one", func(t *testing.T) {
		for want := 1; want <= 3; want++ {
			id := r.Allocate(CategoryVolume)
			assert.Equal(t, want, id)
			require.NoError(t, r.Reserve(CategoryVolume, id, meshdb.Handle(id)))
		}
	})

	t.Run("smallest released gap first", func(t *testing.T) {
		r.Release(CategoryVolume, 2)
		assert.Equal(t, 2, r.Allocate(CategoryVolume))
		require.NoError(t, r.Reserve(CategoryVolume, 2, 2))
		assert.Equal(t, 4, r.Allocate(CategoryVolume))
	})

	t.Run("categories are independent", func(t *testing.T) {
		assert.Equal(t, 1, r.Allocate(CategorySurface))
	})
}

func TestRegistryNextAfterMax(t *testing.T) {
	t.Parallel()
	r := newRegistry()

	assert.Equal(t, 1, r.NextAfterMax(CategoryVolume))

	require.NoError(t, r.Reserve(CategoryVolume, 5, 1))
	require.NoError(t, r.Reserve(CategoryVolume, 9000, 2))
	assert.Equal(t, 9001, r.NextAfterMax(CategoryVolume))

	// Releasing the maximum lowers the result; gaps below it do not.
	r.Release(CategoryVolume, 9000)
	assert.Equal(t, 6, r.NextAfterMax(CategoryVolume))
	assert.Equal(t, 1, r.Allocate(CategoryVolume), "Allocate still takes the smallest gap")
}

func TestRegistryReserve(t *testing.T) {
	t.Parallel()
	r := newRegistry()

	require.NoError(t, r.Reserve(CategoryGroup, 7, 10))

	t.Run("same handle is a no-op", func(t *testing.T) {
		require.NoError(t, r.Reserve(CategoryGroup, 7, 10))
	})

	t.Run("different handle collides", func(t *testing.T) {
		err := r.Reserve(CategoryGroup, 7, 11)
		require.Error(t, err)
		assert.ErrorContains(t, err, "already")
		var dup *DuplicateIDError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, 7, dup.ID)
	})

	t.Run("non-positive IDs rejected", func(t *testing.T) {
		var invalid *ValidationError
		assert.ErrorAs(t, r.Reserve(CategoryGroup, 0, 12), &invalid)
		assert.ErrorAs(t, r.Reserve(CategoryGroup, -3, 12), &invalid)
	})

	h, ok := r.InUse(CategoryGroup, 7)
	require.True(t, ok)
	assert.Equal(t, meshdb.Handle(10), h)
	assert.Equal(t, 1, r.IDs(CategoryGroup))
}

func TestRegistryAlias(t *testing.T) {
	t.Parallel()
	r := newRegistry()

	assert.Equal(t, meshdb.Handle(5), r.resolve(5), "unmerged handles resolve to themselves")

	r.alias(5, 6)
	r.alias(6, 7)
	assert.Equal(t, meshdb.Handle(7), r.resolve(5))
	assert.Equal(t, meshdb.Handle(7), r.resolve(6))
	assert.Equal(t, meshdb.Handle(7), r.resolve(7))

	// Aliasing to an already merged handle lands on its root.
	r.alias(4, 5)
	assert.Equal(t, meshdb.Handle(7), r.resolve(4))
}
