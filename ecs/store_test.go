package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ambrosia/ecs"
)

func TestDynamicStoreInsert(t *testing.T) {
	store := ecs.NewDynamicStore()
	require.NoError(t, ecs.Insert(store, Position{X: 1, Y: 2}))
	require.NoError(t, ecs.Insert(store, Velocity{DX: 3}))

	err := ecs.Insert(store, Position{X: 9})
	assert.ErrorIs(t, err, ecs.ErrDuplicateComponent)
	assert.Equal(t, 2, store.Len())

	pos := ecs.GetUnchecked[Position](store)
	require.NotNil(t, pos)
	assert.Equal(t, float32(1), pos.X, "duplicate insert must not overwrite")

	assert.True(t, ecs.Has[Position](store))
	assert.False(t, ecs.Has[Health](store))
	assert.True(t, store.HasKey(ecs.KeyOf[Velocity]()))
	assert.True(t, store.Archetype().Equal(ecs.ArchetypeOf(ecs.KeyOf[Velocity](), ecs.KeyOf[Position]())))
}

func TestDynamicStoreBorrowDiscipline(t *testing.T) {
	store := ecs.NewDynamicStore()
	require.NoError(t, ecs.Insert(store, Health{Current: 10, Max: 10}))
	key := ecs.KeyOf[Health]()

	t.Run("shared accesses stack", func(t *testing.T) {
		first, ok, err := ecs.Get[Health](store)
		require.NoError(t, err)
		require.True(t, ok)
		second, _, err := ecs.Get[Health](store)
		require.NoError(t, err)

		state, _ := store.State(key)
		assert.Equal(t, 2, state.Shared())

		_, ok, err = ecs.GetMut[Health](store)
		assert.True(t, ok)
		assert.ErrorIs(t, err, ecs.ErrBorrowConflict)

		first.Release()
		second.Release()
		state, _ = store.State(key)
		assert.True(t, state.Free())
	})

	t.Run("exclusive access blocks everything", func(t *testing.T) {
		ref, ok, err := ecs.GetMut[Health](store)
		require.NoError(t, err)
		require.True(t, ok)

		state, _ := store.State(key)
		assert.True(t, state.Exclusive())
		assert.Equal(t, "Exclusive", state.String())

		_, _, err = ecs.Get[Health](store)
		assert.ErrorIs(t, err, ecs.ErrBorrowConflict)
		_, _, err = ecs.GetMut[Health](store)
		assert.ErrorIs(t, err, ecs.ErrBorrowConflict)

		ref.Get().Current = 4
		ref.Release()

		shared, _, err := ecs.Get[Health](store)
		require.NoError(t, err)
		assert.Equal(t, 4, shared.Get().Current)
		shared.Release()
	})

	t.Run("release is idempotent", func(t *testing.T) {
		a, _, _ := ecs.Get[Health](store)
		b, _, _ := ecs.Get[Health](store)
		a.Release()
		a.Release()

		state, _ := store.State(key)
		assert.Equal(t, 1, state.Shared())
		b.Release()

		state, _ = store.State(key)
		assert.Equal(t, "Not Borrowed", state.String())
	})

	t.Run("released ref panics on use", func(t *testing.T) {
		ref, _, _ := ecs.GetMut[Health](store)
		ref.Release()
		assert.Panics(t, func() { ref.Get() })
	})

	t.Run("absent type is not an error", func(t *testing.T) {
		ref, ok, err := ecs.Get[Position](store)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, ref)

		mut, ok, err := ecs.GetMut[Position](store)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, mut)
	})
}

func TestDynamicStoreScopedAccess(t *testing.T) {
	store := ecs.NewDynamicStore()
	require.NoError(t, ecs.Insert(store, Position{X: 1}))
	key := ecs.KeyOf[Position]()

	ok, err := ecs.Write(store, func(p *Position) { p.X += 10 })
	require.NoError(t, err)
	assert.True(t, ok)

	var seen Position
	ok, err = ecs.Read(store, func(p Position) { seen = p })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float32(11), seen.X)

	assert.Panics(t, func() {
		_, _ = ecs.Write(store, func(*Position) { panic("boom") })
	})
	state, _ := store.State(key)
	assert.True(t, state.Free(), "access must be released after a panic")

	ok, err = ecs.Read(store, func(Health) {})
	assert.NoError(t, err)
	assert.False(t, ok)

	ref, _, _ := ecs.Get[Position](store)
	_, err = ecs.Write(store, func(*Position) { t.Fatal("must not run") })
	assert.ErrorIs(t, err, ecs.ErrBorrowConflict)
	ref.Release()
}

func TestDynamicStoreKeysSorted(t *testing.T) {
	store := ecs.NewDynamicStore()
	require.NoError(t, ecs.Insert(store, Name{}))
	require.NoError(t, ecs.Insert(store, Position{}))
	require.NoError(t, ecs.Insert(store, Health{}))

	keys := store.Keys()
	require.Len(t, keys, 3)
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i])
	}
}

func TestDynamicStoreAcquireMut(t *testing.T) {
	store := ecs.NewDynamicStore()
	require.NoError(t, ecs.Insert(store, Name{Value: "before"}))
	key := ecs.KeyOf[Name]()

	value, release, err := store.AcquireMut(key)
	require.NoError(t, err)
	value.(*Name).Value = "after"

	_, _, err = ecs.Get[Name](store)
	assert.ErrorIs(t, err, ecs.ErrBorrowConflict)
	_, _, err = store.AcquireMut(key)
	assert.ErrorIs(t, err, ecs.ErrBorrowConflict)

	release()
	release()
	state, _ := store.State(key)
	assert.True(t, state.Free())
	assert.Equal(t, "after", ecs.GetUnchecked[Name](store).Value)

	_, _, err = store.AcquireMut(ecs.KeyOf[Health]())
	assert.ErrorIs(t, err, ecs.ErrNotFound)
}

func TestDynamicStoreUntypedAccessRespectsExclusive(t *testing.T) {
	store := ecs.NewDynamicStore()
	require.NoError(t, ecs.Insert(store, Position{X: 1}))

	ref, ok, err := ecs.GetMut[Position](store)
	require.True(t, ok)
	require.NoError(t, err)
	defer ref.Release()

	value, release, err := store.AcquireMut(ecs.KeyOf[Position]())
	assert.ErrorIs(t, err, ecs.ErrBorrowConflict)
	assert.Nil(t, value)
	assert.Nil(t, release)
	assert.Equal(t, float32(1), ref.Get().X)
}
