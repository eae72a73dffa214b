package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ambrosia/ecs"
)

func TestEntityBuilder(t *testing.T) {
	world := ecs.NewWorld()

	t.Run("builds and inserts", func(t *testing.T) {
		b := ecs.InsertComponent(world.Spawn(), Position{X: 1, Y: 2})
		b = ecs.InsertComponent(b, Velocity{DX: 1})
		entity, err := b.Build()
		require.NoError(t, err)

		id, ok := entity.ID()
		require.True(t, ok)
		assert.True(t, id.Archetype().Equal(ecs.ArchetypeOf(ecs.KeyOf[Position](), ecs.KeyOf[Velocity]())))

		found, ok := world.Get(id)
		require.True(t, ok)
		assert.Same(t, entity, found)
	})

	t.Run("fails fast on duplicate component", func(t *testing.T) {
		before := world.EntityCount()

		b := ecs.InsertComponent(world.Spawn(), Name{Value: "first"})
		b = ecs.InsertComponent(b, Name{Value: "second"})
		b = ecs.InsertComponent(b, Health{Current: 1})

		assert.ErrorIs(t, b.Err(), ecs.ErrDuplicateComponent)
		assert.False(t, ecs.HasComponent[Health](b.Entity()), "inserts after the failure are skipped")

		entity, err := b.Build()
		assert.ErrorIs(t, err, ecs.ErrDuplicateComponent)
		assert.Nil(t, entity)
		assert.Equal(t, before, world.EntityCount())
	})
}

func TestEntityLifecycle(t *testing.T) {
	world := ecs.NewWorld()

	entity := ecs.NewEntity()
	require.NoError(t, ecs.AddComponent(entity, Position{X: 5}))
	_, ok := entity.ID()
	assert.False(t, ok)
	assert.False(t, entity.Inserted())

	id, err := world.Insert(entity)
	require.NoError(t, err)
	assert.True(t, entity.Inserted())
	assert.Equal(t, 0, id.Index())

	assert.ErrorIs(t, ecs.AddComponent(entity, Velocity{}), ecs.ErrAlreadyInserted)

	_, err = world.Insert(entity)
	assert.ErrorIs(t, err, ecs.ErrAlreadyInserted)
	assert.Equal(t, 1, world.EntityCount())

	ok, err = ecs.WriteComponent(entity, func(p *Position) { p.X = 7 })
	require.NoError(t, err)
	assert.True(t, ok)

	removed, ok := world.Remove(id)
	require.True(t, ok)
	assert.Same(t, entity, removed)
	assert.True(t, removed.Removed())
	_, ok = removed.ID()
	assert.False(t, ok)

	_, ok = world.Get(id)
	assert.False(t, ok)
	_, ok = world.Remove(id)
	assert.False(t, ok)

	for e := range world.Iter() {
		t.Fatalf("removed entity still iterated: %v", e)
	}

	_, err = world.Insert(removed)
	assert.ErrorIs(t, err, ecs.ErrAlreadyInserted, "removed entities cannot be re-inserted")

	var pos Position
	ok, err = ecs.ReadComponent(removed, func(p Position) { pos = p })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float32(7), pos.X)
}

func TestEntityIdsNeverReused(t *testing.T) {
	world := ecs.NewWorld()

	first := spawn(t, world, with(Position{}))
	firstID, _ := first.ID()
	world.Remove(firstID)

	second := spawn(t, world, with(Position{}))
	secondID, _ := second.ID()

	assert.Equal(t, 1, secondID.Index())
	assert.False(t, firstID.Equal(secondID))
	_, ok := world.Get(firstID)
	assert.False(t, ok)
}

func TestEntityComponentAccess(t *testing.T) {
	world := ecs.NewWorld()
	entity := spawn(t, world, with(Health{Current: 3, Max: 10}))

	ref, ok, err := ecs.GetComponentMut[Health](entity)
	require.NoError(t, err)
	require.True(t, ok)
	ref.Get().Current = 10

	_, _, err = ecs.GetComponent[Health](entity)
	assert.ErrorIs(t, err, ecs.ErrBorrowConflict)
	ref.Release()

	shared, ok, err := ecs.GetComponent[Health](entity)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10, shared.Get().Current)
	shared.Release()

	_, ok, err = ecs.GetComponent[Position](entity)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEntityArchetypeWithoutComponents(t *testing.T) {
	world := ecs.NewWorld()
	entity := spawn(t, world)

	assert.Equal(t, 0, entity.Archetype().Len())
	assert.Equal(t, 1, world.Count(ecs.NewQuery()))
	assert.Equal(t, 0, world.Count(ecs.QueryFor(ecs.KeyOf[Position]())))
}
