package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ambrosia/ecs"
)

func TestWorldPartitions(t *testing.T) {
	world := ecs.NewWorld(ecs.WithName("partitions"))
	assert.Equal(t, "partitions", world.Name())

	spawn(t, world, with(Position{}), with(Velocity{}))
	spawn(t, world, with(Velocity{}), with(Position{}))
	spawn(t, world, with(Position{}))

	assert.Equal(t, 3, world.EntityCount())
	assert.Equal(t, 2, world.ArchetypeCount())
	require.Len(t, world.Archetypes(), 2)
	assert.Equal(t, 2, world.Archetypes()[0].Len())
}

func TestWorldRemoveEntity(t *testing.T) {
	world := ecs.NewWorld()
	other := ecs.NewWorld()

	entity := spawn(t, world, with(Name{Value: "a"}))
	_, ok := other.RemoveEntity(entity)
	assert.False(t, ok, "entity belongs to another world")

	removed, ok := world.RemoveEntity(entity)
	require.True(t, ok)
	assert.Same(t, entity, removed)
	assert.Equal(t, 0, world.EntityCount())

	_, ok = world.RemoveEntity(entity)
	assert.False(t, ok)
}

func TestWorldNilInsert(t *testing.T) {
	world := ecs.NewWorld()
	_, err := world.Insert(nil)
	assert.ErrorIs(t, err, ecs.ErrSpawnFailed)
}

func TestWorldQueryStopsEarly(t *testing.T) {
	world := ecs.NewWorld()
	for i := 0; i < 5; i++ {
		spawn(t, world, with(Position{X: float32(i)}))
	}

	seen := 0
	for range world.QueryEntities(ecs.QueryFor(ecs.KeyOf[Position]())) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestWorldResources(t *testing.T) {
	world := ecs.NewWorld()

	require.NoError(t, ecs.InsertResource(world, TickCounter{}))
	assert.ErrorIs(t, ecs.InsertResource(world, TickCounter{Ticks: 5}), ecs.ErrDuplicateComponent)
	assert.True(t, ecs.HasResource[TickCounter](world))
	assert.False(t, ecs.HasResource[Position](world))

	ok, err := ecs.WriteResource(world, func(c *TickCounter) { c.Ticks++ })
	require.NoError(t, err)
	assert.True(t, ok)

	ref, ok, err := ecs.GetResource[TickCounter](world)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, ref.Get().Ticks)

	_, _, err = ecs.GetResourceMut[TickCounter](world)
	assert.ErrorIs(t, err, ecs.ErrBorrowConflict)
	ref.Release()

	mut, ok, err := ecs.GetResourceMut[TickCounter](world)
	require.NoError(t, err)
	require.True(t, ok)
	mut.Get().Ticks = 42
	mut.Release()

	var ticks int
	ok, err = ecs.ReadResource(world, func(c TickCounter) { ticks = c.Ticks })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, ticks)

	_, ok, err = ecs.GetResource[Position](world)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 1, world.Resources().Len())
}

func TestWorldsAreIndependent(t *testing.T) {
	a := ecs.NewWorld()
	b := ecs.NewWorld()
	assert.NotEqual(t, a.ID(), b.ID())

	spawn(t, a, with(Position{}))
	require.NoError(t, ecs.InsertResource(a, TickCounter{}))
	require.NoError(t, a.AddSystem(ecs.SystemFunc(func(*ecs.World) error { return nil }), 1))

	assert.Equal(t, 0, b.EntityCount())
	assert.False(t, ecs.HasResource[TickCounter](b))
	assert.Empty(t, b.Systems())
}

func TestWorldInsertAppendsToPartitionEnd(t *testing.T) {
	world := ecs.NewWorld()

	first := spawn(t, world, with(Position{}))
	second := spawn(t, world, with(Position{}))
	firstID, _ := first.ID()
	_, ok := world.Remove(firstID)
	require.True(t, ok)
	third := spawn(t, world, with(Position{}))

	for want, e := range []*ecs.Entity{second, third} {
		id, ok := e.ID()
		require.True(t, ok)
		assert.Equal(t, want+1, id.Index())
	}
}

func TestWorldZeroEntityIdNeverResolves(t *testing.T) {
	world := ecs.NewWorld()
	empty, err := world.Spawn().Build()
	require.NoError(t, err)

	_, ok := world.Get(ecs.EntityId{})
	assert.False(t, ok)
	_, ok = world.Remove(ecs.EntityId{})
	assert.False(t, ok)

	id, ok := empty.ID()
	require.True(t, ok)
	found, ok := world.Get(id)
	require.True(t, ok)
	assert.Same(t, empty, found)
}
