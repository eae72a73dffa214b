package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plus3/ambrosia/ecs"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type TickCounter struct {
	Ticks int
}

type A struct{}
type B struct{}
type C struct{}
type D struct{}
type E struct{}

func spawn(t testing.TB, world *ecs.World, insert ...func(*ecs.EntityBuilder) *ecs.EntityBuilder) *ecs.Entity {
	t.Helper()
	b := world.Spawn()
	for _, fn := range insert {
		b = fn(b)
	}
	entity, err := b.Build()
	require.NoError(t, err)
	return entity
}

func with[T any](value T) func(*ecs.EntityBuilder) *ecs.EntityBuilder {
	return func(b *ecs.EntityBuilder) *ecs.EntityBuilder {
		return ecs.InsertComponent(b, value)
	}
}
