package main

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ambrosia/ecs"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
	assert.Equal(t, 2*time.Millisecond, s.P99)
	assert.Equal(t, 3*time.Millisecond, s.Samples[0], "samples keep their order")
}

func TestStatsFinalizeEmpty(t *testing.T) {
	s := Stats{}
	s.Finalize()
	assert.Zero(t, s.Avg)
}

func TestWorkloadAndReport(t *testing.T) {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(7))

	require.NoError(t, RegisterStressSystems(world, rng, 3))
	assert.Len(t, world.Systems(), ComponentCount+1)

	for i := 0; i < 50; i++ {
		e, err := SpawnRandomEntity(world, rng, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, e.Archetype().Len())
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, world.Tick())
	}
	assert.Equal(t, 50, world.EntityCount(), "churn removes and spawns the same number")

	report := &Report{
		Entities:   50,
		Components: ComponentCount,
		Systems:    len(world.Systems()),
		World:      world.CollectStats(),
		Scheduler:  world.SchedulerStats(),
	}
	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "# ECS Stress Test Report")
	assert.Contains(t, buf.String(), "ChurnSystem")
	assert.Contains(t, buf.String(), "**Live Entities:** 50")
}

func TestStartProfile(t *testing.T) {
	p, err := startProfile("")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = startProfile("heap")
	assert.ErrorContains(t, err, `unknown profile "heap"`)
}
