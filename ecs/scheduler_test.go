package ecs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ambrosia/ecs"
)

type recordingSystem struct {
	name  string
	order *[]string
	err   error
	sleep time.Duration
}

func (s *recordingSystem) Name() string { return s.name }

func (s *recordingSystem) Execute(*ecs.World) error {
	*s.order = append(*s.order, s.name)
	if s.sleep > 0 {
		time.Sleep(s.sleep)
	}
	return s.err
}

type initSystem struct {
	initialized int
	err         error
}

func (s *initSystem) Initialize(w *ecs.World) error {
	s.initialized++
	if s.err != nil {
		return s.err
	}
	return ecs.InsertResource(w, TickCounter{})
}

func (s *initSystem) Execute(w *ecs.World) error {
	_, err := ecs.WriteResource(w, func(c *TickCounter) { c.Ticks++ })
	return err
}

func TestSchedulerPriorityOrder(t *testing.T) {
	world := ecs.NewWorld()
	var order []string

	require.NoError(t, world.AddSystem(&recordingSystem{name: "five", order: &order}, 5))
	require.NoError(t, world.AddSystem(&recordingSystem{name: "minus-ten", order: &order}, -10))
	require.NoError(t, world.AddSystem(&recordingSystem{name: "zero", order: &order}, 0))
	require.NoError(t, world.AddSystem(&recordingSystem{name: "zero-again", order: &order}, 0))
	require.NoError(t, world.AddSystem(&recordingSystem{name: "five-again", order: &order}, 5))

	want := []string{"five", "five-again", "zero", "zero-again", "minus-ten"}
	assert.Equal(t, want, world.SystemNames())

	require.NoError(t, world.Tick())
	assert.Equal(t, want, order)

	require.NoError(t, world.Tick())
	assert.Len(t, order, 2*len(want))
	assert.Equal(t, uint64(2), world.TickCount())
}

func TestSchedulerInitialize(t *testing.T) {
	world := ecs.NewWorld()
	sys := &initSystem{}
	require.NoError(t, world.AddSystem(sys, 0))
	assert.Equal(t, 1, sys.initialized)

	require.NoError(t, world.Tick())
	require.NoError(t, world.Tick())

	ref, ok, err := ecs.GetResource[TickCounter](world)
	require.NoError(t, err)
	require.True(t, ok)
	defer ref.Release()
	assert.Equal(t, 2, ref.Get().Ticks)
}

func TestSchedulerInitializeFailure(t *testing.T) {
	world := ecs.NewWorld()
	boom := errors.New("boom")

	err := world.AddSystem(&initSystem{err: boom}, 0)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, world.Systems())

	assert.Error(t, world.AddSystem(nil, 0))
}

func TestSchedulerErrorsDoNotStopTick(t *testing.T) {
	world := ecs.NewWorld()
	var order []string
	first := errors.New("first failed")
	second := errors.New("second failed")

	require.NoError(t, world.AddSystem(&recordingSystem{name: "a", order: &order, err: first}, 3))
	require.NoError(t, world.AddSystem(&recordingSystem{name: "b", order: &order}, 2))
	require.NoError(t, world.AddSystem(&recordingSystem{name: "c", order: &order, err: second}, 1))

	err := world.Tick()
	require.Error(t, err)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.Equal(t, []string{"a", "b", "c"}, order)

	stats := world.SchedulerStats()
	assert.Equal(t, int64(1), stats.Systems[0].ErrorCount)
	assert.Equal(t, int64(0), stats.Systems[1].ErrorCount)
}

func TestSchedulerStats(t *testing.T) {
	world := ecs.NewWorld()
	var order []string

	stats := world.SchedulerStats()
	assert.Equal(t, 0, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)

	require.NoError(t, world.AddSystem(&recordingSystem{name: "slow", order: &order, sleep: 2 * time.Millisecond}, 1))
	require.NoError(t, world.AddSystem(&recordingSystem{name: "fast", order: &order, sleep: time.Millisecond}, 0))

	stats = world.SchedulerStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

	for i := 0; i < 3; i++ {
		require.NoError(t, world.Tick())
	}

	stats = world.SchedulerStats()
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, uint64(3), stats.TickCount)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "slow", stats.Systems[0].Name)
	assert.Equal(t, 1, stats.Systems[0].Priority)

	for _, sys := range stats.Systems {
		assert.Equal(t, int64(3), sys.ExecutionCount)
		assert.NotZero(t, sys.MinDuration)
		assert.NotZero(t, sys.LastDuration)
		assert.LessOrEqual(t, sys.MinDuration, sys.AvgDuration)
		assert.LessOrEqual(t, sys.AvgDuration, sys.MaxDuration)
		assert.Equal(t, sys.TotalDuration/3, sys.AvgDuration)
	}
}

func TestSchedulerRun(t *testing.T) {
	world := ecs.NewWorld()
	ticks := make(chan struct{}, 16)
	require.NoError(t, world.AddSystem(ecs.SystemFunc(func(*ecs.World) error {
		select {
		case ticks <- struct{}{}:
		default:
		}
		return nil
	}), 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		world.Run(ctx, time.Millisecond)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatal("world did not tick")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.GreaterOrEqual(t, world.TickCount(), uint64(3))
}

type addingSystem struct {
	order *[]string
	late  ecs.System
	added bool
}

func (s *addingSystem) Name() string { return "adder" }

func (s *addingSystem) Execute(w *ecs.World) error {
	*s.order = append(*s.order, "adder")
	if s.added {
		return nil
	}
	s.added = true
	return w.AddSystem(s.late, 100)
}

func TestSchedulerAddSystemDuringTick(t *testing.T) {
	world := ecs.NewWorld()
	var order []string

	for i := 0; i < 4; i++ {
		require.NoError(t, world.AddSystem(&recordingSystem{name: "other", order: &order}, -1))
	}
	adder := &addingSystem{order: &order, late: &recordingSystem{name: "late", order: &order}}
	require.NoError(t, world.AddSystem(adder, 10))

	require.NoError(t, world.Tick())
	assert.Equal(t, []string{"adder", "other", "other", "other", "other"}, order)

	order = order[:0]
	require.NoError(t, world.Tick())
	assert.Equal(t, []string{"late", "adder", "other", "other", "other", "other"}, order)
	assert.Equal(t, []string{"late", "adder", "other", "other", "other", "other"}, world.SystemNames())
}
