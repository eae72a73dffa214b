package ecs

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"time"

	"github.com/plus3/ambrosia/statsd"
	"github.com/rotisserie/eris"
)

// SchedulerStats provides statistics about system execution.
type SchedulerStats struct {
	SystemCount     int
	TickCount       uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Priority       int
	ExecutionCount int64
	ErrorCount     int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type registeredSystem struct {
	system   System
	priority int
	stats    *systemStatsInternal
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	errorCount     int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(duration time.Duration, failed bool) {
	s.executionCount++
	if failed {
		s.errorCount++
	}
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

func systemName(system System) string {
	if named, ok := system.(interface{ Name() string }); ok {
		return named.Name()
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if systemType.Name() == "" {
		return systemType.String()
	}
	return systemType.Name()
}

// AddSystem runs the system's Initialize hook, if any, and registers it with the given priority.
// Systems run in descending priority order; systems with equal priority run in registration order.
// A system whose Initialize fails is not registered.
// A system added during Tick first runs on the following tick.
func (w *World) AddSystem(system System, priority int) error {
	if system == nil {
		return eris.New("ecs: cannot add a nil system")
	}
	name := systemName(system)

	if initializer, ok := system.(Initializer); ok {
		if err := initializer.Initialize(w); err != nil {
			return eris.Wrapf(err, "system %s failed to initialize", name)
		}
	}

	idx := 0
	for idx < len(w.systems) && w.systems[idx].priority >= priority {
		idx++
	}

	entry := registeredSystem{
		system:   system,
		priority: priority,
		stats: &systemStatsInternal{
			name:        name,
			minDuration: time.Duration(1<<63 - 1),
		},
	}
	w.systems = append(w.systems, registeredSystem{})
	copy(w.systems[idx+1:], w.systems[idx:])
	w.systems[idx] = entry

	w.logger.Debug().Str("system", name).Int("priority", priority).Int("position", idx).Msg("system registered")
	return nil
}

// Systems returns the registered systems in execution order.
func (w *World) Systems() []System {
	systems := make([]System, len(w.systems))
	for i, entry := range w.systems {
		systems[i] = entry.system
	}
	return systems
}

// SystemNames returns the names of the registered systems in execution order.
func (w *World) SystemNames() []string {
	names := make([]string, len(w.systems))
	for i, entry := range w.systems {
		names[i] = entry.stats.name
	}
	return names
}

// Tick executes every system once, in priority order, then flushes the deferred Commands.
// A failing system does not stop the others; all errors are joined into the returned error.
func (w *World) Tick() error {
	tickStart := time.Now()
	var errs []error

	// systems added while ticking run from the next tick on
	systems := slices.Clone(w.systems)
	for _, entry := range systems {
		start := time.Now()
		err := entry.system.Execute(w)
		duration := time.Since(start)

		entry.stats.record(duration, err != nil)
		w.metrics.Timing(statsd.SystemTimingStat, duration, entry.stats.name)

		if err != nil {
			w.logger.Error().Err(err).Str("system", entry.stats.name).Uint64("tick", w.tick).Msg("system failed")
			errs = append(errs, eris.Wrapf(err, "system %s", entry.stats.name))
		}
	}

	if err := w.commands.flush(w); err != nil {
		w.logger.Warn().Err(err).Uint64("tick", w.tick).Msg("command flush failed")
		errs = append(errs, err)
	}

	w.tick++
	w.metrics.Timing(statsd.TickTimingStat, time.Since(tickStart), statsd.AllSystems)
	return errors.Join(errs...)
}

// TickCount returns the number of completed ticks.
func (w *World) TickCount() uint64 {
	return w.tick
}

// Run ticks the World at the given interval until the context is cancelled.
// Tick errors are logged and do not stop the loop.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = w.Tick()
		}
	}
}

// SchedulerStats returns statistics about system execution.
func (w *World) SchedulerStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(w.systems),
		TickCount:   w.tick,
		Systems:     make([]SystemStats, len(w.systems)),
	}

	var totalExecs int64
	for i, entry := range w.systems {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Priority:       entry.priority,
			ExecutionCount: internal.executionCount,
			ErrorCount:     internal.errorCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
