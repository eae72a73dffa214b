package ecs

import (
	"github.com/plus3/ambrosia/statsd"
	"github.com/rs/zerolog"
)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for system and command diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithStatsd sends tick and per-system timings to the given emitter.
func WithStatsd(emitter *statsd.Emitter) Option {
	return func(w *World) {
		w.metrics = emitter
	}
}

// WithName names the World in logs and stats.
func WithName(name string) Option {
	return func(w *World) {
		w.name = name
	}
}
