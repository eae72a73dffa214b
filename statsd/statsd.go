// Package statsd wraps the datadog statsd client behind the few timings and gauges the ECS emits.
package statsd

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

const (
	// TickTimingStat is the duration of a whole World.Tick.
	TickTimingStat = "tick"
	// SystemTimingStat is the duration of a single system's Execute.
	SystemTimingStat = "system"
	// AllSystems tags a timing covering every system.
	AllSystems = "all_systems"

	namespace = "ambrosia."
)

// Emitter sends ECS metrics to a statsd client.
type Emitter struct {
	client ddstatsd.ClientInterface
}

// NoOp returns an emitter that discards everything.
func NoOp() *Emitter {
	return &Emitter{client: &ddstatsd.NoOpClient{}}
}

// NewWithClient wraps an existing client.
func NewWithClient(client ddstatsd.ClientInterface) *Emitter {
	if client == nil {
		return NoOp()
	}
	return &Emitter{client: client}
}

// New connects to the statsd agent at address.
func New(address string, tags []string) (*Emitter, error) {
	if address == "" {
		return nil, eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		ddstatsd.WithNamespace(namespace),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	client, err := ddstatsd.New(address, opts...)
	if err != nil {
		return nil, eris.Wrapf(err, "statsd client for %s", address)
	}
	return &Emitter{client: client}, nil
}

// Client returns the underlying statsd client.
func (e *Emitter) Client() ddstatsd.ClientInterface {
	return e.client
}

// Timing reports a duration tagged with stage.
func (e *Emitter) Timing(name string, duration time.Duration, stage string) {
	if err := e.client.Timing(name, duration, []string{stage}, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit %s stat: %v", name, err)
	}
}

// Gauge reports a point-in-time value.
func (e *Emitter) Gauge(name string, value float64, tags ...string) {
	if err := e.client.Gauge(name, value, tags, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit %s gauge: %v", name, err)
	}
}

// Close flushes and closes the client.
func (e *Emitter) Close() error {
	return e.client.Close()
}
