// Package config loads runtime settings from environment variables.
package config

import (
	"os"
	"time"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	DefaultTickRate = 60
	DefaultLogLevel = "info"
)

// Load reads matching environment variables into a new cfg.
// Fields in PascalCase match SNAKE_CASE variables; a `config:"NAME"` tag matches NAME exactly.
func Load[cfg any]() (cfg, error) {
	var c cfg
	err := jlconfig.FromEnv().To(&c)
	return c, err
}

// Runtime holds the settings shared by the ambrosia commands.
type Runtime struct {
	TickRate      int      `config:"AMBROSIA_TICK_RATE"`
	LogLevel      string   `config:"AMBROSIA_LOG_LEVEL"`
	LogPretty     bool     `config:"AMBROSIA_LOG_PRETTY"`
	StatsdAddress string   `config:"AMBROSIA_STATSD_ADDRESS"`
	StatsdTags    []string `config:"AMBROSIA_STATSD_TAGS"`
}

// LoadRuntime loads Runtime from the environment and fills in defaults.
func LoadRuntime() (Runtime, error) {
	rt, err := Load[Runtime]()
	if err != nil {
		return Runtime{}, eris.Wrap(err, "load runtime config")
	}
	rt.applyDefaults()
	return rt, rt.Validate()
}

func (rt *Runtime) applyDefaults() {
	if rt.TickRate == 0 {
		rt.TickRate = DefaultTickRate
	}
	if rt.LogLevel == "" {
		rt.LogLevel = DefaultLogLevel
	}
}

// Validate reports settings that cannot be used.
func (rt Runtime) Validate() error {
	if rt.TickRate < 0 {
		return eris.Errorf("tick rate must be positive, got %d", rt.TickRate)
	}
	if _, err := zerolog.ParseLevel(rt.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", rt.LogLevel)
	}
	return nil
}

// TickInterval returns the time between two ticks.
func (rt Runtime) TickInterval() time.Duration {
	if rt.TickRate <= 0 {
		return time.Second / DefaultTickRate
	}
	return time.Second / time.Duration(rt.TickRate)
}

// Logger builds the process logger described by the settings.
func (rt Runtime) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(rt.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if rt.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
