package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/plus3/ambrosia/ecs"
	ecslog "github.com/plus3/ambrosia/ecs/log"
	"github.com/plus3/ambrosia/internal/config"
	"github.com/plus3/ambrosia/statsd"
)

type options struct {
	duration       time.Duration
	entities       int
	churn          int
	seed           int64
	gcPauseMetrics bool
	profile        string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "ecs-stress",
		Short: "Run a synthetic workload against an ECS World and report timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := config.LoadRuntime()
			if err != nil {
				return err
			}
			return run(cmd.Context(), rt, opts)
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flags.IntVar(&opts.entities, "entities", 10000, "The initial number of entities to create.")
	flags.IntVar(&opts.churn, "churn", 10, "Entities removed and respawned through Commands each tick.")
	flags.Int64Var(&opts.seed, "seed", 1, "Seed for the random component mix.")
	flags.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flags.StringVar(&opts.profile, "profile", "", "Write a profile to the current directory: cpu, mem or allocs.")
	return cmd
}

func startProfile(kind string) (interface{ Stop() }, error) {
	var mode func(*profile.Profile)
	switch kind {
	case "":
		return nil, nil
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "allocs":
		mode = profile.MemProfileAllocs
	default:
		return nil, eris.Errorf("unknown profile %q", kind)
	}
	return profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet), nil
}

func newEmitter(rt config.Runtime, logger zerolog.Logger) *statsd.Emitter {
	if rt.StatsdAddress == "" {
		return statsd.NoOp()
	}
	emitter, err := statsd.New(rt.StatsdAddress, rt.StatsdTags)
	if err != nil {
		logger.Warn().Err(err).Msg("statsd disabled")
		return statsd.NoOp()
	}
	return emitter
}

func run(ctx context.Context, rt config.Runtime, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := rt.Logger()
	logger.Info().Msg("starting ECS stress test")

	p, err := startProfile(opts.profile)
	if err != nil {
		return err
	}
	if p != nil {
		defer p.Stop()
	}

	metrics := newEmitter(rt, logger)
	defer metrics.Close()

	world := ecs.NewWorld(
		ecs.WithName("ecs-stress"),
		ecs.WithLogger(logger),
		ecs.WithStatsd(metrics),
	)
	rng := rand.New(rand.NewSource(opts.seed))

	if err := RegisterStressSystems(world, rng, opts.churn); err != nil {
		return err
	}

	logger.Info().Int("entities", opts.entities).Msg("populating world")
	for i := 0; i < opts.entities; i++ {
		if _, err := SpawnRandomEntity(world, rng, rng.Intn(5)+1); err != nil {
			return err
		}
	}
	ecslog.Archetypes(world.Logger(), world, zerolog.DebugLevel)
	ecslog.Systems(world.Logger(), world, zerolog.DebugLevel)

	report := &Report{
		Duration:       opts.duration,
		Entities:       opts.entities,
		Components:     ComponentCount,
		Systems:        len(world.Systems()),
		GCPauseMetrics: opts.gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", opts.duration).Msg("running simulation")
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates, failedUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			if err := world.Tick(); err != nil {
				failedUpdates++
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.FailedUpdates = failedUpdates
	report.UpdateTime.Finalize()
	report.World = world.CollectStats()
	report.Scheduler = world.SchedulerStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	metrics.Gauge("entities", float64(report.World.TotalEntityCount))
	logger.Info().Int64("updates", totalUpdates).Msg("simulation finished")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return eris.Wrap(err, "failed to generate report")
	}
	fmt.Println("--- End of Report ---")
	return nil
}
