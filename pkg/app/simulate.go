package app

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/sparks/internal/storage"
	"github.com/decker502/sparks/pkg/entities"
	"github.com/decker502/sparks/pkg/game"
	"github.com/decker502/sparks/pkg/particles"
	"github.com/decker502/sparks/pkg/systems"
	"github.com/decker502/sparks/pkg/utils"
)

// 无界面模拟默认值
const (
	DefaultSimulationFrames = 300
	DefaultSimulationStep   = 1000.0 / 60
)

// SimulateOptions configures a headless run.
type SimulateOptions struct {
	Library *game.EffectLibrary
	Effect  string // ignored by SimulateAll

	Frames       int     // <= 0 uses DefaultSimulationFrames
	Step         float64 // ms per frame, <= 0 uses DefaultSimulationStep
	Seed         uint64  // 0 picks a time-based seed, reported in the result
	MaxParticles int
	Origin       utils.Vector

	// Concurrency 限制 SimulateAll 同时运行的系统数，<= 0 为 CPU 数
	Concurrency int
	Logger      *log.Logger
}

// SimulationResult summarises one headless run.
type SimulationResult struct {
	Effect         string
	Seed           uint64
	Frames         int
	Step           float64
	SimulatedTime  float64 // ms of simulated time
	PeakParticles  int
	FinalParticles int
	Spawned        uint64
	Dropped        uint64
	Duration       time.Duration // wall-clock
}

// Run converts the result into a storage record.
func (r SimulationResult) Run() storage.Run {
	return storage.Run{
		Effect:         r.Effect,
		Seed:           r.Seed,
		Frames:         r.Frames,
		Step:           r.Step,
		PeakParticles:  r.PeakParticles,
		FinalParticles: r.FinalParticles,
		Spawned:        r.Spawned,
		Dropped:        r.Dropped,
		Duration:       r.Duration,
	}
}

func (o SimulateOptions) withDefaults() SimulateOptions {
	if o.Frames <= 0 {
		o.Frames = DefaultSimulationFrames
	}
	if o.Step <= 0 {
		o.Step = DefaultSimulationStep
	}
	if o.Seed == 0 {
		o.Seed = uint64(time.Now().UnixNano())
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Simulate runs opts.Effect for the configured number of frames on a
// fresh, seeded particle system. The context is checked between frames.
func Simulate(ctx context.Context, opts SimulateOptions) (SimulationResult, error) {
	opts = opts.withDefaults()
	if opts.Library == nil {
		return SimulationResult{}, fmt.Errorf("simulate: effect library is required")
	}

	result := SimulationResult{
		Effect: opts.Effect,
		Seed:   opts.Seed,
		Frames: opts.Frames,
		Step:   opts.Step,
	}

	system := particles.NewParticleSystem(
		particles.WithRandomSource(particles.NewRandomSource(opts.Seed)),
		particles.WithLogger(opts.Logger),
		particles.WithMaxParticles(opts.MaxParticles),
	)
	clock := systems.NewFrameClock(opts.Step)

	if _, err := entities.CreateParticleEffect(system, opts.Library, opts.Effect,
		opts.Origin.X, opts.Origin.Y, clock.Now()); err != nil {
		return result, err
	}

	start := time.Now()
	for frame := 0; frame < opts.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("simulate %s: stopped at frame %d: %w", opts.Effect, frame, err)
		}
		system.Update(clock.Tick())
	}
	result.Duration = time.Since(start)

	stats := system.Stats()
	result.SimulatedTime = clock.Now().CurrentTime
	result.PeakParticles = stats.PeakParticles
	result.FinalParticles = stats.Particles
	result.Spawned = stats.Spawned
	result.Dropped = stats.Dropped

	opts.Logger.Debug("simulation finished", "effect", opts.Effect, "frames", opts.Frames,
		"peak", result.PeakParticles, "duration", result.Duration)
	return result, nil
}

// SimulateAll runs every effect in the library concurrently, each on its
// own particle system. Results follow the library's name order. The first
// failure cancels the remaining runs.
func SimulateAll(ctx context.Context, opts SimulateOptions) ([]SimulationResult, error) {
	opts = opts.withDefaults()
	if opts.Library == nil {
		return nil, fmt.Errorf("simulate: effect library is required")
	}

	names := opts.Library.Names()
	results := make([]SimulationResult, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, name := range names {
		g.Go(func() error {
			run := opts
			run.Effect = name
			res, err := Simulate(ctx, run)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
