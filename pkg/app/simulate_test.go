package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/sparks/pkg/game"
)

func TestSimulate(t *testing.T) {
	opts := SimulateOptions{
		Library: testLibrary(t),
		Effect:  "explosion",
		Frames:  60,
		Step:    16,
		Seed:    1234,
	}

	first, err := Simulate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "explosion", first.Effect)
	assert.Equal(t, uint64(1234), first.Seed)
	assert.Equal(t, 60, first.Frames)
	assert.InDelta(t, 960.0, first.SimulatedTime, 1e-9)
	assert.Greater(t, first.PeakParticles, 0)
	assert.GreaterOrEqual(t, first.Spawned, uint64(first.PeakParticles))
	assert.LessOrEqual(t, first.FinalParticles, first.PeakParticles)

	// 相同种子结果一致
	second, err := Simulate(context.Background(), opts)
	require.NoError(t, err)
	first.Duration, second.Duration = 0, 0
	assert.Equal(t, first, second)

	run := first.Run()
	assert.Equal(t, "explosion", run.Effect)
	assert.Equal(t, first.PeakParticles, run.PeakParticles)
	assert.Empty(t, run.ID, "ids are assigned by the store")
}

func TestSimulateDefaultsAndBudget(t *testing.T) {
	res, err := Simulate(context.Background(), SimulateOptions{
		Library:      testLibrary(t),
		Effect:       "fountain",
		Frames:       120,
		MaxParticles: 10,
	})
	require.NoError(t, err)
	assert.NotZero(t, res.Seed, "a seed is always reported")
	assert.InDelta(t, DefaultSimulationStep, res.Step, 1e-9)
	assert.LessOrEqual(t, res.PeakParticles, 10)
	assert.Greater(t, res.Dropped, uint64(0))
}

func TestSimulateErrors(t *testing.T) {
	_, err := Simulate(context.Background(), SimulateOptions{Library: testLibrary(t), Effect: "missing"})
	assert.ErrorIs(t, err, game.ErrEffectNotFound)

	_, err = Simulate(context.Background(), SimulateOptions{Effect: "firework"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Simulate(ctx, SimulateOptions{Library: testLibrary(t), Effect: "firework"})
	assert.True(t, errors.Is(err, context.Canceled))
}

// TestSimulateAll 所有特效并发运行，结果按名称排序
func TestSimulateAll(t *testing.T) {
	lib := testLibrary(t)
	results, err := SimulateAll(context.Background(), SimulateOptions{
		Library:     lib,
		Frames:      30,
		Seed:        99,
		Concurrency: 3,
	})
	require.NoError(t, err)
	require.Len(t, results, lib.Len())

	for i, name := range lib.Names() {
		assert.Equal(t, name, results[i].Effect)
		assert.Equal(t, uint64(99), results[i].Seed)
		assert.Greater(t, results[i].Spawned, uint64(0), name)
	}

	// 单独运行与并发运行结果一致
	single, err := Simulate(context.Background(), SimulateOptions{Library: lib, Effect: lib.Names()[0], Frames: 30, Seed: 99})
	require.NoError(t, err)
	single.Duration, results[0].Duration = 0, 0
	assert.Equal(t, single, results[0])
}

func TestSimulateAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SimulateAll(ctx, SimulateOptions{Library: testLibrary(t), Frames: 10})
	assert.ErrorIs(t, err, context.Canceled)
}
