package particles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/sparks/pkg/utils"
)

func TestSystemSpawnThenSimulate(t *testing.T) {
	sys := newTestSystem()
	e := NewEmitter(utils.Zero, at(0), sys)
	e.Interval = 0
	e.Settings.Angle = Fixed(0)
	e.Settings.Velocity = Fixed(1000)
	sys.AddEmitter(e)

	before := sys.ParticleCount()
	sys.Update(FrameTime{CurrentTime: 16, TimeSinceLastFrame: 16})

	require.Equal(t, before+1, sys.ParticleCount())
	p := sys.Particles()[0]
	// 同一帧内生成的粒子已经被推进了一步
	assert.InDelta(t, 16, p.Location.X, 1e-9)
}

func TestSystemRemovesDeadSpawnersAndParticles(t *testing.T) {
	sys := newTestSystem()
	e := NewEmitter(utils.Zero, at(0), sys)
	e.TimeToLive = 50
	e.Settings.TimeToLive = Fixed(30)
	sys.AddEmitter(e)

	sys.Update(at(0))
	assert.Equal(t, 1, sys.SpawnerCount())
	assert.Equal(t, 1, sys.ParticleCount())

	sys.Update(at(40))
	assert.Equal(t, 0, sys.ParticleCount(), "particle ttl 30 is dead at 40")

	sys.Update(at(60))
	assert.Equal(t, 0, sys.SpawnerCount())
}

func TestSystemClearIsIdempotent(t *testing.T) {
	sys := newTestSystem()
	e := NewEmitter(utils.Zero, at(0), sys)
	e.Count = Fixed(5)
	sys.AddEmitter(e)
	sys.Update(at(0))
	require.Equal(t, 5, sys.ParticleCount())

	for i := 0; i < 2; i++ {
		sys.Clear()
		assert.Equal(t, 0, sys.ParticleCount())
		assert.Equal(t, 0, sys.SpawnerCount())

		s := &recordingSurface{}
		sys.Render(s)
		assert.Equal(t, 0, s.calls())
	}
}

func TestSystemRenderOrder(t *testing.T) {
	sys := newTestSystem()
	for i := 0; i < 3; i++ {
		p := NewParticle(at(0))
		p.Location = utils.NewVector(float64(i*10), 0)
		sys.Add(p)
	}

	s := &recordingSurface{}
	sys.Render(s)
	require.Len(t, s.rects, 3)
	assert.Equal(t, []float64{-1, 9, 19}, []float64{s.rects[0].X, s.rects[1].X, s.rects[2].X})
}

func TestSystemSpawnerMutationDuringUpdate(t *testing.T) {
	t.Run("运行中添加的生成器下一帧才更新", func(t *testing.T) {
		sys := newTestSystem()
		lateTicks := 0
		late := &SpawnerFunc{Fn: func(FrameTime) bool {
			lateTicks++
			return true
		}}
		added := false
		sys.AddEmitter(&SpawnerFunc{Fn: func(FrameTime) bool {
			if !added {
				sys.AddEmitter(late)
				added = true
			}
			return true
		}})

		sys.Update(at(0))
		assert.Equal(t, 2, sys.SpawnerCount())
		assert.Equal(t, 0, lateTicks)

		sys.Update(at(1))
		assert.Equal(t, 1, lateTicks)
	})

	t.Run("运行中移除的生成器立即生效", func(t *testing.T) {
		sys := newTestSystem()
		victimTicks := 0
		victim := &SpawnerFunc{Fn: func(FrameTime) bool {
			victimTicks++
			return true
		}}
		remover := &SpawnerFunc{}
		remover.Fn = func(FrameTime) bool {
			sys.RemoveEmitter(victim)
			sys.RemoveEmitter(remover)
			return true
		}
		sys.AddEmitter(remover)
		sys.AddEmitter(victim)

		sys.Update(at(0))
		assert.Equal(t, 0, victimTicks)
		assert.Equal(t, 0, sys.SpawnerCount())
	})

	t.Run("已更新的生成器在同一帧被移除", func(t *testing.T) {
		sys := newTestSystem()
		victimTicks := 0
		victim := &SpawnerFunc{Fn: func(FrameTime) bool {
			victimTicks++
			return true
		}}
		sys.AddEmitter(victim)
		sys.AddEmitter(&SpawnerFunc{Fn: func(FrameTime) bool {
			sys.RemoveEmitter(victim)
			return true
		}})

		sys.Update(at(0))
		assert.Equal(t, 1, victimTicks)
		assert.Equal(t, 1, sys.SpawnerCount())

		sys.Update(at(16))
		assert.Equal(t, 1, victimTicks, "removed spawner is not ticked again")
		assert.Equal(t, 1, sys.SpawnerCount())
	})

	t.Run("运行中清空优先", func(t *testing.T) {
		sys := newTestSystem()
		sys.Add(NewParticle(at(0)))
		afterTicks := 0
		after := &SpawnerFunc{Fn: func(FrameTime) bool {
			afterTicks++
			return true
		}}
		sys.AddEmitter(&SpawnerFunc{Fn: func(FrameTime) bool {
			sys.Clear()
			return true
		}})
		sys.AddEmitter(after)

		sys.Update(at(0))
		assert.Equal(t, 0, afterTicks)
		assert.Equal(t, 0, sys.SpawnerCount())
		assert.Equal(t, 0, sys.ParticleCount())
	})
}

func TestSystemRemoveEmitterAbsent(t *testing.T) {
	sys := newTestSystem()
	e := NewEmitter(utils.Zero, at(0), sys)
	sys.RemoveEmitter(e)
	assert.Equal(t, 0, sys.SpawnerCount())

	sys.AddEmitter(e)
	sys.RemoveEmitter(e)
	assert.Equal(t, 0, sys.SpawnerCount())
}

func TestSystemParticleBudget(t *testing.T) {
	sys := NewParticleSystem(WithRandomSource(NewRandomSource(1)), WithMaxParticles(4))
	e := NewEmitter(utils.Zero, at(0), sys)
	e.Count = Fixed(10)
	sys.AddEmitter(e)

	sys.Update(at(0))
	stats := sys.Stats()
	assert.Equal(t, 4, stats.Particles)
	assert.Equal(t, uint64(4), stats.Spawned)
	assert.Equal(t, uint64(6), stats.Dropped)
	assert.Equal(t, 4, stats.PeakParticles)
	assert.Equal(t, 1, stats.Spawners)
}

func TestSystemSeededRunsMatch(t *testing.T) {
	run := func() []utils.Vector {
		sys := NewParticleSystem(WithRandomSource(NewRandomSource(99)))
		e := NewEmitter(utils.NewVector(100, 100), at(0), sys)
		e.Count = NumberRange{Min: 1, Max: 6}
		e.Settings.Angle = NumberRange{Min: 0, Max: 360}
		e.Settings.Velocity = NumberRange{Min: 20, Max: 80}
		sys.AddEmitter(e)

		ft := at(0)
		for i := 0; i < 30; i++ {
			ft = ft.Advance(16)
			sys.Update(ft)
		}
		var out []utils.Vector
		for _, p := range sys.Particles() {
			out = append(out, p.Location)
		}
		return out
	}

	first := run()
	require.NotEmpty(t, first)
	assert.Equal(t, first, run())
}
