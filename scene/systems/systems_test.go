package systems_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/config"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/sandbox"
	"github.com/plus3/arscene/scene"
	"github.com/plus3/arscene/scene/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	renderer  *sandbox.Renderer
	registry  *scene.Registry
	scheduler *scene.Scheduler
}

func newFixture(tickRate float64) *fixture {
	renderer := sandbox.NewRenderer(nil)
	registry := scene.NewRegistry(renderer, nil)
	return &fixture{
		renderer:  renderer,
		registry:  registry,
		scheduler: scene.NewScheduler(registry, tickRate),
	}
}

func (f *fixture) visual(pos mgl64.Vec3, kind string) scene.Handle {
	return f.renderer.CreateVisual(geom.At(pos), scene.Material{Kind: kind})
}

func (f *fixture) position(t *testing.T, h scene.Handle) mgl64.Vec3 {
	t.Helper()
	pose, ok := f.renderer.Pose(h)
	require.True(t, ok)
	return pose.Position
}

// noBounds hides the sandbox bounds so collision falls back to radii.
type noBounds struct {
	*sandbox.Renderer
}

func (noBounds) Bounds(scene.Handle) (geom.AABB, bool) {
	return geom.AABB{}, false
}

func TestIntegrator(t *testing.T) {
	t.Run("moves by velocity over tick rate", func(t *testing.T) {
		f := newFixture(60)
		f.scheduler.Register(systems.NewIntegratorSystem(f.renderer, 1e-4, nil))

		h := f.visual(mgl64.Vec3{}, scene.KindCube)
		f.registry.AddTarget(h, mgl64.Vec3{0, 0, -6}, scene.Forever)

		f.scheduler.Once()
		assert.InDelta(t, -0.1, f.position(t, h).Z(), 1e-12)

		for range 59 {
			f.scheduler.Once()
		}
		assert.InDelta(t, -6, f.position(t, h).Z(), 1e-9)
	})

	t.Run("slow records stay put", func(t *testing.T) {
		f := newFixture(60)
		f.scheduler.Register(systems.NewIntegratorSystem(f.renderer, 1e-4, nil))

		h := f.visual(mgl64.Vec3{1, 2, 3}, scene.KindCube)
		f.registry.AddTarget(h, mgl64.Vec3{0, 0, 1e-5}, scene.Forever)

		for range 10 {
			f.scheduler.Once()
		}
		assert.Equal(t, mgl64.Vec3{1, 2, 3}, f.position(t, h))
	})

	t.Run("damping decays velocity", func(t *testing.T) {
		f := newFixture(60)
		f.scheduler.Register(systems.NewIntegratorSystem(f.renderer, 1e-4, nil))

		id := f.registry.AddTarget(f.visual(mgl64.Vec3{}, scene.KindCube), mgl64.Vec3{1, 0, 0}, scene.Forever)
		rec, _ := f.registry.Get(id)
		rec.Damping = 0.5

		f.scheduler.Once()
		assert.InDelta(t, 0.5, rec.Speed(), 1e-12)
	})

	t.Run("mortal records expire", func(t *testing.T) {
		f := newFixture(4)
		integrator := systems.NewIntegratorSystem(f.renderer, 1e-4, nil)
		f.scheduler.Register(integrator)

		mortal := f.registry.AddProjectile(f.visual(mgl64.Vec3{}, scene.KindBullet), mgl64.Vec3{0, 0, -4}, 0.5)
		immortal := f.registry.AddTarget(f.visual(mgl64.Vec3{}, scene.KindJet), mgl64.Vec3{}, scene.Forever)

		f.scheduler.Once()
		_, ok := f.registry.Get(mortal)
		assert.True(t, ok)

		f.scheduler.Once()
		_, ok = f.registry.Get(mortal)
		assert.False(t, ok)
		assert.Equal(t, 1, integrator.Expired)

		rec, ok := f.registry.Get(immortal)
		require.True(t, ok)
		assert.Equal(t, scene.Forever, rec.TTL)
		assert.Equal(t, 1, f.renderer.Len())
	})

	t.Run("records without a visual are dropped", func(t *testing.T) {
		f := newFixture(60)
		f.scheduler.Register(systems.NewIntegratorSystem(f.renderer, 1e-4, nil))

		h := f.visual(mgl64.Vec3{}, scene.KindCube)
		id := f.registry.AddTarget(h, mgl64.Vec3{}, scene.Forever)
		f.renderer.RemoveVisual(h)

		f.scheduler.Once()
		_, ok := f.registry.Get(id)
		assert.False(t, ok)
	})
}

func TestCollision(t *testing.T) {
	t.Run("hit removes both by end of tick", func(t *testing.T) {
		f := newFixture(60)
		collision := systems.NewCollisionSystem(f.renderer, nil)
		f.scheduler.Register(collision)
		f.scheduler.Register(systems.NewIntegratorSystem(f.renderer, 1e-4, nil))

		target := f.registry.AddTarget(f.visual(mgl64.Vec3{}, scene.KindCube), mgl64.Vec3{}, scene.Forever)
		bullet := f.registry.AddProjectile(f.visual(mgl64.Vec3{0, 0, 0.1}, scene.KindBullet), mgl64.Vec3{0, 0, -4}, 10)
		bystander := f.registry.AddTarget(f.visual(mgl64.Vec3{5, 0, 0}, scene.KindCube), mgl64.Vec3{}, scene.Forever)

		f.scheduler.Once()

		assert.Equal(t, 1, collision.Hits)
		for _, id := range []scene.RecordID{target, bullet} {
			_, ok := f.registry.Get(id)
			assert.False(t, ok)
		}
		_, ok := f.registry.Get(bystander)
		assert.True(t, ok)
		assert.Equal(t, 1, f.renderer.Len())
	})

	t.Run("miss leaves both", func(t *testing.T) {
		f := newFixture(60)
		collision := systems.NewCollisionSystem(f.renderer, nil)
		f.scheduler.Register(collision)

		f.registry.AddTarget(f.visual(mgl64.Vec3{}, scene.KindCube), mgl64.Vec3{}, scene.Forever)
		f.registry.AddProjectile(f.visual(mgl64.Vec3{0, 0, 1}, scene.KindBullet), mgl64.Vec3{}, 10)

		f.scheduler.Once()
		assert.Equal(t, 0, collision.Hits)
		for rec := range f.registry.All() {
			assert.False(t, rec.Expired())
		}
	})

	t.Run("bounds follow the target's rotation", func(t *testing.T) {
		f := newFixture(60)
		collision := systems.NewCollisionSystem(f.renderer, nil)
		f.scheduler.Register(collision)

		// 0.19 is outside the unrotated half-extent of 0.15 but inside
		// once the box is turned an eighth of a turn
		h := f.renderer.CreateVisual(geom.Identity().RotateLocal(geom.UnitY, math.Pi/4), scene.Material{Kind: scene.KindCube})
		f.registry.AddTarget(h, mgl64.Vec3{}, scene.Forever)
		f.registry.AddProjectile(f.visual(mgl64.Vec3{0.19, 0, 0}, scene.KindBullet), mgl64.Vec3{}, 10)

		f.scheduler.Once()
		assert.Equal(t, 1, collision.Hits)
	})

	t.Run("radius fallback", func(t *testing.T) {
		f := newFixture(60)
		collision := systems.NewCollisionSystem(noBounds{f.renderer}, nil)
		f.scheduler.Register(collision)

		near := f.registry.AddTarget(f.visual(mgl64.Vec3{}, scene.KindCube), mgl64.Vec3{}, scene.Forever)
		far := f.registry.AddTarget(f.visual(mgl64.Vec3{1, 0, 0}, scene.KindCube), mgl64.Vec3{}, scene.Forever)
		f.registry.AddProjectile(f.visual(mgl64.Vec3{0, 0.09, 0}, scene.KindBullet), mgl64.Vec3{}, 10)

		f.scheduler.Once()
		rec, _ := f.registry.Get(near)
		assert.True(t, rec.Expired())
		rec, _ = f.registry.Get(far)
		assert.False(t, rec.Expired())
	})

	t.Run("one projectile can hit several targets", func(t *testing.T) {
		f := newFixture(60)
		collision := systems.NewCollisionSystem(f.renderer, nil)
		f.scheduler.Register(collision)

		f.registry.AddTarget(f.visual(mgl64.Vec3{}, scene.KindCube), mgl64.Vec3{}, scene.Forever)
		f.registry.AddTarget(f.visual(mgl64.Vec3{0.1, 0, 0}, scene.KindCube), mgl64.Vec3{}, scene.Forever)
		f.registry.AddProjectile(f.visual(mgl64.Vec3{0.05, 0, 0}, scene.KindBullet), mgl64.Vec3{}, 10)

		f.scheduler.Once()
		assert.Equal(t, 2, collision.Hits)
		assert.Equal(t, uint64(2), collision.Total)
	})
}

func spawnConfig() config.Spawn {
	cfg := config.Default().Spawn
	cfg.Seed = 1
	return cfg
}

func TestSpawn(t *testing.T) {
	t.Run("first spawn after the initial delay", func(t *testing.T) {
		f := newFixture(60)
		observer := geom.At(mgl64.Vec3{1, 1.5, -2})
		spawner := systems.NewSpawnSystem(spawnConfig(), sandbox.NewTrackerAt(observer), f.renderer, nil, nil)
		f.scheduler.Register(spawner)

		for range 119 {
			f.scheduler.Once()
		}
		assert.Equal(t, 0, f.registry.Len())

		f.scheduler.Once()
		require.Equal(t, 1, f.registry.Stats().Targets)
		assert.Equal(t, 480, spawner.Countdown)

		var rec *scene.Record
		for r := range f.registry.Targets() {
			rec = r
		}
		assert.InDelta(t, 0.2, rec.Speed(), 1e-9)
		assert.Equal(t, scene.Forever, rec.TTL)

		pose, ok := f.renderer.Pose(rec.Handle)
		require.True(t, ok)
		offset := pose.Position.Sub(observer.Position)
		assert.InDelta(t, 0, offset.Y(), 1e-12, "spawns at observer height")
		assert.LessOrEqual(t, offset.X(), 2.0)
		assert.GreaterOrEqual(t, offset.X(), -2.0)
		assert.Greater(t, rec.Velocity.Dot(offset.Mul(-1)), 0.0, "flies toward the observer")
		assert.InDelta(t, 0.2, pose.Scale, 1e-12)
	})

	t.Run("interval between spawns", func(t *testing.T) {
		f := newFixture(60)
		cfg := spawnConfig()
		cfg.InitialDelayFrames = 0
		cfg.IntervalFrames = 3
		f.scheduler.Register(systems.NewSpawnSystem(cfg, sandbox.NewTrackerAt(geom.Identity()), f.renderer, nil, nil))

		f.scheduler.Once()
		assert.Equal(t, 1, f.registry.Len())
		f.scheduler.Once()
		f.scheduler.Once()
		assert.Equal(t, 1, f.registry.Len())
		f.scheduler.Once()
		assert.Equal(t, 2, f.registry.Len())
	})

	t.Run("holds without an observer pose", func(t *testing.T) {
		f := newFixture(60)
		tracker := sandbox.NewTracker()
		spawner := systems.NewSpawnSystem(spawnConfig(), tracker, f.renderer, nil, nil)
		f.scheduler.Register(spawner)

		for range 200 {
			f.scheduler.Once()
		}
		assert.Equal(t, 0, f.registry.Len())
		assert.Equal(t, 0, spawner.Countdown)

		tracker.Set(geom.Identity())
		f.scheduler.Once()
		assert.Equal(t, 1, f.registry.Len())
		assert.Equal(t, uint64(1), spawner.Spawned)
	})

	t.Run("seeded placement is repeatable", func(t *testing.T) {
		place := func() mgl64.Vec3 {
			f := newFixture(60)
			cfg := spawnConfig()
			cfg.InitialDelayFrames = 0
			rng := rand.New(rand.NewPCG(3, 4))
			f.scheduler.Register(systems.NewSpawnSystem(cfg, sandbox.NewTrackerAt(geom.Identity()), f.renderer, rng, nil))
			f.scheduler.Once()
			return f.renderer.Visuals()[0].Pose.Position
		}
		assert.Equal(t, place(), place())
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(60)
		cfg := spawnConfig()
		cfg.Enabled = false
		cfg.InitialDelayFrames = 0
		f.scheduler.Register(systems.NewSpawnSystem(cfg, sandbox.NewTrackerAt(geom.Identity()), f.renderer, nil, nil))

		f.scheduler.Once()
		assert.Equal(t, 0, f.registry.Len())
	})
}

func TestDragFollow(t *testing.T) {
	setup := func(t *testing.T, carrying bool) (*fixture, *sandbox.Tracker, scene.Handle) {
		t.Helper()
		f := newFixture(60)
		tracker := sandbox.NewTrackerAt(geom.At(mgl64.Vec3{0, 1, 0}))
		selection := scene.NewSelection(f.registry)

		f.scheduler.Register(systems.NewIntegratorSystem(f.renderer, 1e-4, nil))
		drag := systems.NewDragFollowSystem(config.Default().Drag, 0.3, tracker, f.renderer, selection)
		drag.Carrying = carrying
		f.scheduler.Register(drag)

		h := f.visual(mgl64.Vec3{1, 0, 0}, scene.KindCube)
		id := f.registry.AddTarget(h, mgl64.Vec3{}, scene.Forever)
		require.True(t, selection.Set(id))
		return f, tracker, h
	}

	t.Run("settles at the carry point", func(t *testing.T) {
		f, tracker, h := setup(t, true)

		for range 600 {
			f.scheduler.Once()
		}

		observer, _ := tracker.ObserverPose()
		anchor := observer.Ahead(0.3)
		assert.InDelta(t, 0, f.position(t, h).Sub(anchor).Len(), 1e-3)

		pose, _ := f.renderer.Pose(h)
		assert.True(t, pose.Orientation.OrientationEqualThreshold(observer.Orientation, 1e-9))

		rec, _ := f.registry.Lookup(h)
		assert.Equal(t, 0.9, rec.Damping)
	})

	t.Run("idle when not carrying", func(t *testing.T) {
		f, _, h := setup(t, false)

		for range 10 {
			f.scheduler.Once()
		}
		assert.Equal(t, mgl64.Vec3{1, 0, 0}, f.position(t, h))
	})

	t.Run("idle without a pose", func(t *testing.T) {
		f, tracker, h := setup(t, true)
		tracker.Lose()

		for range 10 {
			f.scheduler.Once()
		}
		assert.Equal(t, mgl64.Vec3{1, 0, 0}, f.position(t, h))
	})
}

func TestDragFollowRestoresDamping(t *testing.T) {
	f := newFixture(60)
	tracker := sandbox.NewTrackerAt(geom.At(mgl64.Vec3{0, 1, 0}))
	selection := scene.NewSelection(f.registry)
	drag := systems.NewDragFollowSystem(config.Default().Drag, 0.3, tracker, f.renderer, selection)
	drag.Carrying = true
	f.scheduler.Register(drag)

	target := f.registry.AddTarget(f.visual(mgl64.Vec3{1, 0, 0}, scene.KindJet), mgl64.Vec3{0, 0, 0.2}, scene.Forever)
	other := f.registry.AddTarget(f.visual(mgl64.Vec3{-1, 0, 0}, scene.KindCube), mgl64.Vec3{}, scene.Forever)
	damping := func(id scene.RecordID) float64 {
		rec, ok := f.registry.Get(id)
		require.True(t, ok)
		return rec.Damping
	}

	require.True(t, selection.Set(target))
	f.scheduler.Once()
	assert.Equal(t, 0.9, damping(target))

	t.Run("carry toggled off", func(t *testing.T) {
		drag.Carrying = false
		f.scheduler.Once()
		assert.Equal(t, 0.0, damping(target))
	})

	t.Run("selection moves to another record", func(t *testing.T) {
		drag.Carrying = true
		f.scheduler.Once()
		require.Equal(t, 0.9, damping(target))

		require.True(t, selection.Set(other))
		f.scheduler.Once()
		assert.Equal(t, 0.0, damping(target))
		assert.Equal(t, 0.9, damping(other))
	})

	t.Run("deselect", func(t *testing.T) {
		selection.Clear()
		f.scheduler.Once()
		assert.Equal(t, 0.0, damping(other))
	})

	t.Run("already damped record keeps its value", func(t *testing.T) {
		rec, _ := f.registry.Get(target)
		rec.Damping = 0.5
		require.True(t, selection.Set(target))
		f.scheduler.Once()
		assert.Equal(t, 0.5, damping(target))

		selection.Clear()
		f.scheduler.Once()
		assert.Equal(t, 0.5, damping(target))
	})
}
