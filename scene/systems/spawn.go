package systems

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/config"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/scene"
	"go.uber.org/zap"
)

// SpawnSystem periodically places a target near the observer, facing it
// and flying toward it. The countdown holds at zero while tracking has no
// pose, so the first tick with a pose spawns.
type SpawnSystem struct {
	Tracker  scene.Tracker
	Renderer scene.Renderer
	Config   config.Spawn

	// Countdown is the number of ticks left before the next spawn.
	Countdown int
	Spawned   uint64

	rng *rand.Rand
	log *zap.Logger
}

// NewSpawnSystem starts the countdown at cfg.InitialDelayFrames. A nil rng
// is seeded from cfg.Seed, or randomly when that is zero.
func NewSpawnSystem(cfg config.Spawn, tracker scene.Tracker, renderer scene.Renderer, rng *rand.Rand, logger *zap.Logger) *SpawnSystem {
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpawnSystem{
		Tracker:   tracker,
		Renderer:  renderer,
		Config:    cfg,
		Countdown: cfg.InitialDelayFrames,
		rng:       rng,
		log:       logger,
	}
}

func (s *SpawnSystem) Execute(frame *scene.UpdateFrame) {
	if !s.Config.Enabled {
		return
	}
	if s.Countdown > 0 {
		s.Countdown--
	}
	if s.Countdown > 0 {
		return
	}

	observer, ok := s.Tracker.ObserverPose()
	if !ok {
		return
	}

	id := s.spawn(frame.Registry, observer)
	s.Countdown = s.Config.IntervalFrames
	s.Spawned++

	s.log.Debug("target spawned",
		zap.Uint64("record", uint64(id)),
		zap.Uint64("tick", frame.Tick))
}

func (s *SpawnSystem) spawn(registry *scene.Registry, observer geom.Pose) scene.RecordID {
	offset := mgl64.Vec3{s.jitter(), 0, s.jitter()}

	pose := geom.Pose{
		Position:    observer.Position.Add(offset),
		Orientation: geom.Facing(offset),
		Scale:       s.Config.Scale,
	}
	h := s.Renderer.CreateVisual(pose, s.Config.Material)

	// local -Z points back at the observer
	id := registry.AddTarget(h, pose.Forward().Mul(s.Config.Speed), scene.Forever)
	if rec, ok := registry.Get(id); ok && s.Config.Radius > 0 {
		rec.Radius = s.Config.Radius
	}
	return id
}

func (s *SpawnSystem) jitter() float64 {
	return (s.rng.Float64()*2 - 1) * s.Config.Range
}
