// Package session composes the scene core into one explicit context
// object: registry, scheduler, tick systems, manipulator and serializer,
// wired to the host's tracker, renderer and snapshot store.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/plus3/arscene/config"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/scene"
	"github.com/plus3/arscene/scene/manipulate"
	"github.com/plus3/arscene/scene/snapshot"
	"github.com/plus3/arscene/scene/systems"
	"go.uber.org/zap"
)

var (
	// ErrRunning is returned by Step while the tick loop owns the session.
	ErrRunning = errors.New("session: tick loop is running")
	// ErrNoRecorder is returned by Disappear when nothing can record visuals.
	ErrNoRecorder = errors.New("session: no snapshot recorder")
	// ErrUnsupported is returned when the renderer lacks an optional capability.
	ErrUnsupported = errors.New("session: renderer does not support this")
)

// Options are the collaborators of a session. Tracker and Renderer are
// required; the rest have defaults.
type Options struct {
	Config   config.Config
	Tracker  scene.Tracker
	Renderer scene.Renderer

	// HitTester resolves taps. Defaults to Renderer when it implements
	// scene.HitTester.
	HitTester scene.HitTester
	// Recorder extracts snapshot records. Defaults to Renderer when it
	// implements snapshot.Recorder.
	Recorder snapshot.Recorder
	// Store holds snapshots. Defaults to a FileStore under
	// Config.Snapshot.Dir, or a MemoryStore when that is empty.
	Store  snapshot.Store
	Logger *zap.Logger
	Rand   *rand.Rand
}

// Stats is a point-in-time view of a session.
type Stats struct {
	Registry   scene.RegistryStats
	Scheduler  *scene.SchedulerStats
	Collisions uint64
	Spawned    uint64
	Running    bool
}

// Session owns the scene state. Public methods are safe to call from any
// goroutine while the loop started by Start is running; they are queued
// onto the tick goroutine and wait for it. Without a running loop they run
// inline, and the caller is the single mutator.
type Session struct {
	cfg       config.Config
	log       *zap.Logger
	tracker   scene.Tracker
	renderer  scene.Renderer
	hits      scene.HitTester
	recorder  snapshot.Recorder
	materials scene.MaterialSetter

	registry    *scene.Registry
	scheduler   *scene.Scheduler
	selection   *scene.Selection
	manipulator *manipulate.Manipulator
	serializer  *snapshot.Serializer

	collision  *systems.CollisionSystem
	integrator *systems.IntegratorSystem
	spawner    *systems.SpawnSystem
	drag       *systems.DragFollowSystem

	mu      sync.RWMutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New builds a session and registers the tick systems in order:
// collision, integration, spawning, drag-follow.
func New(opts Options) (*Session, error) {
	if opts.Tracker == nil || opts.Renderer == nil {
		return nil, errors.New("session: tracker and renderer are required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config

	s := &Session{
		cfg:      cfg,
		log:      logger,
		tracker:  opts.Tracker,
		renderer: opts.Renderer,
		hits:     opts.HitTester,
		recorder: opts.Recorder,
	}
	if s.hits == nil {
		s.hits, _ = opts.Renderer.(scene.HitTester)
	}
	if s.recorder == nil {
		s.recorder, _ = opts.Renderer.(snapshot.Recorder)
	}
	s.materials, _ = opts.Renderer.(scene.MaterialSetter)

	store := opts.Store
	if store == nil {
		if cfg.Snapshot.Dir != "" {
			store = snapshot.NewFileStore(cfg.Snapshot.Dir)
		} else {
			store = snapshot.NewMemoryStore()
		}
	}

	s.registry = scene.NewRegistry(opts.Renderer, logger.Named("registry"))
	s.scheduler = scene.NewScheduler(s.registry, cfg.Tick.Rate)
	s.selection = scene.NewSelection(s.registry)
	s.manipulator = manipulate.New(s.registry, s.selection, opts.Tracker, opts.Renderer,
		cfg.Manipulation, cfg.CarryDistance, logger.Named("manipulate"))
	s.serializer = snapshot.NewSerializer(store, cfg.Snapshot.Key, logger.Named("snapshot"))

	s.collision = systems.NewCollisionSystem(opts.Renderer, logger.Named("collision"))
	s.integrator = systems.NewIntegratorSystem(opts.Renderer, cfg.Motion.Epsilon, logger.Named("integrator"))
	s.spawner = systems.NewSpawnSystem(cfg.Spawn, opts.Tracker, opts.Renderer, opts.Rand, logger.Named("spawn"))
	s.drag = systems.NewDragFollowSystem(cfg.Drag, cfg.CarryDistance, opts.Tracker, opts.Renderer, s.selection)

	s.scheduler.Register(s.collision)
	s.scheduler.Register(s.integrator)
	s.scheduler.Register(s.spawner)
	s.scheduler.Register(s.drag)

	return s, nil
}

// Register appends an extra system after the built-in ones. Call it before
// Start. Systems run on the tick goroutine and must not call Session
// methods; they reach the state through the frame and the accessors below.
func (s *Session) Register(system scene.System) {
	s.scheduler.Register(system)
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Registry, Scheduler, SelectionState and Manipulator expose the internals
// to systems registered on the session. They must only be used from the
// tick goroutine or while the loop is stopped.
func (s *Session) Registry() *scene.Registry            { return s.registry }
func (s *Session) Scheduler() *scene.Scheduler          { return s.scheduler }
func (s *Session) SelectionState() *scene.Selection     { return s.selection }
func (s *Session) Manipulator() *manipulate.Manipulator { return s.manipulator }

// do runs fn as the single mutator: on the tick goroutine when the loop is
// running, inline otherwise.
func (s *Session) do(fn func()) {
	s.mu.RLock()
	if !s.running {
		s.mu.RUnlock()
		fn()
		return
	}

	done := make(chan struct{})
	s.scheduler.Post(func() {
		defer close(done)
		fn()
	})
	s.mu.RUnlock()
	<-done
}

// Start runs the tick loop on its own goroutine. Starting a running
// session does nothing.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go func(done chan struct{}) {
		defer close(done)
		s.scheduler.Run(ctx)
	}(s.done)

	s.log.Info("session started", zap.Float64("tick_rate", s.scheduler.TickRate()))
}

// Stop halts the tick loop, waits for the tick in progress and runs any
// queued work. It is idempotent.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	s.cancel()
	<-s.done
	s.running = false
	s.scheduler.Drain()

	s.log.Info("session stopped", zap.Uint64("ticks", s.scheduler.Ticks()))
}

// Running reports whether the tick loop is active.
func (s *Session) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Step runs exactly one tick, for hosts that drive time themselves.
func (s *Session) Step() error {
	if s.Running() {
		return ErrRunning
	}
	s.scheduler.Once()
	return nil
}

// Dispatch applies a manipulation action to the selection.
func (s *Session) Dispatch(action manipulate.Action, sign int) (id scene.RecordID, err error) {
	s.do(func() {
		id, err = s.manipulator.Apply(action, sign)
	})
	return id, err
}

// Select makes the entity behind h the selection.
func (s *Session) Select(h scene.Handle) error {
	var ok bool
	s.do(func() {
		ok = s.selection.SetHandle(h)
	})
	if !ok {
		return fmt.Errorf("session: select %d: %w", h, scene.ErrNotRegistered)
	}
	return nil
}

// Deselect clears the selection.
func (s *Session) Deselect() {
	s.do(s.selection.Clear)
}

// Selection returns a copy of the selected record.
func (s *Session) Selection() (rec scene.Record, ok bool) {
	s.do(func() {
		var selected *scene.Record
		if selected, ok = s.selection.Record(); ok {
			rec = *selected
		}
	})
	return rec, ok
}

// Tap selects the registered entity under p. A miss follows the
// configured tap-miss policy and returns the record it created, if any.
func (s *Session) Tap(p geom.ScreenPoint) (id scene.RecordID, err error) {
	s.do(func() {
		if s.hits != nil {
			if h, hit := s.hits.HitTest(p); hit {
				if rec, ok := s.registry.Lookup(h); ok {
					s.selection.Set(rec.ID)
					id = rec.ID
					return
				}
			}
		}

		switch s.cfg.Input.TapMiss {
		case config.TapMissFire:
			id, err = s.fire()
		case config.TapMissAdd:
			id, err = s.manipulator.Apply(manipulate.AddObject, 1)
		}
	})
	return id, err
}

// Fire launches a projectile from the observer along its forward axis.
func (s *Session) Fire() (id scene.RecordID, err error) {
	s.do(func() {
		id, err = s.fire()
	})
	return id, err
}

func (s *Session) fire() (scene.RecordID, error) {
	observer, ok := s.tracker.ObserverPose()
	if !ok {
		return 0, scene.ErrNoObserverPose
	}

	cfg := s.cfg.Projectile
	pose := observer
	pose.Scale = cfg.Scale
	h := s.renderer.CreateVisual(pose, cfg.Material)

	id := s.registry.AddProjectile(h, observer.Forward().Mul(cfg.Speed), cfg.TTL)
	if rec, ok := s.registry.Get(id); ok && cfg.Radius > 0 {
		rec.Radius = cfg.Radius
	}
	s.log.Debug("projectile fired", zap.Uint64("record", uint64(id)))
	return id, nil
}

// SetCarrying turns drag-follow of the selection on or off.
func (s *Session) SetCarrying(carrying bool) {
	s.do(func() {
		s.drag.Carrying = carrying
	})
}

// Carrying reports whether drag-follow is on.
func (s *Session) Carrying() (carrying bool) {
	s.do(func() {
		carrying = s.drag.Carrying
	})
	return carrying
}

// SetMaterial retextures the selection. New objects keep using the
// configured material.
func (s *Session) SetMaterial(material scene.Material) (err error) {
	if s.materials == nil {
		return ErrUnsupported
	}
	s.do(func() {
		rec, ok := s.selection.Record()
		if !ok {
			err = scene.ErrNoSelection
			return
		}
		if !s.materials.SetMaterial(rec.Handle, material) {
			err = fmt.Errorf("session: material for %d: %w", rec.Handle, scene.ErrNotRegistered)
		}
	})
	return err
}

// CurrentDescription is a human-readable summary of the selection and its
// transform, for polling UIs.
func (s *Session) CurrentDescription() (desc string) {
	s.do(func() {
		rec, ok := s.selection.Record()
		if !ok {
			desc = "nothing selected"
			return
		}
		pose, _ := s.renderer.Pose(rec.Handle)
		desc = describe(rec, pose)
	})
	return desc
}

// Appear restores the saved scene. Restored entities are stationary
// targets.
func (s *Session) Appear(ctx context.Context) (report snapshot.LoadReport, err error) {
	s.do(func() {
		report, err = s.serializer.Load(ctx, s.restore)
	})
	return report, err
}

func (s *Session) restore(rec snapshot.Record) (scene.Handle, error) {
	pose, err := rec.Transform()
	if err != nil {
		return scene.NullHandle, err
	}
	h := s.renderer.CreateVisual(pose, rec.Material)
	s.registry.AddTarget(h, s.cfg.Manipulation.InitialVelocity, scene.Forever)
	return h, nil
}

// Disappear saves every target. Projectiles are transient and are not
// saved.
func (s *Session) Disappear(ctx context.Context) (report snapshot.SaveReport, err error) {
	if s.recorder == nil {
		return report, ErrNoRecorder
	}
	s.do(func() {
		var handles []scene.Handle
		for rec := range s.registry.Targets() {
			handles = append(handles, rec.Handle)
		}
		report, err = s.serializer.Save(ctx, s.recorder, handles)
	})
	return report, err
}

// Stats returns counters for the registry, scheduler and systems.
func (s *Session) Stats() (stats Stats) {
	running := s.Running()
	s.do(func() {
		stats = Stats{
			Registry:   s.registry.Stats(),
			Scheduler:  s.scheduler.GetStats(),
			Collisions: s.collision.Total,
			Spawned:    s.spawner.Spawned,
			Running:    running,
		}
	})
	return stats
}
