package main

import (
	"github.com/google/wire"
	"github.com/plus3/arscene/config"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/logging"
	"github.com/plus3/arscene/sandbox"
	"github.com/plus3/arscene/session"
	"go.uber.org/zap"
)

// rig is everything the stress run drives.
type rig struct {
	Config   config.Config
	Logger   *zap.Logger
	Tracker  *sandbox.Tracker
	Renderer *sandbox.Renderer
	Session  *session.Session
}

var rigSet = wire.NewSet(
	provideConfig,
	provideLogger,
	provideTracker,
	provideRenderer,
	provideSession,
	wire.Struct(new(rig), "*"),
)

func provideConfig(path string) (config.Config, error) {
	if path == "" {
		cfg := config.Default()
		cfg.Log.Level = "warn"
		return cfg, nil
	}
	return config.Load(path)
}

func provideLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log)
}

func provideTracker() *sandbox.Tracker {
	return sandbox.NewTrackerAt(geom.Identity())
}

func provideRenderer() *sandbox.Renderer {
	return sandbox.NewRenderer(nil)
}

func provideSession(cfg config.Config, logger *zap.Logger, tracker *sandbox.Tracker, renderer *sandbox.Renderer) (*session.Session, error) {
	return session.New(session.Options{
		Config:   cfg,
		Tracker:  tracker,
		Renderer: renderer,
		Logger:   logger,
	})
}
