package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/plus3/arscene/config"
	"github.com/plus3/arscene/logging"
	"github.com/plus3/arscene/sandbox"
	"github.com/plus3/arscene/session"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	logPath := flag.String("log", "arscene-tui.log", "Log file; the terminal is taken by the UI.")
	fps := flag.Int("fps", 30, "Redraw rate.")
	mute := flag.Bool("mute", false, "Disable sounds.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	cfg.Log.Output = []string{*logPath}
	if cfg.Snapshot.Dir == "" {
		cfg.Snapshot.Dir = "."
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	sounds := &Sounds{}
	if !*mute {
		if sounds, err = NewSounds(); err != nil {
			// Non-fatal, the viewer works without sound
			logger.Warn("audio unavailable", zap.Error(err))
		}
	}
	defer sounds.Close()

	renderer := sandbox.NewRenderer(nil)
	tracker := sandbox.NewTrackerAt(startPose())
	s, err := session.New(session.Options{
		Config:   cfg,
		Tracker:  tracker,
		Renderer: renderer,
		Logger:   logger,
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := s.Appear(ctx); err != nil {
		logger.Error("restore failed", zap.Error(err))
	}

	app, err := NewApp(s, renderer, tracker, sounds, logger)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	app.Run(*fps)
	s.Stop()
	app.Close()

	report, err := s.Disappear(ctx)
	if err != nil {
		logger.Error("save failed", zap.Error(err))
		return
	}
	fmt.Printf("saved %d objects to snapshot %s\n", report.Saved, report.Snapshot)
}
