package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/arscene/config"
	debugui_ebiten "github.com/plus3/arscene/debugui/ebiten"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/logging"
	"github.com/plus3/arscene/sandbox"
	"github.com/plus3/arscene/session"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	restore := flag.Bool("restore", true, "Restore the saved scene on start.")
	save := flag.Bool("save", true, "Save the scene on exit.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if cfg.Snapshot.Dir == "" {
		cfg.Snapshot.Dir = "."
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	backend := debugui_ebiten.NewImguiBackend("arscene viewer", 1280, 720)
	ebiten.SetTPS(int(cfg.Tick.Rate))

	renderer := sandbox.NewRenderer(nil)
	tracker := sandbox.NewTrackerAt(geom.At(mgl64.Vec3{0, 1.5, 0}))

	s, err := session.New(session.Options{
		Config:   cfg,
		Tracker:  tracker,
		Renderer: renderer,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("session", zap.Error(err))
	}

	ctx := context.Background()
	if *restore {
		report, err := s.Appear(ctx)
		if err != nil {
			logger.Error("restore failed", zap.Error(err))
		} else {
			fmt.Printf("restored %d objects (%d skipped)\n", report.Restored, len(report.Skipped))
		}
	}

	if err := ebiten.RunGame(NewGame(s, renderer, tracker, backend, logger)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("viewer", zap.Error(err))
	}

	if *save {
		report, err := s.Disappear(ctx)
		if err != nil {
			logger.Error("save failed", zap.Error(err))
			return
		}
		fmt.Printf("saved %d objects to snapshot %s\n", report.Saved, report.Snapshot)
	}
}
