package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	targetCount := flag.Int("targets", 2000, "The initial number of targets to place.")
	fireEvery := flag.Int("fire-every", 2, "Fire a projectile every N ticks.")
	turnRate := flag.Float64("turn-rate", 0.5, "Observer yaw speed in radians per second.")
	configPath := flag.String("config", "", "Optional YAML config file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting scene stress test...")

	rig, err := initializeRig(*configPath)
	if err != nil {
		log.Fatalf("Failed to set up session: %v", err)
	}
	defer rig.Logger.Sync()

	log.Printf("Placing %d targets...\n", *targetCount)
	rng := rand.New(rand.NewPCG(1, 2))
	registry := rig.Session.Registry()
	for range *targetCount {
		angle := rng.Float64() * 2 * math.Pi
		dist := 1 + rng.Float64()*4
		pos := mgl64.Vec3{math.Cos(angle) * dist, rng.Float64() - 0.5, math.Sin(angle) * dist}

		pose := geom.At(pos)
		pose.Orientation = geom.Facing(pos)
		pose.Scale = rig.Config.Spawn.Scale
		h := rig.Renderer.CreateVisual(pose, rig.Config.Spawn.Material)
		registry.AddTarget(h, pose.Forward().Mul(rig.Config.Spawn.Speed), scene.Forever)
	}
	log.Println("Placement complete.")

	report := &Report{
		Duration:       *duration,
		Targets:        *targetCount,
		FireEvery:      *fireEvery,
		TickRate:       rig.Config.Tick.Rate,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	dt := 1 / rig.Config.Tick.Rate
	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			rig.Tracker.Walk(mgl64.Vec3{}, *turnRate*dt)
			if *fireEvery > 0 && totalUpdates%int64(*fireEvery) == 0 {
				if _, err := rig.Session.Fire(); err == nil {
					report.Fired++
				}
			}

			updateStart := time.Now()
			if err := rig.Session.Step(); err != nil {
				log.Fatalf("Step failed: %v", err)
			}
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Session = rig.Session.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
