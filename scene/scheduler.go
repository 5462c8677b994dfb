package scene

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// DefaultTickRate is the tick frequency in Hz.
const DefaultTickRate = 60.0

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems in order at a fixed tick rate. Work posted from
// other goroutines runs on the tick goroutine before the next frame's
// systems, which keeps the registry single-mutator.
type Scheduler struct {
	registry    *Registry
	tickRate    float64
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands
	tick        uint64

	mu    sync.Mutex
	inbox []func()
}

// NewScheduler creates a new scheduler for the given registry. A
// non-positive tickRate selects DefaultTickRate.
func NewScheduler(registry *Registry, tickRate float64) *Scheduler {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Scheduler{
		registry: registry,
		tickRate: tickRate,
		systems:  make([]System, 0),
		commands: newCommands(),
	}
}

// TickRate returns the fixed tick frequency in Hz.
func (s *Scheduler) TickRate() float64 {
	return s.tickRate
}

// Interval is the wall-clock period of one tick.
func (s *Scheduler) Interval() time.Duration {
	return time.Duration(float64(time.Second) / s.tickRate)
}

// Ticks is the number of completed ticks.
func (s *Scheduler) Ticks() uint64 {
	return s.tick
}

// Register adds a system to the end of the pipeline.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Post queues fn to run on the tick goroutine at the start of the next
// tick. It is safe to call from any goroutine.
func (s *Scheduler) Post(fn func()) {
	s.mu.Lock()
	s.inbox = append(s.inbox, fn)
	s.mu.Unlock()
}

// Drain runs every posted function now, in posting order. Once calls it
// before running systems; callers use it after the loop has stopped.
func (s *Scheduler) Drain() {
	s.mu.Lock()
	pending := s.inbox
	s.inbox = nil
	s.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Once executes one tick: posted work, then every system, then the
// frame's deferred commands.
func (s *Scheduler) Once() {
	s.Drain()

	s.tick++
	frame := newUpdateFrame(s.tick, s.tickRate, s.registry, s.commands)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush(s.registry)
}

// Run executes ticks at the scheduler's interval until the context is
// cancelled. A tick in progress always completes.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once()
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
