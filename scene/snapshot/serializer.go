package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/plus3/arscene/scene"
	"go.uber.org/zap"
)

// DefaultKey is the store key used when none is configured.
const DefaultKey = "sceneObjects"

// Recorder extracts the persisted form of a live visual. It is implemented
// by whatever owns the visuals.
type Recorder interface {
	Record(h scene.Handle) (Record, error)
}

// Factory recreates a live entity from a record.
type Factory func(rec Record) (scene.Handle, error)

// Skip describes an entity or entry left out of a save or load.
type Skip struct {
	Index  int
	Handle scene.Handle
	Err    error
}

// SaveReport summarizes a Save.
type SaveReport struct {
	Snapshot string
	Saved    int
	Skipped  []Skip
}

// LoadReport summarizes a Load. Corrupt is set when the envelope itself
// could not be read; the load then restores nothing but does not fail.
type LoadReport struct {
	Snapshot string
	Restored int
	Skipped  []Skip
	Corrupt  error
}

// Serializer writes and reads the scene as one unit under a single key.
type Serializer struct {
	store Store
	key   string
	log   *zap.Logger
	now   func() time.Time
}

// NewSerializer creates a serializer over store. An empty key selects
// DefaultKey; a nil logger disables logging.
func NewSerializer(store Store, key string, logger *zap.Logger) *Serializer {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Serializer{store: store, key: key, log: logger, now: time.Now}
}

// Key is the store key snapshots are written under.
func (s *Serializer) Key() string {
	return s.key
}

// Save records every handle and writes them in one store write. Handles
// the recorder cannot capture are skipped.
func (s *Serializer) Save(ctx context.Context, recorder Recorder, handles []scene.Handle) (SaveReport, error) {
	var report SaveReport
	records := make([]Record, 0, len(handles))

	for i, h := range handles {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		rec, err := recorder.Record(h)
		if err == nil {
			err = rec.Validate()
		}
		if err != nil {
			s.log.Warn("skipping entity in snapshot", zap.Uint64("handle", uint64(h)), zap.Error(err))
			report.Skipped = append(report.Skipped, Skip{Index: i, Handle: h, Err: err})
			continue
		}
		records = append(records, rec)
	}

	env, data, err := Encode(records, s.now())
	if err != nil {
		return report, err
	}
	if err := s.store.Save(s.key, data); err != nil {
		return report, fmt.Errorf("snapshot: save %s: %w", s.key, err)
	}

	report.Snapshot = env.ID
	report.Saved = len(records)
	s.log.Info("scene saved",
		zap.String("key", s.key),
		zap.String("snapshot", env.ID),
		zap.Int("records", report.Saved),
		zap.Int("skipped", len(report.Skipped)))
	return report, nil
}

// Load reads the snapshot and hands every valid record to factory. A
// missing snapshot restores nothing. Damaged entries and factory failures
// skip that record only. The error is non-nil only when the store itself
// fails or ctx is cancelled.
func (s *Serializer) Load(ctx context.Context, factory Factory) (LoadReport, error) {
	var report LoadReport

	data, err := s.store.Load(s.key)
	if errors.Is(err, ErrNotFound) {
		s.log.Debug("no scene snapshot", zap.String("key", s.key))
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("snapshot: load %s: %w", s.key, err)
	}

	env, err := Decode(data)
	if err != nil {
		s.log.Error("scene snapshot unreadable", zap.String("key", s.key), zap.Error(err))
		report.Corrupt = err
		return report, nil
	}
	report.Snapshot = env.ID

	for i, entry := range env.Entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		rec, err := entry.Record()
		if err != nil {
			s.log.Warn("skipping snapshot entry", zap.Int("index", i), zap.Error(err))
			report.Skipped = append(report.Skipped, Skip{Index: i, Err: err})
			continue
		}

		h, err := factory(rec)
		if err != nil {
			s.log.Warn("could not restore snapshot entry", zap.Int("index", i), zap.Error(err))
			report.Skipped = append(report.Skipped, Skip{Index: i, Err: err})
			continue
		}
		report.Restored++
		s.log.Debug("restored entity", zap.Int("index", i), zap.Uint64("handle", uint64(h)))
	}

	s.log.Info("scene restored",
		zap.String("key", s.key),
		zap.String("snapshot", env.ID),
		zap.Int("records", report.Restored),
		zap.Int("skipped", len(report.Skipped)))
	return report, nil
}
