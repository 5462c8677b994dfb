package systems

import (
	"github.com/plus3/arscene/scene"
	"go.uber.org/zap"
)

// IntegratorSystem advances every record by velocity/tickRate, applies
// damping, counts down mortal TTLs and removes expired records. Records
// whose visual has disappeared from the renderer are removed as well.
type IntegratorSystem struct {
	Renderer scene.Renderer
	// MotionEpsilon is the speed below which a record is not moved.
	MotionEpsilon float64

	// Expired is the number of records removed in the last tick.
	Expired int

	log     *zap.Logger
	expired []scene.RecordID
}

func NewIntegratorSystem(renderer scene.Renderer, motionEpsilon float64, logger *zap.Logger) *IntegratorSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntegratorSystem{Renderer: renderer, MotionEpsilon: motionEpsilon, log: logger}
}

func (s *IntegratorSystem) Execute(frame *scene.UpdateFrame) {
	s.expired = s.expired[:0]

	for rec := range frame.Registry.All() {
		pose, ok := s.Renderer.Pose(rec.Handle)
		if !ok {
			s.log.Debug("visual vanished", zap.Uint64("record", uint64(rec.ID)))
			rec.TTL = 0
		} else if rec.Speed() > s.MotionEpsilon {
			pose.Position = pose.Position.Add(rec.Velocity.Mul(frame.DeltaTime))
			s.Renderer.SetPose(rec.Handle, pose)
			if rec.Damped() {
				rec.Velocity = rec.Velocity.Mul(rec.Damping)
			}
		}

		if rec.Mortal() {
			rec.TTL -= frame.DeltaTime
		}
		if rec.Expired() {
			s.expired = append(s.expired, rec.ID)
		}
	}

	for _, id := range s.expired {
		frame.Registry.Remove(id)
	}
	s.Expired = len(s.expired)
}
