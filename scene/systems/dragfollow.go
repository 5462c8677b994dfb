package systems

import (
	"github.com/plus3/arscene/config"
	"github.com/plus3/arscene/scene"
)

// DragFollowSystem pulls the selected entity toward a point CarryDistance
// in front of the observer and keeps it oriented with the observer. The
// pull is an impulse of (anchor - position)/ApproachSeconds per tick, and
// the record is given Decay as damping so the motion settles. Its own
// damping is restored once it is no longer carried.
type DragFollowSystem struct {
	Tracker   scene.Tracker
	Renderer  scene.Renderer
	Selection *scene.Selection

	CarryDistance float64
	Config        config.Drag

	// Carrying gates the system; the session toggles it.
	Carrying bool

	carried      scene.RecordID
	priorDamping float64
}

func NewDragFollowSystem(cfg config.Drag, carryDistance float64, tracker scene.Tracker, renderer scene.Renderer, selection *scene.Selection) *DragFollowSystem {
	return &DragFollowSystem{
		Tracker:       tracker,
		Renderer:      renderer,
		Selection:     selection,
		CarryDistance: carryDistance,
		Config:        cfg,
		Carrying:      cfg.Enabled,
	}
}

func (s *DragFollowSystem) Execute(frame *scene.UpdateFrame) {
	var rec *scene.Record
	if s.Carrying {
		rec, _ = s.Selection.Record()
	}
	if rec == nil || rec.ID != s.carried {
		s.release(frame.Registry)
	}
	if rec == nil {
		return
	}

	observer, ok := s.Tracker.ObserverPose()
	if !ok {
		return
	}
	pose, ok := s.Renderer.Pose(rec.Handle)
	if !ok {
		return
	}

	if s.carried != rec.ID {
		s.carried = rec.ID
		s.priorDamping = rec.Damping
		if !rec.Damped() {
			rec.Damping = s.Config.Decay
		}
	}

	anchor := observer.Ahead(s.CarryDistance)
	impulse := anchor.Sub(pose.Position).Mul(1 / s.Config.ApproachSeconds)
	frame.Registry.ApplyVelocityOrCreate(rec.Handle, impulse)

	pose.Orientation = observer.Orientation
	s.Renderer.SetPose(rec.Handle, pose)
}

// release hands the previously carried record its own damping back.
func (s *DragFollowSystem) release(registry *scene.Registry) {
	if s.carried == 0 {
		return
	}
	if rec, ok := registry.Get(s.carried); ok {
		rec.Damping = s.priorDamping
	}
	s.carried = 0
	s.priorDamping = 0
}
