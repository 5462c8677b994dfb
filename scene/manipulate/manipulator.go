package manipulate

import (
	"fmt"
	"math"

	"github.com/plus3/arscene/config"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/scene"
	"go.uber.org/zap"
)

// Manipulator turns actions into pose changes on the selected entity. It
// must run on the goroutine that owns the registry.
type Manipulator struct {
	registry  *scene.Registry
	selection *scene.Selection
	tracker   scene.Tracker
	renderer  scene.Renderer

	cfg           config.Manipulation
	carryDistance float64
	log           *zap.Logger
}

func New(registry *scene.Registry, selection *scene.Selection, tracker scene.Tracker, renderer scene.Renderer, cfg config.Manipulation, carryDistance float64, logger *zap.Logger) *Manipulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manipulator{
		registry:      registry,
		selection:     selection,
		tracker:       tracker,
		renderer:      renderer,
		cfg:           cfg,
		carryDistance: carryDistance,
		log:           logger,
	}
}

// RotateStep is the angle of one rotation action in radians.
func (m *Manipulator) RotateStep() float64 {
	return 2 * math.Pi / float64(m.cfg.RotateSteps)
}

// Apply performs action in the direction of sign (negative means the
// reverse edit, anything else forward). It returns the affected record:
// the new one for AddObject, the removed one for DeleteObject.
//
// Apply panics on an action outside the known set.
func (m *Manipulator) Apply(action Action, sign int) (scene.RecordID, error) {
	if !action.Valid() {
		panic(fmt.Sprintf("manipulate: unknown action %d", int(action)))
	}

	if action == AddObject {
		return m.addObject()
	}

	rec, ok := m.selection.Record()
	if !ok {
		m.log.Debug("action without selection", zap.Stringer("action", action))
		return 0, scene.ErrNoSelection
	}

	if action == DeleteObject {
		m.registry.Remove(rec.ID)
		m.selection.Clear()
		m.log.Debug("object deleted", zap.Uint64("record", uint64(rec.ID)))
		return rec.ID, nil
	}

	pose, ok := m.renderer.Pose(rec.Handle)
	if !ok {
		return rec.ID, fmt.Errorf("manipulate: %s: visual %d: %w", action, rec.Handle, scene.ErrNotRegistered)
	}

	dir := 1.0
	if sign < 0 {
		dir = -1
	}

	switch action {
	case RotateX:
		pose = pose.RotateLocal(geom.UnitX, dir*m.RotateStep())
	case RotateY:
		pose = pose.RotateLocal(geom.UnitY, dir*m.RotateStep())
	case RotateZ:
		pose = pose.RotateLocal(geom.UnitZ, dir*m.RotateStep())
	case Scale:
		if dir > 0 {
			pose.Scale *= m.cfg.ScaleFactor
		} else {
			pose.Scale /= m.cfg.ScaleFactor
		}
	case TranslateX:
		pose = pose.TranslateLocal(geom.UnitX.Mul(dir * m.cfg.TranslateStep))
	case TranslateY:
		pose = pose.TranslateLocal(geom.UnitY.Mul(dir * m.cfg.TranslateStep))
	case TranslateZ:
		pose = pose.TranslateLocal(geom.UnitZ.Mul(dir * m.cfg.TranslateStep))
	}

	m.renderer.SetPose(rec.Handle, pose)
	return rec.ID, nil
}

// addObject places a new object CarryDistance in front of the observer,
// oriented with it, and selects it.
func (m *Manipulator) addObject() (scene.RecordID, error) {
	observer, ok := m.tracker.ObserverPose()
	if !ok {
		return 0, scene.ErrNoObserverPose
	}

	pose := observer
	pose.Position = observer.Ahead(m.carryDistance)
	pose.Scale = m.cfg.ObjectScale

	h := m.renderer.CreateVisual(pose, m.cfg.ObjectMaterial)
	id := m.registry.ApplyVelocityOrCreate(h, m.cfg.InitialVelocity)
	m.selection.Set(id)

	m.log.Debug("object added",
		zap.Uint64("record", uint64(id)),
		zap.Uint64("handle", uint64(h)))
	return id, nil
}
