package manipulate_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/config"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/sandbox"
	"github.com/plus3/arscene/scene"
	"github.com/plus3/arscene/scene/manipulate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	renderer    *sandbox.Renderer
	tracker     *sandbox.Tracker
	registry    *scene.Registry
	selection   *scene.Selection
	manipulator *manipulate.Manipulator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		renderer: sandbox.NewRenderer(nil),
		tracker:  sandbox.NewTrackerAt(geom.At(mgl64.Vec3{0, 1.5, 0})),
	}
	f.registry = scene.NewRegistry(f.renderer, nil)
	f.selection = scene.NewSelection(f.registry)
	f.manipulator = manipulate.New(f.registry, f.selection, f.tracker, f.renderer, config.Default().Manipulation, 0.3, nil)
	return f
}

func (f *fixture) add(t *testing.T) (scene.RecordID, scene.Handle) {
	t.Helper()
	id, err := f.manipulator.Apply(manipulate.AddObject, 1)
	require.NoError(t, err)
	rec, ok := f.registry.Get(id)
	require.True(t, ok)
	return id, rec.Handle
}

func (f *fixture) pose(t *testing.T, h scene.Handle) geom.Pose {
	t.Helper()
	pose, ok := f.renderer.Pose(h)
	require.True(t, ok)
	return pose
}

func TestAddObject(t *testing.T) {
	f := newFixture(t)

	id, h := f.add(t)

	assert.Equal(t, id, f.selection.ID(), "new object is selected")
	pose := f.pose(t, h)
	assert.InDelta(t, 0, pose.Position.Sub(mgl64.Vec3{0, 1.5, -0.3}).Len(), 1e-12)
	assert.Equal(t, 1.0, pose.Scale)

	rec, _ := f.registry.Get(id)
	assert.Equal(t, scene.ClassTarget, rec.Class)
	assert.False(t, rec.Mortal())

	visual, _ := f.renderer.Visual(h)
	assert.Equal(t, scene.KindCube, visual.Material.Kind)
}

func TestAddObjectWithoutPose(t *testing.T) {
	f := newFixture(t)
	f.tracker.Lose()

	_, err := f.manipulator.Apply(manipulate.AddObject, 1)
	assert.ErrorIs(t, err, scene.ErrNoObserverPose)
	assert.Equal(t, 0, f.renderer.Len())
}

func TestDeleteObject(t *testing.T) {
	f := newFixture(t)
	id, h := f.add(t)

	deleted, err := f.manipulator.Apply(manipulate.DeleteObject, 1)
	require.NoError(t, err)
	assert.Equal(t, id, deleted)

	_, ok := f.renderer.Pose(h)
	assert.False(t, ok)
	assert.Equal(t, 0, f.registry.Len())
	assert.Equal(t, scene.RecordID(0), f.selection.ID())

	_, err = f.manipulator.Apply(manipulate.DeleteObject, 1)
	assert.ErrorIs(t, err, scene.ErrNoSelection)
}

func TestActionsNeedSelection(t *testing.T) {
	f := newFixture(t)

	for a := manipulate.RotateX; a <= manipulate.DeleteObject; a++ {
		if !a.NeedsSelection() {
			continue
		}
		_, err := f.manipulator.Apply(a, 1)
		assert.ErrorIs(t, err, scene.ErrNoSelection, a.String())
	}
}

func TestRotateFullTurn(t *testing.T) {
	for _, action := range []manipulate.Action{manipulate.RotateX, manipulate.RotateY, manipulate.RotateZ} {
		t.Run(action.String(), func(t *testing.T) {
			f := newFixture(t)
			_, h := f.add(t)
			start := f.pose(t, h)

			_, err := f.manipulator.Apply(action, 1)
			require.NoError(t, err)
			assert.False(t, f.pose(t, h).ApproxEqual(start, 1e-6))

			for range 17 {
				_, err := f.manipulator.Apply(action, 1)
				require.NoError(t, err)
			}
			assert.True(t, f.pose(t, h).ApproxEqual(start, 1e-9))
		})
	}
}

func TestRotateReverse(t *testing.T) {
	f := newFixture(t)
	_, h := f.add(t)
	start := f.pose(t, h)

	f.manipulator.Apply(manipulate.RotateY, 1)
	f.manipulator.Apply(manipulate.RotateY, -1)
	assert.True(t, f.pose(t, h).ApproxEqual(start, 1e-9))
}

func TestScale(t *testing.T) {
	f := newFixture(t)
	_, h := f.add(t)

	f.manipulator.Apply(manipulate.Scale, 1)
	assert.InDelta(t, 1.1, f.pose(t, h).Scale, 1e-12)

	f.manipulator.Apply(manipulate.Scale, -1)
	f.manipulator.Apply(manipulate.Scale, -1)
	assert.InDelta(t, 1/1.1, f.pose(t, h).Scale, 1e-12)
}

func TestTranslateLocal(t *testing.T) {
	f := newFixture(t)
	_, h := f.add(t)

	// a quarter turn about Y points local +X along world -Z
	pose := f.pose(t, h)
	pose.Orientation = mgl64.QuatRotate(mgl64.DegToRad(90), geom.UnitY)
	f.renderer.SetPose(h, pose)

	f.manipulator.Apply(manipulate.TranslateX, 1)
	moved := f.pose(t, h).Position.Sub(pose.Position)
	assert.InDelta(t, 0, moved.Sub(mgl64.Vec3{0, 0, -0.005}).Len(), 1e-12, "moved %v", moved)

	f.manipulator.Apply(manipulate.TranslateX, -1)
	assert.InDelta(t, 0, f.pose(t, h).Position.Sub(pose.Position).Len(), 1e-12)
}

func TestUnknownActionPanics(t *testing.T) {
	f := newFixture(t)
	assert.Panics(t, func() {
		f.manipulator.Apply(manipulate.Action(99), 1)
	})
}

func TestParseAction(t *testing.T) {
	a, ok := manipulate.ParseAction("TranslateZ")
	assert.True(t, ok)
	assert.Equal(t, manipulate.TranslateZ, a)

	_, ok = manipulate.ParseAction("Explode")
	assert.False(t, ok)
	assert.Equal(t, "Action(42)", manipulate.Action(42).String())
}
