package sandbox

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer(t *testing.T) {
	t.Run("CreateAndRemove", func(t *testing.T) {
		r := NewRenderer(nil)
		a := r.CreateVisual(geom.At(mgl64.Vec3{0, 0, 0}), scene.Material{Kind: scene.KindCube})
		b := r.CreateVisual(geom.At(mgl64.Vec3{1, 0, 0}), scene.Material{Kind: scene.KindJet})
		assert.NotEqual(t, a, b)
		assert.Equal(t, 2, r.Len())

		r.RemoveVisual(a)
		r.RemoveVisual(a)
		assert.Equal(t, 1, r.Len())
		assert.Equal(t, 1, r.Removed())

		_, ok := r.Pose(a)
		assert.False(t, ok)

		visuals := r.Visuals()
		require.Len(t, visuals, 1)
		assert.Equal(t, b, visuals[0].Handle)
	})

	t.Run("BoundsFollowScale", func(t *testing.T) {
		r := NewRenderer(nil)
		pose := geom.Identity()
		pose.Scale = 2
		h := r.CreateVisual(pose, scene.Material{Kind: scene.KindCube})

		box, ok := r.Bounds(h)
		require.True(t, ok)
		assert.InDelta(t, 0.3, box.Max.X(), 1e-9)
		assert.InDelta(t, -0.3, box.Min.Z(), 1e-9)
	})

	t.Run("UnknownKindUsesCubeSize", func(t *testing.T) {
		r := NewRenderer(nil)
		h := r.CreateVisual(geom.Identity(), scene.Material{Kind: "teapot"})
		box, ok := r.Bounds(h)
		require.True(t, ok)
		assert.InDelta(t, 0.15, box.Max.Y(), 1e-9)
	})

	t.Run("SetPoseAndMaterial", func(t *testing.T) {
		r := NewRenderer(nil)
		h := r.CreateVisual(geom.Identity(), scene.Material{Kind: scene.KindCube})

		r.SetPose(h, geom.At(mgl64.Vec3{0, 2, 0}))
		pose, ok := r.Pose(h)
		require.True(t, ok)
		assert.Equal(t, 2.0, pose.Position.Y())

		assert.True(t, r.SetMaterial(h, scene.Material{Kind: scene.KindCube, Texture: "wood"}))
		assert.False(t, r.SetMaterial(scene.Handle(999), scene.Material{}))
		v, _ := r.Visual(h)
		assert.Equal(t, "wood", v.Material.Texture)
	})

	t.Run("Record", func(t *testing.T) {
		r := NewRenderer(nil)
		h := r.CreateVisual(geom.At(mgl64.Vec3{1, 2, 3}), scene.Material{Kind: scene.KindJet})

		rec, err := r.Record(h)
		require.NoError(t, err)
		assert.Equal(t, scene.KindJet, rec.Material.Kind)

		_, err = r.Record(scene.Handle(999))
		assert.ErrorIs(t, err, scene.ErrNotRegistered)
	})

	t.Run("HitTestPrefersNewest", func(t *testing.T) {
		r := NewRenderer(nil)
		older := r.CreateVisual(geom.At(mgl64.Vec3{0, 0, 0}), scene.Material{Kind: scene.KindCube})
		newer := r.CreateVisual(geom.At(mgl64.Vec3{0.1, 0, 0}), scene.Material{Kind: scene.KindCube})

		h, ok := r.HitTest(geom.ScreenPoint{X: 0.05, Y: 0})
		require.True(t, ok)
		assert.Equal(t, newer, h)

		h, ok = r.HitTest(geom.ScreenPoint{X: -0.1, Y: 0.1})
		require.True(t, ok)
		assert.Equal(t, older, h)

		_, ok = r.HitTest(geom.ScreenPoint{X: 5, Y: 5})
		assert.False(t, ok)
	})
}

func TestTracker(t *testing.T) {
	tr := NewTracker()
	_, ok := tr.ObserverPose()
	assert.False(t, ok)

	tr.Walk(mgl64.Vec3{0, 0, -1}, 0)
	pose, ok := tr.ObserverPose()
	require.True(t, ok)
	assert.InDelta(t, -1, pose.Position.Z(), 1e-9)

	// After a quarter turn left, forward walks along -X.
	tr.Walk(mgl64.Vec3{}, mgl64.DegToRad(90))
	tr.Walk(mgl64.Vec3{0, 0, -1}, 0)
	pose, _ = tr.ObserverPose()
	assert.InDelta(t, -1, pose.Position.X(), 1e-9)
	assert.InDelta(t, -1, pose.Position.Z(), 1e-9)

	tr.Lose()
	_, ok = tr.ObserverPose()
	assert.False(t, ok)

	tr.Set(geom.At(mgl64.Vec3{5, 0, 0}))
	pose, ok = tr.ObserverPose()
	require.True(t, ok)
	assert.Equal(t, 5.0, pose.Position.X())
}
