package debugui_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/debugui"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/sandbox"
	"github.com/plus3/arscene/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRows(t *testing.T) {
	renderer := sandbox.NewRenderer(nil)
	registry := scene.NewRegistry(renderer, nil)
	visual := func() scene.Handle {
		return renderer.CreateVisual(geom.Identity(), scene.Material{Kind: scene.KindCube})
	}

	registry.AddTarget(visual(), mgl64.Vec3{0, 0, 3}, scene.Forever)
	registry.AddProjectile(visual(), mgl64.Vec3{0, 0, -4}, 10)
	registry.AddTarget(visual(), mgl64.Vec3{1, 0, 0}, scene.Forever)

	rows := debugui.CollectRows(registry)
	require.Len(t, rows, 3)

	t.Run("sort by speed", func(t *testing.T) {
		debugui.SortRows(rows, debugui.SortBySpeed, true)
		assert.Equal(t, []float64{1, 3, 4}, []float64{rows[0].Speed, rows[1].Speed, rows[2].Speed})

		debugui.SortRows(rows, debugui.SortBySpeed, false)
		assert.Equal(t, 4.0, rows[0].Speed)
	})

	t.Run("sort by id", func(t *testing.T) {
		debugui.SortRows(rows, debugui.SortByID, true)
		assert.Less(t, rows[0].ID, rows[1].ID)
		assert.Less(t, rows[1].ID, rows[2].ID)
	})

	t.Run("filter", func(t *testing.T) {
		assert.Len(t, debugui.FilterRows(rows, ""), 3)
		assert.Len(t, debugui.FilterRows(rows, "PROJ"), 1)
		assert.Len(t, debugui.FilterRows(rows, "target"), 2)
		assert.Empty(t, debugui.FilterRows(rows, "nope"))
	})
}

func TestFormatTTL(t *testing.T) {
	assert.Equal(t, "inf", debugui.FormatTTL(scene.Forever))
	assert.Equal(t, "2.50", debugui.FormatTTL(2.5))
}
