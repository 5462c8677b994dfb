package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/geom"
)

// View maps the world's X/Z plane onto the window, looking down -Y with
// world -Z toward the top of the screen.
type View struct {
	Center         mgl64.Vec3
	PixelsPerMeter float64
	Width, Height  int
}

// ToScreen projects a world point to pixel coordinates.
func (v View) ToScreen(p mgl64.Vec3) (float32, float32) {
	x := float64(v.Width)/2 + (p.X()-v.Center.X())*v.PixelsPerMeter
	y := float64(v.Height)/2 + (p.Z()-v.Center.Z())*v.PixelsPerMeter
	return float32(x), float32(y)
}

// ToWorld unprojects a pixel to the top-down point the sandbox hit test
// expects: world X and world Z.
func (v View) ToWorld(x, y int) geom.ScreenPoint {
	return geom.ScreenPoint{
		X: v.Center.X() + (float64(x)-float64(v.Width)/2)/v.PixelsPerMeter,
		Y: v.Center.Z() + (float64(y)-float64(v.Height)/2)/v.PixelsPerMeter,
	}
}

// Zoom scales the view by factor, clamped to a usable range.
func (v *View) Zoom(factor float64) {
	v.PixelsPerMeter = min(max(v.PixelsPerMeter*factor, 20), 2000)
}
