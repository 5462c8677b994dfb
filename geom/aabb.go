package geom

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned box in the local frame of a visual, not rotated
// with it.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Cube returns a box of edge length size centred on the origin.
func Cube(size float64) AABB {
	h := size / 2
	return AABB{Min: mgl64.Vec3{-h, -h, -h}, Max: mgl64.Vec3{h, h, h}}
}

// Scaled multiplies both corners by s.
func (b AABB) Scaled(s float64) AABB {
	return AABB{Min: b.Min.Mul(s), Max: b.Max.Mul(s)}
}

// Translate offsets the box by origin.
func (b AABB) Translate(origin mgl64.Vec3) AABB {
	return AABB{Min: b.Min.Add(origin), Max: b.Max.Add(origin)}
}

// Contains reports whether p lies inside the box, bounds inclusive.
func (b AABB) Contains(p mgl64.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}
