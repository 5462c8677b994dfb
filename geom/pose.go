// Package geom holds the vector and transform math used by the scene core.
// Vectors, quaternions and matrices are mgl64 types; Pose adds the rigid
// transform with uniform scale that visuals and snapshots carry.
package geom

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used for degenerate-vector checks.
const Epsilon = 1e-9

var (
	UnitX = mgl64.Vec3{1, 0, 0}
	UnitY = mgl64.Vec3{0, 1, 0}
	UnitZ = mgl64.Vec3{0, 0, 1}
)

// ErrDegenerate is returned when a matrix cannot be decomposed into a Pose.
var ErrDegenerate = errors.New("geom: degenerate transform")

// Pose is a position, orientation and uniform scale. The zero value is not
// usable; start from Identity or At.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       float64
}

// Identity returns the pose at the origin with no rotation and unit scale.
func Identity() Pose {
	return Pose{Orientation: mgl64.QuatIdent(), Scale: 1}
}

// At returns an unrotated, unit-scale pose at position.
func At(position mgl64.Vec3) Pose {
	p := Identity()
	p.Position = position
	return p
}

// Matrix composes translation * rotation * scale.
func (p Pose) Matrix() mgl64.Mat4 {
	t := mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
	r := p.Orientation.Normalize().Mat4()
	s := mgl64.Scale3D(p.Scale, p.Scale, p.Scale)
	return t.Mul4(r).Mul4(s)
}

// PoseFromMatrix decomposes a translation * rotation * uniform-scale matrix.
// Scale is taken from the length of the first basis column.
func PoseFromMatrix(m mgl64.Mat4) (Pose, error) {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Pose{}, ErrDegenerate
		}
	}

	scale := m.Col(0).Vec3().Len()
	if scale <= Epsilon {
		return Pose{}, ErrDegenerate
	}

	r := mgl64.Ident4()
	for c := 0; c < 3; c++ {
		for row := 0; row < 3; row++ {
			r.Set(row, c, m.At(row, c)/scale)
		}
	}

	return Pose{
		Position:    m.Col(3).Vec3(),
		Orientation: mgl64.Mat4ToQuat(r).Normalize(),
		Scale:       scale,
	}, nil
}

// Axis returns the pose's local basis vector i (0=X, 1=Y, 2=Z) in world space.
func (p Pose) Axis(i int) mgl64.Vec3 {
	switch i {
	case 0:
		return p.Orientation.Rotate(UnitX)
	case 1:
		return p.Orientation.Rotate(UnitY)
	case 2:
		return p.Orientation.Rotate(UnitZ)
	}
	panic("geom: axis index out of range")
}

// Forward is the local -Z axis, the viewing direction of a camera pose.
func (p Pose) Forward() mgl64.Vec3 {
	return p.Orientation.Rotate(mgl64.Vec3{0, 0, -1})
}

// RotateLocal rotates the pose by angle radians about its own local axis.
func (p Pose) RotateLocal(axis mgl64.Vec3, angle float64) Pose {
	p.Orientation = p.Orientation.Mul(mgl64.QuatRotate(angle, axis)).Normalize()
	return p
}

// TranslateLocal moves the pose by offset expressed in its local frame.
// Scale does not affect the distance travelled.
func (p Pose) TranslateLocal(offset mgl64.Vec3) Pose {
	p.Position = p.Position.Add(p.Orientation.Rotate(offset))
	return p
}

// Ahead returns the point distance units along the pose's forward axis.
func (p Pose) Ahead(distance float64) mgl64.Vec3 {
	return p.Position.Add(p.Forward().Mul(distance))
}

// Finite reports whether every component of the pose is a finite number.
func (p Pose) Finite() bool {
	vals := []float64{
		p.Position.X(), p.Position.Y(), p.Position.Z(),
		p.Orientation.W, p.Orientation.V.X(), p.Orientation.V.Y(), p.Orientation.V.Z(),
		p.Scale,
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual compares two poses within an absolute tolerance; orientations
// q and -q are equal.
func (p Pose) ApproxEqual(o Pose, eps float64) bool {
	return p.Position.Sub(o.Position).Len() <= eps &&
		p.Orientation.OrientationEqualThreshold(o.Orientation, eps) &&
		math.Abs(p.Scale-o.Scale) <= eps
}

// Facing returns the orientation whose local +Z axis points along dir.
// A zero-length dir yields the identity rotation.
func Facing(dir mgl64.Vec3) mgl64.Quat {
	if dir.Len() <= Epsilon {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(UnitZ, dir.Normalize()).Normalize()
}

// ScreenPoint is a 2D point in view coordinates, as delivered by a tap.
type ScreenPoint struct {
	X, Y float64
}

// ToLocal expresses the world point p in the pose's rotated frame, relative
// to its position. Scale is not removed.
func (p Pose) ToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return p.Orientation.Normalize().Conjugate().Rotate(point.Sub(p.Position))
}
