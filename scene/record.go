package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Forever is the TTL of entities that only expire when flagged.
	Forever = math.MaxFloat64

	// DefaultRadius is the collision radius used when none is given.
	DefaultRadius = 0.05
)

// Record is the motion state of one entity in motion.
type Record struct {
	ID       RecordID
	Handle   Handle
	Class    Class
	Velocity mgl64.Vec3
	// TTL is the remaining lifetime in seconds.
	TTL    float64
	Radius float64
	// Damping is the per-tick velocity multiplier. Only values in (0,1)
	// take effect.
	Damping float64
}

// Speed is the magnitude of the record's velocity.
func (r *Record) Speed() float64 {
	return r.Velocity.Len()
}

// Mortal reports whether the TTL counts down each tick.
func (r *Record) Mortal() bool {
	return r.TTL < Forever
}

// Expired reports whether the record is due for removal.
func (r *Record) Expired() bool {
	return r.TTL <= 0
}

// Damped reports whether the integrator should decay the velocity.
func (r *Record) Damped() bool {
	return r.Damping > 0 && r.Damping < 1
}
