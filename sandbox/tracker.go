package sandbox

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/geom"
)

// Tracker is a manually driven observer. It starts without a pose, like a
// tracking session that has not converged.
type Tracker struct {
	mu   sync.RWMutex
	pose geom.Pose
	ok   bool
}

// NewTracker creates a tracker with no pose.
func NewTracker() *Tracker {
	return &Tracker{}
}

// NewTrackerAt creates a tracker already reporting pose.
func NewTrackerAt(pose geom.Pose) *Tracker {
	return &Tracker{pose: pose, ok: true}
}

func (t *Tracker) ObserverPose() (geom.Pose, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pose, t.ok
}

// Set reports pose from now on.
func (t *Tracker) Set(pose geom.Pose) {
	t.mu.Lock()
	t.pose = pose
	t.ok = true
	t.mu.Unlock()
}

// Lose drops tracking.
func (t *Tracker) Lose() {
	t.mu.Lock()
	t.ok = false
	t.mu.Unlock()
}

// Walk moves the observer by offset in its own frame and turns it by yaw
// radians about world up. Without a pose it starts from the identity.
func (t *Tracker) Walk(offset mgl64.Vec3, yaw float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ok {
		t.pose = geom.Identity()
		t.ok = true
	}
	t.pose = t.pose.TranslateLocal(offset)
	if yaw != 0 {
		t.pose.Orientation = mgl64.QuatRotate(yaw, geom.UnitY).Mul(t.pose.Orientation).Normalize()
	}
}
