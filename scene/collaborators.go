package scene

import "github.com/plus3/arscene/geom"

// Tracker supplies the observer (camera) pose. It reports false until
// tracking has converged.
type Tracker interface {
	ObserverPose() (geom.Pose, bool)
}

// Renderer owns visuals. Handles it returns stay valid until RemoveVisual.
type Renderer interface {
	CreateVisual(pose geom.Pose, material Material) Handle
	RemoveVisual(h Handle)
	Pose(h Handle) (geom.Pose, bool)
	SetPose(h Handle, pose geom.Pose)
	// Bounds returns the visual's local box at its current scale.
	Bounds(h Handle) (geom.AABB, bool)
}

// MaterialSetter is implemented by renderers that can retexture a visual.
type MaterialSetter interface {
	SetMaterial(h Handle, material Material) bool
}

// HitTester resolves a tap to the visual under it.
type HitTester interface {
	HitTest(p geom.ScreenPoint) (Handle, bool)
}
