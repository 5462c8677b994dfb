// Package sandbox provides in-memory stand-ins for the renderer and tracking
// collaborators. The viewers draw from it and the tests assert against it.
package sandbox

import (
	"fmt"
	"sync"

	"github.com/kamstrup/intmap"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/scene"
	"github.com/plus3/arscene/scene/snapshot"
)

// DefaultSizes is the edge length of each material kind's model at unit scale.
var DefaultSizes = map[string]float64{
	scene.KindCube:   0.3,
	scene.KindJet:    1.0,
	scene.KindBullet: 0.1,
}

// Visual is a renderer-owned object.
type Visual struct {
	Handle   scene.Handle
	Pose     geom.Pose
	Material scene.Material
}

// Renderer keeps visuals in memory. It is safe for concurrent use so a
// viewer can draw while the tick goroutine mutates poses.
type Renderer struct {
	mu      sync.RWMutex
	next    scene.Handle
	visuals *intmap.Map[scene.Handle, *Visual]
	order   []scene.Handle
	sizes   map[string]float64
	removed int
}

// NewRenderer creates an empty renderer. Unknown material kinds use the
// cube size.
func NewRenderer(sizes map[string]float64) *Renderer {
	if sizes == nil {
		sizes = DefaultSizes
	}
	return &Renderer{
		visuals: intmap.New[scene.Handle, *Visual](64),
		sizes:   sizes,
	}
}

func (r *Renderer) CreateVisual(pose geom.Pose, material scene.Material) scene.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	r.visuals.Put(h, &Visual{Handle: h, Pose: pose, Material: material})
	r.order = append(r.order, h)
	return h
}

func (r *Renderer) RemoveVisual(h scene.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.visuals.Del(h) {
		return
	}
	for i, other := range r.order {
		if other == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.removed++
}

func (r *Renderer) Pose(h scene.Handle) (geom.Pose, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.visuals.Get(h)
	if !ok {
		return geom.Pose{}, false
	}
	return v.Pose, true
}

func (r *Renderer) SetPose(h scene.Handle, pose geom.Pose) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.visuals.Get(h); ok {
		v.Pose = pose
	}
}

func (r *Renderer) Bounds(h scene.Handle) (geom.AABB, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.visuals.Get(h)
	if !ok {
		return geom.AABB{}, false
	}
	return geom.Cube(r.size(v.Material.Kind)).Scaled(v.Pose.Scale), true
}

func (r *Renderer) SetMaterial(h scene.Handle, material scene.Material) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visuals.Get(h)
	if !ok {
		return false
	}
	v.Material = material
	return true
}

// Record extracts the snapshot form of a visual.
func (r *Renderer) Record(h scene.Handle) (snapshot.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.visuals.Get(h)
	if !ok {
		return snapshot.Record{}, fmt.Errorf("sandbox: visual %d: %w", h, scene.ErrNotRegistered)
	}
	return snapshot.NewRecord(v.Pose, v.Material), nil
}

// HitTest treats p as a top-down point (world X, world Z) and returns the
// most recently created visual whose footprint contains it.
func (r *Renderer) HitTest(p geom.ScreenPoint) (scene.Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.order) - 1; i >= 0; i-- {
		v, _ := r.visuals.Get(r.order[i])
		box := geom.Cube(r.size(v.Material.Kind)).Scaled(v.Pose.Scale).Translate(v.Pose.Position)
		if p.X >= box.Min.X() && p.X <= box.Max.X() && p.Y >= box.Min.Z() && p.Y <= box.Max.Z() {
			return v.Handle, true
		}
	}
	return scene.NullHandle, false
}

// Visual returns a copy of the visual for h.
func (r *Renderer) Visual(h scene.Handle) (Visual, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.visuals.Get(h)
	if !ok {
		return Visual{}, false
	}
	return *v, true
}

// Visuals returns copies of every visual in creation order.
func (r *Renderer) Visuals() []Visual {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Visual, 0, len(r.order))
	for _, h := range r.order {
		v, _ := r.visuals.Get(h)
		out = append(out, *v)
	}
	return out
}

// Len is the number of live visuals.
func (r *Renderer) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.visuals.Len()
}

// Removed is the number of visuals removed so far.
func (r *Renderer) Removed() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.removed
}

func (r *Renderer) size(kind string) float64 {
	if s, ok := r.sizes[kind]; ok {
		return s
	}
	return r.sizes[scene.KindCube]
}
