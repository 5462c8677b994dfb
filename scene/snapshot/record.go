// Package snapshot saves and restores scene contents as a flat list of
// records. Records are values; they never reference live entities.
package snapshot

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/scene"
)

// Record is the persisted form of one entity. Pose is the rigid transform
// without scale; Scale is authoritative for size.
type Record struct {
	Pose     mgl64.Mat4     `msgpack:"pose"`
	Scale    float64        `msgpack:"scale"`
	Material scene.Material `msgpack:"material"`
}

// NewRecord captures pose and material.
func NewRecord(pose geom.Pose, material scene.Material) Record {
	scale := pose.Scale
	pose.Scale = 1
	return Record{
		Pose:     pose.Matrix(),
		Scale:    scale,
		Material: material,
	}
}

// Transform rebuilds the pose stored in the record.
func (r Record) Transform() (geom.Pose, error) {
	if err := r.Validate(); err != nil {
		return geom.Pose{}, err
	}
	pose, err := geom.PoseFromMatrix(r.Pose)
	if err != nil {
		return geom.Pose{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	pose.Scale = r.Scale
	return pose, nil
}

// Validate rejects records that cannot be turned back into an entity.
func (r Record) Validate() error {
	if math.IsNaN(r.Scale) || math.IsInf(r.Scale, 0) || r.Scale <= 0 {
		return fmt.Errorf("%w: scale %v", ErrInvalidRecord, r.Scale)
	}
	if _, err := geom.PoseFromMatrix(r.Pose); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}
