// Package systems holds the per-tick stages of a scene session: collision,
// integration with expiry, target spawning and drag-follow.
package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/scene"
	"go.uber.org/zap"
)

// CollisionSystem flags a projectile and a target for removal when the
// projectile's position lies inside the target's bounds. Targets without
// renderer bounds fall back to a sphere of the summed radii.
type CollisionSystem struct {
	Renderer scene.Renderer

	// Hits is the number of pairs flagged in the last tick; Total counts
	// every tick.
	Hits  int
	Total uint64

	log     *zap.Logger
	targets []collider
}

type collider struct {
	rec    *scene.Record
	pose   geom.Pose
	box    geom.AABB
	hasBox bool
}

func NewCollisionSystem(renderer scene.Renderer, logger *zap.Logger) *CollisionSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollisionSystem{Renderer: renderer, log: logger}
}

func (s *CollisionSystem) Execute(frame *scene.UpdateFrame) {
	s.Hits = 0

	s.targets = s.targets[:0]
	for rec := range frame.Registry.Targets() {
		pose, ok := s.Renderer.Pose(rec.Handle)
		if !ok {
			continue
		}
		box, hasBox := s.Renderer.Bounds(rec.Handle)
		s.targets = append(s.targets, collider{rec: rec, pose: pose, box: box, hasBox: hasBox})
	}
	if len(s.targets) == 0 {
		return
	}

	for projectile := range frame.Registry.Projectiles() {
		pose, ok := s.Renderer.Pose(projectile.Handle)
		if !ok {
			continue
		}
		for _, target := range s.targets {
			if !target.contains(pose.Position, projectile.Radius) {
				continue
			}
			projectile.TTL = 0
			target.rec.TTL = 0
			s.Hits++

			s.log.Debug("collision",
				zap.Uint64("projectile", uint64(projectile.ID)),
				zap.Uint64("target", uint64(target.rec.ID)),
				zap.Uint64("tick", frame.Tick))
		}
	}
	s.Total += uint64(s.Hits)
}

func (c collider) contains(point mgl64.Vec3, radius float64) bool {
	if c.hasBox {
		return c.box.Contains(c.pose.ToLocal(point))
	}
	return point.Sub(c.pose.Position).Len() <= radius+c.rec.Radius
}
