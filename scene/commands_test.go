package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/arscene/scene"
	"github.com/stretchr/testify/assert"
)

type removeOnce struct {
	id  scene.RecordID
	ran bool
}

func (s *removeOnce) Execute(frame *scene.UpdateFrame) {
	if s.ran {
		return
	}
	s.ran = true
	frame.Commands.Remove(s.id)
	frame.Commands.Defer(func() { s.id = 0 })

	// still visible until the frame ends
	if _, ok := frame.Registry.Get(s.id); !ok {
		panic("record removed before flush")
	}
}

func TestCommandsApplyAfterSystems(t *testing.T) {
	registry, renderer := newRegistry(t)
	keep := registry.AddTarget(spawnVisual(renderer), mgl64.Vec3{}, scene.Forever)
	drop := registry.AddTarget(spawnVisual(renderer), mgl64.Vec3{}, scene.Forever)

	system := &removeOnce{id: drop}
	scheduler := scene.NewScheduler(registry, 0)
	scheduler.Register(system)

	assert.NotPanics(t, scheduler.Once)

	_, ok := registry.Get(drop)
	assert.False(t, ok)
	_, ok = registry.Get(keep)
	assert.True(t, ok)
	assert.Equal(t, scene.RecordID(0), system.id, "deferred functions run during flush")
}

func TestCommandsFlagBeforeRemove(t *testing.T) {
	registry, renderer := newRegistry(t)
	id := registry.AddTarget(spawnVisual(renderer), mgl64.Vec3{}, scene.Forever)

	var commands scene.Commands
	commands.Remove(id)
	commands.Flag(id)
	assert.Equal(t, 2, commands.Len())

	commands.Flush(registry)
	assert.Equal(t, 0, commands.Len())
	_, ok := registry.Get(id)
	assert.False(t, ok)
}
