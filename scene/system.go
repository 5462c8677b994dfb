package scene

// System is one stage of the per-tick pipeline. Systems run in registration
// order and may keep state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees for one tick.
type UpdateFrame struct {
	Tick      uint64
	TickRate  float64
	DeltaTime float64
	Commands  *Commands
	Registry  *Registry
}

func newUpdateFrame(tick uint64, tickRate float64, registry *Registry, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		Tick:      tick,
		TickRate:  tickRate,
		DeltaTime: 1 / tickRate,
		Commands:  commands,
		Registry:  registry,
	}
}
