package debugui

import (
	"github.com/plus3/arscene/scene"
	"github.com/plus3/arscene/scene/manipulate"
)

// Host is what the panels need from a scene session.
type Host interface {
	Scheduler() *scene.Scheduler
	SelectionState() *scene.Selection
	Manipulator() *manipulate.Manipulator
	Register(system scene.System)
}

// Attach registers an ImguiSystem with the standard panels on host and
// returns it so callers can read its InputState.
func Attach(host Host, renderer scene.Renderer) *ImguiSystem {
	browser := NewRecordBrowser(host.SelectionState(), 100)
	inspector := NewInspector(host.SelectionState(), renderer, host.Manipulator())
	stats := NewPerformanceStats(host.Scheduler(), 120)

	system := &ImguiSystem{}
	system.Add(browser.Render)
	system.Add(inspector.Render)
	system.Add(stats.Render)
	host.Register(system)
	return system
}
