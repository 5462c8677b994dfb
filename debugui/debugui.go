// Package debugui draws Dear ImGui panels over a running scene: a record
// browser, an inspector for the selection and scheduler statistics.
// Panels render from a system registered last on the scheduler, so they
// see the registry after the tick's systems have run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/arscene/scene"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Render func(frame *scene.UpdateFrame)
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard
// input, so hosts can skip their own handling.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers every item's render function to the end of the frame
// and refreshes Input.
type ImguiSystem struct {
	Items []ImguiItem
	Input InputState
}

// Add appends a render function.
func (i *ImguiSystem) Add(render func(frame *scene.UpdateFrame)) {
	i.Items = append(i.Items, ImguiItem{Render: render})
}

func (i *ImguiSystem) Execute(frame *scene.UpdateFrame) {
	i.Input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	i.Input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, item := range i.Items {
		frame.Commands.Defer(func() { item.Render(frame) })
	}
}
