package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/arscene/scene"
	"github.com/plus3/arscene/scene/manipulate"
)

var stepActions = []manipulate.Action{
	manipulate.RotateX, manipulate.RotateY, manipulate.RotateZ,
	manipulate.Scale,
	manipulate.TranslateX, manipulate.TranslateY, manipulate.TranslateZ,
}

// Inspector shows the selected record and its transform, and applies
// manipulation actions from buttons.
type Inspector struct {
	selection   *scene.Selection
	renderer    scene.Renderer
	manipulator *manipulate.Manipulator

	lastErr error
}

func NewInspector(selection *scene.Selection, renderer scene.Renderer, manipulator *manipulate.Manipulator) *Inspector {
	return &Inspector{selection: selection, renderer: renderer, manipulator: manipulator}
}

func (in *Inspector) apply(action manipulate.Action, sign int) {
	_, in.lastErr = in.manipulator.Apply(action, sign)
}

func (in *Inspector) Render(*scene.UpdateFrame) {
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.Button("Add Object") {
		in.apply(manipulate.AddObject, 1)
	}

	rec, ok := in.selection.Record()
	if !ok {
		imgui.Text("No record selected")
		in.renderError()
		imgui.End()
		return
	}

	imgui.SameLine()
	if imgui.Button("Delete") {
		in.apply(manipulate.DeleteObject, 1)
		in.renderError()
		imgui.End()
		return
	}
	imgui.SameLine()
	if imgui.Button("Deselect") {
		in.selection.Clear()
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Record: #%d (%s)", rec.ID.Serial(), rec.Class))
	imgui.Text(fmt.Sprintf("Handle: %d", rec.Handle))
	imgui.Text(fmt.Sprintf("Velocity: (%.3f, %.3f, %.3f)", rec.Velocity.X(), rec.Velocity.Y(), rec.Velocity.Z()))
	imgui.Text("TTL: " + FormatTTL(rec.TTL))

	damping := float32(rec.Damping)
	imgui.Text("Damping:")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
	if imgui.InputFloat("##damping", &damping) && damping >= 0 && damping < 1 {
		rec.Damping = float64(damping)
	}

	if pose, ok := in.renderer.Pose(rec.Handle); ok && imgui.TreeNodeStr("Transform") {
		imgui.Text(fmt.Sprintf("Position: (%.3f, %.3f, %.3f)", pose.Position.X(), pose.Position.Y(), pose.Position.Z()))
		imgui.Text(fmt.Sprintf("Scale: %.3f", pose.Scale))
		m := pose.Matrix()
		for row := range 4 {
			imgui.Text(fmt.Sprintf("%8.3f %8.3f %8.3f %8.3f", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3)))
		}
		imgui.TreePop()
	}

	imgui.Separator()
	for _, action := range stepActions {
		if imgui.Button(fmt.Sprintf(" - ##%s", action)) {
			in.apply(action, -1)
		}
		imgui.SameLine()
		if imgui.Button(fmt.Sprintf(" + ##%s", action)) {
			in.apply(action, 1)
		}
		imgui.SameLine()
		imgui.Text(action.String())
	}

	in.renderError()
	imgui.End()
}

func (in *Inspector) renderError() {
	if in.lastErr != nil {
		imgui.Text("Last error: " + in.lastErr.Error())
	}
}
