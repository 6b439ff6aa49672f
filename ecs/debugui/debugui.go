// Package debugui renders an immediate-mode debug overlay with Dear ImGui.
// Panels live in components; the ImguiSystem defers their render closures to
// the end of the frame so they run inside the backend's Begin/End bracket.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/echonet/ecs"
)

// ImguiItem holds a Dear ImGui render closure. Spawn one per overlay window.
type ImguiItem struct {
	Render func()
}

// ImguiInputState is a singleton mirror of ImGui's input capture flags.
// Game input systems consult it to ignore clicks the overlay swallowed.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes the input capture state and queues every ImguiItem
// render closure for execution at the end of the frame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.InputState.Get()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for item := range s.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents registers the overlay's component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}
