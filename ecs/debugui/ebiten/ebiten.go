// Package ebiten bridges the Dear ImGui overlay into Ebitengine game loops.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// ImguiBackend wraps the Ebitengine Dear ImGui backend. The game loop calls
// BeginFrame before running systems, EndFrame after, and Draw in its draw
// pass.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// New creates a backend bound to a window of the given size. The imgui.ini
// settings file is disabled; overlay layout resets between runs.
func New(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}
