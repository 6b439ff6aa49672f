package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/echonet/ecs"
)

// PointerSystem snapshots the mouse into PointerState once per frame, in both
// screen and world coordinates. Runs before every system that reads input.
// UICaptured is preserved from whatever overlay set it earlier in the frame.
type PointerSystem struct {
	Pointer  ecs.Singleton[PointerState]
	Viewport ecs.Singleton[Viewport]
}

func (s *PointerSystem) Execute(frame *ecs.UpdateFrame) {
	pointer := s.Pointer.Get()

	x, y := ebiten.CursorPosition()
	pointer.ScreenX = float32(x)
	pointer.ScreenY = float32(y)
	pointer.WorldX, pointer.WorldY = s.Viewport.Get().ScreenToWorld(pointer.ScreenX, pointer.ScreenY)
	pointer.Clicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}
