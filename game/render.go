package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/echonet/ecs"
)

// RenderTarget carries the frame's destination image into the draw systems.
// The game loop points Screen at ebiten's screen before running the draw
// scheduler.
type RenderTarget struct {
	Screen *ebiten.Image
}

// BackgroundColor fills the screen before anything else draws.
var BackgroundColor = color.RGBA{R: 13, G: 13, B: 26, A: 255}

var nodeColors = map[NodeState]color.RGBA{
	NodeIdle:       {R: 90, G: 90, B: 100, A: 255},
	NodeActivating: {R: 230, G: 200, B: 50, A: 255},
	NodeActive:     {R: 60, G: 200, B: 80, A: 255},
	NodeTarget:     {R: 60, G: 120, B: 230, A: 255},
	NodeStart:      {R: 230, G: 110, B: 50, A: 255},
}

var (
	echoColor          = color.RGBA{R: 0, G: 230, B: 230, A: 255}
	linkIdleColor      = color.RGBA{R: 70, G: 70, B: 85, A: 255}
	linkReadyColor     = color.RGBA{R: 210, G: 180, B: 60, A: 255}
	linkTraversedColor = color.RGBA{R: 0, G: 200, B: 200, A: 255}
	badgeColor         = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	hudColor           = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	hudWarnColor       = color.RGBA{R: 230, G: 90, B: 70, A: 255}
	labelColor         = color.RGBA{R: 235, G: 235, B: 245, A: 255}
	buttonTextColor    = color.RGBA{R: 235, G: 235, B: 245, A: 255}
	buttonNormalColor  = color.RGBA{R: 38, G: 38, B: 38, A: 255}
	buttonHoveredColor = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	buttonPressedColor = color.RGBA{R: 89, G: 191, B: 89, A: 255}
)

const echoRadius float32 = 10

// WorldRenderSystem draws the level: connections under nodes, order badges on
// top, echoes last. Gated on ModePlaying.
type WorldRenderSystem struct {
	Target   ecs.Singleton[RenderTarget]
	Viewport ecs.Singleton[Viewport]
	Font     ecs.Singleton[GameFont]

	Connections ecs.Query[struct {
		Connection *Connection
	}]
	Nodes ecs.Query[struct {
		State    *NodeState
		Position *Position
		Mark     *PuzzleMark `ecs:"optional"`
	}]
	Echoes ecs.Query[struct {
		Echo     *Echo
		Position *Position
	}]
}

func (s *WorldRenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Target.Get().Screen
	if screen == nil {
		return
	}
	viewport := s.Viewport.Get()

	for item := range s.Connections.Values() {
		s.drawConnection(frame, screen, *viewport, item.Connection)
	}

	badgeFace := s.Font.Get().Face(18)
	for item := range s.Nodes.Values() {
		x, y := viewport.WorldToScreen(*item.Position)
		vector.DrawFilledCircle(screen, x, y, nodeRadius, nodeColors[*item.State], true)

		if item.Mark != nil {
			drawTextCentered(screen, fmt.Sprintf("%d", item.Mark.Order+1), badgeFace, x, y-9, badgeColor)
		}
	}

	for item := range s.Echoes.Values() {
		x, y := viewport.WorldToScreen(*item.Position)
		vector.DrawFilledCircle(screen, x, y, echoRadius, echoColor, true)
	}
}

func (s *WorldRenderSystem) drawConnection(frame *ecs.UpdateFrame, screen *ebiten.Image, viewport Viewport, conn *Connection) {
	if !conn.A.Alive() || !conn.B.Alive() {
		return
	}
	posA := ecs.ReadComponent[Position](frame.Storage, conn.A.Id)
	posB := ecs.ReadComponent[Position](frame.Storage, conn.B.Id)
	if posA == nil || posB == nil {
		return
	}

	clr := linkIdleColor
	switch {
	case conn.Active:
		clr = linkTraversedColor
	case s.ready(frame, conn):
		clr = linkReadyColor
	}

	x0, y0 := viewport.WorldToScreen(*posA)
	x1, y1 := viewport.WorldToScreen(*posB)
	vector.StrokeLine(screen, x0, y0, x1, y1, 3, clr, true)
}

// ready reports whether both endpoints are conductive, so the connection
// would carry an echo.
func (s *WorldRenderSystem) ready(frame *ecs.UpdateFrame, conn *Connection) bool {
	stateA := ecs.ReadComponent[NodeState](frame.Storage, conn.A.Id)
	stateB := ecs.ReadComponent[NodeState](frame.Storage, conn.B.Id)
	return stateA != nil && stateB != nil && stateA.Conductive() && stateB.Conductive()
}

// HudRenderSystem draws the in-level overlay: level name and instructions in
// the top-left corner, the countdown in the top-right. Gated on ModePlaying.
type HudRenderSystem struct {
	Target   ecs.Singleton[RenderTarget]
	Viewport ecs.Singleton[Viewport]
	Font     ecs.Singleton[GameFont]
	Book     ecs.Singleton[LevelBook]
	Timer    ecs.Singleton[Countdown]
}

func (s *HudRenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Target.Get().Screen
	if screen == nil {
		return
	}

	level := s.Book.Get().CurrentLevel()
	if level == nil {
		return
	}

	font := s.Font.Get()
	drawText(screen, fmt.Sprintf("Level %d: %s", level.ID, level.Name), font.Face(24), 20, 16, hudColor)
	drawText(screen, level.Instructions, font.Face(16), 20, 52, hudColor)

	timer := s.Timer.Get()
	if timer.Enabled {
		clr := hudColor
		if timer.Remaining < 10 {
			clr = hudWarnColor
		}
		label := fmt.Sprintf("%.1fs", timer.Remaining)
		face := font.Face(24)
		w, _ := text.Measure(label, face, 0)
		drawText(screen, label, face, float32(s.Viewport.Get().ScreenW)-20-float32(w), 16, clr)
	}
}

// ScreenRenderSystem draws menu screens: labels and buttons. Runs in every
// mode; outside menus there is nothing tagged to draw.
type ScreenRenderSystem struct {
	Target ecs.Singleton[RenderTarget]
	Font   ecs.Singleton[GameFont]

	Labels ecs.Query[struct {
		Label *Label
	}]
	Buttons ecs.Query[struct {
		Button *Button
	}]
}

func (s *ScreenRenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Target.Get().Screen
	if screen == nil {
		return
	}

	font := s.Font.Get()

	for item := range s.Labels.Values() {
		label := item.Label
		drawTextCentered(screen, label.Text, font.Face(label.Size), label.X, label.Y, labelColor)
	}

	face := font.Face(22)
	for item := range s.Buttons.Values() {
		button := item.Button

		fill := buttonNormalColor
		switch button.State {
		case ButtonHovered:
			fill = buttonHoveredColor
		case ButtonPressed:
			fill = buttonPressedColor
		}

		vector.DrawFilledRect(screen, button.X, button.Y, button.W, button.H, fill, false)
		drawTextCentered(screen, button.Label, face, button.X+button.W/2, button.Y+button.H/2-13, buttonTextColor)
	}
}

func drawText(dst *ebiten.Image, str string, face text.Face, x, y float32, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}

func drawTextCentered(dst *ebiten.Image, str string, face text.Face, cx, y float32, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(cx), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(dst, str, face, op)
}
