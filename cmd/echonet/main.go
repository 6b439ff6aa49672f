package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/echonet/ecs"
	"github.com/plus3/echonet/ecs/debugui"
	debugui_ebiten "github.com/plus3/echonet/ecs/debugui/ebiten"
	"github.com/plus3/echonet/game"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

// Game drives the two schedulers from ebiten's loop: logic in Update, render
// systems in Draw.
type Game struct {
	update  *ecs.Scheduler
	draw    *ecs.Scheduler
	target  *game.RenderTarget
	quit    *game.QuitRequest
	backend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	if g.backend != nil {
		g.backend.BeginFrame()
	}

	g.update.Once(1.0 / float64(ebiten.TPS()))

	if g.backend != nil {
		g.backend.EndFrame()
	}

	if g.quit.Requested {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(game.BackgroundColor)

	g.target.Screen = screen
	g.draw.Once(0)
	g.target.Screen = nil

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return screenWidth, screenHeight
}

// uiCaptureSystem mirrors ImGui's mouse capture into the pointer snapshot so
// overlay clicks never fall through to the board. Registered only with
// -debug, right after the PointerSystem.
type uiCaptureSystem struct {
	Pointer ecs.Singleton[game.PointerState]
	Imgui   ecs.Singleton[debugui.ImguiInputState]
}

func (s *uiCaptureSystem) Execute(frame *ecs.UpdateFrame) {
	s.Pointer.Get().UICaptured = s.Imgui.Get().WantCaptureMouse
}

func main() {
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	startLevel := flag.Int("level", 0, "Skip the menu and start at this level (1-based).")
	flag.Parse()

	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	debugui.RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	levels := game.BuiltinLevels()
	director := game.InstallResources(storage, levels, screenWidth, screenHeight)
	game.InstallRenderResources(storage)

	update := ecs.NewScheduler(storage)
	draw := ecs.NewScheduler(storage)

	update.Register(&game.DirectorSystem{})
	update.Register(&game.PointerSystem{})

	var backend *debugui_ebiten.ImguiBackend
	if *debug {
		b := debugui_ebiten.New("EchoNet", screenWidth, screenHeight)
		backend = &b
		storage.AddSingleton(debugui.ImguiInputState{})
		update.Register(&uiCaptureSystem{})
		update.Register(&debugui.ImguiSystem{})
		debugui.SpawnOverlay(storage, update.GetStats)
	} else {
		ebiten.SetWindowSize(screenWidth, screenHeight)
		ebiten.SetWindowTitle("EchoNet")
	}

	game.RegisterGameplaySystems(update)
	game.RegisterUISystems(update)
	game.RegisterDrawSystems(draw)

	game.InstallGameplayTeardown(director, storage)
	game.InstallScreens(director, storage)

	if *startLevel > 0 {
		if *startLevel > len(levels) {
			log.Fatalf("no level %d, only %d levels exist", *startLevel, len(levels))
		}
		var book *game.LevelBook
		storage.ReadSingleton(&book)
		book.Current = *startLevel - 1
		director.Set(game.ModeLoading)
	}

	var target *game.RenderTarget
	storage.ReadSingleton(&target)
	var quit *game.QuitRequest
	storage.ReadSingleton(&quit)

	err := ebiten.RunGame(&Game{
		update:  update,
		draw:    draw,
		target:  target,
		quit:    quit,
		backend: backend,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("run: %v", err)
	}
}
