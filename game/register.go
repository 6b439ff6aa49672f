package game

import (
	"github.com/plus3/echonet/ecs"
)

// RegisterComponents registers every component type of the game with the
// given registry. Must run before any storage built on the registry spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Node](registry)
	ecs.RegisterComponent[NodeState](registry)
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Clickable](registry)
	ecs.RegisterComponent[PuzzleMark](registry)
	ecs.RegisterComponent[Connection](registry)
	ecs.RegisterComponent[Echo](registry)
	ecs.RegisterComponent[Button](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[ScreenTag](registry)
}

// InstallResources adds the shared singletons to storage and returns the
// director, ready for hook registration.
func InstallResources(storage *ecs.Storage, levels []Level, screenW, screenH int) *Director {
	storage.AddSingleton(NewDirector())
	storage.AddSingleton(LevelBook{Levels: levels})
	storage.AddSingleton(Countdown{})
	storage.AddSingleton(ActivationLog{})
	storage.AddSingleton(EchoRoute{})
	storage.AddSingleton(NewLevelRuntime())
	storage.AddSingleton(PointerState{})
	storage.AddSingleton(Viewport{ScreenW: screenW, ScreenH: screenH})
	storage.AddSingleton(QuitRequest{})

	var director *Director
	storage.ReadSingleton(&director)
	return director
}

// InstallRenderResources adds the singletons only the draw systems need.
func InstallRenderResources(storage *ecs.Storage) {
	storage.AddSingleton(NewGameFont())
	storage.AddSingleton(RenderTarget{})
}

// RegisterGameplaySystems registers the simulation half of the game, in
// frame order. The caller registers the DirectorSystem and an input source
// (PointerSystem or an autoplayer) before calling this, so transitions are
// applied and clicks are fresh when interaction runs.
func RegisterGameplaySystems(scheduler *ecs.Scheduler) {
	scheduler.Register(&LevelLoadSystem{}, ecs.RunIf(InMode(ModeLoading)))
	scheduler.Register(&NodeInteractionSystem{}, ecs.RunIf(InMode(ModePlaying)))
	scheduler.Register(&PathPlanSystem{}, ecs.RunIf(InMode(ModePlaying)))
	scheduler.Register(&EchoSpawnSystem{}, ecs.RunIf(InMode(ModePlaying)))
	scheduler.Register(&EchoMoveSystem{}, ecs.RunIf(InMode(ModePlaying)))
	scheduler.Register(&TimerSystem{}, ecs.RunIf(InMode(ModePlaying)))
	scheduler.Register(&FailSystem{}, ecs.RunIf(InMode(ModePlaying)))
	scheduler.Register(&CompletionSystem{}, ecs.RunIf(InMode(ModePlaying)))
}

// RegisterUISystems registers the menu interaction systems.
func RegisterUISystems(scheduler *ecs.Scheduler) {
	scheduler.Register(&ButtonSystem{})
}

// RegisterDrawSystems registers the render systems on the draw scheduler, in
// paint order.
func RegisterDrawSystems(scheduler *ecs.Scheduler) {
	scheduler.Register(&WorldRenderSystem{}, ecs.RunIf(InMode(ModePlaying)))
	scheduler.Register(&HudRenderSystem{}, ecs.RunIf(InMode(ModePlaying)))
	scheduler.Register(&ScreenRenderSystem{})
}
