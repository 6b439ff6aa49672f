package game

import (
	"log"

	"github.com/plus3/echonet/ecs"
)

const (
	nodeRadius  float32 = 25
	clickRadius float32 = 28
)

// LevelLoadSystem builds the world for the level under the LevelBook cursor:
// node and connection entities, the id -> entity index, the countdown. Runs
// while the director is in ModeLoading and hands off to ModePlaying. A cursor
// past the end of the table means every level is done.
type LevelLoadSystem struct {
	Book     ecs.Singleton[LevelBook]
	Director ecs.Singleton[Director]
	Timer    ecs.Singleton[Countdown]
	Log      ecs.Singleton[ActivationLog]
	Route    ecs.Singleton[EchoRoute]
	Runtime  ecs.Singleton[LevelRuntime]
}

func (s *LevelLoadSystem) Execute(frame *ecs.UpdateFrame) {
	s.Log.Get().Clear()
	s.Route.Get().Clear()

	runtime := s.Runtime.Get()
	runtime.Clear()

	level := s.Book.Get().CurrentLevel()
	if level == nil {
		s.Director.Get().Set(ModeGameWon)
		return
	}

	s.Timer.Get().Arm(level.TimeLimit)

	// Nodes first: connections and the index need their refs.
	refs := make([]*ecs.EntityRef, len(level.Nodes))
	for i, spec := range level.Nodes {
		components := []any{
			Node{ID: i},
			spec.State,
			Position{X: spec.X, Y: spec.Y},
			Clickable{Radius: clickRadius},
		}
		if spec.Order >= 0 {
			components = append(components, PuzzleMark{Order: spec.Order})
		}

		id := frame.Storage.Spawn(components...)
		refs[i] = frame.Storage.CreateEntityRef(id)
		runtime.Bind(i, refs[i])
	}

	for _, link := range level.Links {
		a, b := link[0], link[1]
		if a < 0 || a >= len(refs) || b < 0 || b >= len(refs) {
			log.Printf("level %d: connection %v references a missing node, skipping", level.ID, link)
			continue
		}
		frame.Storage.Spawn(Connection{A: refs[a], B: refs[b]})
	}

	s.Director.Get().Set(ModePlaying)
}

// InstallGameplayTeardown registers the ModePlaying exit hook that despawns
// every node, connection and echo and clears the node index.
func InstallGameplayTeardown(director *Director, storage *ecs.Storage) {
	nodes := ecs.NewView[struct {
		ecs.EntityId
		*Node
	}](storage)
	connections := ecs.NewView[struct {
		ecs.EntityId
		*Connection
	}](storage)
	echoes := ecs.NewView[struct {
		ecs.EntityId
		*Echo
	}](storage)

	director.OnExit(ModePlaying, func(frame *ecs.UpdateFrame) {
		for id := range nodes.Iter() {
			frame.Commands.Delete(id)
		}
		for id := range connections.Iter() {
			frame.Commands.Delete(id)
		}
		for id := range echoes.Iter() {
			frame.Commands.Delete(id)
		}

		var runtime *LevelRuntime
		if frame.Storage.ReadSingleton(&runtime) {
			runtime.Clear()
		}
	})
}
