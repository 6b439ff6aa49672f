package game

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/echonet/ecs"
)

// EchoSpeed is how fast an echo travels, in world units per second.
const EchoSpeed float32 = 150

// EchoSpawnSystem consumes a planned route and launches an echo at its first
// node. Gated on ModePlaying.
type EchoSpawnSystem struct {
	Route ecs.Singleton[EchoRoute]
}

func (s *EchoSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	route := s.Route.Get()
	if route.Empty() {
		return
	}

	path := route.Nodes
	route.Clear()

	start := path[0]
	if !start.Alive() {
		log.Printf("echo spawn: route start node is gone, dropping route")
		return
	}
	origin := ecs.ReadComponent[Position](frame.Storage, start.Id)
	if origin == nil {
		log.Printf("echo spawn: route start node has no position, dropping route")
		return
	}

	frame.Commands.Spawn(
		Echo{
			Path:   path,
			Target: path[len(path)-1],
			Speed:  EchoSpeed,
		},
		Position{X: origin.X, Y: origin.Y},
	)
}

// EchoMoveSystem advances every echo along its path, lighting up each
// connection it crosses. When the echo finishes its path it latches
// TargetReached and despawns. Echoes whose nodes despawned mid-flight are
// dropped. Gated on ModePlaying.
type EchoMoveSystem struct {
	Runtime ecs.Singleton[LevelRuntime]

	Echoes ecs.Query[struct {
		ecs.EntityId
		Echo     *Echo
		Position *Position
	}]
	Connections ecs.Query[struct {
		Connection *Connection
	}]
}

func (s *EchoMoveSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Echoes.Iter() {
		if !s.advance(frame, item.Echo, item.Position) {
			frame.Commands.Delete(id)
		}
	}
}

// advance moves one echo by one frame's worth of distance, crossing as many
// segments as that covers. Returns false when the echo is done or its path
// broke.
func (s *EchoMoveSystem) advance(frame *ecs.UpdateFrame, echo *Echo, position *Position) bool {
	travel := echo.Speed * float32(frame.DeltaTime)

	for {
		if echo.AtEnd() {
			s.Runtime.Get().TargetReached = true
			return false
		}

		from, to := echo.Path[echo.Segment], echo.Path[echo.Segment+1]
		if !from.Alive() || !to.Alive() {
			log.Printf("echo: path node despawned mid-flight, dropping echo")
			return false
		}

		fromPos := ecs.ReadComponent[Position](frame.Storage, from.Id)
		toPos := ecs.ReadComponent[Position](frame.Storage, to.Id)
		if fromPos == nil || toPos == nil {
			log.Printf("echo: path node lost its position, dropping echo")
			return false
		}

		length := toPos.Vec().Sub(fromPos.Vec()).Len()
		if length > 0 {
			remaining := (1 - echo.Progress) * length
			if travel < remaining {
				echo.Progress += travel / length
				at := lerp(fromPos.Vec(), toPos.Vec(), echo.Progress)
				position.X, position.Y = at.X(), at.Y()
				return true
			}
			travel -= remaining
		}

		// Segment crossed: light the connection and move on.
		s.activateConnection(from.Id, to.Id)
		position.X, position.Y = toPos.X, toPos.Y
		echo.Segment++
		echo.Progress = 0
	}
}

func (s *EchoMoveSystem) activateConnection(a, b ecs.EntityId) {
	for item := range s.Connections.Values() {
		if item.Connection.Links(a, b) {
			item.Connection.Active = true
			return
		}
	}
}

func lerp(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}
