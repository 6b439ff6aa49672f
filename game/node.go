package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/echonet/ecs"
)

// NodeInteractionSystem turns clicks into node activations. A click lands on
// the nearest node within its clickable radius; idle nodes switch to active
// and every hit node, start and target included, is recorded in the
// activation log. Gated on ModePlaying.
type NodeInteractionSystem struct {
	Pointer ecs.Singleton[PointerState]
	Log     ecs.Singleton[ActivationLog]

	Nodes ecs.Query[struct {
		Node      *Node
		State     *NodeState
		Position  *Position
		Clickable *Clickable
	}]
}

func (s *NodeInteractionSystem) Execute(frame *ecs.UpdateFrame) {
	pointer := s.Pointer.Get()
	if !pointer.Clicked || pointer.UICaptured {
		return
	}

	click := mgl32.Vec2{pointer.WorldX, pointer.WorldY}

	var hit *struct {
		node  *Node
		state *NodeState
	}
	bestDist := float32(0)

	for item := range s.Nodes.Values() {
		dist := item.Position.Vec().Sub(click).Len()
		if dist > item.Clickable.Radius {
			continue
		}
		if hit == nil || dist < bestDist {
			hit = &struct {
				node  *Node
				state *NodeState
			}{item.Node, item.State}
			bestDist = dist
		}
	}

	if hit == nil {
		return
	}

	switch *hit.state {
	case NodeIdle, NodeActivating:
		*hit.state = NodeActive
	}
	s.Log.Get().Record(hit.node.ID)
}
