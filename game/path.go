package game

import (
	"github.com/plus3/echonet/ecs"
)

// PathPlanSystem watches the node graph and, once a fully conductive route
// from start to target exists, publishes the shortest one (breadth-first over
// the level's links) into EchoRoute. It stays quiet while an echo is in
// flight or after the target has been reached. Gated on ModePlaying.
type PathPlanSystem struct {
	Book    ecs.Singleton[LevelBook]
	Route   ecs.Singleton[EchoRoute]
	Runtime ecs.Singleton[LevelRuntime]

	Nodes ecs.Query[struct {
		Node  *Node
		State *NodeState
	}]
	Echoes ecs.Query[struct {
		Echo *Echo
	}]
}

func (s *PathPlanSystem) Execute(frame *ecs.UpdateFrame) {
	runtime := s.Runtime.Get()
	if runtime.TargetReached || s.Echoes.Count() > 0 || !s.Route.Get().Empty() {
		return
	}

	level := s.Book.Get().CurrentLevel()
	if level == nil {
		return
	}

	conductive := make(map[int]bool, s.Nodes.Count())
	for item := range s.Nodes.Values() {
		conductive[item.Node.ID] = item.State.Conductive()
	}

	path := shortestConductivePath(level, conductive)
	if path == nil {
		return
	}

	refs := make([]*ecs.EntityRef, 0, len(path))
	for _, id := range path {
		ref, ok := runtime.Lookup(id)
		if !ok {
			return
		}
		refs = append(refs, ref)
	}
	s.Route.Get().Set(refs)
}

// shortestConductivePath runs a breadth-first search from the level's start to
// its target, walking only links whose both endpoints are conductive. Returns
// the node ids along the route, start first, or nil when no route exists.
func shortestConductivePath(level *Level, conductive map[int]bool) []int {
	if !conductive[level.Start] || !conductive[level.Target] {
		return nil
	}

	adjacency := make(map[int][]int, len(level.Nodes))
	for _, link := range level.Links {
		a, b := link[0], link[1]
		if !conductive[a] || !conductive[b] {
			continue
		}
		adjacency[a] = append(adjacency[a], b)
		adjacency[b] = append(adjacency[b], a)
	}

	parent := map[int]int{level.Start: level.Start}
	queue := []int{level.Start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == level.Target {
			var path []int
			for at := current; ; at = parent[at] {
				path = append(path, at)
				if at == level.Start {
					break
				}
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, next := range adjacency[current] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			queue = append(queue, next)
		}
	}

	return nil
}
