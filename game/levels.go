package game

// NodeSpec describes one node of a level: world position, initial state, and
// an optional activation-order badge (Order < 0 means none).
type NodeSpec struct {
	X, Y  float32
	State NodeState
	Order int
}

// Level is the static descriptor of one puzzle: nodes, edges (as index pairs
// into Nodes), the designated start and target, an optional time limit and an
// optional required activation order (logical node ids).
type Level struct {
	ID           int
	Name         string
	Nodes        []NodeSpec
	Links        [][2]int
	Start        int
	Target       int
	TimeLimit    float64 // seconds; 0 = no limit
	Instructions string
	Sequence     []int // nil = any order
}

func node(x, y float32, state NodeState) NodeSpec {
	return NodeSpec{X: x, Y: y, State: state, Order: -1}
}

func orderedNode(x, y float32, state NodeState, order int) NodeSpec {
	return NodeSpec{X: x, Y: y, State: state, Order: order}
}

// ClickPlan returns the node ids an autoplayer activates, in order: the
// required sequence when the level has one, otherwise the shortest route from
// start to target assuming every node conducts.
func (l *Level) ClickPlan() []int {
	if l.Sequence != nil {
		return l.Sequence
	}

	all := make(map[int]bool, len(l.Nodes))
	for i := range l.Nodes {
		all[i] = true
	}
	return shortestConductivePath(l, all)
}

// BuiltinLevels returns the compiled-in level table.
func BuiltinLevels() []Level {
	return []Level{
		{
			ID:   1,
			Name: "The Basics",
			Nodes: []NodeSpec{
				node(-200, 0, NodeStart),
				node(0, 0, NodeIdle),
				node(200, 0, NodeTarget),
			},
			Links:        [][2]int{{0, 1}, {1, 2}},
			Start:        0,
			Target:       2,
			TimeLimit:    30,
			Instructions: "Activate nodes in sequence to guide the echo to the target.",
			Sequence:     []int{0, 1, 2},
		},
		{
			ID:   2,
			Name: "A Fork in the Road",
			Nodes: []NodeSpec{
				node(-300, 0, NodeStart),
				node(-100, 0, NodeIdle),
				node(100, 100, NodeIdle), // decoy
				node(100, -100, NodeTarget),
			},
			Links:        [][2]int{{0, 1}, {1, 2}, {1, 3}},
			Start:        0,
			Target:       3,
			TimeLimit:    25,
			Instructions: "Choose the correct path to the target node.",
			Sequence:     []int{0, 1, 3},
		},
		{
			ID:   3,
			Name: "Ordered Activation",
			Nodes: []NodeSpec{
				orderedNode(-400, 0, NodeStart, 0),
				orderedNode(-200, 100, NodeIdle, 2),
				orderedNode(0, 0, NodeIdle, 1),
				node(200, 100, NodeIdle),
				node(400, 0, NodeTarget),
			},
			Links:        [][2]int{{0, 2}, {2, 1}, {1, 3}, {3, 4}},
			Start:        0,
			Target:       4,
			TimeLimit:    45,
			Instructions: "Activate nodes in the displayed numerical order.",
			Sequence:     []int{0, 2, 1, 3, 4},
		},
		{
			ID:   4,
			Name: "Crossroads",
			Nodes: []NodeSpec{
				node(-350, 0, NodeStart),
				node(-150, 120, NodeIdle),
				node(-150, -120, NodeIdle),
				node(50, 0, NodeIdle),
				node(250, 120, NodeIdle), // dead end
				node(250, -120, NodeIdle),
				node(400, 0, NodeTarget),
			},
			Links:        [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {3, 5}, {5, 6}},
			Start:        0,
			Target:       6,
			TimeLimit:    0,
			Instructions: "No timer. Find any conductive route to the target.",
		},
	}
}
