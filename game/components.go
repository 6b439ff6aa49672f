package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/echonet/ecs"
)

// Node is a graph vertex the player can activate. ID is the stable logical
// id used by level data and the activation sequence; it is independent of the
// entity id the storage assigns.
type Node struct {
	ID int
}

// NodeState tracks where a node is in its activation lifecycle.
type NodeState int

const (
	NodeIdle NodeState = iota
	NodeActivating
	NodeActive
	NodeTarget
	NodeStart
)

// Conductive reports whether an echo may travel through a node in this
// state.
func (s NodeState) Conductive() bool {
	return s == NodeActive || s == NodeStart || s == NodeTarget
}

func (s NodeState) String() string {
	switch s {
	case NodeIdle:
		return "idle"
	case NodeActivating:
		return "activating"
	case NodeActive:
		return "active"
	case NodeTarget:
		return "target"
	case NodeStart:
		return "start"
	}
	return "unknown"
}

// Position is a location in world coordinates (origin at screen center,
// y pointing up).
type Position struct {
	X, Y float32
}

// Vec returns the position as a mathgl vector.
func (p Position) Vec() mgl32.Vec2 {
	return mgl32.Vec2{p.X, p.Y}
}

// Clickable marks a node as player-interactive within Radius world units of
// its position.
type Clickable struct {
	Radius float32
}

// PuzzleMark attaches a visible activation-order badge to a node. Presence of
// the component is what makes a node part of the ordered puzzle; Order is the
// zero-based position shown to the player.
type PuzzleMark struct {
	Order int
}

// Connection is an edge between two nodes. Endpoint identity is fixed at
// spawn; Active flips when an echo traverses the edge.
type Connection struct {
	A      *ecs.EntityRef
	B      *ecs.EntityRef
	Active bool
}

// Links reports whether the connection joins the two given nodes, in either
// orientation.
func (c *Connection) Links(a, b ecs.EntityId) bool {
	idA, okA := resolve(c.A)
	idB, okB := resolve(c.B)
	if !okA || !okB {
		return false
	}
	return (idA == a && idB == b) || (idA == b && idB == a)
}

func resolve(ref *ecs.EntityRef) (ecs.EntityId, bool) {
	if !ref.Alive() {
		return 0, false
	}
	return ref.Id, true
}

// Echo is the traveling signal. It walks Path segment by segment; Progress
// is the [0,1] fraction along the current segment, Segment the index of the
// node it is coming from.
type Echo struct {
	Path     []*ecs.EntityRef
	Target   *ecs.EntityRef
	Speed    float32
	Progress float32
	Segment  int
}

// AtEnd reports whether the echo has consumed its whole path.
func (e *Echo) AtEnd() bool {
	return e.Segment+1 >= len(e.Path)
}

// ButtonAction is what pressing a menu button does.
type ButtonAction int

const (
	ActionPlay ButtonAction = iota
	ActionQuit
	ActionNextLevel
	ActionRetry
	ActionMainMenu
)

// ButtonState is the hover/press feedback state of a button.
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonHovered
	ButtonPressed
)

// Button is a clickable screen-space rectangle on a menu screen.
type Button struct {
	Label  string
	Action ButtonAction
	X, Y   float32 // top-left, screen pixels
	W, H   float32
	State  ButtonState
}

// Contains reports whether the screen-space point is inside the button.
func (b *Button) Contains(x, y float32) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// Label is a static line of text on a menu screen, centered on X.
type Label struct {
	Text string
	X, Y float32 // screen pixels; X is the center of the text
	Size float64
}

// ScreenTag binds a UI entity to the game mode that owns it, so the mode's
// exit hook can tear the screen down.
type ScreenTag struct {
	Mode GameMode
}
