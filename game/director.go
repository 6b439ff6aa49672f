package game

import (
	"github.com/plus3/echonet/ecs"
)

// GameMode is the top-level game state. Exactly one mode is current at a
// time; systems are gated on it through ecs.RunIf(InMode(...)).
type GameMode int

const (
	ModeMainMenu GameMode = iota
	ModeLoading
	ModePlaying
	ModeLevelComplete
	ModeGameOver
	ModeGameWon
)

func (m GameMode) String() string {
	switch m {
	case ModeMainMenu:
		return "main-menu"
	case ModeLoading:
		return "loading"
	case ModePlaying:
		return "playing"
	case ModeLevelComplete:
		return "level-complete"
	case ModeGameOver:
		return "game-over"
	case ModeGameWon:
		return "game-won"
	}
	return "unknown"
}

// ModeHook runs on a mode boundary, with the frame of the transition.
type ModeHook func(frame *ecs.UpdateFrame)

// Director is the game-state machine, stored as a singleton. Transitions are
// requested with Set and applied by the DirectorSystem at the top of the next
// frame, firing exit hooks of the old mode and enter hooks of the new one.
type Director struct {
	Current GameMode

	started    bool
	pending    GameMode
	hasPending bool

	enterHooks map[GameMode][]ModeHook
	exitHooks  map[GameMode][]ModeHook
}

// NewDirector returns a director starting in the main menu.
func NewDirector() Director {
	return Director{
		Current:    ModeMainMenu,
		enterHooks: make(map[GameMode][]ModeHook),
		exitHooks:  make(map[GameMode][]ModeHook),
	}
}

// Set requests a transition. The last request before the next DirectorSystem
// run wins.
func (d *Director) Set(mode GameMode) {
	d.pending = mode
	d.hasPending = true
}

// OnEnter registers a hook fired when mode becomes current.
func (d *Director) OnEnter(mode GameMode, hook ModeHook) {
	d.enterHooks[mode] = append(d.enterHooks[mode], hook)
}

// OnExit registers a hook fired when mode stops being current.
func (d *Director) OnExit(mode GameMode, hook ModeHook) {
	d.exitHooks[mode] = append(d.exitHooks[mode], hook)
}

// apply performs the pending transition, if any. The first call only fires
// the enter hooks of the initial mode; a transition already pending then
// waits one frame, so the enter hooks' spawn commands flush before the exit
// hooks look for them.
func (d *Director) apply(frame *ecs.UpdateFrame) {
	if !d.started {
		d.started = true
		for _, hook := range d.enterHooks[d.Current] {
			hook(frame)
		}
		return
	}

	if !d.hasPending {
		return
	}
	next := d.pending
	d.hasPending = false

	if next == d.Current {
		return
	}

	for _, hook := range d.exitHooks[d.Current] {
		hook(frame)
	}
	d.Current = next
	for _, hook := range d.enterHooks[d.Current] {
		hook(frame)
	}
}

// InMode builds a run condition that passes while mode is current.
func InMode(mode GameMode) ecs.RunCondition {
	return func(storage *ecs.Storage) bool {
		var director *Director
		if !storage.ReadSingleton(&director) {
			return false
		}
		return director.Current == mode
	}
}

// DirectorSystem applies pending mode transitions. Register it first so that
// hooks run before any gated system sees the new mode.
type DirectorSystem struct {
	Director ecs.Singleton[Director]
}

func (s *DirectorSystem) Execute(frame *ecs.UpdateFrame) {
	s.Director.Get().apply(frame)
}
