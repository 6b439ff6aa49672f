package game

import (
	"github.com/plus3/echonet/ecs"
)

const (
	buttonWidth  float32 = 220
	buttonHeight float32 = 56
	buttonGap    float32 = 24

	titleSize    = 56.0
	subtitleSize = 22.0
)

// ButtonSystem drives menu buttons: hover and press feedback from the pointer
// snapshot, and the button's action on click. Runs in every mode; it is a
// no-op while no buttons exist.
type ButtonSystem struct {
	Pointer  ecs.Singleton[PointerState]
	Book     ecs.Singleton[LevelBook]
	Director ecs.Singleton[Director]
	Quit     ecs.Singleton[QuitRequest]

	Buttons ecs.Query[struct {
		Button *Button
	}]
}

func (s *ButtonSystem) Execute(frame *ecs.UpdateFrame) {
	pointer := s.Pointer.Get()
	if pointer.UICaptured {
		return
	}

	for item := range s.Buttons.Values() {
		button := item.Button
		if !button.Contains(pointer.ScreenX, pointer.ScreenY) {
			button.State = ButtonNormal
			continue
		}

		if !pointer.Clicked {
			button.State = ButtonHovered
			continue
		}

		button.State = ButtonPressed
		s.perform(button.Action)
	}
}

func (s *ButtonSystem) perform(action ButtonAction) {
	director := s.Director.Get()

	switch action {
	case ActionPlay:
		s.Book.Get().Rewind()
		director.Set(ModeLoading)
	case ActionQuit:
		s.Quit.Get().Requested = true
	case ActionNextLevel:
		if s.Book.Get().Advance() {
			director.Set(ModeLoading)
		} else {
			director.Set(ModeGameWon)
		}
	case ActionRetry:
		director.Set(ModeLoading)
	case ActionMainMenu:
		director.Set(ModeMainMenu)
	}
}

// screenSpec describes one menu screen: a title, an optional subtitle and a
// vertical stack of buttons.
type screenSpec struct {
	title    string
	subtitle string
	buttons  []buttonSpec
}

type buttonSpec struct {
	label  string
	action ButtonAction
}

// InstallScreens registers the enter/exit hooks that build and tear down the
// menu screens. Entities spawned by a screen carry a ScreenTag so the exit
// hook can find them again.
func InstallScreens(director *Director, storage *ecs.Storage) {
	screens := map[GameMode]screenSpec{
		ModeMainMenu: {
			title:    "ECHONET",
			subtitle: "Route the echo from start to target",
			buttons: []buttonSpec{
				{"Play", ActionPlay},
				{"Quit", ActionQuit},
			},
		},
		ModeLevelComplete: {
			title:    "SIGNAL ROUTED",
			subtitle: "The echo reached its target",
			buttons: []buttonSpec{
				{"Next Level", ActionNextLevel},
				{"Main Menu", ActionMainMenu},
			},
		},
		ModeGameOver: {
			title:    "SIGNAL LOST",
			subtitle: "The network rejected your routing",
			buttons: []buttonSpec{
				{"Retry", ActionRetry},
				{"Main Menu", ActionMainMenu},
			},
		},
		ModeGameWon: {
			title:    "ALL SIGNALS ROUTED",
			subtitle: "Every network in the grid is humming",
			buttons: []buttonSpec{
				{"Play Again", ActionPlay},
				{"Quit", ActionQuit},
			},
		},
	}

	tagged := ecs.NewView[struct {
		ecs.EntityId
		Tag *ScreenTag
	}](storage)

	for mode, spec := range screens {
		director.OnEnter(mode, buildScreen(mode, spec))
		director.OnExit(mode, func(frame *ecs.UpdateFrame) {
			for id, item := range tagged.Iter() {
				if item.Tag.Mode == mode {
					frame.Commands.Delete(id)
				}
			}
		})
	}
}

// buildScreen returns the enter hook that spawns a screen's labels and
// buttons, laid out around the viewport center.
func buildScreen(mode GameMode, spec screenSpec) ModeHook {
	return func(frame *ecs.UpdateFrame) {
		var viewport *Viewport
		if !frame.Storage.ReadSingleton(&viewport) {
			return
		}

		cx := float32(viewport.ScreenW) / 2
		cy := float32(viewport.ScreenH) / 2

		frame.Commands.Spawn(
			Label{Text: spec.title, X: cx, Y: cy - 160, Size: titleSize},
			ScreenTag{Mode: mode},
		)
		if spec.subtitle != "" {
			frame.Commands.Spawn(
				Label{Text: spec.subtitle, X: cx, Y: cy - 90, Size: subtitleSize},
				ScreenTag{Mode: mode},
			)
		}

		y := cy
		for _, b := range spec.buttons {
			frame.Commands.Spawn(
				Button{
					Label:  b.label,
					Action: b.action,
					X:      cx - buttonWidth/2,
					Y:      y,
					W:      buttonWidth,
					H:      buttonHeight,
				},
				ScreenTag{Mode: mode},
			)
			y += buttonHeight + buttonGap
		}
	}
}
