package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/echonet/ecs"
	"github.com/plus3/echonet/game"
)

func newDirectorHarness(t *testing.T) (*ecs.Storage, *ecs.Scheduler, *game.Director) {
	t.Helper()

	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	director := game.InstallResources(storage, game.BuiltinLevels(), 800, 600)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.DirectorSystem{})
	return storage, scheduler, director
}

func TestDirectorStartsInMainMenu(t *testing.T) {
	_, _, director := newDirectorHarness(t)
	assert.Equal(t, game.ModeMainMenu, director.Current)
}

func TestDirectorAppliesTransitionNextFrame(t *testing.T) {
	_, scheduler, director := newDirectorHarness(t)

	scheduler.Once(0) // settle the initial mode
	director.Set(game.ModeLoading)
	assert.Equal(t, game.ModeMainMenu, director.Current)

	scheduler.Once(0)
	assert.Equal(t, game.ModeLoading, director.Current)
}

func TestDirectorLastRequestWins(t *testing.T) {
	_, scheduler, director := newDirectorHarness(t)
	scheduler.Once(0)

	director.Set(game.ModeLoading)
	director.Set(game.ModeGameOver)
	scheduler.Once(0)

	assert.Equal(t, game.ModeGameOver, director.Current)
}

func TestDirectorHookOrder(t *testing.T) {
	_, scheduler, director := newDirectorHarness(t)

	var events []string
	director.OnEnter(game.ModeMainMenu, func(*ecs.UpdateFrame) {
		events = append(events, "enter main-menu")
	})
	director.OnExit(game.ModeMainMenu, func(*ecs.UpdateFrame) {
		events = append(events, "exit main-menu")
	})
	director.OnEnter(game.ModeLoading, func(*ecs.UpdateFrame) {
		events = append(events, "enter loading")
	})

	// The first frame fires the initial mode's enter hooks, once.
	scheduler.Once(0)
	scheduler.Once(0)
	assert.Equal(t, []string{"enter main-menu"}, events)

	director.Set(game.ModeLoading)
	scheduler.Once(0)
	assert.Equal(t, []string{"enter main-menu", "exit main-menu", "enter loading"}, events)
}

func TestDirectorIgnoresSelfTransition(t *testing.T) {
	_, scheduler, director := newDirectorHarness(t)

	var exits int
	director.OnExit(game.ModeMainMenu, func(*ecs.UpdateFrame) { exits++ })

	scheduler.Once(0)
	director.Set(game.ModeMainMenu)
	scheduler.Once(0)

	assert.Zero(t, exits)
	assert.Equal(t, game.ModeMainMenu, director.Current)
}

func TestInMode(t *testing.T) {
	storage, scheduler, director := newDirectorHarness(t)

	cond := game.InMode(game.ModePlaying)
	assert.False(t, cond(storage))

	scheduler.Once(0)
	director.Set(game.ModePlaying)
	scheduler.Once(0)

	assert.True(t, cond(storage))
}
