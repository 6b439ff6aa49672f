package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/echonet/ecs"
	"github.com/plus3/echonet/game"
)

const flowDeltaTime = 1.0 / 60.0

// flowHarness runs the full gameplay stack headlessly, feeding clicks through
// the pointer snapshot the way the real input system would.
type flowHarness struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	director  *game.Director
	book      *game.LevelBook
	pointer   *game.PointerState
	log       *game.ActivationLog
	timer     *game.Countdown
}

func newFlowHarness(t *testing.T) *flowHarness {
	t.Helper()

	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	director := game.InstallResources(storage, game.BuiltinLevels(), 800, 600)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.DirectorSystem{})
	game.RegisterGameplaySystems(scheduler)
	game.InstallGameplayTeardown(director, storage)

	h := &flowHarness{storage: storage, scheduler: scheduler, director: director}
	require.True(t, storage.ReadSingleton(&h.book))
	require.True(t, storage.ReadSingleton(&h.pointer))
	require.True(t, storage.ReadSingleton(&h.log))
	require.True(t, storage.ReadSingleton(&h.timer))
	return h
}

func (h *flowHarness) step(frames int) {
	for i := 0; i < frames; i++ {
		h.scheduler.Once(flowDeltaTime)
	}
}

// startLevel drives the director from the menu into the given level.
func (h *flowHarness) startLevel(t *testing.T, index int) {
	t.Helper()

	h.book.Current = index
	h.step(1) // settle the initial mode
	h.director.Set(game.ModeLoading)
	h.step(2) // apply the transition, then load and enter play
	require.Equal(t, game.ModePlaying, h.director.Current)
}

// click simulates one click on the node with the given logical id.
func (h *flowHarness) click(t *testing.T, nodeID int) {
	t.Helper()

	level := h.book.CurrentLevel()
	require.NotNil(t, level)
	require.Less(t, nodeID, len(level.Nodes))

	h.pointer.WorldX = level.Nodes[nodeID].X
	h.pointer.WorldY = level.Nodes[nodeID].Y
	h.pointer.Clicked = true
	h.step(1)
	h.pointer.Clicked = false
}

// stepUntil runs frames until the predicate holds, failing after maxFrames.
func (h *flowHarness) stepUntil(t *testing.T, maxFrames int, pred func() bool) {
	t.Helper()

	for i := 0; i < maxFrames; i++ {
		if pred() {
			return
		}
		h.step(1)
	}
	t.Fatalf("condition not reached within %d frames (mode %s)", maxFrames, h.director.Current)
}

func TestLevelLoadSpawnsTheBoard(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 0)

	level := h.book.CurrentLevel()
	nodes := ecs.NewView[struct{ *game.Node }](h.storage)
	count := 0
	for range nodes.Iter() {
		count++
	}
	assert.Equal(t, len(level.Nodes), count)

	connections := ecs.NewView[struct{ *game.Connection }](h.storage)
	count = 0
	for range connections.Iter() {
		count++
	}
	assert.Equal(t, len(level.Links), count)

	assert.True(t, h.timer.Enabled)
	assert.Equal(t, level.TimeLimit, h.timer.Remaining)
}

func TestCompleteFirstLevel(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 0)

	for _, id := range h.book.CurrentLevel().ClickPlan() {
		h.click(t, id)
	}
	assert.Equal(t, []int{0, 1, 2}, h.log.Ids)

	h.stepUntil(t, 600, func() bool { return h.director.Current == game.ModeLevelComplete })
}

func TestClickingActivatesNode(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 0)

	h.click(t, 1)

	found := false
	view := ecs.NewView[struct {
		Node  *game.Node
		State *game.NodeState
	}](h.storage)
	for item := range view.Values() {
		if item.Node.ID == 1 {
			found = true
			assert.Equal(t, game.NodeActive, *item.State)
		}
	}
	assert.True(t, found)
	assert.Equal(t, []int{1}, h.log.Ids)
}

func TestClickingEmptySpaceDoesNothing(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 0)

	h.pointer.WorldX = 9999
	h.pointer.WorldY = 9999
	h.pointer.Clicked = true
	h.step(1)
	h.pointer.Clicked = false

	assert.Empty(t, h.log.Ids)
}

func TestWrongSequenceFailsTheLevel(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 1) // the fork level requires 0, 1, 3

	h.click(t, 0)
	h.click(t, 1)
	h.click(t, 2) // the decoy

	h.stepUntil(t, 10, func() bool { return h.director.Current == game.ModeGameOver })
}

func TestTimeoutFailsTheLevel(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 0)

	limit := h.book.CurrentLevel().TimeLimit
	for elapsed := 0.0; elapsed < limit+1; elapsed += 1.0 {
		h.scheduler.Once(1.0)
	}
	h.step(2)

	assert.Equal(t, game.ModeGameOver, h.director.Current)
}

func TestUntimedLevelHasNoCountdown(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 3)

	assert.False(t, h.timer.Enabled)

	h.scheduler.Once(120) // two simulated minutes
	h.step(2)
	assert.Equal(t, game.ModePlaying, h.director.Current)
}

func TestFreeRouteLevelCompletesOnArrival(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 3)

	for _, id := range h.book.CurrentLevel().ClickPlan() {
		h.click(t, id)
	}

	h.stepUntil(t, 1200, func() bool { return h.director.Current == game.ModeLevelComplete })
}

func TestEchoTraversalLightsConnections(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 0)

	for _, id := range h.book.CurrentLevel().ClickPlan() {
		h.click(t, id)
	}

	// The first link lights up as soon as the echo crosses it, mid-flight.
	view := ecs.NewView[struct{ *game.Connection }](h.storage)
	h.stepUntil(t, 600, func() bool {
		for item := range view.Values() {
			if item.Connection.Active {
				return true
			}
		}
		return false
	})
	assert.Equal(t, game.ModePlaying, h.director.Current)
}

func TestLoadingPastTheEndWinsTheGame(t *testing.T) {
	h := newFlowHarness(t)

	h.book.Current = len(h.book.Levels)
	h.step(1)
	h.director.Set(game.ModeLoading)
	h.step(2)

	assert.Equal(t, game.ModeGameWon, h.director.Current)
}

func TestBoardTearsDownOnExit(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 0)

	h.director.Set(game.ModeMainMenu)
	h.step(2)

	nodes := ecs.NewView[struct{ *game.Node }](h.storage)
	count := 0
	for range nodes.Iter() {
		count++
	}
	assert.Zero(t, count)
}

func TestActivationLogDeduplicates(t *testing.T) {
	h := newFlowHarness(t)
	h.startLevel(t, 0)

	h.click(t, 1)
	h.click(t, 1)

	assert.Equal(t, []int{1}, h.log.Ids)
}
