package game_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/echonet/game"
)

func TestBuiltinLevelsAreWellFormed(t *testing.T) {
	levels := game.BuiltinLevels()
	assert.NotEmpty(t, levels)

	for _, level := range levels {
		t.Run(fmt.Sprintf("level %d", level.ID), func(t *testing.T) {
			n := len(level.Nodes)

			for _, link := range level.Links {
				assert.GreaterOrEqual(t, link[0], 0)
				assert.Less(t, link[0], n)
				assert.GreaterOrEqual(t, link[1], 0)
				assert.Less(t, link[1], n)
				assert.NotEqual(t, link[0], link[1], "self-loop")
			}

			assert.Equal(t, game.NodeStart, level.Nodes[level.Start].State)
			assert.Equal(t, game.NodeTarget, level.Nodes[level.Target].State)
			assert.GreaterOrEqual(t, level.TimeLimit, 0.0)
			assert.NotEmpty(t, level.Name)
			assert.NotEmpty(t, level.Instructions)

			for _, id := range level.Sequence {
				assert.GreaterOrEqual(t, id, 0)
				assert.Less(t, id, n)
			}
		})
	}
}

func TestBuiltinLevelsAreSolvable(t *testing.T) {
	for _, level := range game.BuiltinLevels() {
		plan := level.ClickPlan()
		assert.NotNil(t, plan, "level %d has no click plan", level.ID)

		// Activating everything in the plan must yield a conductive route.
		conductive := map[int]bool{level.Start: true, level.Target: true}
		for _, id := range plan {
			conductive[id] = true
		}
		// The plan's final node is the target on every builtin level.
		assert.Equal(t, level.Target, plan[len(plan)-1], "level %d", level.ID)
	}
}

func TestBuiltinLevelSequencesMatchOrderBadges(t *testing.T) {
	for _, level := range game.BuiltinLevels() {
		for i, spec := range level.Nodes {
			if spec.Order < 0 {
				continue
			}
			// A badge with order k means node i is the k-th required click.
			assert.Less(t, spec.Order, len(level.Sequence), "level %d node %d", level.ID, i)
			assert.Equal(t, i, level.Sequence[spec.Order], "level %d badge %d", level.ID, spec.Order)
		}
	}
}

func TestLevelBookCursor(t *testing.T) {
	book := game.LevelBook{Levels: game.BuiltinLevels()}

	assert.Equal(t, 1, book.CurrentLevel().ID)

	for book.Advance() {
	}
	assert.Equal(t, len(book.Levels)-1, book.Current)
	assert.False(t, book.Advance())

	book.Rewind()
	assert.Equal(t, 0, book.Current)

	book.Current = len(book.Levels)
	assert.Nil(t, book.CurrentLevel())
}
