package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func forkLevel() *Level {
	return &Level{
		ID:     2,
		Nodes:  make([]NodeSpec, 4),
		Links:  [][2]int{{0, 1}, {1, 2}, {1, 3}},
		Start:  0,
		Target: 3,
	}
}

func TestShortestConductivePath(t *testing.T) {
	level := forkLevel()

	t.Run("no route while the middle node is dark", func(t *testing.T) {
		conductive := map[int]bool{0: true, 3: true}
		assert.Nil(t, shortestConductivePath(level, conductive))
	})

	t.Run("route once the middle node conducts", func(t *testing.T) {
		conductive := map[int]bool{0: true, 1: true, 3: true}
		assert.Equal(t, []int{0, 1, 3}, shortestConductivePath(level, conductive))
	})

	t.Run("decoy branch does not divert the route", func(t *testing.T) {
		conductive := map[int]bool{0: true, 1: true, 2: true, 3: true}
		assert.Equal(t, []int{0, 1, 3}, shortestConductivePath(level, conductive))
	})

	t.Run("dark start or target means no route", func(t *testing.T) {
		assert.Nil(t, shortestConductivePath(level, map[int]bool{1: true, 3: true}))
		assert.Nil(t, shortestConductivePath(level, map[int]bool{0: true, 1: true}))
	})
}

func TestShortestConductivePathPrefersFewerHops(t *testing.T) {
	level := &Level{
		Nodes:  make([]NodeSpec, 5),
		Links:  [][2]int{{0, 1}, {1, 2}, {2, 4}, {0, 3}, {3, 4}},
		Start:  0,
		Target: 4,
	}
	all := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}

	assert.Equal(t, []int{0, 3, 4}, shortestConductivePath(level, all))
}

func TestClickPlan(t *testing.T) {
	t.Run("sequence levels use the sequence", func(t *testing.T) {
		level := forkLevel()
		level.Sequence = []int{0, 1, 3}
		assert.Equal(t, []int{0, 1, 3}, level.ClickPlan())
	})

	t.Run("free levels use the shortest route", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 3}, forkLevel().ClickPlan())
	})
}
