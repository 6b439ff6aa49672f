package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/echonet/ecs"
)

func TestQueryRequiresExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Transform }](storage)

	assert.Panics(t, func() {
		for range query.Iter() {
		}
	})
}

func TestQueryCachesFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Transform }](storage)

	storage.Spawn(Transform{X: 1})
	query.Execute()
	assert.Equal(t, 1, query.Count())

	// Spawns after Execute are invisible until the next Execute.
	storage.Spawn(Transform{X: 2})
	assert.Equal(t, 1, query.Count())

	query.Execute()
	assert.Equal(t, 2, query.Count())
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Transform }](storage)

	storage.Spawn(Transform{})
	query.Execute()
	assert.Equal(t, 1, query.Count())

	// A different component set creates a new archetype that still matches.
	storage.Spawn(Transform{}, Motion{})
	query.Execute()
	assert.Equal(t, 2, query.Count())
}

func TestQueryIterPairs(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct {
		*Hitpoints
	}](storage)

	a := storage.Spawn(Hitpoints{Current: 1})
	b := storage.Spawn(Hitpoints{Current: 2})

	query.Execute()

	seen := map[ecs.EntityId]int{}
	for id, item := range query.Iter() {
		seen[id] = item.Hitpoints.Current
	}
	assert.Equal(t, map[ecs.EntityId]int{a: 1, b: 2}, seen)
}

func TestQueryValuesMutate(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Hitpoints }](storage)

	id := storage.Spawn(Hitpoints{Current: 10})

	query.Execute()
	for item := range query.Values() {
		item.Hitpoints.Current = 7
	}

	assert.Equal(t, 7, ecs.ReadComponent[Hitpoints](storage, id).Current)
}
