package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/echonet/ecs"
)

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Transform{})
	storage.Spawn(Transform{})
	storage.Spawn(Transform{}, Motion{})
	storage.AddSingleton(Hitpoints{})

	stats := storage.CollectStats()

	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Contains(t, stats.SingletonTypes, "ecs_test.Hitpoints")
}

func TestCollectStatsCountsLiveEntitiesOnly(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	keep := storage.Spawn(Transform{})
	gone := storage.Spawn(Transform{})
	storage.Delete(gone)
	_ = keep

	stats := storage.CollectStats()
	assert.Equal(t, 1, stats.TotalEntityCount)
}
