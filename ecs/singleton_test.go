package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/echonet/ecs"
)

func TestNewSingletonCreatesZeroValue(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	accessor := ecs.NewSingleton[Hitpoints](storage)

	assert.True(t, accessor.Exists())
	assert.Equal(t, 0, accessor.Get().Current)
}

func TestNewSingletonWithInitializer(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	accessor := ecs.NewSingleton[Hitpoints](storage, Hitpoints{Current: 3, Max: 9})

	assert.Equal(t, 3, accessor.Get().Current)
	assert.Equal(t, 9, accessor.Get().Max)
}

func TestNewSingletonKeepsExistingValue(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(Hitpoints{Current: 5})

	// The initializer must not clobber what is already stored.
	accessor := ecs.NewSingleton[Hitpoints](storage, Hitpoints{Current: 99})

	assert.Equal(t, 5, accessor.Get().Current)
}

func TestSingletonAccessorsShareStorage(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := ecs.NewSingleton[Hitpoints](storage)
	second := ecs.NewSingleton[Hitpoints](storage)

	first.Get().Current = 42
	assert.Equal(t, 42, second.Get().Current)
}

func TestSingletonInitBeforeAdd(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var accessor ecs.Singleton[Hitpoints]
	accessor.Init(storage)

	assert.False(t, accessor.Exists())
	assert.Nil(t, accessor.Get())

	// Added later: the accessor finds it on the next access.
	storage.AddSingleton(Hitpoints{Current: 7})
	assert.True(t, accessor.Exists())
	assert.Equal(t, 7, accessor.Get().Current)
}
