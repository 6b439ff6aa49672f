package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/echonet/ecs"
)

func TestEntityRefTracksDeletion(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Transform{X: 1})
	ref := storage.CreateEntityRef(id)

	assert.True(t, ref.Alive())
	assert.Equal(t, id, ref.Id)

	storage.Delete(id)

	assert.False(t, ref.Alive())
	assert.Equal(t, ecs.EntityId(0), ref.Id)
}

func TestEntityRefIsShared(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Transform{})
	first := storage.CreateEntityRef(id)
	second := storage.CreateEntityRef(id)

	assert.Same(t, first, second)
}

func TestEntityRefFollowsArchetypeMove(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Transform{X: 5})
	ref := storage.CreateEntityRef(id)

	newId := storage.AddComponent(id, Motion{DX: 2})

	assert.True(t, ref.Alive())
	assert.Equal(t, newId, ref.Id)
	assert.Equal(t, float32(5), ecs.ReadComponent[Transform](storage, ref.Id).X)
}

func TestEntityRefForUnknownEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ref := storage.CreateEntityRef(ecs.NewEntityId(12345, 0))
	assert.Nil(t, ref)

	// A nil ref is dead, not a crash.
	assert.False(t, ref.Alive())
}

func TestResolveEntityRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Transform{})
	ref := storage.CreateEntityRef(id)

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)

	storage.Delete(id)
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)

	_, ok = storage.ResolveEntityRef(nil)
	assert.False(t, ok)
}

func TestInvalidateEntityRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Transform{})
	ref := storage.CreateEntityRef(id)

	assert.True(t, storage.InvalidateEntityRef(ref))
	assert.False(t, ref.Alive())
	assert.False(t, storage.InvalidateEntityRef(ref))

	// The entity itself is untouched.
	assert.NotNil(t, ecs.ReadComponent[Transform](storage, id))
}
