package ecs

import (
	"iter"
	"unsafe"
)

// Query is a View plus per-frame caching: matching archetypes are remembered
// until the archetype set changes, and entity/component arrays are rebuilt
// once per frame by the Scheduler (via Execute) before the owning system runs.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a query for standalone use. Systems declare Query fields
// instead and let the Scheduler initialize them.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init wires the query to a storage. The Scheduler calls this for Query
// fields of registered systems.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the entity and component caches. The Scheduler calls this
// before every frame's system execution.
func (q *Query[T]) Execute() {
	if len(q.storage.archetypes) != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = len(q.storage.archetypes)
	}

	if q.cachedArchetypes == nil {
		q.cachedArchetypes = make([]*Archetype, 0)
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

func (q *Query[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.columns) == 0 {
			return
		}

		columnIndices := q.view.buildColumnIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)

		for entityIndex := range archetype.columns[0].Iter() {
			if !q.view.populateResult(resultPtr, archetype, entityIndex, columnIndices) {
				continue
			}

			entityId := NewEntityId(archetype.id, uint32(entityIndex))
			q.view.setId(resultPtr, entityId)
			if !yield(entityId, result) {
				return
			}
		}
	}
}

// Iter yields (EntityId, view struct) pairs from this frame's cache. Panics
// if Execute has not run this frame.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("ecs: Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values yields only the view structs from this frame's cache. Panics if
// Execute has not run this frame.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("ecs: Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Count returns the number of entities in this frame's cache.
func (q *Query[T]) Count() int {
	if !q.cacheValid {
		panic("ecs: Query.Count() called before Query.Execute()")
	}
	return len(q.cachedEntities)
}
