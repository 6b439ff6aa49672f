package ecs

import (
	"reflect"
	"unsafe"
	"weak"
)

// iface mirrors the runtime layout of an interface value. Used to pull the
// data pointer out of an any without an allocation.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// Storage owns all entities, grouped into archetypes, plus the singleton
// components that are not tied to any entity.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage backed by the given component registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Spawn creates an entity from the given components and returns its id.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetypeId := hashTypesToUint32(types)

	archetype, ok := s.archetypes[archetypeId]
	if !ok {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}

	return NewEntityId(archetypeId, archetype.Spawn(components))
}

// Delete removes the entity and everything attached to it.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

// GetComponent returns a pointer to the entity's component of compType, or
// nil when missing.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype carries compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// GetArchetype returns the archetype holding exactly the given component
// combination, or nil if no entity with that combination was ever spawned.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes is GetArchetype for callers that already hold the
// reflect.Types. The slice is sorted in place.
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sortTypes(types)
	return s.archetypes[hashTypesToUint32(types)]
}

// AddComponent moves the entity into the archetype that additionally carries
// the new component. Returns the entity's new id; live EntityRefs follow
// automatically.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]

	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sortTypes(newTypes)

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(id.Index(), typ))
		}
	}

	return s.moveEntity(id, oldArchetype, newTypes, components)
}

// RemoveComponent moves the entity into the archetype without compType. An
// entity whose last component is removed is deleted; 0 is returned then.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		oldArchetype.Delete(id.Index())
		return 0
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}

	return s.moveEntity(id, oldArchetype, newTypes, components)
}

// moveEntity respawns the entity's components under a new archetype and
// retargets its EntityRef, if one exists, before clearing the old slot.
func (s *Storage) moveEntity(id EntityId, oldArchetype *Archetype, newTypes []reflect.Type, components []any) EntityId {
	newArchetypeId := hashTypesToUint32(newTypes)
	newArchetype, ok := s.archetypes[newArchetypeId]
	if !ok {
		newArchetype = NewArchetype(newArchetypeId, newTypes, s.registry)
		s.archetypes[newArchetypeId] = newArchetype
	}

	weakPtr, hasRef := oldArchetype.refs.Get(id)

	newId := NewEntityId(newArchetypeId, newArchetype.Spawn(components))

	if hasRef {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = newArchetype
		}
		oldArchetype.refs.Del(id)
		newArchetype.refs.Put(newId, weakPtr)
	}

	oldArchetype.Delete(id.Index())
	return newId
}

// CreateEntityRef returns a stable handle to the entity. Repeated calls for
// the same live entity return the same handle.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the entity id behind a ref, or false when the ref
// is nil or its entity has been deleted.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches a ref from its entity without deleting the
// entity. Returns false if the ref was already dead.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.Id == 0 {
		return false
	}

	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetypes returns the live archetype map, keyed by archetype id. The
// map is storage-owned; callers must treat it as read-only.
func (s *Storage) GetArchetypes() map[uint32]*Archetype {
	return s.archetypes
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// AddSingleton stores (or replaces) the singleton of value's type.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ.Kind() == reflect.Ptr {
		panic("ecs: singletons are stored by value, not pointer")
	}

	boxed := reflect.New(typ)
	boxed.Elem().Set(reflect.ValueOf(value))

	s.singletons[typ] = &singletonEntry{
		typ:     typ,
		dataPtr: boxed.UnsafePointer(),
	}
}

// ReadSingleton fills target, which must be a non-nil **T, with a pointer to
// the stored T singleton. Returns false when no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.Elem().Kind() != reflect.Ptr {
		panic("ecs: ReadSingleton target must be a pointer to a component pointer")
	}

	entry := s.getSingletonEntry(targetValue.Elem().Type().Elem())
	if entry == nil {
		return false
	}

	targetValue.Elem().Set(reflect.NewAt(entry.typ, entry.dataPtr))
	return true
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// extractComponentTypes validates the components and returns their types in
// canonical (sorted) order.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		// Structs and primitives are fine; reference kinds are not value types.
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sortTypes(types)
	return types
}

// hashTypesToUint32 derives the archetype id for a sorted type set via FNV-1a
// over the types' runtime identity pointers.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is the read side of Storage, for helpers that only look up
// components.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to the entity's T component, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp := reader.GetComponent(entityId, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
