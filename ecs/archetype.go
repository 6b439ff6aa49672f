package ecs

import (
	"reflect"
	"slices"
	"sort"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype groups every entity that carries the exact same set of component
// types. Each component type gets one column; an entity occupies the same slot
// index in all of them.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []componentColumn
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype builds an archetype for the given (sorted) component types.
// Every type must already be registered.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](256),
	}

	for i, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("ecs: component type " + typ.String() + " not registered")
		}
		a.columns[i] = factory()
	}

	return a
}

// Spawn stores the components into their columns and returns the shared slot
// index. All columns hand out the same index because they fill in lockstep.
func (a *Archetype) Spawn(components []any) uint32 {
	var slot int
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}
		for i, typ := range a.types {
			if typ == compType {
				slot = a.columns[i].Append(comp)
			}
		}
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the entity's component of the given type,
// or nil when the archetype lacks that type or the slot is empty.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	for i, typ := range a.types {
		if typ == compType {
			return a.columns[i].Get(int(entityIndex))
		}
	}
	return nil
}

// Delete clears the entity's slot in every column. Slot indices of other
// entities are untouched. Any live EntityRef is invalidated.
func (a *Archetype) Delete(entityIndex uint32) {
	entityId := NewEntityId(a.id, entityIndex)

	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, col := range a.columns {
		col.Delete(int(entityIndex))
	}
}

// HasComponent reports whether the archetype carries the component type.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's id.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the archetype's sorted component types.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	n := 0
	for range a.columns[0].Iter() {
		n++
	}
	return n
}

// Compact defragments every column. EntityRefs are retargeted to the new slot
// indices; raw EntityIds held elsewhere become stale.
func (a *Archetype) Compact() {
	if len(a.columns) == 0 {
		return
	}

	// The first column's mapping is canonical; the others move identically.
	moved := a.columns[0].Compact()
	for i := 1; i < len(a.columns); i++ {
		a.columns[i].Compact()
	}

	retargeted := make(map[EntityId]weak.Pointer[EntityRef])
	for oldIdx, newIdx := range moved {
		oldId := NewEntityId(a.id, uint32(oldIdx))
		weakPtr, ok := a.refs.Get(oldId)
		if !ok {
			continue
		}
		if ref := weakPtr.Value(); ref != nil {
			newId := NewEntityId(a.id, uint32(newIdx))
			ref.Id = newId
			retargeted[newId] = weakPtr
		}
	}

	a.refs.Clear()
	for id, weakPtr := range retargeted {
		a.refs.Put(id, weakPtr)
	}
}

// Iter yields the EntityId of every live entity in the archetype.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func sortTypes(types []reflect.Type) {
	sort.Sort(byTypeName(types))
}
