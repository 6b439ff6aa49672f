package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View matches entities that carry a specific combination of components.
// T must be a struct whose fields are pointers to component types; embedded
// fields are required, named fields may opt out with the `ecs:"optional"`
// tag. An ecs.EntityId field may be embedded to receive the entity's id.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffset    int // byte offset of an embedded EntityId field, -1 if none

	// Archetype id matching exactly the required component set, cached for
	// Spawn.
	cachedArchetypeId *uint32
}

var entityIdType = reflect.TypeOf(EntityId(0))

// NewView builds a view over storage for the struct type T.
func NewView[T any](storage *Storage) *View[T] {
	var zero T
	structType := reflect.TypeOf(zero)

	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{storage: storage, idOffset: -1}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = int(field.Offset)
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be pointer types or ecs.EntityId")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Fill populates ptr with the entity's components. Returns false when a
// required component is missing; optional fields are nil then.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}

	// Write through pre-computed field offsets instead of reflection; this is
	// the hot path of every query iteration.
	structPtr := unsafe.Pointer(ptr)

	for i, componentType := range v.types {
		component := archetype.GetComponent(id.Index(), componentType)
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	v.setId(structPtr, id)
	return true
}

func (v *View[T]) setId(structPtr unsafe.Pointer, id EntityId) {
	if v.idOffset >= 0 {
		*(*EntityId)(unsafe.Pointer(uintptr(structPtr) + uintptr(v.idOffset))) = id
	}
}

// Get returns a populated view struct for the entity, or nil when it lacks a
// required component.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get through a stable EntityRef; nil for dead refs.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	entityId, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(entityId)
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, requiredType := range v.types {
		if v.optional[i] {
			continue
		}
		if !archetype.HasComponent(requiredType) {
			return false
		}
	}
	return true
}

// buildColumnIndices maps every view field to the archetype column that feeds
// it, -1 for absent optional components.
func (v *View[T]) buildColumnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, componentType := range v.types {
		indices[i] = -1
		for col, archetypeType := range archetype.types {
			if archetypeType == componentType {
				indices[i] = col
				break
			}
		}
	}
	return indices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, entityIndex int, columnIndices []int) bool {
	for i, col := range columnIndices {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		if col == -1 {
			if v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		component := archetype.columns[col].Get(entityIndex)
		if component == nil {
			if v.optional[i] {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Iter yields (EntityId, populated view struct) for every matching entity.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for archetypeId, archetype := range v.storage.archetypes {
			if !v.matchesArchetype(archetype) || len(archetype.columns) == 0 {
				continue
			}

			columnIndices := v.buildColumnIndices(archetype)

			var result T
			resultPtr := unsafe.Pointer(&result)

			for entityIndex := range archetype.columns[0].Iter() {
				if !v.populateResult(resultPtr, archetype, entityIndex, columnIndices) {
					continue
				}
				entityId := NewEntityId(archetypeId, uint32(entityIndex))
				v.setId(resultPtr, entityId)
				if !yield(entityId, result) {
					return
				}
			}
		}
	}
}

// Values yields only the populated view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates an entity from the components the view struct points at.
// Required fields must be non-nil; nil optional fields are skipped.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	componentTypes := make([]reflect.Type, 0, len(v.types))
	for i, componentType := range v.types {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])
		componentPtr := *(*unsafe.Pointer)(fieldPtr)

		if componentPtr == nil {
			if !v.optional[i] {
				panic("ecs: required component is nil in View.Spawn")
			}
			continue
		}

		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
		componentTypes = append(componentTypes, componentType)
	}

	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	// Sort components into canonical type order.
	for i := 0; i < len(componentTypes); i++ {
		for j := i + 1; j < len(componentTypes); j++ {
			if componentTypes[i].String() > componentTypes[j].String() {
				componentTypes[i], componentTypes[j] = componentTypes[j], componentTypes[i]
				components[i], components[j] = components[j], components[i]
			}
		}
	}

	var archetypeId uint32
	allRequired := len(componentTypes) == len(v.requiredTypes())
	if v.cachedArchetypeId != nil && allRequired {
		archetypeId = *v.cachedArchetypeId
	} else {
		archetypeId = hashTypesToUint32(componentTypes)
		if allRequired {
			v.cachedArchetypeId = &archetypeId
		}
	}

	archetype, ok := v.storage.archetypes[archetypeId]
	if !ok {
		archetype = NewArchetype(archetypeId, componentTypes, v.storage.registry)
		v.storage.archetypes[archetypeId] = archetype
	}

	return NewEntityId(archetypeId, archetype.Spawn(components))
}

func (v *View[T]) requiredTypes() []reflect.Type {
	required := make([]reflect.Type, 0, len(v.types))
	for i, typ := range v.types {
		if !v.optional[i] {
			required = append(required, typ)
		}
	}
	return required
}
