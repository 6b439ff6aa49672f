package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed accessor for a single component instance that lives
// outside any entity: global game state, configuration, shared buffers.
// Declared as a system field it is wired up by the Scheduler at registration.
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton returns an accessor for T's singleton, creating it in storage
// first if needed (from initializer when given, zero value otherwise). The
// singleton is guaranteed to exist afterwards.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	var zero T
	componentType := reflect.TypeOf(zero)

	entry := storage.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
		entry = storage.getSingletonEntry(componentType)
	}

	return &Singleton[T]{
		storage:       storage,
		componentPtr:  entry.dataPtr,
		componentType: componentType,
	}
}

// Init attaches the accessor to a storage. The Scheduler calls this for
// Singleton fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	var zero T
	s.storage = storage
	s.componentType = reflect.TypeOf(zero)
	s.refresh()
}

// Get returns the singleton, or nil when it has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.refresh()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

// Exists reports whether the singleton is present in storage.
func (s *Singleton[T]) Exists() bool {
	if s.componentPtr == nil {
		s.refresh()
	}
	return s.componentPtr != nil
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(s.componentType); entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}
