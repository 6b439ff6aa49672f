package ecs

import (
	"iter"
	"reflect"
)

// componentColumn is the type-erased face of a component column. One column
// holds every instance of a single component type within an archetype.
type componentColumn interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Compact() map[int]int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to column factories. Every Storage
// owns its own registry, so independent ECS instances never interfere.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent makes T usable as a component in storages built on r.
// Spawning an unregistered component type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	r.factories[t] = func() componentColumn {
		return &column[T]{}
	}
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentColumn {
	return r.factories[t]
}

const columnPageSize = 64

// column stores components of type T in fixed-size pages. Slot indices are
// stable: deletion leaves a hole that later spawns may refill.
type column[T any] struct {
	pages     [][columnPageSize]T
	occupied  [][columnPageSize]bool
	freeSlots []int
	nextIndex int
}

// Append stores a component and returns the slot index it landed in. Freed
// slots are reused before the column grows.
func (c *column[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	index := c.nextIndex
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		c.nextIndex++
	}

	page, slot := index/columnPageSize, index%columnPageSize
	if page >= len(c.pages) {
		c.pages = append(c.pages, [columnPageSize]T{})
		c.occupied = append(c.occupied, [columnPageSize]bool{})
	}

	c.pages[page][slot] = value
	c.occupied[page][slot] = true
	return index
}

// Get returns a pointer to the component at index, or nil for empty slots.
func (c *column[T]) Get(index int) any {
	if index < 0 {
		return nil
	}
	page, slot := index/columnPageSize, index%columnPageSize
	if page >= len(c.pages) || !c.occupied[page][slot] {
		return nil
	}
	return &c.pages[page][slot]
}

// Delete empties the slot at index and queues it for reuse.
func (c *column[T]) Delete(index int) {
	if index < 0 {
		return
	}
	page, slot := index/columnPageSize, index%columnPageSize
	if page >= len(c.pages) || !c.occupied[page][slot] {
		return
	}
	var zero T
	c.pages[page][slot] = zero
	c.occupied[page][slot] = false
	c.freeSlots = append(c.freeSlots, index)
}

// Has reports whether a live component occupies the slot at index.
func (c *column[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	page, slot := index/columnPageSize, index%columnPageSize
	return page < len(c.pages) && c.occupied[page][slot]
}

// Compact squeezes out holes and returns the old-index -> new-index mapping
// for the slots that moved.
func (c *column[T]) Compact() map[int]int {
	moved := make(map[int]int)

	live := c.nextIndex - len(c.freeSlots)
	if live <= 0 {
		c.pages = make([][columnPageSize]T, 1)
		c.occupied = make([][columnPageSize]bool, 1)
		c.freeSlots = nil
		c.nextIndex = 0
		return moved
	}

	pageCount := (live + columnPageSize - 1) / columnPageSize
	newPages := make([][columnPageSize]T, pageCount)
	newOccupied := make([][columnPageSize]bool, pageCount)

	write := 0
	for read := 0; read < c.nextIndex; read++ {
		rp, rs := read/columnPageSize, read%columnPageSize
		if !c.occupied[rp][rs] {
			continue
		}
		wp, ws := write/columnPageSize, write%columnPageSize
		newPages[wp][ws] = c.pages[rp][rs]
		newOccupied[wp][ws] = true
		moved[read] = write
		write++
	}

	c.pages = newPages
	c.occupied = newOccupied
	c.freeSlots = nil
	c.nextIndex = write
	return moved
}

// Iter yields the index of every occupied slot in ascending order.
func (c *column[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.nextIndex; i++ {
			page, slot := i/columnPageSize, i%columnPageSize
			if page >= len(c.occupied) {
				continue
			}
			if c.occupied[page][slot] && !yield(i) {
				return
			}
		}
	}
}
