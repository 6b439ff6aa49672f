package ecs

// EntityId identifies an entity. The upper 32 bits carry the archetype id and
// the lower 32 bits the slot index inside that archetype.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype id and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot index half of the id.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a stable handle to an entity. Unlike a raw EntityId it survives
// archetype moves (AddComponent/RemoveComponent) and reports deletion: a ref
// with Id == 0 points at nothing anymore.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Alive reports whether the referenced entity still exists.
func (r *EntityRef) Alive() bool {
	return r != nil && r.Id != 0
}
