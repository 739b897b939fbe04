package ecs

// EntityId encodes both the slot index (lower 32 bits) and the generation
// version (upper 32 bits). Versions start at 1, so the zero value never names
// a live entity and doubles as the invalid sentinel.
type EntityId uint64

// InvalidId is the sentinel for "no entity".
const InvalidId EntityId = 0

// NewEntityId creates an EntityId from a slot index and a version.
func NewEntityId(index uint32, version uint32) EntityId {
	return EntityId(uint64(version)<<32 | uint64(index))
}

// Index extracts the slot index from the entity ID.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Version extracts the generation version from the entity ID.
func (e EntityId) Version() uint32 {
	return uint32(e >> 32)
}

// Less orders IDs by raw 64-bit value, for use in sorted sets.
func (e EntityId) Less(other EntityId) bool {
	return e < other
}
