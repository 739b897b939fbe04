package ecs

import "unsafe"

// Storage is the raw memory backend: one column per catalog type, resizable
// and semi-contiguous. It never reads or validates presence bits; the World
// owns those.
type Storage struct {
	registry *ComponentRegistry
	cols     []column
	cap      int
}

// NewStorage builds storage for the given catalog and seals it.
func NewStorage(registry *ComponentRegistry) *Storage {
	registry.seal()
	cols := make([]column, registry.Len())
	for i := range cols {
		cols[i] = registry.infos[i].newColumn()
	}
	return &Storage{registry: registry, cols: cols}
}

// Registry returns the catalog this storage was built from.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Resize ensures n entity slots fit in every column. Pointers previously
// returned for indices below the old capacity remain valid.
func (s *Storage) Resize(n int) {
	if n <= s.cap {
		return
	}
	for _, c := range s.cols {
		c.ensure(n)
	}
	s.cap = n
}

// Cap returns the number of entity slots currently reserved.
func (s *Storage) Cap() int {
	return s.cap
}

// Reset releases all backing memory. Drop hooks do not run here; callers
// destroy live components first (World.Reset does).
func (s *Storage) Reset() {
	for _, c := range s.cols {
		c.reset()
	}
	s.cap = 0
}

// Optimize compacts every packed column into entity-index order.
func (s *Storage) Optimize() {
	for _, c := range s.cols {
		c.optimize()
	}
}

// destroyPresent destroys, in catalog order, every component the mask marks
// present at index.
func (s *Storage) destroyPresent(mask Mask, index uint32) {
	mask.ForEach(func(id ComponentID) {
		s.cols[id].destroy(index)
	})
}

// applyPresent invokes fn for each present component at index, in catalog
// order, with a pointer to the live value.
func (s *Storage) applyPresent(mask Mask, index uint32, fn func(ComponentID, unsafe.Pointer)) {
	mask.ForEach(func(id ComponentID) {
		fn(id, s.cols[id].ptr(index))
	})
}

// GetSlot returns a pointer into the slot reserved for T at the given entity
// index. It does not consult presence bits; reading an unset slot yields the
// zero value (block layout) and is a usage error for packed columns.
func GetSlot[T any](s *Storage, index uint32) *T {
	return (*T)(s.cols[ComponentIDFor[T](s.registry)].ptr(index))
}

// CreateAt constructs v in place at the slot for the entity index and returns
// its address. Precondition: the slot is not already live.
func CreateAt[T any](s *Storage, index uint32, v T) *T {
	p := (*T)(s.cols[ComponentIDFor[T](s.registry)].create(index))
	*p = v
	return p
}

// DestroyAt runs T's drop hook and releases the slot at the entity index.
// Precondition: the slot is live.
func DestroyAt[T any](s *Storage, index uint32) {
	s.cols[ComponentIDFor[T](s.registry)].destroy(index)
}
