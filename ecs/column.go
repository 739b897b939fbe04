package ecs

import (
	"sort"
	"unsafe"
)

// chunkSize is the number of entity slots per storage block.
const chunkSize = 64

// column is type-erased per-component-type storage. The mask owned by the
// World is the single source of truth for presence; columns only manage
// memory and never validate bits themselves.
type column interface {
	// ensure makes room for n entity slots.
	ensure(n int)
	// create materializes the slot for the entity index and returns a pointer
	// to zeroed memory. Precondition: the component bit is not set.
	create(index uint32) unsafe.Pointer
	// ptr returns the slot location. Precondition: the component bit is set,
	// except for the block layout where any reserved slot is addressable.
	ptr(index uint32) unsafe.Pointer
	// destroy runs the drop hook and releases the slot. Precondition: the
	// component bit was set.
	destroy(index uint32)
	// reset releases all backing memory. Pointer stability is void after.
	reset()
	// optimize improves iteration locality where the layout allows it.
	optimize()
}

// blockColumn is the default contiguous-block layout: slots live in chunks of
// chunkSize records addressed directly by entity index. New chunks never
// relocate old ones, so pointers stay stable across everything but reset.
// Chunks are allocated on first use, not on ensure, so a component type that
// is never assigned costs nothing.
type blockColumn[T any] struct {
	blocks []*[chunkSize]T
	drop   func(*T)
}

func (c *blockColumn[T]) ensure(n int) {
	need := (n + chunkSize - 1) / chunkSize
	for len(c.blocks) < need {
		c.blocks = append(c.blocks, nil)
	}
}

func (c *blockColumn[T]) slot(index uint32) *T {
	b := int(index) / chunkSize
	if b >= len(c.blocks) {
		c.ensure(int(index) + 1)
	}
	if c.blocks[b] == nil {
		c.blocks[b] = new([chunkSize]T)
	}
	return &c.blocks[b][int(index)%chunkSize]
}

func (c *blockColumn[T]) create(index uint32) unsafe.Pointer {
	return unsafe.Pointer(c.slot(index))
}

func (c *blockColumn[T]) ptr(index uint32) unsafe.Pointer {
	return unsafe.Pointer(c.slot(index))
}

func (c *blockColumn[T]) destroy(index uint32) {
	p := c.slot(index)
	if c.drop != nil {
		c.drop(p)
	}
	var zero T
	*p = zero
}

func (c *blockColumn[T]) reset() {
	c.blocks = nil
}

func (c *blockColumn[T]) optimize() {}

// packedColumn keeps records dense and cache-ordered: recs holds the live
// components, entityOf mirrors each record back to its entity index, and
// slotOf maps entity index to 1+record position (0 = absent). Destroy moves
// the tail record into the vacated slot, so pointers for this component type
// are invalidated by any destroy.
type packedColumn[T any] struct {
	recs     []T
	entityOf []uint32
	slotOf   []int32
	drop     func(*T)
}

func (c *packedColumn[T]) ensure(n int) {
	for len(c.slotOf) < n {
		c.slotOf = append(c.slotOf, 0)
	}
}

func (c *packedColumn[T]) create(index uint32) unsafe.Pointer {
	c.ensure(int(index) + 1)
	var zero T
	c.recs = append(c.recs, zero)
	c.entityOf = append(c.entityOf, index)
	c.slotOf[index] = int32(len(c.recs))
	return unsafe.Pointer(&c.recs[len(c.recs)-1])
}

func (c *packedColumn[T]) ptr(index uint32) unsafe.Pointer {
	return unsafe.Pointer(&c.recs[c.slotOf[index]-1])
}

func (c *packedColumn[T]) destroy(index uint32) {
	k := int(c.slotOf[index]) - 1
	if c.drop != nil {
		c.drop(&c.recs[k])
	}
	last := len(c.recs) - 1
	if k != last {
		// Move the tail record into the hole and fix up the mirrors.
		c.recs[k] = c.recs[last]
		c.entityOf[k] = c.entityOf[last]
		c.slotOf[c.entityOf[k]] = int32(k + 1)
	}
	var zero T
	c.recs[last] = zero
	c.recs = c.recs[:last]
	c.entityOf = c.entityOf[:last]
	c.slotOf[index] = 0
}

func (c *packedColumn[T]) reset() {
	c.recs = nil
	c.entityOf = nil
	c.slotOf = nil
}

// optimize sorts the records by entity index so multi-component scans touch
// this column in ascending address order.
func (c *packedColumn[T]) optimize() {
	order := make([]int, len(c.recs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return c.entityOf[order[a]] < c.entityOf[order[b]]
	})

	recs := make([]T, len(c.recs))
	entityOf := make([]uint32, len(c.entityOf))
	for to, from := range order {
		recs[to] = c.recs[from]
		entityOf[to] = c.entityOf[from]
		c.slotOf[entityOf[to]] = int32(to + 1)
	}
	c.recs = recs
	c.entityOf = entityOf
}
