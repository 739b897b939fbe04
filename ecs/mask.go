package ecs

import "math/bits"

// MaxComponentTypes is the maximum number of component types a registry can
// hold. The mask width is fixed at 256 bits (4 words).
const MaxComponentTypes = 256

const maskWords = MaxComponentTypes / 64

// Mask is a per-entity component presence bitset. Bit k is set iff the
// component with ComponentID k is present on the entity.
type Mask [maskWords]uint64

// Set enables the bit for the given component ID.
func (m *Mask) Set(id ComponentID) {
	m[id>>6] |= uint64(1) << (id & 63)
}

// Clear disables the bit for the given component ID.
func (m *Mask) Clear(id ComponentID) {
	m[id>>6] &^= uint64(1) << (id & 63)
}

// Has reports whether the bit for the given component ID is set.
func (m Mask) Has(id ComponentID) bool {
	return m[id>>6]&(uint64(1)<<(id&63)) != 0
}

// ContainsAll reports whether every bit set in sub is also set in m. This is
// the filtered-iteration match test: (m & sub) == sub.
func (m Mask) ContainsAll(sub Mask) bool {
	return m[0]&sub[0] == sub[0] &&
		m[1]&sub[1] == sub[1] &&
		m[2]&sub[2] == sub[2] &&
		m[3]&sub[3] == sub[3]
}

// IsZero reports whether no bit is set.
func (m Mask) IsZero() bool {
	return m[0]|m[1]|m[2]|m[3] == 0
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}

// ForEach calls fn for every set bit in ascending component ID order.
func (m Mask) ForEach(fn func(ComponentID)) {
	for w := 0; w < maskWords; w++ {
		word := m[w]
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			fn(ComponentID(w<<6 + bit))
			word &= word - 1
		}
	}
}

// MaskOf builds a mask from a set of component IDs.
func MaskOf(ids ...ComponentID) Mask {
	var m Mask
	for _, id := range ids {
		m.Set(id)
	}
	return m
}
