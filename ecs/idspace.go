package ecs

// idSpace allocates, recycles and versions entity slot indices. Versions start
// at 1 on first allocation and are bumped on release, so every ID handed out
// for a slot is permanently invalidated when the slot is recycled.
type idSpace struct {
	versions  []uint32
	freeList  []uint32
	nextIndex uint32
}

// allocate pops a recycled index from the free list tail, or extends the index
// space by one. The returned version is always >= 1.
func (s *idSpace) allocate() (uint32, uint32) {
	var index uint32
	if n := len(s.freeList); n > 0 {
		index = s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
	} else {
		index = s.nextIndex
		s.nextIndex++
		if int(index) >= len(s.versions) {
			s.grow(int(index) + 1)
		}
	}
	s.versions[index]++
	return index, s.versions[index]
}

// release bumps the slot's version, invalidating every outstanding ID for it,
// and pushes the index onto the free list for reuse.
func (s *idSpace) release(index uint32) {
	s.versions[index]++
	s.freeList = append(s.freeList, index)
}

// valid reports whether (index, version) names the slot's current generation.
func (s *idSpace) valid(index uint32, version uint32) bool {
	return int(index) < len(s.versions) && s.versions[index] == version
}

// idFor wraps the slot's current generation into a fresh EntityId.
func (s *idSpace) idFor(index uint32) EntityId {
	return NewEntityId(index, s.versions[index])
}

// reserve grows the version array so that capacity n fits, without allocating
// any indices. Used by CreateMany to size parallel arrays once.
func (s *idSpace) reserve(n int) {
	if n > len(s.versions) {
		s.grow(n)
	}
}

func (s *idSpace) grow(n int) {
	if cap(s.versions) >= n {
		s.versions = s.versions[:n]
		return
	}
	grown := make([]uint32, n, max(n, 2*cap(s.versions)))
	copy(grown, s.versions)
	s.versions = grown
}

// capacity is the number of slots ever materialized.
func (s *idSpace) capacity() int {
	return len(s.versions)
}

// live is the number of slots currently allocated.
func (s *idSpace) live() int {
	return int(s.nextIndex) - len(s.freeList)
}

func (s *idSpace) reset() {
	s.versions = s.versions[:0]
	s.freeList = s.freeList[:0]
	s.nextIndex = 0
}
