package segment

// visitedSet tracks claimed vertices with a bitset and a dirty list so a
// set can be reused across growth passes without reallocating.
type visitedSet struct {
	bits  []uint64
	dirty []int
}

func newVisitedSet(capacity int) *visitedSet {
	return &visitedSet{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]int, 0, 128),
	}
}

// visit marks v and reports whether it was newly marked.
func (s *visitedSet) visit(v int) bool {
	word, mask := v>>6, uint64(1)<<(v&63)
	if s.bits[word]&mask != 0 {
		return false
	}
	s.bits[word] |= mask
	s.dirty = append(s.dirty, v)
	return true
}

func (s *visitedSet) visited(v int) bool {
	return s.bits[v>>6]&(uint64(1)<<(v&63)) != 0
}

// reset clears only the vertices visited since the last reset.
func (s *visitedSet) reset() {
	for _, v := range s.dirty {
		s.bits[v>>6] &^= uint64(1) << (v & 63)
	}
	s.dirty = s.dirty[:0]
}
