package entropy

// mtfState is a 256-element move-to-front list used by both the
// code-length decoder and the context map decoder.
type mtfState struct {
	list [256]int
}

func newMTF() *mtfState {
	m := &mtfState{}
	for i := range m.list {
		m.list[i] = i
	}
	return m
}

// decode returns the symbol currently at position idx, then moves it to
// the front of the list (standard inverse MTF).
func (m *mtfState) decode(idx int) int {
	v := m.list[idx]
	copy(m.list[1:idx+1], m.list[0:idx])
	m.list[0] = v
	return v
}

// InverseMTF applies the standard move-to-front inverse to a sequence of
// indices, producing the original symbol sequence, over an explicit
// initial alphabet (used by the context map's optional post-MTF pass).
func InverseMTF(indices []int, alphabetSize int) []int {
	list := make([]int, alphabetSize)
	for i := range list {
		list[i] = i
	}
	out := make([]int, len(indices))
	for i, idx := range indices {
		v := list[idx]
		copy(list[1:idx+1], list[0:idx])
		list[0] = v
		out[i] = v
	}
	return out
}
