package slice

// Marks is a fixed-length boolean slice which tracks how many entries are
// marked. The search uses it to relate settled nodes to the graph size.
type Marks struct {
	marked []bool
	count  int
}

func MakeMarks(length int) Marks {
	return Marks{marked: make([]bool, length)}
}

func (m *Marks) Mark(index int) {
	if !m.marked[index] {
		m.marked[index] = true
		m.count++
	}
}

func (m *Marks) Marked(index int) bool { return m.marked[index] }
func (m *Marks) Count() int            { return m.count }
func (m *Marks) Ratio() float64        { return float64(m.count) / float64(len(m.marked)) }

// ReverseInPlace reverses s without allocating.
func ReverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
