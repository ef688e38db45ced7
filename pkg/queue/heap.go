package queue

import "container/heap"

// Prioritized items can be held in a MinHeap. The index bookkeeping lets the
// heap fix or remove an item in place after its priority changed.
type Prioritized interface {
	Priority() float64
	Index() int
	SetIndex(index int)
}

// MinHeap is a binary min-heap of Prioritized items. The Pareto search uses
// it as the global queue of open labels, ordered by scalarized key.
type MinHeap[T Prioritized] struct {
	inner innerHeap[T]
}

func NewMinHeap[T Prioritized](items []T) *MinHeap[T] {
	h := &MinHeap[T]{inner: make(innerHeap[T], len(items))}
	for i, item := range items {
		h.inner[i] = item
		item.SetIndex(i)
	}
	heap.Init(&h.inner)
	return h
}

func (h *MinHeap[T]) Len() int         { return len(h.inner) }
func (h *MinHeap[T]) Push(item T)      { heap.Push(&h.inner, item) }
func (h *MinHeap[T]) Pop() T           { return heap.Pop(&h.inner).(T) }
func (h *MinHeap[T]) Peek() T          { return h.inner[0] }
func (h *MinHeap[T]) Update(item T)    { heap.Fix(&h.inner, item.Index()) }
func (h *MinHeap[T]) Remove(index int) { heap.Remove(&h.inner, index) }

// innerHeap implements heap.Interface.
type innerHeap[T Prioritized] []T

func (q innerHeap[T]) Len() int           { return len(q) }
func (q innerHeap[T]) Less(i, j int) bool { return q[i].Priority() < q[j].Priority() }
func (q innerHeap[T]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].SetIndex(i)
	q[j].SetIndex(j)
}

func (q *innerHeap[T]) Push(item any) {
	it := item.(T)
	it.SetIndex(len(*q))
	*q = append(*q, it)
}

func (q *innerHeap[T]) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	var zero T
	old[n-1] = zero
	it.SetIndex(-1)
	*q = old[:n-1]
	return it
}
