package queue

import "container/heap"

// Item is a node entry in the scalarized Dijkstra queue.
type Item struct {
	ItemId      int     // node id
	Priority    float64 // accumulated scalarized cost from the origin
	Predecessor int     // node id of the predecessor
	Index       int     // heap index, -1 when not queued
}

func NewQueueItem(itemId int, priority float64, predecessor int) *Item {
	return &Item{ItemId: itemId, Priority: priority, Predecessor: predecessor, Index: -1}
}

// Queue implements heap.Interface over Dijkstra items.
type Queue []*Item

func NewQueue(initialItem *Item) *Queue {
	q := make(Queue, 0)
	heap.Init(&q)
	if initialItem != nil {
		heap.Push(&q, initialItem)
	}
	return &q
}

func (q Queue) Len() int           { return len(q) }
func (q Queue) Less(i, j int) bool { return q[i].Priority < q[j].Priority }
func (q Queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].Index, q[j].Index = i, j
}

func (q *Queue) Push(item any) {
	it := item.(*Item)
	it.Index = len(*q)
	*q = append(*q, it)
}

func (q *Queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.Index = -1
	*q = old[:n-1]
	return it
}

// Update changes an item's priority and restores heap order.
func (q *Queue) Update(item *Item, newPriority float64) {
	item.Priority = newPriority
	heap.Fix(q, item.Index)
}
