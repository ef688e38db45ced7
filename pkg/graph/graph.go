package graph

import (
	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

type NodeId = int

// Graph is the navigable adjacency structure consumed by the search. It is
// immutable once built and may be shared read-only across concurrent
// searches.
type Graph interface {
	GetPosition(id NodeId) grid.Position
	GetArcsFrom(id NodeId) []Arc
	NodeId(p grid.Position) NodeId
	NodeCount() int
	ArcCount() int
	AsString() string
}

// Arc is a directed edge to an adjacent navigable cell, carrying the full
// 3-component cost of traversing it.
type Arc struct {
	To   NodeId
	Cost Vector
}

func MakeArc(to NodeId, cost Vector) Arc {
	return Arc{To: to, Cost: cost}
}

func (a Arc) Destination() NodeId {
	return a.To
}
