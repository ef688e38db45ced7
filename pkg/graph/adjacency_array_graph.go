package graph

import (
	"fmt"
	"strings"

	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

// AdjacencyArrayGraph is the static CSR-layout graph over a grid. Node ids
// are row-major cell indexes; blocked cells keep their id but have no arcs.
type AdjacencyArrayGraph struct {
	rows, cols int
	arcs       []Arc
	offsets    []int
}

// Get the position for the given node id
func (aag *AdjacencyArrayGraph) GetPosition(id NodeId) grid.Position {
	if id < 0 || id >= aag.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
	return grid.Position{Row: id / aag.cols, Col: id % aag.cols}
}

// Get the arcs for the given node id
func (aag *AdjacencyArrayGraph) GetArcsFrom(id NodeId) []Arc {
	if id < 0 || id >= aag.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
	return aag.arcs[aag.offsets[id]:aag.offsets[id+1]]
}

// NodeId converts a grid position to its node id.
func (aag *AdjacencyArrayGraph) NodeId(p grid.Position) NodeId {
	if p.Row < 0 || p.Row >= aag.rows || p.Col < 0 || p.Col >= aag.cols {
		panic(fmt.Sprintf("Position %v is not contained in the graph.", p))
	}
	return p.Row*aag.cols + p.Col
}

// Returns the number of nodes in the graph
func (aag *AdjacencyArrayGraph) NodeCount() int {
	return aag.rows * aag.cols
}

// Returns the total number of arcs in the graph
func (aag *AdjacencyArrayGraph) ArcCount() int {
	return len(aag.arcs)
}

// Returns a human readable string of the graph
func (aag *AdjacencyArrayGraph) AsString() string {
	var sb strings.Builder

	// write number of nodes and number of arcs
	sb.WriteString(fmt.Sprintf("%v\n", aag.NodeCount()))
	sb.WriteString(fmt.Sprintf("%v\n", aag.ArcCount()))

	sb.WriteString("#Arcs\n")
	// list all arcs structured as "fromId targetId time fuel risk"
	for i := 0; i < aag.NodeCount(); i++ {
		for _, arc := range aag.GetArcsFrom(i) {
			sb.WriteString(fmt.Sprintf("%v %v %v %v %v\n", i, arc.To, arc.Cost.Time, arc.Cost.Fuel, arc.Cost.Risk))
		}
	}
	return sb.String()
}
