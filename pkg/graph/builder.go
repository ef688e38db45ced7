package graph

import (
	"math"

	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

// DiagonalFactor scales time and fuel on diagonal steps, which cover more
// physical distance than orthogonal ones.
const DiagonalFactor = math.Sqrt2

// 8-directional neighborhood
var neighborhood = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// BuildGraph materializes the adjacency structure for the given cost-weighted
// grid. Every navigable cell receives a directed arc to each navigable
// neighbor; arcs into blocked cells do not exist. The arc cost is the cost of
// entering the destination cell, with time and fuel scaled by the step
// distance. Risk is accrued per entered cell and is not distance-scaled.
func BuildGraph(g *grid.Grid) *AdjacencyArrayGraph {
	rows, cols := g.Rows(), g.Cols()
	arcs := make([]Arc, 0, rows*cols*len(neighborhood))
	offsets := make([]int, rows*cols+1)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			from := grid.Position{Row: row, Col: col}
			if g.Navigable(from) {
				for _, delta := range neighborhood {
					to := grid.Position{Row: row + delta[0], Col: col + delta[1]}
					if !g.Navigable(to) {
						continue
					}
					distance := 1.0
					if delta[0] != 0 && delta[1] != 0 {
						distance = DiagonalFactor
					}
					cell := g.CellAt(to)
					cost := Vector{
						Time: cell.TimeFactor * distance,
						Fuel: cell.FuelFactor * distance,
						Risk: cell.RiskFactor,
					}
					arcs = append(arcs, MakeArc(to.Row*cols+to.Col, cost))
				}
			}
			offsets[row*cols+col+1] = len(arcs)
		}
	}

	return &AdjacencyArrayGraph{rows: rows, cols: cols, arcs: arcs, offsets: offsets}
}
