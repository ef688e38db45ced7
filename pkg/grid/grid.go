package grid

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Position addresses a single cell in the grid, row-major.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell holds the environmental state of one grid square together with the
// cost multipliers derived from it. Cells are immutable once the cost model
// is built.
type Cell struct {
	Ice  float64 // ice concentration, 0.0 - 1.0
	Land bool

	navigable bool

	// cost of entering this cell over one unit of distance
	TimeFactor float64
	FuelFactor float64
	RiskFactor float64
}

func (c *Cell) Navigable() bool { return c.navigable }

// Grid is the cost-weighted discretization of the waterway for one ship
// profile. It is immutable after BuildCostModel and safe for concurrent
// read-only use.
type Grid struct {
	rows, cols int
	cells      []Cell
	bound      orb.Bound
	ship       ShipProfile
	config     Config
}

func (g *Grid) Rows() int          { return g.rows }
func (g *Grid) Cols() int          { return g.cols }
func (g *Grid) Bound() orb.Bound   { return g.bound }
func (g *Grid) Ship() ShipProfile  { return g.ship }
func (g *Grid) Config() Config     { return g.config }
func (g *Grid) CellCount() int     { return len(g.cells) }

func (g *Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Index converts a position to its row-major cell index.
func (g *Grid) Index(p Position) int {
	if !g.Contains(p) {
		panic(fmt.Sprintf("Position %v is not contained in the grid.", p))
	}
	return p.Row*g.cols + p.Col
}

// PositionOf is the inverse of Index.
func (g *Grid) PositionOf(index int) Position {
	if index < 0 || index >= len(g.cells) {
		panic(fmt.Sprintf("Cell index %d is not contained in the grid.", index))
	}
	return Position{Row: index / g.cols, Col: index % g.cols}
}

func (g *Grid) CellAt(p Position) *Cell {
	return &g.cells[g.Index(p)]
}

func (g *Grid) Navigable(p Position) bool {
	return g.Contains(p) && g.cells[g.Index(p)].navigable
}

func (g *Grid) NavigableCount() int {
	count := 0
	for i := range g.cells {
		if g.cells[i].navigable {
			count++
		}
	}
	return count
}

// CellCenter returns the geographic center of the cell, interpolated over
// the grid bound. Row 0 maps to the northern (max latitude) edge.
func (g *Grid) CellCenter(p Position) orb.Point {
	width := g.bound.Max[0] - g.bound.Min[0]
	height := g.bound.Max[1] - g.bound.Min[1]
	lon := g.bound.Min[0] + width*(float64(p.Col)+0.5)/float64(g.cols)
	lat := g.bound.Max[1] - height*(float64(p.Row)+0.5)/float64(g.rows)
	return orb.Point{lon, lat}
}

// CellAtPoint maps a geographic point back to the enclosing cell.
// The boolean result reports whether the point lies within the grid bound.
func (g *Grid) CellAtPoint(point orb.Point) (Position, bool) {
	if !g.bound.Contains(point) {
		return Position{}, false
	}
	width := g.bound.Max[0] - g.bound.Min[0]
	height := g.bound.Max[1] - g.bound.Min[1]
	col := int((point[0] - g.bound.Min[0]) / width * float64(g.cols))
	row := int((g.bound.Max[1] - point[1]) / height * float64(g.rows))
	if col >= g.cols {
		col = g.cols - 1
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	return Position{Row: row, Col: col}, true
}
