package routing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/paulmach/orb"

	"github.com/Siddigz/arctic-ship-routing/pkg/graph"
	"github.com/Siddigz/arctic-ship-routing/pkg/graph/path"
	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

var (
	// ErrInvalidEndpoint indicates a start or destination outside the grid.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	// ErrUnreachableEndpoint indicates a start or destination on a
	// non-navigable cell (land or ice above the block threshold).
	ErrUnreachableEndpoint = errors.New("unreachable endpoint")
)

// Route is a finalized, directed cell sequence with its accumulated cost.
type Route struct {
	Objective string          `json:"objective"`
	Cells     []grid.Position `json:"cells"`
	Waypoints []orb.Point     `json:"waypoints"`
	Cost      graph.Vector    `json:"cost"`
}

// Hops returns the number of traversed edges.
func (r Route) Hops() int {
	if len(r.Cells) == 0 {
		return 0
	}
	return len(r.Cells) - 1
}

// RouteSet is the result of one route request: the three named variants
// extracted from the destination's Pareto frontier.
type RouteSet struct {
	Fastest Route `json:"fastest"`
	Eco     Route `json:"eco"`
	Safest  Route `json:"safest"`

	// Exact is false when the engine bounded the frontier (capacity
	// eviction) or stopped early; the routes are then an approximation.
	Exact bool `json:"exact"`

	// FrontierSize is the cardinality of the destination's Pareto set.
	FrontierSize int `json:"frontierSize"`
}

// Router computes multi-objective routes over an immutable grid graph. The
// grid and graph may be shared; each FindRoutes call owns its search state
// exclusively, so a Router is safe for concurrent use.
type Router struct {
	grid       *grid.Grid
	g          graph.Graph
	options    path.SearchOptions
	debugLevel int
}

func NewRouter(g *grid.Grid, graph graph.Graph, options path.SearchOptions) *Router {
	return &Router{grid: g, g: graph, options: options}
}

// Set the debug level of the underlying searches
func (r *Router) SetDebugLevel(level int) {
	r.debugLevel = level
}

func (r *Router) Grid() *grid.Grid   { return r.grid }
func (r *Router) Graph() graph.Graph { return r.g }

// FindRoutes runs one Pareto search and extracts the fastest, eco-friendly
// and safest variants. A start equal to the destination yields zero-length,
// zero-cost routes, not an error.
func (r *Router) FindRoutes(ctx context.Context, start, destination grid.Position) (RouteSet, error) {
	if err := r.validateEndpoint(start); err != nil {
		return RouteSet{}, err
	}
	if err := r.validateEndpoint(destination); err != nil {
		return RouteSet{}, err
	}

	search := path.NewParetoSearch(r.g)
	search.SetOptions(r.options)
	search.SetDebugLevel(r.debugLevel)

	if err := search.ComputeFrontier(ctx, r.g.NodeId(start), r.g.NodeId(destination)); err != nil {
		return RouteSet{}, err
	}

	frontier := search.Frontier(r.g.NodeId(destination))
	return r.selectRoutes(frontier, search.Path, search.Exact()), nil
}

// FindRoutesParallel runs three concurrent searches whose queue orderings
// emphasize a different objective each and merges their frontiers. On exact
// searches the merged frontier equals the single-search one; under early
// exit or capacity bounds the union usually recovers a larger part of the
// true frontier. Safe because the graph is read-only and every search owns
// its label state.
func (r *Router) FindRoutesParallel(ctx context.Context, start, destination grid.Position) (RouteSet, error) {
	if err := r.validateEndpoint(start); err != nil {
		return RouteSet{}, err
	}
	if err := r.validateEndpoint(destination); err != nil {
		return RouteSet{}, err
	}

	emphases := []graph.Weights{
		{Time: 10, Fuel: 1, Risk: 1},
		{Time: 1, Fuel: 10, Risk: 1},
		{Time: 1, Fuel: 1, Risk: 10},
	}

	searches := make([]*path.ParetoSearch, len(emphases))
	searchErrs := make([]error, len(emphases))

	var wg sync.WaitGroup
	wg.Add(len(emphases))
	for i, weights := range emphases {
		go func(i int, weights graph.Weights) {
			defer wg.Done()
			options := r.options
			options.Weights = weights
			search := path.NewParetoSearch(r.g)
			search.SetOptions(options)
			search.SetDebugLevel(r.debugLevel)
			searches[i] = search
			searchErrs[i] = search.ComputeFrontier(ctx, r.g.NodeId(start), r.g.NodeId(destination))
		}(i, weights)
	}
	wg.Wait()

	// merge: union of the three frontiers, dominated entries filtered
	type merged struct {
		label  *path.Label
		search *path.ParetoSearch
	}
	var union []merged
	exact := false
	reached := false
	for i, search := range searches {
		if searchErrs[i] != nil {
			continue
		}
		reached = true
		if search.Exact() {
			exact = true
		}
		for _, label := range search.Frontier(r.g.NodeId(destination)) {
			union = append(union, merged{label: label, search: search})
		}
	}
	if !reached {
		return RouteSet{}, searchErrs[0]
	}

	frontier := make([]*path.Label, 0, len(union))
	lookup := make(map[*path.Label]*path.ParetoSearch, len(union))
	seen := make(map[graph.Vector]bool, len(union))
	for _, entry := range union {
		dominated := false
		for _, other := range union {
			if other.label != entry.label && other.label.Cost().Dominates(entry.label.Cost()) {
				dominated = true
				break
			}
		}
		if dominated || seen[entry.label.Cost()] {
			continue
		}
		seen[entry.label.Cost()] = true
		frontier = append(frontier, entry.label)
		lookup[entry.label] = entry.search
	}

	pathOf := func(label *path.Label) []graph.NodeId {
		return lookup[label].Path(label)
	}
	return r.selectRoutes(frontier, pathOf, exact), nil
}

// NearestNavigable maps a geographic point to the closest navigable cell,
// measured between cell centers. The boolean result is false when the grid
// holds no navigable cell at all.
func (r *Router) NearestNavigable(point orb.Point) (grid.Position, bool) {
	if p, ok := r.grid.CellAtPoint(point); ok && r.grid.Navigable(p) {
		return p, true
	}
	best := grid.Position{}
	bestDist := math.MaxFloat64
	found := false
	for row := 0; row < r.grid.Rows(); row++ {
		for col := 0; col < r.grid.Cols(); col++ {
			p := grid.Position{Row: row, Col: col}
			if !r.grid.Navigable(p) {
				continue
			}
			center := r.grid.CellCenter(p)
			dx := center[0] - point[0]
			dy := center[1] - point[1]
			if dist := dx*dx + dy*dy; dist < bestDist {
				bestDist = dist
				best = p
				found = true
			}
		}
	}
	return best, found
}

func (r *Router) validateEndpoint(p grid.Position) error {
	if !r.grid.Contains(p) {
		return fmt.Errorf("%w: %v is outside the %dx%d grid", ErrInvalidEndpoint, p, r.grid.Rows(), r.grid.Cols())
	}
	if !r.grid.Navigable(p) {
		return fmt.Errorf("%w: cell %v is not navigable", ErrUnreachableEndpoint, p)
	}
	return nil
}
