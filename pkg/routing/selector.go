package routing

import (
	"github.com/paulmach/orb"

	"github.com/Siddigz/arctic-ship-routing/pkg/graph"
	"github.com/Siddigz/arctic-ship-routing/pkg/graph/path"
	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

// selectRoutes extracts the three named variants from a non-empty frontier.
// When the frontier holds a single label all three variants coincide; that
// is the expected degenerate case, not an error.
func (r *Router) selectRoutes(frontier []*path.Label, pathOf func(*path.Label) []graph.NodeId, exact bool) RouteSet {
	return RouteSet{
		Fastest:      r.buildRoute("fastest", selectBest(frontier, graph.FastestOrder), pathOf),
		Eco:          r.buildRoute("eco", selectBest(frontier, graph.EcoOrder), pathOf),
		Safest:       r.buildRoute("safest", selectBest(frontier, graph.SafestOrder), pathOf),
		Exact:        exact,
		FrontierSize: len(frontier),
	}
}

// selectBest picks the frontier label minimizing the order's primary
// objective, with ties broken lexicographically along the rest of the order.
func selectBest(frontier []*path.Label, order graph.ObjectiveOrder) *path.Label {
	var best *path.Label
	for _, label := range frontier {
		if best == nil || order.Less(label.Cost(), best.Cost()) {
			best = label
		}
	}
	return best
}

// buildRoute materializes the ordered cell sequence of the label's
// predecessor chain together with its geographic waypoints.
func (r *Router) buildRoute(objective string, label *path.Label, pathOf func(*path.Label) []graph.NodeId) Route {
	nodeIds := pathOf(label)
	route := Route{
		Objective: objective,
		Cells:     make([]grid.Position, 0, len(nodeIds)),
		Waypoints: make([]orb.Point, 0, len(nodeIds)),
		Cost:      label.Cost(),
	}
	for _, nodeId := range nodeIds {
		p := r.g.GetPosition(nodeId)
		route.Cells = append(route.Cells, p)
		route.Waypoints = append(route.Waypoints, r.grid.CellCenter(p))
	}
	return route
}
