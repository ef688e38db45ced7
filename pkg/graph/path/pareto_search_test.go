package path

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Siddigz/arctic-ship-routing/pkg/graph"
	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

func testShip() grid.ShipProfile {
	return grid.ShipProfile{Speed: 10, FuelRate: 2, Durability: 5}
}

func buildGraph(t *testing.T, field *grid.IceField, cfg grid.Config) graph.Graph {
	t.Helper()
	g, err := grid.BuildCostModel(field, testShip(), cfg)
	if err != nil {
		t.Fatalf("BuildCostModel failed: %v", err)
	}
	return graph.BuildGraph(g)
}

// paretoDivergenceField builds a 5x5 field with a high-ice shortcut along
// the bottom row and a low-risk detour over the upper rows, separated by a
// moderate corridor. With a soft slowdown the shortcut stays fastest while
// the detour carries less risk.
func paretoDivergenceField() (*grid.IceField, grid.Config) {
	field := grid.NewIceField(5, 5)
	for col := 0; col < 5; col++ {
		for row := 0; row < 3; row++ {
			field.Set(row, col, 0.1)
		}
		field.Set(3, col, 0.5)
	}
	field.Set(4, 1, 0.9)
	field.Set(4, 2, 0.9)
	field.Set(4, 3, 0.9)
	cfg := grid.Config{BlockThreshold: 0.95, SlowdownGain: 0.5, SlowdownExponent: 1, RiskGain: 10, RiskExponent: 1}
	return field, cfg
}

func TestOpenWaterDiagonal(t *testing.T) {
	g := buildGraph(t, grid.NewIceField(3, 3), grid.MakeDefaultConfig())
	search := NewParetoSearch(g)
	if err := search.ComputeFrontier(context.Background(), 0, 8); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	frontier := search.Frontier(8)
	if len(frontier) != 1 {
		t.Fatalf("frontier size is %v, should be %v", len(frontier), 1)
	}
	label := frontier[0]

	wantTime := 2 * math.Sqrt2 / 10
	if math.Abs(label.Cost().Time-wantTime) > 1e-12 {
		t.Errorf("time is %v, should be %v", label.Cost().Time, wantTime)
	}
	wantFuel := 2 * math.Sqrt2 * 2
	if math.Abs(label.Cost().Fuel-wantFuel) > 1e-12 {
		t.Errorf("fuel is %v, should be %v", label.Cost().Fuel, wantFuel)
	}
	if label.Cost().Risk != 0 {
		t.Errorf("risk is %v, should be %v", label.Cost().Risk, 0.0)
	}

	path := search.Path(label)
	pathReference := []graph.NodeId{0, 4, 8}
	if len(path) != len(pathReference) {
		t.Fatalf("path has wrong length. Is %v, should be %v", len(path), len(pathReference))
	}
	for i, v := range pathReference {
		if path[i] != v {
			t.Errorf("path at position %v has wrong value. Is %v, should be %v", i, path[i], v)
		}
	}
	if !search.Exact() {
		t.Errorf("search should be exact")
	}
}

func TestBlockedCenterDetour(t *testing.T) {
	field := grid.NewIceField(3, 3)
	field.Set(1, 1, 0.9) // above the default threshold
	g := buildGraph(t, field, grid.MakeDefaultConfig())

	search := NewParetoSearch(g)
	if err := search.ComputeFrontier(context.Background(), 0, 8); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	frontier := search.Frontier(8)
	if len(frontier) != 1 {
		t.Fatalf("frontier size is %v, should be %v", len(frontier), 1)
	}
	label := frontier[0]
	path := search.Path(label)

	if len(path) != 4 {
		t.Errorf("detour has %v nodes, should be %v", len(path), 4)
	}
	for _, node := range path {
		if node == 4 {
			t.Errorf("path must not pass through the blocked center")
		}
	}
	// one orthogonal and one diagonal step on each side of the center
	wantTime := (2 + math.Sqrt2) / 10
	if math.Abs(label.Cost().Time-wantTime) > 1e-12 {
		t.Errorf("time is %v, should be %v", label.Cost().Time, wantTime)
	}
}

func TestParetoDivergence(t *testing.T) {
	field, cfg := paretoDivergenceField()
	g := buildGraph(t, field, cfg)

	origin := g.NodeId(grid.Position{Row: 4, Col: 0})
	destination := g.NodeId(grid.Position{Row: 4, Col: 4})

	search := NewParetoSearch(g)
	if err := search.ComputeFrontier(context.Background(), origin, destination); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	frontier := search.Frontier(destination)
	if len(frontier) < 2 {
		t.Fatalf("frontier size is %v, should be at least %v", len(frontier), 2)
	}

	var fastest, safest *Label
	for _, label := range frontier {
		if fastest == nil || graph.FastestOrder.Less(label.Cost(), fastest.Cost()) {
			fastest = label
		}
		if safest == nil || graph.SafestOrder.Less(label.Cost(), safest.Cost()) {
			safest = label
		}
	}

	if fastest.Cost().Time >= safest.Cost().Time {
		t.Errorf("fastest time %v should beat safest time %v", fastest.Cost().Time, safest.Cost().Time)
	}
	if safest.Cost().Risk >= fastest.Cost().Risk {
		t.Errorf("safest risk %v should beat fastest risk %v", safest.Cost().Risk, fastest.Cost().Risk)
	}

	shortcutCell := g.NodeId(grid.Position{Row: 4, Col: 2})
	fastestPath := search.Path(fastest)
	safestPath := search.Path(safest)
	if !containsNode(fastestPath, shortcutCell) {
		t.Errorf("fastest path should use the high-ice shortcut")
	}
	if containsNode(safestPath, shortcutCell) {
		t.Errorf("safest path should avoid the high-ice shortcut")
	}
}

func TestDegenerateOriginEqualsDestination(t *testing.T) {
	g := buildGraph(t, grid.NewIceField(3, 3), grid.MakeDefaultConfig())
	search := NewParetoSearch(g)
	if err := search.ComputeFrontier(context.Background(), 4, 4); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	frontier := search.Frontier(4)
	if len(frontier) != 1 {
		t.Fatalf("frontier size is %v, should be %v", len(frontier), 1)
	}
	if frontier[0].Cost() != (graph.Vector{}) {
		t.Errorf("cost is %v, should be the zero vector", frontier[0].Cost())
	}
	path := search.Path(frontier[0])
	if len(path) != 1 || path[0] != 4 {
		t.Errorf("path is %v, should be [4]", path)
	}
}

func TestNonDominationInvariant(t *testing.T) {
	field, cfg := paretoDivergenceField()
	g := buildGraph(t, field, cfg)

	search := NewParetoSearch(g)
	origin := g.NodeId(grid.Position{Row: 4, Col: 0})
	if err := search.ComputeFrontier(context.Background(), origin, -1); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	for node := 0; node < g.NodeCount(); node++ {
		frontier := search.Frontier(node)
		for i, a := range frontier {
			for j, b := range frontier {
				if i == j {
					continue
				}
				if a.Cost().Dominates(b.Cost()) {
					t.Errorf("node %v: label %v dominates label %v", node, a.Cost(), b.Cost())
				}
			}
		}
	}
}

func TestCostAdditivity(t *testing.T) {
	field, cfg := paretoDivergenceField()
	g := buildGraph(t, field, cfg)

	origin := g.NodeId(grid.Position{Row: 4, Col: 0})
	destination := g.NodeId(grid.Position{Row: 4, Col: 4})

	search := NewParetoSearch(g)
	if err := search.ComputeFrontier(context.Background(), origin, destination); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	for _, label := range search.Frontier(destination) {
		path := search.Path(label)
		sum := graph.Vector{}
		for i := 0; i+1 < len(path); i++ {
			arcCost, found := arcBetween(g, path[i], path[i+1])
			if !found {
				t.Fatalf("no arc between consecutive path nodes %v and %v", path[i], path[i+1])
			}
			sum = sum.Add(arcCost)
		}
		if sum != label.Cost() {
			t.Errorf("summed path cost is %v, should be %v", sum, label.Cost())
		}
	}
}

func TestBoundedParetoSetDegradesResult(t *testing.T) {
	field, cfg := paretoDivergenceField()
	g := buildGraph(t, field, cfg)

	origin := g.NodeId(grid.Position{Row: 4, Col: 0})
	destination := g.NodeId(grid.Position{Row: 4, Col: 4})

	options := MakeDefaultSearchOptions()
	options.MaxLabelsPerNode = 1
	search := NewParetoSearch(g)
	search.SetOptions(options)

	if err := search.ComputeFrontier(context.Background(), origin, destination); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if search.Exact() {
		t.Errorf("capacity-bounded search should be flagged as inexact")
	}
	frontier := search.Frontier(destination)
	if len(frontier) != 1 {
		t.Errorf("frontier size is %v, should be capped at %v", len(frontier), 1)
	}
	kpis := search.GetKPIs()
	if kpis.EvictedLabels()+kpis.RejectedLabels() == 0 {
		t.Errorf("capacity interactions should be counted")
	}
}

// arcListGraph is a hand-built adjacency list for targeted engine tests.
type arcListGraph struct {
	arcs [][]graph.Arc
}

func (g *arcListGraph) GetPosition(id graph.NodeId) grid.Position {
	return grid.Position{Row: 0, Col: id}
}
func (g *arcListGraph) GetArcsFrom(id graph.NodeId) []graph.Arc { return g.arcs[id] }
func (g *arcListGraph) NodeId(p grid.Position) graph.NodeId     { return p.Col }
func (g *arcListGraph) NodeCount() int                          { return len(g.arcs) }
func (g *arcListGraph) ArcCount() int {
	count := 0
	for _, arcs := range g.arcs {
		count += len(arcs)
	}
	return count
}
func (g *arcListGraph) AsString() string { return "" }

func TestCapacityRejectsWorseCandidate(t *testing.T) {
	// diamond graph with two non-dominated paths into node 3; the path with
	// the larger scalarized key arrives second, so at capacity 1 it must be
	// dropped without displacing the held label or counting as an eviction
	g := &arcListGraph{arcs: [][]graph.Arc{
		{graph.MakeArc(1, graph.Vector{Time: 1, Fuel: 1, Risk: 4}), graph.MakeArc(2, graph.Vector{Time: 2, Fuel: 2, Risk: 1})},
		{graph.MakeArc(3, graph.Vector{Time: 1, Fuel: 1, Risk: 0})},
		{graph.MakeArc(3, graph.Vector{Time: 1, Fuel: 1, Risk: 0})},
		{},
	}}

	options := MakeDefaultSearchOptions()
	options.MaxLabelsPerNode = 1
	search := NewParetoSearch(g)
	search.SetOptions(options)

	if err := search.ComputeFrontier(context.Background(), 0, 3); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	kpis := search.GetKPIs()
	if kpis.RejectedLabels() != 1 {
		t.Errorf("rejected labels is %v, should be %v", kpis.RejectedLabels(), 1)
	}
	if kpis.EvictedLabels() != 0 {
		t.Errorf("evicted labels is %v, should be %v", kpis.EvictedLabels(), 0)
	}
	if search.Exact() {
		t.Errorf("dropping a candidate should flag the result inexact")
	}
	frontier := search.Frontier(3)
	if len(frontier) != 1 {
		t.Fatalf("frontier size is %v, should be %v", len(frontier), 1)
	}
	want := graph.Vector{Time: 3, Fuel: 3, Risk: 1}
	if frontier[0].Cost() != want {
		t.Errorf("kept cost is %v, should be %v", frontier[0].Cost(), want)
	}
}

func TestCapacityEvictsWorstLabel(t *testing.T) {
	// here the cheaper-keyed path into node 3 arrives second, so at
	// capacity 1 it must evict the queued worse label instead
	g := &arcListGraph{arcs: [][]graph.Arc{
		{graph.MakeArc(1, graph.Vector{Time: 1, Fuel: 0.5, Risk: 0.5}), graph.MakeArc(2, graph.Vector{Time: 2, Fuel: 2, Risk: 1})},
		{graph.MakeArc(3, graph.Vector{Time: 4, Fuel: 2, Risk: 2})},
		{graph.MakeArc(3, graph.Vector{Time: 1, Fuel: 1, Risk: 0})},
		{},
	}}

	options := MakeDefaultSearchOptions()
	options.MaxLabelsPerNode = 1
	search := NewParetoSearch(g)
	search.SetOptions(options)

	if err := search.ComputeFrontier(context.Background(), 0, 3); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	kpis := search.GetKPIs()
	if kpis.EvictedLabels() != 1 {
		t.Errorf("evicted labels is %v, should be %v", kpis.EvictedLabels(), 1)
	}
	if kpis.RejectedLabels() != 0 {
		t.Errorf("rejected labels is %v, should be %v", kpis.RejectedLabels(), 0)
	}
	if search.Exact() {
		t.Errorf("evicting a label should flag the result inexact")
	}
	frontier := search.Frontier(3)
	if len(frontier) != 1 {
		t.Fatalf("frontier size is %v, should be %v", len(frontier), 1)
	}
	want := graph.Vector{Time: 3, Fuel: 3, Risk: 1}
	if frontier[0].Cost() != want {
		t.Errorf("kept cost is %v, should be %v", frontier[0].Cost(), want)
	}
}

func TestSearchKPIAccounting(t *testing.T) {
	field, cfg := paretoDivergenceField()
	g := buildGraph(t, field, cfg)

	search := NewParetoSearch(g)
	origin := g.NodeId(grid.Position{Row: 4, Col: 0})
	if err := search.ComputeFrontier(context.Background(), origin, -1); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	kpis := search.GetKPIs()
	if got := kpis.StaleLabels() + kpis.SettledLabels(); got != kpis.PqPops() {
		t.Errorf("stale plus settled labels is %v, should be %v", got, kpis.PqPops())
	}
	if kpis.DominationRuns() < kpis.PrunedLabels() {
		t.Errorf("domination runs (%v) should not be below pruned labels (%v)", kpis.DominationRuns(), kpis.PrunedLabels())
	}
	if search.GetKPIs().EvictedLabels() != 0 || search.GetKPIs().RejectedLabels() != 0 {
		t.Errorf("default capacity should not drop labels on a 5x5 field")
	}
	if kpis.RemovedLabels() < 0 || kpis.PqPushes() < kpis.SettledLabels() {
		t.Errorf("counter accounting is inconsistent: %+v", kpis)
	}
}

func TestEarlyExit(t *testing.T) {
	g := buildGraph(t, grid.NewIceField(10, 10), grid.MakeDefaultConfig())

	options := MakeDefaultSearchOptions()
	options.EarlyExitPatience = 3
	search := NewParetoSearch(g)
	search.SetOptions(options)

	if err := search.ComputeFrontier(context.Background(), 0, 1); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if search.Exact() {
		t.Errorf("early-exited search should be flagged as inexact")
	}
	if len(search.Frontier(1)) == 0 {
		t.Errorf("destination frontier should hold the found label")
	}
	if pops := search.GetKPIs().PqPops(); pops >= 50 {
		t.Errorf("early exit should stop well before exploring the grid, popped %v", pops)
	}
}

func TestCancellation(t *testing.T) {
	g := buildGraph(t, grid.NewIceField(10, 10), grid.MakeDefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	search := NewParetoSearch(g)
	err := search.ComputeFrontier(ctx, 0, 99)
	if !errors.Is(err, ErrNoRouteExists) {
		t.Errorf("error is %v, should be %v", err, ErrNoRouteExists)
	}
	if search.Exact() {
		t.Errorf("canceled search should be flagged as inexact")
	}
}

func TestNoRouteExists(t *testing.T) {
	field := grid.NewIceField(3, 3)
	field.Set(0, 1, 0.9)
	field.Set(1, 1, 0.9)
	field.Set(2, 1, 0.9)
	g := buildGraph(t, field, grid.MakeDefaultConfig())

	search := NewParetoSearch(g)
	err := search.ComputeFrontier(context.Background(), 0, 8)
	if !errors.Is(err, ErrNoRouteExists) {
		t.Errorf("error is %v, should be %v", err, ErrNoRouteExists)
	}
}

func TestFullFrontierWithoutDestination(t *testing.T) {
	field := grid.NewIceField(3, 3)
	field.Set(0, 1, 0.9)
	field.Set(1, 1, 0.9)
	field.Set(2, 1, 0.9)
	g := buildGraph(t, field, grid.MakeDefaultConfig())

	search := NewParetoSearch(g)
	if err := search.ComputeFrontier(context.Background(), 0, -1); err != nil {
		t.Fatalf("full frontier search failed: %v", err)
	}
	// the right column stays unreached behind the blocked corridor
	if len(search.Frontier(8)) != 0 {
		t.Errorf("unreachable node should have an empty frontier")
	}
	if len(search.Frontier(6)) == 0 {
		t.Errorf("reachable node should have a settled frontier")
	}
	if ratio := search.SettledNodeRatio(); ratio <= 0 || ratio >= 1 {
		t.Errorf("settled node ratio is %v, should be strictly between 0 and 1", ratio)
	}
}

func TestScalarizedAgreementWithDijkstra(t *testing.T) {
	field, cfg := paretoDivergenceField()
	g := buildGraph(t, field, cfg)

	origin := g.NodeId(grid.Position{Row: 4, Col: 0})
	destination := g.NodeId(grid.Position{Row: 4, Col: 4})

	search := NewParetoSearch(g)
	if err := search.ComputeFrontier(context.Background(), origin, destination); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	weights := graph.MakeDefaultWeights()
	dijkstra := NewDijkstra(g, weights)
	length := dijkstra.ComputeShortestPath(origin, destination)

	best := math.MaxFloat64
	for _, label := range search.Frontier(destination) {
		if key := weights.Dot(label.Cost()); key < best {
			best = key
		}
	}
	if math.Abs(length-best) > 1e-9 {
		t.Errorf("dijkstra length is %v, should match the best scalarized frontier key %v", length, best)
	}
}

func containsNode(path []graph.NodeId, node graph.NodeId) bool {
	for _, n := range path {
		if n == node {
			return true
		}
	}
	return false
}

func arcBetween(g graph.Graph, from, to graph.NodeId) (graph.Vector, bool) {
	for _, arc := range g.GetArcsFrom(from) {
		if arc.Destination() == to {
			return arc.Cost, true
		}
	}
	return graph.Vector{}, false
}
