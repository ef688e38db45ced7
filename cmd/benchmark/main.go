package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Siddigz/arctic-ship-routing/pkg/graph"
	"github.com/Siddigz/arctic-ship-routing/pkg/graph/path"
	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

func main() {
	gridFile := flag.String("grid", "arctic.grid", "Ice field file")
	shipClass := flag.String("ship", "Ice-Class Cargo", "Catalog ship class")
	amountTargets := flag.Int("n", 100, "How many random origin/destination pairs to run")
	seed := flag.Int64("seed", 314159, "Seed for the random pairs")
	maxLabels := flag.Int("max-labels", 64, "Pareto set capacity per node")
	patience := flag.Int("patience", 0, "Early exit patience, 0 disables")
	flag.Parse()

	field, err := grid.NewIceFieldFromFile(*gridFile)
	if err != nil {
		log.Fatal(err)
	}
	ship, ok := grid.ShipByName(*shipClass)
	if !ok {
		log.Fatalf("Unknown ship class: %v", *shipClass)
	}

	g, err := grid.BuildCostModel(field, ship, grid.MakeDefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	gr := graph.BuildGraph(g)
	fmt.Printf("Graph: %d nodes, %d arcs, %d navigable cells\n", gr.NodeCount(), gr.ArcCount(), g.NavigableCount())

	targets := makeTargets(g, gr, *amountTargets, *seed)

	options := path.MakeDefaultSearchOptions()
	options.MaxLabelsPerNode = *maxLabels
	options.EarlyExitPatience = *patience

	benchmarkPareto(gr, targets, options)
	benchmarkDijkstra(gr, targets, options.Weights)
}

type targetPair struct {
	origin      graph.NodeId
	destination graph.NodeId
}

func makeTargets(g *grid.Grid, gr graph.Graph, n int, seed int64) []targetPair {
	r := rand.New(rand.NewSource(seed))
	navigable := make([]graph.NodeId, 0)
	for node := 0; node < gr.NodeCount(); node++ {
		if g.Navigable(g.PositionOf(node)) {
			navigable = append(navigable, node)
		}
	}
	if len(navigable) < 2 {
		log.Fatal("Not enough navigable cells for a benchmark")
	}

	targets := make([]targetPair, 0, n)
	for i := 0; i < n; i++ {
		origin := navigable[r.Intn(len(navigable))]
		destination := navigable[r.Intn(len(navigable))]
		targets = append(targets, targetPair{origin, destination})
	}
	return targets
}

func benchmarkPareto(gr graph.Graph, targets []targetPair, options path.SearchOptions) {
	search := path.NewParetoSearch(gr)
	search.SetOptions(options)

	var runtime time.Duration
	pqPops, stale, settled, pruned, removed := 0, 0, 0, 0, 0
	evicted, rejected, frontierSum, unreachable := 0, 0, 0, 0
	exactRuns := 0

	for i, target := range targets {
		start := time.Now()
		err := search.ComputeFrontier(context.Background(), target.origin, target.destination)
		elapsed := time.Since(start)
		runtime += elapsed

		if err != nil {
			unreachable++
			continue
		}
		kpis := search.GetKPIs()
		pqPops += kpis.PqPops()
		stale += kpis.StaleLabels()
		settled += kpis.SettledLabels()
		pruned += kpis.PrunedLabels()
		removed += kpis.RemovedLabels()
		evicted += kpis.EvictedLabels()
		rejected += kpis.RejectedLabels()
		frontierSum += len(search.Frontier(target.destination))
		if search.Exact() {
			exactRuns++
		}
		if (i+1)%50 == 0 {
			fmt.Printf("Finished %d pareto searches\n", i+1)
		}
	}

	n := len(targets)
	fmt.Printf("Average pareto search time: %.3fms\n", float64(runtime.Microseconds())/float64(n)/1000)
	fmt.Printf("Average pq pops: %d (stale: %d)\n", pqPops/n, stale/n)
	fmt.Printf("Average settled labels: %d\n", settled/n)
	fmt.Printf("Average pruned / removed labels: %d / %d\n", pruned/n, removed/n)
	fmt.Printf("Average evicted / rejected labels: %d / %d\n", evicted/n, rejected/n)
	fmt.Printf("Average frontier size: %.2f\n", float64(frontierSum)/float64(n))
	fmt.Printf("Exact runs: %d/%d, unreachable pairs: %d\n", exactRuns, n, unreachable)
}

func benchmarkDijkstra(gr graph.Graph, targets []targetPair, weights graph.Weights) {
	dijkstra := path.NewDijkstra(gr, weights)

	var runtime time.Duration
	pqPops, unreachable := 0, 0

	for _, target := range targets {
		start := time.Now()
		length := dijkstra.ComputeShortestPath(target.origin, target.destination)
		elapsed := time.Since(start)
		runtime += elapsed

		if length < 0 {
			unreachable++
			continue
		}
		pqPops += dijkstra.GetPqPops()
	}

	n := len(targets)
	fmt.Printf("Average dijkstra time: %.3fms\n", float64(runtime.Microseconds())/float64(n)/1000)
	fmt.Printf("Average pq pops: %d\n", pqPops/n)
	fmt.Printf("Unreachable pairs: %d\n", unreachable)
}
