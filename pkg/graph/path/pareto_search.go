package path

import (
	"context"
	"errors"
	"log"

	"github.com/Siddigz/arctic-ship-routing/pkg/graph"
	"github.com/Siddigz/arctic-ship-routing/pkg/queue"
	"github.com/Siddigz/arctic-ship-routing/pkg/slice"
)

// ErrNoRouteExists indicates that the destination's Pareto set is empty at
// termination: the destination is disconnected or fully ice-blocked.
var ErrNoRouteExists = errors.New("no route exists")

// SearchOptions tune one Pareto search. Passed explicitly, never ambient.
type SearchOptions struct {
	// Weights scalarize a cost vector into the queue ordering key. All
	// components must be strictly positive; the key orders processing only
	// and never discards labels that are non-optimal in that ordering.
	Weights graph.Weights

	// MaxLabelsPerNode bounds the Pareto set per node. When exceeded, the
	// label with the worst scalarized key is evicted and the result is
	// flagged as inexact. This is a documented approximation: the frontier
	// can otherwise grow combinatorially on large grids.
	MaxLabelsPerNode int

	// EarlyExitPatience stops the search once the destination's Pareto set
	// has not changed for this many extractions, trading completeness for
	// latency. Zero disables early exit.
	EarlyExitPatience int
}

func MakeDefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Weights:           graph.MakeDefaultWeights(),
		MaxLabelsPerNode:  64,
		EarlyExitPatience: 0,
	}
}

// SearchKPIs collect counters for the computed search.
type SearchKPIs struct {
	pqPops         int // amount of pops performed on the priority queue
	pqPushes       int // amount of pushes to the priority queue
	staleLabels    int // popped labels that were invalidated while queued
	dominationRuns int // candidate-against-set dominance checks
	prunedLabels   int // candidates discarded as dominated
	removedLabels  int // open labels removed because a candidate dominates them
	evictedLabels  int // labels evicted by the per-node capacity bound
	rejectedLabels int // candidates dropped because they were the worst at a full node
	settledLabels  int // number of settled labels
}

// Reset the kpi
func (kpi *SearchKPIs) Reset() {
	*kpi = SearchKPIs{}
}

func (kpi SearchKPIs) PqPops() int         { return kpi.pqPops }
func (kpi SearchKPIs) PqPushes() int       { return kpi.pqPushes }
func (kpi SearchKPIs) StaleLabels() int    { return kpi.staleLabels }
func (kpi SearchKPIs) DominationRuns() int { return kpi.dominationRuns }
func (kpi SearchKPIs) PrunedLabels() int   { return kpi.prunedLabels }
func (kpi SearchKPIs) RemovedLabels() int  { return kpi.removedLabels }
func (kpi SearchKPIs) EvictedLabels() int  { return kpi.evictedLabels }
func (kpi SearchKPIs) RejectedLabels() int { return kpi.rejectedLabels }
func (kpi SearchKPIs) SettledLabels() int  { return kpi.settledLabels }

// ParetoSearch is a multi-criteria label-setting generalization of
// Dijkstra's algorithm. Instead of one tentative distance per node it
// maintains a Pareto set of mutually non-dominated labels and explores the
// full non-dominated frontier. Because all arc costs are non-negative and
// the scalarization weights are strictly positive, a label popped from the
// queue can never be dominated by a later candidate at the same node, which
// makes settling permanent.
//
// A ParetoSearch owns its label state exclusively and must not be shared
// across concurrent searches; the underlying graph may be.
type ParetoSearch struct {
	g       graph.Graph
	minHeap *queue.MinHeap[*Label]

	arena        []*Label     // all created labels, indexed by LabelId
	nodeSets     []paretoSet  // Pareto set per node
	settledNodes slice.Marks

	origin      graph.NodeId // the origin of the current search
	destination graph.NodeId // the destination of the current search, -1 for a full frontier

	options SearchOptions
	kpis    SearchKPIs
	exact   bool
	ran     bool

	debugLevel int // debug level for logging purpose
}

// Create a new Pareto search on the given graph g with default options.
func NewParetoSearch(g graph.Graph) *ParetoSearch {
	return &ParetoSearch{g: g, options: MakeDefaultSearchOptions(), origin: -1, destination: -1}
}

// Set the options for the next search
func (p *ParetoSearch) SetOptions(options SearchOptions) {
	if !options.Weights.Valid() {
		panic("Scalarization weights must be strictly positive.")
	}
	if options.MaxLabelsPerNode < 1 {
		panic("MaxLabelsPerNode must be at least 1.")
	}
	p.options = options
}

// Set the debug level to show different debug messages.
// If it is 0, no debug messages are printed
func (p *ParetoSearch) SetDebugLevel(level int) {
	p.debugLevel = level
}

// ComputeFrontier runs the search from origin. With destination >= 0 the
// search may stop early (early-exit option); with destination -1 it always
// explores the full frontier at every reachable node.
//
// Cancellation through ctx is advisory: the search stops at the next
// queue-extraction boundary and keeps whatever has been settled so far.
// Returns ErrNoRouteExists when a destination was given and its Pareto set
// is empty at termination.
func (p *ParetoSearch) ComputeFrontier(ctx context.Context, origin, destination graph.NodeId) error {
	if origin < 0 || origin >= p.g.NodeCount() {
		panic("Origin invalid.")
	}
	if destination >= p.g.NodeCount() {
		panic("Destination invalid.")
	}

	if p.debugLevel >= 1 {
		log.Printf("New Pareto search: %v -> %v\n", origin, destination)
	}

	p.initializeSearch(origin, destination)

	// early-exit bookkeeping: pop count at which the destination's set last
	// changed, valid once the destination holds at least one label
	destChanged := 0
	destTouched := false

	for p.minHeap.Len() > 0 {
		select {
		case <-ctx.Done():
			// advisory cancellation at the extraction boundary
			if p.debugLevel >= 1 {
				log.Printf("Search canceled after %v pops\n", p.kpis.pqPops)
			}
			p.exact = false
			return p.finish()
		default:
		}

		label := p.minHeap.Pop()
		p.kpis.pqPops++

		if label.invalid {
			// stale entry, removed from its Pareto set while queued
			p.kpis.staleLabels++
			continue
		}

		p.settleLabel(label)

		if p.relaxArcs(label) {
			// destination set changed through this relaxation
			destChanged = p.kpis.pqPops
			destTouched = true
		}

		if p.options.EarlyExitPatience > 0 && destination >= 0 && destTouched &&
			p.kpis.pqPops-destChanged >= p.options.EarlyExitPatience {
			if p.debugLevel >= 1 {
				log.Printf("Early exit: destination frontier stable for %v pops\n", p.options.EarlyExitPatience)
			}
			p.exact = false
			break
		}
	}

	return p.finish()
}

// Frontier returns the settled Pareto set of the given node: mutually
// non-dominated (cost vector, predecessor chain) tuples. Empty when the node
// was never reached (or not yet settled after cancellation).
func (p *ParetoSearch) Frontier(node graph.NodeId) []*Label {
	if !p.ran {
		panic("No search was computed.")
	}
	frontier := make([]*Label, 0, p.nodeSets[node].size())
	for _, label := range p.nodeSets[node].labels {
		if label.settled {
			frontier = append(frontier, label)
		}
	}
	return frontier
}

// Path materializes the node sequence of the given label by walking its
// predecessor chain back to the origin.
func (p *ParetoSearch) Path(label *Label) []graph.NodeId {
	path := make([]graph.NodeId, 0)
	for id := label.id; id != noPredecessor; id = p.arena[id].predecessor {
		path = append(path, p.arena[id].node)
	}
	slice.ReverseInPlace(path)
	return path
}

// Exact reports whether the last search explored the complete frontier.
// False when the capacity bound evicted labels or the search early-exited
// or was canceled: the result is then a documented approximation.
func (p *ParetoSearch) Exact() bool { return p.exact }

// GetKPIs returns the counters of the last search.
func (p *ParetoSearch) GetKPIs() SearchKPIs { return p.kpis }

// SettledNodeRatio returns the fraction of graph nodes holding at least one
// settled label.
func (p *ParetoSearch) SettledNodeRatio() float64 { return p.settledNodes.Ratio() }

// Initialize a new search
func (p *ParetoSearch) initializeSearch(origin, destination graph.NodeId) {
	p.origin = origin
	p.destination = destination
	p.arena = p.arena[:0]
	p.nodeSets = make([]paretoSet, p.g.NodeCount())
	p.settledNodes = slice.MakeMarks(p.g.NodeCount())
	p.kpis.Reset()
	p.exact = true
	p.ran = true

	p.minHeap = queue.NewMinHeap[*Label](nil)
	startLabel := p.newLabel(origin, graph.Vector{}, noPredecessor)
	p.nodeSets[origin].insert(startLabel)
	p.minHeap.Push(startLabel)
	p.kpis.pqPushes++
}

// newLabel allocates a label in the arena.
func (p *ParetoSearch) newLabel(node graph.NodeId, cost graph.Vector, predecessor LabelId) *Label {
	label := &Label{
		node:        node,
		cost:        cost,
		key:         p.options.Weights.Dot(cost),
		id:          len(p.arena),
		predecessor: predecessor,
		index:       -1,
	}
	p.arena = append(p.arena, label)
	return label
}

// Settle the given label
func (p *ParetoSearch) settleLabel(label *Label) {
	if p.debugLevel >= 2 {
		log.Printf("Settling label %v at node %v, cost %v\n", label.id, label.node, label.cost)
	}
	label.settled = true
	p.settledNodes.Mark(label.node)
	p.kpis.settledLabels++
}

// Relax the arcs for the given label and add non-dominated candidates to the
// priority queue. Reports whether the destination's Pareto set changed.
func (p *ParetoSearch) relaxArcs(label *Label) bool {
	changed := false
	for _, arc := range p.g.GetArcsFrom(label.node) {
		successor := arc.Destination()
		cost := label.cost.Add(arc.Cost)
		set := &p.nodeSets[successor]

		p.kpis.dominationRuns++
		if set.dominated(cost) {
			p.kpis.prunedLabels++
			continue
		}

		if p.debugLevel >= 3 {
			log.Printf("Relax arc %v -> %v, candidate cost %v\n", label.node, successor, cost)
		}

		// drop open labels the candidate dominates (lazy queue deletion)
		for _, dominated := range set.removeDominatedBy(cost) {
			dominated.invalid = true
			if dominated.index >= 0 {
				p.minHeap.Remove(dominated.index)
			}
			p.kpis.removedLabels++
			if successor == p.destination {
				changed = true
			}
		}

		// enforce the per-node capacity bound before touching the arena
		if set.size() >= p.options.MaxLabelsPerNode {
			worst := set.worst()
			p.exact = false
			if worst.key <= p.options.Weights.Dot(cost) {
				// the candidate itself is the worst label
				p.kpis.rejectedLabels++
				continue
			}
			set.remove(worst)
			p.kpis.evictedLabels++
			if !worst.settled {
				worst.invalid = true
				if worst.index >= 0 {
					p.minHeap.Remove(worst.index)
				}
			}
			if successor == p.destination {
				changed = true
			}
		}

		candidate := p.newLabel(successor, cost, label.id)
		set.insert(candidate)
		p.minHeap.Push(candidate)
		p.kpis.pqPushes++
		if successor == p.destination {
			changed = true
		}
	}
	return changed
}

// finish settles the termination outcome of the search.
func (p *ParetoSearch) finish() error {
	if p.debugLevel >= 1 {
		log.Printf("Finished search: %v pops (%v stale), %v settled labels, %v pruned, %v removed, exact: %v\n",
			p.kpis.pqPops, p.kpis.staleLabels, p.kpis.settledLabels, p.kpis.prunedLabels, p.kpis.removedLabels, p.exact)
	}
	if p.destination >= 0 && len(p.Frontier(p.destination)) == 0 {
		return ErrNoRouteExists
	}
	return nil
}
