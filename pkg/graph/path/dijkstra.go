package path

import (
	"container/heap"

	"github.com/Siddigz/arctic-ship-routing/pkg/graph"
	"github.com/Siddigz/arctic-ship-routing/pkg/queue"
)

// Dijkstra is a single-objective baseline navigator: it collapses the cost
// vector into one scalar through a weighted sum and runs a plain shortest
// path search. Useful for comparison against the Pareto engine; it cannot
// see the frontier, only one compromise path.
type Dijkstra struct {
	g                  graph.Graph
	weights            graph.Weights
	dijkstraItems      []*queue.Item
	pqPops             int
	pqUpdates          int
	relaxationAttempts int
	relaxedEdges       int
}

func NewDijkstra(g graph.Graph, weights graph.Weights) *Dijkstra {
	if !weights.Valid() {
		panic("Scalarization weights must be strictly positive.")
	}
	return &Dijkstra{g: g, weights: weights}
}

// Compute the shortest path from the origin to the destination.
// It returns the scalarized length of the found path.
// If no path was found, it returns -1.
func (d *Dijkstra) ComputeShortestPath(origin, destination graph.NodeId) float64 {
	d.dijkstraItems = make([]*queue.Item, d.g.NodeCount())
	originItem := queue.NewQueueItem(origin, 0, -1)
	d.dijkstraItems[origin] = originItem

	pq := make(queue.Queue, 0)
	heap.Init(&pq)
	heap.Push(&pq, d.dijkstraItems[origin])

	d.pqPops = 0
	d.pqUpdates = 0
	d.relaxationAttempts = 0
	d.relaxedEdges = 0

	for len(pq) > 0 {
		currentPqItem := heap.Pop(&pq).(*queue.Item)
		currentNodeId := currentPqItem.ItemId
		d.pqPops++

		for _, arc := range d.g.GetArcsFrom(currentNodeId) {
			d.relaxationAttempts++
			successor := arc.Destination()
			cost := d.weights.Dot(arc.Cost)

			if d.dijkstraItems[successor] == nil {
				newPriority := d.dijkstraItems[currentNodeId].Priority + cost
				pqItem := queue.NewQueueItem(successor, newPriority, currentNodeId)
				d.dijkstraItems[successor] = pqItem
				heap.Push(&pq, pqItem)
				d.pqUpdates++
			} else {
				if updatedDistance := d.dijkstraItems[currentNodeId].Priority + cost; updatedDistance < d.dijkstraItems[successor].Priority {
					pq.Update(d.dijkstraItems[successor], updatedDistance)
					d.pqUpdates++
					d.dijkstraItems[successor].Predecessor = currentNodeId
				}
			}
			d.relaxedEdges++
		}

		if currentNodeId == destination {
			break
		}
	}

	length := -1.0 // by default a non-existing path has length -1
	if d.dijkstraItems[destination] != nil {
		length = d.dijkstraItems[destination].Priority
	}
	return length
}

// Get the path of a previous computation. This contains the node ids which
// lie on the path from origin to destination.
func (d *Dijkstra) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	path := make([]graph.NodeId, 0) // by default, a non-existing path is an empty slice
	if d.dijkstraItems[destination] != nil {
		for nodeId := destination; nodeId != -1; nodeId = d.dijkstraItems[nodeId].Predecessor {
			path = append([]int{nodeId}, path...)
		}
	}
	return path
}

func (d *Dijkstra) GetPqPops() int             { return d.pqPops }
func (d *Dijkstra) GetPqUpdates() int          { return d.pqUpdates }
func (d *Dijkstra) GetEdgeRelaxations() int    { return d.relaxedEdges }
func (d *Dijkstra) GetRelaxationAttempts() int { return d.relaxationAttempts }
func (d *Dijkstra) GetGraph() graph.Graph      { return d.g }
