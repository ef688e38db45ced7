package path

import "github.com/Siddigz/arctic-ship-routing/pkg/graph"

type Navigator interface {
	ComputeShortestPath(origin, destination graph.NodeId) float64 // Compute the shortest scalarized path from the origin to the destination
	GetPath(origin, destination graph.NodeId) []graph.NodeId      // Get the path of a previous computation. This contains the node ids which lie on the path from origin to destination
	GetPqPops() int                                               // Returns the amount of priority queue pops which were performed for the computed search
	GetGraph() graph.Graph                                        // Get the used graph
}
