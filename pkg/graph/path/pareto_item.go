package path

import (
	"fmt"

	"github.com/Siddigz/arctic-ship-routing/pkg/graph"
)

// LabelId indexes a label inside the search arena.
type LabelId = int

const noPredecessor LabelId = -1

// Label is one admissible accumulated cost state at a node. Labels live in
// the search arena and reference their predecessor by arena index, so the
// predecessor links form a forest without structural back-pointers.
// Implements queue.Prioritized.
type Label struct {
	node        graph.NodeId
	cost        graph.Vector
	key         float64 // scalarized ordering key, monotone along arcs
	id          LabelId // own arena index
	predecessor LabelId // arena index of the predecessor, -1 for the start label
	index       int     // heap index, -1 when not queued
	settled     bool
	invalid     bool // lazy deletion marker
}

func (l *Label) NodeId() graph.NodeId { return l.node }
func (l *Label) Cost() graph.Vector   { return l.cost }
func (l *Label) Settled() bool        { return l.settled }

func (l *Label) Priority() float64  { return l.key }
func (l *Label) Index() int         { return l.index }
func (l *Label) SetIndex(index int) { l.index = index }
func (l *Label) String() string {
	return fmt.Sprintf("%v: %v, %v\n", l.index, l.node, l.key)
}
