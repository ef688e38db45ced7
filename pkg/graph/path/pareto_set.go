package path

import (
	"github.com/Siddigz/arctic-ship-routing/pkg/graph"
)

// paretoSet holds the mutually non-dominated labels currently known at one
// node, settled and open alike. Invariant: no label in the set dominates
// another.
type paretoSet struct {
	labels []*Label
}

func (ps *paretoSet) size() int { return len(ps.labels) }

// dominated reports whether the candidate cost is dominated or duplicated by
// any label in the set.
func (ps *paretoSet) dominated(cost graph.Vector) bool {
	for _, label := range ps.labels {
		if label.cost.Dominates(cost) || label.cost == cost {
			return true
		}
	}
	return false
}

// removeDominatedBy drops every label the candidate cost dominates and
// returns them for queue cleanup. Settled labels can never be dominated by a
// later candidate (their key is already final and no smaller key can appear),
// so only open labels are ever returned.
func (ps *paretoSet) removeDominatedBy(cost graph.Vector) []*Label {
	var removed []*Label
	kept := ps.labels[:0]
	for _, label := range ps.labels {
		if !label.settled && cost.Dominates(label.cost) {
			removed = append(removed, label)
		} else {
			kept = append(kept, label)
		}
	}
	ps.labels = kept
	return removed
}

func (ps *paretoSet) insert(label *Label) {
	ps.labels = append(ps.labels, label)
}

// worst returns the label with the largest scalarized key.
func (ps *paretoSet) worst() *Label {
	var worst *Label
	for _, label := range ps.labels {
		if worst == nil || label.key > worst.key {
			worst = label
		}
	}
	return worst
}

func (ps *paretoSet) remove(label *Label) {
	for i, l := range ps.labels {
		if l == label {
			ps.labels[i] = ps.labels[len(ps.labels)-1]
			ps.labels = ps.labels[:len(ps.labels)-1]
			return
		}
	}
}
