package graph

import "fmt"

// Objective indexes one component of a cost vector.
type Objective int

const (
	Time Objective = iota
	Fuel
	Risk
)

func (o Objective) String() string {
	return []string{"time", "fuel", "risk"}[o]
}

// Vector is a 3-component edge or path cost. Every component is
// non-negative for any valid cost model.
type Vector struct {
	Time float64 `json:"time"`
	Fuel float64 `json:"fuel"`
	Risk float64 `json:"risk"`
}

func (v Vector) Add(other Vector) Vector {
	return Vector{Time: v.Time + other.Time, Fuel: v.Fuel + other.Fuel, Risk: v.Risk + other.Risk}
}

func (v Vector) Component(objective Objective) float64 {
	switch objective {
	case Time:
		return v.Time
	case Fuel:
		return v.Fuel
	case Risk:
		return v.Risk
	}
	panic(fmt.Sprintf("Objective %d is not valid.", objective))
}

// Dominates reports whether v is no worse than other in every component and
// strictly better in at least one.
func (v Vector) Dominates(other Vector) bool {
	if v.Time > other.Time || v.Fuel > other.Fuel || v.Risk > other.Risk {
		return false
	}
	return v.Time < other.Time || v.Fuel < other.Fuel || v.Risk < other.Risk
}

// Weights scalarize a vector into a single ordering key. All components must
// be strictly positive for the label-setting argument to hold: a dominating
// vector then always has a strictly smaller key.
type Weights struct {
	Time float64
	Fuel float64
	Risk float64
}

func MakeDefaultWeights() Weights {
	return Weights{Time: 1, Fuel: 1, Risk: 1}
}

func (w Weights) Valid() bool {
	return w.Time > 0 && w.Fuel > 0 && w.Risk > 0
}

func (w Weights) Dot(v Vector) float64 {
	return w.Time*v.Time + w.Fuel*v.Fuel + w.Risk*v.Risk
}

// ObjectiveOrder is a lexicographic comparison order over the three
// objectives, used for route selection and tie-breaking.
type ObjectiveOrder [3]Objective

var (
	FastestOrder = ObjectiveOrder{Time, Fuel, Risk}
	EcoOrder     = ObjectiveOrder{Fuel, Time, Risk}
	SafestOrder  = ObjectiveOrder{Risk, Time, Fuel}
)

// Less compares two vectors lexicographically in the given order.
func (order ObjectiveOrder) Less(a, b Vector) bool {
	for _, objective := range order {
		av, bv := a.Component(objective), b.Component(objective)
		if av != bv {
			return av < bv
		}
	}
	return false
}
