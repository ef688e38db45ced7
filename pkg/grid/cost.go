package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ErrInvalidField indicates an ice field with values outside [0,1].
var ErrInvalidField = errors.New("invalid ice field")

// Config holds the tuning of the environmental cost model. It is passed
// explicitly into every entry point so concurrent computations with
// different tuning never interfere.
type Config struct {
	// BlockThreshold is the ice concentration above which a cell is treated
	// as impassable, equivalent to land.
	BlockThreshold float64

	// Slowdown factor applied to time and fuel: 1 + gain * c^exponent.
	SlowdownGain     float64
	SlowdownExponent float64

	// Risk accrued per entered cell: gain * c^exponent / durability.
	RiskGain     float64
	RiskExponent float64
}

func MakeDefaultConfig() Config {
	return Config{
		BlockThreshold:   0.8,
		SlowdownGain:     3,
		SlowdownExponent: 1,
		RiskGain:         10,
		RiskExponent:     1,
	}
}

// IceField is the raw environmental input: a rectangular field of ice
// concentrations plus an optional land mask, geo-referenced by a bound.
// How the concentrations are produced (noise generator, satellite data) is
// not the core's concern.
type IceField struct {
	Rows, Cols int
	Values     []float64 // row-major ice concentration, 0.0 - 1.0
	Land       []bool    // optional, row-major; nil means open water
	Bound      orb.Bound
}

func NewIceField(rows, cols int) *IceField {
	return &IceField{
		Rows:   rows,
		Cols:   cols,
		Values: make([]float64, rows*cols),
		Land:   make([]bool, rows*cols),
		Bound:  orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}},
	}
}

func (f *IceField) Set(row, col int, concentration float64) {
	f.Values[row*f.Cols+col] = concentration
}

func (f *IceField) SetLand(row, col int) {
	f.Land[row*f.Cols+col] = true
}

// slowdown is monotonically increasing in the ice concentration. The exact
// curve shape is configurable; only monotonicity is load-bearing.
func (cfg Config) slowdown(concentration float64) float64 {
	return 1 + cfg.SlowdownGain*math.Pow(concentration, cfg.SlowdownExponent)
}

func (cfg Config) risk(concentration, durability float64) float64 {
	return cfg.RiskGain * math.Pow(concentration, cfg.RiskExponent) / durability
}

// BuildCostModel converts the raw ice field and a ship profile into a
// cost-weighted grid. Pure: the field is only read, and the same inputs
// always yield the same grid.
func BuildCostModel(field *IceField, ship ShipProfile, cfg Config) (*Grid, error) {
	if err := ship.Validate(); err != nil {
		return nil, err
	}
	if field.Rows <= 0 || field.Cols <= 0 || len(field.Values) != field.Rows*field.Cols {
		return nil, fmt.Errorf("%w: %dx%d field with %d values", ErrInvalidField, field.Rows, field.Cols, len(field.Values))
	}
	if field.Land != nil && len(field.Land) != len(field.Values) {
		return nil, fmt.Errorf("%w: land mask has %d entries, want %d", ErrInvalidField, len(field.Land), len(field.Values))
	}

	cells := make([]Cell, len(field.Values))
	for i, concentration := range field.Values {
		if concentration < 0 || concentration > 1 {
			return nil, fmt.Errorf("%w: concentration %v at cell %d out of range", ErrInvalidField, concentration, i)
		}
		land := field.Land != nil && field.Land[i]
		slowdown := cfg.slowdown(concentration)
		cells[i] = Cell{
			Ice:        concentration,
			Land:       land,
			navigable:  !land && concentration <= cfg.BlockThreshold,
			TimeFactor: slowdown / ship.Speed,
			FuelFactor: slowdown * ship.FuelRate,
			RiskFactor: cfg.risk(concentration, ship.Durability),
		}
	}

	return &Grid{
		rows:   field.Rows,
		cols:   field.Cols,
		cells:  cells,
		bound:  field.Bound,
		ship:   ship,
		config: cfg,
	}, nil
}
