package grid

import (
	"errors"
	"math"
	"testing"
)

func testShip() ShipProfile {
	return ShipProfile{Speed: 10, FuelRate: 2, Durability: 5}
}

func TestBuildCostModelOpenWater(t *testing.T) {
	field := NewIceField(3, 3)
	g, err := BuildCostModel(field, testShip(), MakeDefaultConfig())
	if err != nil {
		t.Fatalf("BuildCostModel failed: %v", err)
	}
	if g.NavigableCount() != 9 {
		t.Errorf("navigable count is %v, should be %v", g.NavigableCount(), 9)
	}
	cell := g.CellAt(Position{Row: 1, Col: 1})
	if cell.TimeFactor != 1.0/10 {
		t.Errorf("time factor is %v, should be %v", cell.TimeFactor, 1.0/10)
	}
	if cell.FuelFactor != 2.0 {
		t.Errorf("fuel factor is %v, should be %v", cell.FuelFactor, 2.0)
	}
	if cell.RiskFactor != 0 {
		t.Errorf("risk factor is %v, should be %v", cell.RiskFactor, 0.0)
	}
}

func TestBuildCostModelInvalidProfile(t *testing.T) {
	field := NewIceField(2, 2)
	ships := []ShipProfile{
		{Speed: 0, FuelRate: 2, Durability: 5},
		{Speed: 10, FuelRate: -1, Durability: 5},
		{Speed: 10, FuelRate: 2, Durability: 0},
	}
	for _, ship := range ships {
		if _, err := BuildCostModel(field, ship, MakeDefaultConfig()); !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("profile %v: error is %v, should wrap %v", ship, err, ErrInvalidProfile)
		}
	}
}

func TestBuildCostModelInvalidField(t *testing.T) {
	field := NewIceField(2, 2)
	field.Set(1, 1, 1.5)
	if _, err := BuildCostModel(field, testShip(), MakeDefaultConfig()); !errors.Is(err, ErrInvalidField) {
		t.Errorf("error is %v, should wrap %v", err, ErrInvalidField)
	}

	short := &IceField{Rows: 2, Cols: 2, Values: []float64{0, 0, 0}}
	if _, err := BuildCostModel(short, testShip(), MakeDefaultConfig()); !errors.Is(err, ErrInvalidField) {
		t.Errorf("error is %v, should wrap %v", err, ErrInvalidField)
	}
}

func TestBlockThreshold(t *testing.T) {
	cfg := MakeDefaultConfig()
	field := NewIceField(1, 3)
	field.Set(0, 0, cfg.BlockThreshold)
	field.Set(0, 1, cfg.BlockThreshold+0.01)
	field.SetLand(0, 2)

	g, err := BuildCostModel(field, testShip(), cfg)
	if err != nil {
		t.Fatalf("BuildCostModel failed: %v", err)
	}
	if !g.Navigable(Position{Row: 0, Col: 0}) {
		t.Errorf("cell at the threshold should be navigable")
	}
	if g.Navigable(Position{Row: 0, Col: 1}) {
		t.Errorf("cell above the threshold should be blocked")
	}
	if g.Navigable(Position{Row: 0, Col: 2}) {
		t.Errorf("land cell should be blocked")
	}
}

func TestSlowdownMonotonicity(t *testing.T) {
	cfg := MakeDefaultConfig()
	ship := testShip()
	field := NewIceField(1, 5)
	concentrations := []float64{0, 0.2, 0.4, 0.6, 0.8}
	for col, c := range concentrations {
		field.Set(0, col, c)
	}
	g, err := BuildCostModel(field, ship, cfg)
	if err != nil {
		t.Fatalf("BuildCostModel failed: %v", err)
	}
	for col := 1; col < 5; col++ {
		previous := g.CellAt(Position{Row: 0, Col: col - 1})
		current := g.CellAt(Position{Row: 0, Col: col})
		if current.TimeFactor <= previous.TimeFactor {
			t.Errorf("time factor must increase with concentration: %v <= %v", current.TimeFactor, previous.TimeFactor)
		}
		if current.FuelFactor <= previous.FuelFactor {
			t.Errorf("fuel factor must increase with concentration: %v <= %v", current.FuelFactor, previous.FuelFactor)
		}
		if current.RiskFactor <= previous.RiskFactor {
			t.Errorf("risk factor must increase with concentration: %v <= %v", current.RiskFactor, previous.RiskFactor)
		}
	}
}

func TestRiskDurabilityMonotonicity(t *testing.T) {
	field := NewIceField(1, 1)
	field.Set(0, 0, 0.5)
	cfg := MakeDefaultConfig()

	sturdy, err := BuildCostModel(field, ShipProfile{Speed: 10, FuelRate: 2, Durability: 8}, cfg)
	if err != nil {
		t.Fatalf("BuildCostModel failed: %v", err)
	}
	fragile, err := BuildCostModel(field, ShipProfile{Speed: 10, FuelRate: 2, Durability: 2}, cfg)
	if err != nil {
		t.Fatalf("BuildCostModel failed: %v", err)
	}
	p := Position{Row: 0, Col: 0}
	if fragile.CellAt(p).RiskFactor <= sturdy.CellAt(p).RiskFactor {
		t.Errorf("lower durability must raise risk: %v <= %v", fragile.CellAt(p).RiskFactor, sturdy.CellAt(p).RiskFactor)
	}
}

func TestNonlinearCurves(t *testing.T) {
	cfg := Config{BlockThreshold: 0.8, SlowdownGain: 3, SlowdownExponent: 2, RiskGain: 10, RiskExponent: 2}
	field := NewIceField(1, 1)
	field.Set(0, 0, 0.5)
	g, err := BuildCostModel(field, testShip(), cfg)
	if err != nil {
		t.Fatalf("BuildCostModel failed: %v", err)
	}
	cell := g.CellAt(Position{Row: 0, Col: 0})
	wantTime := (1 + 3*0.25) / 10
	if math.Abs(cell.TimeFactor-wantTime) > 1e-12 {
		t.Errorf("time factor is %v, should be %v", cell.TimeFactor, wantTime)
	}
	wantRisk := 10 * 0.25 / 5
	if math.Abs(cell.RiskFactor-wantRisk) > 1e-12 {
		t.Errorf("risk factor is %v, should be %v", cell.RiskFactor, wantRisk)
	}
}

func TestCellCenterRoundTrip(t *testing.T) {
	field := NewIceField(4, 6)
	g, err := BuildCostModel(field, testShip(), MakeDefaultConfig())
	if err != nil {
		t.Fatalf("BuildCostModel failed: %v", err)
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 6; col++ {
			p := Position{Row: row, Col: col}
			back, ok := g.CellAtPoint(g.CellCenter(p))
			if !ok {
				t.Fatalf("cell center of %v is outside the bound", p)
			}
			if back != p {
				t.Errorf("round trip is %v, should be %v", back, p)
			}
		}
	}
}
