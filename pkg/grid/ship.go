package grid

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidProfile indicates a ship profile with a non-positive attribute.
var ErrInvalidProfile = errors.New("invalid ship profile")

// ShipProfile describes the vessel the cost model is built for.
type ShipProfile struct {
	Speed      float64 `json:"speed"`      // cruise speed, grid units per hour
	FuelRate   float64 `json:"fuelRate"`   // base fuel consumption per grid unit
	Durability float64 `json:"durability"` // ice resistance rating, higher is tougher
}

// Validate checks that every attribute is strictly positive.
func (s ShipProfile) Validate() error {
	if s.Speed <= 0 {
		return fmt.Errorf("%w: speed %v must be positive", ErrInvalidProfile, s.Speed)
	}
	if s.FuelRate <= 0 {
		return fmt.Errorf("%w: fuel rate %v must be positive", ErrInvalidProfile, s.FuelRate)
	}
	if s.Durability <= 0 {
		return fmt.Errorf("%w: durability %v must be positive", ErrInvalidProfile, s.Durability)
	}
	return nil
}

// ShipClass is a named catalog entry.
type ShipClass struct {
	Name    string      `json:"name"`
	Profile ShipProfile `json:"profile"`
}

// Catalog returns the built-in ship classes.
func Catalog() []ShipClass {
	return []ShipClass{
		{Name: "Polar Icebreaker", Profile: ShipProfile{Speed: 14, FuelRate: 3.2, Durability: 9}},
		{Name: "Ice-Class Cargo", Profile: ShipProfile{Speed: 16, FuelRate: 2.4, Durability: 6}},
		{Name: "Arctic Tanker", Profile: ShipProfile{Speed: 12, FuelRate: 2.8, Durability: 5}},
		{Name: "Research Vessel", Profile: ShipProfile{Speed: 18, FuelRate: 1.6, Durability: 4}},
		{Name: "Coastal Freighter", Profile: ShipProfile{Speed: 20, FuelRate: 1.2, Durability: 2}},
	}
}

// ShipByName looks up a catalog entry. The boolean result reports whether the
// class exists.
func ShipByName(name string) (ShipProfile, bool) {
	for _, class := range Catalog() {
		if class.Name == name {
			return class.Profile, true
		}
	}
	return ShipProfile{}, false
}

// ReadShipProfile loads a profile from a JSON file and validates it.
func ReadShipProfile(filename string) (ShipProfile, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return ShipProfile{}, err
	}
	var profile ShipProfile
	if err := json.Unmarshal(bytes, &profile); err != nil {
		return ShipProfile{}, err
	}
	if err := profile.Validate(); err != nil {
		return ShipProfile{}, err
	}
	return profile, nil
}
