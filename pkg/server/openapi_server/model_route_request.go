package openapi_server


type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type ShipSpec struct {
	Speed      float64 `json:"speed"`
	FuelRate   float64 `json:"fuelRate"`
	Durability float64 `json:"durability"`
}

// RouteRequest selects the endpoints and the vessel for one route
// computation. Either a catalog ship class or an inline ship spec must be
// given.
type RouteRequest struct {
	Origin      Point     `json:"origin"`
	Destination Point     `json:"destination"`
	ShipClass   string    `json:"shipClass,omitempty"`
	Ship        *ShipSpec `json:"ship,omitempty"`
	Parallel    bool      `json:"parallel,omitempty"`
}

// AssertRouteRequestRequired checks if the required fields are not zero-ed
func AssertRouteRequestRequired(obj RouteRequest) error {
	if obj.ShipClass == "" && obj.Ship == nil {
		return &RequiredError{Field: "shipClass"}
	}
	return nil
}
