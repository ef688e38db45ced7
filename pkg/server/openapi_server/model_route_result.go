package openapi_server

// RouteVariant is one of the three named routes of a result.
type RouteVariant struct {
	Objective string  `json:"objective"`
	Waypoints []Point `json:"waypoints"`
	Time      float64 `json:"time"`
	Fuel      float64 `json:"fuel"`
	Risk      float64 `json:"risk"`
	Hops      int     `json:"hops"`
}

type RouteResult struct {
	Origin       Point        `json:"origin"`
	Destination  Point        `json:"destination"`
	Reachable    bool         `json:"reachable"`
	Exact        bool         `json:"exact"`
	FrontierSize int          `json:"frontierSize"`
	Fastest      RouteVariant `json:"fastest,omitempty"`
	Eco          RouteVariant `json:"eco,omitempty"`
	Safest       RouteVariant `json:"safest,omitempty"`
}

type GridInfo struct {
	Rows           int        `json:"rows"`
	Cols           int        `json:"cols"`
	NavigableCells int        `json:"navigableCells"`
	BlockThreshold float64    `json:"blockThreshold"`
	Bound          [4]float64 `json:"bound"` // minLon, minLat, maxLon, maxLat
}
