package openapi_server

import (
	"context"
	"net/http"
	"sync"

	"github.com/Siddigz/arctic-ship-routing/pkg/geojson"
	"github.com/Siddigz/arctic-ship-routing/pkg/graph"
	"github.com/Siddigz/arctic-ship-routing/pkg/graph/path"
	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
	"github.com/Siddigz/arctic-ship-routing/pkg/routing"
	"github.com/paulmach/orb"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	field   *grid.IceField
	config  grid.Config
	options path.SearchOptions

	// Cost model and graph depend on the ship profile, so each profile gets
	// its own router. Entries are never evicted.
	routers map[grid.ShipProfile]*routing.Router
	mutex   sync.Mutex
}

// NewDefaultApiService creates a default api service over an ice field file.
func NewDefaultApiService(fieldFile string, options path.SearchOptions) (DefaultApiServicer, error) {
	field, err := grid.NewIceFieldFromFile(fieldFile)
	if err != nil {
		return nil, err
	}
	return &DefaultApiService{
		field:   field,
		config:  grid.MakeDefaultConfig(),
		options: options,
		routers: make(map[grid.ShipProfile]*routing.Router),
	}, nil
}

func (s *DefaultApiService) routerFor(ship grid.ShipProfile) (*routing.Router, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if router, ok := s.routers[ship]; ok {
		return router, nil
	}
	g, err := grid.BuildCostModel(s.field, ship, s.config)
	if err != nil {
		return nil, err
	}
	router := routing.NewRouter(g, graph.BuildGraph(g), s.options)
	s.routers[ship] = router
	return router, nil
}

func (s *DefaultApiService) resolveShip(routeRequest RouteRequest) (grid.ShipProfile, error) {
	if routeRequest.Ship != nil {
		ship := grid.ShipProfile{
			Speed:      routeRequest.Ship.Speed,
			FuelRate:   routeRequest.Ship.FuelRate,
			Durability: routeRequest.Ship.Durability,
		}
		return ship, ship.Validate()
	}
	ship, ok := grid.ShipByName(routeRequest.ShipClass)
	if !ok {
		return grid.ShipProfile{}, &RequiredError{Field: "shipClass"}
	}
	return ship, nil
}

func (s *DefaultApiService) findRoutes(ctx context.Context, routeRequest RouteRequest) (routing.RouteSet, error) {
	ship, err := s.resolveShip(routeRequest)
	if err != nil {
		return routing.RouteSet{}, err
	}
	router, err := s.routerFor(ship)
	if err != nil {
		return routing.RouteSet{}, err
	}

	origin, ok := router.NearestNavigable(orb.Point{routeRequest.Origin.Lon, routeRequest.Origin.Lat})
	if !ok {
		return routing.RouteSet{}, routing.ErrUnreachableEndpoint
	}
	destination, ok := router.NearestNavigable(orb.Point{routeRequest.Destination.Lon, routeRequest.Destination.Lat})
	if !ok {
		return routing.RouteSet{}, routing.ErrUnreachableEndpoint
	}

	if routeRequest.Parallel {
		return router.FindRoutesParallel(ctx, origin, destination)
	}
	return router.FindRoutes(ctx, origin, destination)
}

// ComputeRoutes - Compute the three named routes between two points
func (s *DefaultApiService) ComputeRoutes(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	routes, err := s.findRoutes(ctx, routeRequest)
	if err != nil {
		return ImplResponse{}, err
	}

	routeResult := RouteResult{
		Origin:       routeRequest.Origin,
		Destination:  routeRequest.Destination,
		Reachable:    true,
		Exact:        routes.Exact,
		FrontierSize: routes.FrontierSize,
		Fastest:      asVariant(routes.Fastest),
		Eco:          asVariant(routes.Eco),
		Safest:       asVariant(routes.Safest),
	}
	return Response(http.StatusOK, routeResult), nil
}

// ComputeRoutesGeoJson - Compute the three named routes as a GeoJSON feature collection
func (s *DefaultApiService) ComputeRoutesGeoJson(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	routes, err := s.findRoutes(ctx, routeRequest)
	if err != nil {
		return ImplResponse{}, err
	}
	return Response(http.StatusOK, geojson.RouteCollection(routes)), nil
}

func (s *DefaultApiService) GetGridInfo(ctx context.Context) (ImplResponse, error) {
	// The cost model is per-ship, but the blocked set only depends on the
	// configured threshold. Count navigability without any ship influence.
	navigable := 0
	for row := 0; row < s.field.Rows; row++ {
		for col := 0; col < s.field.Cols; col++ {
			i := row*s.field.Cols + col
			land := s.field.Land != nil && s.field.Land[i]
			if !land && s.field.Values[i] <= s.config.BlockThreshold {
				navigable++
			}
		}
	}
	info := GridInfo{
		Rows:           s.field.Rows,
		Cols:           s.field.Cols,
		NavigableCells: navigable,
		BlockThreshold: s.config.BlockThreshold,
		Bound: [4]float64{
			s.field.Bound.Min.Lon(), s.field.Bound.Min.Lat(),
			s.field.Bound.Max.Lon(), s.field.Bound.Max.Lat(),
		},
	}
	return Response(http.StatusOK, info), nil
}

func (s *DefaultApiService) GetShips(ctx context.Context) (ImplResponse, error) {
	return Response(http.StatusOK, grid.Catalog()), nil
}

func asVariant(route routing.Route) RouteVariant {
	waypoints := make([]Point, 0, len(route.Waypoints))
	for _, waypoint := range route.Waypoints {
		waypoints = append(waypoints, Point{Lat: waypoint.Lat(), Lon: waypoint.Lon()})
	}
	return RouteVariant{
		Objective: route.Objective,
		Waypoints: waypoints,
		Time:      route.Cost.Time,
		Fuel:      route.Cost.Fuel,
		Risk:      route.Cost.Risk,
		Hops:      route.Hops(),
	}
}
