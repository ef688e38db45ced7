// Package geojson renders computed routes as GeoJSON for the external
// map rendering layer. The core mandates no wire format; this is a thin
// convenience on top of it.
package geojson

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Siddigz/arctic-ship-routing/pkg/routing"
)

// RouteFeature converts one route into a LineString feature carrying the
// objective tag and the accumulated totals as properties. A zero-length
// route (start equals destination) becomes a Point feature.
func RouteFeature(route routing.Route) *geojson.Feature {
	var feature *geojson.Feature
	if len(route.Waypoints) < 2 {
		var point orb.Point
		if len(route.Waypoints) == 1 {
			point = route.Waypoints[0]
		}
		feature = geojson.NewFeature(point)
	} else {
		feature = geojson.NewFeature(orb.LineString(route.Waypoints))
	}
	feature.Properties["objective"] = route.Objective
	feature.Properties["time"] = route.Cost.Time
	feature.Properties["fuel"] = route.Cost.Fuel
	feature.Properties["risk"] = route.Cost.Risk
	feature.Properties["hops"] = route.Hops()
	return feature
}

// RouteCollection bundles the three route variants of a result set into one
// feature collection.
func RouteCollection(set routing.RouteSet) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Append(RouteFeature(set.Fastest))
	fc.Append(RouteFeature(set.Eco))
	fc.Append(RouteFeature(set.Safest))
	return fc
}
