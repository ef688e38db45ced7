package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Siddigz/arctic-ship-routing/pkg/geojson"
	"github.com/Siddigz/arctic-ship-routing/pkg/graph"
	"github.com/Siddigz/arctic-ship-routing/pkg/graph/path"
	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
	"github.com/Siddigz/arctic-ship-routing/pkg/routing"
)

func main() {
	gridFile := flag.String("grid", "arctic.grid", "Ice field file")
	shipClass := flag.String("ship", "Ice-Class Cargo", "Catalog ship class")
	shipFile := flag.String("ship-file", "", "Read the ship profile from a JSON file instead")
	from := flag.String("from", "", "Start cell as row,col")
	to := flag.String("to", "", "Destination cell as row,col")
	parallel := flag.Bool("parallel", false, "Run the three weight emphases concurrently")
	maxLabels := flag.Int("max-labels", 64, "Pareto set capacity per node")
	patience := flag.Int("patience", 0, "Early exit patience, 0 disables")
	timeout := flag.Duration("timeout", 0, "Cancel the search after this duration, 0 disables")
	geojsonFile := flag.String("geojson", "", "Write the routes as GeoJSON to this file")
	debugLevel := flag.Int("debug", 0, "Set the debug level of the search")
	flag.Parse()

	field, err := grid.NewIceFieldFromFile(*gridFile)
	if err != nil {
		log.Fatal(err)
	}

	ship, err := resolveShip(*shipClass, *shipFile)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	g, err := grid.BuildCostModel(field, ship, grid.MakeDefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	gr := graph.BuildGraph(g)
	elapsed := time.Since(start)
	fmt.Printf("[TIME] Build cost model and graph: %s\n", elapsed)
	fmt.Printf("Nodes: %d, arcs: %d, navigable: %d\n", gr.NodeCount(), gr.ArcCount(), g.NavigableCount())

	origin, err := parseCell(*from, field)
	if err != nil {
		log.Fatal(err)
	}
	destination, err := parseCell(*to, field)
	if err != nil {
		log.Fatal(err)
	}

	options := path.MakeDefaultSearchOptions()
	options.MaxLabelsPerNode = *maxLabels
	options.EarlyExitPatience = *patience

	router := routing.NewRouter(g, gr, options)
	router.SetDebugLevel(*debugLevel)

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start = time.Now()
	var routes routing.RouteSet
	if *parallel {
		routes, err = router.FindRoutesParallel(ctx, origin, destination)
	} else {
		routes, err = router.FindRoutes(ctx, origin, destination)
	}
	elapsed = time.Since(start)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[TIME] Compute routes: %s\n", elapsed)
	fmt.Printf("Frontier size: %d, exact: %v\n", routes.FrontierSize, routes.Exact)

	printRoute(routes.Fastest)
	printRoute(routes.Eco)
	printRoute(routes.Safest)

	if *geojsonFile != "" {
		collection := geojson.RouteCollection(routes)
		raw, err := collection.MarshalJSON()
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(*geojsonFile, raw, 0644); err != nil {
			log.Fatal(err)
		}
	}
}

func printRoute(route routing.Route) {
	fmt.Printf("%-8s time=%.3f fuel=%.3f risk=%.3f hops=%d\n",
		route.Objective, route.Cost.Time, route.Cost.Fuel, route.Cost.Risk, route.Hops())
}

func resolveShip(class, file string) (grid.ShipProfile, error) {
	if file != "" {
		return grid.ReadShipProfile(file)
	}
	ship, ok := grid.ShipByName(class)
	if !ok {
		return grid.ShipProfile{}, fmt.Errorf("unknown ship class: %v", class)
	}
	return ship, nil
}

func parseCell(text string, field *grid.IceField) (grid.Position, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return grid.Position{}, fmt.Errorf("cell needs row,col, got %q", text)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return grid.Position{}, err
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return grid.Position{}, err
	}
	if row < 0 || row >= field.Rows || col < 0 || col >= field.Cols {
		return grid.Position{}, fmt.Errorf("cell %d,%d outside the %dx%d field", row, col, field.Rows, field.Cols)
	}
	return grid.Position{Row: row, Col: col}, nil
}
