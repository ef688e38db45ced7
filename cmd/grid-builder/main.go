package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/Siddigz/arctic-ship-routing/internal/pbf"
	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

func main() {
	iceFile := flag.String("ice", "", "Read the ice field from this file instead of generating one")
	rows := flag.Int("rows", 200, "Row count of a generated field")
	cols := flag.Int("cols", 200, "Column count of a generated field")
	seed := flag.Int64("seed", 42, "Seed for the generated ice concentrations")
	bounds := flag.String("bounds", "-40,66,40,84", "Geographic bound as minLon,minLat,maxLon,maxLat")
	pbfFile := flag.String("pbf", "", "Apply a land mask from coastline ways of this OSM pbf extract")
	useScanner := flag.Bool("scanner", false, "Use the ordered osm scanner for the pbf import")
	jsonFile := flag.String("json", "", "Additionally export the field as JSON")
	output := flag.String("o", "arctic.grid", "Output field file")
	flag.Parse()

	var field *grid.IceField
	var err error

	start := time.Now()
	if *iceFile != "" {
		field, err = grid.NewIceFieldFromFile(*iceFile)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		bound, err := parseBounds(*bounds)
		if err != nil {
			log.Fatal(err)
		}
		field = generateField(*rows, *cols, *seed, bound)
	}
	elapsed := time.Since(start)
	fmt.Printf("[TIME] Load/generate ice field: %s\n", elapsed)

	if *pbfFile != "" {
		start = time.Now()
		if *useScanner {
			scanner := pbf.NewCoastlineScanner(*pbfFile, field)
			if err := scanner.Import(); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("Coastline ways: %d, marked cells: %d\n", scanner.ImportedWays(), scanner.MarkedCells())
		} else {
			importer := pbf.NewLandImporter(*pbfFile, field)
			if err := importer.Import(); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("Coastline ways: %d, marked cells: %d\n", importer.ImportedWays(), importer.MarkedCells())
		}
		elapsed = time.Since(start)
		fmt.Printf("[TIME] Import land mask: %s\n", elapsed)
	}

	start = time.Now()
	if err := grid.WriteField(field, *output); err != nil {
		log.Fatal(err)
	}
	elapsed = time.Since(start)
	fmt.Printf("[TIME] Write field: %s\n", elapsed)
	fmt.Printf("Field size: %d x %d\n", field.Rows, field.Cols)

	if *jsonFile != "" {
		if err := pbf.ExportFieldJson(field, *jsonFile); err != nil {
			log.Fatal(err)
		}
	}
}

func parseBounds(text string) (orb.Bound, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("bounds need 4 values, got %d", len(parts))
	}
	values := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, err
		}
		values[i] = v
	}
	return orb.Bound{
		Min: orb.Point{values[0], values[1]},
		Max: orb.Point{values[2], values[3]},
	}, nil
}

// generateField creates a synthetic ice field: layered value noise, biased
// towards heavier ice in the north (low rows).
func generateField(rows, cols int, seed int64, bound orb.Bound) *grid.IceField {
	field := grid.NewIceField(rows, cols)
	field.Bound = bound
	r := rand.New(rand.NewSource(seed))

	// coarse noise lattice, bilinearly interpolated
	const lattice = 16
	coarse := make([]float64, (lattice+1)*(lattice+1))
	for i := range coarse {
		coarse[i] = r.Float64()
	}
	sample := func(u, v float64) float64 {
		x := u * lattice
		y := v * lattice
		x0, y0 := int(x), int(y)
		fx, fy := x-float64(x0), y-float64(y0)
		c00 := coarse[y0*(lattice+1)+x0]
		c10 := coarse[y0*(lattice+1)+x0+1]
		c01 := coarse[(y0+1)*(lattice+1)+x0]
		c11 := coarse[(y0+1)*(lattice+1)+x0+1]
		return c00*(1-fx)*(1-fy) + c10*fx*(1-fy) + c01*(1-fx)*fy + c11*fx*fy
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			u := float64(col) / float64(cols)
			v := float64(row) / float64(rows)
			northBias := 0.6 * (1 - v)
			c := 0.7*sample(u*0.999, v*0.999) + northBias - 0.25
			if c < 0 {
				c = 0
			}
			if c > 1 {
				c = 1
			}
			field.Set(row, col, c)
		}
	}
	return field
}
