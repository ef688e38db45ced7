package pbf

import (
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/qedus/osmpbf"

	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

// LandImporter reads coastline ways from an OSM pbf extract and marks the
// cells they touch as land in an ice field. The pbf format stores way
// geometry as node references, so the import runs in two passes: collect
// node coordinates first, resolve ways second.
type LandImporter struct {
	filename string
	field    *grid.IceField
	nodes    map[int64]orb.Point

	importedWays int
	markedCells  int
}

func NewLandImporter(filename string, field *grid.IceField) *LandImporter {
	return &LandImporter{
		filename: filename,
		field:    field,
		nodes:    make(map[int64]orb.Point),
	}
}

func (li *LandImporter) Import() error {
	if err := li.collectNodes(); err != nil {
		return err
	}

	file, err := os.Open(li.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	err = decoder.Start(runtime.GOMAXPROCS(-1))
	if err != nil {
		return err
	}

	for {
		if v, err := decoder.Decode(); err == nil {
			switch v := v.(type) {
			case *osmpbf.Way:
				if v.Tags["natural"] != "coastline" {
					continue
				}
				points := make([]orb.Point, 0, len(v.NodeIDs))
				for _, nodeID := range v.NodeIDs {
					if point, ok := li.nodes[nodeID]; ok {
						points = append(points, point)
					}
				}
				if len(points) > 0 {
					li.importedWays++
					li.markedCells += rasterizeWay(li.field, points)
				}
			}
		} else {
			break
		}
	}
	return nil
}

// ImportedWays reports the number of coastline ways that were resolved.
func (li *LandImporter) ImportedWays() int {
	return li.importedWays
}

// MarkedCells reports the number of cell markings. Cells touched by several
// ways are counted once per way.
func (li *LandImporter) MarkedCells() int {
	return li.markedCells
}

func (li *LandImporter) collectNodes() error {
	file, err := os.Open(li.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	err = decoder.Start(runtime.GOMAXPROCS(-1))
	if err != nil {
		return err
	}

	for {
		if v, err := decoder.Decode(); err == nil {
			switch v := v.(type) {
			case *osmpbf.Node:
				li.nodes[v.ID] = orb.Point{v.Lon, v.Lat}
			}
		} else {
			break
		}
	}
	return nil
}

// rasterizeWay marks every cell a polyline passes through as land and
// returns the number of markings. Segments are sampled at half the cell
// pitch, which cannot skip a cell on an eight-connected raster.
func rasterizeWay(field *grid.IceField, points []orb.Point) int {
	marked := 0
	for i := 0; i+1 < len(points); i++ {
		marked += rasterizeSegment(field, points[i], points[i+1])
	}
	if len(points) == 1 {
		marked += markCell(field, points[0])
	}
	return marked
}

func rasterizeSegment(field *grid.IceField, from, to orb.Point) int {
	bound := field.Bound
	cellWidth := (bound.Max.Lon() - bound.Min.Lon()) / float64(field.Cols)
	cellHeight := (bound.Max.Lat() - bound.Min.Lat()) / float64(field.Rows)
	pitch := cellWidth
	if cellHeight < pitch {
		pitch = cellHeight
	}

	dLon := to.Lon() - from.Lon()
	dLat := to.Lat() - from.Lat()
	length := dLon
	if length < 0 {
		length = -length
	}
	if dLat > length {
		length = dLat
	} else if -dLat > length {
		length = -dLat
	}

	steps := int(length/(pitch/2)) + 1
	marked := 0
	for step := 0; step <= steps; step++ {
		t := float64(step) / float64(steps)
		p := orb.Point{from.Lon() + t*dLon, from.Lat() + t*dLat}
		marked += markCell(field, p)
	}
	return marked
}

func markCell(field *grid.IceField, p orb.Point) int {
	bound := field.Bound
	if !bound.Contains(p) {
		return 0
	}
	col := int((p.Lon() - bound.Min.Lon()) / (bound.Max.Lon() - bound.Min.Lon()) * float64(field.Cols))
	// row 0 sits at the northern edge
	row := int((bound.Max.Lat() - p.Lat()) / (bound.Max.Lat() - bound.Min.Lat()) * float64(field.Rows))
	if col >= field.Cols {
		col = field.Cols - 1
	}
	if row >= field.Rows {
		row = field.Rows - 1
	}
	field.SetLand(row, col)
	return 1
}
