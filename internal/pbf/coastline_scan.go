package pbf

import (
	"context"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

// CoastlineScanner is an alternative land importer built on the ordered
// osm scanner. It produces the same land mask as LandImporter; keeping
// both lets the importers cross-check each other on real extracts.
type CoastlineScanner struct {
	filename string
	field    *grid.IceField
	nodes    map[osm.NodeID]orb.Point

	importedWays int
	markedCells  int
}

func NewCoastlineScanner(filename string, field *grid.IceField) *CoastlineScanner {
	return &CoastlineScanner{
		filename: filename,
		field:    field,
		nodes:    make(map[osm.NodeID]orb.Point),
	}
}

func (cs *CoastlineScanner) Import() error {
	if err := cs.scan(func(o osm.Object) {
		if node, ok := o.(*osm.Node); ok {
			cs.nodes[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	}); err != nil {
		return err
	}

	return cs.scan(func(o osm.Object) {
		way, ok := o.(*osm.Way)
		if !ok || way.Tags.Find("natural") != "coastline" {
			return
		}
		points := make([]orb.Point, 0, len(way.Nodes))
		for _, wayNode := range way.Nodes {
			if point, ok := cs.nodes[wayNode.ID]; ok {
				points = append(points, point)
			}
		}
		if len(points) > 0 {
			cs.importedWays++
			cs.markedCells += rasterizeWay(cs.field, points)
		}
	})
}

func (cs *CoastlineScanner) ImportedWays() int {
	return cs.importedWays
}

func (cs *CoastlineScanner) MarkedCells() int {
	return cs.markedCells
}

func (cs *CoastlineScanner) scan(handle func(osm.Object)) error {
	file, err := os.Open(cs.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	defer scanner.Close()

	for scanner.Scan() {
		handle(scanner.Object())
	}
	return scanner.Err()
}
