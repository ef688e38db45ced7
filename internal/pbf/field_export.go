package pbf

import (
	"encoding/json"
	"os"

	"github.com/Siddigz/arctic-ship-routing/pkg/grid"
)

// ExportFieldJson writes an ice field as plain JSON, mostly for inspecting
// imported land masks in a frontend.
func ExportFieldJson(field *grid.IceField, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(field)
}
