package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/Siddigz/arctic-ship-routing/pkg/graph/path"
	"github.com/Siddigz/arctic-ship-routing/pkg/server/openapi_server"
)

func main() {
	gridFile := flag.String("grid", "arctic.grid", "Ice field file")
	port := flag.Int("port", 8081, "Listen port")
	maxLabels := flag.Int("max-labels", 64, "Pareto set capacity per node")
	patience := flag.Int("patience", 0, "Early exit patience, 0 disables")
	flag.Parse()

	options := path.MakeDefaultSearchOptions()
	options.MaxLabelsPerNode = *maxLabels
	options.EarlyExitPatience = *patience

	service, err := openapi_server.NewDefaultApiService(*gridFile, options)
	if err != nil {
		log.Fatal(err)
	}
	controller := openapi_server.NewDefaultApiController(service)
	router := openapi_server.NewRouter(controller)

	log.Printf("Listening on port %d\n", *port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", *port), router))
}
