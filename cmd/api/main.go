package main

import (
	"flag"
	"log"

	"dataforge/internal/api"
)

// main starts the HTTP service exposing the liveness and table-listing
// endpoints.
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	srv := api.NewServer(api.Config{Addr: *addr})
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("api: %v", err)
	}
}
