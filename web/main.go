package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	port := flag.Int("port", cfg.Port, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of JSON scenes to offer")
	timeout := flag.Duration("timeout", server.DefaultRenderTimeout, "Maximum time per render")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir)
	webServer.SetRenderTimeout(*timeout)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/render to render the default scene", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
