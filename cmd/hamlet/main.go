// Package main is the entry point for the hamlet collision viewer.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/samdwyer/hamlet/internal/game"
	"github.com/samdwyer/hamlet/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "hamlet.yaml", "path to the viewer configuration file")
	flag.Parse()

	// Load .env for local development; env vars may also be set directly
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()

	// Telemetry is optional: the viewer runs without observability when
	// no OTLP endpoint is configured
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize viewer: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		g.Close()
		log.Fatalf("Viewer error: %v", err)
	}
}
