package main

import (
	"context"
	"log"

	"tallyard/internal/app/bootstrap"

	"github.com/joho/godotenv"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	_ = godotenv.Load()

	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("build api: %v", err)
	}
	defer func() {
		_ = app.Close()
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("run api: %v", err)
	}
}
