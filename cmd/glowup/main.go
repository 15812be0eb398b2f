package main

import (
	"context"
	"log"

	"github.com/aussiebroadwan/glowup/internal/glowup/app"
)

func main() {
	cfg := app.LoadConfig()
	ctx := context.Background()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
