package main

import (
	"context"
	"flag"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pacekeeper/internal/app"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	backend, err := app.NewBackend(&config.Profile)
	if err != nil {
		logger.Error.Fatalf("Failed to open store: %v", err)
	}
	defer backend.Close()

	if err := backend.ApplyMigrations(context.Background()); err != nil {
		logger.Error.Fatalf("Failed to apply migrations: %v", err)
	}
	logger.Info.Printf("Migrations applied for profile %q", config.Profile.Name)
}
