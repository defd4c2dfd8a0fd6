package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pacekeeper/internal/app"
	"github.com/shrimpsizemoose/pacekeeper/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	if err := service.Backend.ApplyMigrations(context.Background()); err != nil {
		logger.Error.Fatalf("Failed to apply migrations: %v", err)
	}

	mux := http.NewServeMux()
	handlers.NewDeadlineHandler(service).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting pacekeeper on %s (%s dialect)", service.Config.Server.Port, service.Logic.Dialect)
	logger.Debug.Println("Requiring headers:")
	for _, h := range service.Config.API.RequiredHeaders {
		logger.Debug.Printf("  %s: %s", h.Name, h.Value)
	}
	if err := http.ListenAndServe(service.Config.Server.Port, mux); err != nil {
		logger.Error.Fatalf("Pacekeeper server failed: %v", err)
	}
}
