package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pacekeeper/internal/app"
	"github.com/shrimpsizemoose/pacekeeper/internal/export"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	var once = flag.Bool("once", false, "Export once and exit")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	exporter := export.NewLedgerExporter(service.Backend, service.Logic, service.Config.Export.OutputDir)

	if *once || service.Config.Export.Schedule == "" {
		path, err := exporter.Export(context.Background())
		if err != nil {
			logger.Error.Fatalf("Ledger export failed: %v", err)
		}
		logger.Info.Printf("Wrote %s", path)
		return
	}

	if err := exporter.Schedule(service.Config.Export.Schedule); err != nil {
		logger.Error.Fatalf("Failed to schedule exporter: %v", err)
	}
	defer exporter.Stop()

	logger.Info.Printf("Exporting appeal ledger on %q", service.Config.Export.Schedule)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info.Println("Exporter stopped")
}
