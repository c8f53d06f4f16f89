package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/beatporter/beatporter/config"
	"github.com/beatporter/beatporter/internal/export"
	"github.com/beatporter/beatporter/internal/library"
	"github.com/beatporter/beatporter/internal/server"
)

func main() {
	port := flag.String("port", "", "Server port (overrides configuration)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load("./config/config.yaml")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	// Library registry with background eviction of idle libraries
	store := library.NewStore(time.Duration(cfg.Library.TTLMinutes) * time.Minute)
	store.StartSweeper(context.Background(), time.Duration(cfg.Library.SweepIntervalMinutes)*time.Minute)

	bundles, err := bundleStorage(cfg)
	if err != nil {
		slog.Error("Failed to initialize bundle storage", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, store, bundles)

	listenPort := cfg.Server.Port
	if *port != "" {
		listenPort = *port
	}

	slog.Info("Starting library interchange API server", "port", listenPort)
	if err := srv.Start(listenPort); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func bundleStorage(cfg *config.Config) (export.Storage, error) {
	switch cfg.Storage.Type {
	case "gcs":
		return export.NewGCSStorage(context.Background(),
			cfg.Storage.Bucket, cfg.Storage.ObjectPrefix, cfg.Storage.CredentialsFile)
	default:
		return export.NewLocalStorage(cfg.Storage.OutputDir)
	}
}
