package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/nfrund/parley/internal/config"
	"github.com/nfrund/parley/internal/logging"
	"github.com/nfrund/parley/internal/server"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logging.New(cfg.LogFormat, cfg.LogLevel)

	s, err := server.New(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
