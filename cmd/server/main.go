// Package main implements the entry point for the Flodesk proxy server,
// which translates a small REST surface into calls against the Flodesk
// subscriber and segment API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/AutomatedMarketer/flodesk/internal/config"
	"github.com/AutomatedMarketer/flodesk/internal/flodesk"
	"github.com/AutomatedMarketer/flodesk/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

// initializeApp loads configuration and sets up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"flodesk_base_url", cfg.Flodesk.BaseURL)

	client := flodesk.NewClient(cfg.Flodesk, appLogger)

	return &application{
		config:   cfg,
		logger:   appLogger,
		gateway:  client,
		segments: client,
	}, nil
}
