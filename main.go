package main

import (
	"log"

	"feedbacklens/adapters/sqlite"
	"feedbacklens/adapters/tabular"
	"feedbacklens/app"
	"feedbacklens/internal/api"
	"feedbacklens/internal/config"
	"feedbacklens/internal/insight"
	"feedbacklens/internal/testkit"
	"feedbacklens/ports"
	"feedbacklens/ui"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	// Load .env file if present (development convenience)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] Configuration error: %v", err)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("[Main] Query engine init failed: %v", err)
	}

	service := app.NewInsightService(
		engine,
		tabular.NewReader(),
		testkit.NewGenerator(),
		cfg.Insight,
	)

	ops := api.NewOpsServer(cfg, version)
	go func() {
		log.Printf("[Main] Ops endpoints on :%s", cfg.Server.OpsPort)
		if err := ops.Run(); err != nil {
			log.Fatalf("[Main] Ops server failed: %v", err)
		}
	}()

	server := ui.NewServer(service, cfg)
	log.Printf("[Main] Insight API on :%s (backend=%s)", cfg.Server.Port, cfg.Data.QueryBackend)
	if err := server.Run(); err != nil {
		log.Fatalf("[Main] Server failed: %v", err)
	}
}

func buildEngine(cfg *config.Config) (ports.QueryEngine, error) {
	switch cfg.Data.QueryBackend {
	case "sqlite":
		return sqlite.NewEngine(cfg.Insight)
	default:
		return insight.NewEngine(cfg.Insight), nil
	}
}
