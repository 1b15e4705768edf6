package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/acmecorp/dashboard-server/internal/config"
	"github.com/acmecorp/dashboard-server/internal/seed"
	"github.com/acmecorp/dashboard-server/internal/utils"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := utils.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.SetupDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to set up database", zap.Error(err))
	}
	defer db.Close()

	if err := seed.Run(context.Background(), db, logger); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}
}
