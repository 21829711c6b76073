package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/starcrawl/star-crawler/cfg"
	"github.com/starcrawl/star-crawler/internal/model"
	"github.com/starcrawl/star-crawler/pkg/db"
	"github.com/starcrawl/star-crawler/pkg/log"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	logger, _ := log.NewCslLogger()
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		logger.Critical(ctx, "Failed to load configuration: %v", err)
		os.Exit(1)
	}

	postgres, _ := db.NewPostgres(config)
	if err := postgres.Ping(); err != nil {
		logger.Critical(ctx, "Failed to connect to database: %v", err)
		os.Exit(1)
	}

	repoMd, _ := model.NewRepo(config, logger, postgres)
	if err := postgres.Migrate(repoMd); err != nil {
		logger.Critical(ctx, "Failed to migrate schema: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Database schema setup completed successfully")
}
