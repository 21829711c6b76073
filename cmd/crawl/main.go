package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/starcrawl/star-crawler/cfg"
	"github.com/starcrawl/star-crawler/internal/crawler"
	"github.com/starcrawl/star-crawler/internal/githubapi"
	"github.com/starcrawl/star-crawler/internal/model"
	"github.com/starcrawl/star-crawler/internal/store"
	"github.com/starcrawl/star-crawler/pkg/db"
	"github.com/starcrawl/star-crawler/pkg/kafka"
	"github.com/starcrawl/star-crawler/pkg/log"
)

func main() {
	// .env is optional; deployments usually inject the environment directly.
	_ = godotenv.Load()

	sink := flag.String("sink", "db", "Persistence sink: db writes straight to Postgres, kafka publishes for cmd/consumer")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, _ := log.NewCslLogger()
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		logger.Critical(ctx, "Failed to load configuration: %v", err)
		os.Exit(1)
	}

	if config.GithubApi.AccessToken == "" {
		logger.Warn(ctx, "No access token configured. Using unauthenticated requests (limited rate)")
	}

	postgres, _ := db.NewPostgres(config)
	repoMd, _ := model.NewRepo(config, logger, postgres)

	var gateway crawler.Store
	switch *sink {
	case "db":
		gateway, _ = store.NewDbStore(logger, repoMd)
	case "kafka":
		producer, err := kafka.NewProducer(config, logger, config.Kafka.TopicRepo)
		if err != nil {
			logger.Critical(ctx, "Failed to create kafka producer: %v", err)
			os.Exit(1)
		}
		defer producer.Close()
		gateway, _ = store.NewKafkaStore(logger, producer)
	default:
		logger.Critical(ctx, "Unknown sink: %s", *sink)
		os.Exit(1)
	}

	caller := githubapi.NewCaller(logger, config)
	starCrawler, _ := crawler.NewStarCrawler(logger, config, caller, gateway, nil)

	logger.Info(ctx, "Starting GitHub star crawler (sink=%s)", *sink)
	total, err := starCrawler.Crawl(ctx, config.Crawler.TargetCount)
	if err != nil {
		logger.Critical(ctx, "Crawl failed after %d repositories: %v", total, err)
		os.Exit(1)
	}

	if *sink == "db" {
		if count, err := repoMd.Count(ctx); err == nil {
			logger.Info(ctx, "Total repositories in database: %d", count)
		}
	}

	if total == 0 {
		logger.Error(ctx, "Crawl finished without any repositories")
		os.Exit(1)
	}
	logger.Info(ctx, "Successfully crawled %d repositories", total)
}
