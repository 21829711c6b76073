package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/starcrawl/star-crawler/cfg"
	"github.com/starcrawl/star-crawler/internal/model"
	"github.com/starcrawl/star-crawler/internal/store"
	"github.com/starcrawl/star-crawler/pkg/db"
	"github.com/starcrawl/star-crawler/pkg/kafka"
	"github.com/starcrawl/star-crawler/pkg/log"
)

const (
	batchSize    = 100
	batchTimeout = 5 * time.Second
)

func main() {
	_ = godotenv.Load()

	logger, _ := log.NewCslLogger()
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postgres, _ := db.NewPostgres(config)
	repoMd, _ := model.NewRepo(config, logger, postgres)

	consumer, err := kafka.NewConsumer(config, logger, config.Kafka.TopicRepo, config.Kafka.GroupID)
	if err != nil {
		logger.Critical(ctx, "Failed to create kafka consumer: %v", err)
		os.Exit(1)
	}
	defer consumer.Close()

	// Collect messages into batches before upserting
	messages := make(chan model.RepoMessage, batchSize*2)
	go processBatchedRepos(ctx, messages, logger, repoMd)

	consumer.RegisterHandler(store.MessageKeyRepo, func(data []byte) error {
		var repoMsg model.RepoMessage
		if err := json.Unmarshal(data, &repoMsg); err != nil {
			return fmt.Errorf("failed to unmarshal repo message: %w", err)
		}

		select {
		case messages <- repoMsg:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})

	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Repo consumer error: %v", err)
		}
	}()
	logger.Info(ctx, "Repository consumer started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")
	cancel()
}

// processBatchedRepos drains the message channel into batches and
// upserts each batch when it fills or the timeout fires.
func processBatchedRepos(ctx context.Context, messages <-chan model.RepoMessage, logger log.Logger, repoMd *model.Repo) {
	var batch []model.RepoMessage
	timer := time.NewTimer(batchTimeout)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		logger.Info(ctx, "Processing batch of %d repositories", len(batch))
		if err := repoMd.UpsertBatch(context.WithoutCancel(ctx), batch); err != nil {
			logger.Error(ctx, "Failed to upsert batch of repositories: %v", err)
		}
		batch = nil
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case msg := <-messages:
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				timer.Reset(batchTimeout)
			}

		case <-timer.C:
			flush()
			timer.Reset(batchTimeout)
		}
	}
}
