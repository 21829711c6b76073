package store

import (
	"context"
	"fmt"

	"github.com/starcrawl/star-crawler/internal/model"
	"github.com/starcrawl/star-crawler/pkg/kafka"
	"github.com/starcrawl/star-crawler/pkg/log"
)

// MessageKeyRepo routes repository messages to the consumer's handler.
const MessageKeyRepo = "repo"

// KafkaStore publishes batches to the repository topic instead of
// writing to Postgres; cmd/consumer performs the actual upsert.
type KafkaStore struct {
	Logger   log.Logger
	Producer *kafka.Producer
}

func NewKafkaStore(logger log.Logger, producer *kafka.Producer) (*KafkaStore, error) {
	return &KafkaStore{
		Logger:   logger,
		Producer: producer,
	}, nil
}

func (s *KafkaStore) UpsertBatch(ctx context.Context, batch []model.RepoMessage) error {
	if len(batch) == 0 {
		return nil
	}

	for _, msg := range batch {
		if err := s.Producer.Publish(ctx, MessageKeyRepo, msg); err != nil {
			return fmt.Errorf("failed to publish repo %s: %w", msg.FullName, err)
		}
	}

	s.Logger.Info(ctx, "Published %d repositories to kafka", len(batch))
	return nil
}
