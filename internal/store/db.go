// Package store provides the persistence gateways the crawler writes
// through: a direct Postgres upsert and a Kafka publisher for the
// decoupled pipeline (crawler publishes, cmd/consumer upserts).

package store

import (
	"context"

	"github.com/starcrawl/star-crawler/internal/model"
	"github.com/starcrawl/star-crawler/pkg/log"
)

// DbStore upserts batches straight into Postgres.
type DbStore struct {
	Logger log.Logger
	RepoMd *model.Repo
}

func NewDbStore(logger log.Logger, repoMd *model.Repo) (*DbStore, error) {
	return &DbStore{
		Logger: logger,
		RepoMd: repoMd,
	}, nil
}

func (s *DbStore) UpsertBatch(ctx context.Context, batch []model.RepoMessage) error {
	return s.RepoMd.UpsertBatch(ctx, batch)
}
