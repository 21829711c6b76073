package model

import (
	"context"
	"fmt"
	"time"

	"github.com/starcrawl/star-crawler/cfg"
	"github.com/starcrawl/star-crawler/pkg/db"
	"github.com/starcrawl/star-crawler/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo is one crawled repository row. The id reported by the API is the
// primary key; full_name carries its own uniqueness constraint.
type Repo struct {
	Id        string    `json:"id" gorm:"column:id;type:varchar(255);primaryKey"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(255);not null"`
	Owner     string    `json:"owner" gorm:"column:owner;type:varchar(255);not null;index:idx_repositories_owner"`
	FullName  string    `json:"full_name" gorm:"column:full_name;type:varchar(512);not null;uniqueIndex:idx_repositories_full_name"`
	StarCount int       `json:"star_count" gorm:"column:star_count;not null;index:idx_repositories_star_count"`
	Url       string    `json:"url" gorm:"column:url;type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;not null;autoCreateTime:false;autoUpdateTime:false"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;not null;autoCreateTime:false;autoUpdateTime:false"`
	CrawledAt time.Time `json:"crawled_at" gorm:"column:crawled_at;not null;index:idx_repositories_crawled_at"`

	Config   *cfg.Config  `json:"-" gorm:"-"`
	Logger   log.Logger   `json:"-" gorm:"-"`
	Postgres *db.Postgres `json:"-" gorm:"-"`
}

func NewRepo(config *cfg.Config, logger log.Logger, postgres *db.Postgres) (*Repo, error) {
	return &Repo{
		Config:   config,
		Logger:   logger,
		Postgres: postgres,
	}, nil
}

func (r *Repo) TableName() string {
	return "repositories"
}

// UpsertBatch writes a batch of crawled repositories, inserting new ids
// and refreshing star_count, updated_at and crawled_at on existing
// ones. Re-submitting an unchanged record is a no-op update. An empty
// batch does nothing.
func (r *Repo) UpsertBatch(ctx context.Context, messages []RepoMessage) error {
	if len(messages) == 0 {
		return nil
	}

	gormDb, err := r.Postgres.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	now := time.Now()
	repos := make([]Repo, 0, len(messages))
	for _, msg := range messages {
		repos = append(repos, Repo{
			Id:        msg.Id,
			Name:      TruncateString(msg.Name, 250),
			Owner:     TruncateString(msg.Owner, 250),
			FullName:  TruncateString(msg.FullName, 500),
			StarCount: msg.StarCount,
			Url:       msg.Url,
			CreatedAt: msg.CreatedAt,
			UpdatedAt: msg.UpdatedAt,
			CrawledAt: now,
		})
	}

	err = gormDb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"star_count", "updated_at", "crawled_at"}),
		}).CreateInBatches(repos, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch upsert repositories: %w", result.Error)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.Logger.Info(ctx, "Upserted %d repositories", len(repos))
	return nil
}

// Count returns how many repositories are stored.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	gormDb, err := r.Postgres.Db()
	if err != nil {
		return 0, fmt.Errorf("failed to get database connection: %w", err)
	}

	var count int64
	if err := gormDb.WithContext(ctx).Model(&Repo{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count repositories: %w", err)
	}
	return count, nil
}

// ListByStars returns all repositories ordered by star count descending.
func (r *Repo) ListByStars(ctx context.Context) ([]Repo, error) {
	gormDb, err := r.Postgres.Db()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	var repos []Repo
	if err := gormDb.WithContext(ctx).Order("star_count DESC").Find(&repos).Error; err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	return repos, nil
}
