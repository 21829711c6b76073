// Package crawler drives the crawl: it rotates through the search-query
// catalog, pages each query with cursors, deduplicates repositories by
// id across overlapping queries and flushes batches to the persistence
// gateway, pacing itself against the reported API quota.

package crawler

import (
	"context"

	"github.com/starcrawl/star-crawler/internal/githubapi"
	"github.com/starcrawl/star-crawler/internal/model"
)

// Crawler runs one crawl session toward a target number of unique
// repositories. The returned count may be below the target when every
// query in the catalog is exhausted first; that is a terminal success.
type Crawler interface {
	Crawl(ctx context.Context, targetCount int) (int, error)
}

// Fetcher is the page-fetch capability of the search API client. All
// retry, backoff and quota-wait policy lives behind it.
type Fetcher interface {
	FetchPage(ctx context.Context, pageSize int, cursor string, searchQuery string) (*githubapi.Page, error)
}

// Store is the idempotent batch-upsert capability of the persistence
// layer. Re-submitting an unchanged record must be a no-op.
type Store interface {
	UpsertBatch(ctx context.Context, batch []model.RepoMessage) error
}
