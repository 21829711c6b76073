package crawler

import (
	"context"
	"errors"
	"time"

	"github.com/starcrawl/star-crawler/cfg"
	"github.com/starcrawl/star-crawler/internal/githubapi"
	"github.com/starcrawl/star-crawler/internal/model"
	"github.com/starcrawl/star-crawler/pkg/log"
)

// fatalError marks failures that invalidate the whole session, as
// opposed to failures contained at the per-query boundary.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

type StarCrawler struct {
	Logger  log.Logger
	Config  *cfg.Config
	Fetcher Fetcher
	Store   Store
	Queries []string

	// Injectable for tests
	sleep func(time.Duration)
}

func NewStarCrawler(logger log.Logger, config *cfg.Config, fetcher Fetcher, store Store, queries []string) (*StarCrawler, error) {
	if len(queries) == 0 {
		queries = DefaultSearchQueries
	}
	return &StarCrawler{
		Logger:  logger,
		Config:  config,
		Fetcher: fetcher,
		Store:   store,
		Queries: queries,
		sleep:   time.Sleep,
	}, nil
}

// Crawl discovers repositories until targetCount unique ones have been
// collected or the query catalog is exhausted, and returns how many
// unique repositories were handed to the store. Errors on a single
// query abandon that query only; authentication and persistence
// failures abort the session.
func (c *StarCrawler) Crawl(ctx context.Context, targetCount int) (int, error) {
	startTime := time.Now()
	c.Logger.Info(ctx, "Starting crawl for %d repositories", targetCount)

	total := 0
	seen := make(map[string]bool)
	buffer := make([]model.RepoMessage, 0, c.Config.Crawler.FlushThreshold)
	var ctxErr error

	for _, searchQuery := range c.Queries {
		if total >= targetCount {
			break
		}
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}

		c.Logger.Info(ctx, "Using search query: %s", searchQuery)

		err := c.crawlQuery(ctx, searchQuery, targetCount, &total, seen, &buffer)
		if err == nil {
			continue
		}

		var fatal *fatalError
		switch {
		case errors.As(err, &fatal):
			return total, fatal.err
		case errors.Is(err, githubapi.ErrAuth):
			c.Logger.Critical(ctx, "Authentication failed, aborting crawl: %v", err)
			return total, err
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			ctxErr = err
		case errors.Is(err, githubapi.ErrQuotaExceeded):
			// Contained per query: a later query may run once the
			// rolling window resets.
			c.Logger.Warn(ctx, "Quota exhausted during query '%s': %v", searchQuery, err)
		default:
			c.Logger.Error(ctx, "Error during crawl with query '%s': %v", searchQuery, err)
		}
		if ctxErr != nil {
			break
		}
	}

	// Flush whatever is still buffered, even when cancelled.
	if err := c.flush(context.WithoutCancel(ctx), &buffer, len(buffer)); err != nil {
		return total, err
	}

	c.Logger.Info(ctx, "Crawl completed in %v. Total unique repositories crawled: %d", time.Since(startTime).Round(time.Second), total)
	return total, ctxErr
}

// crawlQuery pages through one search query until the target is met,
// the platform's per-query result cap is reached or the query runs out
// of results.
func (c *StarCrawler) crawlQuery(ctx context.Context, searchQuery string, targetCount int, total *int, seen map[string]bool, buffer *[]model.RepoMessage) error {
	tunables := c.Config.Crawler
	cursor := ""
	queryResults := 0

	for *total < targetCount && queryResults < tunables.MaxResultsPerQuery {
		if err := ctx.Err(); err != nil {
			return err
		}

		// This page may fetch no more than the API allows, no more
		// than is still needed and no more than the cap leaves room for.
		pageSize := tunables.PageSize
		if need := targetCount - *total; need < pageSize {
			pageSize = need
		}
		if room := tunables.MaxResultsPerQuery - queryResults; room < pageSize {
			pageSize = room
		}
		if pageSize <= 0 {
			break
		}

		page, err := c.Fetcher.FetchPage(ctx, pageSize, cursor, searchQuery)
		if err != nil {
			return err
		}

		if len(page.Items) == 0 {
			c.Logger.Warn(ctx, "No repositories returned from API for query: %s", searchQuery)
			return nil
		}

		newCount := 0
		for _, item := range page.Items {
			if seen[item.Id] {
				continue
			}
			seen[item.Id] = true
			*buffer = append(*buffer, model.RepoMessage{
				Id:        item.Id,
				Name:      item.Name,
				Owner:     item.Owner,
				FullName:  item.FullName,
				StarCount: item.StarCount,
				Url:       item.Url,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			})
			newCount++
		}
		*total += newCount
		// Duplicates still count against the platform's per-query cap.
		queryResults += len(page.Items)

		c.Logger.Info(ctx, "Crawled %d/%d repositories (%d new, %d duplicates). API calls remaining: %d",
			*total, targetCount, newCount, len(page.Items)-newCount, page.Remaining)

		if len(*buffer) >= tunables.FlushThreshold {
			if err := c.flush(ctx, buffer, tunables.FlushThreshold); err != nil {
				return &fatalError{err}
			}
		}

		if page.Remaining <= tunables.LowQuotaThreshold {
			c.Logger.Warn(ctx, "Low API rate limit: %d. Pausing for %ds...", page.Remaining, tunables.CooldownSec)
			c.sleep(time.Duration(tunables.CooldownSec) * time.Second)
		}

		if page.NextCursor == "" {
			c.Logger.Info(ctx, "Reached end of results for query: %s", searchQuery)
			return nil
		}
		cursor = page.NextCursor
	}

	return nil
}

// flush hands the first n buffered records to the store and retains the
// rest, preserving discovery order.
func (c *StarCrawler) flush(ctx context.Context, buffer *[]model.RepoMessage, n int) error {
	if n == 0 || len(*buffer) == 0 {
		return nil
	}
	if n > len(*buffer) {
		n = len(*buffer)
	}

	if err := c.Store.UpsertBatch(ctx, (*buffer)[:n]); err != nil {
		return err
	}
	*buffer = append((*buffer)[:0], (*buffer)[n:]...)
	return nil
}
