// Package githubapi provides the caller for the GitHub GraphQL search
// API. One FetchPage call executes one search query page, with retry,
// backoff and quota-wait policy handled inside the caller so the
// orchestrator never sees transient failures.

package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/starcrawl/star-crawler/cfg"
	"github.com/starcrawl/star-crawler/internal/limiter"
	"github.com/starcrawl/star-crawler/pkg/log"
)

// MaxPageSize is the per-call item ceiling imposed by the search API.
const MaxPageSize = 100

const searchDocument = `
query($limit: Int!, $cursor: String, $searchQuery: String!) {
    search(query: $searchQuery, type: REPOSITORY, first: $limit, after: $cursor) {
        repositoryCount
        pageInfo {
            hasNextPage
            endCursor
        }
        nodes {
            ... on Repository {
                id
                name
                nameWithOwner
                stargazerCount
                url
                createdAt
                updatedAt
            }
        }
    }
    rateLimit {
        remaining
        resetAt
    }
}`

type Caller struct {
	Logger      log.Logger
	Config      *cfg.Config
	client      *http.Client
	rateLimiter *limiter.RateLimiter

	// Injectable for tests
	now   func() time.Time
	sleep func(time.Duration)
}

func NewCaller(logger log.Logger, config *cfg.Config) *Caller {
	return &Caller{
		Logger:      logger,
		Config:      config,
		client:      &http.Client{Timeout: 30 * time.Second},
		rateLimiter: limiter.NewRateLimiter(config.GithubApi.RequestsPerSecond),
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

func (c *Caller) retryPolicy() *retryPolicy {
	return &retryPolicy{
		maxAttempts: c.Config.GithubApi.MaxAttempts,
		baseDelay:   time.Duration(c.Config.GithubApi.RetryBaseDelaySec) * time.Second,
		quotaPad:    time.Duration(c.Config.GithubApi.QuotaWaitPadSec) * time.Second,
		now:         c.now,
		sleep:       c.sleep,
	}
}

// FetchPage executes one search page for searchQuery after cursor and
// returns the parsed items, the continuation cursor and the quota
// snapshot. An empty cursor starts the query from its first page.
func (c *Caller) FetchPage(ctx context.Context, pageSize int, cursor string, searchQuery string) (*Page, error) {
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	variables := map[string]interface{}{
		"limit":       pageSize,
		"searchQuery": searchQuery,
	}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	throttleDelay := time.Duration(c.Config.GithubApi.ThrottleDelayMs) * time.Millisecond

	var page *Page
	err := c.retryPolicy().run(func() attemptResult {
		c.rateLimiter.Wait(throttleDelay, c.sleep)

		p, res := c.doCall(ctx, variables)
		if res.kind == attemptOK {
			page = p
		}
		return res
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (c *Caller) doCall(ctx context.Context, variables map[string]interface{}) (*Page, attemptResult) {
	body, err := json.Marshal(graphqlRequest{Query: searchDocument, Variables: variables})
	if err != nil {
		return nil, attemptResult{kind: attemptFatal, err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Config.GithubApi.GraphqlUrl, bytes.NewReader(body))
	if err != nil {
		return nil, attemptResult{kind: attemptFatal, err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Config.GithubApi.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Config.GithubApi.AccessToken))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.Logger.Warn(ctx, "Request failed: %v", err)
		return nil, attemptResult{kind: attemptTransient, err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, attemptResult{kind: attemptFatal, err: fmt.Errorf("%w: check the configured access token", ErrAuth)}

	case resp.StatusCode == http.StatusForbidden:
		// Forbidden with a drained quota header is a rate limit; any
		// other forbidden is fatal for this call.
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return nil, attemptResult{
				kind:    attemptQuota,
				err:     fmt.Errorf("forbidden with zero remaining calls"),
				resetAt: c.resetFromHeader(resp),
			}
		}
		raw, _ := io.ReadAll(resp.Body)
		return nil, attemptResult{kind: attemptFatal, err: fmt.Errorf("forbidden: %s", string(raw))}

	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, attemptResult{kind: attemptTransient, err: fmt.Errorf("server error: %s", resp.Status)}

	case resp.StatusCode != http.StatusOK:
		return nil, attemptResult{kind: attemptFatal, err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	decoded := &graphqlResponse{}
	if err := json.NewDecoder(resp.Body).Decode(decoded); err != nil {
		return nil, attemptResult{kind: attemptFatal, err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(decoded.Errors) > 0 {
		if isRateLimited(decoded.Errors) {
			resetAt := decoded.Data.RateLimit.ResetAt
			if resetAt.IsZero() {
				resetAt = c.resetFromHeader(resp)
			}
			return nil, attemptResult{
				kind:    attemptQuota,
				err:     fmt.Errorf("graphql rate limit: %s", errorMessages(decoded.Errors)),
				resetAt: resetAt,
			}
		}
		return nil, attemptResult{kind: attemptFatal, err: fmt.Errorf("graphql errors: %s", errorMessages(decoded.Errors))}
	}

	page, err := c.parsePage(decoded)
	if err != nil {
		return nil, attemptResult{kind: attemptFatal, err: err}
	}

	c.Logger.Debug(ctx, "Fetched %d items, rate limit remaining: %d", len(page.Items), page.Remaining)
	return page, attemptResult{kind: attemptOK}
}

func (c *Caller) parsePage(decoded *graphqlResponse) (*Page, error) {
	search := decoded.Data.Search

	items := make([]RepoItem, 0, len(search.Nodes))
	for _, node := range search.Nodes {
		owner, name, found := strings.Cut(node.NameWithOwner, "/")
		if !found {
			return nil, fmt.Errorf("malformed nameWithOwner %q", node.NameWithOwner)
		}

		createdAt, err := time.Parse(time.RFC3339, node.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("malformed createdAt for %q: %w", node.NameWithOwner, err)
		}
		updatedAt, err := time.Parse(time.RFC3339, node.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("malformed updatedAt for %q: %w", node.NameWithOwner, err)
		}

		items = append(items, RepoItem{
			Id:        node.Id,
			Name:      name,
			Owner:     owner,
			FullName:  node.NameWithOwner,
			StarCount: node.StargazerCount,
			Url:       node.Url,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		})
	}

	nextCursor := ""
	if search.PageInfo.HasNextPage {
		nextCursor = search.PageInfo.EndCursor
	}

	return &Page{
		Items:      items,
		NextCursor: nextCursor,
		Remaining:  decoded.Data.RateLimit.Remaining,
		ResetAt:    decoded.Data.RateLimit.ResetAt,
	}, nil
}

// resetFromHeader reads the reset instant from the rate-limit side
// channel; a missing or bad header falls back to now so the quota wait
// degrades to just the pad.
func (c *Caller) resetFromHeader(resp *http.Response) time.Time {
	resetStr := resp.Header.Get("X-RateLimit-Reset")
	resetUnix, err := strconv.ParseInt(resetStr, 10, 64)
	if err != nil {
		return c.now()
	}
	return time.Unix(resetUnix, 0)
}

func isRateLimited(errs []graphqlError) bool {
	for _, e := range errs {
		if e.Type == "RATE_LIMITED" || strings.Contains(strings.ToLower(e.Message), "rate limit") {
			return true
		}
	}
	return false
}

func errorMessages(errs []graphqlError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
