package githubapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starcrawl/star-crawler/cfg"
	"github.com/starcrawl/star-crawler/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCaller(t *testing.T, url string) (*Caller, *[]time.Duration) {
	t.Helper()

	loader, err := cfg.NewMockLoader()
	require.NoError(t, err)
	config, err := loader.Load()
	require.NoError(t, err)
	config.GithubApi.GraphqlUrl = url
	config.GithubApi.AccessToken = "test-token"
	config.GithubApi.RequestsPerSecond = 1000

	logger, err := log.NewCslLogger()
	require.NoError(t, err)

	caller := NewCaller(logger, config)
	slept := &[]time.Duration{}
	caller.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return caller, slept
}

const successBody = `{
	"data": {
		"search": {
			"repositoryCount": 2,
			"pageInfo": {"hasNextPage": true, "endCursor": "Y3Vyc29yOjI="},
			"nodes": [
				{
					"id": "R_node1",
					"name": "linux",
					"nameWithOwner": "torvalds/linux",
					"stargazerCount": 170000,
					"url": "https://github.com/torvalds/linux",
					"createdAt": "2011-09-04T22:48:12Z",
					"updatedAt": "2024-05-01T09:30:00Z"
				},
				{
					"id": "R_node2",
					"name": "go",
					"nameWithOwner": "golang/go",
					"stargazerCount": 120000,
					"url": "https://github.com/golang/go",
					"createdAt": "2014-08-19T04:33:40Z",
					"updatedAt": "2024-05-01T10:00:00Z"
				}
			]
		},
		"rateLimit": {"remaining": 4998, "resetAt": "2024-05-01T13:00:00Z"}
	}
}`

func TestFetchPage_ParsesItemsCursorAndQuota(t *testing.T) {
	var gotReq graphqlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(successBody))
	}))
	defer server.Close()

	caller, _ := newTestCaller(t, server.URL)
	page, err := caller.FetchPage(context.Background(), 500, "", "stars:>0")
	require.NoError(t, err)

	assert.Equal(t, float64(100), gotReq.Variables["limit"], "page size clamped to the API ceiling")
	assert.Equal(t, "stars:>0", gotReq.Variables["searchQuery"])
	_, hasCursor := gotReq.Variables["cursor"]
	assert.False(t, hasCursor, "first page omits the cursor")

	require.Len(t, page.Items, 2)
	first := page.Items[0]
	assert.Equal(t, "R_node1", first.Id)
	assert.Equal(t, "torvalds", first.Owner)
	assert.Equal(t, "linux", first.Name)
	assert.Equal(t, "torvalds/linux", first.FullName)
	assert.Equal(t, 170000, first.StarCount)
	assert.Equal(t, time.Date(2011, 9, 4, 22, 48, 12, 0, time.UTC), first.CreatedAt.UTC())

	assert.Equal(t, "Y3Vyc29yOjI=", page.NextCursor)
	assert.Equal(t, 4998, page.Remaining)
}

func TestFetchPage_NoNextPageClearsCursor(t *testing.T) {
	body := `{
		"data": {
			"search": {
				"repositoryCount": 0,
				"pageInfo": {"hasNextPage": false, "endCursor": "Y3Vyc29yOjk="},
				"nodes": []
			},
			"rateLimit": {"remaining": 100, "resetAt": "2024-05-01T13:00:00Z"}
		}
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	caller, _ := newTestCaller(t, server.URL)
	page, err := caller.FetchPage(context.Background(), 100, "Y3Vyc29yOjg=", "stars:>0")
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextCursor, "exhausted query carries no continuation")
}

func TestFetchPage_AuthFailureIsFatalAndNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	caller, slept := newTestCaller(t, server.URL)
	_, err := caller.FetchPage(context.Background(), 100, "", "stars:>0")

	require.ErrorIs(t, err, ErrAuth)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *slept)
}

func TestFetchPage_GraphqlRateLimitWaitsAndRetries(t *testing.T) {
	resetAt := time.Now().Add(20 * time.Second).UTC().Format(time.RFC3339)
	limited := `{
		"data": {"rateLimit": {"remaining": 0, "resetAt": "` + resetAt + `"}},
		"errors": [{"type": "RATE_LIMITED", "message": "API rate limit exceeded"}]
	}`

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(limited))
			return
		}
		w.Write([]byte(successBody))
	}))
	defer server.Close()

	caller, slept := newTestCaller(t, server.URL)
	page, err := caller.FetchPage(context.Background(), 100, "", "stars:>0")

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, *slept, 1)
	assert.GreaterOrEqual(t, (*slept)[0], 10*time.Second, "at least the pad")
	assert.LessOrEqual(t, (*slept)[0], 31*time.Second, "reset delta plus pad")
	assert.Len(t, page.Items, 2)
}

func TestFetchPage_QuotaStillExhaustedAfterRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "0")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	caller, _ := newTestCaller(t, server.URL)
	_, err := caller.FetchPage(context.Background(), 100, "", "stars:>0")

	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestFetchPage_MalformedOwnerFieldIsFatal(t *testing.T) {
	body := `{
		"data": {
			"search": {
				"repositoryCount": 1,
				"pageInfo": {"hasNextPage": false, "endCursor": ""},
				"nodes": [{
					"id": "R_bad",
					"name": "orphan",
					"nameWithOwner": "no-slash-here",
					"stargazerCount": 1,
					"url": "https://github.com/no-slash-here",
					"createdAt": "2020-01-01T00:00:00Z",
					"updatedAt": "2020-01-01T00:00:00Z"
				}]
			},
			"rateLimit": {"remaining": 5000, "resetAt": "2024-05-01T13:00:00Z"}
		}
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	caller, _ := newTestCaller(t, server.URL)
	_, err := caller.FetchPage(context.Background(), 100, "", "stars:>0")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nameWithOwner")
}
