// Data transfer objects for the GitHub GraphQL search API.

package githubapi

import "time"

// RepoItem is one repository snapshot parsed from a search result node.
type RepoItem struct {
	Id        string
	Name      string
	Owner     string
	FullName  string
	StarCount int
	Url       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Page is the result of one page fetch: the items, the continuation
// cursor (empty when the query is exhausted) and a quota snapshot.
type Page struct {
	Items      []RepoItem
	NextCursor string
	Remaining  int
	ResetAt    time.Time
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type repoNode struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	NameWithOwner  string `json:"nameWithOwner"`
	StargazerCount int    `json:"stargazerCount"`
	Url            string `json:"url"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type searchResult struct {
	RepositoryCount int        `json:"repositoryCount"`
	PageInfo        pageInfo   `json:"pageInfo"`
	Nodes           []repoNode `json:"nodes"`
}

type rateLimitResult struct {
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

type graphqlResponse struct {
	Data struct {
		Search    searchResult    `json:"search"`
		RateLimit rateLimitResult `json:"rateLimit"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}
