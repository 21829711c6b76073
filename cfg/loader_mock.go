package cfg

type MockLoader struct{}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (yl *MockLoader) Load() (*Config, error) {
	return &Config{
		// App
		App: App{
			Name:    "star-crawler",
			Version: "0.0.1",
		},

		// Postgres
		Postgres: Postgres{
			Host:                  "127.0.0.1",
			Port:                  "5432",
			Username:              "postgres",
			Password:              "postgres",
			Database:              "github_crawler",
			SslMode:               "disable",
			MaxIdleConnection:     1,
			MaxOpenConnection:     5,
			MaxLifeTimeConnection: 3600,
		},

		// GithubApi
		GithubApi: GithubApi{
			AccessToken:       "",
			GraphqlUrl:        "https://api.github.com/graphql",
			RequestsPerSecond: 5,
			ThrottleDelayMs:   200,
			MaxAttempts:       5,
			RetryBaseDelaySec: 1,
			QuotaWaitPadSec:   10,
		},

		// Crawler
		Crawler: Crawler{
			TargetCount:        100000,
			PageSize:           100,
			FlushThreshold:     1000,
			MaxResultsPerQuery: 1000,
			LowQuotaThreshold:  100,
			CooldownSec:        60,
		},

		// Kafka
		Kafka: Kafka{
			Brokers:   []string{"127.0.0.1:9092"},
			TopicRepo: "crawler.repos",
			GroupID:   "repo-consumer-group",
		},
	}, nil
}
