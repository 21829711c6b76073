package cfg

type (
	App struct {
		Name    string
		Version string
	}

	Postgres struct {
		Host                  string
		Port                  string
		Username              string
		Password              string
		Database              string
		SslMode               string
		MaxIdleConnection     int
		MaxOpenConnection     int
		MaxLifeTimeConnection int
	}

	GithubApi struct {
		AccessToken       string
		GraphqlUrl        string
		RequestsPerSecond int
		ThrottleDelayMs   int
		MaxAttempts       int
		RetryBaseDelaySec int
		QuotaWaitPadSec   int
	}

	Crawler struct {
		TargetCount        int
		PageSize           int
		FlushThreshold     int
		MaxResultsPerQuery int
		LowQuotaThreshold  int
		CooldownSec        int
	}

	Kafka struct {
		Brokers   []string
		TopicRepo string
		GroupID   string
	}
)

type Config struct {
	App       App
	Postgres  Postgres
	GithubApi GithubApi
	Crawler   Crawler
	Kafka     Kafka
}
