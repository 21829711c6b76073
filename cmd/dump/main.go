package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/starcrawl/star-crawler/cfg"
	"github.com/starcrawl/star-crawler/internal/model"
	"github.com/starcrawl/star-crawler/pkg/db"
	"github.com/starcrawl/star-crawler/pkg/log"
)

func main() {
	_ = godotenv.Load()

	csvPath := flag.String("csv", "repositories.csv", "CSV output path, empty to skip")
	jsonPath := flag.String("json", "repositories.json", "JSON output path, empty to skip")
	flag.Parse()

	ctx := context.Background()
	logger, _ := log.NewCslLogger()
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		logger.Critical(ctx, "Failed to load configuration: %v", err)
		os.Exit(1)
	}

	postgres, _ := db.NewPostgres(config)
	repoMd, _ := model.NewRepo(config, logger, postgres)

	repos, err := repoMd.ListByStars(ctx)
	if err != nil {
		logger.Critical(ctx, "Failed to read repositories: %v", err)
		os.Exit(1)
	}
	if len(repos) == 0 {
		logger.Warn(ctx, "No data to dump")
	}

	if *csvPath != "" {
		if err := dumpCsv(*csvPath, repos); err != nil {
			logger.Critical(ctx, "Failed to write %s: %v", *csvPath, err)
			os.Exit(1)
		}
		logger.Info(ctx, "Wrote %d repositories to %s", len(repos), *csvPath)
	}

	if *jsonPath != "" {
		if err := dumpJson(*jsonPath, repos); err != nil {
			logger.Critical(ctx, "Failed to write %s: %v", *jsonPath, err)
			os.Exit(1)
		}
		logger.Info(ctx, "Wrote %d repositories to %s", len(repos), *jsonPath)
	}
}

func dumpCsv(path string, repos []model.Repo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"id", "name", "owner", "full_name", "star_count", "url", "created_at", "updated_at", "crawled_at"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, repo := range repos {
		record := []string{
			repo.Id,
			repo.Name,
			repo.Owner,
			repo.FullName,
			strconv.Itoa(repo.StarCount),
			repo.Url,
			repo.CreatedAt.Format(time.RFC3339),
			repo.UpdatedAt.Format(time.RFC3339),
			repo.CrawledAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func dumpJson(path string, repos []model.Repo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(repos)
}
