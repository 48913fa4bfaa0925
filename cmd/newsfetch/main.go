// Command newsfetch collects news-feed entries for the configured keywords
// and merges them into the persisted article store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/londhevishalps/news/internal/config"
	"github.com/londhevishalps/news/internal/enrich"
	"github.com/londhevishalps/news/internal/harvest"
	"github.com/londhevishalps/news/internal/history"
	"github.com/londhevishalps/news/internal/logger"
	"github.com/londhevishalps/news/internal/normalize"
	"github.com/londhevishalps/news/internal/store"
	"github.com/londhevishalps/news/pkg/feed"
	"github.com/londhevishalps/news/pkg/httpclient"
	"github.com/londhevishalps/news/pkg/publishers"
)

func main() {
	var cfgPath string
	var showHistory int
	flag.StringVar(&cfgPath, "config", "config.yaml", "path to the YAML config")
	flag.IntVar(&showHistory, "history", 0, "print the last N runs and exit")
	flag.Parse()

	if err := run(cfgPath, showHistory); err != nil {
		fmt.Fprintln(os.Stderr, "newsfetch:", err)
		os.Exit(1)
	}
}

func run(cfgPath string, showHistory int) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runs *history.History
	if cfg.History.Path != "" {
		runs, err = history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer runs.Close()
	}

	if showHistory > 0 {
		if runs == nil {
			return fmt.Errorf("history.path is not configured")
		}
		return printHistory(runs, showHistory)
	}

	fetcher := feed.NewGoogleNewsFetcher(
		httpclient.NewRestyClient(cfg.FeedTimeout()),
		cfg.Feed.BaseURL,
		cfg.Feed.Headers,
	)

	var enricher harvest.Enricher
	if cfg.Enrichment.Enabled {
		enricher = enrich.New(
			httpclient.NewRestyClient(cfg.EnrichmentTimeout()),
			log,
			cfg.Enrichment.Workers,
			cfg.EnrichmentDelay(),
		)
	}

	var pubs []publishers.Publisher
	if cfg.Publishers.File != "" {
		reg, err := publishers.LoadRegistry(cfg.Publishers.File)
		if err != nil {
			return err
		}
		pubs, err = publishers.BuildAll(ctx, publishers.DefaultRegistry(), reg.Enabled(), log)
		if err != nil {
			return err
		}
	}

	harvester := harvest.New(harvest.Deps{
		Keywords:   cfg.Keywords,
		Fetcher:    fetcher,
		Normalizer: normalize.New(nil),
		Store:      store.NewFileStore(cfg.Store.Path),
		Enricher:   enricher,
		Publishers: pubs,
		Log:        log,
	})

	summary, err := harvester.Run(ctx)
	if err != nil {
		return err
	}

	if runs != nil {
		if err := runs.Record(history.Run{
			FinishedAt: time.Now(),
			Accepted:   summary.Accepted,
			Total:      summary.Total,
		}); err != nil {
			log.WarnObj("failed to record run history", "history_error", map[string]any{
				"error": err.Error(),
			})
		}
	}

	fmt.Printf("Fetched %d new articles. Total articles stored: %d\n",
		summary.Accepted, summary.Total)
	return nil
}

func printHistory(runs *history.History, n int) error {
	recent, err := runs.Recent(n)
	if err != nil {
		return err
	}
	for _, r := range recent {
		fmt.Printf("%s  accepted=%d total=%d\n",
			r.FinishedAt.Format("2006-01-02 15:04:05"), r.Accepted, r.Total)
	}
	return nil
}
