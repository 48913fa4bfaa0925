// Package enrich fills in missing article source names by scraping the
// article pages.
package enrich

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/londhevishalps/news/internal/domain"
	"github.com/londhevishalps/news/internal/logger"
	"github.com/londhevishalps/news/pkg/httpclient"
)

const maxHTMLBodyBytes = 1 << 20 // 1 MiB

// Enricher scrapes article pages for a publisher name when the feed supplied
// none. It only ever fills the Source field; articles keep their identity,
// title and date untouched.
type Enricher struct {
	client  httpclient.Client
	log     logger.Logger
	workers int
	delay   time.Duration
}

// New creates an Enricher. A nil client gets a default HTTP client; a nil
// logger discards output.
func New(client httpclient.Client, log logger.Logger, workers int, delay time.Duration) *Enricher {
	if client == nil {
		client = httpclient.NewRestyClient(10 * time.Second)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if workers < 1 {
		workers = 1
	}
	return &Enricher{client: client, log: log, workers: workers, delay: delay}
}

// Enrich returns a copy of articles where entries with an unknown source have
// it replaced by the site name scraped from their page. Scrape failures leave
// the article unchanged; cancellation returns the partial result.
func (e *Enricher) Enrich(ctx context.Context, articles []domain.Article) []domain.Article {
	out := make([]domain.Article, len(articles))
	copy(out, articles)

	var pending []int
	for i, a := range articles {
		if a.Source == domain.UnknownSource {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return out
	}

	workerCount := e.workers
	if workerCount > len(pending) {
		workerCount = len(pending)
	}

	var limiter <-chan time.Time
	if e.delay > 0 {
		ticker := time.NewTicker(e.delay)
		limiter = ticker.C
		defer ticker.Stop()
	}

	jobCh := make(chan int)
	var wg sync.WaitGroup

	for range workerCount {
		wg.Add(1)
		go e.worker(ctx, limiter, jobCh, out, &wg)
	}

	for _, idx := range pending {
		if ctx.Err() != nil {
			break
		}
		jobCh <- idx
	}
	close(jobCh)

	wg.Wait()

	return out
}

func (e *Enricher) worker(ctx context.Context, limiter <-chan time.Time, jobCh <-chan int, out []domain.Article, wg *sync.WaitGroup) {
	defer wg.Done()

	for idx := range jobCh {
		if ctx.Err() != nil {
			return
		}

		if limiter != nil {
			select {
			case <-ctx.Done():
				return
			case <-limiter:
			}
		}

		art := out[idx]
		name, err := e.fetchSiteName(ctx, art.URL)
		if err != nil {
			e.log.WarnObj("source scrape failed", "enrich_error", map[string]any{
				"url":   art.URL,
				"error": err.Error(),
			})
			continue
		}
		if name != "" {
			out[idx].Source = name
		}
	}
}

// fetchSiteName fetches the article page and extracts the publisher name.
func (e *Enricher) fetchSiteName(ctx context.Context, articleURL string) (string, error) {
	resp, err := e.client.Get(ctx, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("http fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	name, err := parseSiteName(body)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = hostName(articleURL)
	}
	return name, nil
}

// parseSiteName extracts the og:site_name value from an HTML page.
func parseSiteName(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	if node := doc.Find(`meta[property="og:site_name"]`).First(); node.Length() > 0 {
		if val, ok := node.Attr("content"); ok {
			return strings.TrimSpace(val), nil
		}
	}
	return "", nil
}

// hostName falls back to the page host, minus a www. prefix.
func hostName(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
