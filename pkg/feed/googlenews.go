package feed

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/rss"

	"github.com/londhevishalps/news/internal/domain"
	"github.com/londhevishalps/news/pkg/httpclient"
)

// googleNewsFetcher fetches Google News RSS search results for a keyword.
type googleNewsFetcher struct {
	client  httpclient.Client
	baseURL string
	headers map[string]string
}

// NewGoogleNewsFetcher builds a Fetcher over the Google News RSS search feed.
func NewGoogleNewsFetcher(client httpclient.Client, baseURL string, headers map[string]string) Fetcher {
	if client == nil {
		client = httpclient.NewRestyClient(15 * time.Second)
	}
	return &googleNewsFetcher{
		client:  client,
		baseURL: baseURL,
		headers: headers,
	}
}

// Fetch retrieves the current result feed for the keyword and converts each
// item into a RawEntry. Dates are carried verbatim, never re-parsed.
func (f *googleNewsFetcher) Fetch(ctx context.Context, keyword string) ([]domain.RawEntry, error) {
	url := QueryURL(f.baseURL, keyword)

	resp, err := f.client.Get(ctx, url, f.headers)
	if err != nil {
		return nil, fmt.Errorf("fetch feed for %q: %w", keyword, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("feed for %q returned status %d body: %s",
			keyword, resp.StatusCode(), responseSnippet(body))
	}

	entries, err := parseRSS(body)
	if err != nil {
		return nil, fmt.Errorf("decode feed for %q: %w", keyword, err)
	}
	return entries, nil
}

// parseRSS decodes an RSS document into raw entries. The RSS-level gofeed
// parser is used because the universal one drops the per-item <source>
// element Google News emits.
func parseRSS(data []byte) ([]domain.RawEntry, error) {
	parser := &rss.Parser{}
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	entries := make([]domain.RawEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		entry := domain.RawEntry{
			Title:     item.Title,
			Link:      item.Link,
			Published: item.PubDate,
		}
		if item.Source != nil {
			entry.Source = &domain.RawSource{
				Title: item.Source.Title,
				URL:   item.Source.URL,
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// responseSnippet returns a truncated snippet of the response body for error
// messages.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
