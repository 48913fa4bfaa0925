package feed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/londhevishalps/news/pkg/httpclient"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"sustainable textiles" - Google News</title>
    <item>
      <title>Mills move to closed-loop dyeing</title>
      <link>https://example.com/dyeing</link>
      <pubDate>Tue, 02 Jan 2024 08:00:00 GMT</pubDate>
      <source url="https://example.com">Example Times</source>
    </item>
    <item>
      <title>Undated, unsourced item</title>
      <link>https://example.com/bare</link>
    </item>
  </channel>
</rss>`

type fakeResponse struct {
	status int
	body   []byte
}

func (r fakeResponse) StatusCode() int { return r.status }
func (r fakeResponse) Body() []byte    { return r.body }

type fakeClient struct {
	status  int
	body    string
	err     error
	lastURL string
}

func (c *fakeClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	c.lastURL = url
	if c.err != nil {
		return nil, c.err
	}
	return fakeResponse{status: c.status, body: []byte(c.body)}, nil
}

func TestQueryURL(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"ZDHC", "https://news.google.com/rss/search?q=ZDHC"},
		{"circular economy", "https://news.google.com/rss/search?q=circular+economy"},
		{"net zero supply chain", "https://news.google.com/rss/search?q=net+zero+supply+chain"},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			got := QueryURL("https://news.google.com/rss/search", tt.keyword)
			if got != tt.want {
				t.Errorf("QueryURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGoogleNewsFetcher_Fetch(t *testing.T) {
	client := &fakeClient{status: 200, body: sampleRSS}
	f := NewGoogleNewsFetcher(client, "https://news.google.com/rss/search", nil)

	entries, err := f.Fetch(context.Background(), "sustainable textiles")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if want := "https://news.google.com/rss/search?q=sustainable+textiles"; client.lastURL != want {
		t.Errorf("fetched URL = %q, want %q", client.lastURL, want)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.Title != "Mills move to closed-loop dyeing" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Link != "https://example.com/dyeing" {
		t.Errorf("Link = %q", first.Link)
	}
	if first.Published != "Tue, 02 Jan 2024 08:00:00 GMT" {
		t.Errorf("Published = %q, want the raw pubDate string", first.Published)
	}
	if first.Source == nil || first.Source.Title != "Example Times" {
		t.Errorf("Source = %+v, want title %q", first.Source, "Example Times")
	}

	second := entries[1]
	if second.Source != nil {
		t.Errorf("entry without <source> got Source = %+v, want nil", second.Source)
	}
	if second.Published != "" {
		t.Errorf("entry without pubDate got Published = %q, want empty", second.Published)
	}
}

func TestGoogleNewsFetcher_EmptyFeed(t *testing.T) {
	empty := `<?xml version="1.0"?><rss version="2.0"><channel><title>empty</title></channel></rss>`
	client := &fakeClient{status: 200, body: empty}
	f := NewGoogleNewsFetcher(client, "https://news.google.com/rss/search", nil)

	entries, err := f.Fetch(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("empty feed must not be an error, got: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestGoogleNewsFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
	}{
		{name: "transport error", client: &fakeClient{err: errors.New("connection refused")}},
		{name: "non-200 status", client: &fakeClient{status: 503, body: "upstream down"}},
		{name: "undecodable body", client: &fakeClient{status: 200, body: "<html>not a feed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewGoogleNewsFetcher(tt.client, "https://news.google.com/rss/search", nil)
			if _, err := f.Fetch(context.Background(), "esg strategy"); err == nil {
				t.Error("Fetch returned nil error")
			}
		})
	}
}

func TestResponseSnippet(t *testing.T) {
	if got := responseSnippet(nil); got != "<empty>" {
		t.Errorf("snippet of empty body = %q", got)
	}
	long := strings.Repeat("x", 600)
	if got := responseSnippet([]byte(long)); len(got) != 512+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("long body not truncated: %d bytes", len(got))
	}
}
