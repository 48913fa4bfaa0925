package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/londhevishalps/news/internal/domain"
)

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	at := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestNormalize(t *testing.T) {
	n := New(fixedClock(t))

	tests := []struct {
		name string
		raw  domain.RawEntry
		want domain.Article
	}{
		{
			name: "all fields present",
			raw: domain.RawEntry{
				Title:     "Circular economy gains ground",
				Link:      "https://example.com/a",
				Source:    &domain.RawSource{Title: "Example Times"},
				Published: "Mon, 10 Jun 2024 08:00:00 GMT",
			},
			want: domain.Article{
				Title:  "Circular economy gains ground",
				URL:    "https://example.com/a",
				Source: "Example Times",
				Date:   "Mon, 10 Jun 2024 08:00:00 GMT",
			},
		},
		{
			name: "missing source defaults to Unknown",
			raw: domain.RawEntry{
				Title:     "No source here",
				Link:      "https://example.com/b",
				Published: "2024-06-01",
			},
			want: domain.Article{
				Title:  "No source here",
				URL:    "https://example.com/b",
				Source: "Unknown",
				Date:   "2024-06-01",
			},
		},
		{
			name: "missing published falls back to current date",
			raw: domain.RawEntry{
				Title:  "Undated",
				Link:   "https://example.com/c",
				Source: &domain.RawSource{Title: "Example Times"},
			},
			want: domain.Article{
				Title:  "Undated",
				URL:    "https://example.com/c",
				Source: "Example Times",
				Date:   "2024-06-15",
			},
		},
		{
			name: "empty title kept verbatim",
			raw: domain.RawEntry{
				Link:      "https://example.com/d",
				Published: "2024-06-01",
			},
			want: domain.Article{
				URL:    "https://example.com/d",
				Source: "Unknown",
				Date:   "2024-06-01",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize returned unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalize_MissingLink(t *testing.T) {
	n := New(fixedClock(t))

	_, err := n.Normalize(domain.RawEntry{Title: "no link"})
	if !errors.Is(err, ErrMalformedEntry) {
		t.Fatalf("err = %v, want ErrMalformedEntry", err)
	}
}

func TestNormalize_NilClockUsesWallClock(t *testing.T) {
	n := New(nil)

	got, err := n.Normalize(domain.RawEntry{Link: "https://example.com/e"})
	if err != nil {
		t.Fatalf("Normalize returned unexpected error: %v", err)
	}
	if want := time.Now().Format("2006-01-02"); got.Date != want {
		t.Errorf("Date = %q, want %q", got.Date, want)
	}
}
