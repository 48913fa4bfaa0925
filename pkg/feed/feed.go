// Package feed fetches raw news entries for keyword queries.
package feed

import (
	"context"
	"strings"

	"github.com/londhevishalps/news/internal/domain"
)

// Fetcher retrieves the raw entries currently published for a keyword query.
// A zero-length result is a normal, non-error case.
type Fetcher interface {
	Fetch(ctx context.Context, keyword string) ([]domain.RawEntry, error)
}

// QueryURL builds the search feed URL for a keyword. Spaces become the `+`
// separator the query syntax expects.
func QueryURL(baseURL, keyword string) string {
	return baseURL + "?q=" + strings.ReplaceAll(keyword, " ", "+")
}
