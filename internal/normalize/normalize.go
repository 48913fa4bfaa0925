// Package normalize converts raw feed entries into canonical articles.
package normalize

import (
	"errors"
	"time"

	"github.com/londhevishalps/news/internal/domain"
)

// ErrMalformedEntry marks a raw entry missing its mandatory link field. The
// caller skips such entries without aborting the run.
var ErrMalformedEntry = errors.New("raw entry has no link")

const fallbackDateLayout = "2006-01-02"

// Normalizer applies the defaulting rules that turn a RawEntry into an
// Article.
type Normalizer struct {
	now func() time.Time
}

// New returns a Normalizer. A nil clock falls back to time.Now.
func New(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize builds the canonical Article for a raw entry:
// title and link verbatim, source defaulting to "Unknown" when the entry has
// no source sub-structure, and the current date when the feed omits a publish
// date. Published dates are kept as delivered, with no timezone handling.
func (n *Normalizer) Normalize(raw domain.RawEntry) (domain.Article, error) {
	if raw.Link == "" {
		return domain.Article{}, ErrMalformedEntry
	}

	source := domain.UnknownSource
	if raw.Source != nil {
		source = raw.Source.Title
	}

	date := raw.Published
	if date == "" {
		date = n.now().Format(fallbackDateLayout)
	}

	return domain.Article{
		Title:  raw.Title,
		URL:    raw.Link,
		Source: source,
		Date:   date,
	}, nil
}
