// Package harvest drives one collection run: fetch per keyword, normalize,
// merge into the persisted collection, save, publish.
package harvest

import (
	"context"
	"errors"
	"fmt"

	"github.com/londhevishalps/news/internal/domain"
	"github.com/londhevishalps/news/internal/logger"
	"github.com/londhevishalps/news/internal/merge"
	"github.com/londhevishalps/news/internal/normalize"
	"github.com/londhevishalps/news/pkg/feed"
	"github.com/londhevishalps/news/pkg/publishers"
)

// Store is the persistence port for the article collection.
type Store interface {
	Load() ([]domain.Article, error)
	Save(articles []domain.Article) error
}

// Enricher optionally fills in missing article fields before the merge.
type Enricher interface {
	Enrich(ctx context.Context, articles []domain.Article) []domain.Article
}

// Summary reports the outcome of one run.
type Summary struct {
	Accepted int
	Total    int
}

// Deps carries the collaborators a Harvester needs. Enricher and Publishers
// are optional.
type Deps struct {
	Keywords   []string
	Fetcher    feed.Fetcher
	Normalizer *normalize.Normalizer
	Store      Store
	Enricher   Enricher
	Publishers []publishers.Publisher
	Log        logger.Logger
}

// Harvester runs the keyword collection pipeline.
type Harvester struct {
	keywords   []string
	fetcher    feed.Fetcher
	normalizer *normalize.Normalizer
	store      Store
	enricher   Enricher
	publishers []publishers.Publisher
	log        logger.Logger
}

// New builds a Harvester. The keyword list is treated as an immutable,
// ordered configuration value.
func New(deps Deps) *Harvester {
	log := deps.Log
	if log == nil {
		log = logger.NopLogger{}
	}
	normalizer := deps.Normalizer
	if normalizer == nil {
		normalizer = normalize.New(nil)
	}

	keywords := make([]string, len(deps.Keywords))
	copy(keywords, deps.Keywords)

	return &Harvester{
		keywords:   keywords,
		fetcher:    deps.Fetcher,
		normalizer: normalizer,
		store:      deps.Store,
		enricher:   deps.Enricher,
		publishers: deps.Publishers,
		log:        log,
	}
}

// Run executes one harvest: the store is loaded once, every keyword is
// fetched in configured order into a single incoming batch, the batch is
// merged once, and the full collection is saved. Malformed entries are
// skipped; any other failure aborts the run before the store is written.
func (h *Harvester) Run(ctx context.Context) (Summary, error) {
	existing, err := h.store.Load()
	if err != nil {
		return Summary{}, fmt.Errorf("load store: %w", err)
	}

	var incoming []domain.Article
	keywordByURL := make(map[string]string)

	for _, keyword := range h.keywords {
		entries, err := h.fetcher.Fetch(ctx, keyword)
		if err != nil {
			return Summary{}, fmt.Errorf("fetch keyword %q: %w", keyword, err)
		}

		h.log.DebugObj("keyword fetched", "keyword_fetched", map[string]any{
			"keyword": keyword,
			"entries": len(entries),
		})

		for _, raw := range entries {
			article, err := h.normalizer.Normalize(raw)
			if err != nil {
				if errors.Is(err, normalize.ErrMalformedEntry) {
					h.log.WarnObj("skipping malformed entry", "entry_skipped", map[string]any{
						"keyword": keyword,
						"title":   raw.Title,
					})
					continue
				}
				return Summary{}, fmt.Errorf("normalize entry for %q: %w", keyword, err)
			}

			incoming = append(incoming, article)
			if _, ok := keywordByURL[article.URL]; !ok {
				keywordByURL[article.URL] = keyword
			}
		}
	}

	merged, accepted := merge.Merge(existing, incoming)

	if h.enricher != nil && len(accepted) > 0 {
		accepted = h.enricher.Enrich(ctx, accepted)
		// Re-merge with the enriched copies; identity and order are
		// unchanged, only Source fields differ.
		merged, accepted = merge.Merge(existing, accepted)
	}

	if err := h.store.Save(merged); err != nil {
		return Summary{}, fmt.Errorf("save store: %w", err)
	}

	h.publish(ctx, accepted, keywordByURL)

	return Summary{Accepted: len(accepted), Total: len(merged)}, nil
}

// publish delivers one event per accepted article to every configured sink.
// The store is already saved, so failures are logged and dropped.
func (h *Harvester) publish(ctx context.Context, accepted []domain.Article, keywordByURL map[string]string) {
	if len(h.publishers) == 0 || len(accepted) == 0 {
		return
	}

	for _, article := range accepted {
		evt := publishers.Event{
			Keyword: keywordByURL[article.URL],
			Title:   article.Title,
			URL:     article.URL,
			Source:  article.Source,
			Date:    article.Date,
		}

		for _, pub := range h.publishers {
			if err := pub.Publish(ctx, evt); err != nil {
				h.log.WarnObj("publish failed", "publish_error", map[string]any{
					"publisher_id": pub.ID(),
					"url":          article.URL,
					"error":        err.Error(),
				})
			}
		}
	}
}
