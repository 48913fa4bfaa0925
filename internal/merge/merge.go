// Package merge decides which incoming articles join the persisted
// collection and maintains its order.
package merge

import (
	"sort"

	"github.com/londhevishalps/news/internal/domain"
)

// Merge combines the existing collection with a batch of newly normalized
// articles. An incoming article is accepted only when its URL is not already
// present, either in existing or earlier in the same batch; the first
// occurrence wins. Existing entries precede accepted ones, then the whole
// collection is sorted by date descending using plain string comparison,
// stable for equal keys.
//
// Merge never fails and never mutates its inputs. It is idempotent with
// respect to URL identity: merging the same batch twice yields the same
// collection as merging it once. The second return value lists the accepted
// articles in arrival order.
func Merge(existing, incoming []domain.Article) (merged, newlyAccepted []domain.Article) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, a := range existing {
		seen[a.URL] = struct{}{}
	}

	accepted := make([]domain.Article, 0, len(incoming))
	for _, a := range incoming {
		if _, dup := seen[a.URL]; dup {
			continue
		}
		seen[a.URL] = struct{}{}
		accepted = append(accepted, a)
	}

	out := make([]domain.Article, 0, len(existing)+len(accepted))
	out = append(out, existing...)
	out = append(out, accepted...)

	// Lexicographic, not calendar-aware: feed dates and fallback dates do
	// not share a format, and the stored ordering contract is the string
	// comparison itself.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})

	return out, accepted
}
