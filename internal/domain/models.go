package domain

// Domain contains core models shared across the harvester.

// UnknownSource is stored when a feed entry carries no source sub-structure.
const UnknownSource = "Unknown"

// Article is the canonical persisted record. URL is the identity key: two
// articles with the same URL are the same article.
type Article struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// RawSource is the optional <source> sub-structure of a feed entry.
type RawSource struct {
	Title string
	URL   string
}

// RawEntry is an unprocessed record as delivered by a feed. Every field other
// than Link may be absent; Link empty marks the entry malformed.
type RawEntry struct {
	Title     string
	Link      string
	Source    *RawSource
	Published string
}
