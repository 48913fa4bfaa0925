// Package store persists the article collection as an indented JSON file.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/londhevishalps/news/internal/domain"
)

// ErrCorrupt marks a store file that exists but cannot be decoded. Callers
// must treat it as fatal and leave the file untouched.
var ErrCorrupt = errors.New("store file is corrupt")

// FileStore reads and writes the article collection at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore returns a store over the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the store file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the persisted collection. A missing file is a fresh environment
// and yields an empty collection; an unreadable or undecodable file yields
// ErrCorrupt so no later save destroys it.
func (s *FileStore) Load() ([]domain.Article, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Article{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", s.path, err)
	}

	var articles []domain.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, s.path, err)
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return articles, nil
}

// Save rewrites the full collection. The file is written to a temp sibling
// and renamed into place so a crash never leaves a half-written store. Text
// is encoded verbatim, non-ASCII included, with two-space indentation.
func (s *FileStore) Save(articles []domain.Article) error {
	if articles == nil {
		articles = []domain.Article{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(articles); err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write store temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store %s: %w", s.path, err)
	}
	return nil
}
