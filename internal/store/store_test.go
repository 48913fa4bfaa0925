package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/londhevishalps/news/internal/domain"
)

func TestFileStore_MissingStoreBootstrap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.json")
	s := NewFileStore(path)

	articles, err := s.Load()
	if err != nil {
		t.Fatalf("Load on fresh environment returned error: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("Load on fresh environment returned %d articles, want 0", len(articles))
	}

	want := []domain.Article{
		{Title: "First", URL: "https://example.com/1", Source: "Example", Date: "2024-01-02"},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load after Save returned error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestFileStore_RoundTripNonASCII(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.json")
	s := NewFileStore(path)

	want := []domain.Article{
		{Title: "টেক্সটাইল শিল্পে পানি দূষণ", URL: "https://example.com/bn", Source: "আনন্দবাজার", Date: "2024-03-01"},
		{Title: "Nachhaltigkeit & Mode — ein Überblick", URL: "https://example.com/de?a=1&b=2", Source: "Süddeutsche", Date: "2024-02-01"},
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("non-ASCII round trip mismatch:\ngot:  %+v\nwant: %+v", got, want)
	}

	// The file itself must carry the text unescaped.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	if !strings.Contains(string(raw), "টেক্সটাইল") {
		t.Error("store file does not contain non-ASCII title verbatim")
	}
	if strings.Contains(string(raw), `&`) {
		t.Error("store file HTML-escaped a URL")
	}
}

func TestFileStore_HumanReadableIndentation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.json")
	s := NewFileStore(path)

	if err := s.Save([]domain.Article{{URL: "https://example.com/1"}}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	if !strings.Contains(string(raw), "\n  {") {
		t.Errorf("store file is not indented:\n%s", raw)
	}
}

func TestFileStore_CorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(path).Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}

	// The corrupt file must survive untouched.
	raw, readErr := os.ReadFile(path)
	if readErr != nil || string(raw) != "{not json" {
		t.Errorf("corrupt store was modified: %q, %v", raw, readErr)
	}
}

func TestFileStore_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "news.json")
	s := NewFileStore(path)

	if err := s.Save(nil); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load returned %d articles, want 0", len(got))
	}
}
