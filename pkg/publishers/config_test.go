package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRegistry_YAML(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: webhook
    type: http
    http:
      url: https://hooks.example.com/news
  - id: events
    type: queue
    enabled: false
    queue:
      provider: gcp
      gcp:
        project_id: demo
        topic: articles
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}

	if got := len(reg.All()); got != 2 {
		t.Fatalf("All returned %d publishers, want 2", got)
	}
	if got := len(reg.Enabled()); got != 1 {
		t.Errorf("Enabled returned %d publishers, want 1", got)
	}

	cfg, ok := reg.ByID("webhook")
	if !ok {
		t.Fatal("ByID(webhook) not found")
	}
	if cfg.HTTP == nil || cfg.HTTP.Method != "POST" {
		t.Errorf("http method default not applied: %+v", cfg.HTTP)
	}
	if cfg.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Errorf("http timeout default not applied: %d", cfg.HTTP.TimeoutSeconds)
	}
}

func TestLoadRegistry_JSONWithEnvExpansion(t *testing.T) {
	t.Setenv("NEWS_WEBHOOK_URL", "https://hooks.example.com/expanded")

	path := writeFile(t, "publishers.json", `{
  "publishers": [
    {"id": "webhook", "type": "http", "http": {"url": "${NEWS_WEBHOOK_URL}"}}
  ]
}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}

	cfg, _ := reg.ByID("webhook")
	if cfg.HTTP.URL != "https://hooks.example.com/expanded" {
		t.Errorf("env not expanded: %q", cfg.HTTP.URL)
	}
}

func TestLoadRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "no publishers",
			file:    "p.yaml",
			content: "publishers: []\n",
		},
		{
			name: "missing id",
			file: "p.yaml",
			content: `
publishers:
  - type: http
    http: {url: https://example.com}
`,
		},
		{
			name: "duplicate ids",
			file: "p.yaml",
			content: `
publishers:
  - {id: a, type: http, http: {url: https://example.com}}
  - {id: a, type: http, http: {url: https://example.com}}
`,
		},
		{
			name: "unknown type",
			file: "p.yaml",
			content: `
publishers:
  - {id: a, type: carrier-pigeon}
`,
		},
		{
			name: "queue without provider config",
			file: "p.yaml",
			content: `
publishers:
  - id: q
    type: queue
    queue:
      provider: aws-sqs
`,
		},
		{
			name: "azure not implemented",
			file: "p.yaml",
			content: `
publishers:
  - id: q
    type: queue
    queue:
      provider: azure
      azure: {connection_string: x, queue: y}
`,
		},
		{
			name:    "unrecognized extension",
			file:    "p.toml",
			content: "publishers = []\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			if _, err := LoadRegistry(path); err == nil {
				t.Error("LoadRegistry returned nil error")
			}
		})
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	reg := DefaultRegistry()

	_, err := reg.PublisherFor(nil, PublisherConfig{ID: "x", Type: "smoke-signal"}, nil)
	if err == nil {
		t.Error("PublisherFor returned nil error for unknown type")
	}
}
