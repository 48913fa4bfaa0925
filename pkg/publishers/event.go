package publishers

import (
	"context"

	"github.com/londhevishalps/news/internal/logger"
)

// Event is the payload delivered to sinks for each newly accepted article.
type Event struct {
	Keyword string `json:"keyword,omitempty"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

// Publisher delivers article events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the logging surface publishers use.
type Logger = logger.Logger

func ensureLogger(log Logger) Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}
