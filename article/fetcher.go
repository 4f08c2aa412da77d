package article

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrNoText is returned by a strategy that reached the page but found nothing to keep.
var ErrNoText = errors.New("no article text")

// Strategy is one way of turning an article URL into plain text.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, url string) (string, error)
}

// Fetcher tries its strategies in order and keeps the first success.
type Fetcher struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewFetcher creates a fetcher over the given strategies.
func NewFetcher(logger *slog.Logger, strategies ...Strategy) *Fetcher {
	return &Fetcher{
		strategies: strategies,
		logger:     logger,
	}
}

// Default builds the standard chain: readable text first, raw body second.
func Default(logger *slog.Logger, userAgent string, timeout time.Duration) *Fetcher {
	return NewFetcher(logger,
		NewReadabilityStrategy(userAgent, timeout),
		NewRawStrategy(userAgent, timeout),
	)
}

// Result reports which strategy produced the text. Strategy is empty when
// every strategy failed and Text is the empty sentinel.
type Result struct {
	Text     string
	Strategy string
}

// Fetch never fails: when every strategy errors, the result is empty.
func (f *Fetcher) Fetch(ctx context.Context, url string) Result {
	if url == "" {
		return Result{}
	}

	for _, s := range f.strategies {
		text, err := s.Fetch(ctx, url)
		if err != nil {
			f.logger.Debug("article strategy failed", "strategy", s.Name(), "url", url, "error", err)
			continue
		}
		return Result{Text: text, Strategy: s.Name()}
	}

	f.logger.Warn("article text unavailable", "url", url)
	return Result{}
}

// Text is Fetch without the strategy name.
func (f *Fetcher) Text(ctx context.Context, url string) string {
	return f.Fetch(ctx, url).Text
}
