package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"daily-digest/config"
	"daily-digest/feed"
	"daily-digest/news"
	"daily-digest/publish"
	"daily-digest/summarize"

	"golang.org/x/sync/errgroup"
)

var (
	ErrSummarize = errors.New("summarization failed")
	ErrPublish   = errors.New("publish failed")
)

// FeedReader returns the capped entries of one feed.
type FeedReader interface {
	Read(ctx context.Context, feedURL string) ([]feed.Entry, error)
}

// ArticleFetcher returns best-effort article text and never fails.
type ArticleFetcher interface {
	Text(ctx context.Context, url string) string
}

// Summarizer produces the model summary for one entry.
type Summarizer interface {
	Summarize(ctx context.Context, title, url, snippet string) (string, error)
}

// Publisher writes the rendered pages.
type Publisher interface {
	Publish(date string, items []news.NewsItem) (*publish.Result, error)
}

// Options are the pipeline policies taken from config.
type Options struct {
	Feeds          []string
	Date           string
	SnippetChars   int
	Concurrency    int
	OnSummaryError string
}

// OptionsFromConfig copies the pipeline settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Feeds:          cfg.Feeds,
		Date:           cfg.Date,
		SnippetChars:   cfg.SnippetChars,
		Concurrency:    cfg.Concurrency,
		OnSummaryError: cfg.OnSummaryError,
	}
}

// Report describes a finished run. FailedFeeds and SkippedItems are
// degraded outcomes; the digest was still published.
type Report struct {
	Items        []news.NewsItem
	FailedFeeds  []string
	SkippedItems []string
	Published    *publish.Result
}

// Service runs the digest pipeline once per call to Run.
type Service struct {
	opts       Options
	reader     FeedReader
	fetcher    ArticleFetcher
	summarizer Summarizer
	publisher  Publisher
	logger     *slog.Logger
}

func NewService(opts Options, reader FeedReader, fetcher ArticleFetcher, summarizer Summarizer, publisher Publisher, logger *slog.Logger) *Service {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Service{
		opts:       opts,
		reader:     reader,
		fetcher:    fetcher,
		summarizer: summarizer,
		publisher:  publisher,
		logger:     logger,
	}
}

type job struct {
	entry  feed.Entry
	source string
}

// Run collects every item and then publishes. Nothing is written when
// collection fails.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	report, err := s.Collect(ctx)
	if err != nil {
		return report, err
	}

	res, err := s.publisher.Publish(s.opts.Date, report.Items)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrPublish, err)
	}
	report.Published = res

	s.logger.Info("run complete",
		"date", s.opts.Date,
		"items", len(report.Items),
		"failed_feeds", len(report.FailedFeeds),
		"skipped_items", len(report.SkippedItems),
	)
	return report, nil
}

// Collect reads every feed in configured order and summarizes each entry.
// Items keep feed order, then entry order, whatever the concurrency.
func (s *Service) Collect(ctx context.Context) (*Report, error) {
	report := &Report{}

	var jobs []job
	for _, feedURL := range s.opts.Feeds {
		entries, err := s.reader.Read(ctx, feedURL)
		if err != nil {
			s.logger.Warn("feed unavailable, skipping", "feed", feedURL, "error", err)
			report.FailedFeeds = append(report.FailedFeeds, feedURL)
			continue
		}
		s.logger.Debug("feed read", "feed", feedURL, "entries", len(entries))
		for _, e := range entries {
			jobs = append(jobs, job{entry: e, source: feedURL})
		}
	}

	results := make([]*news.NewsItem, len(jobs))
	skipped := make([]bool, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item, err := s.process(gctx, j)
			if err == nil {
				results[i] = item
				return nil
			}
			if s.opts.OnSummaryError == config.PolicySkip && !errors.Is(err, context.Canceled) {
				s.logger.Warn("summary failed, skipping item", "title", j.entry.Title, "url", j.entry.Link, "error", err)
				skipped[i] = true
				return nil
			}
			return fmt.Errorf("%w: %q from %s: %w", ErrSummarize, j.entry.Title, j.source, err)
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	for i, item := range results {
		if skipped[i] {
			report.SkippedItems = append(report.SkippedItems, jobs[i].entry.Title)
			continue
		}
		report.Items = append(report.Items, *item)
	}
	return report, nil
}

func (s *Service) process(ctx context.Context, j job) (*news.NewsItem, error) {
	text := news.Truncate(s.fetcher.Text(ctx, j.entry.Link), s.opts.SnippetChars)

	summary, err := s.summarizer.Summarize(ctx, j.entry.Title, j.entry.Link, text)
	if err != nil {
		return nil, err
	}

	if !summarize.HasWhyItMatters(summary) {
		s.logger.Warn("summary has no why-it-matters bullet", "title", j.entry.Title)
	}

	return &news.NewsItem{
		Title:   j.entry.Title,
		URL:     j.entry.Link,
		Summary: summary,
		Source:  j.source,
	}, nil
}
