package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"daily-digest/news"

	"github.com/mmcdole/gofeed"
)

// Entry is a single feed item reduced to what the digest needs.
// Link is empty when the entry has none.
type Entry struct {
	Title string
	Link  string
}

// Reader pulls and parses RSS/Atom feeds.
type Reader struct {
	parser     *gofeed.Parser
	maxEntries int
}

// NewReader creates a reader that keeps at most maxEntries per feed.
func NewReader(maxEntries int, timeout time.Duration, userAgent string) *Reader {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}

	return &Reader{
		parser:     parser,
		maxEntries: maxEntries,
	}
}

// Read fetches feedURL and returns its first entries in published order.
func (r *Reader) Read(ctx context.Context, feedURL string) ([]Entry, error) {
	parsed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	items := parsed.Items
	if len(items) > r.maxEntries {
		items = items[:r.maxEntries]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{
			Title: news.TitleOrPlaceholder(item.Title),
			Link:  pickLink(item),
		})
	}
	return entries, nil
}

func pickLink(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	for _, link := range item.Links {
		if link = strings.TrimSpace(link); link != "" {
			return link
		}
	}
	return ""
}
