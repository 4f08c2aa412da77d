package article

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// noiseSelectors are removed before text is collected.
const noiseSelectors = "script, style, noscript, iframe, svg, form, nav, header, footer, aside, figure, .advertisement, .ad, .share, .social, .related, .comments"

// contentSelectors are tried in order; the first with paragraph text wins.
var contentSelectors = []string{
	"article",
	"main",
	"[role='main']",
	".post-content, .entry-content, .article-body, .story-body, #content",
	"body",
}

// ReadabilityStrategy visits the page with colly and keeps its main text.
type ReadabilityStrategy struct {
	userAgent string
	timeout   time.Duration
}

func NewReadabilityStrategy(userAgent string, timeout time.Duration) *ReadabilityStrategy {
	return &ReadabilityStrategy{userAgent: userAgent, timeout: timeout}
}

func (s *ReadabilityStrategy) Name() string {
	return "readability"
}

func (s *ReadabilityStrategy) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.MaxDepth(1),
	)
	c.WithTransport(&contextTransport{ctx: ctx, base: http.DefaultTransport})
	c.SetRequestTimeout(s.timeout)

	var text string
	var visitErr error

	c.OnHTML("html", func(e *colly.HTMLElement) {
		text = ExtractText(e.DOM)
	})

	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
	})

	if err := c.Visit(url); err != nil {
		if visitErr != nil {
			return "", visitErr
		}
		return "", fmt.Errorf("failed to visit: %w", err)
	}
	c.Wait()

	if visitErr != nil {
		return "", visitErr
	}
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// contextTransport binds every colly request to the caller's context.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

// ExtractText returns the readable paragraphs under root, separated by blank lines.
func ExtractText(root *goquery.Selection) string {
	doc := root.Clone()
	doc.Find(noiseSelectors).Remove()

	for _, selector := range contentSelectors {
		var paragraphs []string
		doc.Find(selector).First().Find("p, h2, h3, li").Each(func(i int, s *goquery.Selection) {
			if p := normalizeSpace(s.Text()); p != "" && !hasAncestorIn(s, "li") {
				paragraphs = append(paragraphs, p)
			}
		})
		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n\n")
		}
	}

	// No block elements anywhere; fall back to all visible text.
	return normalizeSpace(doc.Find("body").Text())
}

func hasAncestorIn(s *goquery.Selection, selector string) bool {
	return s.ParentsFiltered(selector).Length() > 0
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
