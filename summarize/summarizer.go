package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"daily-digest/news"
)

// WhyItMatters is the label the prompt asks the model to end with.
const WhyItMatters = "Why it matters"

const promptTemplate = "Summarize for Unity/AI/VR developers in 2-3 sentences. " +
	"Then add one bullet: '" + WhyItMatters + "'.\n\n" +
	"Title: %s\nURL: %s\nContent:\n%s"

var ErrEmptyResponse = errors.New("empty model response")

// Generator is a single-shot text generation call.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Summarizer turns one feed entry into a short audience-specific summary
type Summarizer struct {
	gen         Generator
	promptChars int
}

func NewSummarizer(gen Generator, promptChars int) *Summarizer {
	return &Summarizer{gen: gen, promptChars: promptChars}
}

// BuildPrompt fills the fixed template, keeping at most limit runes of snippet.
func BuildPrompt(title, url, snippet string, limit int) string {
	return fmt.Sprintf(promptTemplate, title, url, news.Truncate(snippet, limit))
}

// Summarize returns the model's raw text for the entry.
func (s *Summarizer) Summarize(ctx context.Context, title, url, snippet string) (string, error) {
	prompt := BuildPrompt(title, url, snippet, s.promptChars)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s generate: %w", s.gen.Model(), err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// HasWhyItMatters reports whether summary carries the closing bullet.
func HasWhyItMatters(summary string) bool {
	return strings.Contains(strings.ToLower(summary), strings.ToLower(WhyItMatters))
}
