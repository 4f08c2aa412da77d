package article

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxRawBody = 2 << 20

// RawStrategy returns the response body of a plain GET.
type RawStrategy struct {
	client    *http.Client
	userAgent string
}

func NewRawStrategy(userAgent string, timeout time.Duration) *RawStrategy {
	return &RawStrategy{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (s *RawStrategy) Name() string {
	return "raw"
}

func (s *RawStrategy) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set User-Agent to avoid being blocked
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRawBody))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(body), nil
}
