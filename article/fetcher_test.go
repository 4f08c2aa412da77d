package article

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"daily-digest/logger"

	"github.com/go-playground/assert/v2"
)

type fakeStrategy struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Fetch(ctx context.Context, url string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestFetch_FirstSuccessWins(t *testing.T) {
	first := &fakeStrategy{name: "first", text: "from first"}
	second := &fakeStrategy{name: "second", text: "from second"}
	f := NewFetcher(logger.Discard(), first, second)

	res := f.Fetch(context.Background(), "https://example.com/a")

	assert.Equal(t, "from first", res.Text)
	assert.Equal(t, "first", res.Strategy)
	assert.Equal(t, 0, second.calls)
}

func TestFetch_FallsBackInOrder(t *testing.T) {
	first := &fakeStrategy{name: "first", err: ErrNoText}
	second := &fakeStrategy{name: "second", text: "raw body"}
	f := NewFetcher(logger.Discard(), first, second)

	res := f.Fetch(context.Background(), "https://example.com/a")

	assert.Equal(t, "raw body", res.Text)
	assert.Equal(t, "second", res.Strategy)
	assert.Equal(t, 1, first.calls)
}

func TestFetch_AllFailIsEmpty(t *testing.T) {
	first := &fakeStrategy{name: "first", err: errors.New("boom")}
	second := &fakeStrategy{name: "second", err: errors.New("timeout")}
	f := NewFetcher(logger.Discard(), first, second)

	res := f.Fetch(context.Background(), "https://example.com/a")

	assert.Equal(t, Result{}, res)
	assert.Equal(t, 1, second.calls)
}

func TestFetch_EmptyURLSkipsStrategies(t *testing.T) {
	first := &fakeStrategy{name: "first", text: "x"}
	f := NewFetcher(logger.Discard(), first)

	assert.Equal(t, "", f.Text(context.Background(), ""))
	assert.Equal(t, 0, first.calls)
}

func TestDefault_ExtractsArticleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>t</title><script>var x = 1;</script></head>
<body><nav><p>Menu</p></nav><article><h1>Headline</h1><p>First paragraph.</p><p>Second   paragraph.</p></article>
<footer><p>Copyright</p></footer></body></html>`)
	}))
	defer srv.Close()

	res := Default(logger.Discard(), "test-agent", 5*time.Second).Fetch(context.Background(), srv.URL)

	assert.Equal(t, "readability", res.Strategy)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", res.Text)
}

func TestDefault_NonHTMLFallsBackToRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "plain abstract text")
	}))
	defer srv.Close()

	res := Default(logger.Discard(), "test-agent", 5*time.Second).Fetch(context.Background(), srv.URL)

	assert.Equal(t, "raw", res.Strategy)
	assert.Equal(t, "plain abstract text", res.Text)
}

func TestDefault_UnreachableIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := Default(logger.Discard(), "test-agent", time.Second).Fetch(context.Background(), url)

	assert.Equal(t, "", res.Text)
	assert.Equal(t, "", res.Strategy)
}

func TestRawStrategy_RejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "not here")
	}))
	defer srv.Close()

	_, err := NewRawStrategy("test-agent", time.Second).Fetch(context.Background(), srv.URL)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "404"))
}

func TestRawStrategy_SendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	text, err := NewRawStrategy("digest-bot", time.Second).Fetch(context.Background(), srv.URL)

	assert.Equal(t, nil, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, "digest-bot", got)
}
