package publish

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"daily-digest/logger"
	"daily-digest/news"

	"github.com/go-playground/assert/v2"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestListArchive_DescendingOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "news_2024-01-01.html")
	touch(t, dir, "news_2024-01-03.html")
	touch(t, dir, "news_2024-01-02.html")
	touch(t, dir, "index.html")
	touch(t, dir, "archive.html")
	touch(t, dir, "news_2024-01-04.txt")
	touch(t, dir, "notes.html")
	assert.Equal(t, nil, os.Mkdir(filepath.Join(dir, "news_dir.html"), 0o755))

	entries, err := ListArchive(dir)

	assert.Equal(t, nil, err)
	assert.Equal(t, []ArchiveEntry{
		{File: "news_2024-01-03.html", Date: "2024-01-03"},
		{File: "news_2024-01-02.html", Date: "2024-01-02"},
		{File: "news_2024-01-01.html", Date: "2024-01-01"},
	}, entries)
}

func TestListArchive_MissingDir(t *testing.T) {
	_, err := ListArchive(filepath.Join(t.TempDir(), "missing"))
	assert.NotEqual(t, nil, err)
}

func TestIsArchiveFile(t *testing.T) {
	assert.Equal(t, true, IsArchiveFile("news_2024-01-01.html"))
	assert.Equal(t, false, IsArchiveFile("news_.html"))
	assert.Equal(t, false, IsArchiveFile("index.html"))
	assert.Equal(t, false, IsArchiveFile("news_../x.html"))
}

func TestRenderDigest(t *testing.T) {
	items := []news.NewsItem{
		{Title: "Fish & <Chips>", URL: "https://example.com/a", Summary: "<p>Bold <b>claim</b></p>", Source: "https://example.com/rss"},
		{Title: "No title", Summary: "plain", Source: "https://example.com/rss"},
	}

	var buf bytes.Buffer
	err := RenderDigest(&buf, "Unity AI VR Daily News", "2024-01-03", items)
	out := buf.String()

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(out, "<h1>Unity AI VR Daily News — 2024-01-03</h1>"))
	assert.Equal(t, true, strings.Contains(out, `<a href="https://example.com/a" target="_blank">Fish &amp; &lt;Chips&gt;</a>`))
	assert.Equal(t, true, strings.Contains(out, "<div><p>Bold <b>claim</b></p></div>"))
	assert.Equal(t, true, strings.Contains(out, "<h3>No title</h3>"))
	assert.Equal(t, true, strings.Contains(out, "<small>Source: https://example.com/rss</small>"))
	assert.Equal(t, true, strings.Contains(out, `<a href="archive.html">View Archive</a>`))
	assert.Equal(t, 2, strings.Count(out, "<section"))
}

func TestRenderArchive(t *testing.T) {
	var buf bytes.Buffer
	err := RenderArchive(&buf, "Digest", []ArchiveEntry{
		{File: "news_2024-01-03.html", Date: "2024-01-03"},
		{File: "news_2024-01-02.html", Date: "2024-01-02"},
	})
	out := buf.String()

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(out, `<li><a href="news_2024-01-03.html">2024-01-03</a></li>`))
	assert.Equal(t, true, strings.Index(out, "2024-01-03") < strings.Index(out, "2024-01-02"))
	assert.Equal(t, true, strings.Contains(out, `<a href="index.html">Back to Latest</a>`))
}

func TestPublish_WritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "news_2024-01-01.html")
	p := NewPublisher(dir, "Digest", logger.Discard())

	res, err := p.Publish("2024-01-03", []news.NewsItem{{Title: "A", Summary: "Summary for A", Source: "feed"}})

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, res.Archived)
	assert.Equal(t, filepath.Join(dir, "index.html"), res.Latest)
	assert.Equal(t, filepath.Join(dir, "news_2024-01-03.html"), res.Archive)

	latest := readFile(t, res.Latest)
	assert.Equal(t, latest, readFile(t, res.Archive))
	assert.Equal(t, true, strings.Contains(latest, "Summary for A"))

	index := readFile(t, res.Index)
	assert.Equal(t, true, strings.Index(index, "news_2024-01-03.html") < strings.Index(index, "news_2024-01-01.html"))

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	assert.Equal(t, 0, len(leftovers))
}

func TestPublish_SameDayOverwrites(t *testing.T) {
	dir := t.TempDir()
	p := NewPublisher(dir, "Digest", logger.Discard())

	_, err := p.Publish("2024-01-03", []news.NewsItem{{Title: "First run", Summary: "one"}})
	assert.Equal(t, nil, err)
	res, err := p.Publish("2024-01-03", []news.NewsItem{{Title: "Second run", Summary: "two"}})
	assert.Equal(t, nil, err)

	entries, err := ListArchive(dir)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, 1, res.Archived)

	archived := readFile(t, res.Archive)
	assert.Equal(t, true, strings.Contains(archived, "Second run"))
	assert.Equal(t, false, strings.Contains(archived, "First run"))
}

func TestPublish_WriteFailure(t *testing.T) {
	notADir := filepath.Join(t.TempDir(), "file")
	touch(t, filepath.Dir(notADir), "file")
	p := NewPublisher(notADir, "Digest", logger.Discard())

	res, err := p.Publish("2024-01-03", nil)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, res == nil)
}

func TestRebuildArchive_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	p := NewPublisher(dir, "Digest", logger.Discard())

	n, err := p.RebuildArchive()

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, true, strings.Contains(readFile(t, filepath.Join(dir, "archive.html")), "<ul>"))
}
