package publish

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"daily-digest/news"
)

// Publisher writes digest pages into a single output directory.
type Publisher struct {
	dir    string
	title  string
	logger *slog.Logger
}

// Result lists the paths written by Publish.
type Result struct {
	Latest   string
	Archive  string
	Index    string
	Archived int
}

func NewPublisher(dir, title string, logger *slog.Logger) *Publisher {
	return &Publisher{dir: dir, title: title, logger: logger}
}

// Publish renders items once and writes the same page to the latest and
// dated paths, then rebuilds the archive index. Any failure is returned;
// the latest page is only written after rendering succeeded.
func (p *Publisher) Publish(date string, items []news.NewsItem) (*Result, error) {
	var buf bytes.Buffer
	if err := RenderDigest(&buf, p.title, date, items); err != nil {
		return nil, fmt.Errorf("render digest: %w", err)
	}

	res := &Result{
		Latest:  filepath.Join(p.dir, LatestFile),
		Archive: filepath.Join(p.dir, ArchiveFileName(date)),
		Index:   filepath.Join(p.dir, ArchiveIndexFile),
	}

	for _, path := range []string{res.Latest, res.Archive} {
		if err := writeFileAtomic(path, buf.Bytes()); err != nil {
			return nil, err
		}
	}

	n, err := p.RebuildArchive()
	if err != nil {
		return nil, err
	}
	res.Archived = n

	p.logger.Info("digest written", "latest", res.Latest, "archive", res.Archive, "items", len(items))
	return res, nil
}

// RebuildArchive rewrites the archive index from the files on disk and
// returns how many entries it lists.
func (p *Publisher) RebuildArchive() (int, error) {
	entries, err := ListArchive(p.dir)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := RenderArchive(&buf, p.title, entries); err != nil {
		return 0, fmt.Errorf("render archive: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(p.dir, ArchiveIndexFile), buf.Bytes()); err != nil {
		return 0, err
	}

	p.logger.Info("archive updated", "entries", len(entries))
	return len(entries), nil
}

// writeFileAtomic replaces path through a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
