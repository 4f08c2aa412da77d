package publish

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	LatestFile       = "index.html"
	ArchiveIndexFile = "archive.html"
	ArchivePrefix    = "news_"
	ArchiveSuffix    = ".html"
)

// ArchiveEntry is one dated digest file found on disk.
type ArchiveEntry struct {
	File string `json:"file"`
	Date string `json:"date"`
}

// ArchiveFileName returns the archive file name for date.
func ArchiveFileName(date string) string {
	return ArchivePrefix + date + ArchiveSuffix
}

// IsArchiveFile reports whether name has the archive naming shape.
func IsArchiveFile(name string) bool {
	return strings.HasPrefix(name, ArchivePrefix) &&
		strings.HasSuffix(name, ArchiveSuffix) &&
		len(name) > len(ArchivePrefix)+len(ArchiveSuffix) &&
		!strings.ContainsAny(name, `/\`)
}

// ListArchive scans dir for archive files, newest first. The YYYY-MM-DD
// embedding makes descending name order chronological.
func ListArchive(dir string) ([]ArchiveEntry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list archive %s: %w", dir, err)
	}

	var names []string
	for _, f := range files {
		if f.Type().IsRegular() && IsArchiveFile(f.Name()) {
			names = append(names, f.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	entries := make([]ArchiveEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, ArchiveEntry{
			File: name,
			Date: strings.TrimSuffix(strings.TrimPrefix(name, ArchivePrefix), ArchiveSuffix),
		})
	}
	return entries, nil
}
