package news

import "strings"

// NoTitle is used for feed entries that carry no title.
const NoTitle = "No title"

// NewsItem is one summarized feed entry in the digest
type NewsItem struct {
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
}

// HasURL reports whether the entry carried a link.
func (n NewsItem) HasURL() bool {
	return n.URL != ""
}

// TitleOrPlaceholder returns the trimmed title, or NoTitle when it is blank.
func TitleOrPlaceholder(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return NoTitle
	}
	return title
}
