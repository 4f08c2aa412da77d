package publish

import (
	"html/template"
	"io"

	"daily-digest/news"
)

var digestTemplate = template.Must(template.New("digest").Parse(`<html>
  <head><meta charset="utf-8"><title>{{.Title}}</title></head>
  <body>
    <h1>{{.Title}} — {{.Date}}</h1>
    {{- range .Items}}
    <section style="margin-bottom:18px;">
      <h3>{{if .URL}}<a href="{{.URL}}" target="_blank">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
      <div>{{.Summary}}</div>
      <small>Source: {{.Source}}</small>
    </section>
    {{- end}}
    <hr>
    <p><a href="` + ArchiveIndexFile + `">View Archive</a></p>
  </body>
</html>
`))

var archiveTemplate = template.Must(template.New("archive").Parse(`<html>
  <head><meta charset="utf-8"><title>{{.Title}} Archive</title></head>
  <body>
    <h1>{{.Title}} Archive</h1>
    <ul>
      {{- range .Entries}}
      <li><a href="{{.File}}">{{.Date}}</a></li>
      {{- end}}
    </ul>
    <p><a href="` + LatestFile + `">Back to Latest</a></p>
  </body>
</html>
`))

type digestItem struct {
	Title   string
	URL     string
	Summary template.HTML
	Source  string
}

// RenderDigest writes the daily page. Summaries are model output and are
// emitted without escaping; everything else is escaped.
func RenderDigest(w io.Writer, title, date string, items []news.NewsItem) error {
	rows := make([]digestItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, digestItem{
			Title:   it.Title,
			URL:     it.URL,
			Summary: template.HTML(it.Summary),
			Source:  it.Source,
		})
	}

	return digestTemplate.Execute(w, struct {
		Title string
		Date  string
		Items []digestItem
	}{title, date, rows})
}

// RenderArchive writes the archive index page for entries, in the given order.
func RenderArchive(w io.Writer, title string, entries []ArchiveEntry) error {
	return archiveTemplate.Execute(w, struct {
		Title   string
		Entries []ArchiveEntry
	}{title, entries})
}
