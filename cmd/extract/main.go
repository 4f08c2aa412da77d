package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"daily-digest/article"
	"daily-digest/config"
	"daily-digest/logger"
	"daily-digest/news"
)

// Response represents the JSON output structure
type Response struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Strategy string `json:"strategy,omitempty"`
	Length   int    `json:"length"`
	Text     string `json:"text"`
}

func main() {
	v := config.New()
	timeout := flag.Duration("timeout", v.GetDuration("fetch_timeout"), "per-request timeout")
	limit := flag.Int("limit", v.GetInt("snippet_chars"), "characters of text to print, -1 for all")
	verbose := flag.Bool("v", false, "log each strategy attempt")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: extract [-timeout 10s] [-limit 1000] [-v] URL")
		os.Exit(2)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.New(level, os.Stderr)
	fetcher := article.Default(log, v.GetString("user_agent"), *timeout)

	if err := extract(context.Background(), os.Stdout, fetcher, flag.Arg(0), *limit); err != nil {
		fmt.Println("Error marshaling JSON:", err)
		os.Exit(1)
	}
}

func extract(ctx context.Context, w io.Writer, fetcher *article.Fetcher, url string, limit int) error {
	res := fetcher.Fetch(ctx, url)

	response := Response{
		Success:  res.Strategy != "",
		URL:      url,
		Strategy: res.Strategy,
		Length:   utf8.RuneCountInString(res.Text),
		Text:     news.Truncate(res.Text, limit),
	}

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(w, string(jsonData))
	return nil
}
