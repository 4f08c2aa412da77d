package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	PolicyAbort = "abort"
	PolicySkip  = "skip"

	DateLayout = "2006-01-02"
)

var (
	ErrMissingCredential = errors.New("missing model API credential")
	ErrInvalid           = errors.New("invalid configuration")
)

// DefaultFeeds are polled when no feeds are configured.
var DefaultFeeds = []string{
	"https://blog.unity.com/rss",
	"https://www.roadtovr.com/feed/",
	"https://www.uploadvr.com/feed/",
	"https://export.arxiv.org/rss/cs.CV",
}

var defaultModels = map[string]string{
	ProviderGemini: "gemini-1.5-flash",
	ProviderOpenAI: "gpt-4o-mini",
}

// Config is built once at startup and passed to every stage.
type Config struct {
	Provider string
	APIKey   string
	Model    string

	Feeds        []string
	MaxPerFeed   int
	SnippetChars int
	PromptChars  int

	FetchTimeout time.Duration
	FeedTimeout  time.Duration
	UserAgent    string

	OutputDir      string
	SiteTitle      string
	Concurrency    int
	OnSummaryError string

	LogLevel string
	Addr     string

	// Date is the run date, formatted with DateLayout.
	Date string
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("model", "")
	v.SetDefault("feeds", DefaultFeeds)
	v.SetDefault("max_per_feed", 5)
	v.SetDefault("snippet_chars", 1000)
	v.SetDefault("prompt_chars", 500)
	v.SetDefault("fetch_timeout", 10*time.Second)
	v.SetDefault("feed_timeout", 20*time.Second)
	v.SetDefault("user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("output_dir", ".")
	v.SetDefault("site_title", "Unity AI VR Daily News")
	v.SetDefault("concurrency", 1)
	v.SetDefault("on_summary_error", PolicyAbort)
	v.SetDefault("log_level", "info")
	v.SetDefault("addr", ":8080")

	v.SetEnvPrefix("DIGEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY", "DIGEST_GEMINI_API_KEY")
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY", "DIGEST_OPENAI_API_KEY")

	return v
}

// ReadFile merges a YAML config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

// Load validates settings and resolves the credential for the selected provider.
// It never touches the network.
func Load(v *viper.Viper, now time.Time) (*Config, error) {
	cfg := &Config{
		Provider:       strings.ToLower(strings.TrimSpace(v.GetString("provider"))),
		Model:          v.GetString("model"),
		Feeds:          v.GetStringSlice("feeds"),
		MaxPerFeed:     v.GetInt("max_per_feed"),
		SnippetChars:   v.GetInt("snippet_chars"),
		PromptChars:    v.GetInt("prompt_chars"),
		FetchTimeout:   v.GetDuration("fetch_timeout"),
		FeedTimeout:    v.GetDuration("feed_timeout"),
		UserAgent:      v.GetString("user_agent"),
		OutputDir:      v.GetString("output_dir"),
		SiteTitle:      v.GetString("site_title"),
		Concurrency:    v.GetInt("concurrency"),
		OnSummaryError: strings.ToLower(v.GetString("on_summary_error")),
		LogLevel:       v.GetString("log_level"),
		Addr:           v.GetString("addr"),
		Date:           now.Format(DateLayout),
	}

	switch cfg.Provider {
	case ProviderGemini:
		cfg.APIKey = v.GetString("gemini_api_key")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: set GEMINI_API_KEY in env", ErrMissingCredential)
		}
	case ProviderOpenAI:
		cfg.APIKey = v.GetString("openai_api_key")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: set OPENAI_API_KEY in env", ErrMissingCredential)
		}
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalid, cfg.Provider)
	}

	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadServe loads the subset needed to serve already published files.
func LoadServe(v *viper.Viper) *Config {
	return &Config{
		OutputDir: v.GetString("output_dir"),
		SiteTitle: v.GetString("site_title"),
		LogLevel:  v.GetString("log_level"),
		Addr:      v.GetString("addr"),
	}
}

func (c *Config) validate() error {
	var feeds []string
	for _, f := range c.Feeds {
		if f = strings.TrimSpace(f); f != "" {
			feeds = append(feeds, f)
		}
	}
	c.Feeds = feeds

	switch {
	case len(c.Feeds) == 0:
		return fmt.Errorf("%w: no feeds configured", ErrInvalid)
	case c.MaxPerFeed < 1:
		return fmt.Errorf("%w: max_per_feed must be at least 1", ErrInvalid)
	case c.SnippetChars < 0 || c.PromptChars < 0:
		return fmt.Errorf("%w: snippet_chars and prompt_chars must not be negative", ErrInvalid)
	case c.FetchTimeout <= 0 || c.FeedTimeout <= 0:
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalid)
	case c.OutputDir == "":
		return fmt.Errorf("%w: output_dir is empty", ErrInvalid)
	}

	if c.Concurrency < 1 {
		c.Concurrency = 1
	}

	if c.OnSummaryError != PolicyAbort && c.OnSummaryError != PolicySkip {
		return fmt.Errorf("%w: on_summary_error must be %q or %q", ErrInvalid, PolicyAbort, PolicySkip)
	}
	return nil
}
