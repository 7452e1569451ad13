package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Browser    BrowserConfig
	Search     SearchConfig
	Auth       AuthConfig
	RateLimit  RateLimitConfig
	Cache      CacheConfig
	Log        LogConfig
	Summarizer SummarizerConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is an optional proxy URL for all browser traffic.
	Proxy string
}

// SearchConfig controls the flight-search scrape.
type SearchConfig struct {
	// URL is the booking site the scraper targets.
	URL string // default: "https://www.budgetticket.in"

	// Timeout bounds one whole search (navigation + form + extraction).
	Timeout time.Duration // default: 60s

	// FormDelay is the pause after page load before filling the form.
	FormDelay time.Duration // default: 2s

	// SettleDelay is the pause after the results DOM stabilises, giving
	// late-arriving listings a chance to render.
	SettleDelay time.Duration // default: 1s

	// MaxConcurrent is the advisory concurrent-search ceiling reported by
	// the health endpoint. Searches are not queued against it.
	MaxConcurrent int // default: 10
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the search response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000

	// TTL is how long a cached search stays fresh. Zero disables caching.
	TTL time.Duration // default: 5m
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// SummarizerConfig controls the webpage summariser (API + pagebrief CLI).
// The API key is only ever read from the environment, never from files
// checked into the tree.
type SummarizerConfig struct {
	// BaseURL is any OpenAI-compatible chat-completions endpoint.
	BaseURL string // default: "https://api.cerebras.ai/v1"

	// APIKey authenticates against BaseURL. Empty disables the summariser.
	APIKey string

	// Model is the chat model name.
	Model string // default: "llama3.1-8b"

	// MaxChars caps cleaned content handed to the model.
	MaxChars int // default: 5000

	// Timeout bounds one fetch+summarise round trip.
	Timeout time.Duration // default: 60s

	// Proxy is an optional proxy URL for the page fetch.
	Proxy string
}

// Enabled reports whether the summariser has credentials to run.
func (c SummarizerConfig) Enabled() bool {
	return c.APIKey != ""
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("FARESCOUT_HOST", "0.0.0.0"),
			Port: envIntOr("FARESCOUT_PORT", 8080),
			Mode: envOr("FARESCOUT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("FARESCOUT_HEADLESS", true),
			NoSandbox:  envBoolOr("FARESCOUT_NO_SANDBOX", false),
			BrowserBin: os.Getenv("FARESCOUT_BROWSER_BIN"),
			Proxy:      os.Getenv("FARESCOUT_PROXY"),
		},
		Search: SearchConfig{
			URL:           envOr("FARESCOUT_SEARCH_URL", "https://www.budgetticket.in"),
			Timeout:       envDurationOr("FARESCOUT_SEARCH_TIMEOUT", 60*time.Second),
			FormDelay:     envDurationOr("FARESCOUT_FORM_DELAY", 2*time.Second),
			SettleDelay:   envDurationOr("FARESCOUT_SETTLE_DELAY", time.Second),
			MaxConcurrent: envIntOr("FARESCOUT_MAX_SEARCHES", 10),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("FARESCOUT_AUTH_ENABLED", true),
			APIKeys: envSliceOr("FARESCOUT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("FARESCOUT_RATE_RPS", 5.0),
			Burst:             envIntOr("FARESCOUT_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("FARESCOUT_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("FARESCOUT_CACHE_TTL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  envOr("FARESCOUT_LOG_LEVEL", "info"),
			Format: envOr("FARESCOUT_LOG_FORMAT", "json"),
		},
		Summarizer: SummarizerConfig{
			BaseURL:  envOr("FARESCOUT_LLM_BASE_URL", "https://api.cerebras.ai/v1"),
			APIKey:   os.Getenv("FARESCOUT_LLM_API_KEY"),
			Model:    envOr("FARESCOUT_LLM_MODEL", "llama3.1-8b"),
			MaxChars: envIntOr("FARESCOUT_LLM_MAX_CHARS", 5000),
			Timeout:  envDurationOr("FARESCOUT_LLM_TIMEOUT", 60*time.Second),
			Proxy:    os.Getenv("FARESCOUT_FETCH_PROXY"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
