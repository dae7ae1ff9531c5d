// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultClientRetryMaxAttempts is the default number of retry attempts.
	DefaultClientRetryMaxAttempts = 3

	// DefaultClientRetryMultiplier is the default exponential backoff multiplier.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor is the default jitter percentage (±25%).
	DefaultClientRetryJitterFactor = 0.25

	// DefaultClientCircuitMaxFailures is the default failures before circuit opens.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the default successes to close circuit.
	DefaultClientCircuitHalfOpenLimit = 3

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultWordsPerMinute is the reading speed behind "{n} min read".
	DefaultWordsPerMinute = 200

	// DefaultFragmentCacheSize is the number of rendered fragments kept by the preview server.
	DefaultFragmentCacheSize = 256

	// DefaultSiteURL is the canonical site address used in permalinks.
	DefaultSiteURL = "https://nishantarora.xyz"
)

// Content source kinds.
const (
	SourceFS   = "fs"
	SourceHTTP = "http"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Site      SiteConfig      `koanf:"site"      validate:"required"`
	Content   ContentConfig   `koanf:"content"   validate:"required"`
	Output    OutputConfig    `koanf:"output"    validate:"required"`
	Render    RenderConfig    `koanf:"render"    validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Watch     WatchConfig     `koanf:"watch"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Title        string `koanf:"title"         validate:"required"`
	Author       string `koanf:"author"        validate:"required"`
	Description  string `koanf:"description"`
	BaseURL      string `koanf:"base_url"      validate:"required,url"`
	DefaultImage string `koanf:"default_image" validate:"required"`
	Language     string `koanf:"language"      validate:"required"`
	FeedPath     string `koanf:"feed_path"     validate:"required"`
}

// ContentConfig locates metadata lists and content bodies.
type ContentConfig struct {
	Source           string `koanf:"source"            validate:"required,oneof=fs http"`
	Root             string `koanf:"root"              validate:"required"`
	PostsMetadata    string `koanf:"posts_metadata"    validate:"required"`
	ProjectsMetadata string `koanf:"projects_metadata" validate:"required"`
	PostsDir         string `koanf:"posts_dir"         validate:"required"`
	ProjectsDir      string `koanf:"projects_dir"      validate:"required"`
	RemoteBaseURL    string `koanf:"remote_base_url"   validate:"required_if=Source http,omitempty,url"`
}

// OutputConfig controls where generated pages and the feed are written.
type OutputConfig struct {
	Root      string `koanf:"root"      validate:"required"`
	FeedFile  string `koanf:"feed_file" validate:"required"`
	Reconcile bool   `koanf:"reconcile"`
}

// RenderConfig toggles optional renderer passes.
type RenderConfig struct {
	ProtectPostMath bool   `koanf:"protect_post_math"`
	TypesetMath     bool   `koanf:"typeset_math"`
	SanitizeHTML    bool   `koanf:"sanitize_html"`
	Emoji           bool   `koanf:"emoji"`
	HighlightStyle  string `koanf:"highlight_style" validate:"required"`
	WordsPerMinute  int    `koanf:"words_per_minute" validate:"required,min=1"`

	// CacheSize bounds the rendered fragment cache. Zero disables caching.
	CacheSize int `koanf:"cache_size" validate:"min=0"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// WatchConfig controls rebuild-on-change while serving.
type WatchConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Debounce time.Duration `koanf:"debounce" validate:"required_if=Enabled true,omitempty,min=10ms"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains HTTP client settings for the remote content source.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// defaults returns the default configuration values.
// Paths mirror the site repository layout: metadata beside its generated
// pages, content bodies in their own directories.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "portfolio",
		"app.version":     "dev",
		"app.environment": "local",

		"site.title":         "Nishant Arora",
		"site.author":        "Nishant Arora",
		"site.description":   "Data Engineer / Builder / Learner",
		"site.base_url":      DefaultSiteURL,
		"site.default_image": DefaultSiteURL + "/images/og-default.png",
		"site.language":      "en-us",
		"site.feed_path":     "/feed.xml",

		"content.source":            SourceFS,
		"content.root":              ".",
		"content.posts_metadata":    "posts/posts.json",
		"content.projects_metadata": "projects/projects.json",
		"content.posts_dir":         "posts",
		"content.projects_dir":      "projects-content",
		"content.remote_base_url":   "",

		"output.root":      ".",
		"output.feed_file": "feed.xml",
		"output.reconcile": true,

		"render.protect_post_math": false,
		"render.typeset_math":      true,
		"render.sanitize_html":     false,
		"render.emoji":             false,
		"render.highlight_style":   "github",
		"render.words_per_minute":  DefaultWordsPerMinute,
		"render.cache_size":        DefaultFragmentCacheSize,

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "15s",
		"server.max_request_size": DefaultMaxRequestSize,

		"watch.enabled":  false,
		"watch.debounce": "500ms",

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/portfolio.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "portfolio",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "30s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps an environment variable name to a config key.
// A double underscore separates sections so keys may keep single
// underscores (APP_SITE__BASE_URL -> site.base_url). Without one,
// every underscore is a separator (APP_SERVER_PORT -> server.port).
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "APP_"))
	if strings.Contains(s, "__") {
		return strings.ReplaceAll(s, "__", ".")
	}

	return strings.ReplaceAll(s, "_", ".")
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
