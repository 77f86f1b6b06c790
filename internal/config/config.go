package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile       = ".env"
	defaultPort          = "8080"
	defaultBaseURL       = "https://www.floridacoastalstructures.com"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultIdleTimeout   = 120 * time.Second
	defaultCacheTTL      = 5 * time.Minute
	defaultRateLimit     = 300
	defaultExportWorkers = 8
	defaultLogLevel      = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Export    ExportConfig
	Analytics AnalyticsConfig
	LogLevel  string
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SiteConfig locates the content corpus and controls dev behaviour.
type SiteConfig struct {
	BaseURL    string
	ContentDir string
	Dev        bool
}

// CacheConfig selects the rendered-page cache backend.
type CacheConfig struct {
	TTL       time.Duration
	RedisAddr string
}

// RateLimitConfig controls per-IP request throttling on page routes.
type RateLimitConfig struct {
	PerMinute int
}

// ExportConfig tunes the static export.
type ExportConfig struct {
	Workers int
}

// AnalyticsConfig carries client-side measurement ids.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
}

// Addr is the listen address derived from the port.
func (s ServerConfig) Addr() string { return ":" + s.Port }

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, environment
// variables and an explicit map, in increasing precedence.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	var invalid []string
	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "SITE_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
			ReadTimeout:  durationWithDefault(lookup, "SITE_SERVER_READ_TIMEOUT", defaultReadTimeout, &invalid),
			WriteTimeout: durationWithDefault(lookup, "SITE_SERVER_WRITE_TIMEOUT", defaultWriteTimeout, &invalid),
			IdleTimeout:  durationWithDefault(lookup, "SITE_SERVER_IDLE_TIMEOUT", defaultIdleTimeout, &invalid),
		},
		Site: SiteConfig{
			BaseURL:    strings.TrimRight(stringWithDefault(lookup, "SITE_BASE_URL", defaultBaseURL), "/"),
			ContentDir: stringWithDefault(lookup, "SITE_CONTENT_DIR", ""),
			Dev:        boolWithDefault(lookup, "SITE_DEV", false),
		},
		Cache: CacheConfig{
			TTL:       durationWithDefault(lookup, "SITE_CACHE_TTL", defaultCacheTTL, &invalid),
			RedisAddr: stringWithDefault(lookup, "SITE_REDIS_ADDR", ""),
		},
		RateLimit: RateLimitConfig{
			PerMinute: intWithDefault(lookup, "SITE_RATE_LIMIT_PER_MIN", defaultRateLimit, &invalid),
		},
		Export: ExportConfig{
			Workers: intWithDefault(lookup, "SITE_EXPORT_WORKERS", defaultExportWorkers, &invalid),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "SITE_GA_MEASUREMENT_ID", ""),
			GTMContainerID:   stringWithDefault(lookup, "SITE_GTM_CONTAINER_ID", ""),
		},
		LogLevel: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	fields := append([]string(nil), invalid...)
	if p, err := strconv.Atoi(cfg.Server.Port); err != nil || p <= 0 || p > 65535 {
		fields = append(fields, "SITE_PORT")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fields = append(fields, "SITE_BASE_URL")
	}
	if cfg.Cache.TTL < 0 {
		fields = append(fields, "SITE_CACHE_TTL")
	}
	if cfg.RateLimit.PerMinute < 0 {
		fields = append(fields, "SITE_RATE_LIMIT_PER_MIN")
	}
	if cfg.Export.Workers < 1 {
		fields = append(fields, "SITE_EXPORT_WORKERS")
	}
	if len(fields) > 0 {
		return &ValidationError{fields: dedupe(fields)}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration, invalid *[]string) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
		*invalid = append(*invalid, key)
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int, invalid *[]string) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		*invalid = append(*invalid, key)
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	out := in[:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
