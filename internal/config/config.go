package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultRequestTimeout  = 30 * time.Second
	defaultTemplatesDir    = "templates"
	defaultPublicDir       = "public"
	defaultContentDir      = "content/restaurants"
	defaultContentCacheTTL = 5 * time.Minute
	defaultSiteTitle       = "Eat Local"
	defaultSiteDescription = "Local, regional and national restaurants on one map."
	defaultMapCenter       = "35.056870,-89.692315"
	defaultMapZoom         = 12
	defaultTileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultAttribution     = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	defaultLogLevel        = "info"
	maxMapZoom             = 19
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Content   ContentConfig
	Site      SiteConfig
	Map       MapConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	TemplatesDir   string
	PublicDir      string
	DevMode        bool
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// ContentConfig locates the restaurant markdown files.
type ContentConfig struct {
	Dir      string
	CacheTTL time.Duration
}

// SiteConfig holds site-level metadata shown in the page head.
type SiteConfig struct {
	Title       string
	Description string
	URL         string
}

// MapConfig controls the initial map viewport and tile source.
type MapConfig struct {
	Center      [2]float64
	Zoom        int
	TileURL     string
	Attribution string
}

// AnalyticsConfig holds client instrumentation identifiers.
type AnalyticsConfig struct {
	GA4MeasurementID string
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration fields are invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
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

// WithEnvFile overrides the .env file path used for local overrides.
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

// Load assembles the configuration from defaults, .env overrides and environment variables.
func Load(opts ...Option) (Config, error) {
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
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	var invalid []string

	port := stringWithDefault(lookup, "EATLOCAL_WEB_PORT", "")
	if port == "" {
		// Cloud Run injects PORT.
		port = stringWithDefault(lookup, "PORT", defaultPort)
	}

	center, ok := parseCenter(stringWithDefault(lookup, "EATLOCAL_MAP_CENTER", defaultMapCenter))
	if !ok {
		invalid = append(invalid, "Map.Center")
	}
	zoom := intWithDefault(lookup, "EATLOCAL_MAP_ZOOM", defaultMapZoom)
	if zoom < 0 || zoom > maxMapZoom {
		invalid = append(invalid, "Map.Zoom")
	}

	cfg := Config{
		Server: ServerConfig{
			Port:           port,
			ReadTimeout:    durationWithDefault(lookup, "EATLOCAL_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:   durationWithDefault(lookup, "EATLOCAL_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:    durationWithDefault(lookup, "EATLOCAL_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout: durationWithDefault(lookup, "EATLOCAL_WEB_REQUEST_TIMEOUT", defaultRequestTimeout),
			TemplatesDir:   stringWithDefault(lookup, "EATLOCAL_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:      stringWithDefault(lookup, "EATLOCAL_PUBLIC_DIR", defaultPublicDir),
			DevMode:        boolWithDefault(lookup, "EATLOCAL_WEB_DEV", false),
		},
		Content: ContentConfig{
			Dir:      stringWithDefault(lookup, "EATLOCAL_CONTENT_DIR", defaultContentDir),
			CacheTTL: durationWithDefault(lookup, "EATLOCAL_CONTENT_CACHE_TTL", defaultContentCacheTTL),
		},
		Site: SiteConfig{
			Title:       stringWithDefault(lookup, "EATLOCAL_SITE_TITLE", defaultSiteTitle),
			Description: stringWithDefault(lookup, "EATLOCAL_SITE_DESCRIPTION", defaultSiteDescription),
			URL:         strings.TrimRight(stringWithDefault(lookup, "EATLOCAL_SITE_URL", ""), "/"),
		},
		Map: MapConfig{
			Center:      center,
			Zoom:        zoom,
			TileURL:     stringWithDefault(lookup, "EATLOCAL_MAP_TILE_URL", defaultTileURL),
			Attribution: stringWithDefault(lookup, "EATLOCAL_MAP_ATTRIBUTION", defaultAttribution),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "EATLOCAL_GA_MEASUREMENT_ID", ""),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
		},
	}

	if cfg.Server.RequestTimeout <= 0 {
		invalid = append(invalid, "Server.RequestTimeout")
	}
	if cfg.Content.CacheTTL <= 0 {
		invalid = append(invalid, "Content.CacheTTL")
	}
	if len(invalid) > 0 {
		return cfg, &ValidationError{fields: invalid}
	}
	return cfg, nil
}

func parseCenter(raw string) ([2]float64, bool) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return [2]float64{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return [2]float64{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return [2]float64{}, false
	}
	return [2]float64{lat, lng}, true
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	values, err := godotenv.Read(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
