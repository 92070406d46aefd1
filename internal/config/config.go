// Package config loads marquee configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables. The result is validated before use.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "MARQUEE_CONFIG"

// Config is the application configuration.
type Config struct {
	Catalog  CatalogConfig  `koanf:"catalog"`
	Carousel CarouselConfig `koanf:"carousel"`
	Feed     FeedConfig     `koanf:"feed"`
	Search   SearchConfig   `koanf:"search"`
	Cache    CacheConfig    `koanf:"cache"`
	Log      LogConfig      `koanf:"log"`
}

// CatalogConfig holds the movie metadata service connection settings.
// It is passed to catalog.NewClient; nothing reads the API key from ambient state.
type CatalogConfig struct {
	APIKey            string        `koanf:"api_key" validate:"required"`
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	ImageBaseURL      string        `koanf:"image_base_url" validate:"required,url"`
	Language          string        `koanf:"language"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"gte=1"`
}

// CarouselConfig controls the home screen hero carousel.
type CarouselConfig struct {
	Dwell       time.Duration `koanf:"dwell" validate:"gt=0"`
	Transition  time.Duration `koanf:"transition" validate:"gt=0"`
	MaxSlides   int           `koanf:"max_slides" validate:"gte=1"`
	AutoAdvance bool          `koanf:"auto_advance"`
}

// FeedConfig controls paginated lists.
type FeedConfig struct {
	// PrefetchDistance is how many rows before the end of a list the
	// next page is requested.
	PrefetchDistance int `koanf:"prefetch_distance" validate:"gte=0"`
	// SearchMaxPages caps numbered pagination on search results.
	SearchMaxPages int `koanf:"search_max_pages" validate:"gte=1"`
}

// SearchConfig controls search-as-you-type suggestions.
type SearchConfig struct {
	Debounce       time.Duration `koanf:"debounce" validate:"gt=0"`
	MinChars       int           `koanf:"min_chars" validate:"gte=1"`
	MaxSuggestions int           `koanf:"max_suggestions" validate:"gte=1"`
}

// CacheConfig controls the on-disk response cache. An empty Path disables it.
type CacheConfig struct {
	Path string        `koanf:"path"`
	TTL  time.Duration `koanf:"ttl" validate:"gte=0"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	Dir   string `koanf:"dir"`
}

// DataDir returns ~/.marquee, the directory for logs, cache and config.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".marquee"
	}
	return filepath.Join(home, ".marquee")
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	dataDir := DataDir()
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p/",
			Language:          "en-US",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 20,
			Burst:             5,
		},
		Carousel: CarouselConfig{
			Dwell:       8 * time.Second,
			Transition:  600 * time.Millisecond,
			MaxSlides:   5,
			AutoAdvance: true,
		},
		Feed: FeedConfig{
			PrefetchDistance: 3,
			SearchMaxPages:   10,
		},
		Search: SearchConfig{
			Debounce:       500 * time.Millisecond,
			MinChars:       2,
			MaxSuggestions: 5,
		},
		Cache: CacheConfig{
			Path: filepath.Join(dataDir, "cache.db"),
			TTL:  30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   filepath.Join(dataDir, "logs"),
		},
	}
}

// Load reads configuration from defaults, the first config file found and
// the environment.
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration. A missing API key gets a dedicated
// message because it is the one value every user must supply.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog.APIKey) == "" {
		return fmt.Errorf("config: TMDB_API_KEY is required (set it in the environment or catalog.api_key)")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Carousel.Transition >= c.Carousel.Dwell {
		return fmt.Errorf("config: carousel.transition (%s) must be shorter than carousel.dwell (%s)",
			c.Carousel.Transition, c.Carousel.Dwell)
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range []string{"marquee.yaml", filepath.Join(DataDir(), "config.yaml")} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var envMappings = map[string]string{
	"tmdb_api_key":             "catalog.api_key",
	"tmdb_base_url":            "catalog.base_url",
	"tmdb_image_base_url":      "catalog.image_base_url",
	"tmdb_language":            "catalog.language",
	"tmdb_timeout":             "catalog.timeout",
	"tmdb_requests_per_second": "catalog.requests_per_second",

	"marquee_carousel_dwell":      "carousel.dwell",
	"marquee_carousel_transition": "carousel.transition",
	"marquee_carousel_auto":       "carousel.auto_advance",

	"marquee_search_debounce": "search.debounce",

	"marquee_cache_path": "cache.path",
	"marquee_cache_ttl":  "cache.ttl",

	"marquee_log_level": "log.level",
	"marquee_log_dir":   "log.dir",
}

// envTransformFunc maps environment variable names to config keys.
// Unknown variables map to "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
