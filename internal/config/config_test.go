package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Catalog.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("Catalog.BaseURL = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.APIKey != "" {
		t.Errorf("Catalog.APIKey should be empty by default, got %q", cfg.Catalog.APIKey)
	}
	if cfg.Carousel.Dwell != 8*time.Second {
		t.Errorf("Carousel.Dwell = %v, want 8s", cfg.Carousel.Dwell)
	}
	if cfg.Carousel.Transition != 600*time.Millisecond {
		t.Errorf("Carousel.Transition = %v, want 600ms", cfg.Carousel.Transition)
	}
	if cfg.Carousel.MaxSlides != 5 {
		t.Errorf("Carousel.MaxSlides = %d, want 5", cfg.Carousel.MaxSlides)
	}
	if cfg.Search.Debounce != 500*time.Millisecond {
		t.Errorf("Search.Debounce = %v, want 500ms", cfg.Search.Debounce)
	}
	if cfg.Search.MinChars != 2 {
		t.Errorf("Search.MinChars = %d, want 2", cfg.Search.MinChars)
	}
	if cfg.Feed.SearchMaxPages != 10 {
		t.Errorf("Feed.SearchMaxPages = %d, want 10", cfg.Feed.SearchMaxPages)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"TMDB_API_KEY", "catalog.api_key"},
		{"TMDB_BASE_URL", "catalog.base_url"},
		{"MARQUEE_CAROUSEL_DWELL", "carousel.dwell"},
		{"MARQUEE_CAROUSEL_AUTO", "carousel.auto_advance"},
		{"MARQUEE_LOG_LEVEL", "log.level"},
		{"MARQUEE_CACHE_PATH", "cache.path"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-key")
	t.Setenv("MARQUEE_CAROUSEL_DWELL", "5s")
	t.Setenv("MARQUEE_CAROUSEL_AUTO", "false")
	t.Setenv("MARQUEE_LOG_LEVEL", "debug")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Catalog.APIKey != "env-key" {
		t.Errorf("Catalog.APIKey = %q, want env-key", cfg.Catalog.APIKey)
	}
	if cfg.Carousel.Dwell != 5*time.Second {
		t.Errorf("Carousel.Dwell = %v, want 5s", cfg.Carousel.Dwell)
	}
	if cfg.Carousel.AutoAdvance {
		t.Error("Carousel.AutoAdvance should be false from env")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// Untouched values keep their defaults.
	if cfg.Carousel.Transition != 600*time.Millisecond {
		t.Errorf("Carousel.Transition = %v, want 600ms", cfg.Carousel.Transition)
	}
}

// unsetEnv removes a variable for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadFromFile(t *testing.T) {
	unsetEnv(t, "TMDB_API_KEY")
	dir := t.TempDir()
	path := filepath.Join(dir, "marquee.yaml")
	content := `
catalog:
  api_key: file-key
  language: de-DE
carousel:
  dwell: 10s
  max_slides: 3
search:
  min_chars: 3
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Catalog.APIKey != "file-key" {
		t.Errorf("Catalog.APIKey = %q, want file-key", cfg.Catalog.APIKey)
	}
	if cfg.Catalog.Language != "de-DE" {
		t.Errorf("Catalog.Language = %q, want de-DE", cfg.Catalog.Language)
	}
	if cfg.Carousel.Dwell != 10*time.Second {
		t.Errorf("Carousel.Dwell = %v, want 10s", cfg.Carousel.Dwell)
	}
	if cfg.Carousel.MaxSlides != 3 {
		t.Errorf("Carousel.MaxSlides = %d, want 3", cfg.Carousel.MaxSlides)
	}
	if cfg.Search.MinChars != 3 {
		t.Errorf("Search.MinChars = %d, want 3", cfg.Search.MinChars)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marquee.yaml")
	if err := os.WriteFile(path, []byte("catalog:\n  api_key: file-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TMDB_API_KEY", "env-key")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Catalog.APIKey != "env-key" {
		t.Errorf("Catalog.APIKey = %q, want env-key", cfg.Catalog.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "k")
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.Catalog.APIKey = "  " },
			wantErr: "TMDB_API_KEY",
		},
		{
			name:    "bad base url",
			mutate:  func(c *Config) { c.Catalog.BaseURL = "not a url" },
			wantErr: "BaseURL",
		},
		{
			name:    "zero dwell",
			mutate:  func(c *Config) { c.Carousel.Dwell = 0 },
			wantErr: "Dwell",
		},
		{
			name: "transition longer than dwell",
			mutate: func(c *Config) {
				c.Carousel.Dwell = time.Second
				c.Carousel.Transition = 2 * time.Second
			},
			wantErr: "must be shorter",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "Level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Catalog.APIKey = "test-key"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
