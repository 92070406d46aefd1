package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/abelbrown/marquee/internal/config"
)

// loadConfig returns the user's config. mqctl needs only file locations, so
// a config that fails validation (usually a missing API key) falls back to
// the defaults.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using default paths)\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// eventDir is where the TUI writes events-YYYY-MM-DD.jsonl.
func eventDir(cfg *config.Config) string {
	return filepath.Join(cfg.Log.Dir, "events")
}

// eventLogs lists the event files in dir, oldest first.
func eventLogs(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "events-*.jsonl"))
	if err != nil {
		return nil, err
	}
	// The date in the name sorts lexically.
	sort.Strings(files)
	return files, nil
}

// latestEventLog returns the newest event file or exits with a hint.
func latestEventLog(cfg *config.Config) string {
	dir := eventDir(cfg)
	files, err := eventLogs(dir)
	if err != nil || len(files) == 0 {
		fmt.Fprintf(os.Stderr, "error: no event log in %s\n", dir)
		fmt.Fprintln(os.Stderr, "  Run marquee first to generate events.")
		os.Exit(1)
	}
	return files[len(files)-1]
}
