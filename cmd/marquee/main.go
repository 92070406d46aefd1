// Command marquee is a terminal movie browser.
//
// Usage:
//
//	marquee                    Start on the home screen
//	marquee /search?q=heat     Start on any route
//
// The TMDB API key is read from TMDB_API_KEY or the config file.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/config"
	"github.com/abelbrown/marquee/internal/logging"
	"github.com/abelbrown/marquee/internal/otel"
	"github.com/abelbrown/marquee/internal/schedule"
	"github.com/abelbrown/marquee/internal/store"
	"github.com/abelbrown/marquee/internal/ui"
)

// ringSize is how many recent events the debug overlay keeps.
const ringSize = 256

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.Log.Dir, cfg.Log.Level); err != nil {
		return err
	}
	defer logging.Close()

	events, err := otel.Open(filepath.Join(cfg.Log.Dir, "events"))
	if err != nil {
		logging.Warn("event log disabled", "err", err)
		events = otel.NewNullLogger()
	}
	defer events.Close()
	ring := otel.NewRing(ringSize)
	events.SetRing(ring)

	var opts []catalog.Option
	if cfg.Cache.Path != "" {
		st, err := store.Open(cfg.Cache.Path, cfg.Cache.TTL)
		if err != nil {
			// Browsing still works uncached.
			logging.Warn("response cache disabled", "path", cfg.Cache.Path, "err", err)
		} else {
			defer st.Close()
			if n, err := st.Prune(); err != nil {
				logging.Warn("cache prune failed", "err", err)
			} else if n > 0 {
				logging.Info("cache pruned", "removed", n)
			}
			opts = append(opts, catalog.WithCache(st))
		}
	}
	client := catalog.NewClient(cfg.Catalog, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := schedule.NewLoop()
	defer loop.Stop()

	start := "/"
	if len(os.Args) > 1 {
		start = os.Args[1]
	}

	app := ui.NewApp(ui.Options{
		Context:   ctx,
		Source:    client,
		Scheduler: loop,
		Dispatch:  loop.Dispatch,
		Config:    cfg,
		Events:    events,
		Ring:      ring,
		Start:     start,
	})

	program := tea.NewProgram(app, tea.WithAltScreen())
	loop.Attach(func(msg interface{}) { program.Send(msg) })

	events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindStartup, Comp: "main", Msg: start})
	_, err = program.Run()
	events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindShutdown, Comp: "main"})
	if err != nil {
		logging.Error("program exited", "err", err)
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
