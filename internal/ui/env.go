package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/config"
	"github.com/abelbrown/marquee/internal/feed"
	"github.com/abelbrown/marquee/internal/otel"
	"github.com/abelbrown/marquee/internal/schedule"
	"github.com/abelbrown/marquee/internal/search"
)

// env is what every screen shares: the data source, the timer scheduler
// and the command queue. Timer callbacks run inside Update but cannot
// return commands, so they push onto queue and App drains it at the end
// of each Update.
type env struct {
	ctx    context.Context
	src    catalog.Source
	sched  schedule.Scheduler
	images catalog.Images
	cfg    *config.Config
	events *otel.Logger

	queue  []tea.Cmd
	names  int
	genres map[int]string
}

func (e *env) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		e.queue = append(e.queue, cmd)
	}
}

func (e *env) drain() tea.Cmd {
	if len(e.queue) == 0 {
		return nil
	}
	cmds := e.queue
	e.queue = nil
	return tea.Batch(cmds...)
}

// feedName returns a unique routing name so results reach only the feed
// that asked for them.
func (e *env) feedName(prefix string) string {
	e.names++
	return fmt.Sprintf("%s#%d", prefix, e.names)
}

func (e *env) timeout() time.Duration {
	if e.cfg != nil && e.cfg.Catalog.Timeout > 0 {
		return e.cfg.Catalog.Timeout
	}
	return 15 * time.Second
}

// fetchFeed runs a feed request off the event loop. A nil request yields a
// nil command.
func (e *env) fetchFeed(req *feed.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	e.events.Emit(otel.Event{
		Level: otel.LevelDebug, Kind: otel.KindFetchStart, Comp: "ui",
		Feed: r.Feed, Query: r.Query.Key(), Page: r.Page,
	})
	ctx, src, events, timeout := e.ctx, e.src, e.events, e.timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		res := feed.Fetch(ctx, src, r)
		ev := otel.Event{
			Kind: otel.KindFetchComplete, Comp: "ui",
			Feed: r.Feed, Query: r.Query.Key(), Page: r.Page, Dur: time.Since(start),
		}
		if res.Err != nil {
			ev.Kind, ev.Level, ev.Err = otel.KindFetchError, otel.LevelWarn, res.Err.Error()
		} else if res.Page != nil {
			ev.Level, ev.Count = otel.LevelInfo, len(res.Page.Results)
		}
		events.Emit(ev)
		return res
	}
}

// staleResult records a result that arrived after its session ended.
func (e *env) staleResult(res feed.Result) {
	e.events.Emit(otel.Event{
		Level: otel.LevelDebug, Kind: otel.KindFetchStale, Comp: "ui",
		Feed: res.Request.Feed, Query: res.Request.Query.Key(), Page: res.Request.Page,
	})
}

func (e *env) loadHome(screen string) tea.Cmd {
	ctx, src, timeout := e.ctx, e.src, e.timeout()
	maxSlides := 5
	if e.cfg != nil {
		maxSlides = e.cfg.Carousel.MaxSlides
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		home, err := catalog.LoadHome(ctx, src, maxSlides)
		return HomeLoaded{Screen: screen, Home: home, Err: err}
	}
}

func (e *env) loadDetail(id int) tea.Cmd {
	ctx, src, timeout := e.ctx, e.src, e.timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		d, err := src.Detail(ctx, id)
		return DetailLoaded{ID: id, Detail: d, Err: err}
	}
}

func (e *env) loadGenres() tea.Cmd {
	ctx, src, timeout := e.ctx, e.src, e.timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		genres, err := src.Genres(ctx)
		return GenresLoaded{Genres: genres, Err: err}
	}
}

func (e *env) suggest(query string, seq uint64) tea.Cmd {
	ctx, src, timeout := e.ctx, e.src, e.timeout()
	limit := 5
	if e.cfg != nil {
		limit = e.cfg.Search.MaxSuggestions
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return search.Suggest(ctx, src, query, seq, limit)
	}
}

// rememberGenres merges genre names used for labels.
func (e *env) rememberGenres(genres []catalog.Genre) {
	if e.genres == nil {
		e.genres = make(map[int]string, len(genres))
	}
	for _, g := range genres {
		e.genres[g.ID] = g.Name
	}
}

func (e *env) genreName(id int) string {
	if name, ok := e.genres[id]; ok {
		return name
	}
	return fmt.Sprintf("Genre %d", id)
}
