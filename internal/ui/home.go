package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/feed"
	"github.com/abelbrown/marquee/internal/otel"
)

const rowCellWidth = 26

// homeRows are the category rows under the hero, in display order.
var homeRows = []catalog.Category{catalog.NowPlaying, catalog.Popular, catalog.Upcoming, catalog.TopRated}

// row is one horizontally scrolling category strip.
type row struct {
	category catalog.Category
	feed     *feed.Feed
	prox     feed.Proximity
	cursor   int
	offset   int
}

type homeScreen struct {
	env  *env
	name string
	keys keyMap
	hero *hero
	rows []*row

	// focus is 0 for the hero, i+1 for rows[i].
	focus   int
	paused  bool
	loading bool
	err     error
	width   int
}

func newHomeScreen(e *env) *homeScreen {
	h := &homeScreen{env: e, name: e.feedName("home"), keys: defaultKeyMap(), hero: newHero(e), width: 80}
	for _, c := range homeRows {
		h.rows = append(h.rows, &row{
			category: c,
			feed:     feed.New(feed.Options{Name: e.feedName("home/" + string(c))}),
			prox:     feed.Proximity{Distance: 2},
		})
	}
	return h
}

func (h *homeScreen) Init() tea.Cmd {
	h.loading = true
	cmds := []tea.Cmd{h.env.loadHome(h.name)}
	for _, r := range h.rows {
		cmds = append(cmds, h.env.fetchFeed(r.feed.SetQuery(feed.CategoryQuery(r.category))))
	}
	return tea.Batch(cmds...)
}

func (h *homeScreen) Title() string { return "Home" }
func (h *homeScreen) Route() Route  { return Route{Kind: RouteHome, Path: "/"} }
func (h *homeScreen) Loading() bool { return h.loading }

// Blur stops auto-advance while another screen covers the hero.
func (h *homeScreen) Blur() { h.hero.c.SetAutoAdvance(false) }

func (h *homeScreen) Focus() { h.hero.c.SetAutoAdvance(h.autoAdvance()) }

func (h *homeScreen) Close() { h.hero.c.Close() }

func (h *homeScreen) autoAdvance() bool {
	if h.paused {
		return false
	}
	return h.env.cfg == nil || h.env.cfg.Carousel.AutoAdvance
}

func (h *homeScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
		return h.prefetchVisible()

	case HomeLoaded:
		if msg.Screen != h.name {
			return nil
		}
		h.loading = false
		h.err = msg.Err
		if msg.Err == nil {
			h.hero.setMovies(msg.Home.Hero)
		}
		return nil

	case feed.Result:
		for _, r := range h.rows {
			if msg.Request.Feed != r.feed.Name() {
				continue
			}
			if !r.feed.Resolve(msg) {
				h.env.staleResult(msg)
				return nil
			}
			if msg.Err != nil {
				return nil
			}
			return h.env.fetchFeed(r.prox.Signal(r.feed, r.offset+h.cells()-1))
		}
		return nil

	case frameMsg:
		return h.hero.frame()

	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return nil
}

func (h *homeScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, h.keys.Up):
		if h.focus > 0 {
			h.focus--
		}
	case key.Matches(msg, h.keys.Down):
		if h.focus < len(h.rows) {
			h.focus++
		}
	case key.Matches(msg, h.keys.Left):
		if h.focus == 0 {
			h.hero.c.Previous()
			return nil
		}
		return h.moveRow(h.rows[h.focus-1], -1)
	case key.Matches(msg, h.keys.Right):
		if h.focus == 0 {
			h.hero.c.Next()
			return nil
		}
		return h.moveRow(h.rows[h.focus-1], 1)
	case key.Matches(msg, h.keys.Pause):
		h.paused = !h.paused
		h.hero.c.SetAutoAdvance(h.autoAdvance())
		h.env.events.Emit(otel.Event{
			Level: otel.LevelInfo, Kind: otel.KindCarouselPause, Comp: "home",
			Extra: map[string]any{"paused": h.paused},
		})
	case key.Matches(msg, h.keys.Open):
		return h.open()
	case key.Matches(msg, h.keys.Retry):
		return h.retry()
	}
	return nil
}

func (h *homeScreen) open() tea.Cmd {
	if h.focus == 0 {
		slide, ok := h.hero.c.Current()
		if !ok || slide.LinkTarget == "" {
			return nil
		}
		return navigate(slide.LinkTarget)
	}
	r := h.rows[h.focus-1]
	items := r.feed.Items()
	if r.cursor >= len(items) {
		return nil
	}
	return navigate(MoviePath(items[r.cursor].ID))
}

func (h *homeScreen) retry() tea.Cmd {
	var cmds []tea.Cmd
	if h.err != nil && !h.loading {
		h.loading = true
		h.err = nil
		cmds = append(cmds, h.env.loadHome(h.name))
	}
	for _, r := range h.rows {
		cmds = append(cmds, h.env.fetchFeed(r.feed.Retry()))
	}
	return tea.Batch(cmds...)
}

// cells is how many movies fit across one row.
func (h *homeScreen) cells() int {
	n := (h.width - 2) / rowCellWidth
	if n < 1 {
		n = 1
	}
	return n
}

func (h *homeScreen) moveRow(r *row, delta int) tea.Cmd {
	n := r.feed.Len()
	if n == 0 {
		return nil
	}
	r.cursor += delta
	if r.cursor < 0 {
		r.cursor = 0
	}
	if r.cursor >= n {
		r.cursor = n - 1
	}
	r.offset = window(r.offset, r.cursor, h.cells(), n)
	return h.env.fetchFeed(r.prox.Signal(r.feed, r.offset+h.cells()-1))
}

// prefetchVisible signals every row whose sentinel is on screen.
func (h *homeScreen) prefetchVisible() tea.Cmd {
	var cmds []tea.Cmd
	for _, r := range h.rows {
		cmds = append(cmds, h.env.fetchFeed(r.prox.Signal(r.feed, r.offset+h.cells()-1)))
	}
	return tea.Batch(cmds...)
}

func (h *homeScreen) View(width, height int) string {
	if h.err != nil {
		return renderError(h.err, width)
	}
	if h.loading && h.hero.c.Len() == 0 {
		return HelpStyle.Render("Loading featured movies…")
	}

	sections := []string{h.hero.view(width, h.focus == 0)}
	for i, r := range h.rows {
		sections = append(sections, h.rowView(r, width, h.focus == i+1))
	}
	return fitHeight(strings.Join(sections, "\n"), height)
}

func (h *homeScreen) rowView(r *row, width int, focused bool) string {
	title := SectionTitle
	if focused {
		title = SectionTitleFocused
	}
	head := title.Render(r.category.Title())

	switch {
	case r.feed.Err() != nil && r.feed.Len() == 0:
		return head + "\n" + ErrorStyle.Render(truncateRunes("Error: "+r.feed.Err().Error(), width-2))
	case r.feed.Len() == 0:
		return head + "\n" + Meta.Render("  loading…")
	}

	items := r.feed.Items()
	end := r.offset + h.cells()
	if end > len(items) {
		end = len(items)
	}
	cells := make([]string, 0, end-r.offset+1)
	for i := r.offset; i < end; i++ {
		label := truncateRunes(items[i].Title, rowCellWidth-3)
		style := NormalItem
		if focused && i == r.cursor {
			style = SelectedItem
		}
		cells = append(cells, style.Width(rowCellWidth).Render(label))
	}
	if r.feed.Loading() {
		cells = append(cells, Meta.Render("…"))
	}
	return head + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// navigate is the command form of a Navigate message.
func navigate(path string) tea.Cmd {
	r := ParseRoute(path)
	return func() tea.Msg { return Navigate{Route: r} }
}
