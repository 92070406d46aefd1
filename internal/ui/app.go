package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/config"
	"github.com/abelbrown/marquee/internal/otel"
	"github.com/abelbrown/marquee/internal/schedule"
	"github.com/abelbrown/marquee/internal/search"
)

// Options configures the App.
type Options struct {
	Context context.Context
	Source  catalog.Source
	// Scheduler arms carousel and debounce timers.
	Scheduler schedule.Scheduler
	// Dispatch runs the callback for a fired timer, normally
	// (*schedule.Loop).Dispatch. Nil when the scheduler calls back directly.
	Dispatch func(schedule.Fired) bool
	Config   *config.Config
	Events   *otel.Logger
	// Ring backs the debug overlay. Optional.
	Ring *otel.Ring
	// Start is the initial path, "/" when empty.
	Start string
}

// App is the root Bubble Tea model.
// App does not fetch anything itself: screens return commands and results
// come back as messages.
type App struct {
	env      *env
	dispatch func(schedule.Fired) bool
	ring     *otel.Ring

	stack []screen

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	searching   bool
	input       textinput.Model
	debouncer   *search.Debouncer
	suggestions []catalog.Movie
	suggestErr  error
	selected    int // -1 means the typed text

	showHelp     bool
	debugVisible bool

	width  int
	height int
	ready  bool
}

// NewApp creates the App with the start screen on the stack. Nothing is
// fetched until Init.
func NewApp(opts Options) App {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	e := &env{
		ctx:    ctx,
		src:    opts.Source,
		sched:  opts.Scheduler,
		images: catalog.NewImages(cfg.Catalog.ImageBaseURL),
		cfg:    cfg,
		events: opts.Events,
	}

	in := textinput.New()
	in.Placeholder = "Search movies…"
	in.Prompt = SearchPrompt.Render("/ ")
	in.CharLimit = 100
	in.Cursor.SetMode(cursor.CursorStatic)

	start := opts.Start
	if start == "" {
		start = "/"
	}

	a := App{
		env:      e,
		dispatch: opts.Dispatch,
		ring:     opts.Ring,
		stack:    []screen{newScreen(e, ParseRoute(start))},
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		input:    in,
		selected: -1,
		width:    80,
		height:   24,
	}
	a.debouncer = search.NewDebouncer(e.sched, cfg.Search.Debounce, cfg.Search.MinChars,
		func(q string, seq uint64) { e.enqueue(e.suggest(q, seq)) })
	return a
}

// Init loads the start screen.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.top().Init(), a.spinner.Tick)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg != nil && otel.TraceEnabled() {
		a.env.events.Emit(otel.Event{
			Level: otel.LevelDebug, Kind: otel.KindMsgReceived, Comp: "ui",
			Msg: fmt.Sprintf("%T", msg),
		})
	}
	var cmd tea.Cmd
	a, cmd = a.update(msg)
	return a, tea.Batch(cmd, a.env.drain())
}

func (a App) update(msg tea.Msg) (App, tea.Cmd) {
	switch msg := msg.(type) {
	case nil:
		return a, nil

	case schedule.Fired:
		if a.dispatch != nil {
			a.dispatch(msg)
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.input.Width = msg.Width - 6
		return a, a.broadcast(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.searching {
			return a.handleSearchKey(msg)
		}
		return a.handleKeyMsg(msg)

	case Navigate:
		return a.push(msg.Route)

	case search.Suggestions:
		if !a.searching || !a.debouncer.Current(msg.Seq) {
			a.env.events.Emit(otel.Event{
				Level: otel.LevelDebug, Kind: otel.KindSuggestStale, Comp: "ui", Query: msg.Query,
			})
			return a, nil
		}
		a.suggestions, a.suggestErr, a.selected = msg.Movies, msg.Err, -1
		a.env.events.Emit(otel.Event{
			Level: otel.LevelInfo, Kind: otel.KindSuggest, Comp: "ui",
			Query: msg.Query, Count: len(msg.Movies),
		})
		return a, nil

	case HomeLoaded:
		a.env.rememberGenres(msg.Home.Genres)
	case GenresLoaded:
		a.env.rememberGenres(msg.Genres)
	}

	return a, a.broadcast(msg)
}

// broadcast hands a data message to every screen; each ignores what is not
// addressed to it.
func (a App) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.stack))
	for _, s := range a.stack {
		cmds = append(cmds, s.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (a App) top() screen {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

func (a App) push(r Route) (App, tea.Cmd) {
	if t := a.top(); t != nil {
		if t.Route().String() == r.String() {
			return a, nil
		}
		t.Blur()
	}
	s := newScreen(a.env, r)
	a.stack = append(a.stack, s)
	a.env.events.Emit(otel.Event{
		Level: otel.LevelInfo, Kind: otel.KindNavigate, Comp: "ui", Msg: r.String(),
	})
	cmds := []tea.Cmd{s.Init()}
	if a.ready {
		cmds = append(cmds, s.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height}))
	}
	return a, tea.Batch(cmds...)
}

func (a App) back() (App, tea.Cmd) {
	if len(a.stack) <= 1 {
		return a, nil
	}
	t := a.top()
	t.Close()
	a.stack = a.stack[:len(a.stack)-1]
	a.top().Focus()
	return a, nil
}

// home clears the stack down to a home screen.
func (a App) home() (App, tea.Cmd) {
	if len(a.stack) > 0 && a.stack[0].Route().Kind == RouteHome {
		for len(a.stack) > 1 {
			a, _ = a.back()
		}
		return a, nil
	}
	return a.push(Route{Kind: RouteHome, Path: "/"})
}

func (a App) quit() (App, tea.Cmd) {
	for _, s := range a.stack {
		s.Close()
	}
	a.debouncer.Cancel()
	return a, tea.Quit
}

// handleKeyMsg processes keyboard input outside the search bar.
func (a App) handleKeyMsg(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.debugVisible {
		switch {
		case key.Matches(msg, a.keys.Debug), key.Matches(msg, a.keys.Back):
			a.debugVisible = false
		case key.Matches(msg, a.keys.Quit):
			return a.quit()
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil
	case key.Matches(msg, a.keys.Debug):
		a.debugVisible = true
		return a, nil
	case key.Matches(msg, a.keys.Back):
		if a.showHelp {
			a.showHelp = false
			a.help.ShowAll = false
			return a, nil
		}
		return a.back()
	case key.Matches(msg, a.keys.Search):
		return a.openSearch()
	case key.Matches(msg, a.keys.Home):
		return a.home()
	case key.Matches(msg, a.keys.Genres):
		return a.push(Route{Kind: RouteGenres, Path: "/genres"})
	case key.Matches(msg, a.keys.Category):
		i := int(msg.Runes[0] - '1')
		c := catalog.Categories[i]
		return a.push(Route{Kind: RouteCategory, Category: c, Path: "/category/" + string(c)})
	}

	if t := a.top(); t != nil {
		return a, t.Update(msg)
	}
	return a, nil
}

func (a App) openSearch() (App, tea.Cmd) {
	a.searching = true
	a.suggestions, a.suggestErr, a.selected = nil, nil, -1
	a.input.SetValue("")
	return a, a.input.Focus()
}

func (a App) closeSearch() App {
	a.searching = false
	a.debouncer.Cancel()
	a.suggestions, a.suggestErr, a.selected = nil, nil, -1
	a.input.Blur()
	return a
}

// handleSearchKey drives the search bar: typing schedules suggestions,
// up and down pick one, enter opens it or submits the text.
func (a App) handleSearchKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return a.closeSearch(), nil
	case "up":
		if a.selected >= 0 {
			a.selected--
		}
		return a, nil
	case "down":
		if a.selected < len(a.suggestions)-1 {
			a.selected++
		}
		return a, nil
	case "enter":
		var r Route
		if a.selected >= 0 && a.selected < len(a.suggestions) {
			r = ParseRoute(MoviePath(a.suggestions[a.selected].ID))
		} else {
			q := strings.TrimSpace(a.input.Value())
			if q == "" {
				return a, nil
			}
			r = Route{Kind: RouteSearch, Query: q, Page: 1}
			r.Path = r.String()
		}
		a = a.closeSearch()
		return a.push(r)
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() != before {
		a.suggestions, a.suggestErr, a.selected = nil, nil, -1
		a.debouncer.Input(a.input.Value())
	}
	return a, cmd
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	t := a.top()
	if t == nil {
		return ""
	}

	header := a.renderHeader(t)
	contentHeight := a.height - 2

	if a.debugVisible {
		return header + "\n" + fitHeight(debugOverlay(a.ring, a.width, contentHeight), contentHeight) +
			"\n" + debugStatusBar(a.width)
	}

	var overlay string
	if a.searching {
		overlay = a.renderSearch()
		contentHeight -= strings.Count(overlay, "\n") + 1
	}
	if a.showHelp {
		helpView := a.help.View(a.keys)
		contentHeight -= strings.Count(helpView, "\n") + 1
		overlay += helpView
	}
	if contentHeight < 1 {
		contentHeight = 1
	}

	body := fitHeight(t.View(a.width, contentHeight), contentHeight)
	if overlay != "" {
		body = strings.TrimSuffix(overlay, "\n") + "\n" + body
	}
	return header + "\n" + body + "\n" + a.renderStatusBar(t)
}

func (a App) renderHeader(t screen) string {
	crumb := make([]string, 0, len(a.stack))
	for _, s := range a.stack {
		crumb = append(crumb, s.Title())
	}
	text := "marquee " + HeaderCrumb.Render("› "+strings.Join(crumb, " › "))
	return Header.Width(a.width).Render(truncateRunes(text, a.width*2))
}

func (a App) renderSearch() string {
	lines := []string{SearchBar.Width(a.width).Render(a.input.View())}
	switch {
	case a.suggestErr != nil:
		lines = append(lines, ErrorStyle.Render(truncateRunes(a.suggestErr.Error(), a.width-4)))
	case len(a.suggestions) > 0:
		items := make([]string, len(a.suggestions))
		for i, m := range a.suggestions {
			label := truncateRunes(movieLabel(m), a.width-8)
			if i == a.selected {
				items[i] = SelectedItem.Render(label)
			} else {
				items[i] = NormalItem.Render(label)
			}
		}
		lines = append(lines, SuggestionBox.Render(strings.Join(items, "\n")))
	case a.debouncer.Pending():
		lines = append(lines, Meta.Render("  …"))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (a App) renderStatusBar(t screen) string {
	left := a.help.ShortHelpView(a.keys.ShortHelp())
	if t.Loading() {
		left = a.spinner.View() + " " + left
	}
	return StatusBar.Width(a.width).Render(left)
}

// Route returns the route of the top screen (for testing).
func (a App) Route() Route {
	if t := a.top(); t != nil {
		return t.Route()
	}
	return Route{}
}

// Depth returns the number of screens on the stack (for testing).
func (a App) Depth() int {
	return len(a.stack)
}
