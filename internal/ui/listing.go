package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/abelbrown/marquee/internal/feed"
	"github.com/abelbrown/marquee/internal/otel"
)

// listingChrome is the number of lines above and below the list: title,
// summary and pager.
const listingChrome = 3

// listingScreen shows one feed. Category and genre listings scroll
// infinitely; search results use numbered pages.
type listingScreen struct {
	env   *env
	keys  keyMap
	route Route
	query feed.Query
	feed  *feed.Feed
	prox  feed.Proximity
	paged bool

	cursor int
	offset int
	height int
}

func newListingScreen(e *env, r Route) *listingScreen {
	s := &listingScreen{env: e, keys: defaultKeyMap(), route: r, height: 20}
	distance := 3
	if e.cfg != nil {
		distance = e.cfg.Feed.PrefetchDistance
	}
	s.prox = feed.Proximity{Distance: distance}

	opts := feed.Options{Name: e.feedName("list")}
	switch r.Kind {
	case RouteCategory:
		s.query = feed.CategoryQuery(r.Category)
	case RouteGenre:
		s.query = feed.GenreQuery(r.ID)
	case RouteSearch:
		s.query = feed.SearchQuery(r.Query)
		s.paged = true
		opts.MaxPages = 10
		if e.cfg != nil {
			opts.MaxPages = e.cfg.Feed.SearchMaxPages
		}
	}
	s.feed = feed.New(opts)
	return s
}

func (s *listingScreen) Init() tea.Cmd {
	req := s.feed.SetQuery(s.query)
	if s.paged && s.route.Page > 1 {
		// Out-of-range deep links fall back to page 1.
		if jump := s.feed.JumpToPage(s.route.Page); jump != nil {
			req = jump
		}
	}
	if s.query.Kind == feed.KindSearch {
		s.env.events.Emit(otel.Event{
			Level: otel.LevelInfo, Kind: otel.KindSearchSubmit, Comp: "ui",
			Query: s.query.Text, Page: req.Page,
		})
	}
	return s.env.fetchFeed(req)
}

func (s *listingScreen) Title() string {
	switch s.query.Kind {
	case feed.KindCategory:
		return s.query.Category.Title()
	case feed.KindGenre:
		return s.env.genreName(s.query.GenreID) + " Movies"
	}
	return fmt.Sprintf("Search: %q", s.query.Text)
}

// Route reflects the page on display for paged listings.
func (s *listingScreen) Route() Route {
	r := s.route
	if s.paged {
		r.Page = s.feed.Page()
	}
	return r
}

func (s *listingScreen) Loading() bool { return s.feed.Loading() }
func (s *listingScreen) Focus()        {}
func (s *listingScreen) Blur()         {}
func (s *listingScreen) Close()        {}

func (s *listingScreen) listHeight() int {
	h := s.height - listingChrome
	if h < 1 {
		h = 1
	}
	return h
}

// lastVisible is the index of the bottom row on screen.
func (s *listingScreen) lastVisible() int {
	return s.offset + s.listHeight() - 1
}

// signal reports the visible range to the proximity trigger. Numbered
// pagination never loads on scroll.
func (s *listingScreen) signal() tea.Cmd {
	if s.paged {
		return nil
	}
	return s.env.fetchFeed(s.prox.Signal(s.feed, s.lastVisible()))
}

func (s *listingScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// App reserves header and status lines.
		s.height = msg.Height - 2
		s.offset = window(s.offset, s.cursor, s.listHeight(), s.feed.Len())
		return s.signal()

	case feed.Result:
		if msg.Request.Feed != s.feed.Name() {
			return nil
		}
		if !s.feed.Resolve(msg) {
			s.env.staleResult(msg)
			return nil
		}
		if msg.Err != nil {
			// Wait for the next scroll or an explicit retry.
			return nil
		}
		if s.cursor >= s.feed.Len() {
			s.cursor = 0
			s.offset = 0
		}
		return s.signal()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil
}

func (s *listingScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Up):
		return s.move(-1)
	case key.Matches(msg, s.keys.Down):
		return s.move(1)
	case key.Matches(msg, s.keys.Open):
		items := s.feed.Items()
		if s.cursor < len(items) {
			return navigate(MoviePath(items[s.cursor].ID))
		}
	case key.Matches(msg, s.keys.Retry):
		return s.env.fetchFeed(s.feed.Retry())
	case s.paged && (key.Matches(msg, s.keys.NextPage) || key.Matches(msg, s.keys.Right)):
		return s.jump(s.feed.Page() + 1)
	case s.paged && (key.Matches(msg, s.keys.PrevPage) || key.Matches(msg, s.keys.Left)):
		return s.jump(s.feed.Page() - 1)
	}
	return nil
}

func (s *listingScreen) move(delta int) tea.Cmd {
	n := s.feed.Len()
	if n == 0 {
		return nil
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= n {
		s.cursor = n - 1
	}
	s.offset = window(s.offset, s.cursor, s.listHeight(), n)
	return s.signal()
}

func (s *listingScreen) jump(page int) tea.Cmd {
	if s.feed.Loading() {
		return nil
	}
	req := s.feed.JumpToPage(page)
	if req == nil {
		return nil
	}
	s.cursor, s.offset = 0, 0
	return s.env.fetchFeed(req)
}

func (s *listingScreen) View(width, height int) string {
	items := s.feed.Items()
	summary := s.summary()

	var body string
	switch {
	case s.feed.Err() != nil && len(items) == 0:
		body = renderError(s.feed.Err(), width)
	case !s.feed.Loaded():
		body = HelpStyle.Render("Loading…")
	case len(items) == 0:
		body = HelpStyle.Render(s.emptyText())
	default:
		listH := height - listingChrome
		body = renderMovieList(items, s.cursor, s.offset, width, listH)
	}

	footer := ""
	switch {
	case s.paged:
		footer = renderPager(s.feed.Page(), s.feed.PageLimit())
	case s.feed.Err() != nil && len(items) > 0:
		footer = ErrorStyle.Render(truncateRunes("Error loading more: "+s.feed.Err().Error(), width-12)) + Meta.Render(" r:retry")
	case s.feed.Loading() && len(items) > 0:
		footer = Meta.Render("  Loading more…")
	case s.feed.Loaded() && !s.feed.HasMore() && len(items) > 0:
		footer = Meta.Render("  End of list")
	}

	return fitHeight(SectionTitle.Render(s.Title())+"\n"+summary, 2) + "\n" +
		fitHeight(body, height-listingChrome) + "\n" + footer
}

func (s *listingScreen) summary() string {
	if !s.feed.Loaded() {
		return ""
	}
	total := s.feed.TotalResults()
	if s.paged {
		return Meta.Render(fmt.Sprintf("  %s results · page %d of %d",
			humanize.Comma(int64(total)), s.feed.Page(), max(s.feed.PageLimit(), 1)))
	}
	return Meta.Render(fmt.Sprintf("  %d of %s movies", s.feed.Len(), humanize.Comma(int64(total))))
}

func (s *listingScreen) emptyText() string {
	if s.query.Kind == feed.KindSearch {
		if s.query.Text == "" {
			return "Type / to search for a movie"
		}
		return fmt.Sprintf("No movies found for %q", s.query.Text)
	}
	return "No movies found"
}
