package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/marquee/internal/catalog"
)

type genresScreen struct {
	env     *env
	keys    keyMap
	genres  []catalog.Genre
	cursor  int
	offset  int
	height  int
	loading bool
	err     error
}

func newGenresScreen(e *env) *genresScreen {
	return &genresScreen{env: e, keys: defaultKeyMap(), height: 20}
}

func (g *genresScreen) Init() tea.Cmd {
	g.loading = true
	return g.env.loadGenres()
}

func (g *genresScreen) Title() string { return "Genres" }
func (g *genresScreen) Route() Route  { return Route{Kind: RouteGenres, Path: "/genres"} }
func (g *genresScreen) Loading() bool { return g.loading }
func (g *genresScreen) Focus()        {}
func (g *genresScreen) Blur()         {}
func (g *genresScreen) Close()        {}

func (g *genresScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.height = msg.Height - 3
	case GenresLoaded:
		g.loading = false
		g.err = msg.Err
		if msg.Err == nil {
			g.genres = msg.Genres
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, g.keys.Up):
			if g.cursor > 0 {
				g.cursor--
			}
		case key.Matches(msg, g.keys.Down):
			if g.cursor < len(g.genres)-1 {
				g.cursor++
			}
		case key.Matches(msg, g.keys.Open):
			if g.cursor < len(g.genres) {
				return navigate(fmt.Sprintf("/genre/%d", g.genres[g.cursor].ID))
			}
		case key.Matches(msg, g.keys.Retry):
			if g.err != nil && !g.loading {
				g.err = nil
				g.loading = true
				return g.env.loadGenres()
			}
		}
		g.offset = window(g.offset, g.cursor, g.height, len(g.genres))
	}
	return nil
}

func (g *genresScreen) View(width, height int) string {
	head := SectionTitle.Render("Browse by Genre")
	switch {
	case g.err != nil:
		return head + "\n" + renderError(g.err, width)
	case g.loading:
		return head + "\n" + HelpStyle.Render("Loading genres…")
	case len(g.genres) == 0:
		return head + "\n" + HelpStyle.Render("No genres available")
	}

	var b strings.Builder
	end := g.offset + height - 1
	if end > len(g.genres) {
		end = len(g.genres)
	}
	for i := g.offset; i < end; i++ {
		genre := g.genres[i]
		star := ""
		if catalog.IsPopularGenre(genre.ID) {
			star = " " + Rating.Render("★")
		}
		style := NormalItem
		if i == g.cursor {
			style = SelectedItem
		}
		b.WriteString(style.Render(genre.Name) + star)
		b.WriteByte('\n')
	}
	return head + "\n" + strings.TrimSuffix(b.String(), "\n")
}
