package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/marquee/internal/catalog"
)

// Detail tabs.
const (
	tabOverview = iota
	tabCast
	tabVideos
	tabSimilar
)

var tabNames = []string{"Overview", "Cast", "Videos", "Similar"}

const (
	maxCast    = 10
	maxVideos  = 6
	maxSimilar = 10
)

type detailScreen struct {
	env  *env
	keys keyMap
	id   int

	detail  *catalog.Detail
	loading bool
	err     error

	tab    int
	vp     viewport.Model
	cursor int
	width  int
	height int
}

func newDetailScreen(e *env, id int) *detailScreen {
	return &detailScreen{
		env:    e,
		keys:   defaultKeyMap(),
		id:     id,
		vp:     viewport.New(80, 16),
		width:  80,
		height: 20,
	}
}

func (d *detailScreen) Init() tea.Cmd {
	d.loading = true
	return d.env.loadDetail(d.id)
}

func (d *detailScreen) Title() string {
	if d.detail != nil {
		return d.detail.Title
	}
	return "Movie"
}

func (d *detailScreen) Route() Route  { return Route{Kind: RouteMovie, ID: d.id, Path: MoviePath(d.id)} }
func (d *detailScreen) Loading() bool { return d.loading }
func (d *detailScreen) Focus()        {}
func (d *detailScreen) Blur()         {}
func (d *detailScreen) Close()        {}

func (d *detailScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width, d.height = msg.Width, msg.Height-2
		d.resize()
		return nil

	case DetailLoaded:
		if msg.ID != d.id {
			return nil
		}
		d.loading = false
		d.err = msg.Err
		d.detail = msg.Detail
		d.refresh()
		return nil

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return nil
}

func (d *detailScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, d.keys.Retry):
		if d.err != nil && !d.loading {
			d.err = nil
			d.loading = true
			return d.env.loadDetail(d.id)
		}
		return nil
	case key.Matches(msg, d.keys.NextTab):
		d.setTab((d.tab + 1) % len(tabNames))
		return nil
	case key.Matches(msg, d.keys.PrevTab):
		d.setTab((d.tab - 1 + len(tabNames)) % len(tabNames))
		return nil
	}
	if d.detail == nil {
		return nil
	}

	if d.tab == tabSimilar {
		similar := catalog.Top(d.detail.Similar.Results, maxSimilar)
		switch {
		case key.Matches(msg, d.keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
			d.refresh()
		case key.Matches(msg, d.keys.Down):
			if d.cursor < len(similar)-1 {
				d.cursor++
			}
			d.refresh()
		case key.Matches(msg, d.keys.Open):
			if d.cursor < len(similar) {
				return navigate(MoviePath(similar[d.cursor].ID))
			}
		}
		return nil
	}

	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return cmd
}

func (d *detailScreen) setTab(tab int) {
	d.tab = tab
	d.cursor = 0
	d.refresh()
	d.vp.GotoTop()
}

// bodyChrome is header block plus tab bar.
const bodyChrome = 4

func (d *detailScreen) resize() {
	d.vp.Width = d.width
	d.vp.Height = d.height - bodyChrome
	if d.vp.Height < 1 {
		d.vp.Height = 1
	}
	d.refresh()
}

func (d *detailScreen) refresh() {
	if d.detail == nil {
		d.vp.SetContent("")
		return
	}
	switch d.tab {
	case tabOverview:
		d.vp.SetContent(d.overview())
	case tabCast:
		d.vp.SetContent(d.cast())
	case tabVideos:
		d.vp.SetContent(d.videos())
	case tabSimilar:
		similar := catalog.Top(d.detail.Similar.Results, maxSimilar)
		if len(similar) == 0 {
			d.vp.SetContent(HelpStyle.Render("No similar movies"))
			return
		}
		d.vp.SetContent(renderMovieList(similar, d.cursor, 0, d.width, len(similar)))
		if d.cursor >= d.vp.YOffset+d.vp.Height {
			d.vp.SetYOffset(d.cursor - d.vp.Height + 1)
		} else if d.cursor < d.vp.YOffset {
			d.vp.SetYOffset(d.cursor)
		}
	}
}

func field(label, value string) string {
	return Label.Render(label) + value
}

func (d *detailScreen) overview() string {
	m := d.detail
	var lines []string
	if m.Tagline != "" {
		lines = append(lines, Meta.Italic(true).Render(m.Tagline), "")
	}
	if m.Overview != "" {
		lines = append(lines, lipgloss.NewStyle().Width(d.width-2).Render(m.Overview), "")
	}

	genres := make([]string, len(m.Genres))
	for i, g := range m.Genres {
		genres[i] = g.Name
	}
	companies := make([]string, 0, len(m.ProductionCompanies))
	for _, c := range catalog.Top(m.ProductionCompanies, 3) {
		companies = append(companies, c.Name)
	}

	lines = append(lines,
		field("Released", orNA(m.ReleaseDate)),
		field("Runtime", catalog.FormatRuntime(m.Runtime)),
		field("Rating", fmt.Sprintf("%.1f/10 (%d votes)", m.VoteAverage, m.VoteCount)),
		field("Genres", orNA(strings.Join(genres, ", "))),
		field("Status", orNA(m.Status)),
		field("Language", orNA(strings.ToUpper(m.OriginalLanguage))),
		field("Budget", catalog.FormatCurrency(m.Budget)),
		field("Revenue", catalog.FormatCurrency(m.Revenue)),
		field("Studios", orNA(strings.Join(companies, ", "))),
	)
	if v, ok := catalog.PickTrailer(m.Videos.Results); ok {
		if u := catalog.WatchURL(v); u != "" {
			lines = append(lines, field("Trailer", Link.Render(u)))
		}
	}
	if m.PosterPath != "" {
		lines = append(lines, field("Poster", Link.Render(d.env.images.Poster(m.PosterPath))))
	}
	if m.BackdropPath != "" {
		lines = append(lines, field("Backdrop", Link.Render(d.env.images.Backdrop(m.BackdropPath))))
	}
	return strings.Join(lines, "\n")
}

func (d *detailScreen) cast() string {
	cast := catalog.Top(d.detail.Credits.Cast, maxCast)
	if len(cast) == 0 {
		return HelpStyle.Render("No cast information")
	}
	lines := make([]string, 0, len(cast))
	for _, c := range cast {
		line := NormalItem.Render(c.Name)
		if c.Character != "" {
			line += Meta.Render(" as " + c.Character)
		}
		if c.ProfilePath != "" {
			line += "\n   " + Link.Render(d.env.images.Profile(c.ProfilePath))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (d *detailScreen) videos() string {
	videos := catalog.Top(d.detail.Videos.Results, maxVideos)
	if len(videos) == 0 {
		return HelpStyle.Render("No videos")
	}
	lines := make([]string, 0, len(videos))
	for _, v := range videos {
		line := NormalItem.Render(v.Name) + Meta.Render(" · "+v.Type)
		if u := catalog.WatchURL(v); u != "" {
			line += "\n   " + Link.Render(u)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (d *detailScreen) View(width, height int) string {
	switch {
	case d.err != nil && errors.Is(d.err, catalog.ErrNotFound):
		return ErrorStyle.Render("Movie not found") + "\n" + HelpStyle.Render("esc to go back")
	case d.err != nil:
		return renderError(d.err, width)
	case d.loading || d.detail == nil:
		return HelpStyle.Render("Loading movie…")
	}

	m := d.detail
	meta := []string{}
	if y := m.Year(); y != "" {
		meta = append(meta, y)
	}
	if m.Runtime > 0 {
		meta = append(meta, catalog.FormatRuntime(m.Runtime))
	}
	if r := ratingLabel(m.VoteAverage); r != "" {
		meta = append(meta, Rating.Render(r))
	}
	head := SectionTitle.Render(truncateRunes(m.Title, width-4)) + "\n" +
		Meta.Render("  "+strings.Join(meta, " · "))

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if i == d.tab {
			tabs[i] = TabActive.Render(name)
		} else {
			tabs[i] = TabInactive.Render(name)
		}
	}
	return head + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" + d.vp.View()
}
