package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/feed"
)

// truncateRunes shortens s to at most n display cells, ending in "…" when cut.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return runewidth.Truncate(s, n, "…")
}

// movieLabel is "Title (Year)".
func movieLabel(m catalog.Movie) string {
	if y := m.Year(); y != "" {
		return fmt.Sprintf("%s (%s)", m.Title, y)
	}
	return m.Title
}

func ratingLabel(vote float64) string {
	if vote <= 0 {
		return ""
	}
	return fmt.Sprintf("★ %.1f", vote)
}

// window returns the first index of a visible run of size rows that keeps
// cursor in view, scrolling only when the cursor leaves the run.
func window(offset, cursor, size, total int) int {
	if size <= 0 || total <= size {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+size {
		offset = cursor - size + 1
	}
	if offset > total-size {
		offset = total - size
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// renderMovieList draws rows [offset, offset+height) of movies.
func renderMovieList(movies []catalog.Movie, cursor, offset, width, height int) string {
	if height <= 0 {
		return ""
	}
	var b strings.Builder
	end := offset + height
	if end > len(movies) {
		end = len(movies)
	}
	for i := offset; i < end; i++ {
		m := movies[i]
		rating := ratingLabel(m.VoteAverage)
		titleWidth := width - runewidth.StringWidth(rating) - 4
		line := truncateRunes(movieLabel(m), titleWidth)
		pad := width - 2 - runewidth.StringWidth(line) - runewidth.StringWidth(rating)
		if pad < 1 {
			pad = 1
		}
		if i == cursor {
			b.WriteString(SelectedItem.Render(line + strings.Repeat(" ", pad) + rating))
		} else {
			b.WriteString(NormalItem.Render(line + strings.Repeat(" ", pad) + Rating.Render(rating)))
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderPager draws the numbered pagination bar.
func renderPager(current, last int) string {
	pages := feed.PageWindow(current, last)
	if pages == nil {
		return ""
	}
	parts := make([]string, 0, len(pages)+2)
	if current > 1 {
		parts = append(parts, PageOther.Render("‹ prev"))
	}
	for _, p := range pages {
		switch {
		case p == feed.Gap:
			parts = append(parts, PageOther.Render("…"))
		case p == current:
			parts = append(parts, PageCurrent.Render(strconv.Itoa(p)))
		default:
			parts = append(parts, PageOther.Render(strconv.Itoa(p)))
		}
	}
	if current < last {
		parts = append(parts, PageOther.Render("next ›"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderError is the inline error block with a retry hint.
func renderError(err error, width int) string {
	msg := "Error: " + err.Error()
	return ErrorStyle.Width(width).Render(truncateRunes(msg, width*3)) + "\n" +
		HelpStyle.Render("press r to retry")
}

// fitHeight pads or cuts s to exactly h lines.
func fitHeight(s string, h int) string {
	if h <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
