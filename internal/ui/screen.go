package ui

import tea "github.com/charmbracelet/bubbletea"

// screen is one page in the navigation stack. Screens are mutable and live
// behind pointers; App forwards data messages to every screen on the stack
// and key presses only to the top one.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Title() string
	Route() Route
	// Loading reports whether the screen is waiting on data.
	Loading() bool
	// Focus and Blur are called when the screen becomes or stops being
	// the top of the stack.
	Focus()
	Blur()
	// Close releases timers. The screen is not used again.
	Close()
}

// newScreen builds the screen for r.
func newScreen(e *env, r Route) screen {
	switch r.Kind {
	case RouteHome:
		return newHomeScreen(e)
	case RouteCategory, RouteGenre, RouteSearch:
		return newListingScreen(e, r)
	case RouteGenres:
		return newGenresScreen(e)
	case RouteMovie:
		return newDetailScreen(e, r.ID)
	}
	return &notFoundScreen{route: r}
}
