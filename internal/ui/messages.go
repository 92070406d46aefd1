// Package ui provides the Bubble Tea TUI for marquee.
//
// Data messages defined elsewhere also flow through Update: feed.Result for
// paged lists, search.Suggestions for the search dropdown and
// schedule.Fired for timers.
package ui

import "github.com/abelbrown/marquee/internal/catalog"

// HomeLoaded is sent when the hero and genre list are ready. Screen names
// the home screen that asked for it.
type HomeLoaded struct {
	Screen string
	Home   catalog.Home
	Err  error
}

// DetailLoaded is sent when a movie's full record arrives.
type DetailLoaded struct {
	ID     int
	Detail *catalog.Detail
	Err    error
}

// GenresLoaded is sent when the genre list arrives.
type GenresLoaded struct {
	Genres []catalog.Genre
	Err    error
}

// Navigate asks the app to open a route on top of the current screen.
type Navigate struct {
	Route Route
}

// frameMsg advances the hero crossfade animation by one frame.
type frameMsg struct{}
