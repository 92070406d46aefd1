package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/abelbrown/marquee/internal/catalog"
)

// RouteKind identifies a screen.
type RouteKind int

const (
	RouteHome RouteKind = iota
	RouteCategory
	RouteGenres
	RouteGenre
	RouteMovie
	RouteSearch
	RouteNotFound
)

// Route is a parsed location. Only the fields relevant to Kind are set.
type Route struct {
	Kind     RouteKind
	Category catalog.Category
	ID       int
	Query    string
	Page     int
	// Path is the raw input, kept for the not-found screen.
	Path string
}

// ParseRoute maps a path such as /movie/550 or /search?q=heat&page=2 to a
// Route. Anything unrecognised is RouteNotFound.
func ParseRoute(path string) Route {
	notFound := Route{Kind: RouteNotFound, Path: path}

	u, err := url.Parse(path)
	if err != nil {
		return notFound
	}
	trimmed := strings.Trim(u.Path, "/")
	var parts []string
	if trimmed != "" {
		parts = strings.Split(trimmed, "/")
	}

	switch {
	case len(parts) == 0:
		return Route{Kind: RouteHome, Path: path}

	case len(parts) == 2 && parts[0] == "category":
		c, ok := catalog.ParseCategory(parts[1])
		if !ok {
			return notFound
		}
		return Route{Kind: RouteCategory, Category: c, Path: path}

	case len(parts) == 1 && parts[0] == "genres":
		return Route{Kind: RouteGenres, Path: path}

	case len(parts) == 2 && (parts[0] == "genre" || parts[0] == "movie"):
		id, err := strconv.Atoi(parts[1])
		if err != nil || id <= 0 {
			return notFound
		}
		kind := RouteGenre
		if parts[0] == "movie" {
			kind = RouteMovie
		}
		return Route{Kind: kind, ID: id, Path: path}

	case len(parts) == 1 && parts[0] == "search":
		q := u.Query()
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		return Route{Kind: RouteSearch, Query: strings.TrimSpace(q.Get("q")), Page: page, Path: path}
	}
	return notFound
}

// String renders the route back to its canonical path.
func (r Route) String() string {
	switch r.Kind {
	case RouteHome:
		return "/"
	case RouteCategory:
		return "/category/" + string(r.Category)
	case RouteGenres:
		return "/genres"
	case RouteGenre:
		return fmt.Sprintf("/genre/%d", r.ID)
	case RouteMovie:
		return fmt.Sprintf("/movie/%d", r.ID)
	case RouteSearch:
		v := url.Values{}
		v.Set("q", r.Query)
		if r.Page > 1 {
			v.Set("page", strconv.Itoa(r.Page))
		}
		return "/search?" + v.Encode()
	}
	return r.Path
}

// MoviePath is the route to a movie's detail screen.
func MoviePath(id int) string { return fmt.Sprintf("/movie/%d", id) }
