// Package catalog talks to the movie metadata service.
//
// Source is the contract the rest of marquee depends on; Client is the TMDB
// v3 implementation.
package catalog

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrFetch is wrapped by every failed request: transport errors,
	// non-2xx responses and undecodable bodies alike.
	ErrFetch = errors.New("catalog: fetch failed")
	// ErrNotFound is additionally wrapped when the service answers 404.
	ErrNotFound = errors.New("catalog: not found")
	// ErrCircuitOpen is additionally wrapped when the circuit breaker
	// rejects a request without sending it.
	ErrCircuitOpen = errors.New("catalog: circuit open")
)

// Source resolves catalog requests. Paged calls return one page of movies.
type Source interface {
	ListByCategory(ctx context.Context, category Category, page int) (*Page, error)
	ListByGenre(ctx context.Context, genreID int, page int) (*Page, error)
	Search(ctx context.Context, query string, page int) (*Page, error)
	Detail(ctx context.Context, id int) (*Detail, error)
	Genres(ctx context.Context) ([]Genre, error)
}

// Category is a fixed movie listing.
type Category string

const (
	Trending   Category = "trending"
	Popular    Category = "popular"
	TopRated   Category = "top_rated"
	NowPlaying Category = "now_playing"
	Upcoming   Category = "upcoming"
)

// Categories lists every category in display order.
var Categories = []Category{Trending, Popular, TopRated, NowPlaying, Upcoming}

// ParseCategory accepts "top_rated", "top-rated" and "topRated" spellings.
func ParseCategory(s string) (Category, bool) {
	norm := strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(s))
	if norm == "toprated" {
		norm = string(TopRated)
	}
	if norm == "nowplaying" {
		norm = string(NowPlaying)
	}
	for _, c := range Categories {
		if string(c) == norm {
			return c, true
		}
	}
	return "", false
}

// Title is the human heading for a category.
func (c Category) Title() string {
	switch c {
	case Trending:
		return "Trending This Week"
	case Popular:
		return "Popular Movies"
	case TopRated:
		return "Top Rated Movies"
	case NowPlaying:
		return "Now Playing"
	case Upcoming:
		return "Upcoming Movies"
	}
	return string(c)
}

func (c Category) endpoint() string {
	if c == Trending {
		return "/trending/movie/week"
	}
	return "/movie/" + string(c)
}

// Movie is a catalog list entry.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	ReleaseDate  string  `json:"release_date"`
	GenreIDs     []int   `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
}

// Year returns the release year or "" when unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// Page is one page of a paged listing.
type Page struct {
	Results      []Movie `json:"results"`
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Genre is a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PopularGenreIDs are highlighted on the genre browse screen:
// Action, Adventure, Comedy, Drama, Horror, Romance, Science Fiction.
var PopularGenreIDs = []int{28, 12, 35, 18, 27, 10749, 878}

// IsPopularGenre reports whether id is in PopularGenreIDs.
func IsPopularGenre(id int) bool {
	for _, p := range PopularGenreIDs {
		if p == id {
			return true
		}
	}
	return false
}

// Company is a production company.
type Company struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logo_path"`
}

// Video is a trailer, teaser or clip hosted elsewhere.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// CastMember is a credited actor.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// Detail is a full movie record including related media.
type Detail struct {
	Movie
	Tagline             string    `json:"tagline"`
	Runtime             int       `json:"runtime"`
	Budget              int64     `json:"budget"`
	Revenue             int64     `json:"revenue"`
	Status              string    `json:"status"`
	OriginalLanguage    string    `json:"original_language"`
	Genres              []Genre   `json:"genres"`
	ProductionCompanies []Company `json:"production_companies"`
	Videos              struct {
		Results []Video `json:"results"`
	} `json:"videos"`
	Credits struct {
		Cast []CastMember `json:"cast"`
	} `json:"credits"`
	Similar Page `json:"similar"`
}

type genreList struct {
	Genres []Genre `json:"genres"`
}
