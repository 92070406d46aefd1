package e2e

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/abelbrown/marquee/internal/catalog"
)

// fixtureMovies is every movie the fake catalog knows.
var fixtureMovies = []catalog.Movie{
	{ID: 1, Title: "Fixture Premiere", BackdropPath: "/premiere.jpg", ReleaseDate: "2026-03-01", VoteAverage: 7.9},
	{ID: 2, Title: "Second Feature", BackdropPath: "/second.jpg", ReleaseDate: "2025-11-20", VoteAverage: 6.4},
	{ID: 949, Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 7.9},
}

func page(movies []catalog.Movie) catalog.Page {
	return catalog.Page{Results: movies, Page: 1, TotalPages: 1, TotalResults: len(movies)}
}

// newCatalogServer serves the handful of TMDB endpoints marquee calls.
func newCatalogServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body any
		switch path := r.URL.Path; {
		case path == "/genre/movie/list":
			body = map[string]any{"genres": []catalog.Genre{{ID: 28, Name: "Action"}, {ID: 80, Name: "Crime"}}}
		case path == "/search/movie":
			var hits []catalog.Movie
			q := strings.ToLower(r.URL.Query().Get("query"))
			for _, m := range fixtureMovies {
				if strings.Contains(strings.ToLower(m.Title), q) {
					hits = append(hits, m)
				}
			}
			body = page(hits)
		case path == "/trending/movie/week", strings.HasPrefix(path, "/movie/"), path == "/discover/movie":
			body = page(fixtureMovies)
		default:
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func readSnapshot(f *os.File) string {
	if err := f.SetReadDeadline(time.Now().Add(50 * time.Millisecond)); err != nil {
		return ""
	}
	out := make([]byte, 0, 8192)
	buf := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err != nil {
			break
		}
	}
	return string(out)
}
