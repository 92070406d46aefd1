package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/marquee/internal/logging"
)

// Home is the data the home screen needs before it can render its hero.
type Home struct {
	Hero   []Movie
	Genres []Genre
}

// GenreNames maps genre IDs to names.
func (h Home) GenreNames() map[int]string {
	names := make(map[int]string, len(h.Genres))
	for _, g := range h.Genres {
		names[g.ID] = g.Name
	}
	return names
}

// LoadHome fetches this week's trending movies and the genre list in
// parallel. Hero keeps the first maxSlides movies that have a backdrop.
// The trending call is required; a genre failure only loses the labels.
func LoadHome(ctx context.Context, src Source, maxSlides int) (Home, error) {
	var (
		home     Home
		trending *Page
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := src.ListByCategory(gctx, Trending, 1)
		if err != nil {
			return fmt.Errorf("load home: trending: %w", err)
		}
		trending = p
		return nil
	})
	g.Go(func() error {
		genres, err := src.Genres(gctx)
		if err != nil {
			logging.Warn("load home: genres unavailable", "err", err)
			return nil
		}
		home.Genres = genres
		return nil
	})
	if err := g.Wait(); err != nil {
		return Home{}, err
	}

	home.Hero = HeroSlides(trending.Results, maxSlides)
	return home, nil
}

// HeroSlides keeps the first n movies that have a backdrop image.
func HeroSlides(movies []Movie, n int) []Movie {
	out := make([]Movie, 0, n)
	for _, m := range movies {
		if len(out) == n {
			break
		}
		if m.BackdropPath != "" {
			out = append(out, m)
		}
	}
	return out
}
