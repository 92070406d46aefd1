package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/catalog/catalogtest"
)

type noGenres struct {
	*catalogtest.Fake
}

func (noGenres) Genres(context.Context) ([]catalog.Genre, error) {
	return nil, catalog.ErrFetch
}

func TestLoadHome(t *testing.T) {
	fake := catalogtest.NewFake()
	home, err := catalog.LoadHome(context.Background(), fake, 5)
	if err != nil {
		t.Fatalf("LoadHome() error = %v", err)
	}
	if len(home.Hero) != 5 {
		t.Errorf("hero slides = %d, want 5", len(home.Hero))
	}
	if len(home.Genres) != 3 {
		t.Errorf("genres = %d, want 3", len(home.Genres))
	}
	if home.GenreNames()[28] != "Action" {
		t.Errorf("GenreNames()[28] = %q", home.GenreNames()[28])
	}
}

func TestLoadHomeToleratesGenreFailure(t *testing.T) {
	home, err := catalog.LoadHome(context.Background(), noGenres{catalogtest.NewFake()}, 5)
	if err != nil {
		t.Fatalf("LoadHome() error = %v", err)
	}
	if len(home.Hero) != 5 || home.Genres != nil {
		t.Errorf("home = %d hero, %v genres", len(home.Hero), home.Genres)
	}
}

func TestLoadHomeFailsWithoutTrending(t *testing.T) {
	fake := catalogtest.NewFake()
	fake.Err = catalog.ErrFetch
	_, err := catalog.LoadHome(context.Background(), fake, 5)
	if !errors.Is(err, catalog.ErrFetch) {
		t.Errorf("LoadHome() error = %v, want ErrFetch", err)
	}
}

func TestHeroSlidesRequireBackdrop(t *testing.T) {
	movies := []catalog.Movie{
		{ID: 1, BackdropPath: "/a.jpg"},
		{ID: 2},
		{ID: 3, BackdropPath: "/c.jpg"},
		{ID: 4, BackdropPath: "/d.jpg"},
	}
	got := catalog.HeroSlides(movies, 2)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("HeroSlides() = %+v", got)
	}
	if got := catalog.HeroSlides(nil, 5); len(got) != 0 {
		t.Errorf("HeroSlides(nil) = %+v", got)
	}
}
