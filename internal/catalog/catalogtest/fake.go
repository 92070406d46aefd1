// Package catalogtest provides an in-memory catalog.Source for tests.
package catalogtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/abelbrown/marquee/internal/catalog"
)

// Fake serves generated pages. Every call is recorded; set Err to make the
// next calls fail.
type Fake struct {
	mu sync.Mutex

	PerPage    int
	TotalPages int
	Err        error
	Details    map[int]*catalog.Detail
	GenreList  []catalog.Genre

	Calls []string
}

// NewFake returns a Fake with 20 items per page and 50 pages.
func NewFake() *Fake {
	return &Fake{
		PerPage:    20,
		TotalPages: 50,
		Details:    map[int]*catalog.Detail{},
		GenreList: []catalog.Genre{
			{ID: 28, Name: "Action"},
			{ID: 35, Name: "Comedy"},
			{ID: 99, Name: "Documentary"},
		},
	}
}

func (f *Fake) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
	return f.Err
}

// CallCount returns how many calls were made.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

// MakePage builds page p of a listing whose IDs are base + index.
func (f *Fake) MakePage(base, page int) *catalog.Page {
	out := &catalog.Page{Page: page, TotalPages: f.TotalPages, TotalResults: f.TotalPages * f.PerPage}
	for i := 0; i < f.PerPage; i++ {
		id := base + (page-1)*f.PerPage + i + 1
		out.Results = append(out.Results, catalog.Movie{
			ID:           id,
			Title:        fmt.Sprintf("Movie %d", id),
			BackdropPath: fmt.Sprintf("/b%d.jpg", id),
			PosterPath:   fmt.Sprintf("/p%d.jpg", id),
			ReleaseDate:  "2024-01-01",
		})
	}
	return out
}

func (f *Fake) ListByCategory(_ context.Context, c catalog.Category, page int) (*catalog.Page, error) {
	if err := f.record(fmt.Sprintf("category:%s:%d", c, page)); err != nil {
		return nil, err
	}
	return f.MakePage(0, page), nil
}

func (f *Fake) ListByGenre(_ context.Context, id int, page int) (*catalog.Page, error) {
	if err := f.record(fmt.Sprintf("genre:%d:%d", id, page)); err != nil {
		return nil, err
	}
	return f.MakePage(id*100000, page), nil
}

func (f *Fake) Search(_ context.Context, q string, page int) (*catalog.Page, error) {
	if err := f.record(fmt.Sprintf("search:%s:%d", q, page)); err != nil {
		return nil, err
	}
	p := f.MakePage(len(q)*1000, page)
	for i := range p.Results {
		p.Results[i].Title = q + " " + p.Results[i].Title
	}
	return p, nil
}

func (f *Fake) Detail(_ context.Context, id int) (*catalog.Detail, error) {
	if err := f.record(fmt.Sprintf("detail:%d", id)); err != nil {
		return nil, err
	}
	f.mu.Lock()
	d, ok := f.Details[id]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: /movie/%d: %w", catalog.ErrFetch, id, catalog.ErrNotFound)
	}
	return d, nil
}

func (f *Fake) Genres(context.Context) ([]catalog.Genre, error) {
	if err := f.record("genres"); err != nil {
		return nil, err
	}
	return f.GenreList, nil
}
