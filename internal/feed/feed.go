// Package feed accumulates paged catalog listings.
//
// A Feed never performs I/O. Operations that need data return a *Request;
// the caller runs it (see Fetch) and hands the Result back to Resolve on the
// same goroutine that owns the Feed. Each query session carries a
// generation number, and Resolve discards results whose request is not the
// one currently in flight, so a slow response for an old query can never
// land in a new one.
package feed

import (
	"context"
	"fmt"

	"github.com/abelbrown/marquee/internal/catalog"
)

// Kind selects the listing a Query reads.
type Kind int

const (
	KindCategory Kind = iota
	KindGenre
	KindSearch
)

// Query is the parameter set defining what a feed fetches.
type Query struct {
	Kind     Kind
	Category catalog.Category
	GenreID  int
	Text     string
}

// CategoryQuery lists a fixed category.
func CategoryQuery(c catalog.Category) Query { return Query{Kind: KindCategory, Category: c} }

// GenreQuery lists movies in a genre.
func GenreQuery(id int) Query { return Query{Kind: KindGenre, GenreID: id} }

// SearchQuery lists title matches.
func SearchQuery(text string) Query { return Query{Kind: KindSearch, Text: text} }

// Key is a stable string form, used in logs.
func (q Query) Key() string {
	switch q.Kind {
	case KindGenre:
		return fmt.Sprintf("genre=%d", q.GenreID)
	case KindSearch:
		return fmt.Sprintf("search=%q", q.Text)
	}
	return "category=" + string(q.Category)
}

// Request asks for one page of a query within a session.
type Request struct {
	Feed       string
	Query      Query
	Page       int
	Generation uint64
}

// Result is the outcome of a Request. It is also the Bubble Tea message
// carrying the response back to the event loop.
type Result struct {
	Request Request
	Page    *catalog.Page
	Err     error
}

// Fetch runs req against src.
func Fetch(ctx context.Context, src catalog.Source, req Request) Result {
	var (
		page *catalog.Page
		err  error
	)
	switch req.Query.Kind {
	case KindCategory:
		page, err = src.ListByCategory(ctx, req.Query.Category, req.Page)
	case KindGenre:
		page, err = src.ListByGenre(ctx, req.Query.GenreID, req.Page)
	case KindSearch:
		if req.Query.Text == "" {
			page = &catalog.Page{Page: req.Page}
			break
		}
		page, err = src.Search(ctx, req.Query.Text, req.Page)
	default:
		err = fmt.Errorf("feed: unknown query kind %d", req.Query.Kind)
	}
	return Result{Request: req, Page: page, Err: err}
}

// Options configures a Feed.
type Options struct {
	// Name tags requests so results can be routed back when several feeds
	// share an event loop.
	Name string
	// MaxPages caps hasMore regardless of what the source reports. Zero
	// means no cap.
	MaxPages int
}

// Feed is the paged list state for one query session at a time.
type Feed struct {
	opts Options

	query    Query
	hasQuery bool
	gen      uint64

	items []catalog.Movie
	seen  map[int]struct{}

	page         int
	loaded       bool
	totalPages   int
	totalResults int
	hasMore      bool
	loading      bool
	err          error

	inflight *Request
}

// New creates an empty feed. Nothing is fetched until SetQuery.
func New(opts Options) *Feed {
	return &Feed{opts: opts, seen: make(map[int]struct{}), page: 1}
}

// SetQuery starts a new session for q: items are cleared, page resets to 1
// and hasMore to true. Any in-flight result becomes stale. The returned
// request fetches page 1.
func (f *Feed) SetQuery(q Query) *Request {
	f.query = q
	f.hasQuery = true
	f.startSession(1)
	return f.issue(1)
}

// Reload restarts the current query from page 1.
func (f *Feed) Reload() *Request {
	if !f.hasQuery {
		return nil
	}
	return f.SetQuery(f.query)
}

// JumpToPage starts a new session showing only page n of the current query.
// It is the numbered-pagination entry point; n beyond MaxPages or the known
// page limit is rejected.
func (f *Feed) JumpToPage(n int) *Request {
	if !f.hasQuery || n < 1 {
		return nil
	}
	if f.opts.MaxPages > 0 && n > f.opts.MaxPages {
		return nil
	}
	if limit := f.PageLimit(); limit > 0 && n > limit {
		return nil
	}
	totalPages, totalResults := f.totalPages, f.totalResults
	f.startSession(n)
	// Same query, so the known totals still hold for the pager.
	f.totalPages, f.totalResults = totalPages, totalResults
	return f.issue(n)
}

// LoadNextPage requests the page after the last one loaded. It returns nil
// while a request is in flight or when no more pages exist. After a failure
// it requests the page that failed.
func (f *Feed) LoadNextPage() *Request {
	if !f.hasQuery || f.loading || !f.hasMore {
		return nil
	}
	return f.issue(f.nextPage())
}

// Retry re-issues the failed page. It returns nil unless the last result
// was an error.
func (f *Feed) Retry() *Request {
	if !f.hasQuery || f.loading || f.err == nil {
		return nil
	}
	return f.issue(f.nextPage())
}

// Resolve applies a result. It reports false when the result was stale and
// ignored. Failures leave items, page and hasMore untouched.
func (f *Feed) Resolve(res Result) bool {
	if f.inflight == nil || res.Request != *f.inflight {
		return false
	}
	f.inflight = nil
	f.loading = false

	if res.Err != nil {
		f.err = res.Err
		return true
	}
	f.err = nil

	page := res.Page
	if page == nil {
		page = &catalog.Page{}
	}
	for _, m := range page.Results {
		if _, dup := f.seen[m.ID]; dup {
			continue
		}
		f.seen[m.ID] = struct{}{}
		f.items = append(f.items, m)
	}

	f.page = res.Request.Page
	f.loaded = true
	f.totalPages = page.TotalPages
	f.totalResults = page.TotalResults
	f.hasMore = f.page < f.PageLimit()
	return true
}

func (f *Feed) startSession(page int) {
	f.gen++
	f.items = nil
	f.seen = make(map[int]struct{})
	f.page = page
	f.loaded = false
	f.totalPages = 0
	f.totalResults = 0
	f.hasMore = true
	f.loading = false
	f.err = nil
	f.inflight = nil
}

func (f *Feed) nextPage() int {
	if f.loaded {
		return f.page + 1
	}
	return f.page
}

func (f *Feed) issue(page int) *Request {
	req := Request{
		Feed:       f.opts.Name,
		Query:      f.query,
		Page:       page,
		Generation: f.gen,
	}
	f.inflight = &req
	f.loading = true
	f.err = nil
	out := req
	return &out
}

// Name returns the feed's routing name.
func (f *Feed) Name() string { return f.opts.Name }

// Query returns the current query and whether one is set.
func (f *Feed) Query() (Query, bool) { return f.query, f.hasQuery }

// Items returns the accumulated items. Callers must not modify the slice.
func (f *Feed) Items() []catalog.Movie { return f.items }

// Len returns the number of accumulated items.
func (f *Feed) Len() int { return len(f.items) }

// Page returns the session's current page: the last page loaded, or the
// page being loaded when none has succeeded yet.
func (f *Feed) Page() int { return f.page }

// HasMore reports whether another page can be requested.
func (f *Feed) HasMore() bool { return f.hasMore }

// Loading reports whether a request is in flight.
func (f *Feed) Loading() bool { return f.loading }

// Err returns the last failure, cleared by the next request.
func (f *Feed) Err() error { return f.err }

// Loaded reports whether at least one page of this session has resolved.
func (f *Feed) Loaded() bool { return f.loaded }

// Generation returns the session counter.
func (f *Feed) Generation() uint64 { return f.gen }

// TotalResults is the source's reported result count.
func (f *Feed) TotalResults() int { return f.totalResults }

// PageLimit is the last reachable page: the source's total capped by
// MaxPages. It is zero until a page has loaded.
func (f *Feed) PageLimit() int {
	limit := f.totalPages
	if f.opts.MaxPages > 0 && limit > f.opts.MaxPages {
		limit = f.opts.MaxPages
	}
	return limit
}
