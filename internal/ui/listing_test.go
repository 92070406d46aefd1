package ui

import (
	"errors"
	"strings"
	"testing"
)

func listingOf(t *testing.T, h *harness) *listingScreen {
	t.Helper()
	s, ok := h.app.top().(*listingScreen)
	if !ok {
		t.Fatalf("top screen is %T, want *listingScreen", h.app.top())
	}
	return s
}

func TestListingInfiniteScroll(t *testing.T) {
	// 12 rows leave a 7-row list: one page fills it without reaching the
	// sentinel.
	h := newHarness(t, "/category/popular", 12)
	s := listingOf(t, h)
	if s.feed.Len() != 20 || h.called("category:popular:2") {
		t.Fatalf("initial load: len=%d calls=%v", s.feed.Len(), h.fake.Calls)
	}

	for i := 0; i < 15; i++ {
		h.press("down")
	}
	if h.called("category:popular:2") {
		t.Fatal("page 2 requested before the sentinel was visible")
	}

	h.press("down")
	if !h.called("category:popular:2") {
		t.Fatalf("page 2 not requested, cursor=%d offset=%d", s.cursor, s.offset)
	}
	if s.feed.Len() != 40 || s.feed.Page() != 2 {
		t.Errorf("after page 2: len=%d page=%d", s.feed.Len(), s.feed.Page())
	}

	h.press("up", "down")
	if strings.Count(strings.Join(h.fake.Calls, ","), "category:popular:2") != 1 {
		t.Errorf("page 2 requested twice: %v", h.fake.Calls)
	}
}

func TestListingTallWindowFillsScreen(t *testing.T) {
	// A 40-row terminal shows the first sentinel at once, so page 2 loads
	// without any scrolling.
	h := newHarness(t, "/genre/28", 40)
	s := listingOf(t, h)
	if !h.called("genre:28:2") {
		t.Errorf("expected page 2 for a tall window, calls=%v", h.fake.Calls)
	}
	if s.feed.Len() != 40 {
		t.Errorf("len = %d, want 40", s.feed.Len())
	}
	if h.called("genre:28:3") {
		t.Error("page 3 should wait until the new sentinel is visible")
	}
}

func TestListingErrorThenRetry(t *testing.T) {
	h := newHarness(t, "/genres", 12)
	h.fake.Err = errors.New("rate limited")
	h.press("1")
	s := listingOf(t, h)
	if s.feed.Err() == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(h.app.View(), "rate limited") {
		t.Errorf("error not rendered:\n%s", h.app.View())
	}

	h.fake.Err = nil
	h.press("r")
	if s.feed.Err() != nil || s.feed.Len() != 20 || s.feed.Page() != 1 {
		t.Errorf("retry: err=%v len=%d page=%d", s.feed.Err(), s.feed.Len(), s.feed.Page())
	}
}

func TestListingNextPageFailureKeepsItems(t *testing.T) {
	h := newHarness(t, "/category/upcoming", 12)
	s := listingOf(t, h)

	h.fake.Err = errors.New("timeout")
	for i := 0; i < 16; i++ {
		h.press("down")
	}
	if s.feed.Err() == nil || s.feed.Len() != 20 {
		t.Fatalf("after failed page 2: err=%v len=%d", s.feed.Err(), s.feed.Len())
	}
	if !strings.Contains(h.app.View(), "Error loading more") {
		t.Errorf("inline error missing:\n%s", h.app.View())
	}

	h.fake.Err = nil
	h.press("r")
	if s.feed.Len() != 40 || s.feed.Page() != 2 {
		t.Errorf("retry fetched the wrong page: len=%d page=%d calls=%v", s.feed.Len(), s.feed.Page(), h.fake.Calls)
	}
}

func TestListingSearchPagination(t *testing.T) {
	h := newHarness(t, "/search?q=heat", 30)
	s := listingOf(t, h)
	if !s.paged {
		t.Fatal("search results should be paged")
	}
	if h.called("search:heat:2") {
		t.Fatal("paged listings must not prefetch")
	}
	if !strings.Contains(h.app.View(), "page 1 of 10") {
		t.Errorf("page summary missing:\n%s", h.app.View())
	}

	h.press("n")
	if !h.called("search:heat:2") || s.feed.Page() != 2 {
		t.Fatalf("n: page=%d calls=%v", s.feed.Page(), h.fake.Calls)
	}
	if s.feed.Len() != 20 {
		t.Errorf("a jumped page shows only its own items, got %d", s.feed.Len())
	}
	if r := h.app.Route(); r.Page != 2 || r.String() != "/search?page=2&q=heat" {
		t.Errorf("Route() = %+v (%s)", r, r.String())
	}

	h.press("p", "p")
	if s.feed.Page() != 1 {
		t.Errorf("p should stop at page 1, got %d", s.feed.Page())
	}
}

func TestListingSearchPageLimit(t *testing.T) {
	h := newHarness(t, "/search?q=heat&page=10", 30)
	s := listingOf(t, h)
	if s.feed.Page() != 10 || !h.called("search:heat:10") {
		t.Fatalf("deep link: page=%d calls=%v", s.feed.Page(), h.fake.Calls)
	}
	if h.called("search:heat:1") {
		t.Error("deep link should fetch only the requested page")
	}
	h.press("n")
	if h.called("search:heat:11") {
		t.Error("pagination went past the page cap")
	}
}

func TestListingSearchDeepLinkPastCap(t *testing.T) {
	h := newHarness(t, "/search?q=heat&page=50", 30)
	s := listingOf(t, h)
	if h.called("search:heat:50") {
		t.Errorf("requested a page past the cap: %v", h.fake.Calls)
	}
	if !h.called("search:heat:1") || s.feed.Page() != 1 {
		t.Errorf("want fallback to page 1: page=%d calls=%v", s.feed.Page(), h.fake.Calls)
	}
}

func TestListingSearchNoResults(t *testing.T) {
	h := newHarness(t, "/genres", 30)
	h.fake.PerPage = 0
	h.fake.TotalPages = 0
	h.press("/")
	h.typeText("zzzz")
	h.press("enter")

	if !strings.Contains(h.app.View(), `No movies found for "zzzz"`) {
		t.Errorf("empty state missing:\n%s", h.app.View())
	}
}

func TestListingEndOfList(t *testing.T) {
	h := newHarness(t, "/category/trending", 40)
	h.fake.TotalPages = 1
	h.press("2")
	s := listingOf(t, h)
	if s.feed.HasMore() {
		t.Fatal("single-page listing should have no more")
	}
	if !strings.Contains(h.app.View(), "End of list") {
		t.Errorf("end marker missing:\n%s", h.app.View())
	}
}

func TestListingEnterOpensMovie(t *testing.T) {
	h := newHarness(t, "/genre/35", 12)
	h.press("down", "enter")
	if r := h.app.Route(); r.Kind != RouteMovie || r.ID != 35*100000+2 {
		t.Errorf("enter opened %+v", r)
	}
}

func TestListingGenreTitle(t *testing.T) {
	h := newHarness(t, "/genres", 12)
	h.press("enter")
	if got := h.app.top().Title(); got != "Action Movies" {
		t.Errorf("Title() = %q", got)
	}
}
