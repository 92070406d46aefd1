package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/marquee/internal/carousel"
	"github.com/abelbrown/marquee/internal/catalog"
)

func homeOf(t *testing.T, h *harness) *homeScreen {
	t.Helper()
	s, ok := h.app.top().(*homeScreen)
	if !ok {
		t.Fatalf("top screen is %T, want *homeScreen", h.app.top())
	}
	return s
}

func TestHomeLoadsHeroAndRows(t *testing.T) {
	h := newHarness(t, "/", 30)
	home := homeOf(t, h)

	for _, call := range []string{
		"category:trending:1", "genres",
		"category:now_playing:1", "category:popular:1", "category:upcoming:1", "category:top_rated:1",
	} {
		if !h.called(call) {
			t.Errorf("missing call %q in %v", call, h.fake.Calls)
		}
	}
	if home.Loading() {
		t.Error("home still loading")
	}
	if n := home.hero.c.Len(); n != 5 {
		t.Errorf("hero has %d slides, want 5", n)
	}
	for _, r := range home.rows {
		if r.feed.Len() != 20 {
			t.Errorf("%s row has %d items, want 20", r.category, r.feed.Len())
		}
	}

	view := h.app.View()
	for _, want := range []string{"Movie 1", "Now Playing", "Top Rated Movies", "1/5"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if got := h.app.env.genreName(28); got != "Action" {
		t.Errorf("genre names not remembered, got %q", got)
	}
}

func TestHomeSlidesLinkToMovies(t *testing.T) {
	h := newHarness(t, "/", 30)
	slide, ok := homeOf(t, h).hero.c.Current()
	if !ok {
		t.Fatal("no current slide")
	}
	if slide.LinkTarget != "/movie/1" {
		t.Errorf("LinkTarget = %q", slide.LinkTarget)
	}
	if !strings.HasPrefix(slide.ImageRef, "https://image.tmdb.org/t/p/") || !strings.HasSuffix(slide.ImageRef, "/b1.jpg") {
		t.Errorf("ImageRef = %q", slide.ImageRef)
	}
}

func TestHomeCarouselAutoAdvances(t *testing.T) {
	h := newHarness(t, "/", 30)
	c := homeOf(t, h).hero.c

	h.advance(8 * time.Second)
	st := c.State()
	if st.Current != 1 || st.Phase != carousel.Transitioning {
		t.Fatalf("at 8s: current=%d phase=%v", st.Current, st.Phase)
	}
	if !homeOf(t, h).hero.animating {
		t.Error("crossfade should start with the transition")
	}

	h.advance(600 * time.Millisecond)
	if st := c.State(); st.Phase != carousel.Idle || st.Current != 1 {
		t.Errorf("at 8.6s: current=%d phase=%v", st.Current, st.Phase)
	}

	h.advance(8 * time.Second)
	if st := c.State(); st.Current != 2 {
		t.Errorf("at 16.6s: current=%d, want 2", st.Current)
	}
}

func TestHomeHeroKeys(t *testing.T) {
	h := newHarness(t, "/", 30)
	c := homeOf(t, h).hero.c

	h.press("right")
	if c.State().Current != 1 {
		t.Fatalf("right: current=%d", c.State().Current)
	}
	h.advance(600 * time.Millisecond)

	h.press("left")
	h.advance(600 * time.Millisecond)
	h.press("left")
	if c.State().Current != 4 {
		t.Errorf("left should wrap to the last slide, current=%d", c.State().Current)
	}
}

func TestHomeIgnoresOtherHomeLoads(t *testing.T) {
	h := newHarness(t, "/movie/1", 30)
	h.press("H")
	first := homeOf(t, h)
	h.press("right")
	h.advance(600 * time.Millisecond)
	h.press("right")
	if first.hero.c.State().Current != 2 {
		t.Fatalf("setup: current=%d", first.hero.c.State().Current)
	}

	h.press("G", "H")
	if h.app.Depth() != 4 {
		t.Fatalf("depth = %d, want 4", h.app.Depth())
	}
	second := homeOf(t, h)
	if second == first || second.hero.c.Len() != 5 {
		t.Fatalf("second home not loaded: len=%d", second.hero.c.Len())
	}
	if got := first.hero.c.State().Current; got != 2 {
		t.Errorf("covered home carousel moved to %d, want 2", got)
	}

	first.err = errors.New("stale")
	h.send(HomeLoaded{Screen: second.name, Err: errors.New("other")})
	if first.err == nil || second.err == nil {
		t.Error("HomeLoaded should only reach the screen that asked for it")
	}
}

func TestHomePauseStopsAutoAdvance(t *testing.T) {
	h := newHarness(t, "/", 30)
	home := homeOf(t, h)

	h.press(" ")
	if home.hero.c.State().AutoAdvance {
		t.Fatal("space should pause")
	}
	h.advance(30 * time.Second)
	if home.hero.c.State().Current != 0 {
		t.Errorf("paused carousel advanced to %d", home.hero.c.State().Current)
	}
	if !strings.Contains(h.app.View(), "paused") {
		t.Error("view should show the paused state")
	}

	h.press(" ")
	h.advance(8 * time.Second)
	if home.hero.c.State().Current != 1 {
		t.Errorf("resumed carousel at %d, want 1", home.hero.c.State().Current)
	}
}

func TestHomeEnterOpensSlideAndBlursCarousel(t *testing.T) {
	h := newHarness(t, "/", 30)
	home := homeOf(t, h)
	h.fake.Details[1] = &catalog.Detail{Movie: catalog.Movie{ID: 1, Title: "Movie 1"}}

	h.press("enter")
	if r := h.app.Route(); r.Kind != RouteMovie || r.ID != 1 {
		t.Fatalf("enter opened %+v", r)
	}
	if home.hero.c.State().AutoAdvance {
		t.Error("covered home should not auto-advance")
	}
	h.advance(time.Minute)
	if home.hero.c.State().Current != 0 {
		t.Error("covered carousel advanced")
	}

	h.press("esc")
	if !home.hero.c.State().AutoAdvance {
		t.Error("auto-advance should resume when home is back on top")
	}
}

func TestHomeRowNavigation(t *testing.T) {
	h := newHarness(t, "/", 30)
	home := homeOf(t, h)

	h.press("down", "down")
	if home.focus != 2 {
		t.Fatalf("focus = %d, want 2", home.focus)
	}
	h.press("right", "right")
	if home.rows[1].cursor != 2 {
		t.Errorf("row cursor = %d, want 2", home.rows[1].cursor)
	}

	h.press("enter")
	if r := h.app.Route(); r.Kind != RouteMovie || r.ID != 3 {
		t.Errorf("enter on the popular row opened %+v", r)
	}
}

func TestHomeRowLoadsMoreNearEnd(t *testing.T) {
	h := newHarness(t, "/", 30)
	home := homeOf(t, h)
	h.press("down")
	row := home.rows[0]

	// 80 columns fit three cells; the sentinel sits two before the end.
	for i := 0; i < 16; i++ {
		h.press("right")
	}
	if h.called("category:now_playing:2") {
		t.Fatal("page 2 requested too early")
	}
	h.press("right")
	if !h.called("category:now_playing:2") {
		t.Fatalf("page 2 not requested, cursor=%d calls=%v", row.cursor, h.fake.Calls)
	}
	if row.feed.Len() != 40 {
		t.Errorf("row has %d items after page 2, want 40", row.feed.Len())
	}
}

func TestHomeTrendingFailureAndRetry(t *testing.T) {
	h := newHarness(t, "/genres", 30)
	h.fake.Err = errors.New("service down")
	h.press("H")
	home := homeOf(t, h)
	if home.err == nil {
		t.Fatal("expected a home error")
	}
	if !strings.Contains(h.app.View(), "service down") {
		t.Errorf("error not shown:\n%s", h.app.View())
	}

	h.fake.Err = nil
	h.press("r")
	if home.err != nil || home.hero.c.Len() != 5 {
		t.Errorf("retry did not recover: err=%v slides=%d", home.err, home.hero.c.Len())
	}
	for _, r := range home.rows {
		if r.feed.Len() != 20 {
			t.Errorf("%s row not retried", r.category)
		}
	}
}

func TestHeroFrameSettles(t *testing.T) {
	h := newHarness(t, "/", 30)
	hero := homeOf(t, h).hero

	h.press("right")
	if !hero.animating || hero.fade != 0 {
		t.Fatalf("animating=%v fade=%v", hero.animating, hero.fade)
	}
	for i := 0; i < 600 && hero.animating; i++ {
		hero.frame()
	}
	if hero.animating || hero.fade != 1 {
		t.Errorf("spring did not settle: fade=%v", hero.fade)
	}
	if hero.fadeColor() != fadeRamp[len(fadeRamp)-1] {
		t.Errorf("settled color = %v", hero.fadeColor())
	}
}
