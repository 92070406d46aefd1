package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/marquee/internal/otel"
)

func TestDebugOverlayNilRing(t *testing.T) {
	if got := debugOverlay(nil, 80, 24); got != "" {
		t.Errorf("debugOverlay(nil) = %q, want empty", got)
	}
}

func TestDebugOverlayStats(t *testing.T) {
	ring := otel.NewRing(64)
	now := time.Now()
	for _, k := range []otel.EventKind{
		otel.KindFetchStart, otel.KindFetchStart, otel.KindFetchComplete, otel.KindFetchError,
		otel.KindCarouselAdvance, otel.KindSuggest, otel.KindSuggestStale, otel.KindNavigate,
	} {
		ring.Push(otel.Event{Kind: k, Time: now})
	}

	got := debugOverlay(ring, 100, 40)
	for _, want := range []string{
		"Session Stats",
		"2 started, 1 complete, 1 errors, 0 stale",
		"1 advances, 0 pause toggles",
		"1 suggest, 1 stale, 0 submitted",
		"Navigation: 1",
		"8 / 64 events",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("overlay missing %q:\n%s", want, got)
		}
	}
}

func TestDebugOverlayRecentEvents(t *testing.T) {
	ring := otel.NewRing(64)
	ring.Push(otel.Event{Kind: otel.KindFetchComplete, Time: time.Now(), Feed: "list#2", Page: 3})
	ring.Push(otel.Event{Kind: otel.KindFetchError, Time: time.Now(), Err: "timeout"})
	ring.Push(otel.Event{Kind: otel.KindNavigate, Time: time.Now(), Msg: "/genre/28"})

	got := debugOverlay(ring, 100, 40)
	for _, want := range []string{"Recent Events", "list#2 p3", "ERR:timeout", "/genre/28"} {
		if !strings.Contains(got, want) {
			t.Errorf("overlay missing %q:\n%s", want, got)
		}
	}
}

func TestDebugOverlayFitsHeight(t *testing.T) {
	ring := otel.NewRing(64)
	for i := 0; i < 30; i++ {
		ring.Push(otel.Event{Kind: otel.KindFetchStart, Time: time.Now()})
	}
	got := debugOverlay(ring, 80, 10)
	if got == "" {
		t.Fatal("overlay should render at small heights")
	}
	if lines := strings.Count(got, "\n") + 1; lines > 10 {
		t.Errorf("overlay is %d lines tall in a 10 line terminal", lines)
	}
}

func TestDebugToggle(t *testing.T) {
	h := newHarness(t, "/genres", 24)
	if h.app.debugVisible {
		t.Fatal("debug overlay open at start")
	}

	h.press("D")
	if !h.app.debugVisible {
		t.Fatal("D should open the overlay")
	}
	if view := h.app.View(); !strings.Contains(view, "[DEBUG]") || !strings.Contains(view, "Session Stats") {
		t.Errorf("debug view:\n%s", view)
	}

	h.press("D")
	if h.app.debugVisible {
		t.Error("second D should close the overlay")
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		dur  time.Duration
		want string
	}{
		{-5 * time.Second, "0ms"},
		{0, "0ms"},
		{50 * time.Millisecond, "50ms"},
		{1500 * time.Millisecond, "1.5s"},
		{30 * time.Second, "30.0s"},
		{90 * time.Second, "2m"},
		{5 * time.Minute, "5m"},
	}
	for _, tt := range tests {
		if got := formatAge(tt.dur); got != tt.want {
			t.Errorf("formatAge(%v) = %q, want %q", tt.dur, got, tt.want)
		}
	}
}
