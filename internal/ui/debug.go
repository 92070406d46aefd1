package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/marquee/internal/otel"
)

// debugPanelChrome is DebugPanel's border plus vertical padding, in lines.
const debugPanelChrome = 4

// debugOverlay renders session counters and the most recent events from
// ring. It returns "" when no ring is attached.
func debugOverlay(ring *otel.Ring, width, height int) string {
	if ring == nil {
		return ""
	}

	stats := ring.Stats()
	recent := ring.Last(20)

	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Session Stats"))
	lines = append(lines, fmt.Sprintf("  Fetches:    %d started, %d complete, %d errors, %d stale",
		stats[otel.KindFetchStart], stats[otel.KindFetchComplete], stats[otel.KindFetchError], stats[otel.KindFetchStale]))
	lines = append(lines, fmt.Sprintf("  Carousel:   %d advances, %d pause toggles",
		stats[otel.KindCarouselAdvance], stats[otel.KindCarouselPause]))
	lines = append(lines, fmt.Sprintf("  Search:     %d suggest, %d stale, %d submitted",
		stats[otel.KindSuggest], stats[otel.KindSuggestStale], stats[otel.KindSearchSubmit]))
	lines = append(lines, fmt.Sprintf("  Navigation: %d", stats[otel.KindNavigate]))
	lines = append(lines, fmt.Sprintf("  Buffer:     %d / %d events", ring.Len(), ring.Cap()))
	lines = append(lines, "")

	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	for _, e := range recent {
		line := fmt.Sprintf("  %6s  %-22s", formatAge(time.Since(e.Time)), string(e.Kind))
		if e.Feed != "" {
			line += "  " + e.Feed
		}
		if e.Page > 0 {
			line += fmt.Sprintf(" p%d", e.Page)
		}
		if e.Msg != "" {
			line += "  " + truncateRunes(e.Msg, 40)
		}
		if e.Err != "" {
			line += "  ERR:" + truncateRunes(e.Err, 30)
		}
		lines = append(lines, line)
	}

	maxHeight := height - debugPanelChrome
	if maxHeight < 1 {
		maxHeight = 1
	}
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := 76
	if panelWidth > width-4 {
		panelWidth = width - 4
	}
	if panelWidth < 20 {
		panelWidth = 20
	}

	content := strings.Join(lines, "\n")
	return DebugPanel.Width(panelWidth).Render(content)
}

// formatAge renders d compactly; negative durations clamp to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

// debugStatusBar renders the status bar for the debug overlay.
func debugStatusBar(width int) string {
	keys := StatusBarKey.Render("D") + StatusBarText.Render(":close")
	return StatusBar.Width(width).Render("  [DEBUG]  " + keys)
}
