package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/marquee/internal/carousel"
	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/otel"
)

const heroFPS = 60

// hero renders the carousel and animates the crossfade between slides.
// The carousel decides when a transition starts and ends; the spring only
// shapes how the title brightens in between.
type hero struct {
	env *env
	c   *carousel.Carousel

	spring    harmonica.Spring
	fade      float64
	velocity  float64
	animating bool
}

func newHero(e *env) *hero {
	h := &hero{
		env:    e,
		spring: harmonica.NewSpring(harmonica.FPS(heroFPS), 6.0, 1.0),
		fade:   1,
	}
	opts := carousel.Options{AutoAdvance: true, OnChange: h.changed}
	if e.cfg != nil {
		opts.Dwell = e.cfg.Carousel.Dwell
		opts.Transition = e.cfg.Carousel.Transition
		opts.AutoAdvance = e.cfg.Carousel.AutoAdvance
	}
	h.c = carousel.New(nil, e.sched, opts)
	return h
}

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/heroFPS, func(time.Time) tea.Msg { return frameMsg{} })
}

// changed runs inside Update, either from a key press or a timer callback.
func (h *hero) changed(s carousel.State) {
	if s.Phase != carousel.Transitioning {
		return
	}
	h.env.events.Emit(otel.Event{
		Level: otel.LevelDebug, Kind: otel.KindCarouselAdvance, Comp: "home",
		Count: s.Current, Extra: map[string]any{"from": s.Previous, "auto": s.AutoAdvance},
	})
	h.fade, h.velocity = 0, 0
	if !h.animating {
		h.animating = true
		h.env.enqueue(frameTick())
	}
}

func (h *hero) setMovies(movies []catalog.Movie) {
	slides := make([]carousel.Slide, 0, len(movies))
	for _, m := range movies {
		slides = append(slides, carousel.Slide{
			ID:         m.ID,
			ImageRef:   h.env.images.Backdrop(m.BackdropPath),
			Title:      m.Title,
			Summary:    m.Overview,
			LinkTarget: MoviePath(m.ID),
		})
	}
	h.c.SetSlides(slides)
	h.c.Start()
}

// frame advances the fade by one step.
func (h *hero) frame() tea.Cmd {
	if !h.animating {
		return nil
	}
	h.fade, h.velocity = h.spring.Update(h.fade, h.velocity, 1)
	if math.Abs(1-h.fade) < 0.01 && math.Abs(h.velocity) < 0.01 {
		h.fade, h.velocity, h.animating = 1, 0, false
		return nil
	}
	return frameTick()
}

func (h *hero) fadeColor() lipgloss.Color {
	i := int(math.Round(h.fade * float64(len(fadeRamp)-1)))
	if i < 0 {
		i = 0
	}
	if i >= len(fadeRamp) {
		i = len(fadeRamp) - 1
	}
	return fadeRamp[i]
}

func (h *hero) view(width int, focused bool) string {
	box := HeroBox
	if focused {
		box = HeroBoxFocused
	}
	inner := width - box.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	slide, ok := h.c.Current()
	if !ok {
		return box.Width(inner).Render(HelpStyle.Render("No featured movies"))
	}
	st := h.c.State()

	title := lipgloss.NewStyle().Bold(true).Foreground(h.fadeColor()).
		Render(truncateRunes(slide.Title, inner))
	summary := lipgloss.NewStyle().Width(inner).Foreground(lipgloss.Color("252")).
		Render(truncateRunes(slide.Summary, inner*3))

	dots := make([]string, len(st.Slides))
	for i := range st.Slides {
		if i == st.Current {
			dots[i] = DotActive.Render("●")
		} else {
			dots[i] = DotInactive.Render("○")
		}
	}
	status := "▶ auto"
	if !st.AutoAdvance {
		status = "⏸ paused"
	}
	footer := strings.Join(dots, " ") + "  " + Meta.Render(fmt.Sprintf("%d/%d  %s", st.Current+1, len(st.Slides), status))

	lines := []string{title, summary}
	if slide.ImageRef != "" {
		lines = append(lines, Link.Render(truncateRunes(slide.ImageRef, inner)))
	}
	lines = append(lines, footer)
	return box.Width(inner).Render(strings.Join(lines, "\n"))
}
