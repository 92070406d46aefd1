package feed

import (
	"reflect"
	"testing"

	"github.com/abelbrown/marquee/internal/catalog"
)

func TestProximityFiresOncePerSentinel(t *testing.T) {
	f := New(Options{})
	p := &Proximity{Distance: 3}

	if p.Signal(f, 0) != nil {
		t.Fatal("empty feed should not fire")
	}

	req := f.SetQuery(CategoryQuery(catalog.Popular))
	f.Resolve(ok(req, page(1, 50, 20, 0)))

	if got := p.Sentinel(f); got != 16 {
		t.Fatalf("Sentinel() = %d, want 16", got)
	}
	if p.Signal(f, 10) != nil {
		t.Error("fired before reaching the sentinel")
	}

	next := p.Signal(f, 16)
	if next == nil || next.Page != 2 {
		t.Fatalf("Signal at sentinel = %+v", next)
	}
	if p.Signal(f, 17) != nil || p.Signal(f, 19) != nil {
		t.Error("fired twice for the same sentinel")
	}

	f.Resolve(ok(next, page(2, 50, 20, 0)))
	if p.Signal(f, 19) != nil {
		t.Error("old sentinel position fired after the list grew")
	}
	if got := p.Signal(f, 36); got == nil || got.Page != 3 {
		t.Errorf("new sentinel Signal = %+v, want page 3", got)
	}
}

func TestProximityRearmsAfterFailure(t *testing.T) {
	f := New(Options{})
	p := &Proximity{}
	req := f.SetQuery(CategoryQuery(catalog.Popular))
	f.Resolve(ok(req, page(1, 50, 20, 0)))

	next := p.Signal(f, 19)
	f.Resolve(fail(next))

	again := p.Signal(f, 19)
	if again == nil || again.Page != 2 {
		t.Errorf("scroll after failure = %+v, want page 2", again)
	}
}

func TestProximityRearmsOnNewSession(t *testing.T) {
	f := New(Options{})
	p := &Proximity{}
	req := f.SetQuery(GenreQuery(28))
	f.Resolve(ok(req, page(1, 5, 20, 0)))
	next := p.Signal(f, 19)
	f.Resolve(ok(next, page(2, 5, 20, 0)))
	_ = p.Signal(f, 39)

	// New session with the same item count must still be able to fire.
	req = f.SetQuery(GenreQuery(35))
	f.Resolve(ok(req, page(1, 5, 40, 0)))
	if got := p.Signal(f, 39); got == nil {
		t.Error("sentinel not re-armed for the new session")
	}
}

func TestProximityStopsWithoutMore(t *testing.T) {
	f := New(Options{})
	p := &Proximity{}
	req := f.SetQuery(SearchQuery("x"))
	f.Resolve(ok(req, page(1, 1, 5, 0)))
	if p.Signal(f, 4) != nil {
		t.Error("fired with hasMore false")
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, last int
		want          []int
	}{
		{1, 1, nil},
		{1, 0, nil},
		{1, 2, []int{1, 2}},
		{1, 10, []int{1, 2, Gap, 10}},
		{3, 10, []int{1, 2, 3, 4, Gap, 10}},
		{4, 10, []int{1, Gap, 3, 4, 5, Gap, 10}},
		{5, 10, []int{1, Gap, 4, 5, 6, Gap, 10}},
		{8, 10, []int{1, Gap, 7, 8, 9, 10}},
		{10, 10, []int{1, Gap, 9, 10}},
		{99, 5, []int{1, Gap, 4, 5}},
	}
	for _, tt := range tests {
		got := PageWindow(tt.current, tt.last)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PageWindow(%d, %d) = %v, want %v", tt.current, tt.last, got, tt.want)
		}
	}
}
