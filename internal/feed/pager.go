package feed

// Gap marks an elided run of pages in a PageWindow.
const Gap = 0

// PageWindow lists the page buttons for numbered pagination: the first and
// last pages, the current page with its neighbours, and Gap where pages are
// skipped. It returns nil when there is at most one page.
func PageWindow(current, last int) []int {
	if last <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > last {
		current = last
	}

	var out []int
	for p := 1; p <= last; p++ {
		switch {
		case p == 1 || p == last || (p >= current-1 && p <= current+1):
			out = append(out, p)
		case (p == current-2 && current > 3) || (p == current+2 && current < last-2):
			out = append(out, Gap)
		}
	}
	return out
}
