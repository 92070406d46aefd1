package feed

// Proximity turns "the user is near the end of the list" into at most one
// LoadNextPage per sentinel. The sentinel is the item Distance rows before
// the last; it is re-armed whenever the session, the loaded page or the
// item count changes, and after a failure so the next scroll retries.
type Proximity struct {
	Distance int

	fired    bool
	firedGen uint64
	firedLen int
	firedPg  int
}

// Sentinel returns the index whose visibility triggers a load, or -1 for an
// empty feed.
func (p *Proximity) Sentinel(f *Feed) int {
	n := f.Len()
	if n == 0 {
		return -1
	}
	s := n - 1 - p.Distance
	if s < 0 {
		s = 0
	}
	return s
}

// Signal reports that the item at index is visible. It returns the request
// to run, or nil.
func (p *Proximity) Signal(f *Feed, index int) *Request {
	s := p.Sentinel(f)
	if s < 0 || index < s {
		return nil
	}
	if p.fired && f.Err() == nil &&
		p.firedGen == f.Generation() && p.firedLen == f.Len() && p.firedPg == f.Page() {
		return nil
	}
	req := f.LoadNextPage()
	if req == nil {
		return nil
	}
	p.fired = true
	p.firedGen, p.firedLen, p.firedPg = f.Generation(), f.Len(), f.Page()
	return req
}
