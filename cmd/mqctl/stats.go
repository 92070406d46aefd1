package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// sessionStats aggregates one or more event logs.
type sessionStats struct {
	sessions map[string]bool
	kinds    map[string]int

	fetches   int
	fetchErrs int
	fetchMs   []float64
	errors    map[string]int

	first, last time.Time
}

func newSessionStats() *sessionStats {
	return &sessionStats{
		sessions: map[string]bool{},
		kinds:    map[string]int{},
		errors:   map[string]int{},
	}
}

func (s *sessionStats) add(ev eventRecord) {
	if ev.SessionID != "" {
		s.sessions[ev.SessionID] = true
	}
	s.kinds[ev.Kind]++
	if s.first.IsZero() || ev.Time.Before(s.first) {
		s.first = ev.Time
	}
	if ev.Time.After(s.last) {
		s.last = ev.Time
	}

	switch ev.Kind {
	case "fetch.complete":
		s.fetches++
		s.fetchMs = append(s.fetchMs, ev.DurMs)
	case "fetch.error":
		s.fetches++
		s.fetchErrs++
		s.errors[ev.Err]++
	}
}

// percentile returns the p-th percentile (0-100) of fetch latency.
func (s *sessionStats) percentile(p float64) float64 {
	if len(s.fetchMs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), s.fetchMs...)
	sort.Float64s(sorted)
	i := int(p / 100 * float64(len(sorted)-1))
	return sorted[i]
}

func (s *sessionStats) write(w io.Writer) {
	fmt.Fprintf(w, "Sessions:              %d\n", len(s.sessions))
	if !s.first.IsZero() {
		fmt.Fprintf(w, "Span:                  %s to %s\n",
			s.first.Format(time.RFC3339), s.last.Format(time.RFC3339))
	}

	fmt.Fprintf(w, "\nFetches:               %s\n", humanize.Comma(int64(s.fetches)))
	if s.fetches > 0 {
		fmt.Fprintf(w, "Errors:                %d (%.1f%%)\n",
			s.fetchErrs, float64(s.fetchErrs)/float64(s.fetches)*100)
		fmt.Fprintf(w, "Latency p50/p95:       %.0fms / %.0fms\n", s.percentile(50), s.percentile(95))
	}
	fmt.Fprintf(w, "Stale results:         %d\n", s.kinds["fetch.stale"])

	fmt.Fprintf(w, "\nCarousel advances:     %d\n", s.kinds["carousel.advance"])
	fmt.Fprintf(w, "Suggestions:           %d (%d stale)\n", s.kinds["search.suggest"], s.kinds["search.suggest_stale"])
	fmt.Fprintf(w, "Searches submitted:    %d\n", s.kinds["search.submit"])
	fmt.Fprintf(w, "Navigations:           %d\n", s.kinds["ui.navigate"])

	if len(s.errors) > 0 {
		fmt.Fprintln(w, "\nTop errors:")
		type errCount struct {
			msg string
			n   int
		}
		var top []errCount
		for msg, n := range s.errors {
			top = append(top, errCount{msg, n})
		}
		sort.Slice(top, func(i, j int) bool {
			if top[i].n != top[j].n {
				return top[i].n > top[j].n
			}
			return top[i].msg < top[j].msg
		})
		if len(top) > 5 {
			top = top[:5]
		}
		for _, e := range top {
			fmt.Fprintf(w, "  %4d  %s\n", e.n, strings.TrimSpace(e.msg))
		}
	}
}

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	all := fs.Bool("all", false, "Read every event log, not just the newest")
	_ = fs.Parse(os.Args[1:])

	cfg := loadConfig()
	files := []string{latestEventLog(cfg)}
	if *all {
		files, _ = eventLogs(eventDir(cfg))
	}

	stats := newSessionStats()
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		scanEvents(f, func(ev eventRecord, _ []byte) { stats.add(ev) })
		f.Close()
	}

	fmt.Printf("Event logs:            %d\n", len(files))
	stats.write(os.Stdout)
}
