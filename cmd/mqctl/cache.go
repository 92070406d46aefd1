package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/abelbrown/marquee/internal/store"
)

func runCache() {
	fs := flag.NewFlagSet("cache", flag.ExitOnError)
	prune := fs.Bool("prune", false, "Delete expired responses")
	_ = fs.Parse(os.Args[1:])

	cfg := loadConfig()
	if cfg.Cache.Path == "" {
		fmt.Println("Response cache is disabled (cache.path is empty).")
		return
	}

	st, err := store.Open(cfg.Cache.Path, cfg.Cache.TTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	n, err := st.Len()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Path:        %s\n", cfg.Cache.Path)
	fmt.Printf("TTL:         %s\n", cfg.Cache.TTL)
	fmt.Printf("Responses:   %s\n", humanize.Comma(int64(n)))
	if info, err := os.Stat(cfg.Cache.Path); err == nil {
		fmt.Printf("Size:        %s\n", humanize.Bytes(uint64(info.Size())))
	}

	if !*prune {
		return
	}
	removed, err := st.Prune()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Pruned:      %d expired\n", removed)
}
