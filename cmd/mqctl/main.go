// Command mqctl inspects marquee's event log and response cache.
//
// Usage:
//
//	mqctl                   Show help
//	mqctl events            JSONL event log viewer
//	mqctl stats             Session statistics from the event log
//	mqctl cache             Response cache size; -prune drops expired rows
package main

import (
	"fmt"
	"os"
)

const usage = `mqctl: marquee debug and maintenance CLI

Usage:
  mqctl <command> [flags]

Commands:
  events      JSONL event log viewer
  stats       Fetch, carousel and search statistics from the event log
  cache       Response cache size and pruning

Environment:
  MARQUEE_CONFIG     Config file path (log and cache locations)

Run 'mqctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Flag sets see only their own flags.
	os.Args = os.Args[1:]

	switch cmd {
	case "events":
		runEvents()
	case "stats":
		runStats()
	case "cache":
		runCache()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "mqctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
