package otel

import (
	"os"
	"sync/atomic"
)

// TraceEnvVar turns on per-message tracing when set to any value.
const TraceEnvVar = "MARQUEE_TRACE"

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv(TraceEnvVar) != "")
}

// TraceEnabled reports whether MARQUEE_TRACE is set.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// setTraceEnabled overrides the flag in tests.
func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
