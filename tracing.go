package main

import (
	"io"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// traceSelector hands the same tracer to every engine package.
type traceSelector struct {
	trace tracing.Trace
}

func (s traceSelector) Select(string) tracing.Trace {
	return s.trace
}

// setupTracing routes the engine trace to a Go logger writing to w. An
// empty level leaves tracing off.
func setupTracing(level string, w io.Writer) {
	if level == "" {
		return
	}
	t := gologadapter.New()
	t.SetTraceLevel(tracing.TraceLevelFromString(level))
	t.SetOutput(w)
	tracing.SetTraceSelector(traceSelector{trace: t})
}
