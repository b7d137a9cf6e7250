// Package trace implements the trace-context source consulted by the
// preview-create handler: it opens a span for a command and yields a
// W3C traceparent string to embed into the outgoing envelope. Backed by
// real OpenTelemetry spans rather than the original's ad-hoc string
// surgery over a Rust-owned buffer.
package trace

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/trace"
)

// Source opens a trace span for a command and yields an injectable
// traceparent token. Free releases any resources tied to the most
// recently started span; callers must not retain the token past Free.
type Source interface {
	StartSpan(ctx context.Context, command string) (traceparent string, ok bool)
	Free()
}

// OTELSource starts real spans against a caller-supplied TracerProvider
// (no exporter is configured here — shipping spans to a collector is an
// external concern, out of scope for this core) and extracts the
// resulting SpanContext into a W3C traceparent string via the standard
// propagation.TraceContext carrier, rather than hand-parsing JSON.
type OTELSource struct {
	Tracer sdktrace.Tracer

	mu   sync.Mutex
	ends []func()
}

// NewOTELSource builds a Source from a TracerProvider, naming the tracer
// after this module.
func NewOTELSource(tp sdktrace.TracerProvider) *OTELSource {
	return &OTELSource{Tracer: tp.Tracer("github.com/phkaiser13/phgit")}
}

// StartSpan opens a span named command and returns its propagated
// traceparent header value.
func (s *OTELSource) StartSpan(ctx context.Context, command string) (string, bool) {
	spanCtx, span := s.Tracer.Start(ctx, command)

	s.mu.Lock()
	s.ends = append(s.ends, span.End)
	s.mu.Unlock()

	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(spanCtx, carrier)
	tp, ok := carrier["traceparent"]
	return tp, ok && tp != ""
}

// Free ends every span started since the last Free call.
func (s *OTELSource) Free() {
	s.mu.Lock()
	ends := s.ends
	s.ends = nil
	s.mu.Unlock()
	for _, end := range ends {
		end()
	}
}

// StubSource is a deterministic test double.
type StubSource struct {
	Traceparent string
	Fails       bool
	Freed       int
}

func (s *StubSource) StartSpan(ctx context.Context, command string) (string, bool) {
	if s.Fails {
		return "", false
	}
	return s.Traceparent, true
}

func (s *StubSource) Free() {
	s.Freed++
}
