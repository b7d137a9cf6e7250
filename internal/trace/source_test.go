package trace

import (
	"context"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/trace"
)

func TestOTELSourceStartSpanYieldsTraceparent(t *testing.T) {
	src := NewOTELSource(sdktrace.NewNoopTracerProvider())
	// The no-op provider records nothing and only carries forward a span
	// context already present in ctx, so the test supplies a valid parent.
	parent := sdktrace.ContextWithRemoteSpanContext(context.Background(),
		sdktrace.NewSpanContext(sdktrace.SpanContextConfig{
			TraceID:    sdktrace.TraceID{0x01},
			SpanID:     sdktrace.SpanID{0x02},
			TraceFlags: sdktrace.FlagsSampled,
		}))
	tp, ok := src.StartSpan(parent, "preview_create")
	if !ok {
		t.Fatal("StartSpan() reported failure")
	}
	// W3C traceparent: version-traceid-spanid-flags
	if parts := strings.Split(tp, "-"); len(parts) != 4 {
		t.Errorf("traceparent %q does not look like version-traceid-spanid-flags", tp)
	}
	src.Free()
}

func TestStubSourceFailure(t *testing.T) {
	src := &StubSource{Fails: true}
	if _, ok := src.StartSpan(context.Background(), "cmd"); ok {
		t.Error("StartSpan() on a failing stub reported success")
	}
}

func TestStubSourceFreeCounts(t *testing.T) {
	src := &StubSource{Traceparent: "00-abc-def-01"}
	src.StartSpan(context.Background(), "cmd")
	src.Free()
	if src.Freed != 1 {
		t.Errorf("Freed = %d, want 1", src.Freed)
	}
}
