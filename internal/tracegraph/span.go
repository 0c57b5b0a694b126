package tracegraph

import (
	"errors"
	"time"
)

var errShortId = errors.New("tracegraph: wrong-length id")

// SpanKind mirrors the OTLP span kind enum without importing the proto
// package into this leaf type; internal/otlpreceiver maps onto it.
type SpanKind int

const (
	SpanKindUnspecified SpanKind = iota
	SpanKindInternal
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

// StatusCode mirrors the OTLP span status code enum.
type StatusCode int

const (
	StatusCodeUnset StatusCode = iota
	StatusCodeOK
	StatusCodeError
)

// Event is a timed annotation attached to a Span.
type Event struct {
	Name       string
	Time       time.Time
	Attributes map[string]string
}

// Span is an immutable record of a single unit of work. Spans are never
// mutated in place once admitted to a TraceGraph; a new batch that
// re-sends the same SpanId is deduplicated by Engine.addOne (see engine.go).
type Span struct {
	Id       SpanId
	TraceId  TraceId
	ParentId SpanId // zero value means "no parent"
	Name     string
	Kind     SpanKind
	Status   StatusCode

	Start time.Time
	End   time.Time

	Attributes map[string]string
	Events     []Event
}

// HasParent reports whether the span declares a parent id at all. Note this
// is independent of whether that parent is actually present in the graph;
// callers that need "is this span currently a root" should consult
// TraceGraph, not this method.
func (s Span) HasParent() bool {
	return !s.ParentId.IsZero()
}

// Duration is End-Start, clamped to zero when End precedes Start: an
// out-of-order span is accepted with duration zero rather than rejected.
func (s Span) Duration() time.Duration {
	d := s.End.Sub(s.Start)
	if d < 0 {
		return 0
	}
	return d
}
