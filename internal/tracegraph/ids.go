// Package tracegraph reconstructs span trees from an unordered stream of
// OTLP span batches into a causally consistent, time-bounded trace graph,
// and publishes read-only snapshots for the UI to render.
package tracegraph

import (
	"crypto/rand"
	"encoding/hex"
)

// SpanId is an opaque 8-byte span identifier.
type SpanId [8]byte

// TraceId is an opaque 16-byte trace identifier.
type TraceId [16]byte

// String renders the id as lowercase hex, matching OTLP's wire convention.
func (s SpanId) String() string {
	return hex.EncodeToString(s[:])
}

func (t TraceId) String() string {
	return hex.EncodeToString(t[:])
}

// IsZero reports whether the id is the zero value, used to mean "no parent".
func (s SpanId) IsZero() bool {
	return s == SpanId{}
}

// NewSpanId generates a random SpanId. Used by tests and synthetic spans;
// real spans carry ids decoded from the wire by internal/otlpreceiver.
func NewSpanId() SpanId {
	var id SpanId
	_, _ = rand.Read(id[:])
	return id
}

// NewTraceId generates a random TraceId.
func NewTraceId() TraceId {
	var id TraceId
	_, _ = rand.Read(id[:])
	return id
}

// SpanIdFromBytes copies raw wire bytes (OTLP spans carry ids as []byte)
// into a SpanId.
func SpanIdFromBytes(b []byte) (SpanId, error) {
	var id SpanId
	if len(b) != len(id) {
		return id, errShortId
	}
	copy(id[:], b)
	return id, nil
}

// TraceIdFromBytes copies raw wire bytes into a TraceId.
func TraceIdFromBytes(b []byte) (TraceId, error) {
	var id TraceId
	if len(b) != len(id) {
		return id, errShortId
	}
	copy(id[:], b)
	return id, nil
}

// SpanIdFromHex parses a 16-character hex string into a SpanId.
func SpanIdFromHex(s string) (SpanId, error) {
	var id SpanId
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(b) != len(id) {
		return id, errShortId
	}
	copy(id[:], b)
	return id, nil
}

// TraceIdFromHex parses a 32-character hex string into a TraceId.
func TraceIdFromHex(s string) (TraceId, error) {
	var id TraceId
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(b) != len(id) {
		return id, errShortId
	}
	copy(id[:], b)
	return id, nil
}
