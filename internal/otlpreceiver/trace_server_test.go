package otlpreceiver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"github.com/amaru-doctor/doctor/internal/tracegraph"
)

func TestExportForwardsConvertedBatchToSink(t *testing.T) {
	sink := make(chan []tracegraph.Span, 1)
	s := NewTraceServer(":0", sink, nil)

	req := &coltracepb.ExportTraceServiceRequest{
		ResourceSpans: []*tracepb.ResourceSpans{
			{
				ScopeSpans: []*tracepb.ScopeSpans{
					{
						Spans: []*tracepb.Span{
							{SpanId: make([]byte, 8), TraceId: make([]byte, 16), Name: "root"},
						},
					},
				},
			},
		},
	}

	resp, err := s.Export(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, resp)

	select {
	case batch := <-sink:
		require.Len(t, batch, 1)
		assert.Equal(t, "root", batch[0].Name)
	default:
		t.Fatal("expected a batch on sink")
	}
}

func TestExportSkipsEmptyBatchWithoutBlockingOnSink(t *testing.T) {
	sink := make(chan []tracegraph.Span) // unbuffered and never read
	s := NewTraceServer(":0", sink, nil)

	resp, err := s.Export(context.Background(), &coltracepb.ExportTraceServiceRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestExportRespectsContextCancellation(t *testing.T) {
	sink := make(chan []tracegraph.Span) // unbuffered and never read, forces the select to block
	s := NewTraceServer(":0", sink, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := &coltracepb.ExportTraceServiceRequest{
		ResourceSpans: []*tracepb.ResourceSpans{
			{
				ScopeSpans: []*tracepb.ScopeSpans{
					{Spans: []*tracepb.Span{{SpanId: make([]byte, 8), TraceId: make([]byte, 16), Name: "root"}}},
				},
			},
		},
	}

	_, err := s.Export(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}
