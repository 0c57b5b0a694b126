package otlpreceiver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"github.com/amaru-doctor/doctor/internal/tracegraph"
)

func strVal(s string) *commonpb.AnyValue {
	return &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: s}}
}

func TestConvertMapsCoreFields(t *testing.T) {
	spanID := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	traceID := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	parentID := []byte{8, 7, 6, 5, 4, 3, 2, 1}

	rs := []*tracepb.ResourceSpans{
		{
			ScopeSpans: []*tracepb.ScopeSpans{
				{
					Spans: []*tracepb.Span{
						{
							SpanId:            spanID,
							TraceId:           traceID,
							ParentSpanId:      parentID,
							Name:              "handle-request",
							Kind:              tracepb.Span_SPAN_KIND_SERVER,
							StartTimeUnixNano: 1_000_000_000,
							EndTimeUnixNano:   2_000_000_000,
							Attributes: []*commonpb.KeyValue{
								{Key: "http.method", Value: strVal("GET")},
							},
							Status: &tracepb.Status{Code: tracepb.Status_STATUS_CODE_OK},
							Events: []*tracepb.Span_Event{
								{Name: "cache-miss", TimeUnixNano: 1_500_000_000},
							},
						},
					},
				},
			},
		},
	}

	spans := Convert(rs)
	require.Len(t, spans, 1)
	s := spans[0]

	assert.Equal(t, "0102030405060708", s.Id.String())
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", s.TraceId.String())
	assert.Equal(t, "0807060504030201", s.ParentId.String())
	assert.Equal(t, "handle-request", s.Name)
	assert.Equal(t, "GET", s.Attributes["http.method"])
	require.Len(t, s.Events, 1)
	assert.Equal(t, "cache-miss", s.Events[0].Name)
}

func TestConvertDropsMalformedSpanIds(t *testing.T) {
	rs := []*tracepb.ResourceSpans{
		{
			ScopeSpans: []*tracepb.ScopeSpans{
				{
					Spans: []*tracepb.Span{
						{SpanId: []byte{1, 2, 3}, TraceId: make([]byte, 16), Name: "too-short"},
					},
				},
			},
		},
	}
	assert.Empty(t, Convert(rs))
}

func TestConvertKindMapping(t *testing.T) {
	assert.Equal(t, tracegraph.SpanKindInternal, convertKind(tracepb.Span_SPAN_KIND_INTERNAL))
	assert.Equal(t, tracegraph.SpanKindServer, convertKind(tracepb.Span_SPAN_KIND_SERVER))
	assert.Equal(t, tracegraph.SpanKindClient, convertKind(tracepb.Span_SPAN_KIND_CLIENT))
	assert.Equal(t, tracegraph.SpanKindProducer, convertKind(tracepb.Span_SPAN_KIND_PRODUCER))
	assert.Equal(t, tracegraph.SpanKindConsumer, convertKind(tracepb.Span_SPAN_KIND_CONSUMER))
	assert.Equal(t, tracegraph.SpanKindUnspecified, convertKind(tracepb.Span_SPAN_KIND_UNSPECIFIED))
}

func TestConvertStatusMapping(t *testing.T) {
	assert.Equal(t, tracegraph.StatusCodeOK, convertStatus(&tracepb.Status{Code: tracepb.Status_STATUS_CODE_OK}))
	assert.Equal(t, tracegraph.StatusCodeError, convertStatus(&tracepb.Status{Code: tracepb.Status_STATUS_CODE_ERROR}))
	assert.Equal(t, tracegraph.StatusCodeUnset, convertStatus(nil))
}

func TestAttributeValueToStringHandlesEachKind(t *testing.T) {
	assert.Equal(t, "abc", attributeValueToString(strVal("abc")))
	assert.Equal(t, "true", attributeValueToString(&commonpb.AnyValue{Value: &commonpb.AnyValue_BoolValue{BoolValue: true}}))
	assert.Equal(t, "42", attributeValueToString(&commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: 42}}))
	assert.Equal(t, "", attributeValueToString(nil))
}
