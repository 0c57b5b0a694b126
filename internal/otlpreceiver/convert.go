// Package otlpreceiver hosts the inbound OTLP endpoints: a gRPC
// TraceService receiver and an HTTP /v1/metrics receiver. Wire-level
// decoding needs a real entry point even though the node's own
// store/database formats are out of scope here.
package otlpreceiver

import (
	"fmt"
	"time"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"github.com/amaru-doctor/doctor/internal/tracegraph"
)

func unixNanoToTime(n uint64) time.Time {
	return time.Unix(0, int64(n))
}

// Convert flattens a batch of OTLP ResourceSpans into the flat
// []tracegraph.Span shape Engine.Ingest expects, discarding Resource and
// InstrumentationScope.
func Convert(resourceSpans []*tracepb.ResourceSpans) []tracegraph.Span {
	var out []tracegraph.Span
	for _, rs := range resourceSpans {
		for _, ss := range rs.GetScopeSpans() {
			for _, s := range ss.GetSpans() {
				span, err := convertSpan(s)
				if err != nil {
					continue
				}
				out = append(out, span)
			}
		}
	}
	return out
}

func convertSpan(s *tracepb.Span) (tracegraph.Span, error) {
	spanID, err := tracegraph.SpanIdFromBytes(s.GetSpanId())
	if err != nil {
		return tracegraph.Span{}, err
	}
	traceID, err := tracegraph.TraceIdFromBytes(s.GetTraceId())
	if err != nil {
		return tracegraph.Span{}, err
	}

	var parentID tracegraph.SpanId
	if len(s.GetParentSpanId()) > 0 {
		parentID, err = tracegraph.SpanIdFromBytes(s.GetParentSpanId())
		if err != nil {
			parentID = tracegraph.SpanId{}
		}
	}

	events := make([]tracegraph.Event, 0, len(s.GetEvents()))
	for _, e := range s.GetEvents() {
		events = append(events, tracegraph.Event{
			Name:       e.GetName(),
			Time:       unixNanoToTime(e.GetTimeUnixNano()),
			Attributes: convertAttributes(e.GetAttributes()),
		})
	}

	return tracegraph.Span{
		Id:         spanID,
		TraceId:    traceID,
		ParentId:   parentID,
		Name:       s.GetName(),
		Kind:       convertKind(s.GetKind()),
		Status:     convertStatus(s.GetStatus()),
		Start:      unixNanoToTime(s.GetStartTimeUnixNano()),
		End:        unixNanoToTime(s.GetEndTimeUnixNano()),
		Attributes: convertAttributes(s.GetAttributes()),
		Events:     events,
	}, nil
}

func convertKind(k tracepb.Span_SpanKind) tracegraph.SpanKind {
	switch k {
	case tracepb.Span_SPAN_KIND_INTERNAL:
		return tracegraph.SpanKindInternal
	case tracepb.Span_SPAN_KIND_SERVER:
		return tracegraph.SpanKindServer
	case tracepb.Span_SPAN_KIND_CLIENT:
		return tracegraph.SpanKindClient
	case tracepb.Span_SPAN_KIND_PRODUCER:
		return tracegraph.SpanKindProducer
	case tracepb.Span_SPAN_KIND_CONSUMER:
		return tracegraph.SpanKindConsumer
	default:
		return tracegraph.SpanKindUnspecified
	}
}

func convertStatus(st *tracepb.Status) tracegraph.StatusCode {
	if st == nil {
		return tracegraph.StatusCodeUnset
	}
	switch st.GetCode() {
	case tracepb.Status_STATUS_CODE_OK:
		return tracegraph.StatusCodeOK
	case tracepb.Status_STATUS_CODE_ERROR:
		return tracegraph.StatusCodeError
	default:
		return tracegraph.StatusCodeUnset
	}
}

func convertAttributes(kvs []*commonpb.KeyValue) map[string]string {
	if len(kvs) == 0 {
		return nil
	}
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		out[kv.GetKey()] = attributeValueToString(kv.GetValue())
	}
	return out
}

func attributeValueToString(v *commonpb.AnyValue) string {
	if v == nil {
		return ""
	}
	switch val := v.GetValue().(type) {
	case *commonpb.AnyValue_StringValue:
		return val.StringValue
	case *commonpb.AnyValue_BoolValue:
		return fmt.Sprintf("%t", val.BoolValue)
	case *commonpb.AnyValue_IntValue:
		return fmt.Sprintf("%d", val.IntValue)
	case *commonpb.AnyValue_DoubleValue:
		return fmt.Sprintf("%g", val.DoubleValue)
	case *commonpb.AnyValue_BytesValue:
		return fmt.Sprintf("%x", val.BytesValue)
	default:
		return v.String()
	}
}
