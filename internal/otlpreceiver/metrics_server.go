package otlpreceiver

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"google.golang.org/protobuf/proto"

	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
)

// MetricPoint is one observed Gauge/Sum sample.
type MetricPoint struct {
	Value float64
	At    time.Time
}

// MetricsSink receives decoded points, keyed by metric name. It is called
// synchronously from the HTTP handler goroutine, so it must not block.
type MetricsSink func(name string, point MetricPoint)

// MetricsServer hosts the OTLP metrics HTTP receiver at /v1/metrics.
// Only Gauge and Sum point types are consumed — Histogram,
// ExponentialHistogram, and Summary are out of scope for an operator
// inspection tool focused on current values, not distributions.
type MetricsServer struct {
	addr string
	sink MetricsSink
	log  *slog.Logger

	server *http.Server
}

func NewMetricsServer(addr string, sink MetricsSink, log *slog.Logger) *MetricsServer {
	if log == nil {
		log = slog.Default()
	}
	return &MetricsServer{addr: addr, sink: sink, log: log}
}

// Start binds addr, registers the handler on a dedicated mux and begins
// serving in the background. A bind failure is returned; errors while
// serving are logged. Grounded on internal/trace/server.go's
// http.Server-on-a-mux idiom; protobuf body decoding replaces JSON
// decoding since OTLP's wire format here is binary.
func (s *MetricsServer) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("otlpreceiver: listen on %s: %w", s.addr, err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/metrics", s.handleExport)
	s.server = &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		if err := s.server.Serve(lis); err != nil && err != http.ErrServerClosed {
			s.log.Warn("otlp metrics server stopped serving", "err", err)
		}
	}()
	s.log.Info("otlp metrics receiver listening", "addr", s.addr)
	return nil
}

func (s *MetricsServer) Stop() {
	if s.server != nil {
		_ = s.server.Close()
	}
}

func (s *MetricsServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var req colmetricspb.ExportMetricsServiceRequest
	if err := proto.Unmarshal(body, &req); err != nil {
		http.Error(w, "decode: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.consume(req.GetResourceMetrics())
	w.WriteHeader(http.StatusOK)
}

func (s *MetricsServer) consume(resourceMetrics []*metricspb.ResourceMetrics) {
	for _, rm := range resourceMetrics {
		for _, sm := range rm.GetScopeMetrics() {
			for _, m := range sm.GetMetrics() {
				s.consumeMetric(m)
			}
		}
	}
}

func (s *MetricsServer) consumeMetric(m *metricspb.Metric) {
	var points []*metricspb.NumberDataPoint
	switch data := m.GetData().(type) {
	case *metricspb.Metric_Gauge:
		points = data.Gauge.GetDataPoints()
	case *metricspb.Metric_Sum:
		points = data.Sum.GetDataPoints()
	default:
		return // Histogram/ExponentialHistogram/Summary: out of scope.
	}
	if len(points) == 0 {
		return
	}
	if len(points) > 1 {
		s.log.Warn("otlp metric carried multiple data points, keeping only the first", "metric", m.GetName(), "count", len(points))
	}
	s.sink(m.GetName(), MetricPoint{
		Value: numberValue(points[0]),
		At:    unixNanoToTime(points[0].GetTimeUnixNano()),
	})
}

func numberValue(p *metricspb.NumberDataPoint) float64 {
	switch v := p.GetValue().(type) {
	case *metricspb.NumberDataPoint_AsDouble:
		return v.AsDouble
	case *metricspb.NumberDataPoint_AsInt:
		return float64(v.AsInt)
	default:
		return 0
	}
}
