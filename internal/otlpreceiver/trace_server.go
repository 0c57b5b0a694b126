package otlpreceiver

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"

	"github.com/amaru-doctor/doctor/internal/tracegraph"
)

// TraceServer hosts the OTLP TraceService gRPC endpoint. Every received batch
// is converted and handed to Sink, the processing task's ingest channel.
// Grounded on internal/trace/server.go's listener-lifecycle idiom
// (Start/Stop around a long-lived net listener), adapted from an
// http.Server + JSON handler to a grpc.Server hosting a generated
// service interface, since the wire format here is binary OTLP rather
// than JSON.
type TraceServer struct {
	coltracepb.UnimplementedTraceServiceServer

	addr string
	sink chan<- []tracegraph.Span
	log  *slog.Logger

	server   *grpc.Server
	listener net.Listener
}

// NewTraceServer constructs a server that will listen on addr and push
// converted batches onto sink. sink should be read by
// tracegraph.Engine.Run.
func NewTraceServer(addr string, sink chan<- []tracegraph.Span, log *slog.Logger) *TraceServer {
	if log == nil {
		log = slog.Default()
	}
	return &TraceServer{addr: addr, sink: sink, log: log}
}

// Start binds addr and begins serving in a background goroutine. Errors
// encountered while serving (after a successful bind) are logged, not
// returned, matching internal/trace/server.go's "continue anyway" stance
// toward a background listener failing mid-run.
func (s *TraceServer) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("otlpreceiver: listen on %s: %w", s.addr, err)
	}
	s.listener = lis
	s.server = grpc.NewServer()
	coltracepb.RegisterTraceServiceServer(s.server, s)

	go func() {
		if err := s.server.Serve(lis); err != nil {
			s.log.Warn("otlp trace server stopped serving", "err", err)
		}
	}()
	s.log.Info("otlp trace receiver listening", "addr", s.addr)
	return nil
}

// Stop gracefully shuts the gRPC server down.
func (s *TraceServer) Stop() {
	if s.server != nil {
		s.server.GracefulStop()
	}
}

// Export implements coltracepb.TraceServiceServer: decode, convert, and
// forward the batch to Sink without blocking indefinitely if the ingest
// side is backed up.
func (s *TraceServer) Export(ctx context.Context, req *coltracepb.ExportTraceServiceRequest) (*coltracepb.ExportTraceServiceResponse, error) {
	spans := Convert(req.GetResourceSpans())
	if len(spans) > 0 {
		select {
		case s.sink <- spans:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &coltracepb.ExportTraceServiceResponse{}, nil
}
