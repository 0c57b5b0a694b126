package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amaru-doctor/doctor/internal/applog"
	"github.com/amaru-doctor/doctor/internal/appui"
	"github.com/amaru-doctor/doctor/internal/config"
	"github.com/amaru-doctor/doctor/internal/otlpreceiver"
	"github.com/amaru-doctor/doctor/internal/promscrape"
	"github.com/amaru-doctor/doctor/internal/store"
	"github.com/amaru-doctor/doctor/internal/tracegraph"
)

// run wires configuration, the trace ingest pipeline, the Prometheus
// poller, and the TUI together, returning the process's exit code.
// Grounded on cmd/ralph/main.go's run/parseFlags split: flags parsed up
// front, a signal.NotifyContext governing every background task, and an
// explicit exit-code mapping rather than os.Exit scattered through the
// body.
func run(args []string) (int, error) {
	cfg, err := config.Parse(args)
	if err != nil {
		return 1, err
	}

	if detected, ok, derr := config.DetectAmaruProcess(); derr == nil && ok {
		cfg.ApplyDiscovery(detected)
	}

	logPath := ""
	if cfg.Verbose {
		logPath = "doctor.log"
	}
	log, closeLog, err := applog.New(logPath, cfg.Verbose)
	if err != nil {
		return 1, fmt.Errorf("doctor: opening log: %w", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engine := tracegraph.NewEngine(cfg.TraceRetention, tracegraph.WithLogger(log))

	batches := make(chan []tracegraph.Span, cfg.BatchChanCap)
	go engine.Run(ctx, batches, nil)

	traceServer := otlpreceiver.NewTraceServer(cfg.OTLPTraceAddr, batches, log)
	if err := traceServer.Start(); err != nil {
		return 1, fmt.Errorf("doctor: starting OTLP trace receiver: %w", err)
	}
	defer traceServer.Stop()

	metrics := promscrape.NewStore()

	metricsSink := func(name string, point otlpreceiver.MetricPoint) {
		metrics.Record(name, point.Value, point.At, promscrape.SourceOTLP)
	}
	metricsServer := otlpreceiver.NewMetricsServer(cfg.OTLPMetricsAddr, metricsSink, log)
	if err := metricsServer.Start(); err != nil {
		return 1, fmt.Errorf("doctor: starting OTLP metrics receiver: %w", err)
	}
	defer metricsServer.Stop()

	scrapeSink := func(name string, value float64, at time.Time) {
		metrics.Record(name, value, at, promscrape.SourceScrape)
	}
	scraper := promscrape.NewScraper(cfg.PromScrapeURL, cfg.PromScrapeInterval, scrapeSink, log)
	scraper.Start(ctx)
	defer scraper.Stop()

	es := store.NewSimulatorStore(0)
	root := appui.NewRoot(cfg, engine, es, metrics.Snapshot, scraper.LastOK, log)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}
	if cfg.Backend == "simulator" {
		// bubbletea has no headless backend of its own; running without
		// WithAltScreen/an attached terminal is this program's closest
		// analogue for the simulator run mode.
		opts = []tea.ProgramOption{tea.WithContext(ctx)}
	}
	program := tea.NewProgram(root, opts...)
	if _, err := program.Run(); err != nil {
		return 1, fmt.Errorf("doctor: %w", err)
	}

	if ctx.Err() != nil {
		return 5, nil
	}
	return 0, nil
}

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "doctor: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}
