// Package promscrape implements the outbound half of the program's
// metrics surface: periodically polling a Prometheus text-exposition
// endpoint, the node's own /metrics, as a complement to the inbound OTLP
// metrics receiver (internal/otlpreceiver).
package promscrape

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Sink receives one decoded sample per series of each Gauge/Counter family
// per scrape; every series of a family is reported under the family name.
// Like internal/otlpreceiver's MetricsSink, it is called synchronously
// and must not block.
type Sink func(name string, value float64, at time.Time)

// Scraper polls url at interval and forwards Gauge/Counter samples to
// Sink. Grounded on internal/trace/server.go's background-goroutine
// lifecycle (Start spawns a goroutine, Stop tears it down via context
// cancellation); the ticker-driven poll loop itself has no direct
// analogue and is built fresh in the same idiom.
type Scraper struct {
	url      string
	interval time.Duration
	client   *http.Client
	sink     Sink
	log      *slog.Logger

	cancel context.CancelFunc
	lastOK atomic.Bool
}

func NewScraper(url string, interval time.Duration, sink Sink, log *slog.Logger) *Scraper {
	if log == nil {
		log = slog.Default()
	}
	return &Scraper{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: interval},
		sink:     sink,
		log:      log,
	}
}

// Start begins polling in a background goroutine until ctx is done or
// Stop is called.
func (s *Scraper) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.run(ctx)
}

func (s *Scraper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scraper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scrapeOnce(ctx)
		}
	}
}

func (s *Scraper) scrapeOnce(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		s.log.Warn("promscrape: build request failed", "err", err)
		s.lastOK.Store(false)
		return
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("promscrape: scrape failed", "url", s.url, "err", err)
		s.lastOK.Store(false)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.log.Warn("promscrape: non-200 response", "url", s.url, "status", resp.StatusCode)
		s.lastOK.Store(false)
		return
	}

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(resp.Body)
	if err != nil {
		s.log.Warn("promscrape: parse failed", "url", s.url, "err", err)
		s.lastOK.Store(false)
		return
	}

	now := time.Now()
	for name, family := range families {
		s.consumeFamily(name, family, now)
	}
	s.lastOK.Store(true)
}

// LastOK reports whether the most recent scrape attempt succeeded end to
// end (reachable, 200 response, parseable body). Safe for concurrent use
// from the render loop while run's goroutine keeps scraping.
func (s *Scraper) LastOK() bool {
	return s.lastOK.Load()
}

func (s *Scraper) consumeFamily(name string, family *dto.MetricFamily, at time.Time) {
	for _, m := range family.GetMetric() {
		var value float64
		switch family.GetType() {
		case dto.MetricType_GAUGE:
			value = m.GetGauge().GetValue()
		case dto.MetricType_COUNTER:
			value = m.GetCounter().GetValue()
		default:
			continue // Histogram/Summary/Untyped: out of scope, same as the OTLP metrics receiver.
		}
		s.sink(name, value, at)
	}
}
