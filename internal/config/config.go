// Package config collects every runtime-tunable value the program needs,
// parsed from CLI flags with environment-variable fallbacks, plus
// process discovery for auto-filling database paths.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Config is the fully resolved set of settings the rest of the program
// is built from. Grounded on cmd/ralph/main.go's flat config struct +
// parseFlags idiom.
type Config struct {
	Network string // "mainnet", "preprod", "preview", ...

	LedgerDBPath string
	ChainDBPath  string

	OTLPTraceAddr   string // gRPC TraceService bind address
	OTLPMetricsAddr string // HTTP bind address for /v1/metrics

	PromScrapeURL      string
	PromScrapeInterval time.Duration

	TraceRetention time.Duration
	BatchChanCap   int

	ListHeight   int // default StreamingView window height
	PrefetchSize int // parsed only; search.Cache.Poll pulls a fixed 100 items per tick

	Backend string // "term" or "simulator"

	Verbose bool
}

// envOrDefault reads key from the environment, falling back to def,
// matching the AMARU_LEDGER_DB/AMARU_CHAIN_DB convention (detection.rs)
// of letting the environment seed defaults that flags can still override.
func envOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// Parse reads CLI flags (with os.Args[1:]) into a Config, using
// environment variables as pre-flag defaults. Grounded on
// cmd/ralph/main.go's parseFlags: flag.*Var into a struct, a custom
// flag.Usage, required-field validation after Parse.
func Parse(args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)

	fs.StringVar(&cfg.Network, "network", envOrDefault("AMARU_NETWORK", "preprod"), "network to inspect")
	fs.StringVar(&cfg.LedgerDBPath, "ledger-db", envOrDefault("AMARU_LEDGER_DB", ""), "path to the ledger database (auto-detected if empty)")
	fs.StringVar(&cfg.ChainDBPath, "chain-db", envOrDefault("AMARU_CHAIN_DB", ""), "path to the chain database (auto-detected if empty)")
	fs.StringVar(&cfg.OTLPTraceAddr, "otlp-trace-addr", envOrDefault("AMARU_DOCTOR_OTLP_TRACE_ADDR", "0.0.0.0:4317"), "bind address for the OTLP trace gRPC receiver")
	fs.StringVar(&cfg.OTLPMetricsAddr, "otlp-metrics-addr", envOrDefault("AMARU_DOCTOR_OTLP_METRICS_ADDR", "0.0.0.0:4318"), "bind address for the OTLP metrics HTTP receiver")
	fs.StringVar(&cfg.PromScrapeURL, "prom-scrape-url", envOrDefault("AMARU_DOCTOR_PROM_URL", "http://127.0.0.1:9464/metrics"), "Prometheus text-exposition endpoint to scrape")
	fs.DurationVar(&cfg.PromScrapeInterval, "prom-scrape-interval", 100*time.Millisecond, "interval between Prometheus scrapes")
	fs.DurationVar(&cfg.TraceRetention, "trace-retention", 5*time.Minute, "how long a trace is kept, counted from its earliest root span's start, before eviction")
	fs.IntVar(&cfg.BatchChanCap, "trace-batch-cap", 10000, "capacity of the inbound trace batch channel")
	fs.IntVar(&cfg.ListHeight, "list-height", 20, "default visible row count for streaming list views")
	fs.IntVar(&cfg.PrefetchSize, "prefetch-size", 100, "prefetch size (not read: cached search results are pulled 100 items per tick)")
	fs.StringVar(&cfg.Backend, "backend", "term", "render backend: term or simulator")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: doctor [flags]\n\n")
		fmt.Fprintf(os.Stderr, "doctor is a read-only inspector for a running node's ledger/chain\n")
		fmt.Fprintf(os.Stderr, "databases, trace stream, and Prometheus metrics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Backend != "term" && cfg.Backend != "simulator" {
		return Config{}, fmt.Errorf("config: --backend must be \"term\" or \"simulator\", got %q", cfg.Backend)
	}
	if cfg.BatchChanCap < 1 {
		return Config{}, fmt.Errorf("config: --trace-batch-cap must be >= 1, got %d", cfg.BatchChanCap)
	}
	if cfg.ListHeight < 1 {
		return Config{}, fmt.Errorf("config: --list-height must be >= 1, got %d", cfg.ListHeight)
	}

	return cfg, nil
}
