// Command costcache-sim replays a skewed block-merge workload against the cost cache and reports
// hit ratio, evictions and artifact leaks.
package main

import (
	"context"
	"errors"
	"fmt"
	costcache "github.com/Borislavv/go-cost-cache"
	"github.com/Borislavv/go-cost-cache/config"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const envPrefix = "COSTCACHE_SIM_"

var (
	configFlag = cli.StringFlag{
		Name:    "config",
		EnvVars: []string{envPrefix + "CONFIG"},
		Usage:   "path to a YAML cache config, -capacity is ignored when set",
	}
	capacityFlag = cli.Int64Flag{
		Name:    "capacity",
		EnvVars: []string{envPrefix + "CAPACITY"},
		Usage:   "cost budget of the cache in bytes",
		Value:   64 << 20,
	}
	metricsAddrFlag = cli.StringFlag{
		Name:    "metrics-addr",
		EnvVars: []string{envPrefix + "METRICS_ADDR"},
		Usage:   "serve Prometheus metrics on this address, e.g. :9090, disabled if empty",
	}
	verboseFlag = cli.BoolFlag{
		Name:    "v",
		EnvVars: []string{envPrefix + "VERBOSE"},
		Usage:   "enable debug logs",
	}
	requestsFlag = cli.IntFlag{
		Name:    "requests",
		EnvVars: []string{envPrefix + "REQUESTS"},
		Usage:   "number of lookups",
		Value:   1_000_000,
	}
	keysFlag = cli.IntFlag{
		Name:    "keys",
		EnvVars: []string{envPrefix + "KEYS"},
		Usage:   "number of distinct blocks",
		Value:   1 << 16,
	}
	skewFlag = cli.Float64Flag{
		Name:    "skew",
		EnvVars: []string{envPrefix + "SKEW"},
		Usage:   "key skew, 1 is uniform",
		Value:   2,
	}
	rateFlag = cli.IntFlag{
		Name:    "rate",
		EnvVars: []string{envPrefix + "RATE"},
		Usage:   "lookups per second, 0 is unlimited",
	}
	workersFlag = cli.IntFlag{
		Name:    "workers",
		EnvVars: []string{envPrefix + "WORKERS"},
		Usage:   "concurrent workers",
		Value:   4,
	}
	artifactSizeFlag = cli.IntFlag{
		Name:    "artifact-size",
		EnvVars: []string{envPrefix + "ARTIFACT_SIZE"},
		Usage:   "bytes per merged artifact, which is also its cost",
		Value:   4096,
	}
	seedFlag = cli.Int64Flag{
		Name:    "seed",
		EnvVars: []string{envPrefix + "SEED"},
		Usage:   "the seed for the random number generator, 0 for a random seed",
	}
)

type options struct {
	configPath  string
	capacity    int64
	metricsAddr string
	verbose     bool
	workload    workloadCfg
}

func newApp(action func(ctx context.Context, o options) error) *cli.App {
	return &cli.App{
		Name:  "costcache-sim",
		Usage: "replay a get-or-compute workload against the cost cache",
		Flags: []cli.Flag{
			&configFlag,
			&capacityFlag,
			&metricsAddrFlag,
			&verboseFlag,
			&requestsFlag,
			&keysFlag,
			&skewFlag,
			&rateFlag,
			&workersFlag,
			&artifactSizeFlag,
			&seedFlag,
		},
		Action: func(c *cli.Context) error {
			o, err := optionsFrom(c)
			if err != nil {
				return err
			}
			return action(c.Context, o)
		},
	}
}

func optionsFrom(c *cli.Context) (options, error) {
	o := options{
		configPath:  c.String(configFlag.Name),
		capacity:    c.Int64(capacityFlag.Name),
		metricsAddr: c.String(metricsAddrFlag.Name),
		verbose:     c.Bool(verboseFlag.Name),
		workload: workloadCfg{
			Requests:     c.Int(requestsFlag.Name),
			Keys:         c.Int(keysFlag.Name),
			Skew:         c.Float64(skewFlag.Name),
			Rate:         c.Int(rateFlag.Name),
			Workers:      c.Int(workersFlag.Name),
			ArtifactSize: c.Int(artifactSizeFlag.Name),
			Seed:         c.Int64(seedFlag.Name),
		},
	}
	if o.workload.Requests < 0 || o.workload.Keys <= 0 {
		return o, errors.New("requests must be >= 0 and keys > 0")
	}
	return o, nil
}

func loadConfig(o options) (*config.Cache, error) {
	if o.configPath != "" {
		return config.LoadConfig(o.configPath)
	}
	cfg := &config.Cache{DB: config.DBCfg{Capacity: o.capacity}}
	cfg.AdjustConfig()
	return cfg, nil
}

func main() {
	// A missing .env is fine, flags and the process environment still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(simulate).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func simulate(ctx context.Context, opts options) error {
	level := zerolog.InfoLevel
	if opts.verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Str("app", "costcache-sim").Logger()

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c := costcache.New[*[]byte](ctx, cfg, newSlogLogger(log))

	if opts.metricsAddr != "" {
		srv := newMetricsServer(opts.metricsAddr, c.Collector())
		go func() {
			log.Info().Str("addr", opts.metricsAddr).Msg("serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	rep := runWorkload(ctx, c, opts.workload)
	final := c.Metrics()

	var hitRatio float64
	if lookups := final.Hits + final.Misses; lookups > 0 {
		hitRatio = float64(final.Hits) / float64(lookups)
	}

	log.Info().
		Int64("requests", rep.Requests).
		Dur("elapsed", rep.Elapsed).
		Float64("hit_ratio", hitRatio).
		Int64("computed", rep.Computed).
		Int64("bypassed", rep.Bypassed).
		Int64("evicted", final.EvictedItems).
		Str("evicted_bytes", humanize.IBytes(uint64(max(final.EvictedCost, 0)))).
		Str("capacity", humanize.IBytes(uint64(c.Capacity()))).
		Int64("replaced", final.Replaced).
		Msg("simulation finished")

	if rep.Outstanding() != 0 {
		return fmt.Errorf("%d artifacts leaked", rep.Outstanding())
	}
	return nil
}

func newMetricsServer(addr string, cacheCollector prometheus.Collector) *http.Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		cacheCollector,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
