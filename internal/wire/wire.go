// Package wire provides dependency injection for gardenwatch.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	cliadapter "github.com/example/gardenwatch/internal/adapters/cli"
	"github.com/example/gardenwatch/internal/adapters/gagapi"
	"github.com/example/gardenwatch/internal/adapters/notify"
	"github.com/example/gardenwatch/internal/adapters/persistence"
	redisadapter "github.com/example/gardenwatch/internal/adapters/redis"
	"github.com/example/gardenwatch/internal/adapters/sqlite"
	"github.com/example/gardenwatch/internal/app"
	"github.com/example/gardenwatch/internal/config"
	"github.com/example/gardenwatch/internal/db"
	"github.com/example/gardenwatch/internal/platform/logging"
	"github.com/example/gardenwatch/internal/platform/retry"
	"github.com/example/gardenwatch/internal/ports/primary"
	"github.com/example/gardenwatch/internal/ports/secondary"
	"github.com/example/gardenwatch/internal/server"
)

// redisConnectTimeout bounds the startup ping loop.
const redisConnectTimeout = 30 * time.Second

var (
	cfg               *config.Config
	clock             clockwork.Clock
	coordinator       *app.Coordinator
	stockService      primary.StockService
	preferenceService primary.PreferenceService
	closers           []io.Closer
	once              sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Coordinator returns the singleton Coordinator instance.
func Coordinator() *app.Coordinator {
	once.Do(initServices)
	return coordinator
}

// StockService returns the singleton StockService instance.
func StockService() primary.StockService {
	once.Do(initServices)
	return stockService
}

// PreferenceService returns the singleton PreferenceService instance.
func PreferenceService() primary.PreferenceService {
	once.Do(initServices)
	return preferenceService
}

// Server returns a new HTTP API server bound to addr.
// An empty addr uses the configured GARDENWATCH_HTTP_ADDR.
func Server(addr string) *server.Server {
	once.Do(initServices)
	if addr == "" {
		addr = cfg.HTTPAddr
	}
	return server.NewServer(addr, stockService, preferenceService, clock)
}

// Close releases the storage connections opened by initServices.
func Close() {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Printf("failed to close storage: %v", err)
		}
	}
	closers = nil
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	clock = clockwork.NewRealClock()

	// Create the key/value store selected by GARDENWATCH_STORAGE
	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	// Create repository adapters (secondary ports)
	snapshots := persistence.NewSnapshotRepository(store)
	preferences := persistence.NewPreferenceRepository(store)

	fetcher := gagapi.NewFetcher(gagapi.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.FetchTimeout,
	})

	notifier, err := notify.New(cfg.NotifierNames(), os.Stdout)
	if err != nil {
		log.Fatalf("failed to initialize notifiers: %v", err)
	}

	coordinator = app.NewCoordinator(app.CoordinatorConfig{
		TrackerConfig: app.TrackerConfig{
			Fetcher:       fetcher,
			Snapshots:     snapshots,
			Preferences:   preferences,
			Aggregator:    app.NewAggregator(notifier, logger),
			Clock:         clock,
			RetryInterval: cfg.RetryInterval,
			Logger:        logger,
		},
		TickInterval: cfg.TickInterval,
		Tolerance:    cfg.BoundaryTolerance,
	})

	// Create services (primary ports implementation)
	stockService = app.NewStockService(coordinator, snapshots, preferences, clock)
	preferenceService = app.NewPreferenceService(preferences)
}

func openStore(cfg *config.Config) (secondary.KeyValueStore, error) {
	if cfg.Storage == config.StorageRedis {
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		defer cancel()

		rdb, err := redisadapter.NewClient(ctx, cfg.RedisURL, retry.StoragePolicy)
		if err != nil {
			return nil, err
		}
		closers = append(closers, rdb)
		return redisadapter.NewKeyValueStore(rdb), nil
	}

	database, err := db.Open(db.PathIn(cfg.DataDir))
	if err != nil {
		return nil, err
	}
	closers = append(closers, database)
	return sqlite.NewKeyValueStore(database), nil
}

// StockAdapter returns a new StockAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func StockAdapter() *cliadapter.StockAdapter {
	return StockAdapterWithOutput(os.Stdout)
}

// StockAdapterWithOutput returns a new StockAdapter writing to the given output.
func StockAdapterWithOutput(out io.Writer) *cliadapter.StockAdapter {
	once.Do(initServices)
	return cliadapter.NewStockAdapter(stockService, out)
}

// PreferenceAdapter returns a new PreferenceAdapter writing to stdout.
func PreferenceAdapter() *cliadapter.PreferenceAdapter {
	once.Do(initServices)
	return cliadapter.NewPreferenceAdapter(preferenceService, os.Stdout)
}

// CatalogAdapter returns a new CatalogAdapter writing to stdout.
// It needs neither storage nor the network, so it skips initServices.
func CatalogAdapter() *cliadapter.CatalogAdapter {
	return cliadapter.NewCatalogAdapter(clockwork.NewRealClock(), os.Stdout)
}
