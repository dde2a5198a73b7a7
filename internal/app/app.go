package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"worldrates/internal/adapters"
	"worldrates/internal/adapters/cache"
	"worldrates/internal/adapters/httpclient"
	"worldrates/internal/adapters/postgres"
	"worldrates/internal/api"
	"worldrates/internal/config"
	"worldrates/internal/platform/db"
	httpserver "worldrates/internal/platform/http"
	"worldrates/internal/rate"
	"worldrates/internal/rate/handler"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts the HTTP server and the
// refresh scheduler.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}

	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (migrations, DB connect)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Schema
	if err = db.Migrate(startupCtx, appCfg.DbServer.GetConnectionStr()); err != nil {
		logrus.WithError(err).Error("Error applying migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Cache backend, chosen explicitly by configuration
	rateCache, closeCache, err := buildCache(startupCtx, appCfg.Cache)
	if err != nil {
		logrus.WithError(err).Error("Error creating rate cache")
		return err
	}
	defer closeCache()
	logrus.Infof("✅ Rate cache ready (%s)", appCfg.Cache.Backend)

	// Provider client (configurable timeout)
	httpTimeout := time.Duration(appCfg.Provider.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	providerClient := httpclient.NewRatesAPIClient(
		&http.Client{Timeout: httpTimeout},
		strings.TrimSuffix(appCfg.Provider.BaseURL, "/"),
	)

	// Store, directory, resolver
	store := postgres.NewRateStore(pool)
	directory := postgres.NewCurrencyDirectory(pool)
	resolver := rate.NewResolver(store, rateCache, providerClient, directory, rate.ResolverConfig{
		BaseCurrency: appCfg.Rates.BaseCurrency,
		CacheTTL:     appCfg.Cache.TTL(),
	})

	// Scheduler
	scheduler := rate.NewScheduler(resolver, appCfg.Rates.DefaultTargets,
		time.Duration(appCfg.Rates.RefreshIntervalSec)*time.Second)
	// Ensure scheduler stops before the DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	rateHandler := handler.NewRateHandler(rate.NewValidator(), resolver, directory)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func buildCache(ctx context.Context, cfg config.Cache) (adapters.RateCache, func(), error) {
	switch cfg.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return cache.NewRedisRateCache(client), func() { _ = client.Close() }, nil
	case "", "memory":
		c, err := cache.NewRistrettoRateCache(cfg.MaxItems)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
