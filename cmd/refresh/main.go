// Command refresh performs a one-shot rate refresh for cron or operator
// use. Exits 0 when at least one rate was stored, 1 on total failure.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"worldrates/internal/adapters/cache"
	"worldrates/internal/adapters/httpclient"
	"worldrates/internal/adapters/postgres"
	"worldrates/internal/config"
	"worldrates/internal/platform/db"
	"worldrates/internal/rate"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run())
}

func run() int {
	logrus.SetOutput(os.Stdout)

	appCfg, err := config.Init()
	if err != nil {
		logrus.WithError(err).Error("Config initialization failed")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err = db.Migrate(runCtx, appCfg.DbServer.GetConnectionStr()); err != nil {
		logrus.WithError(err).Error("Failed to apply migrations")
		return 1
	}

	pool, err := db.CreatePoolAndPing(runCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Failed to connect to db")
		return 1
	}
	defer pool.Close()

	// A one-shot run gains nothing from redis; a small local cache keeps
	// the resolver wiring uniform.
	rateCache, err := cache.NewRistrettoRateCache(1024)
	if err != nil {
		logrus.WithError(err).Error("Failed to create cache")
		return 1
	}
	defer rateCache.Close()

	httpTimeout := time.Duration(appCfg.Provider.TimeoutSeconds) * time.Second
	providerClient := httpclient.NewRatesAPIClient(
		&http.Client{Timeout: httpTimeout},
		strings.TrimSuffix(appCfg.Provider.BaseURL, "/"),
	)

	resolver := rate.NewResolver(
		postgres.NewRateStore(pool),
		rateCache,
		providerClient,
		postgres.NewCurrencyDirectory(pool),
		rate.ResolverConfig{
			BaseCurrency: appCfg.Rates.BaseCurrency,
			CacheTTL:     appCfg.Cache.TTL(),
		},
	)

	execID := uuid.NewString()
	fulfilled, err := rate.RefreshRates(runCtx, execID, resolver, appCfg.Rates.DefaultTargets)
	if err != nil {
		logrus.WithError(err).Errorf("Refresh %s failed", execID)
		return 1
	}
	if fulfilled == 0 {
		logrus.Errorf("Refresh %s stored no rates", execID)
		return 1
	}
	return 0
}
