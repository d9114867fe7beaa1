package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"exchange-map-service/internal/adapter/cache"
	"exchange-map-service/internal/adapter/directory"
	httpRouter "exchange-map-service/internal/adapter/http"
	"exchange-map-service/internal/adapter/source"
	"exchange-map-service/internal/config"
	"exchange-map-service/internal/domain/ports"
	"exchange-map-service/internal/metrics"
	"exchange-map-service/internal/service"
	"exchange-map-service/pkg/logger"
)

func main() {
	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	log.Info("Starting exchange map service")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	log = logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)
	rateCache := cache.NewMemoryCache(cfg.Cache.TTL, log.With("component", "cache"), appMetrics)

	client := source.NewClient(cfg.Sources.Timeout, cfg.Sources.UserAgent, log.With("component", "source"), appMetrics)
	fetchers := []ports.RateFetcher{
		source.NewKantor1913Fetcher(cfg.Sources.Kantor1913URL, client, rateCache),
		source.NewShitcoinsFetcher(cfg.Sources.ShitcoinsURL, cfg.Sources.ShitcoinsReferer, client, rateCache),
	}

	resolver, err := service.NewResolver(service.DefaultRoutes(), fetchers, log.With("component", "resolver"), appMetrics)
	if err != nil {
		log.Error("Failed to build rate resolver", "error", err)
		os.Exit(1)
	}

	exchangeDirectory := directory.NewFileDirectory(cfg.Directory.Path, log.With("component", "directory"))
	exchangeService := service.NewExchangeService(exchangeDirectory, resolver, cfg.Server.ResolveConcurrency, log)
	handler := httpRouter.NewHandler(exchangeService, log, appMetrics)

	router := httpRouter.NewRouter(handler, log, appMetrics, cfg.Server.StaticDir)
	routes := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancelRefresh := context.WithCancel(context.Background())
	if cfg.Sources.RefreshRate > 0 {
		go refreshSources(ctx, resolver, cfg.Sources.RefreshRate, log)
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	cancelRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}

// refreshSources keeps the rate cache warm so map requests rarely wait on an
// upstream.
func refreshSources(ctx context.Context, resolver ports.RateResolver, interval time.Duration, log *logger.Logger) {
	if err := resolver.RefreshSources(ctx); err != nil {
		log.Error("Failed to refresh sources at startup", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := resolver.RefreshSources(ctx); err != nil {
				log.Error("Failed to refresh sources", "error", err)
			}
		case <-ctx.Done():
			log.Info("Stopping source refresh goroutine")
			return
		}
	}
}
