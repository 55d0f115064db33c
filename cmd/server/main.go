package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voyago/travel-dashboard/internal/api"
	"github.com/voyago/travel-dashboard/internal/cache"
	"github.com/voyago/travel-dashboard/internal/config"
	"github.com/voyago/travel-dashboard/internal/query"
	"github.com/voyago/travel-dashboard/internal/travel"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx := context.Background()

	redisClient, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	// Wire dependencies.
	places := travel.NewPlacesClient(cfg.GeoapifyKey)
	clients := query.Clients{
		Location: travel.NewCountryClient(),
		Geo:      travel.NewGeocodeClient(cfg.GeoapifyKey, log),
		Weather:  travel.NewWeatherClient(),
		Currency: travel.NewCurrencyClient(cfg.CurrencyRatesURL),
		Flights:  travel.NewFlightsClient(cfg.AviationStackKey),
		Places:   places,
		Details:  places,
		Photos:   travel.NewPhotoClient(cfg.PexelsKey),
	}

	orchestrator := query.New(clients, log)
	viewCache := cache.NewCache(redisClient)
	handlers := api.NewHandlers(orchestrator, viewCache, log)

	redisPinger := &redisPingerAdapter{client: redisClient}
	router := api.NewRouter(handlers, cfg.BearerToken, redisPinger, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// redisPingerAdapter adapts redis.Client to the api health check interface.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
