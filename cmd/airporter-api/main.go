// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"airporter/internal/config"
	httptransport "airporter/internal/http"
	"airporter/internal/infra"
	"airporter/internal/maps"
	"airporter/internal/modules/booking"
	"airporter/internal/modules/matching"
	"airporter/internal/modules/pricing"
	"airporter/internal/modules/wizard"
	"airporter/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(os.Getenv("AIRPORTER_ENV"))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("postgres init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	mapsClient, err := maps.NewMapsClient(cfg.Maps.APIKey)
	if err != nil {
		logger.Fatal("maps init", zap.Error(err))
	}
	geocoder := maps.NewGeocoder(mapsClient, cfg.Maps.RequestTimeout, logger)
	routeSvc := maps.NewRouteService(mapsClient, cfg.Maps.RequestTimeout, logger)

	pricingStore := pricing.NewStore(dbPool)
	pricingSvc := pricing.NewService(pricingStore, logger)

	matchingStore := matching.NewStore(dbPool)
	matchingSvc := matching.NewService(matchingStore, pricingSvc, cfg.Matching, logger)

	publisher := notify.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	defer func() { _ = publisher.Close() }()

	bookingStore := booking.NewStore(dbPool)
	bookingSvc := booking.NewService(bookingStore, publisher, booking.RetryPolicy{
		MaxAttempts:    cfg.Submit.MaxAttempts,
		InitialBackoff: cfg.Submit.InitialBackoff,
	}, logger)

	snapshots := wizard.NewRedisSnapshotStore(redisClient, cfg.Redis.SnapshotTTL)
	wizardSvc := wizard.NewService(snapshots, geocoder, routeSvc, matchingSvc, bookingSvc, logger)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(wizardSvc, logger),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", zap.Error(err))
	}
}
