package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kitchen-orders/internal/config"
	"kitchen-orders/internal/db"
	"kitchen-orders/internal/events"
	"kitchen-orders/internal/httpserver"
	"kitchen-orders/internal/ordercode"
	catalogrepo "kitchen-orders/internal/repository/catalog"
	orderrepo "kitchen-orders/internal/repository/order"
	slotrepo "kitchen-orders/internal/repository/slot"
	menusvc "kitchen-orders/internal/service/menu"
	ordersvc "kitchen-orders/internal/service/order"
	pickupsvc "kitchen-orders/internal/service/pickup"
	pricingsvc "kitchen-orders/internal/service/pricing"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	catalogRepo := catalogrepo.NewPostgres(dbpool, logger)
	slotRepo := slotrepo.NewPostgres(dbpool, logger)
	ordersRepo := orderrepo.NewPostgres(dbpool, logger)

	loc := cfg.Location()
	menuService := menusvc.New(catalogRepo)
	pricingService := pricingsvc.New(catalogRepo, cfg.TaxRate, cfg.ValidateAddons)
	pickupService := pickupsvc.New(slotRepo, cfg.RequireFutureMinutes, cfg.StrictDayMatch, loc)
	codes := ordercode.New(cfg.OrderCodePrefix, nil)

	var publisher *events.Publisher
	var eventSink ordersvc.EventPublisher
	if cfg.AMQPURL != "" {
		publisher, err = events.Dial(cfg.AMQPURL, logger)
		if err != nil {
			logger.Fatalf("connect to amqp: %v", err)
		}
		defer publisher.Close()
		eventSink = publisher
	}

	orderService := ordersvc.New(ordersRepo, slotRepo, pricingService, pickupService, codes, eventSink, loc, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		MenuSvc:     menuService,
		PickupSvc:   pickupService,
		PricingSvc:  pricingService,
		OrderSvc:    orderService,
		AdminAPIKey: cfg.AdminAPIKey,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
