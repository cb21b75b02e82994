package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hotel-reservations/config"
	"hotel-reservations/controllers"
	"hotel-reservations/routes"
	"hotel-reservations/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	logger.Info("database connection established, migrations applied")

	cache := config.NewRedisClient(cfg, logger)

	// Services
	availabilitySvc := services.NewAvailabilityService(db, logger)
	guestSvc := services.NewGuestService(db, logger)
	roomTypeSvc := services.NewRoomTypeService(db)
	roomSvc := services.NewRoomService(db, availabilitySvc, cache,
		time.Duration(cfg.RoomCacheSeconds)*time.Second, logger)
	reservationSvc := services.NewReservationService(db, availabilitySvc, logger, cfg.ReservationDefaultStatus)
	paymentSvc := services.NewPaymentService(db, logger)

	// Controllers
	guestController := controllers.NewGuestController(guestSvc, logger)
	roomTypeController := controllers.NewRoomTypeController(roomTypeSvc, logger)
	roomController := controllers.NewRoomController(roomSvc, logger)
	reservationController := controllers.NewReservationController(reservationSvc, logger)
	paymentController := controllers.NewPaymentController(paymentSvc, logger)

	router := routes.SetupRouter(
		guestController,
		roomTypeController,
		roomController,
		reservationController,
		paymentController,
		cfg.CORSOriginList(),
		logger,
	)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// Graceful shutdown on interrupt; a request cut off mid-transaction
	// rolls back at the store, never half-commits.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}
