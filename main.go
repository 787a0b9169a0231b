package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"guesthouse-backend/config"
	"guesthouse-backend/controllers"
	"guesthouse-backend/routes"
	"guesthouse-backend/services"
)

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	mailer := services.NewEmailService(cfg, db, log)
	reservationSvc := services.NewReservationService(db, cfg, mailer, log)
	contactSvc := services.NewContactService(db, mailer, log)
	reviewSvc := services.NewReviewService(db, log)

	router := routes.SetupRouter(
		cfg,
		log,
		controllers.NewReservationController(reservationSvc),
		controllers.NewContactController(contactSvc),
		controllers.NewReviewController(reviewSvc),
		controllers.NewEmailController(mailer),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
