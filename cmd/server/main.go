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

	"acadverify/internal/config"
	"acadverify/internal/db"
	"acadverify/internal/handlers"
	"acadverify/internal/logger"
	"acadverify/internal/metrics"
	"acadverify/internal/recognize"
	"acadverify/internal/router"
	"acadverify/internal/store"
	"acadverify/internal/verify"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	certificates := store.NewCertificates(db.DB)
	verifications := store.NewVerifications(db.DB)

	api := handlers.NewAPI(
		cfg,
		log,
		verify.NewService(certificates),
		recognize.New(cfg.GoogleCredentials),
		verifications,
		metrics.New(),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.New(cfg, log, api),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
