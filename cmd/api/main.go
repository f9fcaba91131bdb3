package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bizdash/import-service/internal/bootstrap"
	"github.com/bizdash/import-service/internal/config"
	"github.com/bizdash/import-service/internal/logging"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	app, err := bootstrap.NewApp(context.Background(), cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to wire application")
	}
	defer app.Close()

	server := bootstrap.NewHTTPServer(app)

	go func() {
		logger.WithField("port", cfg.Port).Info("import service listening")
		if err := server.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("graceful shutdown failed")
	}
}
