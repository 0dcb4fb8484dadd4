package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shehryarbajwa/aidolon-browser-go/internal/api"
	"github.com/shehryarbajwa/aidolon-browser-go/internal/config"
	"github.com/shehryarbajwa/aidolon-browser-go/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	server, err := api.NewServer(api.Config{
		Tokens:        cfg.Mock.Tokens,
		RatePerMinute: cfg.Mock.RatePerMinute,
		RateBurst:     cfg.Mock.RateBurst,
		MaxSessions:   int64(cfg.Mock.MaxSessions),
		StorePath:     cfg.Mock.StorePath,
		Logger:        log,
	})
	if err != nil {
		log.Fatal("failed to create server", zap.Error(err))
	}
	defer server.Close()

	srv := &http.Server{
		Addr:         cfg.Mock.Addr,
		Handler:      server.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("mock server starting",
			zap.String("addr", cfg.Mock.Addr),
			zap.Int("rate_per_minute", cfg.Mock.RatePerMinute),
			zap.Int("max_sessions", cfg.Mock.MaxSessions),
			zap.Int("tokens", len(cfg.Mock.Tokens)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("server stopped cleanly")
}
