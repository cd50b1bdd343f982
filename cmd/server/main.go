package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"qrgate/internal/auth"
	authhandler "qrgate/internal/auth/handler"
	"qrgate/internal/platform/config"
	"qrgate/internal/platform/health"
	"qrgate/internal/platform/logger"
	"qrgate/internal/platform/metrics"
	"qrgate/internal/qr"
	qrhandler "qrgate/internal/qr/handler"
	"qrgate/internal/token"
	httptransport "qrgate/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	log.Info("initializing qrgate",
		"addr", cfg.Addr,
		"token_algorithm", cfg.JWTAlgorithm,
		"token_ttl", cfg.TokenTTL.String(),
	)

	tokens, err := token.New(cfg.JWTSigningKey, cfg.JWTAlgorithm, cfg.TokenTTL)
	if err != nil {
		log.Error("invalid token configuration", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	creds := auth.NewCredentials(cfg.AuthUsername, cfg.AuthPassword, cfg.AuthPasswordHash)
	generator := qr.NewGenerator(qr.NewValidator(cfg.MaxDataLength), log, m, cfg.GenerationTimeout)

	router := httptransport.NewRouter(
		authhandler.New(creds, tokens, log, m),
		qrhandler.New(generator, log, qrhandler.Defaults{
			Size:            cfg.DefaultSize,
			Format:          cfg.DefaultFormat,
			ErrorCorrection: cfg.DefaultErrorCorrection,
		}),
		health.New(),
		token.NewVerifierAdapter(tokens),
		log,
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
