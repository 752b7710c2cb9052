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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stella-ai/edison/internal/config"
	"github.com/stella-ai/edison/internal/handler"
	"github.com/stella-ai/edison/internal/service/ai"
	"github.com/stella-ai/edison/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg.Server.LogLevel)

	store := chat.NewMemoryStore()

	var responder ai.Responder
	if cfg.AI.Enabled() {
		responder = ai.NewService(cfg.AI)
		log.Info().Str("model", cfg.AI.Model).Msg("completion provider configured")
		if cfg.AI.VectorStoreID != "" || cfg.AI.WorkflowID != "" {
			log.Info().
				Str("vector_store_id", cfg.AI.VectorStoreID).
				Str("workflow_id", cfg.AI.WorkflowID).
				Msg("provider workspace identifiers recognized")
		}
	} else {
		responder = ai.Placeholder{}
		log.Info().Msg("no provider key configured, replies use the placeholder responder")
	}

	router := handler.NewRouter(store, responder)

	startServer(ctx, cfg.Server, router)
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", serverCfg.Addr).Msg("edison listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
