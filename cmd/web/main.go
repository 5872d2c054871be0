package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"eatlocal.org/eatlocal-web/internal/config"
	"eatlocal.org/eatlocal-web/internal/content"
	"eatlocal.org/eatlocal-web/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Flags override the environment for local runs.
	flag.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "HTTP listen port")
	flag.StringVar(&cfg.Server.TemplatesDir, "templates", cfg.Server.TemplatesDir, "templates directory")
	flag.StringVar(&cfg.Server.PublicDir, "public", cfg.Server.PublicDir, "public assets directory")
	flag.StringVar(&cfg.Content.Dir, "content", cfg.Content.Dir, "restaurant content directory")
	flag.BoolVar(&cfg.Server.DevMode, "dev", cfg.Server.DevMode, "reparse templates on every request")
	flag.Parse()

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	store := content.NewStore(cfg.Content.Dir,
		content.WithCacheTTL(cfg.Content.CacheTTL),
		content.WithLogger(logger.Named("content")),
	)

	app, err := newServer(cfg, store, logger)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           app.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	logger.Info("web listening",
		zap.String("addr", srv.Addr),
		zap.Bool("dev_mode", cfg.Server.DevMode),
		zap.String("content_dir", store.Dir()),
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
