package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xtding233/arena-odds/internal/api"
	"github.com/xtding233/arena-odds/internal/card"
	"github.com/xtding233/arena-odds/internal/config"
	"github.com/xtding233/arena-odds/internal/logger"
	"github.com/xtding233/arena-odds/internal/rules"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.Init(cfg.LogLevel)

	ruleLoader := rules.NewLoader(cfg.DataDir)
	// fail fast on a broken ruleset instead of on the first request
	if _, err := ruleLoader.Load(cfg.Ruleset); err != nil {
		log.Error("invalid rules", "ruleset", cfg.Ruleset, "error", err)
		os.Exit(1)
	}

	if cfg.WatchRules {
		w, err := rules.NewWatcher(ruleLoader.Paths().Dir(), func(path string) {
			ruleLoader.Invalidate()
			if _, err := ruleLoader.Load(cfg.Ruleset); err != nil {
				log.Warn("reloaded rules are invalid", "path", path, "error", err)
				return
			}
			log.Info("rules reloaded", "path", path)
		})
		if err != nil {
			log.Warn("rules watcher disabled", "dir", ruleLoader.Paths().Dir(), "error", err)
		} else {
			w.Start()
			defer w.Stop()
		}
	}

	cards := card.NewDraftableCache(card.CatalogLoader(card.Paths{BaseDir: cfg.DataDir}))
	svc := api.NewService(cards, ruleLoader, cfg.Locale, cfg.Ruleset, cfg.RNGSeed)
	srv := api.NewServer(svc, api.Options{
		Logger:            log,
		CrossvalMaxTrials: cfg.CrossvalMaxTrials,
		CrossvalRate:      cfg.CrossvalRate,
		CrossvalBurst:     cfg.CrossvalBurst,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", "addr", cfg.HTTPAddr, "ruleset", cfg.Ruleset, "locale", cfg.Locale)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
