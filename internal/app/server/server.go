package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"ads-rule-builder/internal/api"
	"ads-rule-builder/internal/cache"
	"ads-rule-builder/internal/config"
	"ads-rule-builder/internal/rule"
	"ads-rule-builder/internal/session"
)

func Run(cfg config.Config) {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Rule constraints are swappable at runtime: the config watcher stores a
	// fresh value, handlers read the latest on every request.
	var constraints cache.Snapshot[rule.Constraints]
	constraints.Store(cfg.Constraints())
	config.Watch(func(c config.Config) {
		constraints.Store(c.Constraints())
	})

	reg := session.NewRegistry(cfg.SessionTTL())

	h := api.NewHandler(reg, func() rule.Constraints {
		c, ok := constraints.Load()
		if !ok {
			return rule.DefaultConstraints()
		}
		return c
	})
	r := api.Router(h)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background TTL eviction
	go reg.Sweep(rootCtx, cfg.SweepEvery())

	// Server goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server crashed")
		}
	}()

	// Wait for signal
	waitForSignal()
	log.Info().Msg("shutdown...")

	// Graceful shutdown
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	cancel() // stop background goroutines
	_ = srv.Shutdown(shCtx)
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
