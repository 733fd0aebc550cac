// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"argeinventory/internal/cache"
	"argeinventory/internal/database"
	"argeinventory/internal/handlers"
	"argeinventory/internal/middleware"
	"argeinventory/internal/render"
	"argeinventory/internal/router"
	"argeinventory/internal/session"
	"argeinventory/internal/store"
)

// Login attempts allowed per client IP and window.
const (
	loginAttempts = 10
	loginWindow   = 15 * time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, db, err := loadAndConnect()
	if err != nil {
		return err
	}
	defer db.Close()

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"locale", cfg.Locale,
		"snapshot_ttl", cfg.SnapshotTTL,
	)

	if err := database.Migrate(db); err != nil {
		return err
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return err
		}
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return err
	}
	defer valkeyClient.Close()

	// Snapshots from a previous run belong to views that no longer exist.
	snapshots := cache.NewSnapshotCache(valkeyClient, cfg.SnapshotTTL)
	if n, err := snapshots.DropAll(cmd.Context()); err != nil {
		slog.Warn("dropping stale view snapshots failed", "error", err)
	} else if n > 0 {
		slog.Info("stale view snapshots dropped", "count", n)
	}

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		return fmt.Errorf("initialize template renderer: %w", err)
	}

	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)

	adminHandlers := handlers.NewAdmin(renderer, sessionStore, categoryStore, snapshots, cfg.Locale)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)

	loginLimiter := middleware.NewRateLimiter(loginAttempts, loginWindow)
	defer loginLimiter.Stop()

	r := router.New(sessionStore, adminHandlers, authHandlers, loginLimiter, secureCookies)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
