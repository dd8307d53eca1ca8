package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gestion-correos/internal/adapters/auth/jwtauth"
	pg "gestion-correos/internal/adapters/storage/postgres"
	rds "gestion-correos/internal/adapters/storage/redis"
	"gestion-correos/internal/config"
	"gestion-correos/internal/platform/logger"
	"gestion-correos/internal/platform/seed"
	"gestion-correos/internal/router"
)

// @title Gestión de Correos API
// @version 1.0
// @description Radicación, flujo y seguimiento de plazos de correspondencia oficial.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Logger:         log,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TendenciaMeses: cfg.TendenciaMeses,
	}

	if cfg.MemoryMode() {
		log.Info("storage", map[string]any{"mode": "memory"})
		if cfg.SeedEnabled {
			f, err := seed.Load(cfg.SeedFile)
			if err != nil {
				return err
			}
			opts.Seed = &f
		}
	} else {
		if cfg.DBMigrate {
			if err := pg.Migrate(cfg.DatabaseDSN); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		db, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer db.Close()
		opts.DB = db
		log.Info("storage", map[string]any{"mode": "postgres", "migrate": cfg.DBMigrate})
	}

	if cfg.RedisURL != "" {
		rdb, err := rds.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		opts.Redis = rdb
		log.Info("notificaciones leidas en redis", nil)
	}

	if cfg.DevAuth() {
		log.Warn("JWT_SECRET vacío: modo dev con headers X-Debug-User-ID / X-Debug-Role", nil)
	} else {
		opts.AuthVerifier = jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
