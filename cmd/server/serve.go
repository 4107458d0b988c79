package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/admin"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/api"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/cache"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/middleware"
	h "github.com/aaronsummercloud/recipe-api-project/internal/server/net/http"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/repository"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/service"
)

// как часто чистим просроченные токены и простаивающие лимитеры
const cleanupInterval = 10 * time.Minute

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP-сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *configPath)
		},
	}
}

func serve(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}
	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, httpLogger, db, err := bootstrap(ctx, configPath)
	if err != nil {
		return err
	}
	sugar := httpLogger.Logger.Sugar()
	defer func() {
		_ = db.Close()
		_ = httpLogger.Sync()
	}()

	checks := map[string]api.HealthChecker{
		"db": repository.NewHealthRepository(db),
	}

	// кэш токенов необязателен: без него каждый запрос идёт в БД
	var tokenCache service.TokenCache
	if cfg.Cache.Enabled {
		c, err := cache.New(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
		if err != nil {
			return err
		}
		defer c.Close()
		tokenCache = c
		checks["redis"] = c
		sugar.Info("token cache enabled")
	}

	// создаём репы
	repos := service.Repositories{
		Users:   repository.NewUsersRepository(db),
		Tokens:  repository.NewTokensRepository(db),
		Recipes: repository.NewRecipesRepository(db),
	}
	svc, err := service.NewServices(repos, tokenCache, cfg)
	if err != nil {
		return err
	}

	adminHandler, err := admin.NewHandler(svc.Auth, svc.Users, httpLogger, admin.Options{
		CookieName:   cfg.Auth.Admin.CookieName,
		SecureCookie: cfg.Auth.Admin.SecureCookie || cfg.TLS.Enabled,
		SessionTTL:   cfg.Auth.Admin.SessionTTL,
	})
	if err != nil {
		return err
	}

	var limiter *middleware.IPRateLimiter
	if cfg.Security.RateLimit.Enabled {
		limiter = middleware.NewIPRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst)
	}

	handler := api.NewHandler(svc, httpLogger, checks, cfg.Server.MaxBodyBytes)
	router := h.NewRouter(handler, h.Options{
		Admin:      adminHandler.Routes(),
		Limiter:    limiter,
		TrustProxy: cfg.Server.TrustProxy,
		CORS:       cfg.Security.CORS,
		Metrics:    cfg.Observability.Metrics,
		Pprof:      cfg.Observability.Pprof,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: cfg.TLS.MinTLSVersion()}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infow("server started", "addr", server.Addr, "tls", cfg.TLS.Enabled, "env", cfg.Env)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// периодическая уборка
	g.Go(func() error {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := svc.Auth.PurgeExpired(ctx)
				if err != nil && ctx.Err() == nil {
					sugar.Warnw("purge expired tokens failed", "error", err)
				} else if n > 0 {
					sugar.Infow("expired tokens purged", "count", n)
				}
				if limiter != nil {
					limiter.Cleanup()
				}
			}
		}
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Errorw("server stopped with error", "error", err)
		return err
	}
	sugar.Info("server gracefully stopped")
	return nil
}
