package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	appcli "github.com/hrcore/hrconsole/internal/cli"

	"github.com/hrcore/hrconsole/internal/authflow"
	"github.com/hrcore/hrconsole/internal/cache"
	"github.com/hrcore/hrconsole/internal/config"
	"github.com/hrcore/hrconsole/internal/httpclient"
	"github.com/hrcore/hrconsole/internal/permissions"
	"github.com/hrcore/hrconsole/internal/resource"
	"github.com/hrcore/hrconsole/internal/services"
	"github.com/hrcore/hrconsole/internal/session"
	logging "github.com/hrcore/hrconsole/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := logging.SetupLogger("logs/hrconsole.log", slog.LevelInfo)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	cfg, err := config.GetConfig(logger)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Log.File != "" {
		logger, err = logging.SetupLogger(cfg.Log.File, logging.ParseLevel(cfg.Log.Level))
		if err != nil {
			return fmt.Errorf("failed to setup logger: %w", err)
		}
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := session.NewStore(cfg.Auth.SessionFile, logger)
	if err := store.Load(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	registry := prometheus.NewRegistry()

	var backing cache.Store
	if cfg.Cache.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(cfg, logger)
		if err != nil {
			logger.Warn("Falling back to in-memory cache", slog.String("error", err.Error()))
			backing = cache.NewMemoryStore()
		} else {
			backing = redisStore
		}
	} else {
		backing = cache.NewMemoryStore()
	}

	queryCache := cache.New(backing, cfg.Cache.Staleness, logger, registry)
	defer queryCache.Close()

	client := httpclient.New(cfg.API.BaseURL, cfg.API.Timeout, store, logger, httpclient.NewMetrics(registry))
	client.OnUnauthorized(func() {
		fmt.Fprintln(os.Stderr, "Session expired, run `hrconsole login`.")
	})

	svc := services.NewServices(&services.Dependens{
		Client:  client,
		Session: store,
		Logger:  logger,
		Config:  cfg,
	})

	rt := resource.NewRuntime(queryCache, logger)
	defer rt.WaitForRefreshes()

	store.OnClear(func() {
		rt.Invalidate(context.WithoutCancel(ctx), resource.AllResources...)
	})

	profiles := resource.NewProfileHooks(rt, svc.ProfileService)

	app := &appcli.App{
		Config:   cfg,
		Session:  store,
		Services: svc,
		Runtime:  rt,
		Profiles: profiles,
		Feedback: resource.NewFeedbackHooks(rt, svc.FeedbackService),
		Absences: resource.NewAbsenceHooks(rt, svc.AbsenceService),
		Admin:    resource.NewAdminHooks(rt, svc.AdminService),
		Perms:    permissions.NewResolver(profiles, store, logger),
		Flow:     authflow.New(svc.AuthService, cfg.Auth.CallbackAddr, logger),
		Out:      os.Stdout,
	}

	return app.Command().Run(ctx, os.Args)
}
