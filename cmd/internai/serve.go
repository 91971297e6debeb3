package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/internai/internai/internal/cache"
	"github.com/internai/internai/internal/httpapi"
	"github.com/internai/internai/internal/scheduler"
	"github.com/internai/internai/internal/search"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Start the REST API and the cache sweeper; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Database.Driver, "error", err)
		return err
	}
	defer st.Close()

	if n, err := st.Seed(ctx); err != nil {
		logger.Warn("seeding sample postings failed", "error", err)
	} else if n > 0 {
		logger.Info("seeded sample postings", "count", n)
	}

	var local search.LocalSearcher = st
	svc, c, closeCache, err := setupSearch(ctx, cfg, local, logger)
	if err != nil {
		logger.Error("failed to set up cache", "backend", cfg.Cache.Backend, "error", err)
		return err
	}
	defer closeCache()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	api := httpapi.NewServer(
		svc,
		st,
		setupAdvisor(cfg, logger),
		setupNotifier(cfg, httpClient, logger),
		httpapi.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.TrustUserHeader),
		logger,
	)
	if cfg.Auth.JWTSecret == "" && !cfg.Auth.TrustUserHeader {
		logger.Warn("no JWT secret and user header not trusted: authenticated routes will reject every request")
	}

	sched := scheduler.NewScheduler(logger)
	if mem, ok := c.(*cache.Memory); ok {
		err := sched.AddTask("cache-sweep", cfg.Cache.SweepSchedule, func(context.Context) error {
			if n := mem.Sweep(); n > 0 {
				logger.Debug("evicted expired cache entries", "count", n, "remaining", mem.Len())
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr, "db", cfg.Database.Driver, "cache", cfg.Cache.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return sched.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	logger.Info("goodbye")
	return nil
}
