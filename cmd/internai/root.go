package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/internai/internai/internal/adapter"
	"github.com/internai/internai/internal/ai"
	"github.com/internai/internai/internal/cache"
	"github.com/internai/internai/internal/config"
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/notifier"
	"github.com/internai/internai/internal/ratelimit"
	"github.com/internai/internai/internal/retry"
	"github.com/internai/internai/internal/search"
	"github.com/internai/internai/internal/store"
)

const upstreamName = "jsearch"

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "internai",
	Short: "Internship search and AI career guidance for students",
	Long:  "InternAI serves live internship listings, skill-based eligibility reports and curated learning resources.",
	// Default to `serve` so that `internai` with no args runs the API.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: "+config.EnvConfigPath+" env var, then ./config.yaml, else environment only)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig reads .env, then the config file if one was given.
// Priority: --config flag > INTERNAI_CONFIG env var > ./config.yaml > environment only.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	return config.Load(config.ResolvePath(path))
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// silentLogger is for the TUI and the stdio MCP server, where any log output
// would corrupt the display or the protocol stream.
func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// setupUpstream returns the live job searcher and the source name results
// carry. Without an API key the fixed mock listings are served.
func setupUpstream(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (model.JobSearcher, string) {
	if cfg.Jobs.APIKey == "" {
		logger.Warn("RAPIDAPI_KEY not set, serving mock listings")
		return adapter.NewMockSource(), model.SourceMock
	}
	var s model.JobSearcher = adapter.NewJSearchAdapter(cfg.Jobs.BaseURL, cfg.Jobs.APIKey, httpClient)
	limiter := ratelimit.NewUpstreamLimiter(cfg.Jobs.RateInterval, cfg.Jobs.RateBurst)
	s = ratelimit.NewSearcher(s, limiter, upstreamName)
	s = retry.NewSearcher(s, cfg.Jobs.MaxRetries, cfg.Jobs.RetryDelay, logger)
	logger.Info("live search configured", "upstream", upstreamName, "retries", cfg.Jobs.MaxRetries)
	return s, model.SourceLive
}

// setupCache returns the configured cache and a func releasing it.
func setupCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Cache, func() error, error) {
	if cfg.Cache.Backend == "redis" {
		client, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis cache", "ttl", cfg.Cache.TTL.String())
		return cache.NewRedis(client, cfg.Cache.TTL), client.Close, nil
	}
	return cache.NewMemory(cfg.Cache.TTL), func() error { return nil }, nil
}

func setupAdvisor(cfg *config.Config, logger *slog.Logger) *ai.Advisor {
	if cfg.AI.APIKey == "" {
		logger.Warn("GROQ_API_KEY not set, AI endpoints will report a configuration error")
		return ai.NewAdvisor(ai.NewUnconfiguredProvider(), logger)
	}
	client := &http.Client{Timeout: cfg.AI.Timeout}
	return ai.NewAdvisor(ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, client), logger)
}

// setupSearch builds the live search pipeline. local may be nil, and is
// ignored when fallback is disabled.
func setupSearch(ctx context.Context, cfg *config.Config, local search.LocalSearcher, logger *slog.Logger) (*search.Service, cache.Cache, func() error, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	upstream, source := setupUpstream(cfg, httpClient, logger)
	c, closeCache, err := setupCache(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if !cfg.Jobs.Fallback {
		local = nil
	}
	return search.NewService(upstream, source, c, local, logger), c, closeCache, nil
}

// openStore opens the configured database. Callers must Close it.
func openStore(ctx context.Context, cfg *config.Config) (*store.SQLStore, error) {
	return store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
}
