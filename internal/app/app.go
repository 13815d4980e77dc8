// Package app wires configuration into a ready-to-run scraper pipeline.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go-nextdoor-leads/internal/archive"
	"go-nextdoor-leads/internal/browser"
	"go-nextdoor-leads/internal/config"
	"go-nextdoor-leads/internal/database"
	"go-nextdoor-leads/internal/dispatch"
	"go-nextdoor-leads/internal/filter"
	"go-nextdoor-leads/internal/metrics"
	"go-nextdoor-leads/internal/runner"
	"go-nextdoor-leads/internal/scraper/nextdoor"
	"go-nextdoor-leads/internal/telegram"

	"github.com/charmbracelet/log"
)

type App struct {
	Config     *config.Config
	Metrics    *metrics.Metrics
	Sessions   *browser.FileStore
	Scraper    *nextdoor.Scraper
	Runner     *runner.Runner
	Repository *database.Repository
	Bot        *telegram.Bot
}

// SetupLogging applies the configured level to the default logger
func SetupLogging(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}))
}

// ScraperOptions maps the config onto the Nextdoor orchestrator options
func ScraperOptions(cfg *config.Config) nextdoor.Options {
	return nextdoor.Options{
		LoginURL: cfg.LoginURL,
		FeedURL:  cfg.FeedURL,
		Email:    cfg.LoginEmail,
		Password: cfg.LoginPassword,
		Selectors: nextdoor.Selectors{
			Email:    cfg.Selectors.Email,
			Password: cfg.Selectors.Password,
			Submit:   cfg.Selectors.Submit,
			Post:     cfg.Selectors.Post,
		},
		LoginFieldTimeout:     cfg.LoginFieldTimeout,
		NavigationTimeout:     cfg.NavigationTimeout,
		FeedNavigationTimeout: cfg.FeedNavigationTimeout,
		FeedContentTimeout:    cfg.FeedContentTimeout,
		ScreenshotDir:         cfg.ScreenshotDir,
	}
}

// Corpus returns the configured keywords, or the built-in corpus when none are set
func Corpus(cfg *config.Config) []string {
	if len(cfg.Keywords) > 0 {
		return cfg.Keywords
	}
	return filter.DefaultCorpus()
}

// New builds the pipeline. Postgres and Telegram are only wired when configured;
// a failure to reach either is an error so a misconfigured deploy fails fast.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		Config:   cfg,
		Metrics:  metrics.New(),
		Sessions: browser.NewFileStore(cfg.CookiesPath),
	}

	if !cfg.HasCredentials() {
		log.Warn("⚠️ No login credentials configured, runs will fail if the saved session is missing")
	}
	if cfg.WebhookURL == "" {
		log.Warn("⚠️ SCRAPER_N8N_WEBHOOK_URL is not set, matches will not be dispatched")
	}

	matcher := filter.NewMatcher(Corpus(cfg))
	log.Info("🔧 Config loaded", "keywords", matcher.Len(), "headless", cfg.Headless)

	a.Scraper = nextdoor.New(
		browser.NewPlaywright(cfg.Headless).WithUserAgent(cfg.UserAgent),
		a.Sessions,
		matcher,
		dispatch.New(cfg.WebhookURL, cfg.WebhookTimeout, a.Metrics),
		ScraperOptions(cfg),
		a.Metrics,
	)

	opts := []runner.Option{
		runner.WithMetrics(a.Metrics),
		runner.WithRunTimeout(cfg.RunTimeout),
		runner.WithArchiver(archive.NewFileArchiver(cfg.LogsDir)),
	}

	if cfg.DatabaseURL != "" {
		repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		a.Repository = repo
		opts = append(opts, runner.WithArchiver(repo))
		log.Info("🗄️ Postgres archive enabled")
	}

	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("telegram: %w", err)
		}
		a.Bot = bot
		opts = append(opts, runner.WithNotifier(bot))
		log.Info("🤖 Telegram Bot initialized.")
	}

	a.Runner = runner.New(a.Scraper, opts...)
	return a, nil
}

func (a *App) Close() {
	if a.Repository != nil {
		a.Repository.Close()
	}
}
