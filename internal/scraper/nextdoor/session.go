package nextdoor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-nextdoor-leads/internal/browser"
	"go-nextdoor-leads/internal/scraper"

	"github.com/charmbracelet/log"
)

// SessionStore persists the authenticated cookies between runs.
type SessionStore interface {
	Load() ([]browser.Cookie, bool)
	Save(cookies []browser.Cookie) error
}

// Options configures one Nextdoor scraper.
type Options struct {
	LoginURL string
	FeedURL  string
	Email    string
	Password string

	Selectors Selectors

	LoginFieldTimeout     time.Duration
	NavigationTimeout     time.Duration
	FeedNavigationTimeout time.Duration
	FeedContentTimeout    time.Duration

	// ScreenshotDir enables feed and failure screenshots when set
	ScreenshotDir string
}

func (o Options) withDefaults() Options {
	if o.LoginURL == "" {
		o.LoginURL = LoginURL
	}
	if o.FeedURL == "" {
		o.FeedURL = FeedURL
	}
	o.Selectors = o.Selectors.orDefault()
	if o.LoginFieldTimeout <= 0 {
		o.LoginFieldTimeout = 60 * time.Second
	}
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = 60 * time.Second
	}
	if o.FeedNavigationTimeout <= 0 {
		o.FeedNavigationTimeout = 120 * time.Second
	}
	if o.FeedContentTimeout <= 0 {
		o.FeedContentTimeout = 200 * time.Second
	}
	return o
}

// SessionController gets a page from "fresh" to "feed rendered":
// restore cookies or log in, open the feed, wait for posts.
type SessionController struct {
	store SessionStore
	opts  Options
}

func NewSessionController(store SessionStore, opts Options) *SessionController {
	return &SessionController{
		store: store,
		opts:  opts.withDefaults(),
	}
}

// AcquireSession leaves page on the feed with at least one post visible.
// Saved cookies are trusted as-is; an expired session shows up as ErrFeedContentTimeout.
func (c *SessionController) AcquireSession(ctx context.Context, page browser.Page) error {
	if cookies, ok := c.store.Load(); ok {
		if err := page.AddCookies(cookies); err != nil {
			return fmt.Errorf("%w: restoring cookies: %w", scraper.ErrLoginFailed, err)
		}
		log.Info("🍪 Session restored from cookies", "count", len(cookies))
	} else {
		if err := c.login(ctx, page); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("🌍 Navigating to feed...", "url", c.opts.FeedURL)
	feedStart := time.Now()
	if err := page.Goto(c.opts.FeedURL, c.opts.FeedNavigationTimeout); err != nil {
		return classify(scraper.ErrNavigationTimeout, scraper.ErrNavigationFailed, "opening feed", err)
	}
	log.Info("✅ Arrived at feed", "elapsed", time.Since(feedStart).Round(time.Millisecond))

	if err := ctx.Err(); err != nil {
		return err
	}

	log.Info("⏳ Waiting for posts to load...")
	if err := page.WaitVisible(c.opts.Selectors.Post, c.opts.FeedContentTimeout); err != nil {
		return classify(scraper.ErrFeedContentTimeout, scraper.ErrNavigationFailed, "waiting for posts", err)
	}
	return nil
}

// login fills the form and saves the resulting cookies exactly once
func (c *SessionController) login(ctx context.Context, page browser.Page) error {
	if c.opts.Email == "" || c.opts.Password == "" {
		return fmt.Errorf("%w: no saved session and no credentials configured", scraper.ErrLoginFailed)
	}
	log.Info("🔐 Logging into Nextdoor...")

	sel := c.opts.Selectors
	steps := []struct {
		stage string
		run   func() error
	}{
		{"opening login page", func() error { return page.Goto(c.opts.LoginURL, c.opts.NavigationTimeout) }},
		{"waiting for email field", func() error { return page.WaitVisible(sel.Email, c.opts.LoginFieldTimeout) }},
		{"typing email", func() error { return page.Type(sel.Email, c.opts.Email) }},
		{"waiting for password field", func() error { return page.WaitVisible(sel.Password, c.opts.LoginFieldTimeout) }},
		{"typing password", func() error { return page.Type(sel.Password, c.opts.Password) }},
		{"submitting login", func() error { return page.ClickAndWaitForNavigation(sel.Submit, c.opts.NavigationTimeout) }},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.run(); err != nil {
			return classify(scraper.ErrLoginTimeout, scraper.ErrLoginFailed, step.stage, err)
		}
	}

	cookies, err := page.Cookies()
	if err != nil {
		return fmt.Errorf("%w: reading cookies: %w", scraper.ErrLoginFailed, err)
	}
	log.Info("✅ Login successful. Saving cookies...")
	if err := c.store.Save(cookies); err != nil {
		// The session is still good for this run; only the next run pays for it.
		log.Error("❌ Failed to save cookies", "err", err)
	}
	return nil
}

// classify tags err with timeoutKind when a bounded wait expired, otherwise with otherKind
func classify(timeoutKind, otherKind error, stage string, err error) error {
	if errors.Is(err, browser.ErrTimeout) {
		return fmt.Errorf("%w: %s: %w", timeoutKind, stage, err)
	}
	return fmt.Errorf("%w: %s: %w", otherKind, stage, err)
}
