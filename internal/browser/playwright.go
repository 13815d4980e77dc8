package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"
)

// Session is one browser process with a single page. Close releases all of it.
type Session interface {
	Page() Page
	Close() error
}

// Launcher starts a fresh browser session.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// PlaywrightManager launches headless Chromium through playwright.
type PlaywrightManager struct {
	headless    bool
	typingDelay time.Duration
	userAgent   string
}

func NewPlaywright(headless bool) *PlaywrightManager {
	return &PlaywrightManager{
		headless:    headless,
		typingDelay: 50 * time.Millisecond,
	}
}

// WithUserAgent overrides the browser user agent
func (pm *PlaywrightManager) WithUserAgent(ua string) *PlaywrightManager {
	pm.userAgent = ua
	return pm
}

// Launch starts playwright, a browser, a context and one page.
// Anything started before a failure is torn down before returning.
func (pm *PlaywrightManager) Launch(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(pm.headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	opts := playwright.BrowserNewContextOptions{}
	if pm.userAgent != "" {
		opts.UserAgent = playwright.String(pm.userAgent)
	}
	browserCtx, err := browser.NewContext(opts)
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	log.Info("✅ Browser initialized", "headless", pm.headless)
	return &playwrightSession{
		pw:         pw,
		browser:    browser,
		browserCtx: browserCtx,
		page:       WrapPage(page, pm.typingDelay),
	}, nil
}

type playwrightSession struct {
	pw         *playwright.Playwright
	browser    playwright.Browser
	browserCtx playwright.BrowserContext
	page       Page
}

func (s *playwrightSession) Page() Page {
	return s.page
}

// Close shuts down context, browser and driver, reporting every failure
func (s *playwrightSession) Close() error {
	err := errors.Join(
		s.browserCtx.Close(),
		s.browser.Close(),
		s.pw.Stop(),
	)
	if err != nil {
		log.Warn("⚠️ Browser did not close cleanly", "err", err)
		return err
	}
	log.Info("🧹 Browser closed")
	return nil
}
