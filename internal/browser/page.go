package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ErrTimeout is wrapped into every error caused by a bounded wait expiring.
var ErrTimeout = errors.New("timeout")

// Page is the slice of a browser tab the feed scraper drives.
// All waits are bounded by the timeout passed in.
type Page interface {
	Goto(url string, timeout time.Duration) error
	WaitVisible(selector string, timeout time.Duration) error
	Type(selector, text string) error
	ClickAndWaitForNavigation(selector string, timeout time.Duration) error
	Cookies() ([]Cookie, error)
	AddCookies(cookies []Cookie) error
	InnerTexts(selector string) ([]string, error)
	Screenshot(path string) error
}

type playwrightPage struct {
	page        playwright.Page
	typingDelay time.Duration
}

// WrapPage adapts a playwright page. typingDelay is the pause between keystrokes.
func WrapPage(page playwright.Page, typingDelay time.Duration) Page {
	return &playwrightPage{page: page, typingDelay: typingDelay}
}

func (p *playwrightPage) Goto(url string, timeout time.Duration) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   millis(timeout),
	})
	return translate(err)
}

// WaitVisible waits until the first element matching selector is visible
func (p *playwrightPage) WaitVisible(selector string, timeout time.Duration) error {
	err := p.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: millis(timeout),
	})
	return translate(err)
}

func (p *playwrightPage) Type(selector, text string) error {
	RandomDelay(100, 300)
	err := p.page.Locator(selector).First().PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(float64(p.typingDelay.Milliseconds())),
	})
	return translate(err)
}

func (p *playwrightPage) ClickAndWaitForNavigation(selector string, timeout time.Duration) error {
	_, err := p.page.ExpectNavigation(func() error {
		return p.page.Locator(selector).First().Click()
	}, playwright.PageExpectNavigationOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   millis(timeout),
	})
	return translate(err)
}

func (p *playwrightPage) Cookies() ([]Cookie, error) {
	pwCookies, err := p.page.Context().Cookies()
	if err != nil {
		return nil, fmt.Errorf("failed to read browser cookies: %w", err)
	}
	cookies := make([]Cookie, len(pwCookies))
	for i, c := range pwCookies {
		cookies[i] = CookieFromPlaywright(c)
	}
	return cookies, nil
}

func (p *playwrightPage) AddCookies(cookies []Cookie) error {
	pwCookies := make([]playwright.OptionalCookie, len(cookies))
	for i, c := range cookies {
		pwCookies[i] = c.ToPlaywright()
	}
	if err := p.page.Context().AddCookies(pwCookies); err != nil {
		return fmt.Errorf("failed to add cookies: %w", err)
	}
	return nil
}

func (p *playwrightPage) InnerTexts(selector string) ([]string, error) {
	texts, err := p.page.Locator(selector).AllInnerTexts()
	return texts, translate(err)
}

func (p *playwrightPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

// translate tags playwright timeouts with ErrTimeout so callers need not import playwright
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
