package nextdoor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-nextdoor-leads/internal/browser"
	"go-nextdoor-leads/internal/scraper"
)

// trace records the order of side effects across the fake page and store
type trace struct {
	mu     sync.Mutex
	events []string
}

func (t *trace) add(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, fmt.Sprintf(format, args...))
}

func (t *trace) list() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.events...)
}

type fakePage struct {
	trace *trace

	gotoErrs   map[string]error
	waitErrs   map[string]error
	clickErr   error
	cookies    []browser.Cookie
	cookiesErr error
	added      []browser.Cookie
	posts      []string
	postsErr   error
	waits      map[string]time.Duration
}

func newFakePage(tr *trace) *fakePage {
	return &fakePage{
		trace:    tr,
		gotoErrs: map[string]error{},
		waitErrs: map[string]error{},
		waits:    map[string]time.Duration{},
	}
}

func (p *fakePage) Goto(url string, timeout time.Duration) error {
	p.trace.add("goto %s", url)
	return p.gotoErrs[url]
}

func (p *fakePage) WaitVisible(selector string, timeout time.Duration) error {
	p.trace.add("wait %s", selector)
	p.waits[selector] = timeout
	return p.waitErrs[selector]
}

func (p *fakePage) Type(selector, text string) error {
	p.trace.add("type %s %s", selector, text)
	return nil
}

func (p *fakePage) ClickAndWaitForNavigation(selector string, timeout time.Duration) error {
	p.trace.add("click %s", selector)
	return p.clickErr
}

func (p *fakePage) Cookies() ([]browser.Cookie, error) {
	return p.cookies, p.cookiesErr
}

func (p *fakePage) AddCookies(cookies []browser.Cookie) error {
	p.trace.add("add-cookies %d", len(cookies))
	p.added = cookies
	return nil
}

func (p *fakePage) InnerTexts(selector string) ([]string, error) {
	p.trace.add("extract %s", selector)
	return p.posts, p.postsErr
}

func (p *fakePage) Screenshot(path string) error {
	return nil
}

type fakeStore struct {
	trace   *trace
	cookies []browser.Cookie
	present bool
	saved   [][]browser.Cookie
	saveErr error
}

func (s *fakeStore) Load() ([]browser.Cookie, bool) {
	s.trace.add("load")
	return s.cookies, s.present
}

func (s *fakeStore) Save(cookies []browser.Cookie) error {
	s.trace.add("save %d", len(cookies))
	s.saved = append(s.saved, cookies)
	return s.saveErr
}

type fakeSession struct {
	page   browser.Page
	mu     sync.Mutex
	closed int
}

func (s *fakeSession) Page() browser.Page { return s.page }

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *fakeSession) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type fakeLauncher struct {
	session *fakeSession
	err     error
	// block, when set, holds Launch until it is closed
	block   chan struct{}
	started chan struct{}
}

func (l *fakeLauncher) Launch(ctx context.Context) (browser.Session, error) {
	if l.started != nil {
		close(l.started)
	}
	if l.block != nil {
		<-l.block
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.session, nil
}

type recordingDispatcher struct {
	mu      sync.Mutex
	matches []scraper.Match
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, match scraper.Match) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.matches = append(d.matches, match)
}

func timeoutErr(what string) error {
	return fmt.Errorf("%w: %s exceeded", browser.ErrTimeout, what)
}

func testOptions() Options {
	return Options{
		LoginURL:              "https://nextdoor.test/login/",
		FeedURL:               "https://nextdoor.test/news_feed/",
		Email:                 "me@example.com",
		Password:              "hunter2",
		LoginFieldTimeout:     time.Second,
		NavigationTimeout:     2 * time.Second,
		FeedNavigationTimeout: 3 * time.Second,
		FeedContentTimeout:    4 * time.Second,
	}
}

func savedCookies() []browser.Cookie {
	return []browser.Cookie{{Name: "ndbr_at", Value: "tok", Domain: ".nextdoor.test", Path: "/"}}
}
