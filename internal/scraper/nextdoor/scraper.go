// Launch a browser
// Restore the session or log in, open the feed
// Extract posts, match keywords, dispatch leads
// Return matches; always close the browser

package nextdoor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-nextdoor-leads/internal/browser"
	"go-nextdoor-leads/internal/metrics"
	"go-nextdoor-leads/internal/scraper"
	"go-nextdoor-leads/utils"

	"github.com/charmbracelet/log"
)

var timeNow = time.Now

// State is where a run currently is.
type State int

const (
	StateIdle State = iota
	StateLaunching
	StateSessionAcquiring
	StateExtracting
	StateMatchingDispatching
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLaunching:
		return "launching"
	case StateSessionAcquiring:
		return "session_acquiring"
	case StateExtracting:
		return "extracting"
	case StateMatchingDispatching:
		return "matching_dispatching"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// KeywordMatcher returns the first corpus keyword found in text
type KeywordMatcher interface {
	Match(text string) (string, bool)
}

// LeadDispatcher forwards a match; it must not fail the run
type LeadDispatcher interface {
	Dispatch(ctx context.Context, match scraper.Match)
}

type Scraper struct {
	launcher    browser.Launcher
	session     *SessionController
	extractor   *PostExtractor
	matcher     KeywordMatcher
	dispatcher  LeadDispatcher
	metrics     *metrics.Metrics
	screenshots *utils.ScreenShotDebugger

	running sync.Mutex

	mu    sync.Mutex
	state State
}

func New(launcher browser.Launcher, store SessionStore, matcher KeywordMatcher, dispatcher LeadDispatcher, opts Options, m *metrics.Metrics) *Scraper {
	opts = opts.withDefaults()
	return &Scraper{
		launcher:    launcher,
		session:     NewSessionController(store, opts),
		extractor:   NewPostExtractor(opts.Selectors.Post),
		matcher:     matcher,
		dispatcher:  dispatcher,
		metrics:     m,
		screenshots: utils.NewScreenShotDebugger(opts.ScreenshotDir),
	}
}

func (s *Scraper) Name() string {
	return SourceName
}

// State reports the current or last run state
func (s *Scraper) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scraper) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	log.Debug("run state", "state", st)
}

// Run performs one pass over the feed. Runs do not overlap: a call made while
// another is in flight returns ErrRunInProgress at once. A failed run returns
// no matches. The browser is closed on every path.
func (s *Scraper) Run(ctx context.Context) ([]scraper.Match, error) {
	if !s.running.TryLock() {
		return nil, scraper.ErrRunInProgress
	}
	defer s.running.Unlock()

	log.Info("🚀 Starting Nextdoor scraping...")
	s.setState(StateLaunching)
	sess, err := s.launcher.Launch(ctx)
	if err != nil {
		return s.fail(fmt.Errorf("%w: %w", scraper.ErrBrowserLaunchFailure, err))
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Warn("⚠️ Browser close reported an error", "err", err)
		}
	}()
	page := sess.Page()

	s.setState(StateSessionAcquiring)
	if err := s.session.AcquireSession(ctx, page); err != nil {
		_, _ = s.screenshots.CaptureAndLog(page, "feed-failure", "Capturing page after session failure")
		return s.fail(err)
	}
	_, _ = s.screenshots.CaptureAndLog(page, "feed", "Taking screenshot of the feed...")

	s.setState(StateExtracting)
	posts, err := s.extractor.ExtractPosts(page)
	if err != nil {
		return s.fail(err)
	}
	s.metrics.PostsExtracted(len(posts))

	s.setState(StateMatchingDispatching)
	matches := make([]scraper.Match, 0)
	for _, post := range posts {
		keyword, ok := s.matcher.Match(post)
		if !ok {
			continue
		}
		match := scraper.NewMatch(SourceName, post, keyword, timeNow())
		matches = append(matches, match)
		s.metrics.MatchFound(keyword)
		log.Info("✅ MATCH FOUND", "keyword", keyword, "timestamp", match.Timestamp)

		s.dispatcher.Dispatch(ctx, match)
	}

	s.setState(StateDone)
	log.Info("✅ Scraper finished cleanly.", "posts", len(posts), "matches", len(matches))
	return matches, nil
}

func (s *Scraper) fail(err error) ([]scraper.Match, error) {
	s.setState(StateFailed)
	log.Error("❌ Scraper error", "err", err)
	return nil, err
}
