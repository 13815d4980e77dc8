package scraper

import "errors"

// Error kinds surfaced by a run. Stage errors wrap one of these together
// with the underlying cause, so callers match them with errors.Is.
var (
	ErrLoginTimeout         = errors.New("login timeout")
	ErrLoginFailed          = errors.New("login failed")
	ErrNavigationTimeout    = errors.New("navigation timeout")
	ErrNavigationFailed     = errors.New("navigation failed")
	ErrFeedContentTimeout   = errors.New("feed content timeout")
	ErrExtractionFailure    = errors.New("extraction failure")
	ErrDispatchFailure      = errors.New("dispatch failure")
	ErrBrowserLaunchFailure = errors.New("browser launch failure")
	ErrRunInProgress        = errors.New("run already in progress")
)
