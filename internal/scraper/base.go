// Shared lead types
// Ensure every feed scraper returns the same shape

package scraper

import (
	"context"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for Match.Timestamp (millisecond precision, UTC "Z").
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Match is a post that contains one of the corpus keywords.
// The JSON shape is what the webhook receives.
type Match struct {
	Source    string `json:"source"`
	Post      string `json:"post"`
	Keyword   string `json:"keyword"`
	Timestamp string `json:"timestamp"`
}

// NewMatch stamps a match with t in UTC
func NewMatch(source, post, keyword string, t time.Time) Match {
	return Match{
		Source:    source,
		Post:      post,
		Keyword:   keyword,
		Timestamp: t.UTC().Format(TimestampLayout),
	}
}

//Scraper defines the interface that all feed scrapers must implement
type Scraper interface {
	//Run performs one full pass: session, extract, match, dispatch
	Run(ctx context.Context) ([]Match, error)

	//Name is the platform name (Nextdoor, ...)
	Name() string
}
