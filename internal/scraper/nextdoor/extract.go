package nextdoor

import (
	"fmt"

	"go-nextdoor-leads/internal/browser"
	"go-nextdoor-leads/internal/scraper"

	"github.com/charmbracelet/log"
)

// PostExtractor reads post bodies off the rendered feed.
type PostExtractor struct {
	selector string
}

func NewPostExtractor(selector string) *PostExtractor {
	if selector == "" {
		selector = PostText
	}
	return &PostExtractor{selector: selector}
}

// ExtractPosts takes one snapshot of every rendered post, in DOM order.
// Nothing is scrolled, so posts that render later are not seen.
func (e *PostExtractor) ExtractPosts(page browser.Page) ([]string, error) {
	texts, err := page.InnerTexts(e.selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", scraper.ErrExtractionFailure, err)
	}
	if texts == nil {
		texts = []string{}
	}
	log.Info("🧵 Posts found", "count", len(texts))
	return texts, nil
}
