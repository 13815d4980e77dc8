package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Matcher finds the first corpus keyword contained in a post.
// It is immutable after construction and safe for concurrent use.
type Matcher struct {
	keywords []string
	folded   []string
}

// NewMatcher copies corpus; blank entries are dropped since they would match every post
func NewMatcher(corpus []string) *Matcher {
	m := &Matcher{
		keywords: make([]string, 0, len(corpus)),
		folded:   make([]string, 0, len(corpus)),
	}
	for _, kw := range corpus {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		m.keywords = append(m.keywords, kw)
		m.folded = append(m.folded, fold(kw))
	}
	return m
}

// Match returns the first keyword, in corpus order, that occurs in text ignoring case
func (m *Matcher) Match(text string) (string, bool) {
	haystack := fold(text)
	for i, needle := range m.folded {
		if strings.Contains(haystack, needle) {
			return m.keywords[i], true
		}
	}
	return "", false
}

// Keywords returns a copy of the effective corpus
func (m *Matcher) Keywords() []string {
	out := make([]string, len(m.keywords))
	copy(out, m.keywords)
	return out
}

// Len is the number of effective keywords
func (m *Matcher) Len() int {
	return len(m.keywords)
}

// fold normalizes to NFC and applies Unicode case folding.
// A new Caser per call: casers carry state and must not be shared.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
