package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		name    string
		corpus  []string
		post    string
		want    string
		matched bool
	}{
		{
			name:    "Simple hit",
			corpus:  []string{"leaky pipe", "urgent"},
			post:    "My leaky pipe is driving me mad",
			want:    "leaky pipe",
			matched: true,
		},
		{
			name:   "No hit",
			corpus: []string{"leaky pipe", "urgent"},
			post:   "Nice weather today",
		},
		{
			name:    "Case insensitive",
			corpus:  []string{"leaky pipe"},
			post:    "LEAKY Pipe under the sink",
			want:    "leaky pipe",
			matched: true,
		},
		{
			name:    "Upper case corpus entry",
			corpus:  []string{"ASAP"},
			post:    "need someone asap please",
			want:    "ASAP",
			matched: true,
		},
		{
			name:    "First in corpus order wins over first in text",
			corpus:  []string{"urgent", "leaky pipe"},
			post:    "leaky pipe, urgent!",
			want:    "urgent",
			matched: true,
		},
		{
			name:    "Substring inside a longer word",
			corpus:  []string{"fix"},
			post:    "Prefixed shelves",
			want:    "fix",
			matched: true,
		},
		{
			name:    "Blank entries ignored",
			corpus:  []string{"", "   ", "mould"},
			post:    "black mould in the bathroom",
			want:    "mould",
			matched: true,
		},
		{
			name:   "Empty corpus",
			corpus: nil,
			post:   "anything",
		},
		{
			name:    "Unicode folding",
			corpus:  []string{"straße"},
			post:    "Burst pipe on our STRASSE",
			want:    "straße",
			matched: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewMatcher(tt.corpus).Match(tt.post)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A post naming two keywords reports only the one earlier in the corpus
func TestMatcher_FirstMatchPolicy(t *testing.T) {
	corpus := []string{"a1", "b2", "c3", "d4", "e5", "urgent"}
	for i := 0; i < 34; i++ {
		corpus = append(corpus, "filler-"+strings.Repeat("x", i+1))
	}
	corpus = append(corpus, "leaky pipe")
	assert.Equal(t, "urgent", corpus[5])
	assert.Equal(t, "leaky pipe", corpus[40])

	got, ok := NewMatcher(corpus).Match("Urgent: leaky pipe in the kitchen")
	assert.True(t, ok)
	assert.Equal(t, "urgent", got)
}

func TestMatcher_DoesNotAliasCorpus(t *testing.T) {
	corpus := []string{"leaky pipe"}
	m := NewMatcher(corpus)
	corpus[0] = "changed"

	got, ok := m.Match("leaky pipe")
	assert.True(t, ok)
	assert.Equal(t, "leaky pipe", got)

	kws := m.Keywords()
	kws[0] = "mutated"
	assert.Equal(t, []string{"leaky pipe"}, m.Keywords())
}

func TestDefaultCorpus(t *testing.T) {
	corpus := DefaultCorpus()
	assert.NotEmpty(t, corpus)

	seen := make(map[string]bool)
	for _, kw := range corpus {
		assert.Equal(t, strings.ToLower(kw), kw, "corpus entries are lowercase")
		assert.False(t, seen[kw], "duplicate keyword %q", kw)
		seen[kw] = true
	}

	corpus[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultCorpus()[0])
}

// Every hit must be a case-insensitive substring of the post it came from
func TestMatcher_KeywordIsSubstringOfPost(t *testing.T) {
	m := NewMatcher(DefaultCorpus())
	posts := []string{
		"Can anyone recommend a good plumber? Urgent, we have a BURST PIPE",
		"Looking for a chippie to build shelving",
		"Lovely sunset over the park",
		"Our boiler repair guy never turned up",
		"Need DIY help with a Loft Conversion",
	}
	for _, post := range posts {
		kw, ok := m.Match(post)
		if !ok {
			continue
		}
		assert.Contains(t, strings.ToLower(post), strings.ToLower(kw))
	}
}
