package telegram

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go-nextdoor-leads/internal/models"
	"go-nextdoor-leads/internal/scraper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID    string
	text      string
	parseMode string
}

// fakeBotAPI answers getMe and sendMessage like the Bot API does
type fakeBotAPI struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Leads","username":"leads_bot"}}`)
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		f.mu.Lock()
		f.sent = append(f.sent, sentMessage{
			chatID:    r.FormValue("chat_id"),
			text:      r.FormValue("text"),
			parseMode: r.FormValue("parse_mode"),
		})
		f.mu.Unlock()
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`)
	default:
		fmt.Fprint(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
	}
}

func newTestBot(t *testing.T) (*Bot, *fakeBotAPI) {
	t.Helper()
	api := &fakeBotAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	bot, err := NewBotWithEndpoint("123:abc", 42, srv.URL+"/bot%s/%s")
	require.NoError(t, err)
	return bot, api
}

func report(matches ...scraper.Match) *models.RunReport {
	start := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	return &models.RunReport{
		ID:         uuid.MustParse("6f1c2b9e-8d4a-4e1b-9a57-3c2d1e0f9a8b"),
		Source:     "Nextdoor",
		Status:     models.StatusSucceeded,
		StartedAt:  start,
		FinishedAt: start.Add(42 * time.Second),
		Matches:    matches,
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `Fix \(asap\)\! 10\.5 \- call\_me`, escapeMarkdown("Fix (asap)! 10.5 - call_me"))
	assert.Equal(t, `a\\b`, escapeMarkdown(`a\b`))
}

func TestFormatRunSummary_Success(t *testing.T) {
	at := time.Date(2026, 10, 16, 9, 30, 10, 0, time.UTC)
	text := FormatRunSummary(report(
		scraper.NewMatch("Nextdoor", "Burst pipe in the loft!", "burst pipe", at),
	))

	assert.Contains(t, text, "*Nextdoor leads: 1*")
	assert.Contains(t, text, "`6f1c2b9e-8d4a-4e1b-9a57-3c2d1e0f9a8b`")
	assert.Contains(t, text, "42s")
	assert.Contains(t, text, "*burst pipe*")
	assert.Contains(t, text, `Burst pipe in the loft\!`)
}

func TestFormatRunSummary_TruncatesLongLists(t *testing.T) {
	at := time.Date(2026, 10, 16, 9, 30, 10, 0, time.UTC)
	var matches []scraper.Match
	for i := 0; i < maxListed+3; i++ {
		matches = append(matches, scraper.NewMatch("Nextdoor", strings.Repeat("leak ", 100), "leak", at))
	}
	text := FormatRunSummary(report(matches...))

	assert.Equal(t, maxListed, strings.Count(text, "🔑"))
	assert.Contains(t, text, "and 3 more")
	assert.Contains(t, text, "…")
}

func TestFormatRunSummary_Failure(t *testing.T) {
	r := report()
	r.Status = models.StatusFailed
	r.Error = "feed content timeout: waiting for posts"

	text := FormatRunSummary(r)
	assert.Contains(t, text, "run failed")
	assert.Contains(t, text, "feed content timeout: waiting for posts")
	assert.NotContains(t, text, "leads:")
}

func TestBot_Notify(t *testing.T) {
	bot, api := newTestBot(t)

	require.NoError(t, bot.Notify(report()))

	require.Len(t, api.sent, 1)
	assert.Equal(t, "42", api.sent[0].chatID)
	assert.Equal(t, "MarkdownV2", api.sent[0].parseMode)
	assert.Contains(t, api.sent[0].text, "Nextdoor leads: 0")
}

func TestBot_SendErrorAndStatus(t *testing.T) {
	bot, api := newTestBot(t)

	require.NoError(t, bot.SendError(errors.New("browser launch failure")))
	require.NoError(t, bot.SendStatus("scraper started"))

	require.Len(t, api.sent, 2)
	assert.Equal(t, "❌ Error: browser launch failure", api.sent[0].text)
	assert.Empty(t, api.sent[0].parseMode)
	assert.Equal(t, "ℹ️ scraper started", api.sent[1].text)
}

func TestNewBot_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
	}))
	defer srv.Close()

	_, err := NewBotWithEndpoint("bad", 42, srv.URL+"/bot%s/%s")
	assert.Error(t, err)
}
