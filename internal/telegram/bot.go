package telegram

import (
	"fmt"
	"strings"
	"time"

	"go-nextdoor-leads/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Summary messages list at most maxListed leads, each cut to maxPreview runes
const (
	maxPreview  = 160
	maxListed   = 10
	parseMarkV2 = "MarkdownV2"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	return NewBotWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewBotWithEndpoint talks to a custom Bot API server. endpoint is a format string like tgbotapi.APIEndpoint.
func NewBotWithEndpoint(token string, chatID int64, endpoint string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//api.Debug = true

	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *Bot) Name() string {
	return "telegram"
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

func preview(post string) string {
	post = strings.Join(strings.Fields(post), " ")
	runes := []rune(post)
	if len(runes) <= maxPreview {
		return post
	}
	return string(runes[:maxPreview]) + "…"
}

// FormatRunSummary renders a finished run as a MarkdownV2 message
func FormatRunSummary(report *models.RunReport) string {
	var sb strings.Builder

	if !report.Succeeded() {
		fmt.Fprintf(&sb, "❌ *%s run failed*\n", escapeMarkdown(report.Source))
		fmt.Fprintf(&sb, "🆔 `%s`\n", report.ID)
		fmt.Fprintf(&sb, "⚠️ %s\n", escapeMarkdown(report.Error))
		return sb.String()
	}

	fmt.Fprintf(&sb, "🏡 *%s leads: %d*\n", escapeMarkdown(report.Source), len(report.Matches))
	fmt.Fprintf(&sb, "🆔 `%s`\n", report.ID)
	fmt.Fprintf(&sb, "⏱ %s\n", escapeMarkdown(report.Duration().Round(100*time.Millisecond).String()))

	for i, m := range report.Matches {
		if i == maxListed {
			fmt.Fprintf(&sb, "\n…and %d more\n", len(report.Matches)-maxListed)
			break
		}
		fmt.Fprintf(&sb, "\n🔑 *%s*\n📝 %s\n", escapeMarkdown(m.Keyword), escapeMarkdown(preview(m.Post)))
	}
	return sb.String()
}

func (b *Bot) send(text, parseMode string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = parseMode
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	return err
}

// Notify sends the summary of a finished run
func (b *Bot) Notify(report *models.RunReport) error {
	return b.send(FormatRunSummary(report), parseMarkV2)
}

func (b *Bot) SendError(err error) error {
	return b.send(fmt.Sprintf("❌ Error: %v", err), "")
}

func (b *Bot) SendStatus(message string) error {
	return b.send("ℹ️ "+message, "")
}
