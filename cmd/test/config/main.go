package main

import (
	"fmt"
	"os"

	"go-nextdoor-leads/internal/app"
	"go-nextdoor-leads/internal/config"
)

func redact(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "..."
}

func main() {
	path := config.DefaultPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	fmt.Println("🔧 Testing config loading...")

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("❌ Config invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Login Email: %s\n", redact(cfg.LoginEmail))
	fmt.Printf("   Webhook URL: %s\n", redact(cfg.WebhookURL))
	fmt.Printf("   Feed URL: %s\n", cfg.FeedURL)
	fmt.Printf("   Feed Timeouts: navigation %s, content %s\n", cfg.FeedNavigationTimeout, cfg.FeedContentTimeout)
	fmt.Printf("   Keywords: %d\n", len(app.Corpus(cfg)))
	fmt.Printf("   Cookies Path: %s\n", cfg.CookiesPath)
	fmt.Printf("   Telegram: %t\n", cfg.TelegramEnabled())
	fmt.Printf("   Postgres: %t\n", cfg.DatabaseURL != "")
}
