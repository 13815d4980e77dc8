package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go-nextdoor-leads/internal/app"
	"go-nextdoor-leads/internal/browser"
	"go-nextdoor-leads/internal/config"
	"go-nextdoor-leads/internal/scraper/nextdoor"

	"github.com/charmbracelet/log"
)

func main() {
	fmt.Println("🌐 Testing browser session...")

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}
	app.SetupLogging("debug")

	ctx := context.Background()

	sess, err := browser.NewPlaywright(cfg.Headless).WithUserAgent(cfg.UserAgent).Launch(ctx)
	if err != nil {
		log.Fatal("Failed to launch browser", "err", err)
	}
	defer sess.Close()
	fmt.Println("✅ Browser launched")

	store := browser.NewFileStore(cfg.CookiesPath)
	controller := nextdoor.NewSessionController(store, app.ScraperOptions(cfg))
	if err := controller.AcquireSession(ctx, sess.Page()); err != nil {
		log.Error("Failed to reach the feed", "err", err)
		return
	}
	fmt.Println("✅ Feed loaded")

	if err := os.MkdirAll(cfg.ScreenshotDir, 0755); err != nil {
		log.Error("Failed to create screenshot dir", "err", err)
		return
	}
	path := filepath.Join(cfg.ScreenshotDir, "browser-test.png")
	if err := sess.Page().Screenshot(path); err != nil {
		log.Error("Failed to take screenshot", "err", err)
		return
	}
	fmt.Printf("📸 Screenshot saved: %s\n", path)
	fmt.Println("✨ Test complete!")
}
