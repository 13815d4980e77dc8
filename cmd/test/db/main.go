package main

import (
	"context"
	"fmt"
	"time"

	"go-nextdoor-leads/internal/config"
	"go-nextdoor-leads/internal/database"

	"github.com/charmbracelet/log"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set. Please check your .env file.")
	}

	fmt.Println("Attempting to connect to PostgreSQL...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to the database", "err", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("❌ Schema setup failed", "err", err)
	}
	fmt.Println("✅ Connected, schema ready")

	runs, err := repo.RecentRuns(ctx, 5)
	if err != nil {
		log.Fatal("❌ Query failed", "err", err)
	}
	fmt.Printf("📦 Last %d runs:\n", len(runs))
	for _, r := range runs {
		fmt.Printf("  %s  %-9s  %3d leads  %s\n", r.StartedAt.Format(time.DateTime), r.Status, len(r.Matches), r.ID)
	}
}
