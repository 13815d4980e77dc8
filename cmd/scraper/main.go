package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-nextdoor-leads/internal/app"
	"go-nextdoor-leads/internal/config"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "scraper",
		Usage: "Run one pass over the Nextdoor feed and dispatch matching posts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to the YAML config file",
			},
			&cli.BoolFlag{
				Name:  "headed",
				Usage: "show the browser window",
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal("❌ Scraper failed", "err", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Bool("headed") {
		cfg.Headless = false
	}
	app.SetupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("🚀 Starting Nextdoor leads scraper...")
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.Runner.RunOnce(ctx)
	if err != nil {
		return err
	}

	for _, m := range report.Matches {
		fmt.Printf("[%s] %s\n    %s\n", m.Keyword, m.Timestamp, m.Post)
	}
	log.Info("🏁 Execution finished.", "run_id", report.ID, "matches", len(report.Matches))
	return nil
}
