package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-nextdoor-leads/internal/app"
	"go-nextdoor-leads/internal/config"
	"go-nextdoor-leads/internal/server"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "server",
		Usage: "Serve the scrape trigger over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to the YAML config file",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "listen port, overrides PORT",
			},
		},
		Action: serve,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal("❌ Failed to start server", "err", err)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if port := c.String("port"); port != "" {
		cfg.Port = port
	}
	app.SetupLogging(cfg.LogLevel)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := []server.Option{
		server.WithStatus(func() string { return a.Scraper.State().String() }),
		server.WithRegistry(a.Metrics.Registry),
	}
	if a.Repository != nil {
		opts = append(opts, server.WithHistory(a.Repository))
	}

	return server.New(a.Runner, opts...).Run(ctx, ":"+cfg.Port)
}
