package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robalyx/turbo/internal/bot"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/setup"
	"github.com/robalyx/turbo/internal/setup/config"
	"github.com/urfave/cli/v3"
)

const (
	// BotLogDir specifies where bot log files are stored.
	BotLogDir = "logs/bot_logs"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "turbo",
		Usage: "Start the " + constants.BotName + " community bot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Aliases: []string{"c"},
				Usage:   "Directory searched first for bot.toml",
			},
			&cli.StringFlag{
				Name:  "log-dir",
				Value: BotLogDir,
				Usage: "Directory for log sessions",
			},
			&cli.BoolFlag{
				Name:  "console",
				Value: true,
				Usage: "Mirror logs to stderr",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runBot(ctx, c.String("config-dir"), c.String("log-dir"), c.Bool("console"))
		},
		Commands: []*cli.Command{
			{
				Name:  "check-config",
				Usage: "Validate the configuration and exit",
				Action: func(_ context.Context, c *cli.Command) error {
					cfg, usedDir, err := config.LoadConfig(c.String("config-dir"))
					if err != nil {
						return err
					}

					if usedDir == "" {
						usedDir = "(defaults)"
					}

					fmt.Printf("Configuration OK: %s\n", usedDir)
					fmt.Printf("Prefix: %s, storage: %s at %s\n", cfg.Bot.Prefix, cfg.Storage.Backend, cfg.Storage.Path)
					fmt.Printf("Filter: %d forbidden words, %d allowed domains\n",
						len(cfg.Filter.ForbiddenWords), len(cfg.Filter.AllowedDomains))

					return nil
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// runBot starts the bot and blocks until an interrupt signal arrives.
func runBot(ctx context.Context, configDir, logDir string, console bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize application with required dependencies
	app, err := setup.InitializeApp(ctx, configDir, logDir, console)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup()

	// Create bot instance
	discordBot, err := bot.New(bot.Dependencies{
		Token:    app.Config.Secrets.Token,
		Prefix:   app.Config.Bot.Prefix,
		Channels: app.Config.Channels,
		Rules:    app.Rules,
		Tracker:  app.Tracker,
		Quiz:     app.Quiz,
		Roles:    app.Roles,
		APIs:     app.APIs,
		Logger:   app.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	// Start the bot and connect to Discord
	if err := discordBot.Start(ctx); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}

	log.Println("Bot has been started. Waiting for interrupt signal to gracefully shutdown...")

	// Wait for interrupt signal to gracefully shutdown the bot
	<-ctx.Done()

	// Cleanly close down the Discord session
	discordBot.Close()

	return nil
}
