package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/KirkDiggler/tiertest/internal/app"
	"github.com/KirkDiggler/tiertest/internal/config"
	"github.com/KirkDiggler/tiertest/internal/logger"
	tiertestRepo "github.com/KirkDiggler/tiertest/internal/repositories/tiertest"
	"github.com/KirkDiggler/tiertest/internal/services/rolesync"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func main() {
	// a missing .env is fine; real environment variables still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cliApp := &cli.App{
		Name:  "tiertest",
		Usage: "Discord bot for recording tier tests and publishing tier lists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.json",
				Usage:   "path to the configuration document (JSON or YAML)",
				EnvVars: []string{"TIERBOT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"TIERBOT_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			newRunCommand(),
			newCheckConfigCommand(),
		},
		DefaultCommand: "run",
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "connect to Discord and serve slash commands",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "serve prometheus metrics on this address, e.g. :9090",
				EnvVars: []string{"TIERBOT_METRICS_ADDR"},
			},
			&cli.StringFlag{
				Name:    "application-id",
				Usage:   "application ID; defaults to the bot user",
				EnvVars: []string{"TIERBOT_APPLICATION_ID"},
			},
			&cli.StringFlag{
				Name:    "guild-id",
				Usage:   "register commands for this guild only (development)",
				EnvVars: []string{"TIERBOT_GUILD_ID"},
			},
			&cli.IntFlag{
				Name:    "sync-concurrency",
				Value:   rolesync.DefaultConcurrency,
				Usage:   "parallel role grants during a tier list sync",
				EnvVars: []string{"TIERBOT_SYNC_CONCURRENCY"},
			},
		},
		Action: func(c *cli.Context) error {
			fxApp := fx.New(
				app.Module(app.Options{
					ConfigPath:      c.String("config"),
					LogLevel:        c.String("log-level"),
					MetricsAddr:     c.String("metrics-addr"),
					ApplicationID:   c.String("application-id"),
					GuildID:         c.String("guild-id"),
					SyncConcurrency: c.Int("sync-concurrency"),
				}),
				fx.StopTimeout(app.ShutdownTimeout),
			)
			if err := fxApp.Err(); err != nil {
				return err
			}

			if err := fxApp.Start(c.Context); err != nil {
				return fmt.Errorf("failed to start: %w", err)
			}

			<-fxApp.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), app.ShutdownTimeout)
			defer cancel()
			return fxApp.Stop(stopCtx)
		},
	}
}

func newCheckConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "check-config",
		Usage: "validate the configuration document and exit",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "storage",
				Usage: "also open and initialize the configured record store",
			},
		},
		Action: func(c *cli.Context) error {
			settings, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			gamemodes := make([]string, 0, len(settings.Gamemodes))
			for _, gm := range settings.Gamemodes {
				gamemodes = append(gamemodes, gm.Value)
			}

			fmt.Fprintf(c.App.Writer, "config %s is valid\n", settings.Path)
			fmt.Fprintf(c.App.Writer, "  gamemodes: %s\n", strings.Join(gamemodes, ", "))
			fmt.Fprintf(c.App.Writer, "  tiers:     %s\n", strings.Join(settings.Tiers, ", "))
			fmt.Fprintf(c.App.Writer, "  database:  %s\n", settings.Database)

			if !c.Bool("storage") {
				return nil
			}

			storeLogger, err := logger.New(c.String("log-level"))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Context, app.OpenTimeout)
			defer cancel()

			repo, err := tiertestRepo.Open(ctx, &tiertestRepo.OpenInput{
				Location: settings.Database,
				Logger:   storeLogger,
			})
			if err != nil {
				return fmt.Errorf("failed to open record store: %w", err)
			}
			defer repo.Close()

			fmt.Fprintln(c.App.Writer, "  record store is reachable")
			return nil
		},
	}
}
