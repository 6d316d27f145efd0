package discord

import (
	"context"

	"github.com/KirkDiggler/tiertest/internal/config"
	"github.com/KirkDiggler/tiertest/internal/metrics"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// ReloadConfigCommand handles the /reloadconfig command
type ReloadConfigCommand struct {
	BaseCommand
	settings SettingsStore
	metrics  *metrics.Metrics

	// onReload runs after a successful reload, e.g. to re-register commands
	onReload func(ctx context.Context) error
}

// NewReloadConfigCommand creates a new reloadconfig command handler
func NewReloadConfigCommand(settings SettingsStore, m *metrics.Metrics, onReload func(ctx context.Context) error) *ReloadConfigCommand {
	return &ReloadConfigCommand{
		BaseCommand: BaseCommand{
			Name:        "reloadconfig",
			Description: "Reload the configuration file",
			AdminOnly:   true,
		},
		settings: settings,
		metrics:  m,
		onReload: onReload,
	}
}

// GetCommand returns the command definition
func (c *ReloadConfigCommand) GetCommand(_ *config.Settings) *discordgo.ApplicationCommand {
	return c.definition(nil)
}

// Handle processes a /reloadconfig interaction
func (c *ReloadConfigCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.authorized(i) {
		return RespondWithEphemeralMessage(s, i, "❌ You need the Administrator permission to reload the configuration.")
	}

	_, err := c.settings.Reload()
	c.metrics.ObserveReload(err)
	if err != nil {
		return RespondWithMessage(s, i, "❌ Error loading config: "+err.Error())
	}

	if err := RespondWithMessage(s, i, "✅ Configuration reloaded successfully!"); err != nil {
		return err
	}

	if c.onReload != nil {
		if err := c.onReload(ctx); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to re-register commands after reload")
		}
	}
	return nil
}
