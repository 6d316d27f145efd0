package discord

import (
	"context"
	"errors"

	"github.com/KirkDiggler/tiertest/internal/config"
	"github.com/KirkDiggler/tiertest/internal/models"
	"github.com/KirkDiggler/tiertest/internal/services/rolesync"
	"github.com/KirkDiggler/tiertest/internal/services/tiertest"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// TierListCommand handles the /tierlist command
type TierListCommand struct {
	BaseCommand
	settings        SettingsStore
	tierTestService tiertest.Service
}

// NewTierListCommand creates a new tierlist command handler
func NewTierListCommand(settings SettingsStore, tierTestService tiertest.Service) *TierListCommand {
	return &TierListCommand{
		BaseCommand: BaseCommand{
			Name:        "tierlist",
			Description: "Show tier leaderboard for a gamemode",
		},
		settings:        settings,
		tierTestService: tierTestService,
	}
}

// GetCommand returns the command definition with gamemode choices
func (c *TierListCommand) GetCommand(settings *config.Settings) *discordgo.ApplicationCommand {
	return c.definition([]*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "gamemode",
			Description: "The gamemode to show leaderboard for",
			Required:    true,
			Choices:     gamemodeChoices(settings),
		},
	})
}

// Handle processes a /tierlist interaction. Role sync can take a while on a
// large board, so the response is deferred first.
func (c *TierListCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	gamemode := stringOption(optionMap(i.ApplicationCommandData().Options), "gamemode")
	if _, ok := c.settings.Current().Gamemode(gamemode); !ok {
		return RespondWithEphemeralMessage(s, i, "❌ Unknown gamemode: "+gamemode)
	}

	if err := DeferResponse(s, i); err != nil {
		return err
	}

	var guild rolesync.Guild
	if i.GuildID != "" {
		guild = newSessionGuild(s, i.GuildID)
	}

	output, err := c.tierTestService.GetLeaderboard(ctx, &tiertest.GetLeaderboardInput{
		Gamemode: gamemode,
		Guild:    guild,
	})
	if err != nil {
		if errors.Is(err, tiertest.ErrNoRecords) {
			return EditWithMessage(s, i, "No records found for **"+models.GamemodeTitle(gamemode)+"**")
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("gamemode", gamemode).Msg("failed to build leaderboard")
		return EditWithMessage(s, i, "❌ Failed to load the tier list. Please try again.")
	}

	// settings read after the sync so a concurrent reload shows its emojis
	return EditWithEmbed(s, i, renderLeaderboard(c.settings.Current(), output))
}
