package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/tiertest/internal/config"
	"github.com/KirkDiggler/tiertest/internal/services/tiertest"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// TierTestCommand handles the /tiertest command
type TierTestCommand struct {
	BaseCommand
	settings        SettingsStore
	tierTestService tiertest.Service
}

// NewTierTestCommand creates a new tiertest command handler
func NewTierTestCommand(settings SettingsStore, tierTestService tiertest.Service) *TierTestCommand {
	return &TierTestCommand{
		BaseCommand: BaseCommand{
			Name:        "tiertest",
			Description: "Submit a tier test result",
			AdminOnly:   true,
		},
		settings:        settings,
		tierTestService: tierTestService,
	}
}

// GetCommand returns the command definition with tier and gamemode choices
func (c *TierTestCommand) GetCommand(settings *config.Settings) *discordgo.ApplicationCommand {
	return c.definition([]*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "ign",
			Description: "The in-game name of the player",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "player",
			Description: "The Discord member who was tested",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "score",
			Description: "Final score (e.g. 3-0)",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "tier",
			Description: "Tier achieved",
			Required:    true,
			Choices:     tierChoices(settings),
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "gamemode",
			Description: "Gamemode tested",
			Required:    true,
			Choices:     gamemodeChoices(settings),
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "comments",
			Description: "Tester comments",
		},
	})
}

// Handle processes a /tiertest interaction
func (c *TierTestCommand) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !c.authorized(i) {
		return RespondWithEphemeralMessage(s, i, "❌ You need the Administrator permission to submit tier tests.")
	}

	settings := c.settings.Current()
	input, err := parseTierTest(settings, i.ApplicationCommandData().Options, invoker(i))
	if err != nil {
		var rejected inputError
		if errors.As(err, &rejected) {
			return RespondWithEphemeralMessage(s, i, "❌ "+rejected.Error())
		}
		return err
	}

	output, err := c.tierTestService.Submit(ctx, input)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("tier test submission failed")
		return RespondWithEphemeralMessage(s, i, "❌ Failed to record the tier test. Please try again.")
	}

	return RespondWithEmbed(s, i, renderTierTestResult(settings, output.Record))
}

// parseTierTest validates /tiertest options against the active settings. The
// choice lists Discord shows can be stale after a reload, so tier and gamemode
// are checked again here.
func parseTierTest(settings *config.Settings, options []*discordgo.ApplicationCommandInteractionDataOption, tester *discordgo.User) (*tiertest.SubmitInput, error) {
	opts := optionMap(options)

	ign := strings.TrimSpace(stringOption(opts, "ign"))
	if ign == "" {
		return nil, inputError("IGN cannot be empty.")
	}

	score := strings.TrimSpace(stringOption(opts, "score"))
	if score == "" {
		return nil, inputError("Score cannot be empty.")
	}

	player, ok := opts["player"]
	if !ok || player.Type != discordgo.ApplicationCommandOptionUser {
		return nil, inputError("A tested player is required.")
	}

	tier := stringOption(opts, "tier")
	if !settings.HasTier(tier) {
		return nil, inputError("Unknown tier: " + tier)
	}

	gamemode := stringOption(opts, "gamemode")
	if _, ok := settings.Gamemode(gamemode); !ok {
		return nil, inputError("Unknown gamemode: " + gamemode)
	}

	if tester == nil {
		return nil, inputError("Could not identify the tester.")
	}

	return &tiertest.SubmitInput{
		IGN:      ign,
		PlayerID: player.UserValue(nil).ID,
		Gamemode: gamemode,
		Score:    score,
		Tier:     tier,
		Comments: stringOption(opts, "comments"),
		TesterID: tester.ID,
	}, nil
}
