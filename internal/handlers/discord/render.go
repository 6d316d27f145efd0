package discord

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/tiertest/internal/config"
	"github.com/KirkDiggler/tiertest/internal/models"
	"github.com/KirkDiggler/tiertest/internal/services/rolesync"
	"github.com/KirkDiggler/tiertest/internal/services/tiertest"
	"github.com/bwmarrin/discordgo"
)

// Discord embed limits
const (
	maxEmbedFields     = 25
	maxFieldValueChars = 1024
	maxEmbedChars      = 6000
)

// renderTierTestResult renders the reply to a recorded tier test
func renderTierTestResult(settings *config.Settings, record *models.TierTestRecord) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: strings.TrimSpace(settings.Emojis.TestPassed + " Tier Test Result"),
		Color: settings.EmbedColor(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "**IGN**", Value: truncate("`" + record.IGN + "`")},
			{Name: "**Player**", Value: mention(record.PlayerID)},
			{Name: "**Gamemode**", Value: truncate(models.GamemodeTitle(record.Gamemode))},
			{Name: "**Score**", Value: truncate(record.Score)},
			{Name: "**Tier**", Value: truncate(record.Tier)},
			{Name: "**Comments**", Value: truncate(record.Comments)},
			{Name: "**Tester**", Value: mention(record.TesterID)},
		},
	}
}

// renderLeaderboard renders a gamemode's tier list: one field per tier in
// configured order, entries in store order.
func renderLeaderboard(settings *config.Settings, output *tiertest.GetLeaderboardOutput) *discordgo.MessageEmbed {
	title := strings.TrimSpace(settings.Emojis.Leaderboard + " " + models.GamemodeTitle(output.Gamemode) + " Tier List")
	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: settings.EmbedColor(),
	}

	used := utf8.RuneCountInString(title) + footerReserve
	for idx, group := range output.Tiers {
		name := group.Tier + " Tier"
		budget := min(maxFieldValueChars, maxEmbedChars-used-utf8.RuneCountInString(name))
		if len(embed.Fields) == maxEmbedFields || budget < minFieldBudget {
			embed.Footer = &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("…and %d more tiers", len(output.Tiers)-idx),
			}
			break
		}

		value := tierFieldValue(settings.Emojis.TierEntry, group.Entries, budget)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: value,
		})
		used += utf8.RuneCountInString(name) + utf8.RuneCountInString(value)
	}

	if output.Sync != nil && embed.Footer == nil {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: syncSummary(output.Sync),
		}
	}

	return embed
}

const (
	// minFieldBudget leaves room for at least one entry and the overflow trailer
	minFieldBudget = 64

	// footerReserve keeps room in the embed total for the footer line
	footerReserve = 96
)

// tierFieldValue joins "<emoji> <ign>" lines, stopping before budget runes and
// ending with an "…and N more" trailer when entries were left out.
func tierFieldValue(emoji string, entries []*models.LeaderboardEntry, budget int) string {
	var b strings.Builder
	size := 0
	for idx, entry := range entries {
		line := strings.TrimSpace(emoji + " " + entry.IGN)
		lineSize := utf8.RuneCountInString(line)
		if idx > 0 {
			lineSize++
		}

		remaining := len(entries) - idx
		trailer := fmt.Sprintf("\n…and %d more", remaining)
		reserve := 0
		if remaining > 1 {
			// the trailer for the entries after this one
			reserve = utf8.RuneCountInString(fmt.Sprintf("\n…and %d more", remaining-1))
		}
		if size+lineSize+reserve > budget {
			if idx == 0 {
				return fmt.Sprintf("…and %d more", remaining)
			}
			b.WriteString(trailer)
			return b.String()
		}

		if idx > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		size += lineSize
	}
	return b.String()
}

// syncSummary describes a role sync pass in one line
func syncSummary(result *rolesync.SyncResult) string {
	return fmt.Sprintf("Roles: %d granted, %d already held, %d skipped, %d failed",
		result.Granted,
		result.AlreadyHeld,
		result.MemberMissing+result.RoleMissing,
		len(result.Failures),
	)
}

func mention(userID string) string {
	if userID == "" {
		return "Unknown"
	}
	return "<@" + userID + ">"
}

// truncate fits a field value within Discord's limit; empty values are rejected by Discord
func truncate(value string) string {
	if value == "" {
		return "\u200b"
	}
	if utf8.RuneCountInString(value) <= maxFieldValueChars {
		return value
	}
	runes := []rune(value)
	return string(runes[:maxFieldValueChars-1]) + "…"
}
