package discord

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/KirkDiggler/tiertest/internal/models"
	"github.com/KirkDiggler/tiertest/internal/services/rolesync"
	"github.com/KirkDiggler/tiertest/internal/services/tiertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(igns ...string) []*models.LeaderboardEntry {
	out := make([]*models.LeaderboardEntry, 0, len(igns))
	for idx, ign := range igns {
		out = append(out, &models.LeaderboardEntry{RecordID: int64(idx + 1), IGN: ign, PlayerID: fmt.Sprint(1000 + idx)})
	}
	return out
}

func TestRenderTierTestResult(t *testing.T) {
	settings := testSettings(t)

	embed := renderTierTestResult(settings, &models.TierTestRecord{
		ID:       1,
		IGN:      "Foo",
		PlayerID: "1001",
		Gamemode: "sky wars",
		Score:    "3-0",
		Tier:     "S",
		Comments: models.DefaultComments,
		TesterID: "2002",
	})

	assert.Equal(t, "✅ Tier Test Result", embed.Title)
	assert.Equal(t, 0x5865F2, embed.Color)
	require.Len(t, embed.Fields, 7)
	assert.Equal(t, "`Foo`", embed.Fields[0].Value)
	assert.Equal(t, "<@1001>", embed.Fields[1].Value)
	assert.Equal(t, "Sky Wars", embed.Fields[2].Value)
	assert.Equal(t, "No comments", embed.Fields[5].Value)
	assert.Equal(t, "<@2002>", embed.Fields[6].Value)
}

func TestRenderLeaderboard(t *testing.T) {
	settings := testSettings(t)

	embed := renderLeaderboard(settings, &tiertest.GetLeaderboardOutput{
		Gamemode: "uhc",
		Tiers: []*models.TierGroup{
			{Tier: "S", Entries: entries("Bar", "Foo")},
			{Tier: "A", Entries: entries("Foo")},
		},
	})

	assert.Equal(t, "🏆 Uhc Tier List", embed.Title)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "S Tier", embed.Fields[0].Name)
	assert.Equal(t, "• Bar\n• Foo", embed.Fields[0].Value)
	assert.Equal(t, "A Tier", embed.Fields[1].Name)
	assert.Equal(t, "• Foo", embed.Fields[1].Value)
	assert.False(t, embed.Fields[0].Inline)
	assert.Nil(t, embed.Footer)
}

func TestRenderLeaderboardSyncFooter(t *testing.T) {
	settings := testSettings(t)

	embed := renderLeaderboard(settings, &tiertest.GetLeaderboardOutput{
		Gamemode: "uhc",
		Tiers:    []*models.TierGroup{{Tier: "S", Entries: entries("Foo")}},
		Sync: &rolesync.SyncResult{
			Pairs:         4,
			Granted:       1,
			AlreadyHeld:   1,
			MemberMissing: 1,
			Failures:      []*rolesync.RoleSyncError{{PlayerID: "1", RoleName: "Uhc S"}},
		},
	})

	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Roles: 1 granted, 1 already held, 1 skipped, 1 failed", embed.Footer.Text)
}

func TestRenderLeaderboardTruncatesLongTier(t *testing.T) {
	settings := testSettings(t)

	igns := make([]string, 200)
	for idx := range igns {
		igns[idx] = fmt.Sprintf("player_%03d", idx)
	}

	embed := renderLeaderboard(settings, &tiertest.GetLeaderboardOutput{
		Gamemode: "uhc",
		Tiers:    []*models.TierGroup{{Tier: "S", Entries: entries(igns...)}},
	})

	require.Len(t, embed.Fields, 1)
	value := embed.Fields[0].Value
	assert.LessOrEqual(t, utf8.RuneCountInString(value), maxFieldValueChars)
	assert.True(t, strings.HasPrefix(value, "• player_000\n"))

	lines := strings.Split(value, "\n")
	shown := len(lines) - 1
	assert.Equal(t, fmt.Sprintf("…and %d more", 200-shown), lines[len(lines)-1])
}

func TestRenderLeaderboardRespectsEmbedTotal(t *testing.T) {
	settings := testSettings(t)

	var groups []*models.TierGroup
	for idx := 0; idx < 25; idx++ {
		igns := make([]string, 60)
		for j := range igns {
			igns[j] = fmt.Sprintf("t%02d_player_%02d", idx, j)
		}
		groups = append(groups, &models.TierGroup{Tier: fmt.Sprintf("T%d", idx), Entries: entries(igns...)})
	}

	embed := renderLeaderboard(settings, &tiertest.GetLeaderboardOutput{Gamemode: "uhc", Tiers: groups})

	total := utf8.RuneCountInString(embed.Title)
	for _, f := range embed.Fields {
		total += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	assert.LessOrEqual(t, total, maxEmbedChars)
	assert.Less(t, len(embed.Fields), 25)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, fmt.Sprintf("…and %d more tiers", 25-len(embed.Fields)), embed.Footer.Text)
}

func TestTierFieldValueFirstEntryTooLong(t *testing.T) {
	value := tierFieldValue("•", entries(strings.Repeat("x", 200), "Foo"), 100)
	assert.Equal(t, "…and 2 more", value)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "\u200b", truncate(""))
	assert.Equal(t, "short", truncate("short"))

	long := truncate(strings.Repeat("é", 2000))
	assert.Equal(t, maxFieldValueChars, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "…"))
}
