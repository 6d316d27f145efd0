package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LeaderboardEntry is one player line within a tier
type LeaderboardEntry struct {
	// RecordID is the record the entry was built from
	RecordID int64

	// IGN is the display name shown on the leaderboard
	IGN string

	// PlayerID is the Discord user ID used for role sync
	PlayerID string
}

// TierGroup holds the entries for one tier, in store order
type TierGroup struct {
	Tier    string
	Entries []*LeaderboardEntry
}

// GamemodeTitle title-cases a gamemode value for display and role names. A
// letter is upper-cased when the rune before it is not a letter and
// lower-cased otherwise, e.g. "uhc" -> "Uhc", "bed_wars" -> "Bed_Wars",
// "1v1" -> "1V1".
func GamemodeTitle(gamemode string) string {
	// cases.Caser keeps state, so one pair per call.
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	var b strings.Builder
	b.Grow(len(gamemode))
	prevLetter := false
	for _, r := range gamemode {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteString(lower.String(string(r)))
		default:
			b.WriteString(upper.String(string(r)))
			prevLetter = true
		}
	}
	return b.String()
}
