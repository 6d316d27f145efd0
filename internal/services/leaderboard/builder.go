// Package leaderboard groups tier test records into the per-tier layout shown
// by /tierlist. It performs no I/O.
package leaderboard

import "github.com/KirkDiggler/tiertest/internal/models"

// Build groups records by tier in the configured tier order. Tiers with no
// records are omitted, as are records whose tier is not configured. Within a
// tier, entries keep the order of records.
func Build(records []*models.TierTestRecord, tiers []string) []*models.TierGroup {
	if len(records) == 0 || len(tiers) == 0 {
		return nil
	}

	// slot per configured tier, first occurrence wins
	slots := make(map[string]int, len(tiers))
	groups := make([]*models.TierGroup, 0, len(tiers))
	for _, tier := range tiers {
		if _, ok := slots[tier]; ok {
			continue
		}
		slots[tier] = len(groups)
		groups = append(groups, &models.TierGroup{Tier: tier})
	}

	for _, rec := range records {
		if rec == nil {
			continue
		}
		slot, ok := slots[rec.Tier]
		if !ok {
			continue
		}
		groups[slot].Entries = append(groups[slot].Entries, &models.LeaderboardEntry{
			RecordID: rec.ID,
			IGN:      rec.IGN,
			PlayerID: rec.PlayerID,
		})
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.Entries) > 0 {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
