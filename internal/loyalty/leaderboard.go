package loyalty

import (
	"cmp"
	"slices"
)

// LeaderboardSize is the number of entries the portal shows.
const LeaderboardSize = 10

// DisplayName returns the name shown for a customer id that has no
// matching customer record.
func DisplayName(id ID) string {
	return "Klant " + string(id)
}

// Leaderboard ranks every XP record by descending TotalXP and returns at
// most limit entries. Names come from the first customer with a matching
// id. Records with equal TotalXP keep CompareIDs order.
func Leaderboard(records map[ID]XPRecord, customers []Customer, limit int) []LeaderboardEntry {
	names := make(map[ID]string, len(customers))
	for _, c := range customers {
		if _, seen := names[c.ID]; !seen {
			names[c.ID] = c.Name
		}
	}

	ids := make([]ID, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, CompareIDs)

	entries := make([]LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		rec := records[id]
		name, ok := names[id]
		if !ok {
			name = DisplayName(id)
		}
		entries = append(entries, LeaderboardEntry{
			ID:    id,
			Name:  name,
			XP:    rec.TotalXP,
			Level: rec.Level(),
		})
	}

	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		return cmp.Compare(b.XP, a.XP)
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
