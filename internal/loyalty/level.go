// Package loyalty holds the Kenzie loyalty-program domain: reward tiers,
// customers and their XP, orders, leaderboard ranking and the validated
// request schemas accepted by the HTTP layer.
package loyalty

// FallbackLevelName is returned by LevelName when no tier qualifies.
const FallbackLevelName = "Starter"

// Level is one of the fixed reward tiers.
type Level struct {
	Level      int    `json:"level"`
	Name       string `json:"name"`
	XPRequired int64  `json:"xpRequired"`
	Reward     string `json:"reward"`
}

// levels is ordered by ascending XPRequired.
var levels = [...]Level{
	{Level: 1, Name: "STARTER", XPRequired: 0, Reward: "Welkom bij Kenzie!"},
	{Level: 2, Name: "BRONZE", XPRequired: 100, Reward: "-€5 korting!"},
	{Level: 3, Name: "SILVER", XPRequired: 300, Reward: "-10% korting!"},
	{Level: 4, Name: "GOLD", XPRequired: 600, Reward: "Gratis verzending!"},
	{Level: 5, Name: "PLATINUM", XPRequired: 1000, Reward: "-15% korting!"},
	{Level: 6, Name: "DIAMOND", XPRequired: 1500, Reward: "Gratis product!"},
}

// Levels returns a copy of the reward tiers in ascending order.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels[:])
	return out
}

// LevelFor returns the highest tier whose XPRequired is at most xp.
// The boolean is false when xp is below every threshold.
func LevelFor(xp int64) (Level, bool) {
	for i := len(levels) - 1; i >= 0; i-- {
		if xp >= levels[i].XPRequired {
			return levels[i], true
		}
	}
	return Level{}, false
}

// LevelName resolves the tier name for xp, falling back to FallbackLevelName.
func LevelName(xp int64) string {
	if l, ok := LevelFor(xp); ok {
		return l.Name
	}
	return FallbackLevelName
}

