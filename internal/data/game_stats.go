package data

import (
	"HoopStatApi/internal/stats"
	"HoopStatApi/internal/validator"
	"cmp"
	"slices"
	"time"
)

// GameStat is one finalized game. The box score fields are flattened into the JSON object.
type GameStat struct {
	ID       string `json:"id"`
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	stats.Box
}

func ValidateGameStat(v *validator.Validator, gs *GameStat) {
	v.Check(validator.NotBlank(gs.PlayerID), "player_id", "must be provided")
	v.Check(validator.NotBlank(gs.Opponent), "opponent", "must be provided")
}

// FilterByPlayer returns the games recorded for playerID in collection order.
func FilterByPlayer(games []GameStat, playerID string) []GameStat {
	filtered := make([]GameStat, 0)
	for _, g := range games {
		if g.PlayerID == playerID {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// SortByDateDesc orders games newest first. Dates that do not parse sort as the zero time, and
// equal dates keep their collection order.
func SortByDateDesc(games []GameStat) {
	slices.SortStableFunc(games, func(a, b GameStat) int {
		return cmp.Compare(parseDate(b.Date).Unix(), parseDate(a.Date).Unix())
	})
}

// GameSummary is a history row: the stored game plus everything derived from it.
type GameSummary struct {
	GameStat
	Derived        stats.Derived        `json:"derived"`
	Classification stats.Classification `json:"classification"`
	Badge          string               `json:"badge"`
}

func Summarize(gs GameStat) GameSummary {
	c := stats.Classify(gs.Box)
	return GameSummary{
		GameStat:       gs,
		Derived:        stats.Derive(gs.Box),
		Classification: c,
		Badge:          c.Badge(),
	}
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NormalizeDate rewrites a parseable date as YYYY-MM-DD and returns anything else unchanged.
func NormalizeDate(s string) string {
	t := parseDate(s)
	if t.IsZero() {
		return s
	}
	return t.Format(time.DateOnly)
}
