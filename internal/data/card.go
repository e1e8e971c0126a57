package data

import "HoopStatApi/internal/stats"

// Card is the trading card summary of a player's season.
type Card struct {
	Player  Player                   `json:"player"`
	Season  stats.Season             `json:"season"`
	Notable []stats.Ranked[GameStat] `json:"notable_games"`
}

// BuildCard aggregates games, which must already be filtered to player.
func BuildCard(player Player, games []GameStat) Card {
	return Card{
		Player:  player,
		Season:  stats.Aggregate(games),
		Notable: stats.Notable(games, stats.NotableGameCount),
	}
}
