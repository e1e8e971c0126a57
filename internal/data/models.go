package data

import "errors"

var ErrRecordNotFound = errors.New("record not found")

// Store keys of the three persisted collections.
const (
	PlayersKey   = "hoop_stats_players"
	GameStatsKey = "hoop_stats_data"
	DarkModeKey  = "hoop_stats_darkmode"
)
