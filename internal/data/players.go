package data

import (
	"HoopStatApi/internal/validator"
	"slices"
	"strings"
)

const DefaultSeason = "Fall 2025"

var Seasons = []string{"Fall 2025", "Winter 2025", "Spring 2026", "Summer 2026"}

type Player struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Number   string          `json:"number"`
	Team     string          `json:"team"`
	PhotoURL string          `json:"photo_url,omitempty"`
	Season   string          `json:"season"`
	Schedule []ScheduledGame `json:"schedule"`
}

func (p Player) clone() Player {
	p.Schedule = slices.Clone(p.Schedule)
	if p.Schedule == nil {
		p.Schedule = []ScheduledGame{}
	}
	return p
}

// PlayerDto is the profile form. Fields left nil keep their current value on Merge.
type PlayerDto struct {
	Name     *string `json:"name"`
	Number   *string `json:"number"`
	Team     *string `json:"team"`
	PhotoURL *string `json:"photo_url"`
	Season   *string `json:"season"`
}

func (dto *PlayerDto) Convert(v *validator.Validator) *Player {
	player := &Player{Season: DefaultSeason, Schedule: []ScheduledGame{}}
	dto.Merge(v, player)
	return player
}

func (dto *PlayerDto) Merge(v *validator.Validator, player *Player) {
	if dto.Name != nil {
		player.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Number != nil {
		player.Number = strings.TrimSpace(*dto.Number)
	}
	if dto.Team != nil {
		player.Team = strings.TrimSpace(*dto.Team)
	}
	if dto.PhotoURL != nil {
		player.PhotoURL = *dto.PhotoURL
	}
	if dto.Season != nil {
		player.Season = *dto.Season
	}

	ValidatePlayer(v, player)
}

func ValidatePlayer(v *validator.Validator, player *Player) {
	v.Check(validator.NotBlank(player.Name), "name", "must be provided")
	v.Check(len(player.Name) <= 50, "name", "must be 50 characters or less")

	v.Check(validator.NotBlank(player.Number), "number", "must be provided")
	v.Check(len(player.Number) <= 10, "number", "must be 10 characters or less")

	v.Check(len(player.Team) <= 50, "team", "must be 50 characters or less")

	v.Check(validator.PermittedValue(player.Season, Seasons...), "season",
		"must be one of: "+strings.Join(Seasons, ", "))
}
