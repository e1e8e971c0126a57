package data

import (
	"HoopStatApi/internal/extract"
	"HoopStatApi/internal/validator"
	"cmp"
	"slices"
	"strings"
)

type ScheduledGame struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	Time     string `json:"time,omitempty"`
}

// ScheduleEntry is a game waiting to be merged into a schedule.
type ScheduleEntry struct {
	Opponent string `json:"opponent"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func ValidateScheduleEntry(v *validator.Validator, e *ScheduleEntry) {
	v.Check(validator.NotBlank(e.Opponent), "opponent", "must be provided")
	v.Check(validator.NotBlank(e.Date), "date", "must be provided")
}

func entriesFromExtraction(extracted []extract.Entry) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(extracted))
	for _, e := range extracted {
		entries = append(entries, ScheduleEntry{Opponent: e.Opponent, Date: e.Date, Time: e.Time})
	}
	return entries
}

// MergeSchedule returns a new schedule holding every existing game followed by one new game per
// entry, each with an identity from newID. Nothing is deduplicated and schedule is not modified.
func MergeSchedule(schedule []ScheduledGame, entries []ScheduleEntry,
	newID func() string) []ScheduledGame {
	merged := make([]ScheduledGame, 0, len(schedule)+len(entries))
	merged = append(merged, schedule...)

	for _, e := range entries {
		merged = append(merged, ScheduledGame{
			ID:       newID(),
			Date:     strings.TrimSpace(e.Date),
			Opponent: strings.TrimSpace(e.Opponent),
			Time:     strings.TrimSpace(e.Time),
		})
	}

	return merged
}

func removeScheduledGame(schedule []ScheduledGame, gameID string) ([]ScheduledGame, bool) {
	kept := slices.DeleteFunc(slices.Clone(schedule), func(g ScheduledGame) bool {
		return g.ID == gameID
	})
	return kept, len(kept) != len(schedule)
}

// SortScheduleByDate returns a copy of schedule ordered soonest first.
func SortScheduleByDate(schedule []ScheduledGame) []ScheduledGame {
	sorted := slices.Clone(schedule)
	slices.SortStableFunc(sorted, func(a, b ScheduledGame) int {
		return cmp.Compare(parseDate(a.Date).Unix(), parseDate(b.Date).Unix())
	})
	return sorted
}
