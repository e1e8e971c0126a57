package gamehub

import (
	"HoopStatApi/internal/data"
	"HoopStatApi/internal/stats"
	"errors"
	"fmt"
	"strings"
)

// GameEvent is one change a keeper makes to a tracking session.
type GameEvent interface {
	execute(h *Hub) (description string, err error)
}

// GenericEvent is an event as it arrives over the wire, before it is parsed.
//
//	{"stat": "ast", "action": "add"}
//	{"shot": "3pt", "action": "make"}
//	{"opponent": "Eastside", "date": "2025-11-04"}
//	{"scheduled_game_id": "..."}
type GenericEvent map[string]any

func (e GenericEvent) Parse() (GameEvent, error) {
	switch {
	case e["stat"] != nil:
		return e.parseStatEvent()
	case e["shot"] != nil:
		return e.parseShotEvent()
	case e["opponent"] != nil || e["date"] != nil || e["scheduled_game_id"] != nil:
		return e.parseInfoEvent()
	default:
		return nil, fmt.Errorf("%w: one of stat, shot, opponent, date or scheduled_game_id "+
			"must be provided", ErrEventParseFailed)
	}
}

func (e GenericEvent) parseStatEvent() (GameEvent, error) {
	s, err := checkAndAssertStringFromMap(e, "stat")
	if err != nil {
		return nil, fmt.Errorf("%w: stat: %w", ErrEventParseFailed, err)
	}
	stat, err := stats.ParsePrimitiveStat(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEventParseFailed, err)
	}

	action, err := checkAndAssertStringFromMap(e, "action")
	if err != nil {
		return nil, fmt.Errorf("%w: action: %w", ErrEventParseFailed, err)
	}

	event := StatEvent{Stat: stat, Action: StatAction(action)}
	if err := event.validate(); err != nil {
		return nil, err
	}
	return event, nil
}

func (e GenericEvent) parseShotEvent() (GameEvent, error) {
	s, err := checkAndAssertStringFromMap(e, "shot")
	if err != nil {
		return nil, fmt.Errorf("%w: shot: %w", ErrEventParseFailed, err)
	}
	shot, err := stats.ParseShot(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEventParseFailed, err)
	}

	action, err := checkAndAssertStringFromMap(e, "action")
	if err != nil {
		return nil, fmt.Errorf("%w: action: %w", ErrEventParseFailed, err)
	}

	event := ShotEvent{Shot: shot, Action: ShotAction(action)}
	if err := event.validate(); err != nil {
		return nil, err
	}
	return event, nil
}

func (e GenericEvent) parseInfoEvent() (GameEvent, error) {
	var event InfoEvent
	var err error

	for key, dest := range map[string]**string{
		"opponent":          &event.Opponent,
		"date":              &event.Date,
		"scheduled_game_id": &event.ScheduledGameID,
	} {
		*dest, err = optionalStringFromMap(e, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEventParseFailed, key, err)
		}
	}

	return event, nil
}

type StatAction string

const (
	ActionAdd      StatAction = "add"
	ActionSubtract StatAction = "subtract"
)

// StatEvent adds one to a counter or takes one away, never below zero.
type StatEvent struct {
	Stat   stats.PrimitiveStat
	Action StatAction
}

func (e StatEvent) validate() error {
	if e.Action != ActionAdd && e.Action != ActionSubtract {
		return fmt.Errorf("%w: action must be %q or %q", ErrEventValidationFailed, ActionAdd,
			ActionSubtract)
	}
	return nil
}

func (e StatEvent) execute(h *Hub) (string, error) {
	switch e.Action {
	case ActionAdd:
		if _, err := h.stats.Increment(e.Stat); err != nil {
			return "", err
		}
		return fmt.Sprintf("+1 %s", e.Stat), nil
	default:
		if _, err := h.stats.Decrement(e.Stat); err != nil {
			return "", err
		}
		return fmt.Sprintf("-1 %s", e.Stat), nil
	}
}

type ShotAction string

const (
	ActionMake     ShotAction = "make"
	ActionMiss     ShotAction = "miss"
	ActionUndoMake ShotAction = "undo_make"
	ActionUndoMiss ShotAction = "undo_miss"
)

// ShotEvent is one of the compound shot actions.
type ShotEvent struct {
	Shot   stats.Shot
	Action ShotAction
}

func (e ShotEvent) validate() error {
	switch e.Action {
	case ActionMake, ActionMiss, ActionUndoMake, ActionUndoMiss:
		return nil
	default:
		return fmt.Errorf("%w: action must be one of %q, %q, %q, %q", ErrEventValidationFailed,
			ActionMake, ActionMiss, ActionUndoMake, ActionUndoMiss)
	}
}

func (e ShotEvent) execute(h *Hub) (string, error) {
	switch e.Action {
	case ActionMake:
		h.stats.RecordMake(e.Shot)
		return fmt.Sprintf("made %s", e.Shot), nil
	case ActionMiss:
		h.stats.RecordMiss(e.Shot)
		return fmt.Sprintf("missed %s", e.Shot), nil
	case ActionUndoMake:
		h.stats.UndoMake(e.Shot)
		return fmt.Sprintf("undo made %s", e.Shot), nil
	default:
		h.stats.UndoMiss(e.Shot)
		return fmt.Sprintf("undo missed %s", e.Shot), nil
	}
}

// InfoEvent edits the game details. Picking a scheduled game copies its opponent and date, then
// any explicit opponent or date in the same event wins.
type InfoEvent struct {
	Opponent        *string
	Date            *string
	ScheduledGameID *string
}

func (e InfoEvent) execute(h *Hub) (string, error) {
	h.mu.Lock()
	info := h.info
	h.mu.Unlock()

	if e.ScheduledGameID != nil {
		game, err := h.lookupGame(*e.ScheduledGameID)
		if err != nil {
			if errors.Is(err, data.ErrRecordNotFound) {
				return "", fmt.Errorf("%w: scheduled game not found", ErrEventValidationFailed)
			}
			return "", err
		}
		info.Opponent = game.Opponent
		info.Date = data.NormalizeDate(game.Date)
	}
	if e.Opponent != nil {
		info.Opponent = strings.TrimSpace(*e.Opponent)
	}
	if e.Date != nil {
		info.Date = strings.TrimSpace(*e.Date)
	}

	h.mu.Lock()
	h.info = info
	h.mu.Unlock()

	return fmt.Sprintf("game set to %s on %s", info.Opponent, info.Date), nil
}
