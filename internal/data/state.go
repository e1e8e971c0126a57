package data

import (
	"HoopStatApi/internal/extract"
	"HoopStatApi/internal/pins"
	"HoopStatApi/internal/validator"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// State is the application state: the player and game stat collections plus the dark-mode flag.
// It is loaded once at startup and every mutation saves the whole changed collection before it
// becomes visible. A failed save leaves the in-memory state untouched.
type State struct {
	mu        sync.RWMutex
	store     Store
	newID     func() string
	players   []Player
	gameStats []GameStat
	darkMode  bool
}

func NewState(store Store) *State {
	return &State{
		store:     store,
		newID:     pins.New,
		players:   []Player{},
		gameStats: []GameStat{},
	}
}

// Load reads every collection from the store. Missing collections load as empty.
func (s *State) Load(ctx context.Context) error {
	var (
		players   []Player
		gameStats []GameStat
		darkMode  bool
	)

	loads := []struct {
		key  string
		dest any
	}{
		{PlayersKey, &players},
		{GameStatsKey, &gameStats},
		{DarkModeKey, &darkMode},
	}
	for _, l := range loads {
		err := s.store.Load(ctx, l.key, l.dest)
		if err != nil && !errors.Is(err, ErrNoCollection) {
			return fmt.Errorf("loading %s: %w", l.key, err)
		}
	}

	for i := range players {
		players[i] = players[i].clone()
	}
	if gameStats == nil {
		gameStats = []GameStat{}
	}
	if players == nil {
		players = []Player{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = players
	s.gameStats = gameStats
	s.darkMode = darkMode

	return nil
}

func (s *State) Players() []Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p.clone())
	}
	return players
}

func (s *State) GetPlayer(id string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.playerIndex(id)
	if i == -1 {
		return nil, ErrRecordNotFound
	}

	player := s.players[i].clone()
	return &player, nil
}

func (s *State) playerIndex(id string) int {
	return slices.IndexFunc(s.players, func(p Player) bool {
		return p.ID == id
	})
}

func (s *State) InsertPlayer(ctx context.Context, player *Player) error {
	v := validator.New()
	ValidatePlayer(v, player)
	if err := validationErr(v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := player.clone()
	stored.ID = s.newID()
	if stored.Schedule == nil {
		stored.Schedule = []ScheduledGame{}
	}

	players := append(slices.Clone(s.players), stored)
	if err := s.savePlayers(ctx, players); err != nil {
		return err
	}

	*player = stored.clone()
	return nil
}

// UpdatePlayer merges dto into the stored profile. The schedule is kept as it is.
func (s *State) UpdatePlayer(ctx context.Context, id string, dto *PlayerDto) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.playerIndex(id)
	if i == -1 {
		return nil, ErrRecordNotFound
	}

	player := s.players[i].clone()
	v := validator.New()
	dto.Merge(v, &player)
	if err := validationErr(v); err != nil {
		return nil, err
	}

	players := slices.Clone(s.players)
	players[i] = player
	if err := s.savePlayers(ctx, players); err != nil {
		return nil, err
	}

	updated := player.clone()
	return &updated, nil
}

func (s *State) savePlayers(ctx context.Context, players []Player) error {
	if err := s.store.Save(ctx, PlayersKey, players); err != nil {
		return fmt.Errorf("saving players: %w", err)
	}
	s.players = players
	return nil
}

// GameStats returns the games recorded for playerID in the order they were saved.
func (s *State) GameStats(playerID string) []GameStat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return FilterByPlayer(s.gameStats, playerID)
}

// AppendGameStat validates gs, gives it fresh identities and appends it to the game stat
// collection.
func (s *State) AppendGameStat(ctx context.Context, gs *GameStat) error {
	v := validator.New()
	ValidateGameStat(v, gs)
	if err := validationErr(v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playerIndex(gs.PlayerID) == -1 {
		return ErrRecordNotFound
	}

	stored := *gs
	stored.ID = s.newID()
	stored.GameID = s.newID()

	gameStats := append(slices.Clone(s.gameStats), stored)
	if err := s.store.Save(ctx, GameStatsKey, gameStats); err != nil {
		return fmt.Errorf("saving game stats: %w", err)
	}
	s.gameStats = gameStats

	*gs = stored
	return nil
}

func (s *State) Schedule(playerID string) ([]ScheduledGame, error) {
	player, err := s.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	return player.Schedule, nil
}

// AddScheduledGame validates and appends one manually entered game.
func (s *State) AddScheduledGame(ctx context.Context, playerID string,
	entry ScheduleEntry) (*ScheduledGame, error) {
	v := validator.New()
	ValidateScheduleEntry(v, &entry)
	if err := validationErr(v); err != nil {
		return nil, err
	}

	added, err := s.mergeSchedule(ctx, playerID, []ScheduleEntry{entry})
	if err != nil {
		return nil, err
	}
	return &added[0], nil
}

// ImportSchedule extracts games from document and appends all of them. Any extraction error
// fails the whole import with ErrExtractionFailed and the schedule is left as it was.
func (s *State) ImportSchedule(ctx context.Context, playerID string, ext extract.Extractor,
	document []byte, mediaType string) ([]ScheduledGame, error) {
	if _, err := s.GetPlayer(playerID); err != nil {
		return nil, err
	}

	extracted, err := ext.Extract(ctx, document, mediaType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	return s.mergeSchedule(ctx, playerID, entriesFromExtraction(extracted))
}

// mergeSchedule appends entries to the player's schedule and returns the new games.
func (s *State) mergeSchedule(ctx context.Context, playerID string,
	entries []ScheduleEntry) ([]ScheduledGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.playerIndex(playerID)
	if i == -1 {
		return nil, ErrRecordNotFound
	}

	player := s.players[i].clone()
	before := len(player.Schedule)
	player.Schedule = MergeSchedule(player.Schedule, entries, s.newID)

	players := slices.Clone(s.players)
	players[i] = player
	if err := s.savePlayers(ctx, players); err != nil {
		return nil, err
	}

	return slices.Clone(player.Schedule[before:]), nil
}

func (s *State) RemoveScheduledGame(ctx context.Context, playerID, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.playerIndex(playerID)
	if i == -1 {
		return ErrRecordNotFound
	}

	player := s.players[i].clone()
	schedule, removed := removeScheduledGame(player.Schedule, gameID)
	if !removed {
		return ErrRecordNotFound
	}
	player.Schedule = schedule

	players := slices.Clone(s.players)
	players[i] = player
	return s.savePlayers(ctx, players)
}

func (s *State) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.darkMode
}

func (s *State) SetDarkMode(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, DarkModeKey, on); err != nil {
		return fmt.Errorf("saving dark mode: %w", err)
	}
	s.darkMode = on

	return nil
}
