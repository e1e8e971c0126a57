package gamehub

import (
	"HoopStatApi/internal/data"
	"HoopStatApi/internal/pins"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"
)

// Records is the part of the application state a registry needs.
type Records interface {
	GetPlayer(id string) (*data.Player, error)
	AppendGameStat(ctx context.Context, gs *data.GameStat) error
}

// Registry holds the live tracking sessions, keyed by a short pin.
type Registry struct {
	mu      sync.Mutex
	active  map[string]*Hub
	records Records
	now     func() time.Time
	newPin  func() string
}

func NewRegistry(records Records) *Registry {
	return &Registry{
		active:  make(map[string]*Hub),
		records: records,
		now:     time.Now,
		newPin: func() string {
			return pins.GeneratePin(pins.PinLength)
		},
	}
}

// Start opens a session for an existing player. The date defaults to today.
func (r *Registry) Start(playerID string) (*Hub, error) {
	if _, err := r.records.GetPlayer(playerID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var pin string
	for attempt := 0; ; attempt++ {
		if attempt == maxPinAttempts {
			return nil, pins.ErrDuplicatePin
		}
		pin = r.newPin()
		if _, taken := r.active[pin]; !taken {
			break
		}
	}

	hub := newHub(pin, playerID, r.now, func(gameID string) (data.ScheduledGame, error) {
		return r.scheduledGame(playerID, gameID)
	})
	r.active[pin] = hub
	go hub.Run()

	return hub, nil
}

func (r *Registry) scheduledGame(playerID, gameID string) (data.ScheduledGame, error) {
	player, err := r.records.GetPlayer(playerID)
	if err != nil {
		return data.ScheduledGame{}, err
	}

	i := slices.IndexFunc(player.Schedule, func(g data.ScheduledGame) bool {
		return g.ID == gameID
	})
	if i == -1 {
		return data.ScheduledGame{}, data.ErrRecordNotFound
	}
	return player.Schedule[i], nil
}

func (r *Registry) Get(id string) (*Hub, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hub, ok := r.active[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return hub, nil
}

// Finalize saves the session as a GameStat and closes it. When the game stat is refused, for
// example because no opponent was entered, the session stays open and nothing is saved.
func (r *Registry) Finalize(ctx context.Context, id string) (*data.GameStat, error) {
	hub, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	var gs *data.GameStat
	err = hub.Seal(func(snapshot Snapshot) error {
		date := strings.TrimSpace(snapshot.Date)
		if date == "" {
			date = r.now().Format(time.DateOnly)
		}

		gs = &data.GameStat{
			PlayerID: hub.PlayerID,
			Date:     date,
			Opponent: strings.TrimSpace(snapshot.Opponent),
			Box:      snapshot.Box,
		}
		return r.records.AppendGameStat(ctx, gs)
	})
	if err != nil {
		if errors.Is(err, ErrSessionClosed) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	r.remove(id)
	return gs, nil
}

// Cancel discards a session without saving it.
func (r *Registry) Cancel(id string) error {
	hub, err := r.Get(id)
	if err != nil {
		return err
	}

	r.remove(id)
	hub.Close()

	return nil
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.active, id)
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.active)
}

// Shutdown closes every session without saving.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, hub := range r.active {
		hub.Close()
		delete(r.active, id)
	}
}
