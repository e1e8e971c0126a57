package gamehub

import (
	"HoopStatApi/internal/data"
	"HoopStatApi/internal/stats"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Info is the game a session is tracking.
type Info struct {
	Opponent string `json:"opponent"`
	Date     string `json:"date"`
}

// Snapshot is the state of a session sent to clients and returned by the API.
type Snapshot struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Info
	Box     stats.Box     `json:"box"`
	Derived stats.Derived `json:"derived"`
	Plays   []Play        `json:"plays"`
}

type eventResult struct {
	snapshot Snapshot
	err      error
}

type eventRequest struct {
	event GameEvent
	reply chan eventResult
}

type sealRequest struct {
	save  func(Snapshot) error
	reply chan error
}

// Hub is one live tracking session: an event counter for a single player's game, the keepers
// who change it and the watchers who follow along. All events go through the run loop.
type Hub struct {
	ID       string
	PlayerID string

	stats      *stats.Statline
	mu         sync.Mutex
	info       Info
	plays      playLog
	now        func() time.Time
	lookupGame func(id string) (data.ScheduledGame, error)

	keepers      map[*Keeper]bool
	watchers     map[*Watcher]bool
	events       chan *eventRequest
	seal         chan *sealRequest
	joinKeeper   chan *Keeper
	leaveKeeper  chan *Keeper
	joinWatcher  chan *Watcher
	leaveWatcher chan *Watcher
	done         chan struct{}
	closeOnce    sync.Once
}

func newHub(id, playerID string, now func() time.Time,
	lookupGame func(id string) (data.ScheduledGame, error)) *Hub {
	return &Hub{
		ID:           id,
		PlayerID:     playerID,
		stats:        stats.NewStatline(),
		info:         Info{Date: now().Format(time.DateOnly)},
		now:          now,
		lookupGame:   lookupGame,
		keepers:      make(map[*Keeper]bool),
		watchers:     make(map[*Watcher]bool),
		events:       make(chan *eventRequest),
		seal:         make(chan *sealRequest),
		joinKeeper:   make(chan *Keeper),
		leaveKeeper:  make(chan *Keeper),
		joinWatcher:  make(chan *Watcher),
		leaveWatcher: make(chan *Watcher),
		done:         make(chan struct{}),
	}
}

func (h *Hub) Snapshot() Snapshot {
	box := h.stats.Box()

	h.mu.Lock()
	defer h.mu.Unlock()

	return Snapshot{
		ID:       h.ID,
		PlayerID: h.PlayerID,
		Info:     h.info,
		Box:      box,
		Derived:  stats.Derive(box),
		Plays:    h.plays.recent(),
	}
}

// Apply runs event through the hub and returns the resulting snapshot, which is also pushed to
// every connected client.
func (h *Hub) Apply(event GameEvent) (Snapshot, error) {
	req := &eventRequest{event: event, reply: make(chan eventResult, 1)}

	select {
	case h.events <- req:
	case <-h.done:
		return Snapshot{}, ErrSessionClosed
	}

	res := <-req.reply
	return res.snapshot, res.err
}

// Seal hands the final snapshot to save from inside the run loop, so no event is applied
// between the snapshot and the save. When save succeeds the session closes; when it fails the
// session carries on.
func (h *Hub) Seal(save func(Snapshot) error) error {
	req := &sealRequest{save: save, reply: make(chan error, 1)}

	select {
	case h.seal <- req:
	case <-h.done:
		return ErrSessionClosed
	}

	return <-req.reply
}

func (h *Hub) JoinKeeper(conn *websocket.Conn) error {
	k := newKeeper(h, conn)

	select {
	case h.joinKeeper <- k:
	case <-h.done:
		_ = conn.Close()
		return ErrSessionClosed
	}

	go k.WriteEvents()
	go k.ReadEvents()

	return nil
}

func (h *Hub) JoinWatcher(conn *websocket.Conn) error {
	w := newWatcher(h, conn)

	select {
	case h.joinWatcher <- w:
	case <-h.done:
		_ = conn.Close()
		return ErrSessionClosed
	}

	go w.WriteEvents()
	go w.ReadEvents()

	return nil
}

func (h *Hub) LeaveKeeper(k *Keeper) {
	select {
	case h.leaveKeeper <- k:
	case <-h.done:
	}
}

func (h *Hub) LeaveWatcher(w *Watcher) {
	select {
	case h.leaveWatcher <- w:
	case <-h.done:
	}
}

// Close stops the run loop and disconnects every client. It is safe to call more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) Run() {
	for {
		select {
		case k := <-h.joinKeeper:
			if h.send(k.client, h.snapshotMessage()) {
				h.keepers[k] = true
			}
		case k := <-h.leaveKeeper:
			if _, ok := h.keepers[k]; ok {
				delete(h.keepers, k)
				close(k.Receive)
			}
		case w := <-h.joinWatcher:
			if h.send(w.client, h.snapshotMessage()) {
				h.watchers[w] = true
			}
		case w := <-h.leaveWatcher:
			if _, ok := h.watchers[w]; ok {
				delete(h.watchers, w)
				close(w.Receive)
			}
		case req := <-h.events:
			description, err := req.event.execute(h)
			if err != nil {
				req.reply <- eventResult{err: err}
				continue
			}

			h.mu.Lock()
			h.plays.record(h.now(), description)
			h.mu.Unlock()

			snapshot := h.Snapshot()
			h.toAll(toMessage(envelope{"session": snapshot}))
			req.reply <- eventResult{snapshot: snapshot}
		case req := <-h.seal:
			select {
			case <-h.done:
				h.disconnectAll()
				req.reply <- ErrSessionClosed
				return
			default:
			}

			if err := req.save(h.Snapshot()); err != nil {
				req.reply <- err
				continue
			}
			h.Close()
			h.disconnectAll()
			req.reply <- nil
			return
		case <-h.done:
			h.disconnectAll()
			return
		}
	}
}

func (h *Hub) disconnectAll() {
	for k := range h.keepers {
		delete(h.keepers, k)
		close(k.Receive)
	}
	for w := range h.watchers {
		delete(h.watchers, w)
		close(w.Receive)
	}
}

func (h *Hub) snapshotMessage() []byte {
	return toMessage(envelope{"session": h.Snapshot()})
}

// send drops a client whose buffer is full.
func (h *Hub) send(c *client, msg []byte) bool {
	select {
	case c.Receive <- msg:
		return true
	default:
		close(c.Receive)
		return false
	}
}

func (h *Hub) toAll(msg []byte) {
	for k := range h.keepers {
		if !h.send(k.client, msg) {
			delete(h.keepers, k)
		}
	}
	for w := range h.watchers {
		if !h.send(w.client, msg) {
			delete(h.watchers, w)
		}
	}
}

type envelope map[string]any

func toMessage(e envelope) []byte {
	msg, err := json.Marshal(e)
	if err != nil {
		msg, _ = json.Marshal(envelope{"error": err.Error()})
	}
	return msg
}
