package gamehub

import (
	"HoopStatApi/internal/assert"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type sessionMessage struct {
	Session *Snapshot `json:"session"`
	Error   string    `json:"error"`
}

func readMessage(t *testing.T, conn *websocket.Conn) sessionMessage {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	assert.NilError(t, err)

	// several queued messages may arrive newline separated; the last one is the newest
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	var msg sessionMessage
	err = json.Unmarshal([]byte(lines[len(lines)-1]), &msg)
	assert.NilError(t, err)
	return msg
}

func TestKeeperEventsReachWatchers(t *testing.T) {
	r, _, player := newTestRegistry(t)

	hub, err := r.Start(player.ID)
	assert.NilError(t, err)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		if req.URL.Path == "/keep" {
			_ = hub.JoinKeeper(conn)
		} else {
			_ = hub.JoinWatcher(conn)
		}
	}))
	defer srv.Close()

	base := "ws" + strings.TrimPrefix(srv.URL, "http")

	watcher, _, err := websocket.DefaultDialer.Dial(base+"/watch", nil)
	assert.NilError(t, err)
	defer watcher.Close()

	first := readMessage(t, watcher)
	assert.Equal(t, first.Session.ID, hub.ID)

	keeper, _, err := websocket.DefaultDialer.Dial(base+"/keep", nil)
	assert.NilError(t, err)
	defer keeper.Close()
	_ = readMessage(t, keeper)

	err = keeper.WriteMessage(websocket.TextMessage, []byte(`{"shot":"3pt","action":"make"}`))
	assert.NilError(t, err)

	update := readMessage(t, watcher)
	assert.Equal(t, update.Session.Box.ThreePm, 1)
	assert.Equal(t, update.Session.Derived.Points, 3)

	err = keeper.WriteMessage(websocket.TextMessage, []byte(`{"stat":"dunks","action":"add"}`))
	assert.NilError(t, err)

	// the keeper also got the 3pt update, then the error
	var reply sessionMessage
	for i := 0; i < 2 && reply.Error == ""; i++ {
		reply = readMessage(t, keeper)
	}
	assert.StringContains(t, reply.Error, "dunks")

	err = r.Cancel(hub.ID)
	assert.NilError(t, err)

	_ = watcher.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = watcher.ReadMessage()
	assert.Equal(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), true)
}
