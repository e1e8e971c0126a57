package gamehub

import (
	"github.com/gorilla/websocket"
)

// Watcher is a read-only websocket client.
type Watcher struct {
	*client
	Hub *Hub
}

func newWatcher(hub *Hub, conn *websocket.Conn) *Watcher {
	return &Watcher{
		client: newClient(conn),
		Hub:    hub,
	}
}

func (w *Watcher) WriteEvents() {
	w.writeEvents(nil)
}

// ReadEvents discards anything the watcher sends and only exists to notice when the connection
// goes away and to handle pongs.
func (w *Watcher) ReadEvents() {
	defer w.Hub.LeaveWatcher(w)
	w.prepareRead()

	for {
		if _, _, err := w.Conn.NextReader(); err != nil {
			return
		}
	}
}
