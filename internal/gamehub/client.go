package gamehub

import (
	"time"

	"github.com/gorilla/websocket"
)

// client is the write side shared by keepers and watchers. The hub owns Receive and closes it
// when the client leaves.
type client struct {
	Conn    *websocket.Conn
	Receive chan []byte
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		Conn:    conn,
		Receive: make(chan []byte, clientBuffer),
	}
}

// writeEvents pumps messages from Receive, and from direct when it is not nil, to the connection
// until Receive is closed or a write fails.
func (c *client) writeEvents(direct <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Receive:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				return
			}

			writer, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = writer.Write(msg)

			n := len(c.Receive)
			for i := 0; i < n; i++ {
				_, _ = writer.Write(newline)
				_, _ = writer.Write(<-c.Receive)
			}

			if err := writer.Close(); err != nil {
				return
			}
		case msg := <-direct:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) prepareRead() {
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}
