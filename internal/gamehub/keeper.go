package gamehub

import (
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"
)

// Keeper is a websocket client that records events for the session.
type Keeper struct {
	*client
	Hub *Hub

	// errors for this keeper only, such as an event that failed to parse
	replies chan []byte
}

func newKeeper(hub *Hub, conn *websocket.Conn) *Keeper {
	return &Keeper{
		client:  newClient(conn),
		Hub:     hub,
		replies: make(chan []byte, clientBuffer),
	}
}

func (k *Keeper) WriteEvents() {
	k.writeEvents(k.replies)
}

func (k *Keeper) ReadEvents() {
	defer k.Hub.LeaveKeeper(k)
	k.prepareRead()

	for {
		_, msg, err := k.Conn.ReadMessage()
		if err != nil {
			return
		}

		var generic GenericEvent
		if err := json.Unmarshal(msg, &generic); err != nil {
			k.reply(errors.New("event must be a JSON object"))
			continue
		}

		event, err := generic.Parse()
		if err != nil {
			k.reply(err)
			continue
		}

		if _, err := k.Hub.Apply(event); err != nil {
			if errors.Is(err, ErrSessionClosed) {
				return
			}
			k.reply(err)
		}
	}
}

func (k *Keeper) reply(err error) {
	select {
	case k.replies <- toMessage(envelope{"error": err.Error()}):
	default:
	}
}
