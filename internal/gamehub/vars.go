package gamehub

import (
	"errors"
	"time"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 1 * time.Minute

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Buffered messages per client before it is dropped as too slow.
	clientBuffer = 16

	// Attempts at finding an unused session pin.
	maxPinAttempts = 10
)

var (
	newline                  = []byte{'\n'}
	ErrEventParseFailed      = errors.New("could not parse tracking event")
	ErrEventValidationFailed = errors.New("event validation failed")
	ErrSessionNotFound       = errors.New("tracking session not found")
	ErrSessionClosed         = errors.New("tracking session closed")
)
