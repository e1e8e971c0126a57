package pins

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
)

var (
	ErrDuplicatePin = errors.New("duplicate pin")
	letterRunes     = []rune("abcdefghijklmnopqrstuvwxyz1234567890")
)

// PinLength is the length of the short codes handed out for live tracking sessions.
const PinLength = 6

// New returns a fresh opaque identity for a stored record.
func New() string {
	return uuid.NewString()
}

// GeneratePin returns a random lowercase code of length l. Codes are short enough to read out
// loud, so callers check them for collisions.
func GeneratePin(l int) string {
	b := make([]rune, l)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}
	return string(b)
}
