package pins

import (
	"HoopStatApi/internal/assert"
	"strings"
	"testing"
)

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		assert.Equal(t, seen[id], false)
		seen[id] = true
	}
}

func TestGeneratePin(t *testing.T) {
	pin := GeneratePin(PinLength)
	assert.Equal(t, len(pin), PinLength)
	for _, r := range pin {
		assert.Equal(t, strings.ContainsRune(string(letterRunes), r), true)
	}
}
