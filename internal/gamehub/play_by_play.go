package gamehub

import "time"

// maxPlays bounds the play log kept per session.
const maxPlays = 50

type Play struct {
	At          time.Time `json:"at"`
	Description string    `json:"description"`
}

type playLog struct {
	plays []Play
}

func (l *playLog) record(at time.Time, description string) {
	l.plays = append(l.plays, Play{At: at, Description: description})
	if len(l.plays) > maxPlays {
		l.plays = l.plays[len(l.plays)-maxPlays:]
	}
}

// recent returns the plays newest first.
func (l *playLog) recent() []Play {
	out := make([]Play, len(l.plays))
	for i, p := range l.plays {
		out[len(l.plays)-1-i] = p
	}
	return out
}
