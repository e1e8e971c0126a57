// Package extract turns an uploaded schedule document (a photo or a PDF of a team schedule) into
// a list of games.
package extract

import (
	"context"
	"errors"
)

var (
	ErrBusy              = errors.New("a schedule extraction is already in progress")
	ErrMalformedResponse = errors.New("malformed extraction response")
	ErrEmptyDocument     = errors.New("document must not be empty")
)

// Entry is one extracted game. Time is optional.
type Entry struct {
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	Time     string `json:"time,omitempty"`
}

// Result is the JSON contract the extraction service answers with.
type Result struct {
	Games []Entry `json:"games"`
}

type Extractor interface {
	Extract(ctx context.Context, document []byte, mediaType string) ([]Entry, error)
}
