package extract

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Serial lets one extraction run at a time. An overlapping call fails fast with ErrBusy instead
// of queueing behind the first.
type Serial struct {
	next Extractor
	sem  *semaphore.Weighted
}

func NewSerial(next Extractor) *Serial {
	return &Serial{
		next: next,
		sem:  semaphore.NewWeighted(1),
	}
}

func (s *Serial) Extract(ctx context.Context, document []byte, mediaType string) ([]Entry, error) {
	if !s.sem.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer s.sem.Release(1)

	return s.next.Extract(ctx, document, mediaType)
}
