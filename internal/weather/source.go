package weather

import (
	"context"
	"time"
)

// Source abstracts the upstream observation feed for a single station.
type Source interface {
	// FetchRange returns every observation between start and end, sorted
	// ascending by timestamp string.
	FetchRange(ctx context.Context, start, end time.Time, limit int) ([]Sample, error)

	// FetchLatest returns the most recent observation, or nil (without an
	// error) when the upstream answered with a non-success status.
	FetchLatest(ctx context.Context) (*Sample, error)
}

// Store is the contract the in-memory history store (and any future
// persistent store) must satisfy.
type Store interface {
	ReplaceAll(samples []Sample)
	AppendIfNew(sample Sample) bool
	Latest() (Sample, bool)
	Snapshot() []Sample
}
