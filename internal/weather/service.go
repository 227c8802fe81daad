package weather

import (
	"context"
	"log"
	"time"
)

// Service drives ingestion from the upstream source into the history store.
// Backfill and Poll are not safe to invoke concurrently with themselves; the
// scheduler serializes them.
type Service struct {
	store     Store
	source    Source
	window    time.Duration
	pageLimit int
}

// NewService creates a new Service retaining a rolling window of the given
// duration.
func NewService(store Store, source Source, window time.Duration, pageLimit int) *Service {
	return &Service{
		store:     store,
		source:    source,
		window:    window,
		pageLimit: pageLimit,
	}
}

// Backfill rebuilds the entire window from the upstream range endpoint,
// replacing whatever the store currently holds. Any upstream failure
// propagates to the caller and leaves the store untouched.
func (s *Service) Backfill(ctx context.Context, now time.Time) error {
	end := now.UTC().Truncate(time.Second)
	start := end.Add(-s.window)

	samples, err := s.source.FetchRange(ctx, start, end, s.pageLimit)
	if err != nil {
		return err
	}

	s.store.ReplaceAll(samples)
	log.Printf("backfill: loaded %d observations", len(samples))
	return nil
}

// Poll fetches the latest observation and appends it when its timestamp
// differs from the stored tail. A non-success upstream response, a missing
// timestamp, or a duplicate timestamp skips the cycle; nothing is mutated.
func (s *Service) Poll(ctx context.Context) {
	sample, err := s.source.FetchLatest(ctx)
	if err != nil {
		log.Printf("poll: fetch latest failed: %v", err)
		return
	}
	if sample == nil || sample.Timestamp == "" {
		return
	}
	if s.store.AppendIfNew(*sample) {
		log.Printf("poll: appended observation %s", sample.Timestamp)
	}
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Sample, bool) {
	return s.store.Latest()
}

// History delegates to the underlying store.
func (s *Service) History() []Sample {
	return s.store.Snapshot()
}
