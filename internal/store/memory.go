package store

import (
	"sync"
	"time"

	"github.com/mcphersonwx/station-weather/internal/weather"
)

// MemoryStore is a concurrency-safe rolling window of observation samples,
// ordered oldest-first by timestamp. It is never persisted; a restart loses
// the window and a fresh backfill rebuilds it.
type MemoryStore struct {
	mu      sync.RWMutex
	samples []weather.Sample

	// maxAge is the retention window; samples older than now-maxAge are
	// pruned after every mutation.
	maxAge time.Duration
}

// NewMemoryStore creates an empty store retaining samples no older than maxAge.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{maxAge: maxAge}
}

// ReplaceAll discards the current contents and installs samples, which the
// caller must already have sorted ascending by timestamp, then prunes.
func (s *MemoryStore) ReplaceAll(samples []weather.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples = append([]weather.Sample(nil), samples...)
	s.prune()
}

// AppendIfNew appends sample unless its timestamp string equals the newest
// stored timestamp, then prunes. Only the tail is checked: the upstream
// latest endpoint moves forward in time and backfill rebuilds the window
// wholesale, so a mid-sequence duplicate is not guarded against.
func (s *MemoryStore) AppendIfNew(sample weather.Sample) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.samples); n > 0 && s.samples[n-1].Timestamp == sample.Timestamp {
		return false
	}
	s.samples = append(s.samples, sample)
	s.prune()
	return true
}

// Prune drops every sample older than the retention window, evaluated
// against the wall clock at call time.
func (s *MemoryStore) Prune() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
}

// prune must be called with the write lock held. A sample whose timestamp
// fails to parse is dropped rather than failing the pass.
func (s *MemoryStore) prune() {
	cutoff := time.Now().UTC().Add(-s.maxAge)

	kept := s.samples[:0]
	for _, sample := range s.samples {
		ts, err := time.Parse(time.RFC3339, sample.Timestamp)
		if err != nil {
			continue
		}
		if !ts.Before(cutoff) {
			kept = append(kept, sample)
		}
	}
	s.samples = kept
}

// Latest returns the newest stored sample.
func (s *MemoryStore) Latest() (weather.Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.samples) == 0 {
		return weather.Sample{}, false
	}
	return s.samples[len(s.samples)-1], true
}

// LatestTimestamp returns the timestamp string of the newest stored sample.
func (s *MemoryStore) LatestTimestamp() (string, bool) {
	sample, ok := s.Latest()
	return sample.Timestamp, ok
}

// Snapshot returns a copy of the current window, oldest first. The copy is
// safe to read while the store keeps mutating.
func (s *MemoryStore) Snapshot() []weather.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]weather.Sample, len(s.samples))
	copy(out, s.samples)
	return out
}
