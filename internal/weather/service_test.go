package weather

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSource struct {
	rangeSamples []Sample
	rangeErr     error
	latest       *Sample
	latestErr    error
}

func (f *fakeSource) FetchRange(_ context.Context, _, _ time.Time, _ int) ([]Sample, error) {
	return f.rangeSamples, f.rangeErr
}

func (f *fakeSource) FetchLatest(_ context.Context) (*Sample, error) {
	return f.latest, f.latestErr
}

type fakeStore struct {
	samples []Sample
}

func (f *fakeStore) ReplaceAll(samples []Sample) {
	f.samples = append([]Sample(nil), samples...)
}

func (f *fakeStore) AppendIfNew(sample Sample) bool {
	if n := len(f.samples); n > 0 && f.samples[n-1].Timestamp == sample.Timestamp {
		return false
	}
	f.samples = append(f.samples, sample)
	return true
}

func (f *fakeStore) Latest() (Sample, bool) {
	if len(f.samples) == 0 {
		return Sample{}, false
	}
	return f.samples[len(f.samples)-1], true
}

func (f *fakeStore) Snapshot() []Sample { return f.samples }

func TestBackfillReplacesStore(t *testing.T) {
	src := &fakeSource{rangeSamples: []Sample{
		{Timestamp: "2025-09-05T12:00:00+00:00"},
		{Timestamp: "2025-09-05T13:00:00+00:00"},
	}}
	st := &fakeStore{samples: []Sample{{Timestamp: "stale"}}}

	svc := NewService(st, src, 48*time.Hour, 1000)
	if err := svc.Backfill(context.Background(), time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(st.samples) != 2 || st.samples[0].Timestamp != "2025-09-05T12:00:00+00:00" {
		t.Fatalf("store should hold the backfilled window, got %v", st.samples)
	}
}

func TestBackfillPropagatesUpstreamError(t *testing.T) {
	src := &fakeSource{rangeErr: errors.New("status 502")}
	st := &fakeStore{samples: []Sample{{Timestamp: "2025-09-05T12:00:00+00:00"}}}

	svc := NewService(st, src, 48*time.Hour, 1000)
	if err := svc.Backfill(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error from upstream")
	}
	if len(st.samples) != 1 {
		t.Fatal("a failed backfill must leave the store untouched")
	}
}

func TestPollAppendsNewObservation(t *testing.T) {
	src := &fakeSource{latest: &Sample{Timestamp: "2025-09-05T14:00:00+00:00"}}
	st := &fakeStore{samples: []Sample{{Timestamp: "2025-09-05T13:55:00+00:00"}}}

	svc := NewService(st, src, 48*time.Hour, 1000)
	svc.Poll(context.Background())

	if len(st.samples) != 2 {
		t.Fatalf("expected appended observation, got %v", st.samples)
	}
}

func TestPollSkipsWhenLatestAbsent(t *testing.T) {
	src := &fakeSource{latest: nil}
	st := &fakeStore{samples: []Sample{{Timestamp: "2025-09-05T13:55:00+00:00"}}}

	svc := NewService(st, src, 48*time.Hour, 1000)
	svc.Poll(context.Background())

	if len(st.samples) != 1 {
		t.Fatal("an absent latest observation must be a no-op")
	}
}

func TestPollSkipsEmptyTimestamp(t *testing.T) {
	src := &fakeSource{latest: &Sample{}}
	st := &fakeStore{}

	svc := NewService(st, src, 48*time.Hour, 1000)
	svc.Poll(context.Background())

	if len(st.samples) != 0 {
		t.Fatal("an observation without a timestamp must be a no-op")
	}
}

func TestPollSkipsDuplicateTimestamp(t *testing.T) {
	ts := "2025-09-05T14:00:00+00:00"
	src := &fakeSource{latest: &Sample{Timestamp: ts}}
	st := &fakeStore{samples: []Sample{{Timestamp: ts}}}

	svc := NewService(st, src, 48*time.Hour, 1000)
	svc.Poll(context.Background())

	if len(st.samples) != 1 {
		t.Fatal("a duplicate timestamp must be a no-op")
	}
}

func TestPollSkipsOnFetchError(t *testing.T) {
	src := &fakeSource{latestErr: errors.New("network down")}
	st := &fakeStore{}

	svc := NewService(st, src, 48*time.Hour, 1000)
	svc.Poll(context.Background())

	if len(st.samples) != 0 {
		t.Fatal("a failed fetch must not mutate the store")
	}
}
