package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemover keeps publication times in memory and deletes the ones before
// the cutoff, like the articles table would.
type fakeRemover struct {
	published []time.Time
	lastCut   time.Time
}

func (f *fakeRemover) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.lastCut = cutoff

	var kept []time.Time
	var deleted int64
	for _, ts := range f.published {
		if ts.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, ts)
	}
	f.published = kept
	return deleted, nil
}

func TestSweepCutoff(t *testing.T) {
	remover := &fakeRemover{}
	now := time.Date(2025, 8, 11, 12, 0, 0, 0, time.UTC)

	_, err := New(remover, 7*24*time.Hour).Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.True(t, remover.lastCut.Equal(now.AddDate(0, 0, -7)))
}

func TestSweepRetention(t *testing.T) {
	now := time.Date(2025, 8, 11, 12, 0, 0, 0, time.UTC)
	remover := &fakeRemover{published: []time.Time{
		now.AddDate(0, 0, -8),
		now.AddDate(0, 0, -1),
	}}

	deleted, err := New(remover, 7*24*time.Hour).Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	require.Len(t, remover.published, 1)
	assert.True(t, remover.published[0].Equal(now.AddDate(0, 0, -1)))
}

func TestSweepIdempotent(t *testing.T) {
	now := time.Date(2025, 8, 11, 12, 0, 0, 0, time.UTC)
	remover := &fakeRemover{published: []time.Time{
		now.AddDate(0, 0, -8),
		now.AddDate(0, 0, -1),
	}}
	s := New(remover, 7*24*time.Hour)

	first, err := s.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := s.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, second)
}

func TestSweepDefaultHorizon(t *testing.T) {
	remover := &fakeRemover{}
	now := time.Date(2025, 8, 11, 12, 0, 0, 0, time.UTC)

	_, err := New(remover, 0).Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.True(t, remover.lastCut.Equal(now.Add(-DefaultHorizon)))
}
