package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YunKonstantin/timer-final/internal/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndListSessions(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, d := range []time.Duration{30 * time.Second, 90 * time.Second, 5 * time.Minute} {
		rec := &models.SessionRecord{
			Kind:      models.KindCountdown,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			EndedAt:   base.Add(time.Duration(i)*time.Hour + d),
			Duration:  d,
		}
		require.NoError(t, db.SaveSession(ctx, rec))
		assert.NotZero(t, rec.ID)
	}
	require.NoError(t, db.SaveSession(ctx, &models.SessionRecord{
		Kind:      models.KindStopwatch,
		StartedAt: base,
		EndedAt:   base.Add(1500 * time.Millisecond),
		Duration:  1500 * time.Millisecond,
	}))

	end := base.Add(24 * time.Hour)

	recent, err := db.RecentSessions(ctx, models.KindCountdown, time.Time{}, end, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 5*time.Minute, recent[0].Duration)
	assert.Equal(t, 90*time.Second, recent[1].Duration)
	assert.True(t, recent[0].StartedAt.Equal(base.Add(2*time.Hour)))
	assert.Equal(t, models.KindCountdown, recent[0].Kind)

	sw, err := db.RecentSessions(ctx, models.KindStopwatch, time.Time{}, end, 10)
	require.NoError(t, err)
	require.Len(t, sw, 1)
	assert.Equal(t, 1500*time.Millisecond, sw[0].Duration)

	// Only sessions inside the range are listed.
	ranged, err := db.RecentSessions(ctx, models.KindCountdown, base.Add(30*time.Minute), base.Add(90*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, 90*time.Second, ranged[0].Duration)
}

func TestSessionStats(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, d := range []time.Duration{time.Minute, 3 * time.Minute} {
		start := base.Add(time.Duration(i) * 24 * time.Hour)
		require.NoError(t, db.SaveSession(ctx, &models.SessionRecord{
			Kind: models.KindCountdown, StartedAt: start, EndedAt: start.Add(d), Duration: d,
		}))
	}

	all, err := db.SessionStats(ctx, models.KindCountdown, time.Time{}, base.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, all.Sessions)
	assert.Equal(t, 4*time.Minute, all.Total)
	assert.Equal(t, 2*time.Minute, all.Average)
	assert.Equal(t, 3*time.Minute, all.Longest)

	firstDay, err := db.SessionStats(ctx, models.KindCountdown, base, base.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, firstDay.Sessions)
	assert.Equal(t, time.Minute, firstDay.Total)

	none, err := db.SessionStats(ctx, models.KindStopwatch, time.Time{}, base.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, &models.SessionStats{}, none)
}
