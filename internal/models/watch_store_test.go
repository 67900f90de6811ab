package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var watchBase = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func event(identity, seriesID, episodeID string, completed bool, at time.Time) *WatchEvent {
	return &WatchEvent{
		Identity:        identity,
		SeriesID:        seriesID,
		EpisodeID:       episodeID,
		ProgressSeconds: 120,
		DurationSeconds: 600,
		Completed:       completed,
		LastWatched:     at,
	}
}

func TestWatchStore_UpsertReplacesSameEpisode(t *testing.T) {
	ws := NewWatchStore()
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", false, watchBase.Add(-2*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", true, watchBase.Add(-1*time.Hour))))

	assert.Equal(t, 1, ws.EventCount())
	ev, err := ws.LatestByIdentity("u:a")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.True(t, ev.Completed)
	assert.Equal(t, watchBase.Add(-1*time.Hour), ev.LastWatched)
}

func TestWatchStore_UpsertIgnoresInvalid(t *testing.T) {
	ws := NewWatchStore()
	require.NoError(t, ws.Upsert(nil))
	require.NoError(t, ws.Upsert(event("", "s1", "e1", false, watchBase)))
	require.NoError(t, ws.Upsert(event("u:a", "s1", "", false, watchBase)))
	assert.Equal(t, 0, ws.EventCount())
}

func TestWatchStore_RecentByIdentity(t *testing.T) {
	ws := NewWatchStore()
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", false, watchBase.Add(-3*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e2", false, watchBase.Add(-1*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:a", "s2", "e3", false, watchBase.Add(-2*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:b", "s1", "e1", false, watchBase)))

	out, err := ws.RecentByIdentity("u:a", 10)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "e2", out[0].EpisodeID)
	assert.Equal(t, "e3", out[1].EpisodeID)
	assert.Equal(t, "e1", out[2].EpisodeID)
}

func TestWatchStore_RecentByIdentityLimit(t *testing.T) {
	ws := NewWatchStore()
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", false, watchBase.Add(-2*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e2", false, watchBase.Add(-1*time.Hour))))

	out, err := ws.RecentByIdentity("u:a", 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "e2", out[0].EpisodeID)
}

func TestWatchStore_RecentByIdentityTieBreak(t *testing.T) {
	ws := NewWatchStore()
	at := watchBase.Add(-1 * time.Hour)
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e2", false, at)))
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", false, at)))

	out, err := ws.RecentByIdentity("u:a", 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "e1", out[0].EpisodeID)
	assert.Equal(t, "e2", out[1].EpisodeID)
}

func TestWatchStore_LatestByIdentityEmpty(t *testing.T) {
	ws := NewWatchStore()
	ev, err := ws.LatestByIdentity("u:nobody")
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestWatchStore_LatestForSeries(t *testing.T) {
	ws := NewWatchStore()
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", false, watchBase.Add(-2*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e2", false, watchBase.Add(-1*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:a", "s2", "e3", false, watchBase)))

	ev, err := ws.LatestForSeries("u:a", "s1")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "e2", ev.EpisodeID)

	none, err := ws.LatestForSeries("u:a", "s9")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestWatchStore_LatestCompletedForSeries(t *testing.T) {
	ws := NewWatchStore()
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", true, watchBase.Add(-3*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e2", false, watchBase.Add(-1*time.Hour))))

	ev, err := ws.LatestCompletedForSeries("u:a", "s1")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "e1", ev.EpisodeID)
}

func TestWatchStore_CompletedInWindow(t *testing.T) {
	ws := NewWatchStore()
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", true, watchBase.Add(-1*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:b", "s1", "e1", true, watchBase.Add(-200*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:c", "s2", "e3", false, watchBase.Add(-2*time.Hour))))
	require.NoError(t, ws.Upsert(event("u:d", "s2", "e3", true, watchBase.Add(-3*time.Hour))))

	out, err := ws.CompletedInWindow(watchBase.Add(-168*time.Hour), watchBase)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// lastWatched descending
	assert.Equal(t, "u:a", out[0].Identity)
	assert.Equal(t, "u:d", out[1].Identity)
}

func TestWatchStore_CompletedInWindowBoundsInclusive(t *testing.T) {
	ws := NewWatchStore()
	from := watchBase.Add(-168 * time.Hour)
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", true, from)))
	require.NoError(t, ws.Upsert(event("u:b", "s1", "e2", true, watchBase)))

	out, err := ws.CompletedInWindow(from, watchBase)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestWatchStore_SnapshotRoundtrip(t *testing.T) {
	ws := NewWatchStore()
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", true, watchBase.Add(-1*time.Hour))))
	require.NoError(t, ws.Upsert(event("g:x", "s2", "e3", false, watchBase.Add(-2*time.Hour))))

	snap := ws.GetSnapshot()
	assert.Equal(t, SnapshotVersion, snap.Version)
	require.Len(t, snap.WatchEvents, 2)

	restored := NewWatchStore()
	restored.PutSnapshot(snap)
	assert.Equal(t, 2, restored.EventCount())

	ev, err := restored.LatestByIdentity("g:x")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "e3", ev.EpisodeID)
}

func TestWatchStore_PutSnapshotReplaces(t *testing.T) {
	ws := NewWatchStore()
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", false, watchBase)))

	ws.PutSnapshot(&Snapshot{Version: SnapshotVersion, WatchEvents: []*WatchEvent{
		event("u:b", "s2", "e3", true, watchBase),
	}})

	assert.Equal(t, 1, ws.EventCount())
	ev, err := ws.LatestByIdentity("u:a")
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestWatchStore_PutSnapshotSkipsInvalid(t *testing.T) {
	ws := NewWatchStore()
	ws.PutSnapshot(&Snapshot{Version: SnapshotVersion, WatchEvents: []*WatchEvent{
		nil,
		event("", "s1", "e1", false, watchBase),
		event("u:a", "s1", "", false, watchBase),
		event("u:a", "s1", "e1", false, watchBase),
	}})
	assert.Equal(t, 1, ws.EventCount())
}

func TestWatchStore_ReadsReturnCopies(t *testing.T) {
	ws := NewWatchStore()
	require.NoError(t, ws.Upsert(event("u:a", "s1", "e1", false, watchBase)))

	ev, err := ws.LatestByIdentity("u:a")
	require.NoError(t, err)
	ev.ProgressSeconds = 999

	again, err := ws.LatestByIdentity("u:a")
	require.NoError(t, err)
	assert.Equal(t, 120, again.ProgressSeconds)
}
