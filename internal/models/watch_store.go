package models

import (
	"sort"
	"sync"
	"time"
)

// WatchStore holds watch-progress events keyed by (identity, episode).
// Upserts come from the progress ingest path; everything else is bounded
// reads. Thread-safe: all public methods acquire ws.mu internally.
type WatchStore struct {
	mu     sync.RWMutex
	events map[string]map[string]*WatchEvent // identity → episodeID → event
}

func NewWatchStore() *WatchStore {
	return &WatchStore{
		events: make(map[string]map[string]*WatchEvent),
	}
}

// Upsert stores the event, replacing any previous event for the same
// (identity, episode) pair.
func (ws *WatchStore) Upsert(ev *WatchEvent) error {
	if ev == nil || ev.Identity == "" || ev.EpisodeID == "" {
		return nil
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	byEpisode, ok := ws.events[ev.Identity]
	if !ok {
		byEpisode = make(map[string]*WatchEvent)
		ws.events[ev.Identity] = byEpisode
	}
	cp := *ev
	byEpisode[ev.EpisodeID] = &cp
	return nil
}

// RecentByIdentity returns up to limit events for the identity ordered by
// lastWatched descending (episode id ascending on equal timestamps).
func (ws *WatchStore) RecentByIdentity(identity string, limit int) ([]*WatchEvent, error) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	byEpisode := ws.events[identity]
	out := make([]*WatchEvent, 0, len(byEpisode))
	for _, ev := range byEpisode {
		cp := *ev
		out = append(out, &cp)
	}
	sortByRecency(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LatestByIdentity returns the single most recent event for the identity
// regardless of completion state, or nil when there is no history.
func (ws *WatchStore) LatestByIdentity(identity string) (*WatchEvent, error) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return latest(ws.events[identity], func(*WatchEvent) bool { return true }), nil
}

// LatestForSeries returns the most recent event for (identity, series),
// or nil when the viewer never touched the series.
func (ws *WatchStore) LatestForSeries(identity, seriesID string) (*WatchEvent, error) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return latest(ws.events[identity], func(ev *WatchEvent) bool { return ev.SeriesID == seriesID }), nil
}

// LatestCompletedForSeries returns the most recent completed event for
// (identity, series), or nil when nothing was completed.
func (ws *WatchStore) LatestCompletedForSeries(identity, seriesID string) (*WatchEvent, error) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return latest(ws.events[identity], func(ev *WatchEvent) bool {
		return ev.SeriesID == seriesID && ev.Completed
	}), nil
}

// CompletedInWindow returns every completed event with lastWatched inside
// [from, to], ordered by lastWatched descending. The ordering makes the
// scan deterministic for downstream grouping.
func (ws *WatchStore) CompletedInWindow(from, to time.Time) ([]*WatchEvent, error) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	var out []*WatchEvent
	for _, byEpisode := range ws.events {
		for _, ev := range byEpisode {
			if !ev.Completed {
				continue
			}
			if ev.LastWatched.Before(from) || ev.LastWatched.After(to) {
				continue
			}
			cp := *ev
			out = append(out, &cp)
		}
	}
	sortByRecency(out)
	return out, nil
}

func (ws *WatchStore) EventCount() int {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	n := 0
	for _, byEpisode := range ws.events {
		n += len(byEpisode)
	}
	return n
}

// GetSnapshot copies the full event set into a persistence envelope.
func (ws *WatchStore) GetSnapshot() *Snapshot {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	snap := &Snapshot{Version: SnapshotVersion}
	for _, byEpisode := range ws.events {
		for _, ev := range byEpisode {
			cp := *ev
			snap.WatchEvents = append(snap.WatchEvents, &cp)
		}
	}
	sortByRecency(snap.WatchEvents)
	return snap
}

// PutSnapshot replaces the store content with the snapshot's events.
func (ws *WatchStore) PutSnapshot(snap *Snapshot) {
	if snap == nil {
		return
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.events = make(map[string]map[string]*WatchEvent)
	for _, ev := range snap.WatchEvents {
		if ev == nil || ev.Identity == "" || ev.EpisodeID == "" {
			continue
		}
		byEpisode, ok := ws.events[ev.Identity]
		if !ok {
			byEpisode = make(map[string]*WatchEvent)
			ws.events[ev.Identity] = byEpisode
		}
		cp := *ev
		byEpisode[ev.EpisodeID] = &cp
	}
}

func sortByRecency(events []*WatchEvent) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].LastWatched.Equal(events[j].LastWatched) {
			return events[i].LastWatched.After(events[j].LastWatched)
		}
		return events[i].EpisodeID < events[j].EpisodeID
	})
}

func latest(byEpisode map[string]*WatchEvent, match func(*WatchEvent) bool) *WatchEvent {
	var best *WatchEvent
	for _, ev := range byEpisode {
		if !match(ev) {
			continue
		}
		if best == nil || ev.LastWatched.After(best.LastWatched) ||
			(ev.LastWatched.Equal(best.LastWatched) && ev.EpisodeID < best.EpisodeID) {
			best = ev
		}
	}
	if best == nil {
		return nil
	}
	cp := *best
	return &cp
}
