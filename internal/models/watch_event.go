package models

import "time"

// WatchEvent is one viewer's progress against one episode. Unique per
// (identity, episode); upserted on every progress save, never deleted.
type WatchEvent struct {
	Identity        string    `json:"identity"`
	SeriesID        string    `json:"seriesId"`
	EpisodeID       string    `json:"episodeId"`
	ProgressSeconds int       `json:"progressSeconds"`
	DurationSeconds int       `json:"durationSeconds"`
	Completed       bool      `json:"completed"`
	LastWatched     time.Time `json:"lastWatched"`
}

// Snapshot is the persistence envelope for the watch store.
// Version bumps whenever the event shape changes incompatibly.
type Snapshot struct {
	Version     int           `json:"version"`
	WatchEvents []*WatchEvent `json:"watch_events"`
}

const SnapshotVersion = 1
