package feed

import (
	"time"

	"homefeed/internal/models"
)

// ContinueWatchingItem is one resumable entry: the episode the viewer left
// off in, with its series and progress.
type ContinueWatchingItem struct {
	Series          *models.SeriesSummary  `json:"series"`
	Episode         *models.EpisodeSummary `json:"episode"`
	ProgressSeconds int                    `json:"progressSeconds"`
	DurationSeconds int                    `json:"durationSeconds"`
	LastWatched     time.Time              `json:"lastWatched"`
}

// ContinueWatchingSelector derives the resume list from the viewer's most
// recent incomplete events. fetch bounds the raw history scan, limit the
// rendered list.
type ContinueWatchingSelector struct {
	catalog CatalogStore
	watch   WatchStore
	fetch   int
	limit   int
}

func NewContinueWatchingSelector(catalog CatalogStore, watch WatchStore, fetch, limit int) *ContinueWatchingSelector {
	return &ContinueWatchingSelector{catalog: catalog, watch: watch, fetch: fetch, limit: limit}
}

// Select returns up to limit incomplete entries ordered lastWatched
// descending. Events missing their series or episode are dropped, as are
// completed ones. categoryID == "" disables the category filter.
// Anonymous viewers get an empty list.
func (cw *ContinueWatchingSelector) Select(viewer Viewer, categoryID string) ([]ContinueWatchingItem, error) {
	if viewer.IsAnonymous() {
		return []ContinueWatchingItem{}, nil
	}

	events, err := cw.watch.RecentByIdentity(viewer.Key(), cw.fetch)
	if err != nil {
		return nil, storeErr("recent watch events", err)
	}

	items := make([]ContinueWatchingItem, 0, cw.limit)
	for _, ev := range events {
		if ev.Completed {
			continue
		}
		series, err := cw.catalog.SeriesByID(ev.SeriesID)
		if err != nil {
			return nil, storeErr("resolve series", err)
		}
		if series == nil {
			continue
		}
		if categoryID != "" && series.CategoryID != categoryID {
			continue
		}
		episode, err := cw.catalog.EpisodeByID(ev.EpisodeID)
		if err != nil {
			return nil, storeErr("resolve episode", err)
		}
		if episode == nil {
			continue
		}
		items = append(items, ContinueWatchingItem{
			Series:          series,
			Episode:         episode,
			ProgressSeconds: ev.ProgressSeconds,
			DurationSeconds: ev.DurationSeconds,
			LastWatched:     ev.LastWatched,
		})
		if len(items) == cw.limit {
			break
		}
	}
	return items, nil
}
