package feed

import (
	"sort"

	"homefeed/internal/models"
)

// FollowingUpdate pairs a followed series with its newest published episode
// the viewer has not completed past.
type FollowingUpdate struct {
	Series        *models.SeriesSummary  `json:"series"`
	LatestEpisode *models.EpisodeSummary `json:"latestEpisode"`
}

// FollowingUpdates reports, for each given series, the latest published
// episode created after the viewer's last completed watch of that series.
// A viewer with no completed watch of a series sees its latest episode.
// Series with no qualifying episode are omitted; result is ordered by
// episode creation time descending.
func (c *Composer) FollowingUpdates(viewer Viewer, seriesIDs []string) ([]FollowingUpdate, error) {
	if err := ValidateIDList(seriesIDs); err != nil {
		return nil, err
	}

	updates := make([]FollowingUpdate, 0, len(seriesIDs))
	for _, id := range seriesIDs {
		series, err := c.catalog.SeriesByID(id)
		if err != nil {
			return nil, storeErr("resolve followed series", err)
		}
		if series == nil {
			continue
		}
		episode, err := c.catalog.LatestPublishedEpisodeBySeries(id)
		if err != nil {
			return nil, storeErr("latest episode", err)
		}
		if episode == nil {
			continue
		}
		if !viewer.IsAnonymous() {
			last, err := c.watch.LatestCompletedForSeries(viewer.Key(), id)
			if err != nil {
				return nil, storeErr("last completed watch", err)
			}
			if last != nil && !episode.CreatedAt.After(last.LastWatched) {
				continue
			}
		}
		updates = append(updates, FollowingUpdate{Series: series, LatestEpisode: episode})
	}

	sort.Slice(updates, func(i, j int) bool {
		a, b := updates[i].LatestEpisode, updates[j].LatestEpisode
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return updates, nil
}
