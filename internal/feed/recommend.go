package feed

import "homefeed/internal/models"

// Recommendation is the "because you watched" block: the seed series and up
// to limit other published series from its category.
type Recommendation struct {
	Source *models.SeriesSummary   `json:"source"`
	Items  []*models.SeriesSummary `json:"items"`
}

// RecommendationSelector seeds from the viewer's single most recent watch
// event, whatever its completion state.
type RecommendationSelector struct {
	catalog CatalogStore
	watch   WatchStore
	limit   int
}

func NewRecommendationSelector(catalog CatalogStore, watch WatchStore, limit int) *RecommendationSelector {
	return &RecommendationSelector{catalog: catalog, watch: watch, limit: limit}
}

// Select returns the recommendation block or nil. Nil is the valid terminal
// state for: anonymous viewer, no history, seed series gone or uncategorized,
// or no other published series in the category.
func (rs *RecommendationSelector) Select(viewer Viewer) (*Recommendation, error) {
	if viewer.IsAnonymous() {
		return nil, nil
	}

	ev, err := rs.watch.LatestByIdentity(viewer.Key())
	if err != nil {
		return nil, storeErr("latest watch event", err)
	}
	if ev == nil {
		return nil, nil
	}

	source, err := rs.catalog.SeriesByID(ev.SeriesID)
	if err != nil {
		return nil, storeErr("resolve seed series", err)
	}
	if source == nil || source.CategoryID == "" {
		return nil, nil
	}

	items, err := rs.catalog.PublishedByCategory(source.CategoryID, source.ID, rs.limit)
	if err != nil {
		return nil, storeErr("related series", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &Recommendation{Source: source, Items: items}, nil
}
