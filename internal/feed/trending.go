package feed

import (
	"sort"
	"time"

	"homefeed/internal/models"
)

// ScoredSeries is one ranked trending entry. Score is the completion count
// inside the window; never fabricated, zero stays zero.
type ScoredSeries struct {
	Series *models.SeriesSummary `json:"series"`
	Score  int                   `json:"score"`
	Rank   int                   `json:"rank"`
}

// TrendingScorer ranks series by completed watch events inside a rolling
// window. Candidates are over-fetched at twice the requested limit so the
// published/category filter does not starve the result.
type TrendingScorer struct {
	catalog CatalogStore
	watch   WatchStore
	window  time.Duration
	clock   Clock
}

func NewTrendingScorer(catalog CatalogStore, watch WatchStore, window time.Duration, clock Clock) *TrendingScorer {
	if clock == nil {
		clock = time.Now
	}
	return &TrendingScorer{catalog: catalog, watch: watch, window: window, clock: clock}
}

// Rank computes the top limit series by completion count. categoryID == ""
// means no category filter. No completions in the window yields an empty
// list, not an error.
//
// Tie-break: events arrive lastWatched-descending and groups keep first-seen
// order under a stable sort, so equal scores order by most recent completion.
func (ts *TrendingScorer) Rank(categoryID string, limit int) ([]ScoredSeries, error) {
	now := ts.clock()
	events, err := ts.watch.CompletedInWindow(now.Add(-ts.window), now)
	if err != nil {
		return nil, storeErr("completions in window", err)
	}
	if len(events) == 0 {
		return []ScoredSeries{}, nil
	}

	scores := make(map[string]int, len(events))
	order := make([]string, 0, len(events))
	for _, ev := range events {
		if ev.SeriesID == "" {
			continue
		}
		if _, seen := scores[ev.SeriesID]; !seen {
			order = append(order, ev.SeriesID)
		}
		scores[ev.SeriesID]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if len(order) > 2*limit {
		order = order[:2*limit]
	}

	resolved, err := ts.catalog.SeriesByIDs(order)
	if err != nil {
		return nil, storeErr("resolve trending candidates", err)
	}
	byID := make(map[string]*models.SeriesSummary, len(resolved))
	for _, s := range resolved {
		byID[s.ID] = s
	}

	ranked := make([]ScoredSeries, 0, limit)
	for _, id := range order {
		s, ok := byID[id]
		if !ok || s.Status != models.StatusPublished {
			continue
		}
		if categoryID != "" && s.CategoryID != categoryID {
			continue
		}
		ranked = append(ranked, ScoredSeries{Series: s, Score: scores[id], Rank: len(ranked) + 1})
		if len(ranked) == limit {
			break
		}
	}
	return ranked, nil
}
