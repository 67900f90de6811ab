package feed

import (
	"time"

	"homefeed/internal/models"
)

var testBase = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

// seedCatalog builds the shared fixture: comedy (s1, s2 published, s4 draft),
// drama (s3), one uncategorized series (s5) and an empty history category.
func seedCatalog() *models.CatalogStore {
	cs := models.NewCatalogStore()
	cs.Load(&models.CatalogSeed{
		Categories: []*models.Category{
			{ID: "c1", Name: "Comedy", Slug: "comedy"},
			{ID: "c2", Name: "Drama", Slug: "drama"},
			{ID: "c3", Name: "History", Slug: "history"},
		},
		Series: []*models.SeriesSummary{
			{ID: "s1", Title: "Laugh Track", CategoryID: "c1", ViewCount: 100, Status: models.StatusPublished},
			{ID: "s2", Title: "Laugh Lines", CategoryID: "c1", ViewCount: 90, Status: models.StatusPublished},
			{ID: "s3", Title: "Court Case", CategoryID: "c2", ViewCount: 80, Status: models.StatusPublished},
			{ID: "s4", Title: "Hidden Pilot", CategoryID: "c1", ViewCount: 70, Status: models.StatusDraft},
			{ID: "s5", Title: "Standalone", ViewCount: 60, Status: models.StatusPublished},
		},
		Episodes: []*models.EpisodeSummary{
			{ID: "e1", SeriesID: "s1", Order: 1, Title: "Pilot", DurationSeconds: 600, CreatedAt: testBase.Add(-48 * time.Hour), Status: models.StatusPublished},
			{ID: "e2", SeriesID: "s1", Order: 2, Title: "Second", DurationSeconds: 600, CreatedAt: testBase.Add(-2 * time.Hour), Status: models.StatusPublished},
			{ID: "e3", SeriesID: "s2", Order: 1, Title: "Opener", DurationSeconds: 600, CreatedAt: testBase.Add(-1 * time.Hour), Status: models.StatusPublished},
			{ID: "e4", SeriesID: "s3", Order: 1, Title: "Verdict", DurationSeconds: 900, CreatedAt: testBase.Add(-30 * time.Minute), Status: models.StatusPublished},
			{ID: "e5", SeriesID: "s4", Order: 1, Title: "Unaired", DurationSeconds: 600, CreatedAt: testBase.Add(-10 * time.Minute), Status: models.StatusDraft},
			{ID: "e6", SeriesID: "s5", Order: 1, Title: "One Off", DurationSeconds: 300, CreatedAt: testBase.Add(-20 * time.Minute), Status: models.StatusPublished},
			{ID: "e7", SeriesID: "s1", Order: 3, Title: "Cut", DurationSeconds: 600, CreatedAt: testBase.Add(-5 * time.Minute), Status: models.StatusDraft},
		},
	})
	return cs
}

func completedEvent(identity, seriesID, episodeID string, at time.Time) *models.WatchEvent {
	return &models.WatchEvent{
		Identity:        identity,
		SeriesID:        seriesID,
		EpisodeID:       episodeID,
		ProgressSeconds: 600,
		DurationSeconds: 600,
		Completed:       true,
		LastWatched:     at,
	}
}

func partialEvent(identity, seriesID, episodeID string, progress int, at time.Time) *models.WatchEvent {
	return &models.WatchEvent{
		Identity:        identity,
		SeriesID:        seriesID,
		EpisodeID:       episodeID,
		ProgressSeconds: progress,
		DurationSeconds: 600,
		Completed:       false,
		LastWatched:     at,
	}
}

func newTestComposer(catalog CatalogStore, watch WatchStore, clock Clock) *Composer {
	scorer := NewTrendingScorer(catalog, watch, 168*time.Hour, clock)
	cache := NewTrendingCache(scorer, 5*time.Minute, clock)
	cw := NewContinueWatchingSelector(catalog, watch, 20, 5)
	rec := NewRecommendationSelector(catalog, watch, 6)
	return NewComposer(catalog, watch, cache, cw, rec, 10, 8)
}

// errCatalog wraps a CatalogStore and fails the selected calls.
type errCatalog struct {
	CatalogStore
	err error
}

func (c *errCatalog) Categories() ([]*models.Category, error) { return nil, c.err }

// errWatch fails every read.
type errWatch struct {
	err error
}

func (w *errWatch) RecentByIdentity(string, int) ([]*models.WatchEvent, error) { return nil, w.err }
func (w *errWatch) LatestByIdentity(string) (*models.WatchEvent, error)        { return nil, w.err }
func (w *errWatch) LatestForSeries(string, string) (*models.WatchEvent, error) { return nil, w.err }
func (w *errWatch) LatestCompletedForSeries(string, string) (*models.WatchEvent, error) {
	return nil, w.err
}
func (w *errWatch) CompletedInWindow(time.Time, time.Time) ([]*models.WatchEvent, error) {
	return nil, w.err
}
