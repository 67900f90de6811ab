package feed

import (
	"time"

	"homefeed/internal/models"
)

// CatalogStore is the slice of the catalog collaborator this core consumes:
// predicate filter, sort by a field with direction, bounded limit, sample
// one random match. Any backend with those capabilities satisfies it.
type CatalogStore interface {
	SeriesByID(id string) (*models.SeriesSummary, error)
	SeriesByIDs(ids []string) ([]*models.SeriesSummary, error)
	PublishedByCategory(categoryID, excludeID string, limit int) ([]*models.SeriesSummary, error)
	SeriesIDsInCategory(categoryID string) ([]string, error)
	RandomPublished() (*models.SeriesSummary, error)
	EpisodeByID(id string) (*models.EpisodeSummary, error)
	LatestPublishedEpisodes(limit int, seriesIDs []string) ([]*models.EpisodeSummary, error)
	LatestPublishedEpisodeBySeries(seriesID string) (*models.EpisodeSummary, error)
	CategoryBySlug(slug string) (*models.Category, error)
	Categories() ([]*models.Category, error)
}

// WatchStore is the watch-progress collaborator surface: filter by identity
// (plus optional series), sort by recency, bounded limit.
type WatchStore interface {
	RecentByIdentity(identity string, limit int) ([]*models.WatchEvent, error)
	LatestByIdentity(identity string) (*models.WatchEvent, error)
	LatestForSeries(identity, seriesID string) (*models.WatchEvent, error)
	LatestCompletedForSeries(identity, seriesID string) (*models.WatchEvent, error)
	CompletedInWindow(from, to time.Time) ([]*models.WatchEvent, error)
}

// Clock abstracts time for the trending window and cache expiry so tests
// can drive both deterministically.
type Clock func() time.Time
