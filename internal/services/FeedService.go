package services

import (
	"context"
	"time"

	"homefeed/internal/feed"
	"homefeed/internal/models"
	"homefeed/internal/structures"
)

const maxTrendingLimit = 50

// ProgressInput is the ingest payload for one progress save.
type ProgressInput struct {
	SeriesID        string `json:"seriesId"`
	EpisodeID       string `json:"episodeId"`
	ProgressSeconds int    `json:"progressSeconds"`
	DurationSeconds int    `json:"durationSeconds"`
	Completed       bool   `json:"completed"`
}

type FeedServiceInterface interface {
	HomeFeed(ctx context.Context, viewer feed.Viewer, categorySlug string) (*feed.HomeFeed, error)
	Trending(categorySlug string, limit int) ([]feed.ScoredSeries, error)
	FollowingUpdates(viewer feed.Viewer, seriesIDs []string) ([]feed.FollowingUpdate, error)
	SaveProgress(viewer feed.Viewer, in *ProgressInput) error
	GetSnapshot() *models.Snapshot
	PutSnapshot(snap *models.Snapshot)
	WatchEventCount() int
	SeriesCount() int
	TrendingCacheLen() int
}

// FeedService wires the feed components over the two stores and fronts them
// for the controllers, the metrics gauges and the snapshot persistence.
type FeedService struct {
	catalog       *models.CatalogStore
	watch         *models.WatchStore
	trendingCache *feed.TrendingCache
	composer      *feed.Composer
	trendingLimit int
	clock         feed.Clock
}

func NewFeedService(conf *structures.Config, catalog *models.CatalogStore, watch *models.WatchStore) FeedServiceInterface {
	return newFeedService(conf, catalog, watch, time.Now)
}

func newFeedService(conf *structures.Config, catalog *models.CatalogStore, watch *models.WatchStore, clock feed.Clock) *FeedService {
	fc := conf.Feed
	scorer := feed.NewTrendingScorer(catalog, watch, fc.TrendingWindow, clock)
	cache := feed.NewTrendingCache(scorer, fc.TrendingTTL, clock)
	composer := feed.NewComposer(
		catalog,
		watch,
		cache,
		feed.NewContinueWatchingSelector(catalog, watch, fc.ContinueWatchingFetch, fc.ContinueWatchingLimit),
		feed.NewRecommendationSelector(catalog, watch, fc.RecommendationLimit),
		fc.TrendingLimit,
		fc.NewEpisodesLimit,
	)
	return &FeedService{
		catalog:       catalog,
		watch:         watch,
		trendingCache: cache,
		composer:      composer,
		trendingLimit: fc.TrendingLimit,
		clock:         clock,
	}
}

func (fs *FeedService) HomeFeed(ctx context.Context, viewer feed.Viewer, categorySlug string) (*feed.HomeFeed, error) {
	return fs.composer.HomeFeed(ctx, viewer, categorySlug)
}

// Trending serves the ranked list through the TTL cache. limit 0 falls back
// to the configured default; out-of-range limits are rejected before any
// store access.
func (fs *FeedService) Trending(categorySlug string, limit int) ([]feed.ScoredSeries, error) {
	if limit == 0 {
		limit = fs.trendingLimit
	}
	if limit < 1 || limit > maxTrendingLimit {
		return nil, &feed.ValidationError{Field: "limit", Reason: "out of range"}
	}
	category, err := fs.composer.ResolveCategory(categorySlug)
	if err != nil {
		return nil, err
	}
	categoryID := ""
	if category != nil {
		categoryID = category.ID
	}
	result, err := fs.trendingCache.GetOrCompute(categoryID, limit)
	if err != nil {
		return nil, err
	}
	return result.List, nil
}

func (fs *FeedService) FollowingUpdates(viewer feed.Viewer, seriesIDs []string) ([]feed.FollowingUpdate, error) {
	return fs.composer.FollowingUpdates(viewer, seriesIDs)
}

// SaveProgress upserts the viewer's event for the episode. Completion is
// taken from the payload, or inferred when progress reaches 90% of the
// episode duration.
func (fs *FeedService) SaveProgress(viewer feed.Viewer, in *ProgressInput) error {
	if viewer.IsAnonymous() {
		return &feed.ValidationError{Field: "identity", Reason: "progress requires a user or guest id"}
	}
	if in == nil || in.SeriesID == "" || in.EpisodeID == "" {
		return &feed.ValidationError{Field: "progress", Reason: "seriesId and episodeId are required"}
	}
	if in.ProgressSeconds < 0 || in.DurationSeconds < 0 {
		return &feed.ValidationError{Field: "progress", Reason: "negative duration"}
	}
	completed := in.Completed
	if !completed && in.DurationSeconds > 0 && in.ProgressSeconds*10 >= in.DurationSeconds*9 {
		completed = true
	}
	return fs.watch.Upsert(&models.WatchEvent{
		Identity:        viewer.Key(),
		SeriesID:        in.SeriesID,
		EpisodeID:       in.EpisodeID,
		ProgressSeconds: in.ProgressSeconds,
		DurationSeconds: in.DurationSeconds,
		Completed:       completed,
		LastWatched:     fs.clock(),
	})
}

func (fs *FeedService) GetSnapshot() *models.Snapshot { return fs.watch.GetSnapshot() }

func (fs *FeedService) PutSnapshot(snap *models.Snapshot) { fs.watch.PutSnapshot(snap) }

func (fs *FeedService) WatchEventCount() int { return fs.watch.EventCount() }

func (fs *FeedService) SeriesCount() int { return fs.catalog.SeriesCount() }

func (fs *FeedService) TrendingCacheLen() int { return fs.trendingCache.Len() }
