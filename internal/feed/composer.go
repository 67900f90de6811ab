package feed

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"homefeed/internal/models"
)

// ProgressState is the call-to-action state for the featured series.
type ProgressState string

const (
	ProgressNotStarted ProgressState = "not_started"
	ProgressContinue   ProgressState = "continue"
	ProgressCompleted  ProgressState = "completed"
)

// FeaturedProgress describes where the viewer stands against the featured
// series: untouched, resumable at an episode, or completed.
type FeaturedProgress struct {
	State           ProgressState          `json:"state"`
	Episode         *models.EpisodeSummary `json:"episode,omitempty"`
	ProgressSeconds int                    `json:"progressSeconds,omitempty"`
}

// HomeFeed is the aggregate payload of the home endpoint.
type HomeFeed struct {
	ContinueWatching  []ContinueWatchingItem   `json:"continueWatching"`
	BecauseYouWatched *Recommendation          `json:"becauseYouWatched"`
	Featured          *models.SeriesSummary    `json:"featured"`
	Trending          []ScoredSeries           `json:"trending"`
	NewEpisodes       []*models.EpisodeSummary `json:"newEpisodes"`
	Categories        []*models.Category       `json:"categories"`
	FeaturedProgress  *FeaturedProgress        `json:"featuredProgress,omitempty"`
}

// Composer assembles the home payload. Independent blocks fan out
// concurrently; any store error cancels the fan-out and fails the whole
// request — a partially populated payload is never returned.
type Composer struct {
	catalog          CatalogStore
	watch            WatchStore
	trending         *TrendingCache
	continueWatching *ContinueWatchingSelector
	recommend        *RecommendationSelector
	trendingLimit    int
	newEpisodesLimit int
}

func NewComposer(
	catalog CatalogStore,
	watch WatchStore,
	trending *TrendingCache,
	continueWatching *ContinueWatchingSelector,
	recommend *RecommendationSelector,
	trendingLimit, newEpisodesLimit int,
) *Composer {
	return &Composer{
		catalog:          catalog,
		watch:            watch,
		trending:         trending,
		continueWatching: continueWatching,
		recommend:        recommend,
		trendingLimit:    trendingLimit,
		newEpisodesLimit: newEpisodesLimit,
	}
}

// ResolveCategory validates the slug and resolves it to a category. Empty
// slug means no filter. An unknown slug is a NotFoundError.
func (c *Composer) ResolveCategory(slug string) (*models.Category, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if slug == "" {
		return nil, nil
	}
	cat, err := c.catalog.CategoryBySlug(slug)
	if err != nil {
		return nil, storeErr("category by slug", err)
	}
	if cat == nil {
		return nil, &NotFoundError{Resource: "category", Ref: slug}
	}
	return cat, nil
}

// HomeFeed builds the full aggregate for the viewer. categorySlug == ""
// disables the category filter.
func (c *Composer) HomeFeed(ctx context.Context, viewer Viewer, categorySlug string) (*HomeFeed, error) {
	category, err := c.ResolveCategory(categorySlug)
	if err != nil {
		return nil, err
	}
	categoryID := ""
	if category != nil {
		categoryID = category.ID
	}

	out := &HomeFeed{ContinueWatching: []ContinueWatchingItem{}}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	if !viewer.IsAnonymous() {
		p.Go(func(ctx context.Context) error {
			items, err := c.continueWatching.Select(viewer, categoryID)
			if err != nil {
				return err
			}
			out.ContinueWatching = items
			return nil
		})
		// Product rule: the block is suppressed while a genre filter is
		// active, it does not re-filter.
		if category == nil {
			p.Go(func(ctx context.Context) error {
				rec, err := c.recommend.Select(viewer)
				if err != nil {
					return err
				}
				out.BecauseYouWatched = rec
				return nil
			})
		}
	}

	p.Go(func(ctx context.Context) error {
		featured, err := c.featured(viewer)
		if err != nil {
			return err
		}
		out.Featured = featured
		return nil
	})

	p.Go(func(ctx context.Context) error {
		result, err := c.trending.GetOrCompute(categoryID, c.trendingLimit)
		if err != nil {
			return err
		}
		out.Trending = result.List
		return nil
	})

	p.Go(func(ctx context.Context) error {
		episodes, err := c.newEpisodes(categoryID)
		if err != nil {
			return err
		}
		out.NewEpisodes = episodes
		return nil
	})

	p.Go(func(ctx context.Context) error {
		categories, err := c.catalog.Categories()
		if err != nil {
			return storeErr("list categories", err)
		}
		out.Categories = categories
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	// Depends on the featured block, so it runs after the fan-out.
	if out.Featured != nil && !viewer.IsAnonymous() {
		progress, err := c.featuredProgress(viewer, out.Featured.ID)
		if err != nil {
			return nil, err
		}
		out.FeaturedProgress = progress
	}

	return out, nil
}

// featured picks the series of the viewer's most recently touched event,
// falling back to one random published series. Deliberately ignores any
// active category filter: the hero must not change when the viewer clicks
// a genre pill.
func (c *Composer) featured(viewer Viewer) (*models.SeriesSummary, error) {
	if !viewer.IsAnonymous() {
		ev, err := c.watch.LatestByIdentity(viewer.Key())
		if err != nil {
			return nil, storeErr("latest watch event", err)
		}
		if ev != nil {
			series, err := c.catalog.SeriesByID(ev.SeriesID)
			if err != nil {
				return nil, storeErr("resolve featured series", err)
			}
			if series != nil {
				return series, nil
			}
		}
	}
	series, err := c.catalog.RandomPublished()
	if err != nil {
		return nil, storeErr("random published series", err)
	}
	return series, nil
}

// newEpisodes lists the freshest published episodes. Under a category
// filter the series ids of the category are resolved first and episodes
// restricted to that set. An empty category yields an empty list, not the
// unfiltered one.
func (c *Composer) newEpisodes(categoryID string) ([]*models.EpisodeSummary, error) {
	var seriesIDs []string
	if categoryID != "" {
		ids, err := c.catalog.SeriesIDsInCategory(categoryID)
		if err != nil {
			return nil, storeErr("series in category", err)
		}
		if ids == nil {
			ids = []string{}
		}
		seriesIDs = ids
	}
	episodes, err := c.catalog.LatestPublishedEpisodes(c.newEpisodesLimit, seriesIDs)
	if err != nil {
		return nil, storeErr("latest episodes", err)
	}
	return episodes, nil
}

func (c *Composer) featuredProgress(viewer Viewer, seriesID string) (*FeaturedProgress, error) {
	ev, err := c.watch.LatestForSeries(viewer.Key(), seriesID)
	if err != nil {
		return nil, storeErr("featured progress", err)
	}
	if ev == nil {
		return &FeaturedProgress{State: ProgressNotStarted}, nil
	}
	episode, err := c.catalog.EpisodeByID(ev.EpisodeID)
	if err != nil {
		return nil, storeErr("resolve progress episode", err)
	}
	if ev.Completed {
		return &FeaturedProgress{State: ProgressCompleted, Episode: episode}, nil
	}
	return &FeaturedProgress{
		State:           ProgressContinue,
		Episode:         episode,
		ProgressSeconds: ev.ProgressSeconds,
	}, nil
}
