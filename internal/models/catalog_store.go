package models

import (
	"math/rand"
	"sort"
	"sync"
)

// CatalogStore is the in-process stand-in for the catalog collaborator.
// Read-mostly: series/episodes/categories are loaded once from the seed
// file and only ever replaced wholesale via Load.
// Thread-safe: all public methods acquire cs.mu internally.
type CatalogStore struct {
	mu         sync.RWMutex
	series     map[string]*SeriesSummary
	episodes   map[string]*EpisodeSummary
	categories []*Category
	bySlug     map[string]*Category
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		series:   make(map[string]*SeriesSummary),
		episodes: make(map[string]*EpisodeSummary),
		bySlug:   make(map[string]*Category),
	}
}

// Load replaces the whole catalog with the given seed.
func (cs *CatalogStore) Load(seed *CatalogSeed) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.series = make(map[string]*SeriesSummary, len(seed.Series))
	cs.episodes = make(map[string]*EpisodeSummary, len(seed.Episodes))
	cs.categories = make([]*Category, 0, len(seed.Categories))
	cs.bySlug = make(map[string]*Category, len(seed.Categories))

	for _, s := range seed.Series {
		if s == nil || s.ID == "" {
			continue
		}
		cp := *s
		cs.series[s.ID] = &cp
	}
	for _, e := range seed.Episodes {
		if e == nil || e.ID == "" {
			continue
		}
		cp := *e
		cs.episodes[e.ID] = &cp
	}
	for _, c := range seed.Categories {
		if c == nil || c.ID == "" || c.Slug == "" {
			continue
		}
		cp := *c
		cs.categories = append(cs.categories, &cp)
		cs.bySlug[c.Slug] = &cp
	}
	sort.Slice(cs.categories, func(i, j int) bool {
		return cs.categories[i].Name < cs.categories[j].Name
	})
}

func (cs *CatalogStore) SeriesByID(id string) (*SeriesSummary, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	s, ok := cs.series[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// SeriesByIDs resolves ids preserving input order; missing ids are skipped.
func (cs *CatalogStore) SeriesByIDs(ids []string) ([]*SeriesSummary, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]*SeriesSummary, 0, len(ids))
	for _, id := range ids {
		if s, ok := cs.series[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// PublishedByCategory returns up to limit published series in the category,
// excluding excludeID, ordered by view count descending (id ascending on ties).
func (cs *CatalogStore) PublishedByCategory(categoryID, excludeID string, limit int) ([]*SeriesSummary, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	var out []*SeriesSummary
	for _, s := range cs.series {
		if s.Status != StatusPublished || s.CategoryID != categoryID || s.ID == excludeID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ViewCount != out[j].ViewCount {
			return out[i].ViewCount > out[j].ViewCount
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SeriesIDsInCategory returns the ids of every series in the category,
// any status. Used to pre-resolve the category-filtered episode listing.
func (cs *CatalogStore) SeriesIDsInCategory(categoryID string) ([]string, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	var ids []string
	for _, s := range cs.series {
		if s.CategoryID == categoryID {
			ids = append(ids, s.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// RandomPublished samples one published series, or nil when none exist.
func (cs *CatalogStore) RandomPublished() (*SeriesSummary, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	var published []*SeriesSummary
	for _, s := range cs.series {
		if s.Status == StatusPublished {
			published = append(published, s)
		}
	}
	if len(published) == 0 {
		return nil, nil
	}
	cp := *published[rand.Intn(len(published))]
	return &cp, nil
}

func (cs *CatalogStore) EpisodeByID(id string) (*EpisodeSummary, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	e, ok := cs.episodes[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

// LatestPublishedEpisodes returns up to limit published episodes ordered by
// creation time descending. When seriesIDs is non-nil only episodes of those
// series are considered.
func (cs *CatalogStore) LatestPublishedEpisodes(limit int, seriesIDs []string) ([]*EpisodeSummary, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	var allowed map[string]struct{}
	if seriesIDs != nil {
		allowed = make(map[string]struct{}, len(seriesIDs))
		for _, id := range seriesIDs {
			allowed[id] = struct{}{}
		}
	}

	var out []*EpisodeSummary
	for _, e := range cs.episodes {
		if e.Status != StatusPublished {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[e.SeriesID]; !ok {
				continue
			}
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LatestPublishedEpisodeBySeries returns the newest published episode of the
// series, or nil when the series has none.
func (cs *CatalogStore) LatestPublishedEpisodeBySeries(seriesID string) (*EpisodeSummary, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	var latest *EpisodeSummary
	for _, e := range cs.episodes {
		if e.SeriesID != seriesID || e.Status != StatusPublished {
			continue
		}
		if latest == nil || e.CreatedAt.After(latest.CreatedAt) {
			latest = e
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (cs *CatalogStore) CategoryBySlug(slug string) (*Category, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	c, ok := cs.bySlug[slug]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// Categories returns the full category list sorted by name.
func (cs *CatalogStore) Categories() ([]*Category, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]*Category, 0, len(cs.categories))
	for _, c := range cs.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (cs *CatalogStore) SeriesCount() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.series)
}
