package feed

import (
	"strconv"
	"sync"
	"time"
)

// TrendingResult is a cached ranking together with when it was computed.
type TrendingResult struct {
	List       []ScoredSeries `json:"list"`
	ComputedAt time.Time      `json:"computedAt"`
}

type trendingEntry struct {
	result    TrendingResult
	expiresAt time.Time
}

// TrendingCache memoizes TrendingScorer results per (category, limit) key
// for a fixed TTL. Entries are stored whole behind one RWMutex, so readers
// either miss or see a fully written entry. Concurrent first access to a
// key may compute more than once; last write wins. No eviction beyond TTL.
type TrendingCache struct {
	mu      sync.RWMutex
	entries map[string]*trendingEntry
	scorer  *TrendingScorer
	ttl     time.Duration
	clock   Clock
}

func NewTrendingCache(scorer *TrendingScorer, ttl time.Duration, clock Clock) *TrendingCache {
	if clock == nil {
		clock = time.Now
	}
	return &TrendingCache{
		entries: make(map[string]*trendingEntry),
		scorer:  scorer,
		ttl:     ttl,
		clock:   clock,
	}
}

func cacheKey(categoryID string, limit int) string {
	if categoryID == "" {
		categoryID = "all"
	}
	return categoryID + ":" + strconv.Itoa(limit)
}

// GetOrCompute returns the live cached ranking for the key, or invokes the
// scorer and caches the result for the TTL. An expired entry is never
// served. Scorer errors are returned without touching the cache.
func (tc *TrendingCache) GetOrCompute(categoryID string, limit int) (TrendingResult, error) {
	key := cacheKey(categoryID, limit)
	now := tc.clock()

	tc.mu.RLock()
	entry, ok := tc.entries[key]
	tc.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.result, nil
	}

	list, err := tc.scorer.Rank(categoryID, limit)
	if err != nil {
		return TrendingResult{}, err
	}

	result := TrendingResult{List: list, ComputedAt: now}
	tc.mu.Lock()
	tc.entries[key] = &trendingEntry{result: result, expiresAt: now.Add(tc.ttl)}
	tc.mu.Unlock()
	return result, nil
}

// Len reports the number of cached keys, live or expired.
func (tc *TrendingCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.entries)
}
