package testutil

import (
	"context"
	"sync"
	"time"

	"homefeed/internal/feed"
	"homefeed/internal/models"
	"homefeed/internal/providers"
	"homefeed/internal/services"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockFeedService implements services.FeedServiceInterface with canned data.
type MockFeedService struct {
	mu sync.Mutex

	HomeFeedResult  *feed.HomeFeed
	HomeFeedErr     error
	TrendingResult  []feed.ScoredSeries
	TrendingErr     error
	FollowingResult []feed.FollowingUpdate
	FollowingErr    error
	SaveProgressErr error

	SaveCalls     []*services.ProgressInput
	SaveViewers   []feed.Viewer
	Snapshot      *models.Snapshot
	PutCalls      []*models.Snapshot
	EventCount    int
	SeriesTotal   int
	TrendingKeys  int
	TrendingCalls int
}

func (m *MockFeedService) HomeFeed(_ context.Context, _ feed.Viewer, _ string) (*feed.HomeFeed, error) {
	return m.HomeFeedResult, m.HomeFeedErr
}

func (m *MockFeedService) Trending(_ string, _ int) ([]feed.ScoredSeries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TrendingCalls++
	return m.TrendingResult, m.TrendingErr
}

func (m *MockFeedService) FollowingUpdates(_ feed.Viewer, _ []string) ([]feed.FollowingUpdate, error) {
	return m.FollowingResult, m.FollowingErr
}

func (m *MockFeedService) SaveProgress(viewer feed.Viewer, in *services.ProgressInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveViewers = append(m.SaveViewers, viewer)
	m.SaveCalls = append(m.SaveCalls, in)
	return m.SaveProgressErr
}

func (m *MockFeedService) GetSnapshot() *models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Snapshot != nil {
		return m.Snapshot
	}
	return &models.Snapshot{Version: models.SnapshotVersion}
}

func (m *MockFeedService) PutSnapshot(snap *models.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls = append(m.PutCalls, snap)
}

func (m *MockFeedService) WatchEventCount() int  { return m.EventCount }
func (m *MockFeedService) SeriesCount() int      { return m.SeriesTotal }
func (m *MockFeedService) TrendingCacheLen() int { return m.TrendingKeys }

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu               sync.Mutex
	RequestCalls     int
	DurationCalls    int
	CacheHits        int
	CacheMisses      int
	PersistenceCalls int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCalls++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DurationCalls++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}
