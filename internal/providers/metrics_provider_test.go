package providers

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"homefeed/internal/feed"
	"homefeed/internal/models"
	"homefeed/internal/services"
	"homefeed/internal/structures"
)

// --- minimal mock for FeedServiceInterface ---

type metricsTestService struct{}

func (m *metricsTestService) HomeFeed(_ context.Context, _ feed.Viewer, _ string) (*feed.HomeFeed, error) {
	return nil, nil
}

func (m *metricsTestService) Trending(_ string, _ int) ([]feed.ScoredSeries, error) {
	return nil, nil
}

func (m *metricsTestService) FollowingUpdates(_ feed.Viewer, _ []string) ([]feed.FollowingUpdate, error) {
	return nil, nil
}

func (m *metricsTestService) SaveProgress(_ feed.Viewer, _ *services.ProgressInput) error { return nil }
func (m *metricsTestService) GetSnapshot() *models.Snapshot                               { return nil }
func (m *metricsTestService) PutSnapshot(_ *models.Snapshot)                              {}
func (m *metricsTestService) WatchEventCount() int                                        { return 5 }
func (m *metricsTestService) SeriesCount() int                                            { return 3 }
func (m *metricsTestService) TrendingCacheLen() int                                       { return 1 }

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &metricsTestService{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestService{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestService{})

	// These should not panic
	m.IncRequestsTotal("/trending", 200)
	m.IncRequestsTotal("/trending", 404)
	m.ObserveRequestDuration("/trending", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(100 * time.Millisecond)
}

func TestMetricsProvider_GaugesReadService(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	NewMetricsProvider(conf, &metricsTestService{})

	families, err := reg.Gather()
	assert.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		if len(mf.GetMetric()) == 1 && mf.GetMetric()[0].GetGauge() != nil {
			values[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, 5.0, values["homefeed_watch_events"])
	assert.Equal(t, 3.0, values["homefeed_series_total"])
	assert.Equal(t, 1.0, values["homefeed_trending_cache_entries"])
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
