package feed

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homefeed/internal/models"
)

func TestRecommend_AnonymousNil(t *testing.T) {
	sel := NewRecommendationSelector(seedCatalog(), models.NewWatchStore(), 6)

	rec, err := sel.Select(Anonymous())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecommend_NoHistoryNil(t *testing.T) {
	sel := NewRecommendationSelector(seedCatalog(), models.NewWatchStore(), 6)

	rec, err := sel.Select(Authenticated("alice"))
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecommend_SeedsFromLatestEvent(t *testing.T) {
	catalog := seedCatalog()
	watch := models.NewWatchStore()
	viewer := Authenticated("alice")
	// latest touch is s1 (comedy); incomplete counts as a seed too
	require.NoError(t, watch.Upsert(completedEvent(viewer.Key(), "s3", "e4", testBase.Add(-5*time.Hour))))
	require.NoError(t, watch.Upsert(partialEvent(viewer.Key(), "s1", "e1", 120, testBase.Add(-1*time.Hour))))

	sel := NewRecommendationSelector(catalog, watch, 6)
	rec, err := sel.Select(viewer)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "s1", rec.Source.ID)
	require.Len(t, rec.Items, 1)
	// s2 is the only other published comedy; draft s4 never appears
	assert.Equal(t, "s2", rec.Items[0].ID)
}

func TestRecommend_SourceExcludedFromItems(t *testing.T) {
	catalog := seedCatalog()
	watch := models.NewWatchStore()
	viewer := Authenticated("alice")
	require.NoError(t, watch.Upsert(partialEvent(viewer.Key(), "s1", "e1", 120, testBase)))

	sel := NewRecommendationSelector(catalog, watch, 6)
	rec, err := sel.Select(viewer)
	require.NoError(t, err)
	require.NotNil(t, rec)
	for _, item := range rec.Items {
		assert.NotEqual(t, rec.Source.ID, item.ID)
	}
}

func TestRecommend_UncategorizedSeedNil(t *testing.T) {
	catalog := seedCatalog()
	watch := models.NewWatchStore()
	viewer := Authenticated("alice")
	// s5 has no category
	require.NoError(t, watch.Upsert(partialEvent(viewer.Key(), "s5", "e6", 30, testBase)))

	sel := NewRecommendationSelector(catalog, watch, 6)
	rec, err := sel.Select(viewer)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecommend_DanglingSeedNil(t *testing.T) {
	catalog := seedCatalog()
	watch := models.NewWatchStore()
	viewer := Authenticated("alice")
	require.NoError(t, watch.Upsert(partialEvent(viewer.Key(), "gone", "e9", 30, testBase)))

	sel := NewRecommendationSelector(catalog, watch, 6)
	rec, err := sel.Select(viewer)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecommend_NoSiblingsNil(t *testing.T) {
	catalog := seedCatalog()
	watch := models.NewWatchStore()
	viewer := Authenticated("alice")
	// s3 is the only published drama
	require.NoError(t, watch.Upsert(partialEvent(viewer.Key(), "s3", "e4", 30, testBase)))

	sel := NewRecommendationSelector(catalog, watch, 6)
	rec, err := sel.Select(viewer)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecommend_StoreError(t *testing.T) {
	boom := errors.New("boom")
	sel := NewRecommendationSelector(seedCatalog(), &errWatch{err: boom}, 6)

	_, err := sel.Select(Authenticated("alice"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
