package corpus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/interfaces"
	"github.com/ternarybob/auspex/internal/models"
)

// fakeCorpusStorage is an in-memory stand-in for the badger snapshot store
type fakeCorpusStorage struct {
	snapshots map[string][]models.TextRecord
	saveErr   error
	saves     int
}

func newFakeCorpusStorage() *fakeCorpusStorage {
	return &fakeCorpusStorage{snapshots: map[string][]models.TextRecord{}}
}

func (f *fakeCorpusStorage) SaveSnapshot(kind string, records []models.TextRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.snapshots[kind] = records
	return nil
}

func (f *fakeCorpusStorage) LoadSnapshot(kind string) ([]models.TextRecord, error) {
	if recs, ok := f.snapshots[kind]; ok {
		return recs, nil
	}
	return []models.TextRecord{}, nil
}

func TestService_StartsEmpty(t *testing.T) {
	service, err := NewService(newFakeCorpusStorage(), common.GetLogger())
	require.NoError(t, err)

	assert.Empty(t, service.News())
	assert.Empty(t, service.Market())
	assert.Equal(t, 0, service.Stats().TotalRecords)
}

func TestService_RestoresPersistedSnapshots(t *testing.T) {
	storage := newFakeCorpusStorage()
	storage.snapshots[interfaces.SnapshotNews] = []models.TextRecord{
		{Title: "Restored", Link: "https://example.com/restored"},
	}

	service, err := NewService(storage, common.GetLogger())
	require.NoError(t, err)

	news := service.News()
	require.Len(t, news, 1)
	assert.Equal(t, "Restored", news[0].Title)
}

func TestService_ReplaceNewsDedupesAndPersists(t *testing.T) {
	storage := newFakeCorpusStorage()
	service, err := NewService(storage, common.GetLogger())
	require.NoError(t, err)

	records := []models.TextRecord{
		{Title: "First", Link: "https://example.com/a"},
		{Title: "Duplicate of first", Link: "https://example.com/a"},
		{Title: "Second", Link: "https://example.com/b"},
	}
	require.NoError(t, service.ReplaceNews(context.Background(), records))

	news := service.News()
	require.Len(t, news, 2)
	assert.Equal(t, "First", news[0].Title)
	assert.Len(t, storage.snapshots[interfaces.SnapshotNews], 2)
}

func TestService_ReplaceFailsWhenPersistFails(t *testing.T) {
	storage := newFakeCorpusStorage()
	service, err := NewService(storage, common.GetLogger())
	require.NoError(t, err)

	require.NoError(t, service.ReplaceNews(context.Background(), []models.TextRecord{
		{Title: "Kept", Link: "https://example.com/kept"},
	}))

	storage.saveErr = errors.New("disk full")
	err = service.ReplaceNews(context.Background(), []models.TextRecord{
		{Title: "Lost", Link: "https://example.com/lost"},
	})
	require.Error(t, err)

	// The visible snapshot is untouched on persist failure
	news := service.News()
	require.Len(t, news, 1)
	assert.Equal(t, "Kept", news[0].Title)
}

func TestService_ReplaceHonorsCancelledContext(t *testing.T) {
	service, err := NewService(newFakeCorpusStorage(), common.GetLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = service.ReplaceMarket(ctx, []models.TextRecord{{Link: "https://example.com/x"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_NewsAndMarketAreIndependent(t *testing.T) {
	service, err := NewService(newFakeCorpusStorage(), common.GetLogger())
	require.NoError(t, err)

	require.NoError(t, service.ReplaceNews(context.Background(), []models.TextRecord{
		{Title: "News", Link: "https://example.com/news"},
	}))
	require.NoError(t, service.ReplaceMarket(context.Background(), []models.TextRecord{
		{Title: "Market", Link: "https://example.com/market"},
		{Title: "Market 2", Link: "https://example.com/market2"},
	}))

	assert.Len(t, service.News(), 1)
	assert.Len(t, service.Market(), 2)
}

func TestService_Stats(t *testing.T) {
	service, err := NewService(newFakeCorpusStorage(), common.GetLogger())
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, service.ReplaceNews(context.Background(), []models.TextRecord{
		{Link: "a", ImpactLevel: models.ImpactLevelHighRisk, Published: now.Add(-time.Hour)},
		{Link: "b", ImpactLevel: models.ImpactLevelOpportunity, EventFlag: models.EventFlagMajor, Published: now},
		{Link: "c", ImpactLevel: models.ImpactLevelNeutral, Published: now.Add(-2 * time.Hour)},
	}))

	stats := service.Stats()
	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 1, stats.HighRisk)
	assert.Equal(t, 1, stats.Opportunity)
	assert.Equal(t, 1, stats.MajorEvents)
	assert.Equal(t, now.Format(time.RFC3339), stats.LastUpdated)
}

func TestService_ConcurrentReadersDuringReplace(t *testing.T) {
	service, err := NewService(newFakeCorpusStorage(), common.GetLogger())
	require.NoError(t, err)

	require.NoError(t, service.ReplaceNews(context.Background(), []models.TextRecord{
		{Link: "https://example.com/seed"},
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = service.ReplaceNews(context.Background(), []models.TextRecord{
				{Link: "https://example.com/seed"},
				{Link: "https://example.com/other"},
			})
		}
	}()

	for i := 0; i < 100; i++ {
		news := service.News()
		// Readers always see a complete snapshot, never a partial one
		assert.True(t, len(news) == 1 || len(news) == 2)
	}
	<-done
}
