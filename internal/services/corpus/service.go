package corpus

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/interfaces"
	"github.com/ternarybob/auspex/internal/models"
)

// Service holds the live corpus snapshots. Each snapshot is an immutable
// slice behind an atomic pointer: readers load the pointer and see a
// complete corpus, a refresh builds the replacement aside and swaps it in.
type Service struct {
	news    atomic.Pointer[[]models.TextRecord]
	market  atomic.Pointer[[]models.TextRecord]
	storage interfaces.CorpusStorage
	logger  arbor.ILogger
}

// NewService creates a corpus service and restores any persisted snapshots
// so reports are available before the first scheduled refresh completes.
func NewService(storage interfaces.CorpusStorage, logger arbor.ILogger) (*Service, error) {
	s := &Service{
		storage: storage,
		logger:  logger,
	}

	empty := []models.TextRecord{}
	s.news.Store(&empty)
	s.market.Store(&empty)

	if storage != nil {
		news, err := storage.LoadSnapshot(interfaces.SnapshotNews)
		if err != nil {
			return nil, fmt.Errorf("failed to restore news snapshot: %w", err)
		}
		if len(news) > 0 {
			s.news.Store(&news)
			logger.Info().Int("records", len(news)).Msg("Restored news corpus from storage")
		}

		market, err := storage.LoadSnapshot(interfaces.SnapshotMarket)
		if err != nil {
			return nil, fmt.Errorf("failed to restore market snapshot: %w", err)
		}
		if len(market) > 0 {
			s.market.Store(&market)
			logger.Info().Int("records", len(market)).Msg("Restored market snapshot from storage")
		}
	}

	return s, nil
}

// News returns the current news corpus snapshot. Callers must not mutate
// the returned slice.
func (s *Service) News() []models.TextRecord {
	return *s.news.Load()
}

// Market returns the current market-data snapshot
func (s *Service) Market() []models.TextRecord {
	return *s.market.Load()
}

// ReplaceNews deduplicates the incoming batch, persists it, and swaps it
// in as the visible news corpus
func (s *Service) ReplaceNews(ctx context.Context, records []models.TextRecord) error {
	return s.replace(ctx, interfaces.SnapshotNews, &s.news, records)
}

// ReplaceMarket deduplicates the incoming batch, persists it, and swaps it
// in as the visible market snapshot
func (s *Service) ReplaceMarket(ctx context.Context, records []models.TextRecord) error {
	return s.replace(ctx, interfaces.SnapshotMarket, &s.market, records)
}

func (s *Service) replace(ctx context.Context, kind string, slot *atomic.Pointer[[]models.TextRecord], records []models.TextRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	deduped := models.DedupeByLink(records)
	if dropped := len(records) - len(deduped); dropped > 0 {
		s.logger.Debug().Str("kind", kind).Int("dropped", dropped).Msg("Dropped duplicate records")
	}

	// Persist before publishing so a restored snapshot never trails the
	// one readers already saw.
	if s.storage != nil {
		if err := s.storage.SaveSnapshot(kind, deduped); err != nil {
			return fmt.Errorf("failed to persist %s snapshot: %w", kind, err)
		}
	}

	slot.Store(&deduped)
	s.logger.Info().Str("kind", kind).Int("records", len(deduped)).Msg("Corpus snapshot replaced")
	return nil
}

// Stats summarizes the news corpus for the status endpoints
func (s *Service) Stats() models.CorpusStats {
	records := s.News()

	stats := models.CorpusStats{
		TotalRecords: len(records),
	}

	var latest time.Time
	for _, r := range records {
		switch r.ImpactLevel {
		case models.ImpactLevelHighRisk:
			stats.HighRisk++
		case models.ImpactLevelOpportunity:
			stats.Opportunity++
		}
		if r.EventFlag == models.EventFlagMajor {
			stats.MajorEvents++
		}
		if r.Published.After(latest) {
			latest = r.Published
		}
	}
	if !latest.IsZero() {
		stats.LastUpdated = latest.Format(time.RFC3339)
	}

	return stats
}
