package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/auspex/internal/models"
)

// CorpusService owns the in-memory record snapshots. Snapshots are
// copy-on-write: readers always observe a complete corpus, and a refresh
// replaces the visible reference atomically.
type CorpusService interface {
	// News returns the current news corpus snapshot
	News() []models.TextRecord

	// Market returns the current market-data snapshot
	Market() []models.TextRecord

	// ReplaceNews deduplicates, persists, and atomically swaps in a new
	// news corpus snapshot
	ReplaceNews(ctx context.Context, records []models.TextRecord) error

	// ReplaceMarket deduplicates, persists, and atomically swaps in a new
	// market-data snapshot
	ReplaceMarket(ctx context.Context, records []models.TextRecord) error

	// Stats summarizes the news corpus for the stats endpoint
	Stats() models.CorpusStats
}

// CollectorService pulls feed items into the corpus store
type CollectorService interface {
	// RefreshNews rebuilds the news corpus from the configured topics.
	// Individual feed failures are logged and skipped, never aborting the batch.
	RefreshNews(ctx context.Context) error

	// RefreshMarket rebuilds the market-data snapshot
	RefreshMarket(ctx context.Context) error

	// CollectRange scrapes a historical date window for the given topics
	// and returns the collected records without touching the live corpus
	CollectRange(ctx context.Context, start, end time.Time, topics []string) ([]models.TextRecord, error)
}

// GazetteService scrapes the external gazette index. Results take priority
// over the internal regulatory-correlation fallback.
type GazetteService interface {
	Fetch(ctx context.Context) ([]models.GazetteEntry, error)
}

// MailerService sends dispatch email
type MailerService interface {
	IsConfigured() bool
	SendEmail(ctx context.Context, to, subject, body string) error
	SendHTMLEmail(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// Dispatcher produces and sends the daily reports
type Dispatcher interface {
	DispatchDaily(ctx context.Context) error
}
