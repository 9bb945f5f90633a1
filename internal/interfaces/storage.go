package interfaces

import (
	"github.com/ternarybob/auspex/internal/models"
)

// Snapshot kinds persisted by the corpus storage
const (
	SnapshotNews   = "news"
	SnapshotMarket = "market"
)

// CorpusStorage persists corpus snapshots so reports survive restarts
type CorpusStorage interface {
	// SaveSnapshot replaces the persisted snapshot for the given kind
	SaveSnapshot(kind string, records []models.TextRecord) error

	// LoadSnapshot returns the persisted snapshot for the given kind,
	// or an empty slice when none exists
	LoadSnapshot(kind string) ([]models.TextRecord, error)
}

// SubscriberStorage persists daily-report recipients
type SubscriberStorage interface {
	SaveSubscriber(sub *models.Subscriber) error
	GetSubscriber(email string) (*models.Subscriber, error)
	ListSubscribers() ([]models.Subscriber, error)
	CountSubscribers() (int, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	CorpusStorage() CorpusStorage
	SubscriberStorage() SubscriberStorage
	Close() error
}
