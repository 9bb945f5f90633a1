package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db         *BadgerDB
	corpus     interfaces.CorpusStorage
	subscriber interfaces.SubscriberStorage
	logger     arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:         db,
		corpus:     NewCorpusStorage(db, logger),
		subscriber: NewSubscriberStorage(db, logger),
		logger:     logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// CorpusStorage returns the corpus snapshot storage interface
func (m *Manager) CorpusStorage() interfaces.CorpusStorage {
	return m.corpus
}

// SubscriberStorage returns the subscriber storage interface
func (m *Manager) SubscriberStorage() interfaces.SubscriberStorage {
	return m.subscriber
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
