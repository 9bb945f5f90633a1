package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/interfaces"
	"github.com/ternarybob/auspex/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// corpusSnapshot is the persisted form of one corpus kind. Stored whole
// under the kind key so a refresh replaces the snapshot atomically.
type corpusSnapshot struct {
	Kind    string              `badgerhold:"key"`
	Records []models.TextRecord
	SavedAt time.Time
}

// CorpusStorage implements the CorpusStorage interface for Badger
type CorpusStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCorpusStorage creates a new CorpusStorage instance
func NewCorpusStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CorpusStorage {
	return &CorpusStorage{
		db:     db,
		logger: logger,
	}
}

func (s *CorpusStorage) SaveSnapshot(kind string, records []models.TextRecord) error {
	if kind == "" {
		return fmt.Errorf("snapshot kind is required")
	}

	snap := corpusSnapshot{
		Kind:    kind,
		Records: records,
		SavedAt: time.Now(),
	}

	if err := s.db.Store().Upsert(kind, &snap); err != nil {
		return fmt.Errorf("failed to save %s snapshot: %w", kind, err)
	}

	s.logger.Debug().Str("kind", kind).Int("records", len(records)).Msg("Corpus snapshot saved")
	return nil
}

func (s *CorpusStorage) LoadSnapshot(kind string) ([]models.TextRecord, error) {
	var snap corpusSnapshot
	if err := s.db.Store().Get(kind, &snap); err != nil {
		if err == badgerhold.ErrNotFound {
			return []models.TextRecord{}, nil
		}
		return nil, fmt.Errorf("failed to load %s snapshot: %w", kind, err)
	}
	if snap.Records == nil {
		return []models.TextRecord{}, nil
	}
	return snap.Records, nil
}
