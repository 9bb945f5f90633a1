package badger

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/interfaces"
	"github.com/ternarybob/auspex/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// SubscriberStorage implements the SubscriberStorage interface for Badger
type SubscriberStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSubscriberStorage creates a new SubscriberStorage instance
func NewSubscriberStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SubscriberStorage {
	return &SubscriberStorage{
		db:     db,
		logger: logger,
	}
}

func (s *SubscriberStorage) SaveSubscriber(sub *models.Subscriber) error {
	if sub.Email == "" {
		return fmt.Errorf("subscriber email is required")
	}

	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = time.Now()
	}

	if err := s.db.Store().Upsert(sub.Email, sub); err != nil {
		return fmt.Errorf("failed to save subscriber: %w", err)
	}
	return nil
}

func (s *SubscriberStorage) GetSubscriber(email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	key := strings.ToLower(strings.TrimSpace(email))
	if err := s.db.Store().Get(key, &sub); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("subscriber not found: %s", key)
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return &sub, nil
}

func (s *SubscriberStorage) ListSubscribers() ([]models.Subscriber, error) {
	var subs []models.Subscriber
	if err := s.db.Store().Find(&subs, nil); err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}

func (s *SubscriberStorage) CountSubscribers() (int, error) {
	count, err := s.db.Store().Count(&models.Subscriber{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return int(count), nil
}
