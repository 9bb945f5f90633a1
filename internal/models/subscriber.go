package models

import "time"

// Subscriber is one daily-report recipient
type Subscriber struct {
	Email        string    `json:"email" badgerhold:"key"`
	SubscribedAt time.Time `json:"subscribed_at"`
	WantsReports bool      `json:"wants_reports"`
}
