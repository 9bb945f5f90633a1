package models

import "time"

// TriggerKind distinguishes how a scheduled job fires
type TriggerKind string

const (
	// TriggerInterval fires every fixed period, reconfigurable at runtime
	TriggerInterval TriggerKind = "interval"
	// TriggerCron fires at a fixed time-of-day
	TriggerCron TriggerKind = "cron"
	// TriggerOneOff fires exactly once then is removed
	TriggerOneOff TriggerKind = "one-off"
)

// JobStatus is a read-only view of one registered orchestrator job
type JobStatus struct {
	ID        string      `json:"id"`
	Trigger   TriggerKind `json:"trigger"`
	IsRunning bool        `json:"is_running"`
	LastRun   *time.Time  `json:"last_run,omitempty"`
	NextRun   *time.Time  `json:"next_run,omitempty"`
	LastError string      `json:"last_error,omitempty"`
}
