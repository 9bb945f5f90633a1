package interfaces

import (
	"github.com/ternarybob/auspex/internal/models"
)

// NextRunUnknown is returned by NextRunTime when the corpus-refresh job is
// not registered.
const NextRunUnknown = "Unknown"

// Orchestrator runs the recurring refresh pipeline and the daily dispatch.
// All control calls are safe to invoke concurrently with job firings.
type Orchestrator interface {
	// Start registers the interval and cron jobs and begins background
	// execution. Idempotent: calling Start while running is a no-op and
	// never registers duplicate jobs.
	Start() error

	// Stop halts the scheduler with best-effort cancellation of in-flight jobs
	Stop() error

	// RefreshNow enqueues one-off corpus and market refresh jobs without
	// touching the recurring schedules. Fails with common.ErrNotRunning
	// before Start. Never blocks on job completion.
	RefreshNow() error

	// SetInterval atomically reschedules both interval jobs to the new
	// shared period. Fails with common.ErrInvalidArgument for minutes < 5
	// and common.ErrNotRunning before Start.
	SetInterval(minutes int) error

	// NextRunTime returns the next fire time of the corpus-refresh interval
	// job, or NextRunUnknown when no such job is registered.
	NextRunTime() string

	// CurrentInterval returns the shared interval period in minutes
	CurrentInterval() int

	// IsRunning returns true when the orchestrator is active
	IsRunning() bool

	// JobStatuses returns a read-only view of every registered job
	JobStatuses() map[string]*models.JobStatus
}
