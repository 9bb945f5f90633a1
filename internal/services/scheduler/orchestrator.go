package scheduler

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/interfaces"
	"github.com/ternarybob/auspex/internal/models"
)

// Recurring job ids. One-off triggers get uuid-suffixed ids derived from
// these so a manual refresh never collides with the recurring entry.
const (
	JobCorpusRefresh = "corpus_refresh"
	JobMarketRefresh = "market_refresh"
	JobDailyDispatch = "daily_dispatch"
)

const defaultIntervalMinutes = 15

// jobEntry is one registered job with execution metadata
type jobEntry struct {
	id        string
	trigger   models.TriggerKind
	schedule  string
	handler   func() error
	cronID    cron.EntryID
	lastRun   *time.Time
	isRunning bool
	lastError string
}

// Orchestrator runs the recurring refresh pipeline and the daily dispatch.
// Both interval jobs share one reconfigurable period; overlapping firings of
// the same job are skipped rather than queued, so a slow refresh never
// builds up a backlog.
type Orchestrator struct {
	cron            *cron.Cron
	logger          arbor.ILogger
	mu              sync.Mutex // protects jobs map, running flag, interval
	jobs            map[string]*jobEntry
	running         bool
	intervalMinutes int
	dispatchCron    string

	corpusRefresh func() error
	marketRefresh func() error
	dispatch      func() error
}

// NewOrchestrator creates the orchestrator. The three actions are the
// refresh and dispatch callables; failures inside them are isolated per
// firing and never stop the schedule.
func NewOrchestrator(config *common.SchedulerConfig, corpusRefresh, marketRefresh, dispatch func() error, logger arbor.ILogger) *Orchestrator {
	interval := config.IntervalMinutes
	if common.ValidateInterval(interval) != nil {
		logger.Warn().Int("interval_minutes", interval).Int("default", defaultIntervalMinutes).Msg("Configured interval below minimum, using default")
		interval = defaultIntervalMinutes
	}

	dispatchCron := config.DispatchCron
	if dispatchCron == "" {
		dispatchCron = "0 6 * * *"
	}

	return &Orchestrator{
		cron:            cron.New(),
		logger:          logger,
		jobs:            make(map[string]*jobEntry),
		intervalMinutes: interval,
		dispatchCron:    dispatchCron,
		corpusRefresh:   corpusRefresh,
		marketRefresh:   marketRefresh,
		dispatch:        dispatch,
	}
}

// Start registers the recurring jobs and begins background execution. It is
// idempotent: a second call while running is a no-op and never registers
// duplicate jobs. Both refresh actions also fire once immediately (startup
// burst) without altering their steady-state schedules.
func (o *Orchestrator) Start() error {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		o.logger.Debug().Msg("Orchestrator already running, start ignored")
		return nil
	}

	schedule := intervalSpec(o.intervalMinutes)
	if err := o.addIntervalJobLocked(JobCorpusRefresh, schedule, o.corpusRefresh); err != nil {
		o.mu.Unlock()
		return err
	}
	if err := o.addIntervalJobLocked(JobMarketRefresh, schedule, o.marketRefresh); err != nil {
		o.mu.Unlock()
		return err
	}

	dispatchEntry := &jobEntry{
		id:       JobDailyDispatch,
		trigger:  models.TriggerCron,
		schedule: o.dispatchCron,
		handler:  o.dispatch,
	}
	cronID, err := o.cron.AddFunc(o.dispatchCron, func() {
		o.runJob(JobDailyDispatch)
	})
	if err != nil {
		o.mu.Unlock()
		return fmt.Errorf("failed to schedule daily dispatch: %w", err)
	}
	dispatchEntry.cronID = cronID
	o.jobs[JobDailyDispatch] = dispatchEntry

	o.cron.Start()
	o.running = true
	o.mu.Unlock()

	o.logger.Info().
		Int("interval_minutes", o.intervalMinutes).
		Str("dispatch_cron", o.dispatchCron).
		Msg("Orchestrator started")

	// Startup burst: run both refresh actions once now
	go o.runJob(JobCorpusRefresh)
	go o.runJob(JobMarketRefresh)

	return nil
}

// Stop halts the scheduler. In-flight jobs finish on their own; nothing new
// fires afterwards. Idempotent.
func (o *Orchestrator) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.running {
		return nil
	}

	o.cron.Stop()
	o.running = false
	o.logger.Info().Msg("Orchestrator stopped")
	return nil
}

// RefreshNow enqueues one-off corpus and market refresh jobs with fresh
// unique ids. The recurring jobs' schedules are untouched and the call never
// blocks on job completion.
func (o *Orchestrator) RefreshNow() error {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return fmt.Errorf("cannot trigger refresh: %w", common.ErrNotRunning)
	}

	triggers := []struct {
		action  string
		handler func() error
	}{
		{JobCorpusRefresh, o.corpusRefresh},
		{JobMarketRefresh, o.marketRefresh},
	}

	ids := make([]string, 0, len(triggers))
	for _, t := range triggers {
		id := common.NewJobID(t.action)
		o.jobs[id] = &jobEntry{
			id:      id,
			trigger: models.TriggerOneOff,
			handler: t.handler,
		}
		ids = append(ids, id)
	}
	o.mu.Unlock()

	for _, id := range ids {
		go o.runJob(id)
	}

	o.logger.Info().Str("job_ids", strings.Join(ids, ",")).Msg("Manual refresh triggered")
	return nil
}

// SetInterval atomically reschedules both interval jobs to the new shared
// period. The reschedule replaces each job's cron entry under the registry
// lock, keeping the same logical job id: no job is lost or duplicated.
func (o *Orchestrator) SetInterval(minutes int) error {
	if err := common.ValidateInterval(minutes); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.running {
		return fmt.Errorf("cannot update interval: %w", common.ErrNotRunning)
	}

	schedule := intervalSpec(minutes)
	for _, id := range []string{JobCorpusRefresh, JobMarketRefresh} {
		entry, exists := o.jobs[id]
		if !exists {
			return fmt.Errorf("interval job %s not registered", id)
		}

		o.cron.Remove(entry.cronID)
		jobID := id
		cronID, err := o.cron.AddFunc(schedule, func() {
			o.runJob(jobID)
		})
		if err != nil {
			return fmt.Errorf("failed to reschedule %s: %w", id, err)
		}
		entry.cronID = cronID
		entry.schedule = schedule
	}

	o.intervalMinutes = minutes
	o.logger.Info().Int("interval_minutes", minutes).Msg("Refresh interval updated")
	return nil
}

// NextRunTime returns the next fire time of the corpus-refresh interval job
func (o *Orchestrator) NextRunTime() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	entry, exists := o.jobs[JobCorpusRefresh]
	if !exists || !o.running {
		return interfaces.NextRunUnknown
	}

	for _, cronEntry := range o.cron.Entries() {
		if cronEntry.ID == entry.cronID {
			return cronEntry.Next.Format(time.RFC3339)
		}
	}
	return interfaces.NextRunUnknown
}

// CurrentInterval returns the shared interval period in minutes
func (o *Orchestrator) CurrentInterval() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.intervalMinutes
}

// IsRunning returns true when the orchestrator is active
func (o *Orchestrator) IsRunning() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// JobStatuses returns a read-only view of every registered job
func (o *Orchestrator) JobStatuses() map[string]*models.JobStatus {
	o.mu.Lock()
	defer o.mu.Unlock()

	statuses := make(map[string]*models.JobStatus, len(o.jobs))
	for id, entry := range o.jobs {
		status := &models.JobStatus{
			ID:        entry.id,
			Trigger:   entry.trigger,
			IsRunning: entry.isRunning,
			LastRun:   entry.lastRun,
			LastError: entry.lastError,
		}
		for _, cronEntry := range o.cron.Entries() {
			if cronEntry.ID == entry.cronID {
				next := cronEntry.Next
				status.NextRun = &next
				break
			}
		}
		statuses[id] = status
	}
	return statuses
}

// addIntervalJobLocked registers one interval job; caller holds the lock
func (o *Orchestrator) addIntervalJobLocked(id, schedule string, handler func() error) error {
	entry := &jobEntry{
		id:       id,
		trigger:  models.TriggerInterval,
		schedule: schedule,
		handler:  handler,
	}

	cronID, err := o.cron.AddFunc(schedule, func() {
		o.runJob(id)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", id, err)
	}

	entry.cronID = cronID
	o.jobs[id] = entry
	return nil
}

// runJob executes one job with overlap skipping, panic recovery, and status
// tracking. One-off jobs remove themselves from the registry afterwards.
func (o *Orchestrator) runJob(id string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().
				Str("job_id", id).
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("Panic recovered in job execution")

			o.mu.Lock()
			if entry, exists := o.jobs[id]; exists {
				entry.isRunning = false
				entry.lastError = fmt.Sprintf("panic: %v", r)
				if entry.trigger == models.TriggerOneOff {
					delete(o.jobs, id)
				}
			}
			o.mu.Unlock()
		}
	}()

	o.mu.Lock()
	entry, exists := o.jobs[id]
	if !exists {
		o.mu.Unlock()
		o.logger.Warn().Str("job_id", id).Msg("Job not found")
		return
	}
	if entry.isRunning {
		o.mu.Unlock()
		o.logger.Warn().Str("job_id", id).Msg("Previous firing still running, skipping")
		return
	}
	entry.isRunning = true
	handler := entry.handler
	o.mu.Unlock()

	o.logger.Info().Str("job_id", id).Msg("Job execution started")
	started := time.Now()

	err := handler()

	completed := time.Now()
	o.mu.Lock()
	entry.isRunning = false
	entry.lastRun = &completed
	if err != nil {
		entry.lastError = err.Error()
	} else {
		entry.lastError = ""
	}
	if entry.trigger == models.TriggerOneOff {
		delete(o.jobs, id)
	}
	o.mu.Unlock()

	if err != nil {
		o.logger.Error().
			Str("job_id", id).
			Err(err).
			Dur("duration", time.Since(started)).
			Msg("Job execution failed")
		return
	}
	o.logger.Info().
		Str("job_id", id).
		Dur("duration", time.Since(started)).
		Msg("Job execution completed")
}

func intervalSpec(minutes int) string {
	return fmt.Sprintf("@every %dm", minutes)
}
