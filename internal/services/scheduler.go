package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SyncScheduler re-syncs the configured clubs on a cron schedule.
type SyncScheduler struct {
	cron     *cron.Cron
	tracker  *StatsTracker
	logger   *logrus.Logger
	clubIDs  []string
	schedule string

	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
	runCount  int
}

// NewSyncScheduler creates a scheduler for the given clubs. The schedule
// uses standard five-field cron syntax.
func NewSyncScheduler(tracker *StatsTracker, clubIDs []string, schedule string, logger *logrus.Logger) *SyncScheduler {
	return &SyncScheduler{
		cron:     cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger))),
		tracker:  tracker,
		logger:   logger,
		clubIDs:  clubIDs,
		schedule: schedule,
	}
}

// Start registers the sync job and starts the scheduler. An immediate
// first sync runs in the background so the registry is populated without
// waiting for the first tick.
func (s *SyncScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("sync scheduler is already running")
	}
	if len(s.clubIDs) == 0 {
		return fmt.Errorf("no clubs configured to sync")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runSync); err != nil {
		return fmt.Errorf("failed to schedule club sync: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	s.logger.WithFields(logrus.Fields{
		"component": "sync_scheduler",
		"schedule":  s.schedule,
		"clubs":     len(s.clubIDs),
	}).Info("Sync scheduler started")

	go s.runSync()

	return nil
}

// Stop halts the scheduler, waiting for a running job to finish. The
// wait happens outside the lock: a running job takes the same lock to
// record its run, so waiting while holding it would deadlock.
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	ctx := s.cron.Stop()
	s.mu.Unlock()

	<-ctx.Done()

	s.logger.WithField("component", "sync_scheduler").Info("Sync scheduler stopped")
}

func (s *SyncScheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	results := s.tracker.SyncAll(ctx, s.clubIDs)

	s.mu.Lock()
	s.lastRun = start
	s.runCount++
	s.mu.Unlock()

	recorded := 0
	for _, r := range results {
		recorded += r.MatchesRecorded
	}
	s.logger.WithFields(logrus.Fields{
		"component":        "sync_scheduler",
		"clubs_synced":     len(results),
		"matches_recorded": recorded,
		"duration":         time.Since(start).String(),
	}).Info("Scheduled sync complete")
}

// Status reports the scheduler's run history.
func (s *SyncScheduler) Status() (lastRun time.Time, runCount int, running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.runCount, s.isRunning
}
