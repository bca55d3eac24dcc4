package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// BackupScheduler runs BackupService.CreateBackup on a cron schedule
type BackupScheduler struct {
	backupService *BackupService
	logger        zerolog.Logger
	schedule      string
	timeout       time.Duration
	cron          *cron.Cron
	mu            sync.Mutex
	running       bool
}

// BackupSchedulerConfig holds configuration for the backup scheduler
type BackupSchedulerConfig struct {
	Schedule string        // Standard 5-field cron expression
	Timeout  time.Duration // Upper bound for a single backup run
}

// DefaultBackupSchedulerConfig returns sensible defaults
func DefaultBackupSchedulerConfig() BackupSchedulerConfig {
	return BackupSchedulerConfig{
		Schedule: "0 3 * * *", // Every day at 03:00
		Timeout:  30 * time.Second,
	}
}

// NewBackupScheduler creates a new backup scheduler, rejecting malformed schedules
func NewBackupScheduler(
	backupService *BackupService,
	logger zerolog.Logger,
	config BackupSchedulerConfig,
) (*BackupScheduler, error) {
	defaults := DefaultBackupSchedulerConfig()
	if config.Schedule == "" {
		config.Schedule = defaults.Schedule
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if _, err := cron.ParseStandard(config.Schedule); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", config.Schedule, err)
	}

	return &BackupScheduler{
		backupService: backupService,
		logger:        logger.With().Str("component", "backup_scheduler").Logger(),
		schedule:      config.Schedule,
		timeout:       config.Timeout,
	}, nil
}

// Start registers the backup job and starts the cron loop
func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule backup: %w", err)
	}
	c.Start()

	s.cron = c
	s.running = true

	s.logger.Info().
		Str("schedule", s.schedule).
		Msg("Starting backup scheduler")
	return nil
}

// Stop stops the cron loop and waits for a running backup to finish
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	c := s.cron
	s.running = false
	s.mu.Unlock()

	s.logger.Info().Msg("Stopping backup scheduler")
	<-c.Stop().Done()
	s.logger.Info().Msg("Backup scheduler stopped")
}

// RunOnce takes a single backup, logging the outcome
func (s *BackupScheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	backup, err := s.backupService.CreateBackup(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled backup failed")
		return
	}

	s.logger.Info().
		Str("key", backup.Key).
		Int64("size", backup.Size).
		Dur("elapsed", time.Since(startTime)).
		Msg("Completed scheduled backup")
}

// IsRunning returns whether the scheduler is currently running
func (s *BackupScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
