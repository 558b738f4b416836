package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// BackupService snapshots the data directory on a cron schedule. The store
// files are small whole-collection rewrites, so a plain copy taken between
// requests is a consistent snapshot.
type BackupService struct {
	dataDir  string
	schedule string
	c        *cron.Cron
}

// NewBackupService creates a new backup service. An empty schedule
// disables it.
func NewBackupService(dataDir, schedule string) *BackupService {
	return &BackupService{
		dataDir:  dataDir,
		schedule: schedule,
		c:        cron.New(),
	}
}

// Start registers the snapshot job and launches the cron scheduler
func (s *BackupService) Start() error {
	if s.schedule == "" {
		log.Info().Msg("backups disabled (no schedule configured)")
		return nil
	}
	if _, err := s.c.AddFunc(s.schedule, s.runBackup); err != nil {
		return fmt.Errorf("backup schedule %q: %w", s.schedule, err)
	}
	s.c.Start()
	log.Info().Str("schedule", s.schedule).Msg("backup service started")
	return nil
}

// Stop stops the cron scheduler
func (s *BackupService) Stop() {
	s.c.Stop()
}

func (s *BackupService) runBackup() {
	dest := filepath.Join(s.dataDir, "backups", time.Now().Format("20060102-150405"))
	if err := s.snapshot(dest); err != nil {
		log.Error().Err(err).Msg("backup failed")
		return
	}
	log.Info().Str("dest", dest).Msg("backup completed")
}

// snapshot copies every regular file at the top of the data directory
// into dest
func (s *BackupService) snapshot(dest string) error {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return fmt.Errorf("read data dir: %w", err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dataDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(dest, entry.Name()), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", entry.Name(), err)
		}
	}
	return nil
}
