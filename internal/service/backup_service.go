package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/websocket"
	"github.com/google/uuid"
)

const (
	// BackupURLExpiry is how long a presigned download link stays valid
	BackupURLExpiry = 15 * time.Minute

	backupContentType   = "application/json"
	backupFormatVersion = 1
)

// BackupService snapshots the budget state into object storage
type BackupService struct {
	stateRepo      domain.StateRepository
	backupRepo     domain.BackupRepository
	eventPublisher websocket.EventPublisher
	now            func() time.Time
}

// NewBackupService creates a new BackupService. backupRepo may be nil,
// in which case every backup fails with domain.ErrBackupDisabled.
func NewBackupService(stateRepo domain.StateRepository, backupRepo domain.BackupRepository) *BackupService {
	return &BackupService{
		stateRepo:  stateRepo,
		backupRepo: backupRepo,
		now:        time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *BackupService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// Enabled reports whether object storage is configured
func (s *BackupService) Enabled() bool {
	return s.backupRepo != nil
}

// backupDocument is the object body written for every snapshot
type backupDocument struct {
	Version   int                 `json:"version"`
	CreatedAt time.Time           `json:"createdAt"`
	State     *domain.BudgetState `json:"state"`
}

// CreateBackup writes the current state to object storage and returns
// the object key with a short-lived download link
func (s *BackupService) CreateBackup(ctx context.Context) (*domain.Backup, error) {
	if s.backupRepo == nil {
		return nil, domain.ErrBackupDisabled
	}

	state, err := s.stateRepo.GetState(ctx)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	body, err := json.MarshalIndent(backupDocument{
		Version:   backupFormatVersion,
		CreatedAt: createdAt,
		State:     state,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	key := BackupKey(createdAt, uuid.New().String())
	if _, err := s.backupRepo.Upload(ctx, key, bytes.NewReader(body), backupContentType, int64(len(body))); err != nil {
		return nil, err
	}

	backup := &domain.Backup{
		Key:       key,
		Size:      int64(len(body)),
		CreatedAt: createdAt,
	}

	url, err := s.backupRepo.GeneratePresignedURL(ctx, key, BackupURLExpiry)
	if err == nil {
		backup.URL = url
	}

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.BackupCreated(backup))
	}
	return backup, nil
}

// BackupKey builds the object key for a snapshot taken at t
func BackupKey(t time.Time, id string) string {
	return path.Join("backups", t.Format("2006/01/02"), fmt.Sprintf("%s_%s.json", t.Format("150405"), id))
}
