package domain

import (
	"context"
	"io"
	"time"
)

// Backup describes a state snapshot written to object storage
type Backup struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url,omitempty"`
}

// BackupRepository stores state snapshots as objects
type BackupRepository interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string, size int64) (string, error)
	GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
