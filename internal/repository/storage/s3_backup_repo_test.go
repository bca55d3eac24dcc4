package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(endpoint string) *S3BackupRepository {
	awsCfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("key", "secret", ""),
	}
	client := newClient(awsCfg, endpoint)
	return &S3BackupRepository{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    "kakeibo-backups",
	}
}

func TestGeneratePresignedURL_PathStyleEndpoint(t *testing.T) {
	repo := newTestRepository("http://localhost:9000")

	raw, err := repo.GeneratePresignedURL(context.Background(), "backups/2026/10/19/030000_x.json", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/kakeibo-backups/backups/2026/10/19/"), u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestGeneratePresignedURL_AWSEndpoint(t *testing.T) {
	repo := newTestRepository("")

	raw, err := repo.GeneratePresignedURL(context.Background(), "backups/a.json", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "kakeibo-backups.s3.us-east-1.amazonaws.com", u.Host)
	assert.Equal(t, "/backups/a.json", u.Path)
}
