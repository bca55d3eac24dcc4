package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "CORS_ORIGINS", "STORE_BACKEND", "GAS_ENDPOINT", "GAS_TIMEOUT",
		"DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
		"S3_REGION", "S3_BUCKET", "S3_ENDPOINT", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
		"BACKUP_SCHEDULE", "RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GAS_ENDPOINT", "https://script.google.com/macros/s/abc/exec")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, BackendSheets, cfg.StoreBackend)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.GASTimeout)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoad_BackendRequirements(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "sheets without endpoint",
			env:     map[string]string{"STORE_BACKEND": "sheets"},
			wantErr: "GAS_ENDPOINT is required",
		},
		{
			name:    "postgres without database url",
			env:     map[string]string{"STORE_BACKEND": "postgres"},
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"STORE_BACKEND": "excel"},
			wantErr: "unknown STORE_BACKEND",
		},
		{
			name:    "schedule without bucket",
			env:     map[string]string{"STORE_BACKEND": "mock", "BACKUP_SCHEDULE": "0 3 * * *"},
			wantErr: "BACKUP_SCHEDULE requires S3_BUCKET",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"STORE_BACKEND": "mock", "CACHE_TTL": "soon"},
			wantErr: "CACHE_TTL must be a duration",
		},
		{
			name:    "bad rate limit",
			env:     map[string]string{"STORE_BACKEND": "mock", "RATE_LIMIT_BURST": "-1"},
			wantErr: "must be positive",
		},
		{
			name: "mock needs nothing",
			env:  map[string]string{"STORE_BACKEND": "MOCK"},
		},
		{
			name: "postgres with url",
			env:  map[string]string{"STORE_BACKEND": "postgres", "DATABASE_URL": "postgres://localhost/kakeibo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
