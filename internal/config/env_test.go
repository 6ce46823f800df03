// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_LOG_FILE": "/var/log/journal-backup.log",

		// Storage has nested prefixes: STORAGE_ + DB_ / ATTACHMENTS_
		"STORAGE_DB_DSN":          "journal.db",
		"STORAGE_ATTACHMENTS_DIR": "/var/journal/attachments",

		"REMOTE_BUCKET":              "journal",
		"REMOTE_REGION":              "eu-central-1",
		"REMOTE_ENDPOINT":            "http://localhost:9000",
		"REMOTE_ACCESS_KEY_ID":       "minio",
		"REMOTE_SECRET_ACCESS_KEY":   "minio123",
		"REMOTE_PREFIX":              "backup/",
		"REMOTE_USE_PATH_STYLE":      "true",
		"REMOTE_REQUEST_TIMEOUT":     "45s",
		"REMOTE_REQUESTS_PER_SECOND": "20",

		"CONNECTIVITY_PROBE_URL": "http://localhost:9000/minio/health/live",
		"CONNECTIVITY_TIMEOUT":   "2s",

		"SYNC_SETTLE_DELAY":       "2s",
		"WORKERS_BACKUP_INTERVAL": "15m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/var/log/journal-backup.log", cfg.App.LogFile)

	assert.Equal(t, "journal.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/journal/attachments", cfg.Storage.Attachments.Dir)

	assert.Equal(t, "journal", cfg.Remote.Bucket)
	assert.Equal(t, "eu-central-1", cfg.Remote.Region)
	assert.Equal(t, "http://localhost:9000", cfg.Remote.Endpoint)
	assert.Equal(t, "minio", cfg.Remote.AccessKeyID)
	assert.Equal(t, "minio123", cfg.Remote.SecretAccessKey)
	assert.Equal(t, "backup/", cfg.Remote.Prefix)
	assert.True(t, cfg.Remote.UsePathStyle)
	assert.Equal(t, 45*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 20, cfg.Remote.RequestsPerSecond)

	assert.Equal(t, "http://localhost:9000/minio/health/live", cfg.Connectivity.ProbeURL)
	assert.Equal(t, 2*time.Second, cfg.Connectivity.Timeout)

	assert.Equal(t, 2*time.Second, cfg.Sync.SettleDelay)
	assert.Equal(t, 15*time.Minute, cfg.Workers.BackupInterval)
}

func TestParseEnv_Empty(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Empty(t, cfg.Remote.Bucket)
	assert.Zero(t, cfg.Sync.SettleDelay)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("SYNC_SETTLE_DELAY", "not-a-duration")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_InvalidInt(t *testing.T) {
	t.Setenv("REMOTE_REQUESTS_PER_SECOND", "many")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
}
