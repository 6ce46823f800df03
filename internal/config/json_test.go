package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": { "log_file": "client.log" },
		"storage": {
			"db": { "dsn": "journal.db" },
			"attachments": { "dir": "/var/journal" }
		},
		"remote": {
			"bucket": "journal",
			"region": "eu-west-1",
			"endpoint": "http://minio:9000",
			"access_key_id": "ak",
			"secret_access_key": "sk",
			"prefix": "u1/",
			"use_path_style": true,
			"request_timeout": "10s",
			"requests_per_second": 5
		},
		"connectivity": { "probe_url": "http://minio:9000", "timeout": "1s" },
		"sync": { "settle_delay": "1500ms" },
		"workers": { "backup_interval": "30m" }
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "client.log", cfg.App.LogFile)
	assert.Equal(t, "journal.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/journal", cfg.Storage.Attachments.Dir)

	assert.Equal(t, "journal", cfg.Remote.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Remote.Region)
	assert.Equal(t, "http://minio:9000", cfg.Remote.Endpoint)
	assert.Equal(t, "ak", cfg.Remote.AccessKeyID)
	assert.Equal(t, "sk", cfg.Remote.SecretAccessKey)
	assert.Equal(t, "u1/", cfg.Remote.Prefix)
	assert.True(t, cfg.Remote.UsePathStyle)
	assert.Equal(t, 10*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 5, cfg.Remote.RequestsPerSecond)

	assert.Equal(t, "http://minio:9000", cfg.Connectivity.ProbeURL)
	assert.Equal(t, time.Second, cfg.Connectivity.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Sync.SettleDelay)
	assert.Equal(t, 30*time.Minute, cfg.Workers.BackupInterval)

	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	// Act
	cfg, err := parseJSON("definitely-does-not-exist.json")

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{ this is not json }`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bad-duration.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"sync": {"settle_delay": "soon"}}`), 0o600))

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
}

// ── Duration ──────────────────────────────────────────────────────────────────

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"90s"`, want: 90 * time.Second},
		{name: "nanoseconds number", input: `1000000000`, want: time.Second},
		{name: "null keeps zero", input: `null`, want: 0},
		{name: "bad string", input: `"later"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(1500 * time.Millisecond))
	require.NoError(t, err)
	assert.JSONEq(t, `"1.5s"`, string(data))
}
