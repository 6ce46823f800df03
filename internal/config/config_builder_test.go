package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierConfigWins verifies that a non-zero field of an earlier
// config is not overwritten by a later one while zero fields are filled.
func TestBuild_EarlierConfigWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Remote: Remote{Bucket: "from-flags"}},
		&StructuredConfig{Remote: Remote{Bucket: "from-env", Region: "eu-west-2"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-flags", cfg.Remote.Bucket)
	assert.Equal(t, "eu-west-2", cfg.Remote.Region)
}

func TestBuild_RejectsNegativeRequestsPerSecond(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Remote: Remote{RequestsPerSecond: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidRemoteConfigs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withJSON()
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithJSON_MissingFileSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "missing.json"})

	b.withJSON()
	assert.Error(t, b.err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_SourcePriority(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"remote": map[string]any{"bucket": "json-bucket", "prefix": "json/"},
		"sync":   map[string]any{"settle_delay": "3s"},
	})
	t.Setenv("CONFIG", path)
	t.Setenv("REMOTE_PREFIX", "env/")

	cfg, err := GetStructuredConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "json-bucket", cfg.Remote.Bucket)
	assert.Equal(t, "env/", cfg.Remote.Prefix)
	assert.Equal(t, 3*time.Second, cfg.Sync.SettleDelay)
	assert.Equal(t, defaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, defaultAttachmentsDir, cfg.Storage.Attachments.Dir)
	assert.Equal(t, defaultBackupInterval, cfg.Workers.BackupInterval)
}

func TestGetStructuredConfig_Defaults(t *testing.T) {
	cfg, err := GetStructuredConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, defaultRegion, cfg.Remote.Region)
	assert.Equal(t, defaultRequestTimeout, cfg.Remote.RequestTimeout)
	assert.Equal(t, defaultConnectivityProbe, cfg.Connectivity.Timeout)
	assert.Equal(t, defaultSettleDelay, cfg.Sync.SettleDelay)
}
