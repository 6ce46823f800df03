package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// runWithFlags runs a root command carrying [Flags] with the given args and
// returns the config parsed inside its action.
func runWithFlags(t *testing.T, args ...string) *StructuredConfig {
	t.Helper()

	var parsed *StructuredConfig
	cmd := &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			parsed = parseFlags(cmd)
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	require.NotNil(t, parsed)
	return parsed
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg := runWithFlags(t,
		"-c", "cfg.json",
		"-d", "notes.db",
		"-a", "/tmp/att",
		"--log-file", "client.log",
		"-b", "journal",
		"--region", "eu-north-1",
		"--endpoint", "http://localhost:9000",
		"--prefix", "p/",
		"--path-style",
		"--request-timeout", "5s",
		"--rps", "8",
		"--probe-url", "http://probe",
		"--settle-delay", "250ms",
		"--backup-interval", "10m",
	)

	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
	assert.Equal(t, "notes.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/tmp/att", cfg.Storage.Attachments.Dir)
	assert.Equal(t, "client.log", cfg.App.LogFile)
	assert.Equal(t, "journal", cfg.Remote.Bucket)
	assert.Equal(t, "eu-north-1", cfg.Remote.Region)
	assert.Equal(t, "http://localhost:9000", cfg.Remote.Endpoint)
	assert.Equal(t, "p/", cfg.Remote.Prefix)
	assert.True(t, cfg.Remote.UsePathStyle)
	assert.Equal(t, 5*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 8, cfg.Remote.RequestsPerSecond)
	assert.Equal(t, "http://probe", cfg.Connectivity.ProbeURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.SettleDelay)
	assert.Equal(t, 10*time.Minute, cfg.Workers.BackupInterval)
}

func TestParseFlags_NoFlagsLeavesZeroValues(t *testing.T) {
	cfg := runWithFlags(t)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_LongConfigAlias(t *testing.T) {
	cfg := runWithFlags(t, "--config", "other.json")
	assert.Equal(t, "other.json", cfg.JSONFilePath)
}
