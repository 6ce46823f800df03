// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// StructuredConfig is the top-level configuration container for the
// go-journal-backup application. It aggregates all sub-configurations and is
// populated by merging values from command-line flags, environment
// variables, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the log destination.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local note database and the
	// local attachment directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Remote holds the S3-compatible bucket used as the backup target.
	Remote Remote `envPrefix:"REMOTE_"`

	// Connectivity holds settings of the network probe consulted before a
	// restore run.
	Connectivity Connectivity `envPrefix:"CONNECTIVITY_"`

	// Sync holds tuning of the backup and restore runs.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogFile is the file the client appends its JSON log entries to.
	// Empty selects a "logs" file next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for the local persistence backends.
type Storage struct {
	// DB holds the local SQLite note database settings.
	DB DB `envPrefix:"DB_"`

	// Attachments holds the local attachment directory settings.
	Attachments Attachments `envPrefix:"ATTACHMENTS_"`
}

// DB holds connection settings for the local note database.
type DB struct {
	// DSN is the SQLite database file path or DSN
	// (e.g. "journal.db" or "file:journal.db?_foreign_keys=on").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Attachments holds settings of the local attachment directory.
type Attachments struct {
	// Dir is the root directory attachment files are stored under, one
	// sub-directory per note.
	// Env: STORAGE_ATTACHMENTS_DIR
	Dir string `env:"DIR"`
}

// Remote holds the S3-compatible backup container settings.
type Remote struct {
	// Bucket is the name of the bucket holding the backup.
	// Env: REMOTE_BUCKET
	Bucket string `env:"BUCKET"`

	// Region is the bucket region (e.g. "eu-central-1").
	// Env: REMOTE_REGION
	Region string `env:"REGION"`

	// Endpoint overrides the S3 endpoint, used for MinIO and other
	// S3-compatible services (e.g. "http://localhost:9000").
	// Env: REMOTE_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// AccessKeyID and SecretAccessKey are static credentials. When both are
	// empty the default AWS credential chain is used.
	// Env: REMOTE_ACCESS_KEY_ID, REMOTE_SECRET_ACCESS_KEY
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`

	// Prefix is prepended to every object key (e.g. "journal/").
	// Env: REMOTE_PREFIX
	Prefix string `env:"PREFIX"`

	// UsePathStyle forces path-style bucket addressing.
	// Env: REMOTE_USE_PATH_STYLE
	UsePathStyle bool `env:"USE_PATH_STYLE"`

	// RequestTimeout bounds every single remote request.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RequestsPerSecond paces remote requests; zero disables pacing.
	// Env: REMOTE_REQUESTS_PER_SECOND
	RequestsPerSecond int `env:"REQUESTS_PER_SECOND"`
}

// Connectivity holds network probe settings.
type Connectivity struct {
	// ProbeURL is requested with HEAD to decide whether the network is
	// reachable. Defaults to the remote endpoint.
	// Env: CONNECTIVITY_PROBE_URL
	ProbeURL string `env:"PROBE_URL"`

	// Timeout bounds a single probe.
	// Env: CONNECTIVITY_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Sync holds run tuning parameters.
type Sync struct {
	// SettleDelay is how long a successful restore stays in the Success
	// state before returning to Idle.
	// Env: SYNC_SETTLE_DELAY
	SettleDelay time.Duration `env:"SETTLE_DELAY"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// BackupInterval is the period of the background backup job.
	// Env: WORKERS_BACKUP_INTERVAL
	BackupInterval time.Duration `env:"BACKUP_INTERVAL"`
}

// GetStructuredConfig loads and merges the application configuration from
// all available sources in the following priority order (first source wins
// for non-zero fields):
//  1. Command-line flags of cmd
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig(cmd *cli.Command) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(cmd).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
