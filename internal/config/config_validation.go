// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the merged [StructuredConfig] is well-formed.
// Completeness checks belong to [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Remote.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: negative requests per second", ErrInvalidRemoteConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Attachments.Dir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Remote.Bucket == "" || cfg.Remote.RequestTimeout <= 0 {
		return ErrInvalidRemoteConfigs
	}

	if (cfg.Remote.AccessKeyID == "") != (cfg.Remote.SecretAccessKey == "") {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Sync.SettleDelay < 0 || cfg.Connectivity.Timeout <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.BackupInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
