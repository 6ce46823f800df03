// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	defaultDSN               = "journal.db"
	defaultAttachmentsDir    = "attachments"
	defaultRegion            = "us-east-1"
	defaultRequestTimeout    = 30 * time.Second
	defaultConnectivityProbe = 3 * time.Second
	defaultSettleDelay       = 1500 * time.Millisecond
	defaultBackupInterval    = time.Hour
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB:          DB{DSN: defaultDSN},
			Attachments: Attachments{Dir: defaultAttachmentsDir},
		},
		Remote: Remote{
			Region:         defaultRegion,
			RequestTimeout: defaultRequestTimeout,
		},
		Connectivity: Connectivity{Timeout: defaultConnectivityProbe},
		Sync:         Sync{SettleDelay: defaultSettleDelay},
		Workers:      Workers{BackupInterval: defaultBackupInterval},
	}
}
