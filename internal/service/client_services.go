package service

import (
	"github.com/MKhiriev/go-journal-backup/internal/adapter"
	"github.com/MKhiriev/go-journal-backup/internal/config"
	"github.com/MKhiriev/go-journal-backup/internal/store"
	"github.com/MKhiriev/go-journal-backup/internal/utils"
)

type ClientServices struct {
	BackupService  BackupService
	RestoreService RestoreService
	StatusService  SyncStatusService
	BackupJob      BackupJob
}

func NewClientServices(
	storages *store.ClientStorages,
	remote adapter.RemoteStore,
	probe adapter.ConnectivityProbe,
	cfg *config.ClientConfig,
) *ClientServices {
	index := NewRemoteContentIndex(remote)
	reader := NewLocalSnapshotReader(storages)
	codec := NewJSONSnapshotCodec()
	tracker := NewLogErrorTracker()

	backupSvc := NewBackupService(index, reader, codec, remote, storages.AttachmentStorage, tracker, utils.NewUUIDGenerator().Generate)
	restoreSvc := NewRestoreService(probe, index, reader, codec, remote, storages, tracker, cfg.Sync.SettleDelay)

	return &ClientServices{
		BackupService:  backupSvc,
		RestoreService: restoreSvc,
		StatusService:  NewSyncStatusService(remote),
		BackupJob:      NewBackupJob(backupSvc, cfg.Workers.BackupInterval),
	}
}
