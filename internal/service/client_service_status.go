package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-journal-backup/internal/adapter"
)

type syncStatusService struct {
	remote adapter.RemoteStore
}

func NewSyncStatusService(remote adapter.RemoteStore) SyncStatusService {
	return &syncStatusService{remote: remote}
}

// LastSyncTime treats a missing marker as "never synced".
func (s *syncStatusService) LastSyncTime(ctx context.Context) (time.Time, error) {
	t, err := s.remote.LastSyncTime(ctx)
	if errors.Is(err, adapter.ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get last sync time: %w", err)
	}
	return t, nil
}
