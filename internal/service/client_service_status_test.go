package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-journal-backup/internal/adapter"
	"github.com/MKhiriev/go-journal-backup/internal/mock"
)

func TestSyncStatusService_LastSyncTime(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		ret     time.Time
		retErr  error
		want    time.Time
		wantErr error
	}{
		{name: "recorded", ret: at, want: at},
		{name: "never synced", retErr: adapter.ErrNotFound},
		{name: "remote failure", retErr: adapter.ErrUnauthorized, wantErr: adapter.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			remote := mock.NewMockRemoteStore(ctrl)
			remote.EXPECT().LastSyncTime(gomock.Any()).Return(tt.ret, tt.retErr)

			got, err := NewSyncStatusService(remote).LastSyncTime(context.Background())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}
