package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-journal-backup/internal/logger"
)

const defaultBackupInterval = time.Hour

type backupJob struct {
	backupService BackupService
	interval      time.Duration

	inFlight atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBackupJob creates a backupJob that calls backupService.RunBackup on a
// ticker. If interval is zero or negative it defaults to one hour. The job
// is idle until Start is called.
func NewBackupJob(backupService BackupService, interval time.Duration) BackupJob {
	if interval <= 0 {
		interval = defaultBackupInterval
	}
	return &backupJob{backupService: backupService, interval: interval}
}

// Start implements BackupJob. It stops any previously running job, then
// launches a background goroutine that runs a backup every interval. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *backupJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.RunOnce(jobCtx); err != nil {
					logger.FromContext(jobCtx).Err(err).Str("func", "backupJob.Start").Msg("scheduled backup failed")
				}
			}
		}
	}()
}

// Stop implements BackupJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the
// job is not running.
func (j *backupJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *backupJob) RunOnce(ctx context.Context) error {
	if !j.inFlight.CompareAndSwap(false, true) {
		return ErrBackupInProgress
	}
	defer j.inFlight.Store(false)

	return j.backupService.RunBackup(ctx)
}
