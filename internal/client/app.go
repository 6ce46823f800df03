package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-journal-backup/internal/adapter"
	"github.com/MKhiriev/go-journal-backup/internal/config"
	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/MKhiriev/go-journal-backup/internal/service"
	"github.com/MKhiriev/go-journal-backup/internal/store"
	"github.com/MKhiriev/go-journal-backup/internal/workers"
	"github.com/MKhiriev/go-journal-backup/models"
)

const (
	runBackup  = "backup"
	runRestore = "restore"
)

type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	renderer ProgressRenderer
	closer   func() error
}

// NewApp opens the local storages and the remote store described by cfg.
// The returned App must be closed.
func NewApp(ctx context.Context, cfg *config.ClientConfig, renderer ProgressRenderer, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storages: %w", err)
	}

	remote, err := adapter.NewS3RemoteStore(ctx, adapter.S3Config{
		Bucket:            cfg.Remote.Bucket,
		Region:            cfg.Remote.Region,
		Endpoint:          cfg.Remote.Endpoint,
		AccessKeyID:       cfg.Remote.AccessKeyID,
		SecretAccessKey:   cfg.Remote.SecretAccessKey,
		Prefix:            cfg.Remote.Prefix,
		UsePathStyle:      cfg.Remote.UsePathStyle,
		RequestTimeout:    cfg.Remote.RequestTimeout,
		RequestsPerSecond: cfg.Remote.RequestsPerSecond,
	})
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create remote store: %w", err)
	}

	probe := adapter.NewHTTPConnectivityProbe(adapter.ConnectivityConfig{
		ProbeURL: cfg.Connectivity.ProbeURL,
		Timeout:  cfg.Connectivity.Timeout,
	})

	services := service.NewClientServices(storages, remote, probe, cfg)

	return newApp(services, renderer, storages.Close), nil
}

func newApp(services *service.ClientServices, renderer ProgressRenderer, closer func() error) *App {
	return &App{
		services: services,
		workers:  workers.NewWorkers(services.BackupJob),
		renderer: renderer,
		closer:   closer,
	}
}

// Backup runs one backup and renders its progress.
func (a *App) Backup(ctx context.Context) error {
	return a.observe(ctx, runBackup, a.services.BackupService.State(), a.services.BackupJob.RunOnce)
}

// Restore runs one restore and renders its progress.
func (a *App) Restore(ctx context.Context) error {
	return a.observe(ctx, runRestore, a.services.RestoreService.State(), a.services.RestoreService.RunRestore)
}

// LastSyncTime returns the moment of the latest successful run, zero if
// none.
func (a *App) LastSyncTime(ctx context.Context) (time.Time, error) {
	return a.services.StatusService.LastSyncTime(ctx)
}

// Watch runs a backup right away and then periodically until ctx is
// cancelled. Failed runs are rendered and do not end the loop.
func (a *App) Watch(ctx context.Context) error {
	log := logger.FromContext(ctx)
	state := a.services.BackupService.State()

	states, unsubscribe := state.Subscribe()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.forward(runBackup, states, state.Events())
	}()

	if err := a.services.BackupJob.RunOnce(ctx); err != nil {
		log.Err(err).Str("func", "App.Watch").Msg("initial backup failed")
	}

	a.workers.Start(ctx)
	<-ctx.Done()
	a.workers.Stop()

	unsubscribe()
	wg.Wait()

	return nil
}

// observe renders every state of run while fn executes and then the
// outcome events it emitted.
func (a *App) observe(ctx context.Context, run string, state service.StatePublisher, fn func(context.Context) error) error {
	states, unsubscribe := state.Subscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range states {
			a.renderer.RenderState(run, s)
		}
	}()

	err := fn(ctx)

	unsubscribe()
	<-done
	a.drainEvents(state.Events())

	return err
}

// forward renders states and events until states is closed.
func (a *App) forward(run string, states <-chan models.SyncState, events <-chan models.SyncEvent) {
	for {
		select {
		case s, ok := <-states:
			if !ok {
				a.drainEvents(events)
				return
			}
			a.renderer.RenderState(run, s)
		case ev := <-events:
			a.renderer.RenderEvent(ev)
		}
	}
}

func (a *App) drainEvents(events <-chan models.SyncEvent) {
	for {
		select {
		case ev := <-events:
			a.renderer.RenderEvent(ev)
		default:
			return
		}
	}
}

// Close releases the local storages.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}
