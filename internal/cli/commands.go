// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli defines the command tree of the journal-backup binary.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/MKhiriev/go-journal-backup/internal/client"
	"github.com/MKhiriev/go-journal-backup/internal/config"
	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/MKhiriev/go-journal-backup/models"
)

const appName = "journal-backup"

// appRunner is the part of [client.App] the commands use.
type appRunner interface {
	Backup(ctx context.Context) error
	Restore(ctx context.Context) error
	LastSyncTime(ctx context.Context) (time.Time, error)
	Watch(ctx context.Context) error
	Close() error
}

// appFactory builds the application for a command invocation.
// The returned context carries the command logger.
type appFactory func(ctx context.Context, cmd *cli.Command, renderer client.ProgressRenderer) (context.Context, appRunner, error)

// NewCommand returns the root command.
func NewCommand(buildInfo models.AppBuildInfo) *cli.Command {
	return newCommand(buildInfo, newClientApp)
}

func newCommand(buildInfo models.AppBuildInfo, factory appFactory) *cli.Command {
	return &cli.Command{
		Name:    appName,
		Usage:   "Back up and restore the journal to an S3 bucket",
		Version: buildInfo.String(),
		Flags:   config.Flags(),
		Commands: []*cli.Command{
			backupCommand(factory),
			restoreCommand(factory),
			statusCommand(factory),
			watchCommand(factory),
		},
	}
}

func backupCommand(factory appFactory) *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Upload local notes and attachments to the bucket",
		Action: withApp(factory, func(ctx context.Context, _ *cli.Command, app appRunner) error {
			return app.Backup(ctx)
		}),
	}
}

func restoreCommand(factory appFactory) *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "Merge the latest remote snapshot into the local journal",
		Action: withApp(factory, func(ctx context.Context, _ *cli.Command, app appRunner) error {
			return app.Restore(ctx)
		}),
	}
}

func statusCommand(factory appFactory) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the time of the latest successful sync",
		Action: withApp(factory, func(ctx context.Context, cmd *cli.Command, app appRunner) error {
			t, err := app.LastSyncTime(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, formatLastSync(t, time.Now()))
			return err
		}),
	}
}

func watchCommand(factory appFactory) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Back up now and then periodically until interrupted",
		Action: withApp(factory, func(ctx context.Context, _ *cli.Command, app appRunner) error {
			return app.Watch(ctx)
		}),
	}
}

func withApp(factory appFactory, fn func(ctx context.Context, cmd *cli.Command, app appRunner) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ctx, app, err := factory(ctx, cmd, newLineRenderer(cmd.Root().Writer))
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		return fn(ctx, cmd, app)
	}
}

func newClientApp(ctx context.Context, cmd *cli.Command, renderer client.ProgressRenderer) (context.Context, appRunner, error) {
	cfg, err := config.GetClientConfig(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewClientLogger(appName, cfg.App.LogFile).WithStr("command", cmd.Name)
	ctx = log.WithContext(ctx)

	app, err := client.NewApp(ctx, cfg, renderer, log)
	if err != nil {
		log.Err(err).Str("func", "cli.newClientApp").Msg("init client app error")
		return nil, nil, err
	}

	return ctx, app, nil
}
