package config

import (
	"github.com/urfave/cli/v3"
)

// Flag names shared by every command of the CLI.
const (
	FlagConfig            = "config"
	FlagDSN               = "dsn"
	FlagAttachmentsDir    = "attachments-dir"
	FlagLogFile           = "log-file"
	FlagBucket            = "bucket"
	FlagRegion            = "region"
	FlagEndpoint          = "endpoint"
	FlagPrefix            = "prefix"
	FlagPathStyle         = "path-style"
	FlagRequestTimeout    = "request-timeout"
	FlagRequestsPerSecond = "rps"
	FlagProbeURL          = "probe-url"
	FlagSettleDelay       = "settle-delay"
	FlagBackupInterval    = "backup-interval"
)

// Flags returns the configuration flags of the root command.
//
// Flags:
//
//	-c/--config          json file path with configs
//	-d/--dsn             local note database DSN
//	-a/--attachments-dir local attachment directory
//	--log-file           client log file path
//	-b/--bucket          remote bucket name
//	--region             remote bucket region
//	--endpoint           S3-compatible endpoint override
//	--prefix             object key prefix
//	--path-style         force path-style addressing
//	--request-timeout    per-request timeout (e.g., "30s", "1m")
//	--rps                remote requests per second (0 = unlimited)
//	--probe-url          connectivity probe URL
//	--settle-delay       restore success settle delay (e.g., "1.5s")
//	--backup-interval    periodic backup interval (e.g., "1h")
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: FlagConfig, Aliases: []string{"c"}, Usage: "JSON config file path"},
		&cli.StringFlag{Name: FlagDSN, Aliases: []string{"d"}, Usage: "Local note database DSN"},
		&cli.StringFlag{Name: FlagAttachmentsDir, Aliases: []string{"a"}, Usage: "Local attachment directory"},
		&cli.StringFlag{Name: FlagLogFile, Usage: "Client log file path"},
		&cli.StringFlag{Name: FlagBucket, Aliases: []string{"b"}, Usage: "Remote bucket name"},
		&cli.StringFlag{Name: FlagRegion, Usage: "Remote bucket region"},
		&cli.StringFlag{Name: FlagEndpoint, Usage: "S3-compatible endpoint override"},
		&cli.StringFlag{Name: FlagPrefix, Usage: "Object key prefix"},
		&cli.BoolFlag{Name: FlagPathStyle, Usage: "Force path-style bucket addressing"},
		&cli.DurationFlag{Name: FlagRequestTimeout, Usage: "Remote request timeout (e.g., 30s, 1m)"},
		&cli.IntFlag{Name: FlagRequestsPerSecond, Usage: "Remote requests per second (0 = unlimited)"},
		&cli.StringFlag{Name: FlagProbeURL, Usage: "Connectivity probe URL"},
		&cli.DurationFlag{Name: FlagSettleDelay, Usage: "Restore success settle delay (e.g., 1.5s)"},
		&cli.DurationFlag{Name: FlagBackupInterval, Usage: "Periodic backup interval (e.g., 1h)"},
	}
}

// parseFlags reads the values of [Flags] from cmd. Unset flags stay at their
// zero value so that lower-priority sources can fill them during the merge.
func parseFlags(cmd *cli.Command) *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogFile: cmd.String(FlagLogFile),
		},
		Storage: Storage{
			DB:          DB{DSN: cmd.String(FlagDSN)},
			Attachments: Attachments{Dir: cmd.String(FlagAttachmentsDir)},
		},
		Remote: Remote{
			Bucket:            cmd.String(FlagBucket),
			Region:            cmd.String(FlagRegion),
			Endpoint:          cmd.String(FlagEndpoint),
			Prefix:            cmd.String(FlagPrefix),
			UsePathStyle:      cmd.Bool(FlagPathStyle),
			RequestTimeout:    cmd.Duration(FlagRequestTimeout),
			RequestsPerSecond: cmd.Int(FlagRequestsPerSecond),
		},
		Connectivity: Connectivity{
			ProbeURL: cmd.String(FlagProbeURL),
		},
		Sync: Sync{
			SettleDelay: cmd.Duration(FlagSettleDelay),
		},
		Workers: Workers{
			BackupInterval: cmd.Duration(FlagBackupInterval),
		},
		JSONFilePath: cmd.String(FlagConfig),
	}
}
