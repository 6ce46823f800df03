package config

import (
	"fmt"

	"github.com/urfave/cli/v3"
)

// ClientConfig is the validated configuration view consumed by the client
// application wiring.
type ClientConfig struct {
	App          App
	Storage      Storage
	Remote       Remote
	Connectivity Connectivity
	Sync         Sync
	Workers      Workers
}

// GetClientConfig builds the merged configuration for cmd and validates it.
// An empty probe URL falls back to the remote endpoint, then to the
// regional AWS S3 endpoint.
func GetClientConfig(cmd *cli.Command) (*ClientConfig, error) {
	structured, err := GetStructuredConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("error getting structured config: %w", err)
	}

	cfg := &ClientConfig{
		App:          structured.App,
		Storage:      structured.Storage,
		Remote:       structured.Remote,
		Connectivity: structured.Connectivity,
		Sync:         structured.Sync,
		Workers:      structured.Workers,
	}

	if cfg.Connectivity.ProbeURL == "" {
		cfg.Connectivity.ProbeURL = cfg.Remote.Endpoint
	}
	if cfg.Connectivity.ProbeURL == "" {
		cfg.Connectivity.ProbeURL = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Remote.Region)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return cfg, nil
}
