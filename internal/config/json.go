package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		LogFile string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Attachments struct {
			Dir string `json:"dir"`
		} `json:"attachments,omitempty"`
	} `json:"storage,omitempty"`

	Remote struct {
		Bucket            string   `json:"bucket"`
		Region            string   `json:"region"`
		Endpoint          string   `json:"endpoint"`
		AccessKeyID       string   `json:"access_key_id"`
		SecretAccessKey   string   `json:"secret_access_key"`
		Prefix            string   `json:"prefix"`
		UsePathStyle      bool     `json:"use_path_style"`
		RequestTimeout    Duration `json:"request_timeout"`
		RequestsPerSecond int      `json:"requests_per_second"`
	} `json:"remote,omitempty"`

	Connectivity struct {
		ProbeURL string   `json:"probe_url"`
		Timeout  Duration `json:"timeout"`
	} `json:"connectivity,omitempty"`

	Sync struct {
		SettleDelay Duration `json:"settle_delay"`
	} `json:"sync,omitempty"`

	Workers struct {
		BackupInterval Duration `json:"backup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogFile: jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB:          DB{DSN: jsonCfg.Storage.DB.DSN},
			Attachments: Attachments{Dir: jsonCfg.Storage.Attachments.Dir},
		},
		Remote: Remote{
			Bucket:            jsonCfg.Remote.Bucket,
			Region:            jsonCfg.Remote.Region,
			Endpoint:          jsonCfg.Remote.Endpoint,
			AccessKeyID:       jsonCfg.Remote.AccessKeyID,
			SecretAccessKey:   jsonCfg.Remote.SecretAccessKey,
			Prefix:            jsonCfg.Remote.Prefix,
			UsePathStyle:      jsonCfg.Remote.UsePathStyle,
			RequestTimeout:    time.Duration(jsonCfg.Remote.RequestTimeout),
			RequestsPerSecond: jsonCfg.Remote.RequestsPerSecond,
		},
		Connectivity: Connectivity{
			ProbeURL: jsonCfg.Connectivity.ProbeURL,
			Timeout:  time.Duration(jsonCfg.Connectivity.Timeout),
		},
		Sync: Sync{
			SettleDelay: time.Duration(jsonCfg.Sync.SettleDelay),
		},
		Workers: Workers{
			BackupInterval: time.Duration(jsonCfg.Workers.BackupInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
