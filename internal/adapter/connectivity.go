package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/go-resty/resty/v2"
)

type ConnectivityConfig struct {
	ProbeURL string
	Timeout  time.Duration
}

type httpConnectivityProbe struct {
	client *resty.Client
	url    string
}

// NewHTTPConnectivityProbe returns a probe that sends a HEAD request to
// cfg.ProbeURL. Any HTTP response, whatever its status, counts as network
// reachability.
func NewHTTPConnectivityProbe(cfg ConnectivityConfig) ConnectivityProbe {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	cli := resty.New().
		SetTimeout(cfg.Timeout)

	return &httpConnectivityProbe{client: cli, url: strings.TrimRight(cfg.ProbeURL, "/")}
}

func (p *httpConnectivityProbe) HasNetwork(ctx context.Context) bool {
	log := logger.FromContext(ctx)

	if p.url == "" {
		return false
	}

	_, err := p.client.R().
		SetContext(ctx).
		Head(p.url)
	if err != nil {
		log.Debug().Str("func", "httpConnectivityProbe.HasNetwork").Err(err).Str("url", p.url).Msg("network unreachable")
		return false
	}

	return true
}
