package config

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	NATSURL  string `flag:"nats-url"`
	NATSInit bool   `flag:"nats-init"`
	LogLevel string `flag:"log-level"`

	IndexerURL  string `flag:"indexer-url"`
	DatabaseURL string `flag:"database-url"`

	APIAddr     string `flag:"api-addr"`
	MetricsAddr string `flag:"metrics-addr"`

	PollIntervalSeconds int `flag:"poll-interval"`

	// Writers optionally pins the writer set instead of asking the indexer
	// registry, comma-separated addresses.
	Writers string `flag:"writers"`
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// WriterList returns the pinned writer set, nil when the registry should
// be used.
func (c *Config) WriterList() []string {
	if c.Writers == "" {
		return nil
	}
	return lo.Map(strings.Split(c.Writers, ","), func(w string, _ int) string {
		return strings.TrimSpace(w)
	})
}
