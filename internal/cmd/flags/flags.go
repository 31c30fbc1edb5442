package flags

import (
	"fmt"
	"slices"

	libnats "github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var NATSURL = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server",
	Value:   libnats.DefaultURL,
	Sources: cli.EnvVars("NATS_URL"),
}

var NATSInit = &cli.BoolFlag{
	Name:        "nats-init",
	Aliases:     []string{"i"},
	Usage:       "Initialize the NATS server: create streams, consumers, etc.",
	DefaultText: "false",
	Value:       false,
	Sources:     cli.EnvVars("NATS_INIT"),
}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var IndexerURL = &cli.StringFlag{
	Name:    "indexer-url",
	Usage:   "Base URL of the ledger indexer",
	Value:   "http://localhost:8090",
	Sources: cli.EnvVars("INDEXER_URL"),
}

var DatabaseURL = &cli.StringFlag{
	Name:    "database-url",
	Usage:   "Postgres DSN for the stats archive",
	Sources: cli.EnvVars("DATABASE_URL"),
}

var APIAddr = &cli.StringFlag{
	Name:    "api-addr",
	Usage:   "Listen address of the HTTP API",
	Value:   ":8080",
	Sources: cli.EnvVars("API_ADDR"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "Listen address of the metrics server",
	Value:   ":9090",
	Sources: cli.EnvVars("METRICS_ADDR"),
}

var PollInterval = &cli.IntFlag{
	Name:    "poll-interval",
	Usage:   "Seconds between aggregation rounds",
	Value:   30,
	Sources: cli.EnvVars("POLL_INTERVAL"),
}

var Writers = &cli.StringFlag{
	Name:    "writers",
	Usage:   "Comma-separated writer addresses, overrides the indexer registry",
	Sources: cli.EnvVars("WRITERS"),
}
