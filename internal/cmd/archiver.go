package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"tunelytics/internal/archive"
	"tunelytics/internal/cmd/flags"
	"tunelytics/internal/core"
	"tunelytics/internal/metrics"
	"tunelytics/internal/nats"
	"tunelytics/internal/persistence"
)

var archiverCmd = &cli.Command{
	Name:  "archiver",
	Usage: "Drain published stat updates from JetStream into the Postgres archive",
	Flags: []cli.Flag{
		flags.NATSURL,
		flags.NATSInit,
		flags.DatabaseURL,
		flags.MetricsAddr,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&persistence.DB{}),
			pal.Provide[core.StatsArchive](&archive.Repository{}),
			pal.Provide(&archive.Archiver{}),
			pal.Provide(&metrics.Collector{}),
			pal.Provide(&metrics.HTTPServer{}),
			nats.Provide(),
		)
	},
}
